// Package ramlerrors provides structured error types for the raml2obj library.
//
// Import path: github.com/erraggy/raml2obj/ramlerrors
//
// Errors returned by the raml and enricher packages can be inspected with
// [errors.Is] and [errors.As], so callers can tell an unreadable source apart
// from a broken include or a caller mistake.
//
// # Error Types
//
//   - [ParseError]: YAML syntax failures and structurally unusable documents
//   - [IncludeError]: !include resolution failures, include cycles, path traversal
//   - [SourceError]: a value passed as a parse source that is not a file, url, data or document
//   - [CollisionError]: two resources that normalize to the same unique id (strict mode)
//   - [ResourceLimitError]: include depth or file size limits exceeded
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrInclude]: matches any [IncludeError]
//   - [ErrCircularInclude]: matches [IncludeError] with IsCircular=true
//   - [ErrPathTraversal]: matches [IncludeError] with IsPathTraversal=true
//   - [ErrSource]: matches any [SourceError]
//   - [ErrIdentifierCollision]: matches any [CollisionError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	result, err := enricher.Parse(ctx, "api.raml")
//	if err != nil {
//	    var incErr *ramlerrors.IncludeError
//	    if errors.As(err, &incErr) && incErr.IsPathTraversal {
//	        // the document tried to include a file outside its directory
//	    }
//	}
package ramlerrors
