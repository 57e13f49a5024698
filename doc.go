// Package raml2obj turns RAML 1.0 API descriptions into an enriched
// documentation tree ready for templating.
//
// Loading produces the plain tree; enrichment then adds what a renderer
// needs and the raw tree lacks:
//
//   - a unique, identifier-safe name for every resource and documentation
//     section (uniqueId)
//   - the parent path of every resource (parentUrl)
//   - the URI parameters a resource inherits from its ancestors, on the
//     resource and each of its methods (allUriParameters)
//   - the version substituted into baseUri
//   - optionally, declared types and security schemes normalized so that
//     optional properties are explicit
//
// # Packages
//
//   - raml: the document model and the loader (includes, traits,
//     resource types, diagnostics)
//   - enricher: the enrichment passes and the Parse entry points
//   - walker: a visitor over the enriched tree with resource and method
//     collectors
//   - ramlerrors: sentinel and typed errors shared by the packages
//
// # Quick Start
//
//	result, err := enricher.Parse(ctx, "api.raml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range result.Document.Resources {
//		fmt.Println(r.UniqueID, r.FullPath())
//	}
//
// Sources may be a file path, an http(s) URL, RAML text, a []byte, an
// io.Reader or an already loaded *raml.Document. Loader diagnostics are
// logged through the configured [raml.Logger] and kept on the result; only
// acquisition and syntax failures are returned as errors.
//
// # Options
//
//	result, err := enricher.ParseWithOptions(ctx,
//		enricher.WithFilePath("api.raml"),
//		enricher.WithNormalizeDeclaredTypes(true),
//		enricher.WithLogger(raml.NewSlogAdapter(slog.Default())),
//	)
//
// # Command Line
//
// The raml2obj command wraps the same pipeline:
//
//	raml2obj parse --format yaml api.raml
//	raml2obj resources api.raml
//	raml2obj mcp
//
// The mcp command serves the parse and walk_resources tools over stdio for
// MCP clients.
package raml2obj
