/*
Package raml loads RAML 1.0 API descriptions.

A [Loader] reads a document from a file, a URL or memory, resolves
!include tags, applies resource types and traits to the resource tree, and
returns an [API]. The API offers two views:

  - declarations ([API.Types], [API.ResourceTypes], [API.AllResources],
    [API.SecuritySchemes], [API.AllTraits]) that report each property and
    query parameter with its name and whether it is optional, and
  - [API.ToDocument], a JSON-shaped [Document] whose mappings keep their
    declaration order.

Problems that do not prevent loading are reported as [Diagnostic] values by
[API.Errors]. Syntax errors, include failures and exceeded limits are
returned as errors from the ramlerrors package.

# Example

	api, err := raml.LoadAPI(ctx, "api.raml")
	if err != nil {
		return err
	}
	for _, d := range api.Errors() {
		fmt.Println(d)
	}
	doc := api.ToDocument()

The loader is partial by design. It does not load libraries (uses), check
type inheritance, or validate examples against types.
*/
package raml
