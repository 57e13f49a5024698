/*
Package enricher turns a loaded RAML document into the denormalized tree
documentation templates consume.

[Parse] loads a source (file, URL, RAML text, reader, or an already loaded
[raml.Document]) and enriches it:

  - {version} in the base URI is replaced with the document version,
  - every resource gets parentUrl, uniqueId and allUriParameters (its
    ancestors' URI parameters followed by its own), shared with its methods,
  - every documentation section gets a uniqueId derived from its title.

With [WithNormalizeDeclaredTypes], optional properties and query parameters
of types, resource types, resources, security schemes and traits are first
rewritten from bare type tags into {type, isOptional: true} objects.

# Example

	result, err := enricher.Parse(ctx, "api.raml",
	    enricher.WithNormalizeDeclaredTypes(true),
	    enricher.WithLogger(raml.NewSlogAdapter(slog.Default())),
	)
	if err != nil {
	    return err
	}
	for _, r := range result.Document.Resources {
	    fmt.Println(r.UniqueID, r.FullPath())
	}

The building blocks are exported for callers that load documents themselves:
[MakeResourceID], [MakeDocID], [ProcessProps], [ProcessTypes],
[Normalizer.NormalizeDeclarations] and [Enhance].
*/
package enricher
