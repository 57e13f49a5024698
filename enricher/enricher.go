package enricher

import (
	"strings"

	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/ramlerrors"
)

// versionToken is the only base URI variable Enhance substitutes.
const versionToken = "{version}"

// Enricher adds the derived fields documentation templates rely on.
type Enricher struct {
	// StrictIDs turns a repeated resource identifier into an error.
	// Repeats are logged at warn level either way.
	StrictIDs bool
	// Logger receives collision warnings. Nil discards them.
	Logger raml.Logger
}

func (e *Enricher) log() raml.Logger {
	if e.Logger == nil {
		return raml.NopLogger{}
	}
	return e.Logger
}

// Enhance enriches doc in place and returns it:
//
//  1. every {version} in BaseURI is replaced with Version,
//  2. each resource gets ParentURL, UniqueID and AllURIParameters, and its
//     methods share the resource's AllURIParameters,
//  3. each documentation section gets a UniqueID derived from its title.
//
// With StrictIDs set, a *ramlerrors.CollisionError is returned after the
// document has been fully enriched.
func (e *Enricher) Enhance(doc *raml.Document) (*raml.Document, error) {
	if doc == nil {
		return nil, nil
	}

	substituteBaseURI(doc)

	ids := newIDTracker()
	propagate(doc.Resources, "", nil, ids)

	for _, section := range doc.Documentation {
		if section != nil {
			section.UniqueID = MakeDocID(section.Title)
		}
	}

	for _, c := range ids.collisions {
		e.log().Warn("resource identifier collision", "uniqueId", c.id, "first", c.first, "second", c.second)
	}
	if e.StrictIDs && len(ids.collisions) > 0 {
		c := ids.collisions[0]
		return doc, &ramlerrors.CollisionError{ID: c.id, First: c.first, Second: c.second}
	}
	return doc, nil
}

// Enhance enriches doc with default settings. See [Enricher.Enhance].
func Enhance(doc *raml.Document) *raml.Document {
	enriched, _ := (&Enricher{}).Enhance(doc)
	return enriched
}

// substituteBaseURI replaces every {version} in the base URI. An empty
// version leaves the token in place.
func substituteBaseURI(doc *raml.Document) {
	if doc.BaseURI == "" || doc.Version == "" {
		return
	}
	doc.BaseURI = strings.ReplaceAll(doc.BaseURI, versionToken, doc.Version)
}
