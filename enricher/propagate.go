package enricher

import (
	"github.com/erraggy/raml2obj/raml"
)

// idTracker records which resource claimed each generated identifier.
type idTracker struct {
	owners     map[string]string
	collisions []collision
}

type collision struct {
	id, first, second string
}

func newIDTracker() *idTracker {
	return &idTracker{owners: make(map[string]string)}
}

func (t *idTracker) claim(id, path string) {
	if first, ok := t.owners[id]; ok {
		t.collisions = append(t.collisions, collision{id: id, first: first, second: path})
		return
	}
	t.owners[id] = path
}

// propagate walks resources depth-first, assigning parent URLs and unique
// identifiers and threading the inherited URI parameters down the tree.
//
// Each resource gets its own AllURIParameters slice: a copy of inherited
// followed by its own parameters in declaration order. Its methods share
// that slice.
func propagate(resources []*raml.Resource, parentURL string, inherited []any, ids *idTracker) {
	for _, res := range resources {
		if res == nil {
			continue
		}
		res.ParentURL = parentURL
		res.UniqueID = MakeResourceID(parentURL, res.RelativeURI)
		if ids != nil {
			ids.claim(res.UniqueID, res.FullPath())
		}

		all := make([]any, len(inherited), len(inherited)+ownParameterCount(res))
		copy(all, inherited)
		if res.URIParameters != nil {
			all = append(all, raml.Values(res.URIParameters)...)
		}
		res.AllURIParameters = all

		if res.Methods != nil {
			for pair := res.Methods.Oldest(); pair != nil; pair = pair.Next() {
				if pair.Value != nil {
					pair.Value.AllURIParameters = all
				}
			}
		}

		propagate(res.Resources, res.FullPath(), all, ids)
	}
}

func ownParameterCount(res *raml.Resource) int {
	if res.URIParameters == nil {
		return 0
	}
	return res.URIParameters.Len()
}
