package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/walker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type walkResourcesInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The RAML document to walk"`
	Path           string    `json:"path,omitempty"            jsonschema:"Filter by full resource path (* = one segment\\, ** = zero or more segments\\, e.g. /users/* or /users/**)"`
	Method         string    `json:"method,omitempty"          jsonschema:"Only resources that declare this HTTP method (e.g. get)"`
	ID             string    `json:"id,omitempty"              jsonschema:"Filter by unique identifier (supports * and ? globs)"`
	NormalizeTypes *bool     `json:"normalize_types,omitempty" jsonschema:"Normalize declared types. Defaults to RAML2OBJ_NORMALIZE_TYPES."`
	Detail         bool      `json:"detail,omitempty"          jsonschema:"Return full resource objects (without child resources) instead of summaries"`
	GroupBy        string    `json:"group_by,omitempty"        jsonschema:"Group results and return counts instead of items. Values: method, segment"`
	Limit          int       `json:"limit,omitempty"           jsonschema:"Maximum number of results to return (default 100)"`
	Offset         int       `json:"offset,omitempty"          jsonschema:"Skip the first N results (for pagination)"`
}

type resourceSummary struct {
	UniqueID      string   `json:"unique_id"`
	Path          string   `json:"path"`
	DisplayName   string   `json:"display_name,omitempty"`
	Methods       []string `json:"methods,omitempty"`
	URIParameters []string `json:"uri_parameters,omitempty"`
	ChildCount    int      `json:"child_count,omitempty"`
}

type resourceDetail struct {
	Path     string         `json:"path"`
	Resource *raml.Resource `json:"resource"`
}

type walkResourcesOutput struct {
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Returned  int               `json:"returned"`
	Groups    []groupCount      `json:"groups,omitempty"`
	Summaries []resourceSummary `json:"summaries,omitempty"`
	Resources []resourceDetail  `json:"resources,omitempty"`
}

func handleWalkResources(ctx context.Context, _ *mcp.CallToolRequest, input walkResourcesInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"method", "segment"}); err != nil {
		return errResult(err), nil, nil
	}
	if err := validateGlobPattern(input.ID); err != nil {
		return errResult(err), nil, nil
	}

	result, err := input.Spec.resolve(ctx, defaultFlags(input.NormalizeTypes))
	if err != nil {
		return errResult(err), nil, nil
	}

	collector, err := walker.CollectResources(result.Document)
	if err != nil {
		return errResult(err), nil, nil
	}

	matched := filterWalkResources(collector.All, input)
	output := walkResourcesOutput{
		Total:   len(collector.All),
		Matched: len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, groupKeyFn(input.GroupBy))
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	if input.Detail {
		returned := paginate(matched, input.Offset, detailLimit(input.Limit))
		output.Returned = len(returned)
		output.Resources = makeSlice[resourceDetail](len(returned))
		for _, info := range returned {
			shallow := *info.Resource
			shallow.Resources = nil
			output.Resources = append(output.Resources, resourceDetail{Path: info.FullPath, Resource: &shallow})
		}
		return nil, output, nil
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(returned)
	output.Summaries = makeSlice[resourceSummary](len(returned))
	for _, info := range returned {
		output.Summaries = append(output.Summaries, resourceSummary{
			UniqueID:      info.Resource.UniqueID,
			Path:          info.FullPath,
			DisplayName:   info.Resource.DisplayName,
			Methods:       info.Methods,
			URIParameters: parameterNames(info.Resource.AllURIParameters),
			ChildCount:    len(info.Resource.Resources),
		})
	}
	return nil, output, nil
}

// filterWalkResources applies the path, method and identifier filters.
func filterWalkResources(resources []*walker.ResourceInfo, input walkResourcesInput) []*walker.ResourceInfo {
	var matched []*walker.ResourceInfo
	for _, info := range resources {
		if input.Path != "" && !matchWalkPath(info.FullPath, input.Path) {
			continue
		}
		if input.Method != "" && !slices.Contains(info.Methods, strings.ToLower(input.Method)) {
			continue
		}
		if input.ID != "" && !matchGlobName(info.Resource.UniqueID, input.ID) {
			continue
		}
		matched = append(matched, info)
	}
	return matched
}

// groupKeyFn returns the grouping function for a validated group_by value.
func groupKeyFn(groupBy string) func(*walker.ResourceInfo) []string {
	if strings.EqualFold(groupBy, "method") {
		return func(info *walker.ResourceInfo) []string { return info.Methods }
	}
	return func(info *walker.ResourceInfo) []string {
		segment, _, _ := strings.Cut(strings.TrimPrefix(info.FullPath, "/"), "/")
		return []string{"/" + segment}
	}
}

// parameterNames returns the name of each URI parameter descriptor.
func parameterNames(params []any) []string {
	names := makeSlice[string](len(params))
	for _, p := range params {
		obj, ok := raml.AsObject(p)
		if !ok {
			continue
		}
		if name, ok := obj.Get("name"); ok {
			names = append(names, fmt.Sprint(name))
		}
	}
	return names
}

// matchWalkPath reports whether a full resource path matches pattern.
// In patterns, * matches exactly one path segment and ** matches zero or
// more segments. Patterns without wildcards must match exactly.
func matchWalkPath(fullPath, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return fullPath == pattern
	}
	return matchSegments(strings.Split(fullPath, "/"), strings.Split(pattern, "/"))
}

func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case "**":
			for i := 0; i <= len(path); i++ {
				if matchSegments(path[i:], pattern[1:]) {
					return true
				}
			}
			return false
		case "*":
			if len(path) == 0 {
				return false
			}
		default:
			if len(path) == 0 || path[0] != pattern[0] {
				return false
			}
		}
		path, pattern = path[1:], pattern[1:]
	}
	return len(path) == 0
}

// matchGlobName matches name against a case-insensitive glob pattern, or
// compares case-insensitively when pattern has no wildcards.
func matchGlobName(name, pattern string) bool {
	if strings.ContainsAny(pattern, "*?") {
		matched, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
		return err == nil && matched
	}
	return strings.EqualFold(name, pattern)
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}
