// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes raml2obj capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/raml2obj"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `raml2obj MCP server: loads RAML 1.0 API descriptions and returns the enriched documentation tree (resource identifiers, parent URLs, inherited URI parameters).

Configuration: All defaults are configurable via RAML2OBJ_* environment variables set in your MCP client config.

Key settings:
- RAML2OBJ_CACHE_FILE_TTL (default: 15m) - cache TTL for local files
- RAML2OBJ_CACHE_URL_TTL (default: 5m) - cache TTL for URL-fetched documents
- RAML2OBJ_CACHE_ENABLED (default: true) - disable caching entirely
- RAML2OBJ_WALK_LIMIT (default: 100) - default result limit for walk_resources
- RAML2OBJ_WALK_DETAIL_LIMIT (default: 25) - default limit in detail mode
- RAML2OBJ_NORMALIZE_TYPES (default: false) - normalize declared types by default
- RAML2OBJ_STRICT_IDS (default: false) - fail on resource identifier collisions

Caching: Enriched documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

// newServer creates the MCP server with every tool registered.
func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "raml2obj", Version: raml2obj.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Load a RAML 1.0 document and enrich it. Returns a structural summary: title, version, base URI, resource/method/type counts, documentation sections with their identifiers, and loader diagnostics. Use full=true only for small documents; for large ones use walk_resources to explore the resource tree.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_resources",
		Description: "Walk the enriched resource tree of a RAML document. Filter by full path pattern (* = one segment, ** = zero or more segments, e.g. /users/**), HTTP method, or unique identifier glob. Returns summaries (uniqueId, path, methods, inherited URI parameter names) by default or the full resource objects (without child resources) with detail=true. Use group_by (method or segment) to get distribution counts instead of individual items.",
	}, handleWalkResources)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.WalkLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.WalkLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// detailLimit returns a lower default limit for detail mode output.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.WalkDetailLimit
	}
	return limit
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// so internal directory structure is not sent to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
