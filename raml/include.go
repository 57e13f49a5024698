package raml

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/erraggy/raml2obj/ramlerrors"
	"go.yaml.in/yaml/v4"
)

// includeTag marks a scalar whose value is a path to splice in.
const includeTag = "!include"

// includeResolver replaces !include scalars with the content they name.
// YAML fragments (.raml, .yaml, .yml) are spliced in as node trees; any
// other file becomes a string scalar.
type includeResolver struct {
	loader  *Loader
	ctx     context.Context
	rootDir string
}

// resolveRoot resolves every include reachable from the document root.
func (r *includeResolver) resolveRoot(root *yaml.Node, src source) error {
	var stack []string
	if key := src.key(); key != "" {
		stack = append(stack, key)
	}
	return r.resolve(root, src, stack)
}

func (r *includeResolver) resolve(n *yaml.Node, from source, stack []string) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode, yaml.MappingNode:
		for _, child := range n.Content {
			if err := r.resolve(child, from, stack); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if n.Tag == includeTag {
			return r.include(n, from, stack)
		}
	}
	return nil
}

func (r *includeResolver) include(n *yaml.Node, from source, stack []string) error {
	target := strings.TrimSpace(n.Value)
	if target == "" {
		return &ramlerrors.IncludeError{From: from.name, Message: fmt.Sprintf("empty include at line %d", n.Line)}
	}
	if err := r.ctx.Err(); err != nil {
		return err
	}
	if limit := r.loader.maxIncludeDepth(); len(stack) > limit {
		return &ramlerrors.ResourceLimitError{
			ResourceType: "include_depth",
			Limit:        int64(limit),
			Actual:       int64(len(stack)),
			Message:      target,
		}
	}

	src, err := r.locate(target, from)
	if err != nil {
		return err
	}
	key := src.key()
	if slices.Contains(stack, key) {
		return &ramlerrors.IncludeError{Include: target, From: from.name, IsCircular: true}
	}

	var data []byte
	if src.url != nil {
		data, err = r.loader.fetchURL(r.ctx, src.url.String())
	} else {
		data, err = r.loader.readFile(src.file)
	}
	if err != nil {
		return &ramlerrors.IncludeError{Include: target, From: from.name, Cause: err}
	}
	r.loader.log().Debug("resolved include", "include", target, "from", from.name, "bytes", len(data))

	line, column := n.Line, n.Column
	if !src.isYAMLFragment() {
		*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(data), Line: line, Column: column}
		return nil
	}

	fragment, err := decodeYAML(data, src.name)
	if err != nil {
		return &ramlerrors.IncludeError{Include: target, From: from.name, Cause: err}
	}
	if err := r.resolve(fragment, src, append(stack, key)); err != nil {
		return err
	}
	*n = *fragment
	return nil
}

// locate turns an include target into a source, resolving it against the
// including document and rejecting paths that escape the root directory.
func (r *includeResolver) locate(target string, from source) (source, error) {
	if isURL(target) {
		u, err := url.Parse(target)
		if err != nil {
			return source{}, &ramlerrors.IncludeError{Include: target, From: from.name, Cause: err}
		}
		return source{name: target, url: u}, nil
	}

	if from.url != nil {
		ref, err := url.Parse(target)
		if err != nil {
			return source{}, &ramlerrors.IncludeError{Include: target, From: from.name, Cause: err}
		}
		u := from.url.ResolveReference(ref)
		return source{name: u.String(), url: u}, nil
	}

	p := target
	if !filepath.IsAbs(p) {
		p = filepath.Join(from.dir, p)
	}
	p = filepath.Clean(p)

	rel, err := filepath.Rel(r.rootDir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return source{}, &ramlerrors.IncludeError{
			Include:         target,
			From:            from.name,
			IsPathTraversal: true,
			Message:         "include resolves outside the document directory",
		}
	}
	return source{name: p, file: p, dir: filepath.Dir(p)}, nil
}

// key identifies a source for cycle detection.
func (s source) key() string {
	if s.url != nil {
		return s.url.String()
	}
	return s.file
}

// isYAMLFragment reports whether the source is parsed as YAML.
func (s source) isYAMLFragment() bool {
	ext := filepath.Ext(s.file)
	if s.url != nil {
		ext = path.Ext(s.url.Path)
	}
	switch strings.ToLower(ext) {
	case ".raml", ".yaml", ".yml":
		return true
	}
	return false
}
