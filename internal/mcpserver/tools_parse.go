package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/walker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The RAML document to parse"`
	NormalizeTypes *bool     `json:"normalize_types,omitempty" jsonschema:"Normalize declared types (wrap optional properties). Defaults to RAML2OBJ_NORMALIZE_TYPES."`
	Full           bool      `json:"full,omitempty"            jsonschema:"Return the full enriched document as JSON instead of only the summary"`
}

type docSummary struct {
	Title    string `json:"title"`
	UniqueID string `json:"unique_id"`
}

type diagnosticSummary struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	IsWarning bool   `json:"is_warning,omitempty"`
}

type parseOutput struct {
	Title             string              `json:"title"`
	Version           string              `json:"version,omitempty"`
	BaseURI           string              `json:"base_uri,omitempty"`
	Protocols         []string            `json:"protocols,omitempty"`
	ResourceCount     int                 `json:"resource_count"`
	MethodCount       int                 `json:"method_count"`
	TypeCount         int                 `json:"type_count"`
	TraitCount        int                 `json:"trait_count"`
	ResourceTypeCount int                 `json:"resource_type_count"`
	SecuritySchemes   []string            `json:"security_schemes,omitempty"`
	Documentation     []docSummary        `json:"documentation,omitempty"`
	ErrorCount        int                 `json:"error_count"`
	Diagnostics       []diagnosticSummary `json:"diagnostics,omitempty"`
	FullDocument      string              `json:"full_document,omitempty"`
}

func handleParse(ctx context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve(ctx, defaultFlags(input.NormalizeTypes))
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}
	doc := result.Document

	resources, err := walker.CollectResources(doc)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}
	methods, err := walker.CollectMethods(doc)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Title:             doc.Title,
		Version:           doc.Version,
		BaseURI:           doc.BaseURI,
		Protocols:         doc.Protocols,
		ResourceCount:     len(resources.All),
		MethodCount:       len(methods.All),
		TypeCount:         len(raml.Keys(doc.Types)),
		TraitCount:        len(raml.Keys(doc.Traits)),
		ResourceTypeCount: len(raml.Keys(doc.ResourceTypes)),
		SecuritySchemes:   raml.Keys(doc.SecuritySchemes),
		ErrorCount:        len(result.Errors()),
	}

	output.Documentation = makeSlice[docSummary](len(doc.Documentation))
	for _, section := range doc.Documentation {
		if section != nil {
			output.Documentation = append(output.Documentation, docSummary{Title: section.Title, UniqueID: section.UniqueID})
		}
	}

	output.Diagnostics = makeSlice[diagnosticSummary](len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, diagnosticSummary{
			Code:      int(d.Code),
			Message:   d.Message,
			Line:      d.Line,
			Column:    d.Column,
			IsWarning: d.IsWarning,
		})
	}

	if input.Full {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}
