package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

// defaultListLimit bounds list_extractions when no limit is given.
const defaultListLimit = 20

// ExtractInput is the input schema for the extract_form tool.
type ExtractInput struct {
	Ref string `json:"ref" jsonschema:"public viewform URL or local path of the form"`
}

// FieldOutput describes one extracted field.
type FieldOutput struct {
	Options   []string `json:"options"`
	OpenEnded bool     `json:"open_ended"`
}

// ExtractOutput is the output schema for the extract_form tool.
type ExtractOutput struct {
	ID         string                 `json:"id"`
	Strategy   string                 `json:"strategy"`
	FieldCount int                    `json:"field_count"`
	Order      []string               `json:"order"`
	Fields     map[string]FieldOutput `json:"fields"`
}

// ListInput is the input schema for the list_extractions tool.
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of extractions to return (default 20)"`
}

// ListOutput is the output schema for the list_extractions tool.
type ListOutput struct {
	Extractions []ExtractionSummary `json:"extractions"`
	Count       int                 `json:"count"`
}

// ExtractionSummary is one history entry.
type ExtractionSummary struct {
	ID         string `json:"id"`
	Ref        string `json:"ref"`
	Strategy   string `json:"strategy"`
	FieldCount int    `json:"field_count"`
	CreatedAt  string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_form",
		Description: "Extract the submittable fields (entry ids, options, open-ended flag) of a public form",
	}, s.handleExtract)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_extractions",
			Description: "List recent form extractions, newest first",
		}, s.handleList)
	}
}

// handleExtract handles the extract_form tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	ref := strings.TrimSpace(input.Ref)
	if ref == "" {
		return nil, ExtractOutput{}, fmt.Errorf("%w: ref is required", domain.ErrInvalidInput)
	}

	e, err := s.ports.Extract.Extract(ctx, ref)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	return nil, toExtractOutput(e), nil
}

// handleList handles the list_extractions tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	list, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Extractions: make([]ExtractionSummary, len(list)),
		Count:       len(list),
	}
	for i := range list {
		output.Extractions[i] = ExtractionSummary{
			ID:         list[i].ID,
			Ref:        list[i].Ref,
			Strategy:   list[i].Strategy.String(),
			FieldCount: list[i].FieldCount(),
			CreatedAt:  list[i].CreatedAt.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}

func toExtractOutput(e *domain.Extraction) ExtractOutput {
	out := ExtractOutput{
		ID:         e.ID,
		Strategy:   e.Strategy.String(),
		FieldCount: e.FieldCount(),
		Order:      e.Fields.Keys(),
		Fields:     make(map[string]FieldOutput, e.FieldCount()),
	}
	for _, f := range e.Fields.Fields() {
		out.Fields[f.ID] = FieldOutput{Options: f.Entry.Options, OpenEnded: f.Entry.OpenEnded}
	}
	if out.Order == nil {
		out.Order = []string{}
	}
	return out
}
