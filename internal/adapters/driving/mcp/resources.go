package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/formmap/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for formmap resources.
	uriScheme = "formmap://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.History == nil {
		return
	}

	// Recent extractions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "extractions",
		Name:        "extractions",
		Description: "Recent form extractions, newest first",
		MIMEType:    "application/json",
	}, s.handleExtractionsResource)

	// Template for a stored field map.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "extractions/{extractionId}",
		Name:        "extraction-fields",
		Description: "Field map of a past extraction, keys in form order",
		MIMEType:    "application/json",
	}, s.handleExtractionResource)
}

// handleExtractionsResource returns the recent extraction summaries.
func (s *Server) handleExtractionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleList(ctx, nil, ListInput{})
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(output.Extractions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling extractions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleExtractionResource returns the field map JSON of one extraction.
func (s *Server) handleExtractionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractExtractionID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	e, err := s.ports.History.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting extraction: %w", err)
	}

	data, err := json.MarshalIndent(e.Fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling fields: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractExtractionID extracts the id from a URI like formmap://extractions/{extractionId}.
func extractExtractionID(uri string) string {
	const prefix = uriScheme + "extractions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
