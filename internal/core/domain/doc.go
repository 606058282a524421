// Package domain defines the core business entities for formmap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Node: One node of the decoded form-definition blob
//   - QuestionRecord: A question inferred from the blob's positional shape
//   - FieldEntry / FieldMap: The extracted entry-id to option-list mapping
//   - Extraction: A completed extraction as stored in history
//   - Plan: Weighted answers used to generate submissions
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
