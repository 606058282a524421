package services

import "github.com/custodia-labs/formmap/internal/core/domain"

// question builds a raw question record [id, title, desc, type, blocks].
func question(id int, title string, typeCode, blocks any) []any {
	return []any{id, title, nil, typeCode, blocks}
}

// block builds a non-grid answer block [entryId, options].
func block(entryID any, options any) []any {
	return []any{entryID, options}
}

// opts builds an option list where each option is [label].
func opts(labels ...any) []any {
	out := make([]any, len(labels))
	for i, l := range labels {
		out[i] = []any{l}
	}
	return out
}

// formBlob wraps questions at the fixed offset root[1][1].
func formBlob(questions ...[]any) domain.Node {
	list := make([]any, len(questions))
	for i, q := range questions {
		list[i] = q
	}
	return domain.FromValue([]any{nil, []any{"description", list}})
}

func node(v any) domain.Node {
	return domain.FromValue(v)
}
