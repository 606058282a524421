package domain

import "time"

// LocateStrategy records which search strategy found the question list.
type LocateStrategy string

const (
	// StrategyFastPath matched the known fixed offset root[1][1].
	StrategyFastPath LocateStrategy = "fast_path"

	// StrategySearch matched through the bounded breadth-first search.
	StrategySearch LocateStrategy = "search"
)

// String returns the string representation.
func (s LocateStrategy) String() string {
	return string(s)
}

// LocateResult is the outcome of a successful structure search.
type LocateResult struct {
	// Questions is the located question list, in blob order.
	Questions []Node

	// Strategy is the strategy that matched.
	Strategy LocateStrategy

	// Steps is the number of dequeue operations the search performed.
	// Zero for the fast path.
	Steps int
}

// Extraction is a completed field-map extraction.
type Extraction struct {
	// ID uniquely identifies this extraction.
	ID string `json:"id"`

	// Ref is the input reference (URL, file path, or "-").
	Ref string `json:"ref"`

	// Strategy is how the question list was found.
	Strategy LocateStrategy `json:"strategy"`

	// Questions is the number of question records inspected.
	Questions int `json:"questions"`

	// Fields is the extracted mapping.
	Fields *FieldMap `json:"fields"`

	// CreatedAt is when the extraction ran.
	CreatedAt time.Time `json:"created_at"`
}

// FieldCount returns the number of extracted fields.
func (e *Extraction) FieldCount() int {
	if e == nil {
		return 0
	}
	return e.Fields.Len()
}
