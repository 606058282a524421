package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFromFieldMap(t *testing.T) {
	m := NewFieldMap()
	m.Set("entry.1", EnumeratedEntry([]string{"A", "B", "C"}))
	m.Set("entry.2", OpenEndedEntry())
	m.Set("entry.3", EnumeratedEntry(nil))

	plan := PlanFromFieldMap("https://docs.google.com/forms/d/x/viewform", m)

	require.Len(t, plan.Fields, 3)
	assert.Equal(t, []int{34, 33, 33}, plan.Fields[0].Percentages())
	assert.Equal(t, []string{"A", "B", "C"}, plan.Fields[0].Labels())
	assert.True(t, plan.Fields[1].OpenEnded)
	assert.True(t, plan.Fields[2].OpenEnded, "option-less enumerated field becomes open-ended")
	assert.NoError(t, plan.Validate())
}

func TestPlan_Field(t *testing.T) {
	plan := Plan{Fields: []PlanField{{ID: "entry.1", OpenEnded: true}}}

	f, ok := plan.Field("entry.1")
	require.True(t, ok)
	f.Responses = []string{"hello"}
	assert.Equal(t, []string{"hello"}, plan.Fields[0].Responses)

	_, ok = plan.Field("entry.2")
	assert.False(t, ok)
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
	}{
		{"no fields", Plan{}},
		{"bad id", Plan{Fields: []PlanField{{ID: "q1", OpenEnded: true}}}},
		{"duplicate", Plan{Fields: []PlanField{{ID: "entry.1", OpenEnded: true}, {ID: "entry.1", OpenEnded: true}}}},
		{"open-ended with options", Plan{Fields: []PlanField{{ID: "entry.1", OpenEnded: true, Options: []WeightedOption{{"A", 100}}}}}},
		{"no options", Plan{Fields: []PlanField{{ID: "entry.1"}}}},
		{"sum not 100", Plan{Fields: []PlanField{{ID: "entry.1", Options: []WeightedOption{{"A", 50}, {"B", 40}}}}}},
		{"out of range", Plan{Fields: []PlanField{{ID: "entry.1", Options: []WeightedOption{{"A", 120}, {"B", -20}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlan))
		})
	}
}

func TestParsePercentList(t *testing.T) {
	vals, err := ParsePercentList("40, 35%, 25", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{40, 35, 25}, vals)

	vals, err = ParsePercentList("100,", 1)
	require.NoError(t, err)
	assert.Equal(t, []int{100}, vals)
}

func TestParsePercentList_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		contains string
	}{
		{"not integer", "50, abc", 2, "not an integer"},
		{"negative", "-10, 110", 2, "not an integer"},
		{"out of range", "150, 0", 2, "out of range"},
		{"wrong count", "50, 50", 3, "expected 3 values"},
		{"bad sum", "50, 40", 2, "sum to 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePercentList(tt.input, tt.expected)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLargestRemainder(t *testing.T) {
	tests := []struct {
		name        string
		percentages []int
		total       int
		expected    []int
	}{
		{"exact", []int{50, 50}, 10, []int{5, 5}},
		{"remainder to largest fraction", []int{33, 33, 34}, 10, []int{3, 3, 4}},
		{"ties go to later option", []int{50, 50}, 3, []int{1, 2}},
		{"zero total", []int{60, 40}, 0, []int{0, 0}},
		{"single", []int{100}, 7, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := LargestRemainder(tt.percentages, tt.total)
			assert.Equal(t, tt.expected, counts)

			sum := 0
			for _, c := range counts {
				sum += c
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestAssign_DeterministicAndProportional(t *testing.T) {
	options := []string{"Yes", "No"}
	first := Assign(options, []int{70, 30}, 20, "entry.1")
	second := Assign(options, []int{70, 30}, 20, "entry.1")

	require.Len(t, first, 20)
	assert.Equal(t, first, second)

	yes := 0
	for _, v := range first {
		if v == "Yes" {
			yes++
		}
	}
	assert.Equal(t, 14, yes)
}

func TestAssign_PadsWithFirstOption(t *testing.T) {
	got := Assign([]string{"A", "B"}, []int{10, 10}, 10, "k")

	require.Len(t, got, 10)
	count := 0
	for _, v := range got {
		if v == "A" {
			count++
		}
	}
	assert.GreaterOrEqual(t, count, 8)
}

func TestAssign_Edges(t *testing.T) {
	assert.Empty(t, Assign([]string{"A"}, []int{100}, 0, "k"))
	assert.Equal(t, []string{"", ""}, Assign(nil, nil, 2, "k"))
}
