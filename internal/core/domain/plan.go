package domain

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
)

// WeightedOption is one option of an enumerated field and the share of
// submissions that should choose it.
type WeightedOption struct {
	Label   string `json:"label" toml:"label"`
	Percent int    `json:"percent" toml:"percent"`
}

// PlanField describes how one field is answered across submissions.
type PlanField struct {
	// ID is the field identifier ("entry.<id>").
	ID string `json:"id" toml:"id"`

	// OpenEnded fields draw a random answer from Responses.
	OpenEnded bool `json:"open_ended" toml:"open_ended"`

	// Options are the weighted choices of an enumerated field.
	Options []WeightedOption `json:"options,omitempty" toml:"options,omitempty"`

	// Responses are candidate free-text answers. May be empty, in which
	// case the field is submitted blank.
	Responses []string `json:"responses,omitempty" toml:"responses,omitempty"`
}

// Labels returns the option labels in order.
func (f *PlanField) Labels() []string {
	out := make([]string, len(f.Options))
	for i, o := range f.Options {
		out[i] = o.Label
	}
	return out
}

// Percentages returns the option percentages in order.
func (f *PlanField) Percentages() []int {
	out := make([]int, len(f.Options))
	for i, o := range f.Options {
		out[i] = o.Percent
	}
	return out
}

// PercentTotal returns the sum of option percentages.
func (f *PlanField) PercentTotal() int {
	total := 0
	for _, o := range f.Options {
		total += o.Percent
	}
	return total
}

// Plan is a set of weighted answers used to generate form submissions.
type Plan struct {
	// FormURL is the public viewform URL of the form.
	FormURL string `json:"form_url" toml:"form_url"`

	// Fields are answered in order.
	Fields []PlanField `json:"fields" toml:"fields"`
}

// PlanFromFieldMap builds a starting plan from an extracted field map.
// Enumerated fields split 100% evenly across their options, with the
// remainder going to the first options. Enumerated fields without options
// cannot be weighted and become open-ended.
func PlanFromFieldMap(formURL string, fm *FieldMap) Plan {
	plan := Plan{FormURL: formURL, Fields: []PlanField{}}
	for _, f := range fm.Fields() {
		if f.Entry.OpenEnded || len(f.Entry.Options) == 0 {
			plan.Fields = append(plan.Fields, PlanField{ID: f.ID, OpenEnded: true})
			continue
		}
		n := len(f.Entry.Options)
		share, rem := 100/n, 100%n
		opts := make([]WeightedOption, n)
		for i, label := range f.Entry.Options {
			pct := share
			if i < rem {
				pct++
			}
			opts[i] = WeightedOption{Label: label, Percent: pct}
		}
		plan.Fields = append(plan.Fields, PlanField{ID: f.ID, Options: opts})
	}
	return plan
}

// Field returns the plan field with the given id.
func (p *Plan) Field(id string) (*PlanField, bool) {
	for i := range p.Fields {
		if p.Fields[i].ID == id {
			return &p.Fields[i], true
		}
	}
	return nil, false
}

// Validate checks that every enumerated field has options whose
// percentages are within 0-100 and sum to exactly 100.
func (p *Plan) Validate() error {
	if len(p.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidPlan)
	}
	seen := make(map[string]bool, len(p.Fields))
	for i := range p.Fields {
		f := &p.Fields[i]
		if !strings.HasPrefix(f.ID, FieldIDPrefix) {
			return fmt.Errorf("%w: field %q is not an entry id", ErrInvalidPlan, f.ID)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: duplicate field %s", ErrInvalidPlan, f.ID)
		}
		seen[f.ID] = true

		if f.OpenEnded {
			if len(f.Options) > 0 {
				return fmt.Errorf("%w: open-ended field %s has options", ErrInvalidPlan, f.ID)
			}
			continue
		}
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: field %s has no options", ErrInvalidPlan, f.ID)
		}
		for _, o := range f.Options {
			if o.Percent < 0 || o.Percent > 100 {
				return fmt.Errorf("%w: field %s: percentage out of range: %d", ErrInvalidPlan, f.ID, o.Percent)
			}
		}
		if total := f.PercentTotal(); total != 100 {
			return fmt.Errorf("%w: field %s: percentages must sum to 100 (got %d)", ErrInvalidPlan, f.ID, total)
		}
	}
	return nil
}

// ParsePercentList parses a comma-separated percentage list such as
// "40, 35%, 25". It requires exactly expected integer values in 0-100
// summing to 100.
func ParsePercentList(s string, expected int) ([]int, error) {
	var vals []int
	for _, part := range strings.Split(strings.ReplaceAll(s, "%", ""), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.TrimLeft(part, "0123456789") != "" {
			return nil, fmt.Errorf("%w: %q is not an integer percentage", ErrInvalidInput, part)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer percentage", ErrInvalidInput, part)
		}
		if v > 100 {
			return nil, fmt.Errorf("%w: percentage out of range: %d", ErrInvalidInput, v)
		}
		vals = append(vals, v)
	}
	if len(vals) != expected {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidInput, expected, len(vals))
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	if sum != 100 {
		return nil, fmt.Errorf("%w: percentages must sum to 100 (got %d)", ErrInvalidInput, sum)
	}
	return vals, nil
}

// LargestRemainder apportions total submissions across percentages.
// Each option gets the floor of its quota; leftover submissions go to the
// largest fractional remainders, ties broken towards the later option.
func LargestRemainder(percentages []int, total int) []int {
	type remainder struct {
		frac float64
		idx  int
	}

	counts := make([]int, len(percentages))
	rems := make([]remainder, len(percentages))
	left := total
	for i, p := range percentages {
		quota := float64(p*total) / 100.0
		floor := math.Floor(quota)
		counts[i] = int(floor)
		left -= counts[i]
		rems[i] = remainder{frac: quota - floor, idx: i}
	}

	sort.SliceStable(rems, func(a, b int) bool {
		if rems[a].frac != rems[b].frac {
			return rems[a].frac > rems[b].frac
		}
		return rems[a].idx > rems[b].idx
	})
	for i := 0; left > 0 && i < len(rems); i++ {
		counts[rems[i].idx]++
		left--
	}
	return counts
}

// Assign returns a deterministic, shuffled sequence of total option labels
// honouring percentages. The shuffle is seeded from seedKey so the same
// field always yields the same assignment.
func Assign(options []string, percentages []int, total int, seedKey string) []string {
	if total <= 0 {
		return []string{}
	}
	if len(options) == 0 {
		return make([]string, total)
	}

	counts := LargestRemainder(percentages, total)
	bucket := make([]string, 0, total)
	for i, opt := range options {
		if i >= len(counts) {
			break
		}
		for range counts[i] {
			bucket = append(bucket, opt)
		}
	}

	rnd := SeededRand(seedKey)
	rnd.Shuffle(len(bucket), func(i, j int) {
		bucket[i], bucket[j] = bucket[j], bucket[i]
	})

	for len(bucket) < total {
		bucket = append(bucket, options[0])
	}
	return bucket[:total]
}

// SeededRand returns a random source derived from key.
func SeededRand(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
