package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/logger"
)

// defaultPlaceholder matches the English "Choose..." dropdown prompt.
var defaultPlaceholder = regexp.MustCompile(`(?i)^choose`)

// Classifier turns question records into field entries.
// A Classifier is immutable after construction.
type Classifier struct {
	placeholders []*regexp.Regexp
}

// NewClassifier creates a classifier that drops labels matching the
// English placeholder plus any extra patterns.
func NewClassifier(extraPatterns ...string) (*Classifier, error) {
	c := &Classifier{placeholders: []*regexp.Regexp{defaultPlaceholder}}
	for _, p := range extraPatterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: placeholder pattern %q: %v", domain.ErrInvalidInput, p, err)
		}
		c.placeholders = append(c.placeholders, re)
	}
	return c, nil
}

// DefaultClassifier returns a classifier with only the English
// placeholder filter.
func DefaultClassifier() *Classifier {
	return &Classifier{placeholders: []*regexp.Regexp{defaultPlaceholder}}
}

// Classify produces the fields carried by one question record.
// Malformed records and rows contribute nothing.
func (c *Classifier) Classify(record domain.Node) []domain.Field {
	q, ok := domain.ParseQuestion(record)
	if !ok {
		logger.Debug("Skipping record: not a question shape")
		return nil
	}

	if q.Type.IsGrid() {
		return c.classifyGrid(q)
	}

	if len(q.Blocks) == 0 {
		logger.Debug("Skipping %s question %q: no answer blocks", q.Type, q.Title)
		return nil
	}
	block, ok := domain.ParseAnswerBlock(q.Blocks[0])
	if !ok {
		logger.Debug("Skipping %s question %q: invalid answer block", q.Type, q.Title)
		return nil
	}

	switch {
	case q.Type.IsOpenEnded():
		return []domain.Field{{ID: block.FieldID, Entry: domain.OpenEndedEntry()}}
	case q.Type.IsEnumerated():
		return []domain.Field{{ID: block.FieldID, Entry: domain.EnumeratedEntry(c.CleanLabels(block.Options))}}
	default:
		// Unrecognised layout: guess from whether any labels survive.
		logger.Debug("Unknown type code %s for %q, classifying by options", q.Type, q.Title)
		labels := c.CleanLabels(block.Options)
		if len(labels) == 0 {
			return []domain.Field{{ID: block.FieldID, Entry: domain.OpenEndedEntry()}}
		}
		return []domain.Field{{ID: block.FieldID, Entry: domain.EnumeratedEntry(labels)}}
	}
}

func (c *Classifier) classifyGrid(q domain.QuestionRecord) []domain.Field {
	fields := make([]domain.Field, 0, len(q.Blocks))
	for i, raw := range q.Blocks {
		row, ok := domain.ParseGridRow(raw)
		if !ok {
			logger.Debug("Skipping row %d of grid %q: invalid shape", i, q.Title)
			continue
		}
		fields = append(fields, domain.Field{
			ID:    row.FieldID,
			Entry: domain.EnumeratedEntry(c.CleanLabels(row.Options)),
		})
	}
	return fields
}

// CleanLabels extracts displayable option labels from a raw option list.
// Nested sequences contribute their first member. Labels are trimmed;
// empty ones and placeholders are dropped. Order is preserved and
// duplicates are kept.
func (c *Classifier) CleanLabels(options domain.Node) []string {
	if !options.IsSequence() {
		return []string{}
	}
	labels := make([]string, 0, options.Len())
	for _, opt := range options.Children() {
		if opt.IsSequence() {
			opt = opt.Index(0)
		}
		label := strings.TrimSpace(opt.Text())
		if label == "" || c.isPlaceholder(label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (c *Classifier) isPlaceholder(label string) bool {
	for _, re := range c.placeholders {
		if re.MatchString(label) {
			return true
		}
	}
	return false
}
