package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldIDPrefix prefixes every field identifier.
const FieldIDPrefix = "entry."

// FieldIDFor derives the "entry.<id>" key from an entry id node.
// Only non-negative integral numbers are valid entry ids.
func FieldIDFor(n Node) (string, bool) {
	v, ok := n.Float()
	if !ok || v < 0 || v != math.Trunc(v) {
		return "", false
	}
	if v == 0 {
		// Covers -0, which passes the sign check.
		return FieldIDPrefix + "0", true
	}
	lit := n.Literal()
	if lit == "" || strings.ContainsAny(lit, ".eE-+") {
		lit = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return FieldIDPrefix + lit, true
}

// FieldKind is the semantic kind of an extracted field.
type FieldKind string

const (
	// FieldOpenEnded accepts free text (short answer, paragraph, date, time).
	FieldOpenEnded FieldKind = "open_ended"

	// FieldEnumerated is restricted to a known, ordered option set
	// (multiple choice, dropdown, checkbox, linear scale, grid rows).
	FieldEnumerated FieldKind = "enumerated"
)

// FieldEntry describes one value slot of the form.
// OpenEnded implies Options is empty. An enumerated entry may still have
// no options when the source list was empty or malformed.
type FieldEntry struct {
	Options   []string `json:"options"`
	OpenEnded bool     `json:"open_ended"`
}

// OpenEndedEntry returns a free-text entry.
func OpenEndedEntry() FieldEntry {
	return FieldEntry{Options: []string{}, OpenEnded: true}
}

// EnumeratedEntry returns an entry restricted to options.
func EnumeratedEntry(options []string) FieldEntry {
	if options == nil {
		options = []string{}
	}
	return FieldEntry{Options: options, OpenEnded: false}
}

// Kind returns the field kind.
func (e FieldEntry) Kind() FieldKind {
	if e.OpenEnded {
		return FieldOpenEnded
	}
	return FieldEnumerated
}

// Field pairs a field identifier with its entry.
type Field struct {
	ID    string
	Entry FieldEntry
}

// FieldMap is an ordered mapping from field identifier to entry.
// The first write of a key fixes its position; later writes to the same
// key replace the value. JSON encoding preserves insertion order.
type FieldMap struct {
	keys    []string
	entries map[string]FieldEntry
}

// NewFieldMap creates an empty field map.
func NewFieldMap() *FieldMap {
	return &FieldMap{entries: make(map[string]FieldEntry)}
}

// Set stores an entry under id.
func (m *FieldMap) Set(id string, entry FieldEntry) {
	if m.entries == nil {
		m.entries = make(map[string]FieldEntry)
	}
	if entry.Options == nil {
		entry.Options = []string{}
	}
	if _, exists := m.entries[id]; !exists {
		m.keys = append(m.keys, id)
	}
	m.entries[id] = entry
}

// Get returns the entry stored under id.
func (m *FieldMap) Get(id string) (FieldEntry, bool) {
	if m == nil {
		return FieldEntry{}, false
	}
	e, ok := m.entries[id]
	return e, ok
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns field identifiers in insertion order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Fields returns all fields in insertion order.
func (m *FieldMap) Fields() []Field {
	if m == nil {
		return nil
	}
	out := make([]Field, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Field{ID: k, Entry: m.entries[k]})
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("field map: expected object, got %v", tok)
	}

	out := NewFieldMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("field map: expected key, got %v", tok)
		}
		var entry FieldEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("field map: decoding %s: %w", key, err)
		}
		out.Set(key, entry)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = *out
	return nil
}
