package domain

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// NodeKind identifies which variant of the blob sum type a Node holds.
type NodeKind int

const (
	// KindNull is an absent or null value.
	KindNull NodeKind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindNumber is a finite numeric scalar.
	KindNumber
	// KindString is a text scalar.
	KindString
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindObject is a keyed object whose key order is preserved.
	KindObject
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindObject:
		return "object"
	default:
		return unknownDescription
	}
}

// Node is one node of the decoded form-definition blob.
// The zero value is a null node. Nodes are immutable once built;
// accessors never panic and return a null node for missing positions.
type Node struct {
	kind   NodeKind
	b      bool
	num    float64
	text   string // string value, or the literal of a number
	items  []Node // sequence members, or object values in key order
	keys   []string
	fields map[string]int // object key -> index into items
}

// Null returns a null node.
func Null() Node {
	return Node{}
}

// Bool returns a boolean node.
func Bool(v bool) Node {
	return Node{kind: KindBool, b: v}
}

// Number returns a numeric node. Non-finite values become null.
func Number(v float64) Node {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null()
	}
	return Node{kind: KindNumber, num: v, text: formatNumber(v)}
}

// NumberLiteral returns a numeric node from its decimal literal,
// keeping the literal text so large identifiers survive exactly.
func NumberLiteral(lit string) (Node, error) {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Null(), err
	}
	n := Number(v)
	if n.kind == KindNumber {
		n.text = lit
	}
	return n, nil
}

// String returns a text node.
func String(v string) Node {
	return Node{kind: KindString, text: v}
}

// Sequence returns a sequence node holding items in order.
func Sequence(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{kind: KindSequence, items: items}
}

// ObjectBuilder accumulates key/value pairs for an object node.
// A repeated key keeps its first position and takes the last value.
type ObjectBuilder struct {
	keys   []string
	items  []Node
	fields map[string]int
}

// Set adds or replaces a field.
func (b *ObjectBuilder) Set(key string, value Node) {
	if b.fields == nil {
		b.fields = make(map[string]int)
	}
	if i, ok := b.fields[key]; ok {
		b.items[i] = value
		return
	}
	b.fields[key] = len(b.items)
	b.keys = append(b.keys, key)
	b.items = append(b.items, value)
}

// Build returns the object node. The builder must not be reused.
func (b *ObjectBuilder) Build() Node {
	if b.fields == nil {
		b.fields = make(map[string]int)
	}
	return Node{kind: KindObject, keys: b.keys, items: b.items, fields: b.fields}
}

// FromValue converts a plain Go value (as produced by encoding/json or
// written in tests) into a Node. Map keys are sorted for determinism.
func FromValue(v any) Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case Node:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case float64:
		return Number(x)
	case json.Number:
		n, err := NumberLiteral(x.String())
		if err != nil {
			return Null()
		}
		return n
	case []any:
		items := make([]Node, len(x))
		for i, item := range x {
			items[i] = FromValue(item)
		}
		return Sequence(items...)
	case []string:
		items := make([]Node, len(x))
		for i, item := range x {
			items[i] = String(item)
		}
		return Sequence(items...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var b ObjectBuilder
		for _, k := range keys {
			b.Set(k, FromValue(x[k]))
		}
		return b.Build()
	default:
		return Null()
	}
}

// Kind returns the node variant.
func (n Node) Kind() NodeKind { return n.kind }

// IsNull reports whether the node is null or absent.
func (n Node) IsNull() bool { return n.kind == KindNull }

// IsNumber reports whether the node is a finite number.
func (n Node) IsNumber() bool { return n.kind == KindNumber }

// IsString reports whether the node is text.
func (n Node) IsString() bool { return n.kind == KindString }

// IsSequence reports whether the node is an ordered sequence.
func (n Node) IsSequence() bool { return n.kind == KindSequence }

// IsObject reports whether the node is a keyed object.
func (n Node) IsObject() bool { return n.kind == KindObject }

// Len returns the number of sequence members or object fields.
func (n Node) Len() int {
	if n.kind == KindSequence || n.kind == KindObject {
		return len(n.items)
	}
	return 0
}

// Index returns the i-th sequence member, or a null node when the node
// is not a sequence or i is out of range.
func (n Node) Index(i int) Node {
	if n.kind != KindSequence || i < 0 || i >= len(n.items) {
		return Null()
	}
	return n.items[i]
}

// Children returns sequence members in order, or object values in key
// order. Scalars have no children.
func (n Node) Children() []Node {
	if n.kind != KindSequence && n.kind != KindObject {
		return nil
	}
	return slices.Clone(n.items)
}

// Keys returns object keys in decoded order.
func (n Node) Keys() []string {
	if n.kind != KindObject {
		return nil
	}
	return slices.Clone(n.keys)
}

// Field returns the value stored under key in an object node.
func (n Node) Field(key string) (Node, bool) {
	if n.kind != KindObject {
		return Null(), false
	}
	i, ok := n.fields[key]
	if !ok {
		return Null(), false
	}
	return n.items[i], true
}

// Float returns the numeric value.
func (n Node) Float() (float64, bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	return n.num, true
}

// Int returns the value of an integral number.
func (n Node) Int() (int64, bool) {
	if n.kind != KindNumber || n.num != math.Trunc(n.num) {
		return 0, false
	}
	if n.num < math.MinInt64 || n.num > math.MaxInt64 {
		return 0, false
	}
	return int64(n.num), true
}

// Str returns the value of a text node.
func (n Node) Str() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.text, true
}

// Literal returns the decimal literal of a number node.
func (n Node) Literal() string {
	if n.kind != KindNumber {
		return ""
	}
	return n.text
}

// Text stringifies the node for use as a label. Strings are returned
// as-is, numbers in shortest decimal form, booleans as true/false and
// null as empty. Sequences join their members with commas; objects
// carry no label text.
func (n Node) Text() string {
	switch n.kind {
	case KindString:
		return n.text
	case KindNumber:
		return formatNumber(n.num)
	case KindBool:
		return strconv.FormatBool(n.b)
	case KindSequence:
		parts := make([]string, len(n.items))
		for i, item := range n.items {
			parts[i] = item.Text()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
