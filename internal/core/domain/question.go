package domain

// TypeCode classifies a question's UI widget.
// Codes 0-10 are fixed by the form format; anything else is TypeUnknown.
type TypeCode int

// Known type codes.
const (
	TypeShortAnswer TypeCode = iota
	TypeParagraph
	TypeMultipleChoice
	TypeDropdown
	TypeCheckbox
	TypeLinearScale
	TypeSectionHeader
	TypeMCGrid
	TypeCheckboxGrid
	TypeDate
	TypeTime

	// TypeUnknown marks a missing, non-integral or unrecognised code.
	// Records of this type go through the best-effort classification path.
	TypeUnknown TypeCode = -1
)

// ParseTypeCode reads a type code from a blob node.
func ParseTypeCode(n Node) TypeCode {
	v, ok := n.Int()
	if !ok || v < int64(TypeShortAnswer) || v > int64(TypeTime) {
		return TypeUnknown
	}
	return TypeCode(v)
}

// IsGrid returns true for matrix questions, where each row is its own field.
func (t TypeCode) IsGrid() bool {
	return t == TypeMCGrid || t == TypeCheckboxGrid
}

// IsOpenEnded returns true for free-text widgets.
func (t TypeCode) IsOpenEnded() bool {
	switch t {
	case TypeShortAnswer, TypeParagraph, TypeDate, TypeTime:
		return true
	default:
		return false
	}
}

// IsEnumerated returns true for widgets restricted to a fixed option set.
// Grid rows are enumerated as well; see IsGrid.
func (t TypeCode) IsEnumerated() bool {
	switch t {
	case TypeMultipleChoice, TypeDropdown, TypeCheckbox, TypeLinearScale:
		return true
	default:
		return false
	}
}

// String returns the code name.
func (t TypeCode) String() string {
	switch t {
	case TypeShortAnswer:
		return "SHORT_ANSWER"
	case TypeParagraph:
		return "PARAGRAPH"
	case TypeMultipleChoice:
		return "MULTIPLE_CHOICE"
	case TypeDropdown:
		return "DROPDOWN"
	case TypeCheckbox:
		return "CHECKBOX"
	case TypeLinearScale:
		return "LINEAR_SCALE"
	case TypeSectionHeader:
		return "SECTION_HEADER"
	case TypeMCGrid:
		return "MC_GRID"
	case TypeCheckboxGrid:
		return "CHECKBOX_GRID"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	default:
		return "UNKNOWN"
	}
}

// Positions of question record attributes.
const (
	questionIDPos   = 0
	titlePos        = 1
	descriptionPos  = 2
	typeCodePos     = 3
	answerBlocksPos = 4
)

// QuestionRecord is a question inferred from the positional shape
// [questionId, title, description, typeCode, answerBlocks, ...].
type QuestionRecord struct {
	// ID is the question identifier, null when absent.
	ID Node

	// Title and Description are informational only.
	Title       string
	Description string

	// Type drives classification.
	Type TypeCode

	// Blocks holds the answer definitions; may be empty.
	Blocks []Node
}

// ParseQuestion attempts to read a question record.
// It returns false when the node is not a sequence or its answer blocks
// are not a sequence; such records carry no usable fields.
func ParseQuestion(n Node) (QuestionRecord, bool) {
	if !n.IsSequence() {
		return QuestionRecord{}, false
	}
	blocks := n.Index(answerBlocksPos)
	if !blocks.IsSequence() {
		return QuestionRecord{}, false
	}
	title, _ := n.Index(titlePos).Str()
	desc, _ := n.Index(descriptionPos).Str()
	return QuestionRecord{
		ID:          n.Index(questionIDPos),
		Title:       title,
		Description: desc,
		Type:        ParseTypeCode(n.Index(typeCodePos)),
		Blocks:      blocks.Children(),
	}, true
}

// LooksLikeQuestion is the structural predicate used to recognise a
// question list: a sequence with numeric id and type code and a
// sequence-valued answer-block field.
func LooksLikeQuestion(n Node) bool {
	return n.IsSequence() &&
		n.Index(questionIDPos).IsNumber() &&
		n.Index(typeCodePos).IsNumber() &&
		n.Index(answerBlocksPos).IsSequence()
}

// AnswerBlock is one answer definition: [entryId, options, ...].
// Grid questions have one block per row, with the columns as options.
type AnswerBlock struct {
	// FieldID is the derived "entry.<id>" key.
	FieldID string

	// Options is the raw option candidates; may be null.
	Options Node
}

// ParseAnswerBlock reads a non-grid answer definition. The options
// position is not checked; a missing list cleans to no labels.
func ParseAnswerBlock(n Node) (AnswerBlock, bool) {
	if !n.IsSequence() {
		return AnswerBlock{}, false
	}
	id, ok := FieldIDFor(n.Index(0))
	if !ok {
		return AnswerBlock{}, false
	}
	return AnswerBlock{FieldID: id, Options: n.Index(1)}, true
}

// ParseGridRow reads one grid row, which must carry its column labels
// as a sequence.
func ParseGridRow(n Node) (AnswerBlock, bool) {
	block, ok := ParseAnswerBlock(n)
	if !ok || !block.Options.IsSequence() {
		return AnswerBlock{}, false
	}
	return block, true
}
