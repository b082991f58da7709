package action

// InputKind enumerates text-edit requests.
type InputKind int

const (
	InsertText InputKind = iota
	DeletePrevChar
	DeletePrevWord
	DeleteNextChar
	CaretLeft
	CaretRight
	CaretWordLeft
	CaretWordRight
	CaretStart
	CaretEnd
)

// InputRequest is a single edit applied to the focused text buffer. Text is
// only meaningful for InsertText.
type InputRequest struct {
	Kind InputKind
	Text string
}
