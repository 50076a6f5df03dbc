package expr

// Node is a Combiner expression AST variant (§4.3): Tag, Selector,
// NumericSelector, or one of the three binary combinators.
type Node interface {
	exprNode()
}

// Tag is a bare tag_literal atom. Wildcard is true when the literal
// contained an asterisk; Pattern then holds the lowercased, asterisk-
// stripped substring to match (§4.3, §4.4, §9's wildcard-locus rule).
type Tag struct {
	Name     string
	Wildcard bool
	Pattern  string
}

func (Tag) exprNode() {}

// SelectorField enumerates the six field names a brace selector may name.
type SelectorField int

const (
	FieldArtist SelectorField = iota
	FieldComment
	FieldDate
	FieldKey
	FieldLabel
	FieldPlaylist
)

// Selector is a '{field:payload}' atom (§4.3).
type Selector struct {
	Field   SelectorField
	Payload string
	Offset  int // source offset of the payload, for error messages
}

func (Selector) exprNode() {}

// NumRange is one lo-hi pair of a numeric selector, inclusive both ends.
type NumRange struct {
	Lo, Hi int
}

// NumericSelector is a '[num_sel]' atom (§4.3). Each range is independently
// classified as a rating, BPM, or year range at evaluation time.
type NumericSelector struct {
	Ranges []NumRange
}

func (NumericSelector) exprNode() {}

// BinOp enumerates the three Combiner binary operators.
type BinOp int

const (
	OpAnd BinOp = iota
	OpOr
	OpDiff
)

// Binary is And/Or/Diff (§4.3, §4.4), left-associative at their precedence
// level, built by the parser as a left-leaning chain.
type Binary struct {
	Op          BinOp
	Left, Right Node
}

func (Binary) exprNode() {}
