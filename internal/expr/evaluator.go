package expr

import (
	"strings"

	"github.com/nextset/crate-builder/internal/models"
	"github.com/nextset/crate-builder/internal/tagindex"
)

// Evaluator walks a Combiner AST in post-order, producing a models.TrackSet
// per node (§4.4). It holds no state of its own beyond the TagIndex and the
// original source (kept only to stamp error messages).
type Evaluator struct {
	idx    *tagindex.TagIndex
	source string
}

// NewEvaluator builds an Evaluator against idx. source is the original
// expression text, retained for error reporting only.
func NewEvaluator(idx *tagindex.TagIndex, source string) *Evaluator {
	return &Evaluator{idx: idx, source: source}
}

// Eval evaluates node per §4.4. Unknown tags and unknown playlists behave
// per §4.1/§4.4/§7: unknown tags return the empty set, unknown playlists
// raise UnknownPlaylist.
func (e *Evaluator) Eval(node Node) (models.TrackSet, error) {
	switch n := node.(type) {
	case Tag:
		if n.Wildcard {
			return e.idx.TagsMatchingSubstring(n.Pattern), nil
		}
		return e.idx.Tag(n.Name), nil

	case Selector:
		return e.evalSelector(n)

	case NumericSelector:
		return e.evalNumericSelector(n), nil

	case Binary:
		left, err := e.Eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case OpAnd:
			return models.Intersect(left, right), nil
		case OpOr:
			return models.Union(left, right), nil
		case OpDiff:
			return models.Diff(left, right), nil
		}
	}
	return nil, &models.ExpressionError{Source: e.source, Message: "unrecognized AST node"}
}

func (e *Evaluator) evalSelector(s Selector) (models.TrackSet, error) {
	switch s.Field {
	case FieldArtist:
		return e.idx.ArtistGlob(s.Payload)
	case FieldLabel:
		return e.idx.LabelGlob(s.Payload)
	case FieldComment:
		return e.idx.CommentGlob(s.Payload)
	case FieldKey:
		return e.idx.KeyGlob(s.Payload)
	case FieldPlaylist:
		return e.idx.Playlist(strings.TrimSpace(s.Payload))
	case FieldDate:
		spec, err := parseDatePayload(e.source, s.Offset, s.Payload, e.idx.Now())
		if err != nil {
			return nil, err
		}
		return e.idx.DateMatches(spec), nil
	}
	return nil, &models.ExpressionError{Source: e.source, Offset: s.Offset, Message: "unreachable selector field"}
}

func (e *Evaluator) evalNumericSelector(n NumericSelector) models.TrackSet {
	sets := make([]models.TrackSet, 0, len(n.Ranges))
	for _, r := range n.Ranges {
		switch classifyRange(r) {
		case attrRating:
			sets = append(sets, e.idx.RatingIn(r.Lo, r.Hi))
		case attrBPM:
			sets = append(sets, e.idx.BPMIn(r.Lo, r.Hi))
		case attrYear:
			sets = append(sets, e.idx.YearIn(r.Lo, r.Hi))
		}
	}
	return models.Union(sets...)
}

// Evaluate is a convenience that parses source and evaluates it against idx
// in one call, used by the combiner playlist builder (§4.5).
func Evaluate(idx *tagindex.TagIndex, source string) (models.TrackSet, error) {
	node, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(idx, source).Eval(node)
}
