package expr

import (
	"strconv"
	"strings"

	"github.com/nextset/crate-builder/internal/models"
)

// parseNumSel parses a numeric-selector body ("num_sel" in §4.3's grammar):
// a comma-separated list of integers or integer-dash-integer ranges. offset
// is the source position of the opening '[', used to stamp ExpressionError.
func parseNumSel(source string, offset int, body string) ([]NumRange, error) {
	items := strings.Split(body, ",")
	ranges := make([]NumRange, 0, len(items))
	for _, raw := range items {
		item := strings.TrimSpace(raw)
		if item == "" {
			return nil, &models.ExpressionError{Source: source, Offset: offset, Message: "empty numeric selector item"}
		}
		lo, hi, err := parseNumItem(item)
		if err != nil {
			return nil, &models.ExpressionError{Source: source, Offset: offset, Message: err.Error()}
		}
		if hi < lo {
			return nil, &models.ExpressionError{Source: source, Offset: offset, Message: "malformed range: hi < lo"}
		}
		ranges = append(ranges, NumRange{Lo: lo, Hi: hi})
	}
	if len(ranges) == 0 {
		return nil, &models.ExpressionError{Source: source, Offset: offset, Message: "numeric selector must contain at least one item"}
	}
	return ranges, nil
}

func parseNumItem(item string) (lo, hi int, err error) {
	if dash := strings.IndexByte(item, '-'); dash > 0 {
		loPart := strings.TrimSpace(item[:dash])
		hiPart := strings.TrimSpace(item[dash+1:])
		lo, err = strconv.Atoi(loPart)
		if err != nil {
			return 0, 0, &numErr{item}
		}
		hi, err = strconv.Atoi(hiPart)
		if err != nil {
			return 0, 0, &numErr{item}
		}
		return lo, hi, nil
	}
	n, err := strconv.Atoi(item)
	if err != nil {
		return 0, 0, &numErr{item}
	}
	return n, n, nil
}

type numErr struct{ item string }

func (e *numErr) Error() string { return "malformed numeric item: " + e.item }

// classifyRange maps a range to the attribute it selects, per §4.3's
// magnitude rule: both endpoints ≤ 5 -> rating; either endpoint > 5 ->
// BPM; both endpoints ≥ 1900 -> year. The year case is checked first since
// a year range also satisfies "either endpoint > 5".
func classifyRange(r NumRange) attrKind {
	switch {
	case r.Lo >= 1900 && r.Hi >= 1900:
		return attrYear
	case r.Lo <= 5 && r.Hi <= 5:
		return attrRating
	default:
		return attrBPM
	}
}

type attrKind int

const (
	attrRating attrKind = iota
	attrBPM
	attrYear
)
