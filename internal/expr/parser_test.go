package expr

import "testing"

func TestParseTagLiteral(t *testing.T) {
	node, err := Parse("House")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tag, ok := node.(Tag)
	if !ok {
		t.Fatalf("expected Tag, got %T", node)
	}
	if tag.Name != "House" || tag.Wildcard {
		t.Errorf("got %+v", tag)
	}
}

func TestParseWildcardTag(t *testing.T) {
	node, err := Parse("*tech*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tag := node.(Tag)
	if !tag.Wildcard || tag.Pattern != "tech" {
		t.Errorf("got %+v", tag)
	}
}

func TestParsePrecedence(t *testing.T) {
	// '&' binds tighter than '~' which binds tighter than '|': "a | b ~ c & d"
	// parses as a | (b ~ (c & d)).
	node, err := Parse("a | b ~ c & d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := node.(Binary)
	if !ok || top.Op != OpOr {
		t.Fatalf("expected top-level Or, got %#v", node)
	}
	right, ok := top.Right.(Binary)
	if !ok || right.Op != OpDiff {
		t.Fatalf("expected Diff under Or, got %#v", top.Right)
	}
	innerRight, ok := right.Right.(Binary)
	if !ok || innerRight.Op != OpAnd {
		t.Fatalf("expected And under Diff, got %#v", right.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	node, err := Parse("a & b & c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := node.(Binary)
	if top.Op != OpAnd {
		t.Fatalf("expected And, got %#v", node)
	}
	left, ok := top.Left.(Binary)
	if !ok || left.Op != OpAnd {
		t.Fatalf("expected left-leaning chain, got %#v", top.Left)
	}
	if _, ok := top.Right.(Tag); !ok {
		t.Fatalf("expected Tag on the right, got %#v", top.Right)
	}
}

func TestParseGrouping(t *testing.T) {
	node, err := Parse("(a | b) & c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := node.(Binary)
	if top.Op != OpAnd {
		t.Fatalf("expected And at top, got %#v", node)
	}
	if left, ok := top.Left.(Binary); !ok || left.Op != OpOr {
		t.Fatalf("expected Or inside parens, got %#v", top.Left)
	}
}

func TestParseSelector(t *testing.T) {
	node, err := Parse("{artist:*Eprom*}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := node.(Selector)
	if sel.Field != FieldArtist || sel.Payload != "*Eprom*" {
		t.Errorf("got %+v", sel)
	}
}

func TestParseSelectorWithColonInPayload(t *testing.T) {
	node, err := Parse("{comment:*12:00*}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := node.(Selector)
	if sel.Payload != "*12:00*" {
		t.Errorf("got payload %q", sel.Payload)
	}
}

func TestParseSelectorUnknownField(t *testing.T) {
	_, err := Parse("{unknown:x}")
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseSelectorEmptyPayload(t *testing.T) {
	_, err := Parse("{artist:}")
	if err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestParseSelectorUnmatchedBrace(t *testing.T) {
	_, err := Parse("{artist:x")
	if err == nil {
		t.Fatal("expected error for unmatched brace")
	}
}

func TestParseNumericSelector(t *testing.T) {
	node, err := Parse("[130-150,5]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := node.(NumericSelector)
	want := []NumRange{{Lo: 130, Hi: 150}, {Lo: 5, Hi: 5}}
	if len(sel.Ranges) != len(want) || sel.Ranges[0] != want[0] || sel.Ranges[1] != want[1] {
		t.Errorf("got %+v, want %+v", sel.Ranges, want)
	}
}

func TestParseNumericSelectorMalformedRange(t *testing.T) {
	_, err := Parse("[150-130]")
	if err == nil {
		t.Fatal("expected error for hi < lo")
	}
}

func TestParseUnmatchedParen(t *testing.T) {
	_, err := Parse("(House & Techno")
	if err == nil {
		t.Fatal("expected error for unmatched paren")
	}
}

func TestParseTrailingOperator(t *testing.T) {
	_, err := Parse("House &")
	if err == nil {
		t.Fatal("expected error for dangling operator")
	}
}

func TestParseTagLiteralWithInternalSpace(t *testing.T) {
	node, err := Parse("Hip Hop & Minimal Deep Tech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := node.(Binary)
	left := top.Left.(Tag)
	if left.Name != "Hip Hop" {
		t.Errorf("got left tag %q", left.Name)
	}
	right := top.Right.(Tag)
	if right.Name != "Minimal Deep Tech" {
		t.Errorf("got right tag %q", right.Name)
	}
}
