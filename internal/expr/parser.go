package expr

import (
	"fmt"
	"strings"

	"github.com/nextset/crate-builder/internal/models"
)

var selectorFields = map[string]SelectorField{
	"artist":   FieldArtist,
	"comment":  FieldComment,
	"date":     FieldDate,
	"key":      FieldKey,
	"label":    FieldLabel,
	"playlist": FieldPlaylist,
}

// parser is a recursive-descent precedence climber over the grammar in
// §4.3: or_expr over diff_expr over and_expr over atom, '&'/'|'/'~' left-
// associative at their level.
type parser struct {
	lex    *Lexer
	source string
	cur    Token
}

// Parse compiles a Combiner expression source string into an AST (§4.3).
func Parse(source string) (Node, error) {
	p := &parser{lex: NewLexer(source), source: source}
	p.advance()

	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokEOF {
		return nil, p.errorf("unexpected trailing input %q", p.cur.Text)
	}
	return node, nil
}

func (p *parser) advance() { p.cur = p.lex.Next() }

func (p *parser) errorf(format string, args ...any) error {
	return &models.ExpressionError{Source: p.source, Offset: p.cur.Offset, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseDiff()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TokPipe {
		p.advance()
		right, err := p.parseDiff()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseDiff() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TokTilde {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpDiff, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TokAmp {
		p.advance()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAtom() (Node, error) {
	switch p.cur.Kind {
	case TokLParen:
		p.advance()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != TokRParen {
			return nil, p.errorf("unmatched '('")
		}
		p.advance()
		return node, nil

	case TokLBrace:
		return p.parseSelector()

	case TokLBracket:
		return p.parseNumericSelector()

	case TokLiteral:
		text := p.cur.Text
		offset := p.cur.Offset
		p.advance()
		if text == "" {
			return nil, &models.ExpressionError{Source: p.source, Offset: offset, Message: "expected a tag literal"}
		}
		wildcard := strings.Contains(text, "*")
		if !wildcard {
			return Tag{Name: text}, nil
		}
		pattern := strings.ToLower(strings.ReplaceAll(text, "*", ""))
		return Tag{Name: text, Wildcard: true, Pattern: pattern}, nil

	default:
		return nil, p.errorf("unexpected token %q", p.cur.Text)
	}
}

func (p *parser) parseSelector() (Node, error) {
	// p.cur is TokLBrace; the lexer's cursor already sits just past '{'.
	braceOffset := p.cur.Offset

	body, _, ok := p.lex.ReadUntil('}')
	if !ok {
		return nil, &models.ExpressionError{Source: p.source, Offset: braceOffset, Message: "unmatched '{'"}
	}
	p.advance() // resync token stream past the '}'

	idx := strings.Index(body, ":")
	if idx < 0 {
		return nil, &models.ExpressionError{Source: p.source, Offset: braceOffset, Message: "selector missing ':' field separator"}
	}
	fieldName := strings.TrimSpace(body[:idx])
	payload := strings.TrimSpace(body[idx+1:])

	field, ok := selectorFields[fieldName]
	if !ok {
		return nil, &models.ExpressionError{Source: p.source, Offset: braceOffset, Message: "unknown selector field: " + fieldName}
	}
	if payload == "" {
		return nil, &models.ExpressionError{Source: p.source, Offset: braceOffset, Message: "empty selector payload"}
	}

	return Selector{Field: field, Payload: payload, Offset: braceOffset}, nil
}

func (p *parser) parseNumericSelector() (Node, error) {
	// p.cur is TokLBracket; the lexer's cursor already sits just past '['.
	bracketOffset := p.cur.Offset

	body, _, ok := p.lex.ReadUntil(']')
	if !ok {
		return nil, &models.ExpressionError{Source: p.source, Offset: bracketOffset, Message: "unmatched '['"}
	}
	p.advance()

	ranges, err := parseNumSel(p.source, bracketOffset, body)
	if err != nil {
		return nil, err
	}
	return NumericSelector{Ranges: ranges}, nil
}
