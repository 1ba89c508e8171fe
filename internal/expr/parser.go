package expr

import (
	"fmt"
	"strconv"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// SyntaxError reports malformed input. Pos is a byte offset, or the input
// length when the input ended early.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

type parser struct {
	tokens []Token
	pos    int
	end    int
}

// Parse builds an expression tree from input.
//
//	expr   := term (('+' | '-') expr)?
//	term   := factor (('*' | '/') term)?
//	factor := number unit? | number number '/' number unit? | '(' expr ')' unit?
func Parse(input string) (Node, error) {
	p := &parser{tokens: Tokenize(input), end: len(input)}
	n, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.errorf(tok.Pos, "unexpected %s after expression", tok.Type)
	}
	return n, nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) at(t TokenType) bool {
	tok, ok := p.peek()
	return ok && tok.Type == t
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected(want string) error {
	tok, ok := p.peek()
	if !ok {
		return p.errorf(p.end, "expected %s, got end of input", want)
	}
	return p.errorf(tok.Pos, "expected %s, got %s", want, tok.Type)
}

func (p *parser) expression() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.at(Plus) || p.at(Minus) {
		op := p.tokens[p.pos].Type
		p.pos++
		right, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &BinaryOperation{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) term() (Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	if p.at(Star) || p.at(Slash) {
		op := p.tokens[p.pos].Type
		p.pos++
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return &BinaryOperation{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) factor() (Node, error) {
	switch {
	case p.at(Number):
		value, err := p.number()
		if err != nil {
			return nil, err
		}
		if p.at(Number) {
			// "1 1/8": whole part followed by a fraction.
			frac, err := p.fraction()
			if err != nil {
				return nil, err
			}
			return &BinaryOperation{
				Op:    Plus,
				Left:  &Quantity{Value: value},
				Right: frac,
				Unit:  p.optionalUnit(),
			}, nil
		}
		return &Quantity{Value: value, Unit: p.optionalUnit()}, nil

	case p.at(OpenParen):
		p.pos++
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.at(CloseParen) {
			return nil, p.unexpected("')'")
		}
		p.pos++
		unit := p.optionalUnit()
		if unit == dimension.None || unit == annotatedUnit(inner) {
			return inner, nil
		}
		return &UnitExpression{Unit: unit, Expr: inner}, nil
	}
	return nil, p.unexpected("number or '('")
}

func (p *parser) fraction() (Node, error) {
	num, err := p.number()
	if err != nil {
		return nil, err
	}
	if !p.at(Slash) {
		return nil, p.unexpected("'/'")
	}
	p.pos++
	den, err := p.number()
	if err != nil {
		return nil, err
	}
	return &BinaryOperation{Op: Slash, Left: &Quantity{Value: num}, Right: &Quantity{Value: den}}, nil
}

func (p *parser) number() (float64, error) {
	if !p.at(Number) {
		return 0, p.unexpected("number")
	}
	tok := p.tokens[p.pos]
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, p.errorf(tok.Pos, "invalid number %q", tok.Value)
	}
	p.pos++
	return v, nil
}

func (p *parser) optionalUnit() dimension.Unit {
	if !p.at(UnitSuffix) {
		return dimension.None
	}
	u := dimension.Unit(p.tokens[p.pos].Value)
	p.pos++
	return u
}
