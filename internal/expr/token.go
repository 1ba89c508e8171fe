package expr

import "fmt"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	OpenParen TokenType = iota
	CloseParen
	Number
	Plus
	Minus
	Star
	Slash
	UnitSuffix
)

func (t TokenType) String() string {
	switch t {
	case OpenParen:
		return "'('"
	case CloseParen:
		return "')'"
	case Number:
		return "number"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Star:
		return "'*'"
	case Slash:
		return "'/'"
	case UnitSuffix:
		return "unit"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is a single lexeme and its byte offset in the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Tokenize splits input into tokens. Spaces are ignored and so is any byte
// that does not start a token, so "1 inch" lexes the same as "1 in".
// Numbers are digits with at most one decimal point; signs are operators.
func Tokenize(input string) []Token {
	var tokens []Token
	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == ' ':
			i++
		case isDigit(c) || c == '.':
			start := i
			seenDecimal := false
			for i < len(input) && (isDigit(input[i]) || (input[i] == '.' && !seenDecimal)) {
				if input[i] == '.' {
					seenDecimal = true
				}
				i++
			}
			tokens = append(tokens, Token{Type: Number, Value: input[start:i], Pos: start})
		case c == '(':
			tokens = append(tokens, Token{Type: OpenParen, Value: "(", Pos: i})
			i++
		case c == ')':
			tokens = append(tokens, Token{Type: CloseParen, Value: ")", Pos: i})
			i++
		case c == '+':
			tokens = append(tokens, Token{Type: Plus, Value: "+", Pos: i})
			i++
		case c == '-':
			tokens = append(tokens, Token{Type: Minus, Value: "-", Pos: i})
			i++
		case c == '*':
			tokens = append(tokens, Token{Type: Star, Value: "*", Pos: i})
			i++
		case c == '/':
			tokens = append(tokens, Token{Type: Slash, Value: "/", Pos: i})
			i++
		case c == 'i' && i+1 < len(input) && input[i+1] == 'n':
			tokens = append(tokens, Token{Type: UnitSuffix, Value: "in", Pos: i})
			i += 2
		case c == 'm' && i+1 < len(input) && input[i+1] == 'm':
			tokens = append(tokens, Token{Type: UnitSuffix, Value: "mm", Pos: i})
			i += 2
		default:
			i++
		}
	}
	return tokens
}
