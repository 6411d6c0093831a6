package lexer

import "fmt"

// Kind identifies the category of a lexed token.
type Kind int

const (
	DECLARE Kind = iota
	SET
	TO_BE
	TO
	SHOW
	VALUE
	IF
	IS
	OTHERWISE
	PLUS
	MINUS
	TIMES
	DIVIDED_BY
	GREATER_THAN
	LESS_THAN
	PERIOD
	COLON
	IDENTIFIER
	NUMBER
	END // sentinel: end of input
)

var kindNames = [...]string{
	DECLARE:      "DECLARE",
	SET:          "SET",
	TO_BE:        "TO_BE",
	TO:           "TO",
	SHOW:         "SHOW",
	VALUE:        "VALUE",
	IF:           "IF",
	IS:           "IS",
	OTHERWISE:    "OTHERWISE",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	TIMES:        "TIMES",
	DIVIDED_BY:   "DIVIDED_BY",
	GREATER_THAN: "GREATER_THAN",
	LESS_THAN:    "LESS_THAN",
	PERIOD:       "PERIOD",
	COLON:        "COLON",
	IDENTIFIER:   "IDENTIFIER",
	NUMBER:       "NUMBER",
	END:          "END",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a classified slice of program text. Tokens are values and are
// never mutated after the lexer emits them.
type Token struct {
	Kind   Kind
	Lexeme string
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER, NUMBER:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
	default:
		return t.Kind.String()
	}
}
