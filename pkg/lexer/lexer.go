package lexer

import "strings"

// keywords maps single words to their keyword kind. "divided by" is listed
// for completeness but a word-at-a-time scan never produces it; see
// Options.DividedBy.
var keywords = map[string]Kind{
	"Declare":    DECLARE,
	"Set":        SET,
	"to":         TO,
	"Show":       SHOW,
	"If":         IF,
	"is":         IS,
	"Otherwise":  OTHERWISE,
	"plus":       PLUS,
	"minus":      MINUS,
	"times":      TIMES,
	"divided by": DIVIDED_BY,
}

// phrase is a keyword spelled as a word followed by a fixed suffix in the
// raw input.
type phrase struct {
	word   string
	suffix string
	kind   Kind
	lexeme string
}

var phrases = []phrase{
	{word: "to", suffix: " be", kind: TO_BE, lexeme: "to be"},
	{word: "the", suffix: " value of", kind: VALUE, lexeme: "the value of"},
	{word: "greater", suffix: " than", kind: GREATER_THAN, lexeme: ">"},
	{word: "less", suffix: " than", kind: LESS_THAN, lexeme: "less than"},
}

var dividedBy = phrase{word: "divided", suffix: " by", kind: DIVIDED_BY, lexeme: "divided by"}

// Options tunes the scanner.
type Options struct {
	// DividedBy recognises "divided by" as a single DIVIDED_BY token.
	DividedBy bool
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src     string
	pos     int // index of the next byte to consume
	phrases []phrase
}

// New returns a lexer over src.
func New(src string, opts Options) *Lexer {
	l := &Lexer{src: src, phrases: phrases}
	if opts.DividedBy {
		l.phrases = append(append([]phrase{}, phrases...), dividedBy)
	}
	return l
}

// Tokenize scans text with the default options. It never fails: bytes that
// start no token are skipped.
func Tokenize(text string) []Token {
	return New(text, Options{}).Tokenize()
}

// Tokenize scans the whole input and returns the tokens terminated by END.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case isLetter(c):
			tokens = append(tokens, l.scanWord())
		case isDigit(c):
			tokens = append(tokens, l.scanNumber())
		case c == '.':
			tokens = append(tokens, Token{Kind: PERIOD, Lexeme: "."})
			l.pos++
		case c == ':':
			tokens = append(tokens, Token{Kind: COLON, Lexeme: ":"})
			l.pos++
		default:
			l.pos++
		}
	}
	return append(tokens, Token{Kind: END})
}

// scanWord consumes a letter run and classifies it. Multi-word keywords are
// matched against the raw input directly after the run, so the separating
// whitespace must be exactly one space.
func (l *Lexer) scanWord() Token {
	start := l.pos
	for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
		l.pos++
	}
	word := l.src[start:l.pos]

	for _, p := range l.phrases {
		if word == p.word && strings.HasPrefix(l.src[l.pos:], p.suffix) {
			l.pos += len(p.suffix)
			return Token{Kind: p.kind, Lexeme: p.lexeme}
		}
	}
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Lexeme: word}
	}
	return Token{Kind: IDENTIFIER, Lexeme: word}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: NUMBER, Lexeme: l.src[start:l.pos]}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
