// Package lexer splits assembly listings into tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/codom/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The current character position
	position int

	// The next character position
	readPosition int

	// The current character
	ch rune

	// A rune slice of our input string
	characters []rune

	// Line index (0-indexed)
	line int

	// Character position of the start of the current line
	lineStart int

	// Name of the file being lexed, used in positions
	file string
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFile sets the file name for the Lexer.
func WithFile(file string) Option {
	return func(l *Lexer) {
		l.file = file
	}
}

// New creates a Lexer instance from the given string input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{characters: []rune(input)}
	for _, opt := range options {
		opt(l)
	}
	l.readChar()
	return l
}

// SetFilename sets the file name reported in token positions.
func (l *Lexer) SetFilename(file string) {
	l.file = file
}

// Position returns the position of the current character.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

// Next returns the next token from the input. Newlines are significant in
// listings and are returned as NEWLINE tokens.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	for l.ch == '/' && l.peekChar() == '/' {
		l.skipComment()
		l.skipWhitespace()
	}
	start := l.Position()
	switch ch := l.ch; {
	case ch == 0:
		return l.newToken(token.EOF, "", start), nil
	case ch == '\n':
		l.readChar()
		l.line++
		l.lineStart = l.position
		return l.newToken(token.NEWLINE, "\n", start), nil
	case ch == ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return l.newToken(token.DOUBLE_COLON, "::", start), nil
		}
		return l.single(token.COLON, start), nil
	case ch == ',':
		return l.single(token.COMMA, start), nil
	case ch == '(':
		return l.single(token.LPAREN, start), nil
	case ch == ')':
		return l.single(token.RPAREN, start), nil
	case ch == '[':
		return l.single(token.LBRACKET, start), nil
	case ch == ']':
		return l.single(token.RBRACKET, start), nil
	case ch == '{':
		return l.single(token.LBRACE, start), nil
	case ch == '}':
		return l.single(token.RBRACE, start), nil
	case ch == '*':
		return l.single(token.ASTERISK, start), nil
	case ch == '&':
		return l.single(token.AMPERSAND, start), nil
	case ch == '-':
		return l.single(token.MINUS, start), nil
	case ch == '"':
		s, err := l.readString()
		if err != nil {
			return l.newToken(token.ILLEGAL, "", start), err
		}
		return l.newToken(token.STRING, s, start), nil
	case isDigit(ch):
		return l.readNumber(start)
	case ch == '.' && isLetter(l.peekChar()):
		l.readChar()
		return l.newToken(token.DIRECTIVE, "."+l.readIdentifier(), start), nil
	case isLetter(ch):
		ident := l.readIdentifier()
		return l.newToken(token.LookupIdentifier(ident), ident, start), nil
	}
	ch := l.ch
	l.readChar()
	if ch < ' ' {
		return l.newToken(token.ILLEGAL, string(ch), start), fmt.Errorf("invalid identifier: %s", string(ch))
	}
	return l.newToken(token.ILLEGAL, string(ch), start), fmt.Errorf("unexpected character: %q", ch)
}

// GetLineText returns the text of the line that contains the token, without
// the trailing newline.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.characters) {
		return ""
	}
	end := start
	for end < len(l.characters) && l.characters[end] != '\n' {
		end++
	}
	return string(l.characters[start:end])
}

func (l *Lexer) newToken(t token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          t,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len([]rune(literal))),
	}
}

func (l *Lexer) single(t token.Type, start token.Position) token.Token {
	ch := l.ch
	l.readChar()
	return l.newToken(t, string(ch), start)
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.characters) {
		l.ch = 0
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return 0
	}
	return l.characters[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readIdentifier reads a dotted name such as "ldc.i4.s" or "System.Object".
// Member names may start with a dot, as in ".ctor".
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' || l.ch == '`' {
		l.readChar()
	}
	return string(l.characters[start:l.position])
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	begin := l.position
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		digits := l.position
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if l.position == digits || isLetter(l.ch) || l.ch == '.' {
			l.readChar()
			return l.illegal(begin, start)
		}
		return l.newToken(token.INT, string(l.characters[begin:l.position]), start), nil
	}
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		isFloat = true
		l.readChar()
		if !isDigit(l.ch) {
			return l.illegal(begin, start)
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return l.illegal(begin, start)
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if isLetter(l.ch) {
		l.readChar()
		return l.illegal(begin, start)
	}
	literal := string(l.characters[begin:l.position])
	if isFloat {
		return l.newToken(token.FLOAT, literal, start), nil
	}
	return l.newToken(token.INT, literal, start), nil
}

func (l *Lexer) illegal(begin int, start token.Position) (token.Token, error) {
	literal := string(l.characters[begin:l.position])
	return l.newToken(token.ILLEGAL, literal, start), fmt.Errorf("invalid numeric literal: %s", literal)
}

// readString reads a double quoted string and returns its unescaped value.
func (l *Lexer) readString() (string, error) {
	var sb strings.Builder
	l.readChar()
	for {
		switch l.ch {
		case 0, '\n':
			return "", fmt.Errorf("unterminated string literal")
		case '"':
			l.readChar()
			return sb.String(), nil
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '0':
				sb.WriteRune(0)
			case '\\', '"':
				sb.WriteRune(l.ch)
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.ch)
			}
		default:
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$' || ch == '<' || ch == '>'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
