// Package token defines the tokens and keywords of assembly listings.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from an assembly listing.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AMPERSAND    Type = "&"
	ASTERISK     Type = "*"
	COLON        Type = ":"
	COMMA        Type = ","
	DIRECTIVE    Type = "DIRECTIVE"
	DOUBLE_COLON Type = "::"
	EOF          Type = "EOF"
	FLOAT        Type = "FLOAT"
	IDENT        Type = "IDENT"
	ILLEGAL      Type = "ILLEGAL"
	INT          Type = "INT"
	LBRACE       Type = "{"
	LBRACKET     Type = "["
	LPAREN       Type = "("
	MINUS        Type = "-"
	NEWLINE      Type = "EOL"
	RBRACE       Type = "}"
	RBRACKET     Type = "]"
	RPAREN       Type = ")"
	STRING       Type = "STRING"

	// Keywords
	CATCH     Type = "catch"
	CLASS     Type = "class"
	ENUM      Type = "enum"
	EXTENDS   Type = "extends"
	FAULT     Type = "fault"
	FIELD     Type = "field"
	FILTER    Type = "filter"
	FINALLY   Type = "finally"
	HANDLER   Type = "handler"
	INIT      Type = "init"
	INSTANCE  Type = "instance"
	INTERFACE Type = "interface"
	METHOD    Type = "method"
	STATIC    Type = "static"
	TO        Type = "to"
	TYPE      Type = "type"
	VALUETYPE Type = "valuetype"
)

// Reserved keywords
var keywords = map[string]Type{
	"catch":     CATCH,
	"class":     CLASS,
	"enum":      ENUM,
	"extends":   EXTENDS,
	"fault":     FAULT,
	"field":     FIELD,
	"filter":    FILTER,
	"finally":   FINALLY,
	"handler":   HANDLER,
	"init":      INIT,
	"instance":  INSTANCE,
	"interface": INTERFACE,
	"method":    METHOD,
	"static":    STATIC,
	"to":        TO,
	"type":      TYPE,
	"valuetype": VALUETYPE,
}

// LookupIdentifier returns the keyword type of identifier, or IDENT when it is
// not a keyword.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is a keyword type.
func IsKeyword(t Type) bool {
	_, ok := keywords[string(t)]
	return ok
}
