package asm

import (
	"strings"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/internal/token"
)

// kindPrefix consumes an optional class, valuetype, enum or interface
// keyword.
func (p *Parser) kindPrefix() (bytecode.TypeKind, bool) {
	var kind bytecode.TypeKind
	switch p.curToken.Type {
	case token.CLASS:
		kind = bytecode.TypeClass
	case token.VALUETYPE:
		kind = bytecode.TypeValueType
	case token.ENUM:
		kind = bytecode.TypeEnum
	case token.INTERFACE:
		kind = bytecode.TypeInterface
	default:
		return bytecode.TypeClass, false
	}
	p.nextToken()
	return kind, true
}

// parseType reads a type reference: an optional kind keyword, a keyword
// alias or a dotted name, then any number of [], * and & suffixes.
func (p *Parser) parseType() *bytecode.TypeRef {
	kind, explicit := p.kindPrefix()
	tok := p.curToken
	if tok.Type != token.IDENT {
		p.errorf(tok, "expected a type, found %s", describe(tok))
		return nil
	}
	name := tok.Literal
	p.nextToken()
	if name == "native" && p.curToken.Type == token.IDENT &&
		(p.curToken.Literal == "int" || p.curToken.Literal == "uint") {
		name += " " + p.curToken.Literal
		p.nextToken()
	}
	t := p.resolveType(name, kind)
	if explicit {
		p.setKind(t, kind)
	}
	for {
		switch p.curToken.Type {
		case token.LBRACKET:
			p.nextToken()
			if !p.expect(token.RBRACKET) {
				return nil
			}
			t = t.ArrayOf()
		case token.ASTERISK:
			p.nextToken()
			t = &bytecode.TypeRef{Kind: bytecode.TypePointer, Name: t.Name + "*", Elem: t}
		case token.AMPERSAND:
			p.nextToken()
			t = t.PointerTo()
		default:
			return t
		}
	}
}

// resolveType returns the built-in type for a keyword alias and the
// registered named type otherwise.
func (p *Parser) resolveType(name string, kind bytecode.TypeKind) *bytecode.TypeRef {
	if t, ok := p.wk.Lookup(name); ok {
		return t
	}
	return p.namedType(name, kind)
}

// namedType returns the type registered under name, creating it with the
// given kind on first use.
func (p *Parser) namedType(name string, kind bytecode.TypeKind) *bytecode.TypeRef {
	if t, ok := p.types[name]; ok {
		return t
	}
	t := &bytecode.TypeRef{Name: name, Kind: kind}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		t.Namespace, t.Name = name[:i], name[i+1:]
	}
	p.setBase(t)
	p.types[name] = t
	return t
}

// setKind changes the kind of a type declared in the listing. Built-in types
// keep theirs.
func (p *Parser) setKind(t *bytecode.TypeRef, kind bytecode.TypeKind) {
	if t.Kind == kind || t.Alias != "" || p.builtin[t] {
		return
	}
	t.Kind = kind
	p.setBase(t)
}

// setBase gives a type the implicit base its kind implies.
func (p *Parser) setBase(t *bytecode.TypeRef) {
	switch t.Kind {
	case bytecode.TypeValueType:
		t.Base = p.wk.ValueType
	case bytecode.TypeEnum:
		t.Base = p.wk.Enum
		if t.Underlying == nil {
			t.Underlying = p.wk.Int32
		}
	case bytecode.TypeInterface:
		t.Base = nil
	default:
		if t != p.wk.Object {
			t.Base = p.wk.Object
		}
	}
}
