package asm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/internal/lexer"
	"github.com/deepnoodle-ai/codom/internal/token"
	"github.com/deepnoodle-ai/codom/op"
	"github.com/hashicorp/go-multierror"
)

// Parser reads listings token by token. A Parser should be used only once.
type Parser struct {
	// l is our lexer
	l *lexer.Lexer

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// syntax errors collected during parsing
	errors *multierror.Error

	// The filename of the input
	filename string

	wk *bytecode.WellKnown

	// types holds every named type seen so far, by full name, so that all
	// references to one type share a descriptor.
	types map[string]*bytecode.TypeRef

	// builtin holds the well-known types, which declarations never change.
	builtin map[*bytecode.TypeRef]bool
}

// New returns a Parser reading from l.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:       l,
		types:   map[string]*bytecode.TypeRef{},
		builtin: map[*bytecode.TypeRef]bool{},
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	}
	if p.wk == nil {
		p.wk = bytecode.NewWellKnown()
	}
	for _, t := range []*bytecode.TypeRef{
		p.wk.Object, p.wk.ValueType, p.wk.Enum, p.wk.Array, p.wk.Exception,
		p.wk.String, p.wk.RuntimeTypeHandle, p.wk.RuntimeMethodHandle, p.wk.RuntimeFieldHandle,
	} {
		p.types[t.FullName()] = t
		p.builtin[t] = true
	}
	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Parse reads every method of the listing. Syntax errors are collected and
// returned together; no bodies are returned when any occurred.
func (p *Parser) Parse(ctx context.Context) ([]*bytecode.MethodBody, error) {
	var bodies []*bytecode.MethodBody
	for p.curToken.Type != token.EOF {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch {
		case p.curToken.Type == token.NEWLINE:
			p.nextToken()
		case p.curDirective(".class"):
			p.parseClass()
		case p.curDirective(".method"):
			if body := p.parseMethod(); body != nil {
				bodies = append(bodies, body)
			}
		default:
			p.errorf(p.curToken, "unexpected %s outside of a method", describe(p.curToken))
			p.skipLine()
			p.nextToken()
		}
	}
	if err := p.errors.ErrorOrNil(); err != nil {
		return nil, err
	}
	return bodies, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	tok, err := p.l.Next()
	if err != nil {
		p.errorf(tok, "%s", err)
	}
	p.peekToken = tok
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	pos := tok.StartPosition
	where := fmt.Sprintf("%d:%d", pos.LineNumber(), pos.ColumnNumber())
	if pos.File != "" {
		where = pos.File + ":" + where
	}
	p.errors = multierror.Append(p.errors,
		errz.Newf(errz.ErrSyntax, "", "%s: %s", where, fmt.Sprintf(format, args...)))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "end of line"
	}
	return strconv.Quote(tok.Literal)
}

func (p *Parser) curDirective(name string) bool {
	return p.curToken.Type == token.DIRECTIVE && p.curToken.Literal == name
}

// expect consumes the current token if it has type t.
func (p *Parser) expect(t token.Type) bool {
	if p.curToken.Type != t {
		p.errorf(p.curToken, "expected %q, found %s", t, describe(p.curToken))
		return false
	}
	p.nextToken()
	return true
}

// ident consumes an identifier, or a keyword used as one.
func (p *Parser) ident(what string) (string, bool) {
	tok := p.curToken
	if tok.Type != token.IDENT && !token.IsKeyword(tok.Type) {
		p.errorf(tok, "expected %s, found %s", what, describe(tok))
		return "", false
	}
	p.nextToken()
	return tok.Literal, true
}

func (p *Parser) atLineEnd() bool {
	switch p.curToken.Type {
	case token.NEWLINE, token.EOF, token.RBRACE:
		return true
	}
	return false
}

// skipLine advances to the end of the current line without consuming a
// closing brace.
func (p *Parser) skipLine() {
	for !p.atLineEnd() {
		p.nextToken()
	}
}

// endLine requires the current line to be complete.
func (p *Parser) endLine() {
	if !p.atLineEnd() {
		p.errorf(p.curToken, "unexpected %s at end of line", describe(p.curToken))
		p.skipLine()
	}
	if p.curToken.Type == token.NEWLINE {
		p.nextToken()
	}
}

func (p *Parser) skipNewlines() {
	for p.curToken.Type == token.NEWLINE {
		p.nextToken()
	}
}

// parseClass reads ".class [kind] Name [extends Base]".
func (p *Parser) parseClass() {
	p.nextToken()
	kind, _ := p.kindPrefix()
	name, ok := p.ident("a type name")
	if !ok {
		p.skipLine()
		return
	}
	t := p.resolveType(name, kind)
	p.setKind(t, kind)
	if p.curToken.Type == token.EXTENDS {
		p.nextToken()
		if base := p.parseType(); base != nil && t.Alias == "" && !p.builtin[t] {
			if t.Kind == bytecode.TypeEnum {
				t.Underlying = base
			} else {
				t.Base = base
			}
		}
	}
	p.endLine()
}

var methodFlags = map[string]bool{
	"public": true, "private": true, "family": true, "assembly": true,
	"hidebysig": true, "specialname": true, "rtspecialname": true,
	"final": true, "newslot": true, "virtual": true, "abstract": true,
	"native": true, "cil": true, "managed": true,
}

func (p *Parser) parseFlags(m *bytecode.MethodRef) {
	for {
		switch {
		case p.curToken.Type == token.STATIC:
			m.IsStatic = true
		case p.curToken.Type == token.INSTANCE:
			m.IsStatic = false
		case p.curToken.Type == token.IDENT && methodFlags[p.curToken.Literal] &&
			p.peekToken.Type != token.DOUBLE_COLON && p.peekToken.Type != token.LPAREN:
			switch p.curToken.Literal {
			case "virtual":
				m.IsVirtual = true
			case "abstract":
				m.IsAbstract = true
			case "native":
				// "native int" is a type, not a flag.
				if p.peekToken.Literal == "int" || p.peekToken.Literal == "uint" {
					return
				}
				m.IsNative = true
			}
		default:
			return
		}
		p.nextToken()
	}
}

// parseMethod reads a method header and its body.
func (p *Parser) parseMethod() *bytecode.MethodBody {
	p.nextToken()
	m := &bytecode.MethodRef{}
	p.parseFlags(m)
	ret := p.parseType()
	if ret == nil {
		p.skipMethod()
		return nil
	}
	m.ReturnType = ret
	owner, name, ok := p.parseMemberName()
	if !ok || owner == nil {
		if ok {
			p.errorf(p.curToken, "method %s has no declaring type", name)
		}
		p.skipMethod()
		return nil
	}
	m.DeclaringType = owner
	m.Name = name
	params, ok := p.parseParams()
	if !ok {
		p.skipMethod()
		return nil
	}
	m.Parameters = params
	p.parseFlags(m)
	if p.curToken.Type != token.LBRACE {
		p.endLine()
		p.skipNewlines()
	}

	b := newBody(m)
	if p.curToken.Type != token.LBRACE {
		// Methods without a body end at their header.
		return b.build()
	}
	p.nextToken()
	p.parseBody(b)
	if !p.expect(token.RBRACE) {
		return nil
	}
	return b.build()
}

// skipMethod recovers from an error in a method header by skipping the rest
// of the method.
func (p *Parser) skipMethod() {
	p.skipLine()
	p.skipNewlines()
	if p.curToken.Type != token.LBRACE {
		return
	}
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		p.nextToken()
	}
	if p.curToken.Type == token.RBRACE {
		p.nextToken()
	}
}

// parseMemberName reads "[kind] Owner::Name" or a bare "Name".
func (p *Parser) parseMemberName() (*bytecode.TypeRef, string, bool) {
	kind, explicit := p.kindPrefix()
	first, ok := p.memberIdent()
	if !ok {
		return nil, "", false
	}
	if p.curToken.Type != token.DOUBLE_COLON {
		return nil, first, true
	}
	p.nextToken()
	name, ok := p.memberIdent()
	if !ok {
		return nil, "", false
	}
	owner := p.resolveType(first, kind)
	if explicit {
		p.setKind(owner, kind)
	}
	return owner, name, true
}

// memberIdent reads a member name, which may start with a dot as in .ctor.
func (p *Parser) memberIdent() (string, bool) {
	if p.curToken.Type == token.DIRECTIVE {
		name := p.curToken.Literal
		p.nextToken()
		return name, true
	}
	return p.ident("a member name")
}

// parseParams reads "(Type [name], ...)".
func (p *Parser) parseParams() ([]bytecode.Parameter, bool) {
	if !p.expect(token.LPAREN) {
		return nil, false
	}
	var params []bytecode.Parameter
	for p.curToken.Type != token.RPAREN {
		if len(params) > 0 && !p.expect(token.COMMA) {
			return nil, false
		}
		t := p.parseType()
		if t == nil {
			return nil, false
		}
		param := bytecode.Parameter{Index: len(params), Type: t}
		if p.curToken.Type == token.IDENT {
			param.Name = p.curToken.Literal
			p.nextToken()
		}
		params = append(params, param)
	}
	p.nextToken()
	return params, true
}

// parseBody reads body lines up to the closing brace.
func (p *Parser) parseBody(b *body) {
	for {
		switch p.curToken.Type {
		case token.NEWLINE:
			p.nextToken()
			continue
		case token.RBRACE, token.EOF:
			return
		case token.DIRECTIVE:
			switch p.curToken.Literal {
			case ".locals":
				p.parseLocals(b)
			case ".maxstack":
				p.nextToken()
				p.expect(token.INT)
			case ".try":
				p.parseTry(b)
			default:
				p.errorf(p.curToken, "unknown directive %s", p.curToken.Literal)
				p.skipLine()
			}
		case token.IDENT:
			if p.peekToken.Type == token.COLON {
				p.parseMark(b)
				continue
			}
			p.parseInstruction(b)
		default:
			p.errorf(p.curToken, "unexpected %s", describe(p.curToken))
			p.skipLine()
		}
		p.endLine()
	}
}

func (p *Parser) parseMark(b *body) {
	tok := p.curToken
	if _, exists := b.marks[tok.Literal]; exists {
		p.errorf(tok, "label %s defined twice", tok.Literal)
	}
	b.marks[tok.Literal] = len(b.codes)
	p.nextToken()
	p.nextToken()
}

// parseLocals reads ".locals [init] (Type [name], ...)".
func (p *Parser) parseLocals(b *body) {
	p.nextToken()
	if p.curToken.Type == token.INIT {
		b.initLocals = true
		p.nextToken()
	}
	params, ok := p.parseParams()
	if !ok {
		p.skipLine()
		return
	}
	for _, param := range params {
		b.locals = append(b.locals, bytecode.Local{
			Index: len(b.locals),
			Name:  param.Name,
			Type:  param.Type,
		})
	}
}

// parseTry reads one exception region.
func (p *Parser) parseTry(b *body) {
	p.nextToken()
	var r bytecode.ExceptionRegion
	var ok bool
	if r.TryStart, r.TryEnd, ok = p.parseRange(); !ok {
		p.skipLine()
		return
	}
	switch p.curToken.Type {
	case token.CATCH:
		p.nextToken()
		r.Kind = bytecode.HandlerCatch
		if r.CatchType = p.parseType(); r.CatchType == nil {
			p.skipLine()
			return
		}
	case token.FILTER:
		p.nextToken()
		r.Kind = bytecode.HandlerFilter
		if r.FilterStart, ok = p.ident("a filter label"); !ok {
			p.skipLine()
			return
		}
	case token.FINALLY:
		p.nextToken()
		r.Kind = bytecode.HandlerFinally
	case token.FAULT:
		p.nextToken()
		r.Kind = bytecode.HandlerFault
	default:
		p.errorf(p.curToken, "expected catch, filter, finally or fault, found %s", describe(p.curToken))
		p.skipLine()
		return
	}
	if !p.expect(token.HANDLER) {
		p.skipLine()
		return
	}
	if r.HandlerStart, r.HandlerEnd, ok = p.parseRange(); !ok {
		p.skipLine()
		return
	}
	b.regions = append(b.regions, r)
}

// parseRange reads "start to end".
func (p *Parser) parseRange() (string, string, bool) {
	start, ok := p.ident("a label")
	if !ok {
		return "", "", false
	}
	if !p.expect(token.TO) {
		return "", "", false
	}
	end, ok := p.ident("a label")
	return start, end, ok
}

func (p *Parser) parseInstruction(b *body) {
	tok := p.curToken
	code, ok := op.Lookup(tok.Literal)
	if !ok {
		p.errorf(tok, "unknown opcode %q", tok.Literal)
		p.skipLine()
		return
	}
	p.nextToken()
	operand, ok := p.parseOperand(b, op.GetInfo(code))
	if !ok {
		p.skipLine()
		return
	}
	b.codes = append(b.codes, code)
	b.operands = append(b.operands, operand)
}

func (p *Parser) parseOperand(b *body, info op.Info) (bytecode.Operand, bool) {
	switch info.Operand {
	case op.InlineBrTarget:
		target, ok := p.ident("a branch target")
		return bytecode.TargetOperand(target), ok
	case op.InlineSwitch:
		return p.parseSwitch()
	case op.InlineI, op.InlineI8:
		v, ok := p.parseInt()
		return bytecode.IntOperand(v), ok
	case op.InlineR:
		v, ok := p.parseFloat()
		return bytecode.FloatOperand(v), ok
	case op.InlineString:
		tok := p.curToken
		if !p.expect(token.STRING) {
			return bytecode.Operand{}, false
		}
		return bytecode.StringOperand(tok.Literal), true
	case op.InlineType:
		t := p.parseType()
		return bytecode.TypeOperand(t), t != nil
	case op.InlineMethod:
		m := p.parseMethodRef()
		return bytecode.MethodOperand(m), m != nil
	case op.InlineField:
		f := p.parseFieldRef(isStaticFieldAccess(info.Category))
		return bytecode.FieldOperand(f), f != nil
	case op.InlineTok:
		return p.parseToken()
	case op.InlineVar:
		return p.parseVar(b, info)
	case op.InlineSig:
		// Call site signatures are not modelled; calli is rejected anyway.
		p.skipLine()
	}
	return bytecode.NoOperand(), true
}

func isStaticFieldAccess(c op.Category) bool {
	switch c {
	case op.CatLoadStaticField, op.CatLoadStaticFieldAddr, op.CatStoreStaticField:
		return true
	}
	return false
}

func (p *Parser) parseSwitch() (bytecode.Operand, bool) {
	if !p.expect(token.LPAREN) {
		return bytecode.Operand{}, false
	}
	var targets []string
	for p.curToken.Type != token.RPAREN {
		if len(targets) > 0 && !p.expect(token.COMMA) {
			return bytecode.Operand{}, false
		}
		target, ok := p.ident("a branch target")
		if !ok {
			return bytecode.Operand{}, false
		}
		targets = append(targets, target)
	}
	p.nextToken()
	return bytecode.SwitchOperand(targets...), true
}

func (p *Parser) parseInt() (int64, bool) {
	negative := false
	if p.curToken.Type == token.MINUS {
		negative = true
		p.nextToken()
	}
	tok := p.curToken
	if !p.expect(token.INT) {
		return 0, false
	}
	v, err := strconv.ParseInt(tok.Literal, 0, 64)
	if err != nil {
		u, uerr := strconv.ParseUint(tok.Literal, 0, 64)
		if uerr != nil {
			p.errorf(tok, "invalid integer %s", tok.Literal)
			return 0, false
		}
		v = int64(u)
	}
	if negative {
		v = -v
	}
	return v, true
}

func (p *Parser) parseFloat() (float64, bool) {
	negative := false
	if p.curToken.Type == token.MINUS {
		negative = true
		p.nextToken()
	}
	tok := p.curToken
	var v float64
	switch tok.Type {
	case token.FLOAT:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf(tok, "invalid number %s", tok.Literal)
			return 0, false
		}
		v = f
	case token.INT:
		i, err := strconv.ParseInt(tok.Literal, 0, 64)
		if err != nil {
			p.errorf(tok, "invalid number %s", tok.Literal)
			return 0, false
		}
		v = float64(i)
	default:
		p.errorf(tok, "expected a number, found %s", describe(tok))
		return 0, false
	}
	p.nextToken()
	if negative {
		v = -v
	}
	return v, true
}

// parseToken reads the operand of ldtoken: "type T", "method M", "field F"
// or a bare type.
func (p *Parser) parseToken() (bytecode.Operand, bool) {
	switch p.curToken.Type {
	case token.METHOD:
		p.nextToken()
		m := p.parseMethodRef()
		return bytecode.MethodOperand(m), m != nil
	case token.FIELD:
		p.nextToken()
		f := p.parseFieldRef(false)
		return bytecode.FieldOperand(f), f != nil
	case token.TYPE:
		p.nextToken()
	}
	t := p.parseType()
	return bytecode.TypeOperand(t), t != nil
}

// parseVar reads an argument or local operand, given either as a slot
// number or by name.
func (p *Parser) parseVar(b *body, info op.Info) (bytecode.Operand, bool) {
	if p.curToken.Type == token.INT {
		v, ok := p.parseInt()
		return bytecode.IndexOperand(int(v)), ok
	}
	tok := p.curToken
	name, ok := p.ident("a variable")
	if !ok {
		return bytecode.Operand{}, false
	}
	switch info.Category {
	case op.CatLoadLocal, op.CatLoadLocalAddr, op.CatStoreLocal:
		for _, local := range b.locals {
			if local.Name == name {
				return bytecode.IndexOperand(local.Index), true
			}
		}
	default:
		for i, param := range b.method.Parameters {
			if param.Name == name {
				if !b.method.IsStatic {
					i++
				}
				return bytecode.IndexOperand(i), true
			}
		}
	}
	p.errorf(tok, "unknown variable %s", name)
	return bytecode.Operand{}, false
}

// parseMethodRef reads "[instance] Ret Owner::Name(Types)". Methods are
// static unless marked instance.
func (p *Parser) parseMethodRef() *bytecode.MethodRef {
	m := &bytecode.MethodRef{IsStatic: true}
	switch p.curToken.Type {
	case token.INSTANCE:
		m.IsStatic = false
		p.nextToken()
	case token.STATIC:
		p.nextToken()
	}
	if m.ReturnType = p.parseType(); m.ReturnType == nil {
		return nil
	}
	owner, name, ok := p.parseMemberName()
	if !ok {
		return nil
	}
	m.DeclaringType = owner
	m.Name = name
	if m.Parameters, ok = p.parseParams(); !ok {
		return nil
	}
	return m
}

// parseFieldRef reads "Type Owner::Name".
func (p *Parser) parseFieldRef(static bool) *bytecode.FieldRef {
	t := p.parseType()
	if t == nil {
		return nil
	}
	owner, name, ok := p.parseMemberName()
	if !ok {
		return nil
	}
	return &bytecode.FieldRef{DeclaringType: owner, Name: name, Type: t, IsStatic: static}
}
