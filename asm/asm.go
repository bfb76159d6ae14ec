// Package asm reads method bodies from textual assembly listings.
//
// A listing holds optional type declarations followed by one or more
// methods:
//
//	.class enum Demo.Color
//	.class System.ArgumentException extends System.Exception
//
//	.method static int32 Demo.Program::Abs(int32 x)
//	{
//	    .locals init (int32 result)
//	    ldarg.0
//	    ldc.i4.0
//	    bge.s POSITIVE
//	    ldarg.0
//	    neg
//	    ret
//	POSITIVE:
//	    ldarg.0
//	    ret
//	}
//
// Instructions are laid out at the offsets their encoded sizes imply and are
// labelled IL_xxxx after them. Names given to instructions in the listing are
// marks: branch targets and .try boundaries referring to a mark resolve to
// the label of the marked instruction. A mark placed after the last
// instruction names the end of the body. References that are not marks are
// kept verbatim.
//
// A type named with a valuetype, enum or interface prefix anywhere in the
// listing takes that kind; other named types are classes deriving from
// System.Object unless declared otherwise. Enums default to an int32
// underlying type, which "extends" replaces.
//
// Exception regions are declared with .try lines in handler table order:
//
//	.try A to B catch System.Exception handler C to D
//	.try A to B filter F handler C to D
//	.try A to B finally handler C to D
//	.try A to B fault handler C to D
package asm

import (
	"context"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/internal/lexer"
)

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in syntax errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithWellKnown sets the table of built-in kinds that keyword aliases such as
// "int32" and "string" resolve to. Use the same table as the decompiler.
func WithWellKnown(w *bytecode.WellKnown) Option {
	return func(p *Parser) {
		p.wk = w
	}
}

// Parse reads a listing that declares exactly one method.
func Parse(ctx context.Context, input string, options ...Option) (*bytecode.MethodBody, error) {
	bodies, err := ParseAll(ctx, input, options...)
	if err != nil {
		return nil, err
	}
	if len(bodies) != 1 {
		return nil, errz.Newf(errz.ErrSyntax, "", "expected one method, found %d", len(bodies))
	}
	return bodies[0], nil
}

// ParseAll reads every method of a listing, in order.
func ParseAll(ctx context.Context, input string, options ...Option) ([]*bytecode.MethodBody, error) {
	p := New(lexer.New(input), options...)
	return p.Parse(ctx)
}
