package asm

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/decompiler"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

var wk = bytecode.NewWellKnown()

func parse(t *testing.T, input string) *bytecode.MethodBody {
	t.Helper()
	body, err := Parse(context.Background(), input, WithWellKnown(wk))
	require.NoError(t, err)
	return body
}

func TestParseAbs(t *testing.T) {
	body := parse(t, `
.method static int32 Demo.Program::Abs(int32 x)
{
    .maxstack 2
    .locals init (int32 result)
    ldarg.0
    ldc.i4.0
    bge.s POSITIVE
    ldarg.0
    neg
    ret
POSITIVE:
    ldarg.0
    ret
}`)
	m := body.Method()
	require.Equal(t, "Demo.Program::Abs", m.FullName())
	require.True(t, m.IsStatic)
	require.Equal(t, wk.Int32, m.ReturnType)
	require.Equal(t, []bytecode.Parameter{{Index: 0, Name: "x", Type: wk.Int32}}, m.Parameters)
	require.True(t, body.InitLocals())
	require.Equal(t, bytecode.Local{Index: 0, Name: "result", Type: wk.Int32}, body.LocalAt(0))

	require.Equal(t, 8, body.InstructionCount())
	branch := body.InstructionAt(2)
	require.Equal(t, op.BgeS, branch.Code)
	require.Equal(t, "IL_0002", branch.Label)
	require.Equal(t, "IL_0007", branch.Operand.Target())
	require.Equal(t, "IL_0007", body.InstructionAt(6).Label)
	require.Equal(t, "IL_0009", body.EndLabel())

	res, err := decompiler.New(decompiler.WithWellKnown(wk)).Decompile(body)
	require.NoError(t, err)
	require.Nil(t, res.Err)
}

func TestParseTypes(t *testing.T) {
	body := parse(t, `
.class enum Demo.Color extends uint8
.class Demo.Base
.class Demo.Derived extends Demo.Base
.class interface Demo.IShape

.method static valuetype Demo.Pair* Demo.Program::Make(Demo.Derived[] items, native uint n, int32& r, Demo.Color c, Demo.IShape s)
`)
	m := body.Method()
	require.Equal(t, 0, body.InstructionCount())

	ret := m.ReturnType
	require.Equal(t, bytecode.TypePointer, ret.Kind)
	require.Equal(t, bytecode.TypeValueType, ret.Elem.Kind)
	require.Equal(t, "Demo.Pair", ret.Elem.FullName())
	require.Equal(t, wk.ValueType, ret.Elem.Base)

	items := m.Parameters[0].Type
	require.Equal(t, bytecode.TypeArray, items.Kind)
	require.Equal(t, "Demo.Derived[]", items.FullName())
	require.Equal(t, "Demo.Base", items.Elem.Base.FullName())
	require.Equal(t, wk.Object, items.Elem.Base.Base)
	require.True(t, wk.IsAssignable(items.Elem.Base, items.Elem))

	require.Same(t, wk.UIntPtr, m.Parameters[1].Type)

	r := m.Parameters[2].Type
	require.Equal(t, bytecode.TypeByRef, r.Kind)
	require.Same(t, wk.Int32, r.Elem)

	color := m.Parameters[3].Type
	require.True(t, color.IsEnum())
	require.Same(t, wk.Byte, color.Underlying)
	require.Same(t, wk.Enum, color.Base)

	shape := m.Parameters[4].Type
	require.Equal(t, bytecode.TypeInterface, shape.Kind)
	require.Nil(t, shape.Base)
}

func TestParseKindPrefixAfterUse(t *testing.T) {
	body := parse(t, `
.method static void Demo.Program::Run(Demo.Pair a, valuetype Demo.Pair b)
{
    ret
}`)
	params := body.Method().Parameters
	require.Same(t, params[0].Type, params[1].Type)
	require.True(t, params[0].Type.IsValueType())
}

func TestParseBuiltinsKeepKind(t *testing.T) {
	body := parse(t, `
.class valuetype System.Exception
.method static void Demo.Program::Run(valuetype int32 a, class System.Exception e)
{
    ret
}`)
	params := body.Method().Parameters
	require.Same(t, wk.Int32, params[0].Type)
	require.Equal(t, bytecode.TypePrimitive, wk.Int32.Kind)
	require.Equal(t, bytecode.TypeClass, params[1].Type.Kind)
	require.Equal(t, bytecode.TypeClass, wk.Exception.Kind)
}

func TestParseOperands(t *testing.T) {
	body := parse(t, `
.class valuetype Demo.Pair
.method instance int32 Demo.Point::Sum(int32 dx, int32[] values)
{
    .locals (float64 scale, native int p)
    ldarg.s dx
    ldloc.s p
    ldc.i8 0x10
    ldc.r8 -2.5
    ldc.r4 3
    ldc.i4.s -1
    ldstr "hi\n"
    ldsfld int32 Demo.Point::Count
    ldfld int32 Demo.Point::X
    ldtoken field int32 Demo.Point::X
    ldtoken valuetype Demo.Pair
    newobj instance void Demo.Point::.ctor(int32, int32)
    call string string::Concat(string, string)
    switch (A, B)
A:  ret
B:  ret
}`)
	require.False(t, body.Method().IsStatic)
	require.False(t, body.InitLocals())
	require.Same(t, wk.IntPtr, body.LocalAt(1).Type)

	at := func(i int) bytecode.Operand { return body.InstructionAt(i).Operand }

	require.Equal(t, 1, at(0).Index())
	require.Equal(t, 1, at(1).Index())
	require.Equal(t, int64(16), at(2).Int())
	require.Equal(t, -2.5, at(3).Float())
	require.Equal(t, 3.0, at(4).Float())
	require.Equal(t, int64(-1), at(5).Int())
	require.Equal(t, "hi\n", at(6).Str())

	count := at(7).Field()
	require.True(t, count.IsStatic)
	require.Equal(t, "Demo.Point::Count", count.FullName())
	require.Same(t, wk.Int32, count.Type)

	x := at(8).Field()
	require.False(t, x.IsStatic)
	require.Same(t, x.DeclaringType, count.DeclaringType)

	require.Equal(t, bytecode.OperandField, at(9).Kind())
	require.Equal(t, "X", at(9).Field().Name)
	require.Equal(t, bytecode.OperandType, at(10).Kind())
	require.True(t, at(10).Type().IsValueType())

	ctor := at(11).Method()
	require.True(t, ctor.IsConstructor())
	require.False(t, ctor.IsStatic)
	require.Len(t, ctor.Parameters, 2)

	concat := at(12).Method()
	require.True(t, concat.IsStatic)
	require.Same(t, wk.String, concat.DeclaringType)
	require.Same(t, wk.String, concat.ReturnType)

	sw := body.InstructionAt(13)
	require.Equal(t, op.Switch, sw.Code)
	require.Equal(t, 2, sw.Operand.TargetCount())
	a := body.InstructionAt(14).Label
	b := body.InstructionAt(15).Label
	require.Equal(t, a, sw.Operand.TargetAt(0))
	require.Equal(t, b, sw.Operand.TargetAt(1))
}

func TestParseTry(t *testing.T) {
	body := parse(t, `
.method static void Demo.Program::Guard()
{
    .try TRY to HANDLER catch System.Exception handler HANDLER to DONE
    .try TRY to FIN finally handler FIN to END
TRY:
    call void Demo.Util::Work()
    leave.s DONE
HANDLER:
    pop
    leave.s DONE
DONE:
    leave.s END
FIN:
    endfinally
END:
}`)
	require.Equal(t, 2, body.RegionCount())
	r := body.RegionAt(0)
	require.Equal(t, bytecode.HandlerCatch, r.Kind)
	require.Equal(t, "IL_0000", r.TryStart)
	require.Equal(t, "IL_0007", r.TryEnd)
	require.Equal(t, "IL_0007", r.HandlerStart)
	require.Equal(t, "IL_000a", r.HandlerEnd)
	require.Same(t, wk.Exception, r.CatchType)

	f := body.RegionAt(1)
	require.Equal(t, bytecode.HandlerFinally, f.Kind)
	require.Equal(t, "IL_000c", f.TryEnd)
	require.Equal(t, "IL_000d", f.HandlerEnd)
	require.Equal(t, "IL_000d", body.EndLabel())

	res, err := decompiler.New(decompiler.WithWellKnown(wk)).Decompile(body)
	require.NoError(t, err)
	require.Nil(t, res.Err)
}

func TestParseFilter(t *testing.T) {
	body := parse(t, `
.method static void Demo.Program::Guard()
{
    .try TRY to FILTER filter FILTER handler HANDLER to DONE
TRY:
    leave.s DONE
FILTER:
    pop
    ldc.i4.1
    endfilter
HANDLER:
    pop
    leave.s DONE
DONE:
    ret
}`)
	r := body.RegionAt(0)
	require.Equal(t, bytecode.HandlerFilter, r.Kind)
	require.Equal(t, "IL_0002", r.FilterStart)
	require.Equal(t, "IL_0006", r.HandlerStart)
	require.Nil(t, r.CatchType)
}

func TestParseErrors(t *testing.T) {
	input := `.method static void Demo.Program::Bad()
{
    frob
    ldc.i4 abc
    br.s
    ldarg.s missing
L:  nop
L:  ret
}`
	_, err := ParseAll(context.Background(), input, WithFilename("bad.il"))
	require.Error(t, err)
	require.True(t, errz.Is(err, errz.ErrSyntax))

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 5)
	require.Equal(t, `syntax error: bad.il:3:5: unknown opcode "frob"`, merr.Errors[0].Error())
	require.Equal(t, `syntax error: bad.il:4:12: expected "INT", found "abc"`, merr.Errors[1].Error())
	require.Equal(t, `syntax error: bad.il:5:9: expected a branch target, found end of line`, merr.Errors[2].Error())
	require.Equal(t, `syntax error: bad.il:6:13: unknown variable missing`, merr.Errors[3].Error())
	require.Equal(t, `syntax error: bad.il:8:1: label L defined twice`, merr.Errors[4].Error())
}

func TestParseLexerError(t *testing.T) {
	_, err := ParseAll(context.Background(), ".method static void A::B()\n{\n    ldstr \"open\n}")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated string literal")
}

func TestParseRequiresOneMethod(t *testing.T) {
	input := `
.method static void Demo.Program::A()
{
    ret
}
.method static void Demo.Program::B()
{
    ret
}`
	bodies, err := ParseAll(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, bodies, 2)
	require.Equal(t, "B", bodies[1].Method().Name)

	_, err = Parse(context.Background(), input)
	require.Error(t, err)
	require.Equal(t, "syntax error: expected one method, found 2", err.Error())
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseAll(ctx, ".method static void A::B()\n{\n    ret\n}")
	require.ErrorIs(t, err, context.Canceled)
}
