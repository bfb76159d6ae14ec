package decompiler

import (
	"testing"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
	"github.com/deepnoodle-ai/codom/trace"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

var argumentException = &bytecode.TypeRef{Namespace: "System", Name: "ArgumentException", Base: wk.Exception}

// sharedTry is a try range protected by two catch handlers.
func sharedTry() *bytecode.MethodBody {
	return newBuilder(staticMethod(wk.Void)).
		local(wk.Exception).
		mark("TS").op(op.Nop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("H1").op(op.Stloc0).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("H2").op(op.Pop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("END").op(op.Ret).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerCatch, TryStart: "TS", TryEnd: "H1",
			HandlerStart: "H1", HandlerEnd: "H2", CatchType: argumentException,
		}).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerCatch, TryStart: "TS", TryEnd: "H1",
			HandlerStart: "H2", HandlerEnd: "END", CatchType: wk.Exception,
		}).
		build()
}

func kinds(elements []Element) []ElementKind {
	out := make([]ElementKind, len(elements))
	for i, e := range elements {
		out[i] = e.Kind
	}
	return out
}

func TestPreprocessSharedTry(t *testing.T) {
	elements, err := Preprocess(sharedTry())
	require.NoError(t, err)

	counts := map[ElementKind]int{}
	for _, e := range elements {
		counts[e.Kind]++
	}
	require.Equal(t, 1, counts[ElemTryStart])
	require.Equal(t, 1, counts[ElemTryEnd])
	require.Equal(t, 2, counts[ElemHandlerStart])
	require.Equal(t, 2, counts[ElemCatchEnd])
	require.Equal(t, 7, counts[ElemInstruction])

	require.Equal(t, []ElementKind{
		ElemTryStart, ElemInstruction, ElemInstruction,
		ElemTryEnd, ElemHandlerStart, ElemInstruction, ElemInstruction,
		ElemCatchEnd, ElemHandlerStart, ElemInstruction, ElemInstruction,
		ElemCatchEnd, ElemInstruction,
	}, kinds(elements))
	require.Equal(t, "IL_0000", elements[0].Label)
	require.Equal(t, bytecode.HandlerCatch, elements[4].Region.Kind)
	require.Same(t, argumentException, elements[4].Region.CatchType)
	require.Same(t, wk.Exception, elements[8].Region.CatchType)
}

func TestPreprocessNestedOrder(t *testing.T) {
	body := newBuilder(staticMethod(wk.Void)).
		mark("OT").mark("IT").op(op.Nop).op(op.LeaveS, bytecode.TargetOperand("IE")).
		mark("IH").op(op.Pop).op(op.LeaveS, bytecode.TargetOperand("IE")).
		mark("IE").op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("OH").op(op.Endfinally).
		mark("END").op(op.Ret).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerCatch, TryStart: "IT", TryEnd: "IH",
			HandlerStart: "IH", HandlerEnd: "IE", CatchType: wk.Exception,
		}).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerFinally, TryStart: "OT", TryEnd: "OH",
			HandlerStart: "OH", HandlerEnd: "END",
		}).
		build()

	elements, err := Preprocess(body)
	require.NoError(t, err)
	require.Equal(t, []ElementKind{
		ElemTryStart, ElemTryStart, ElemInstruction, ElemInstruction,
		ElemTryEnd, ElemHandlerStart, ElemInstruction, ElemInstruction,
		ElemCatchEnd, ElemInstruction,
		ElemTryEnd, ElemHandlerStart, ElemInstruction,
		ElemFinallyEnd, ElemInstruction,
	}, kinds(elements))
	require.Equal(t, bytecode.HandlerFinally, elements[0].Region.Kind)
	require.Equal(t, bytecode.HandlerCatch, elements[1].Region.Kind)

	res, err := New().Decompile(body)
	require.NoError(t, err)
	stmts := code(res)
	require.Len(t, stmts, 3)

	outer := stmts[0].(*codom.Block)
	require.Equal(t, codom.BlockTry, outer.Kind)
	require.Len(t, outer.Stmts, 3)
	require.Equal(t, codom.BlockTry, outer.Stmts[0].(*codom.Block).Kind)
	require.Equal(t, codom.BlockCatch, outer.Stmts[1].(*codom.Block).Kind)
	require.Equal(t, codom.BranchLeave, outer.Stmts[2].(*codom.Branch).Kind)

	finally := stmts[1].(*codom.Block)
	require.Equal(t, codom.BlockFinally, finally.Kind)
	require.Equal(t, codom.EndFinally, finally.Stmts[0].(*codom.DoNothing).Kind)

	expected := "try {\n" +
		"    try {\n" +
		"        ;\n" +
		"        leave IL_0006;\n" +
		"    }\n" +
		"    catch (System.Exception) {\n" +
		"        leave IL_0006;\n" +
		"    }\n" +
		"    IL_0006: leave IL_0009;\n" +
		"}"
	require.Equal(t, expected, codom.Render(outer, nil))
}

func TestPreprocessMalformed(t *testing.T) {
	body := newBuilder(staticMethod(wk.Void)).
		mark("TS").op(op.Nop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("H").op(op.Pop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("END").op(op.Ret).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerCatch, TryStart: "TS", TryEnd: "H",
			HandlerStart: "H", HandlerEnd: "IL_9999", CatchType: wk.Exception,
		}).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerFault, TryStart: "H", TryEnd: "H",
			HandlerStart: "END", HandlerEnd: "nowhere",
		}).
		build()

	elements, err := Preprocess(body)
	require.Error(t, err)
	require.True(t, errz.Is(err, errz.ErrMalformedRegion))
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)
	require.Contains(t, merr.Errors[0].Error(), `"IL_9999"`)
	require.Contains(t, merr.Errors[1].Error(), "empty try range")

	// Markers of the resolvable boundaries are kept.
	require.Equal(t, []ElementKind{
		ElemTryStart, ElemInstruction, ElemInstruction,
		ElemTryEnd, ElemHandlerStart, ElemInstruction, ElemInstruction,
		ElemHandlerStart, ElemInstruction,
	}, kinds(elements))
}

func TestPreprocessEndLabel(t *testing.T) {
	body := newBuilder(staticMethod(wk.Void)).
		mark("TS").op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("H").op(op.Endfinally).
		mark("END").
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerFault, TryStart: "TS", TryEnd: "H",
			HandlerStart: "H", HandlerEnd: "END",
		}).
		build()

	elements, err := Preprocess(body)
	require.NoError(t, err)
	last := elements[len(elements)-1]
	require.Equal(t, ElemFaultEnd, last.Kind)
	require.Equal(t, body.EndLabel(), last.Label)
	require.Equal(t, "IL_0003: <fault-end>", last.String())

	res, err := New().Decompile(body)
	require.NoError(t, err)
	fault := code(res)[1].(*codom.Block)
	require.Equal(t, codom.BlockFault, fault.Kind)
	require.Equal(t, codom.EndFault, fault.Stmts[0].(*codom.DoNothing).Kind)
}

func TestSharedTryTree(t *testing.T) {
	res, err := New().Decompile(sharedTry())
	require.NoError(t, err)
	stmts := code(res)
	require.Len(t, stmts, 4)

	try := stmts[0].(*codom.Block)
	require.Equal(t, codom.BlockTry, try.Kind)
	require.Len(t, try.Stmts, 2)

	first := stmts[1].(*codom.Block)
	require.Equal(t, codom.BlockCatch, first.Kind)
	require.True(t, first.ShowVariable)
	require.Equal(t, "ex", first.Exception.Name)
	require.Equal(t, "local0 = ex;", codom.Render(first.Stmts[0], nil))

	second := stmts[2].(*codom.Block)
	require.Equal(t, codom.BlockCatch, second.Kind)
	require.False(t, second.ShowVariable)
	require.Equal(t, "ex1", second.Exception.Name)
	require.Len(t, second.Stmts, 1)

	ret := stmts[3].(*codom.Branch)
	require.Equal(t, codom.BranchReturn, ret.Kind)
	require.Equal(t, try.Stmts[1].(*codom.Branch).Target, ret.Label())

	require.Equal(t, "catch (System.ArgumentException ex) {\n    local0 = ex;\n    leave IL_0009;\n}",
		codom.Render(first, nil))
	require.Equal(t, "catch (System.Exception) {\n    leave IL_0009;\n}", codom.Render(second, nil))
}

func TestFilterBlocks(t *testing.T) {
	body := newBuilder(staticMethod(wk.Void)).
		mark("TS").op(op.Nop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("F").op(op.Pop).op(op.LdcI4_1).op(op.Endfilter).
		mark("H").op(op.Pop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("END").op(op.Ret).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerFilter, TryStart: "TS", TryEnd: "F",
			FilterStart: "F", HandlerStart: "H", HandlerEnd: "END",
		}).
		build()

	elements, err := Preprocess(body)
	require.NoError(t, err)
	require.Equal(t, []ElementKind{
		ElemTryStart, ElemInstruction, ElemInstruction,
		ElemTryEnd, ElemFilterStart, ElemInstruction, ElemInstruction, ElemInstruction,
		ElemFilterEnd, ElemHandlerStart, ElemInstruction, ElemInstruction,
		ElemFilterHandlerEnd, ElemInstruction,
	}, kinds(elements))

	res, err := New().Decompile(body)
	require.NoError(t, err)
	stmts := code(res)
	require.Len(t, stmts, 4)

	filter := stmts[1].(*codom.Block)
	require.Equal(t, codom.BlockFilter, filter.Kind)
	require.False(t, filter.ShowVariable)
	require.Len(t, filter.Stmts, 1)
	require.Equal(t, "return 1;", codom.Render(filter.Stmts[0], nil))

	handler := stmts[2].(*codom.Block)
	require.Equal(t, codom.BlockFilterHandler, handler.Kind)
	require.Equal(t, codom.BranchLeave, handler.Stmts[0].(*codom.Branch).Kind)
}

func TestMalformedRegion(t *testing.T) {
	body := newBuilder(staticMethod(wk.Void)).
		mark("TS").op(op.Nop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("H").op(op.Pop).op(op.LeaveS, bytecode.TargetOperand("END")).
		mark("END").op(op.Ret).
		region(bytecode.ExceptionRegion{
			Kind: bytecode.HandlerCatch, TryStart: "TS", TryEnd: "H",
			HandlerStart: "H", HandlerEnd: "IL_9999", CatchType: wk.Exception,
		}).
		build()

	res, err := New().Decompile(body)
	require.Nil(t, res)
	require.True(t, errz.Is(err, errz.ErrMalformedRegion))

	res, err = New(WithLenient()).Decompile(body)
	require.NoError(t, err)
	require.True(t, errz.Is(res.Err, errz.ErrMalformedRegion))
	require.Nil(t, res.Failed)

	errorsSeen := 0
	for _, e := range res.Trace {
		if e.Severity == trace.Error {
			errorsSeen++
		}
	}
	require.Equal(t, 2, errorsSeen)

	stmts := code(res)
	require.Len(t, stmts, 2)
	require.Len(t, stmts[0].(*codom.Block).Stmts, 2)
	catch := stmts[1].(*codom.Block)
	require.Equal(t, codom.BlockCatch, catch.Kind)
	require.Len(t, catch.Stmts, 2)
	require.Equal(t, codom.BranchReturn, catch.Stmts[1].(*codom.Branch).Kind)

	branches := 0
	for n := range codom.Preorder(res.Root) {
		if _, ok := n.(*codom.Branch); ok {
			branches++
		}
	}
	require.Equal(t, 3, branches)
}

func TestMismatchedClose(t *testing.T) {
	b := newBlockStack(codom.NewBlock(codom.BlockPlain))
	_, err := b.close(codom.BlockTry, "IL_0000")
	require.True(t, errz.Is(err, errz.ErrStackUnderflow))

	b.open(codom.NewBlock(codom.BlockCatch))
	_, err = b.close(codom.BlockTry, "IL_0004")
	require.True(t, errz.Is(err, errz.ErrMalformedRegion))
	require.Equal(t, 1, b.depth())
}
