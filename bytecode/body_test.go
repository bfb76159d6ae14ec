package bytecode

import (
	"testing"

	"github.com/deepnoodle-ai/codom/op"
	"github.com/stretchr/testify/require"
)

func TestNewMethodBodyImmutability(t *testing.T) {
	wk := NewWellKnown()
	instructions := []Instruction{
		NewInstruction(0, op.Ldarg0, NoOperand()),
		NewInstruction(1, op.Ret, NoOperand()),
	}
	regions := []ExceptionRegion{{Kind: HandlerFinally, TryStart: "IL_0000"}}
	locals := []Local{{Index: 0, Type: wk.Int32}}

	body := NewMethodBody(MethodBodyParams{
		Method:       &MethodRef{Name: "F", ReturnType: wk.Int32, IsStatic: true},
		Instructions: instructions,
		Regions:      regions,
		Locals:       locals,
	})

	instructions[0] = NewInstruction(0, op.Nop, NoOperand())
	regions[0].TryStart = "IL_9999"
	locals[0].Name = "modified"

	if body.InstructionAt(0).Code != op.Ldarg0 {
		t.Errorf("expected instruction 0 to be ldarg.0, got %v", body.InstructionAt(0).Code)
	}
	if body.RegionAt(0).TryStart != "IL_0000" {
		t.Errorf("expected region 0 TryStart to be IL_0000, got %v", body.RegionAt(0).TryStart)
	}
	if body.LocalAt(0).Name != "" {
		t.Errorf("expected local 0 to be unnamed, got %v", body.LocalAt(0).Name)
	}
}

func TestMethodBodyAccessors(t *testing.T) {
	wk := NewWellKnown()
	body := NewMethodBody(MethodBodyParams{
		Method: &MethodRef{Name: "F", ReturnType: wk.Void},
		Instructions: []Instruction{
			NewInstruction(0, op.LdcI4, IntOperand(7)),
			NewInstruction(5, op.BrS, TargetOperand("IL_0009")),
			NewInstruction(7, op.Pop, NoOperand()),
			NewInstruction(8, op.Nop, NoOperand()),
			NewInstruction(9, op.Switch, SwitchOperand("IL_0007", "IL_0008")),
			NewInstruction(22, op.Ret, NoOperand()),
		},
		InitLocals: true,
	})
	require.Equal(t, 6, body.InstructionCount())
	require.Equal(t, 23, body.CodeSize())
	require.Equal(t, "IL_0017", body.EndLabel())
	require.True(t, body.InitLocals())
	require.Equal(t, "IL_0005", body.InstructionAt(1).Label)
	require.Equal(t, 13, body.InstructionAt(4).Size())

	stats := body.Stats()
	require.Equal(t, 6, stats.InstructionCount)
	require.Equal(t, 3, stats.BranchTargets)
	require.Equal(t, 0, stats.Unsupported)
	require.Equal(t, map[string]bool{"IL_0007": true, "IL_0008": true, "IL_0009": true}, body.BranchTargets())
}

func TestInstructionString(t *testing.T) {
	wk := NewWellKnown()
	call := NewInstruction(16, op.Call, MethodOperand(&MethodRef{
		DeclaringType: &TypeRef{Namespace: "Demo", Name: "Calc"},
		Name:          "Add",
		Parameters:    []Parameter{{Index: 0, Type: wk.Int32}, {Index: 1, Type: wk.Int32}},
		ReturnType:    wk.Int32,
		IsStatic:      true,
	}))
	require.Equal(t, "IL_0010: call static int32 Demo.Calc::Add(int32, int32)", call.String())
	require.Equal(t, `IL_0000: ldstr "hi"`, NewInstruction(0, op.Ldstr, StringOperand("hi")).String())
	require.Equal(t, "IL_0000: ret", NewInstruction(0, op.Ret, NoOperand()).String())
}

func TestWellKnownAssignability(t *testing.T) {
	wk := NewWellKnown()
	animal := &TypeRef{Namespace: "Zoo", Name: "Animal", Base: wk.Object}
	pet := &TypeRef{Namespace: "Zoo", Name: "IPet", Kind: TypeInterface}
	dog := &TypeRef{Namespace: "Zoo", Name: "Dog", Base: animal, Interfaces: []*TypeRef{pet}}
	color := &TypeRef{Namespace: "Zoo", Name: "Color", Kind: TypeEnum, Base: wk.Enum, Underlying: wk.Int32}

	tests := []struct {
		name     string
		to, from *TypeRef
		want     bool
	}{
		{"same", wk.Int32, wk.Int32, true},
		{"widening is a conversion", wk.Int64, wk.Int32, false},
		{"object from class", wk.Object, dog, true},
		{"object from value type", wk.Object, wk.Int32, false},
		{"base class", animal, dog, true},
		{"derived from base", dog, animal, false},
		{"interface", pet, dog, true},
		{"enum from int", color, wk.Int32, false},
		{"array to System.Array", wk.Array, wk.String.ArrayOf(), true},
		{"covariant array", wk.Object.ArrayOf(), wk.String.ArrayOf(), true},
		{"value array is invariant", wk.Object.ArrayOf(), wk.Int32.ArrayOf(), false},
		{"nil", wk.Object, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, wk.IsAssignable(tt.to, tt.from))
		})
	}
}

func TestTypeRefNames(t *testing.T) {
	wk := NewWellKnown()
	require.Equal(t, "int32", wk.Int32.String())
	require.Equal(t, "System.Int32", wk.Int32.FullName())
	require.Equal(t, "int32&", wk.Int32.PointerTo().String())
	require.Equal(t, "System.String[]", wk.String.ArrayOf().FullName())
	require.True(t, wk.Int32.PointerTo().IsPointer())
	require.Equal(t, wk.Double, wk.ForKind(op.KindR8))
	require.Nil(t, wk.ForKind(op.KindNone))
	typ, ok := wk.Lookup("bool")
	require.True(t, ok)
	require.Equal(t, wk.Bool, typ)
}

func TestDefaultResolverNames(t *testing.T) {
	wk := NewWellKnown()
	r := NewDefaultResolver(wk)
	require.Same(t, wk, r.WellKnown())

	name, err := r.NameFor(Local{Index: 2}, nil)
	require.NoError(t, err)
	require.True(t, name.IsLiteral())
	require.Equal(t, "local2", name.String())

	name, err = r.NameFor(Parameter{Index: 0, Name: "x"}, nil)
	require.NoError(t, err)
	require.Equal(t, "x", name.Literal())

	name, err = r.NameFor(wk.String, nil)
	require.NoError(t, err)
	require.False(t, name.IsLiteral())
	require.Equal(t, wk.String, name.Described())

	_, err = r.NameFor(42, nil)
	require.Error(t, err)
}
