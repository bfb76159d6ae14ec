package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(Ldfld)
	require.Equal(t, "ldfld", info.Name)
	require.Equal(t, CatLoadField, info.Category)
	require.Equal(t, InlineField, info.Operand)
	require.Equal(t, 4, info.OperandSize)
	require.Equal(t, 1, info.Size())
}

func TestGetInfoUnknown(t *testing.T) {
	info := GetInfo(Code(0x24))
	require.False(t, info.IsValid())
	require.Equal(t, "invalid", Code(0x24).String())
}

func TestImplicitOperands(t *testing.T) {
	tests := []struct {
		code  Code
		name  string
		index int
	}{
		{Ldarg0, "ldarg.0", 0},
		{Ldarg3, "ldarg.3", 3},
		{Ldloc2, "ldloc.2", 2},
		{Stloc1, "stloc.1", 1},
		{LdcI4M1, "ldc.i4.m1", -1},
		{LdcI4_8, "ldc.i4.8", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetInfo(tt.code)
			require.Equal(t, tt.name, info.Name)
			require.True(t, info.Implicit)
			require.Equal(t, tt.index, info.Index)
			require.Equal(t, InlineNone, info.Operand)
		})
	}
}

func TestUnsignedBranchesShareComparison(t *testing.T) {
	tests := []struct {
		signed   Code
		unsigned Code
	}{
		{Bge, BgeUn},
		{Bgt, BgtUn},
		{Ble, BleUn},
		{Blt, BltUn},
		{BgeS, BgeUnS},
		{Cgt, CgtUn},
		{Clt, CltUn},
	}
	for _, tt := range tests {
		signed, unsigned := GetInfo(tt.signed), GetInfo(tt.unsigned)
		require.Equal(t, signed.Compare, unsigned.Compare, unsigned.Name)
		require.True(t, unsigned.Unsigned)
		require.False(t, signed.Unsigned)
	}
	require.Equal(t, NotEqual, GetInfo(BneUn).Compare)
}

func TestZeroTestBranches(t *testing.T) {
	require.True(t, GetInfo(Brfalse).TestsZero)
	require.Equal(t, Equal, GetInfo(Brfalse).Compare)
	require.True(t, GetInfo(BrtrueS).TestsZero)
	require.Equal(t, NotEqual, GetInfo(BrtrueS).Compare)
	require.False(t, GetInfo(Beq).TestsZero)
}

func TestLookup(t *testing.T) {
	code, ok := Lookup("conv.ovf.u2.un")
	require.True(t, ok)
	require.Equal(t, ConvOvfU2Un, code)
	info := GetInfo(code)
	require.True(t, info.Checked)
	require.True(t, info.Unsigned)
	require.Equal(t, KindU2, info.Kind)

	code, ok = Lookup("ceq")
	require.True(t, ok)
	require.Equal(t, 2, GetInfo(code).Size())

	_, ok = Lookup("halt")
	require.False(t, ok)
}

func TestUnsupportedOpcodes(t *testing.T) {
	for _, code := range []Code{Calli, Cpblk, Initblk, Jmp, Localloc, Arglist} {
		require.Equal(t, CatUnsupported, GetInfo(code).Category, code.String())
	}
}

func TestOperatorStrings(t *testing.T) {
	require.Equal(t, "+", Addition.String())
	require.Equal(t, ">>", ShiftRight.String())
	require.Equal(t, "~", BitwiseNot.String())
	require.Equal(t, ">=", GreaterThanOrEqual.String())
	require.Equal(t, "r8", KindR8.String())
	require.Equal(t, "target", InlineBrTarget.String())
}
