// Package op defines the closed set of stack machine opcodes understood by the
// decompiler, along with a data-driven table describing how each one is
// handled.
package op

// Code is an opcode as it is encoded in a method body. Two byte opcodes
// carry the 0xFE prefix in their high byte.
type Code uint16

const (
	Nop         Code = 0x00
	Break       Code = 0x01
	Ldarg0      Code = 0x02
	Ldarg1      Code = 0x03
	Ldarg2      Code = 0x04
	Ldarg3      Code = 0x05
	Ldloc0      Code = 0x06
	Ldloc1      Code = 0x07
	Ldloc2      Code = 0x08
	Ldloc3      Code = 0x09
	Stloc0      Code = 0x0A
	Stloc1      Code = 0x0B
	Stloc2      Code = 0x0C
	Stloc3      Code = 0x0D
	LdargS      Code = 0x0E
	LdargaS     Code = 0x0F
	StargS      Code = 0x10
	LdlocS      Code = 0x11
	LdlocaS     Code = 0x12
	StlocS      Code = 0x13
	Ldnull      Code = 0x14
	LdcI4M1     Code = 0x15
	LdcI4_0     Code = 0x16
	LdcI4_1     Code = 0x17
	LdcI4_2     Code = 0x18
	LdcI4_3     Code = 0x19
	LdcI4_4     Code = 0x1A
	LdcI4_5     Code = 0x1B
	LdcI4_6     Code = 0x1C
	LdcI4_7     Code = 0x1D
	LdcI4_8     Code = 0x1E
	LdcI4S      Code = 0x1F
	LdcI4       Code = 0x20
	LdcI8       Code = 0x21
	LdcR4       Code = 0x22
	LdcR8       Code = 0x23
	Dup         Code = 0x25
	Pop         Code = 0x26
	Jmp         Code = 0x27
	Call        Code = 0x28
	Calli       Code = 0x29
	Ret         Code = 0x2A
	BrS         Code = 0x2B
	BrfalseS    Code = 0x2C
	BrtrueS     Code = 0x2D
	BeqS        Code = 0x2E
	BgeS        Code = 0x2F
	BgtS        Code = 0x30
	BleS        Code = 0x31
	BltS        Code = 0x32
	BneUnS      Code = 0x33
	BgeUnS      Code = 0x34
	BgtUnS      Code = 0x35
	BleUnS      Code = 0x36
	BltUnS      Code = 0x37
	Br          Code = 0x38
	Brfalse     Code = 0x39
	Brtrue      Code = 0x3A
	Beq         Code = 0x3B
	Bge         Code = 0x3C
	Bgt         Code = 0x3D
	Ble         Code = 0x3E
	Blt         Code = 0x3F
	BneUn       Code = 0x40
	BgeUn       Code = 0x41
	BgtUn       Code = 0x42
	BleUn       Code = 0x43
	BltUn       Code = 0x44
	Switch      Code = 0x45
	LdindI1     Code = 0x46
	LdindU1     Code = 0x47
	LdindI2     Code = 0x48
	LdindU2     Code = 0x49
	LdindI4     Code = 0x4A
	LdindU4     Code = 0x4B
	LdindI8     Code = 0x4C
	LdindI      Code = 0x4D
	LdindR4     Code = 0x4E
	LdindR8     Code = 0x4F
	LdindRef    Code = 0x50
	StindRef    Code = 0x51
	StindI1     Code = 0x52
	StindI2     Code = 0x53
	StindI4     Code = 0x54
	StindI8     Code = 0x55
	StindR4     Code = 0x56
	StindR8     Code = 0x57
	Add         Code = 0x58
	Sub         Code = 0x59
	Mul         Code = 0x5A
	Div         Code = 0x5B
	DivUn       Code = 0x5C
	Rem         Code = 0x5D
	RemUn       Code = 0x5E
	And         Code = 0x5F
	Or          Code = 0x60
	Xor         Code = 0x61
	Shl         Code = 0x62
	Shr         Code = 0x63
	ShrUn       Code = 0x64
	Neg         Code = 0x65
	Not         Code = 0x66
	ConvI1      Code = 0x67
	ConvI2      Code = 0x68
	ConvI4      Code = 0x69
	ConvI8      Code = 0x6A
	ConvR4      Code = 0x6B
	ConvR8      Code = 0x6C
	ConvU4      Code = 0x6D
	ConvU8      Code = 0x6E
	Callvirt    Code = 0x6F
	Cpobj       Code = 0x70
	Ldobj       Code = 0x71
	Ldstr       Code = 0x72
	Newobj      Code = 0x73
	Castclass   Code = 0x74
	Isinst      Code = 0x75
	ConvRUn     Code = 0x76
	Unbox       Code = 0x79
	Throw       Code = 0x7A
	Ldfld       Code = 0x7B
	Ldflda      Code = 0x7C
	Stfld       Code = 0x7D
	Ldsfld      Code = 0x7E
	Ldsflda     Code = 0x7F
	Stsfld      Code = 0x80
	Stobj       Code = 0x81
	ConvOvfI1Un Code = 0x82
	ConvOvfI2Un Code = 0x83
	ConvOvfI4Un Code = 0x84
	ConvOvfI8Un Code = 0x85
	ConvOvfU1Un Code = 0x86
	ConvOvfU2Un Code = 0x87
	ConvOvfU4Un Code = 0x88
	ConvOvfU8Un Code = 0x89
	ConvOvfIUn  Code = 0x8A
	ConvOvfUUn  Code = 0x8B
	Box         Code = 0x8C
	Newarr      Code = 0x8D
	Ldlen       Code = 0x8E
	Ldelema     Code = 0x8F
	LdelemI1    Code = 0x90
	LdelemU1    Code = 0x91
	LdelemI2    Code = 0x92
	LdelemU2    Code = 0x93
	LdelemI4    Code = 0x94
	LdelemU4    Code = 0x95
	LdelemI8    Code = 0x96
	LdelemI     Code = 0x97
	LdelemR4    Code = 0x98
	LdelemR8    Code = 0x99
	LdelemRef   Code = 0x9A
	StelemI     Code = 0x9B
	StelemI1    Code = 0x9C
	StelemI2    Code = 0x9D
	StelemI4    Code = 0x9E
	StelemI8    Code = 0x9F
	StelemR4    Code = 0xA0
	StelemR8    Code = 0xA1
	StelemRef   Code = 0xA2
	Ldelem      Code = 0xA3
	Stelem      Code = 0xA4
	UnboxAny    Code = 0xA5
	ConvOvfI1   Code = 0xB3
	ConvOvfU1   Code = 0xB4
	ConvOvfI2   Code = 0xB5
	ConvOvfU2   Code = 0xB6
	ConvOvfI4   Code = 0xB7
	ConvOvfU4   Code = 0xB8
	ConvOvfI8   Code = 0xB9
	ConvOvfU8   Code = 0xBA
	Refanyval   Code = 0xC2
	Ckfinite    Code = 0xC3
	Mkrefany    Code = 0xC6
	Ldtoken     Code = 0xD0
	ConvU2      Code = 0xD1
	ConvU1      Code = 0xD2
	ConvI       Code = 0xD3
	ConvOvfI    Code = 0xD4
	ConvOvfU    Code = 0xD5
	AddOvf      Code = 0xD6
	AddOvfUn    Code = 0xD7
	MulOvf      Code = 0xD8
	MulOvfUn    Code = 0xD9
	SubOvf      Code = 0xDA
	SubOvfUn    Code = 0xDB
	Endfinally  Code = 0xDC
	Leave       Code = 0xDD
	LeaveS      Code = 0xDE
	StindI      Code = 0xDF
	ConvU       Code = 0xE0
	Arglist     Code = 0xFE00
	Ceq         Code = 0xFE01
	Cgt         Code = 0xFE02
	CgtUn       Code = 0xFE03
	Clt         Code = 0xFE04
	CltUn       Code = 0xFE05
	Ldftn       Code = 0xFE06
	Ldvirtftn   Code = 0xFE07
	Ldarg       Code = 0xFE09
	Ldarga      Code = 0xFE0A
	Starg       Code = 0xFE0B
	Ldloc       Code = 0xFE0C
	Ldloca      Code = 0xFE0D
	Stloc       Code = 0xFE0E
	Localloc    Code = 0xFE0F
	Endfilter   Code = 0xFE11
	Unaligned   Code = 0xFE12
	Volatile    Code = 0xFE13
	Tail        Code = 0xFE14
	Initobj     Code = 0xFE15
	Constrained Code = 0xFE16
	Cpblk       Code = 0xFE17
	Initblk     Code = 0xFE18
	No          Code = 0xFE19
	Rethrow     Code = 0xFE1A
	Sizeof      Code = 0xFE1C
	Refanytype  Code = 0xFE1D
	Readonly    Code = 0xFE1E
)

// Info contains information about an opcode.
type Info struct {
	Code        Code
	Name        string
	Category    Category
	Operand     OperandType
	OperandSize int // encoded operand size in bytes; switch adds 4 per target

	// Implicit is true for short forms that encode their index or constant
	// in the opcode itself (ldarg.1, stloc.0, ldc.i4.m1, ...).
	Implicit bool
	Index    int

	Kind      Kind
	Binary    BinaryOpType
	Unary     UnaryOpType
	Compare   CompareOpType
	TestsZero bool // brtrue/brfalse compare their single operand against zero
	Checked   bool // overflow-checked arithmetic or conversion
	Unsigned  bool
}

// Size returns the encoded size of the opcode itself.
func (i Info) Size() int {
	if i.Code > 0xFF {
		return 2
	}
	return 1
}

// IsValid reports whether the info describes a known opcode.
func (i Info) IsValid() bool {
	return i.Category != CatInvalid
}

var (
	infos  = map[Code]Info{}
	byName = map[string]Code{}
)

func init() {
	ops := []Info{
		{Code: Nop, Name: "nop", Category: CatNop},
		{Code: Break, Name: "break", Category: CatBreak},
		{Code: Ldarg0, Name: "ldarg.0", Category: CatLoadArg, Implicit: true, Index: 0},
		{Code: Ldarg1, Name: "ldarg.1", Category: CatLoadArg, Implicit: true, Index: 1},
		{Code: Ldarg2, Name: "ldarg.2", Category: CatLoadArg, Implicit: true, Index: 2},
		{Code: Ldarg3, Name: "ldarg.3", Category: CatLoadArg, Implicit: true, Index: 3},
		{Code: Ldloc0, Name: "ldloc.0", Category: CatLoadLocal, Implicit: true, Index: 0},
		{Code: Ldloc1, Name: "ldloc.1", Category: CatLoadLocal, Implicit: true, Index: 1},
		{Code: Ldloc2, Name: "ldloc.2", Category: CatLoadLocal, Implicit: true, Index: 2},
		{Code: Ldloc3, Name: "ldloc.3", Category: CatLoadLocal, Implicit: true, Index: 3},
		{Code: Stloc0, Name: "stloc.0", Category: CatStoreLocal, Implicit: true, Index: 0},
		{Code: Stloc1, Name: "stloc.1", Category: CatStoreLocal, Implicit: true, Index: 1},
		{Code: Stloc2, Name: "stloc.2", Category: CatStoreLocal, Implicit: true, Index: 2},
		{Code: Stloc3, Name: "stloc.3", Category: CatStoreLocal, Implicit: true, Index: 3},
		{Code: LdargS, Name: "ldarg.s", Category: CatLoadArg, Operand: InlineVar, OperandSize: 1},
		{Code: LdargaS, Name: "ldarga.s", Category: CatLoadArgAddr, Operand: InlineVar, OperandSize: 1},
		{Code: StargS, Name: "starg.s", Category: CatStoreArg, Operand: InlineVar, OperandSize: 1},
		{Code: LdlocS, Name: "ldloc.s", Category: CatLoadLocal, Operand: InlineVar, OperandSize: 1},
		{Code: LdlocaS, Name: "ldloca.s", Category: CatLoadLocalAddr, Operand: InlineVar, OperandSize: 1},
		{Code: StlocS, Name: "stloc.s", Category: CatStoreLocal, Operand: InlineVar, OperandSize: 1},
		{Code: Ldnull, Name: "ldnull", Category: CatLoadNull},
		{Code: LdcI4M1, Name: "ldc.i4.m1", Category: CatLoadConst, Implicit: true, Index: -1, Kind: KindI4},
		{Code: LdcI4_0, Name: "ldc.i4.0", Category: CatLoadConst, Implicit: true, Index: 0, Kind: KindI4},
		{Code: LdcI4_1, Name: "ldc.i4.1", Category: CatLoadConst, Implicit: true, Index: 1, Kind: KindI4},
		{Code: LdcI4_2, Name: "ldc.i4.2", Category: CatLoadConst, Implicit: true, Index: 2, Kind: KindI4},
		{Code: LdcI4_3, Name: "ldc.i4.3", Category: CatLoadConst, Implicit: true, Index: 3, Kind: KindI4},
		{Code: LdcI4_4, Name: "ldc.i4.4", Category: CatLoadConst, Implicit: true, Index: 4, Kind: KindI4},
		{Code: LdcI4_5, Name: "ldc.i4.5", Category: CatLoadConst, Implicit: true, Index: 5, Kind: KindI4},
		{Code: LdcI4_6, Name: "ldc.i4.6", Category: CatLoadConst, Implicit: true, Index: 6, Kind: KindI4},
		{Code: LdcI4_7, Name: "ldc.i4.7", Category: CatLoadConst, Implicit: true, Index: 7, Kind: KindI4},
		{Code: LdcI4_8, Name: "ldc.i4.8", Category: CatLoadConst, Implicit: true, Index: 8, Kind: KindI4},
		{Code: LdcI4S, Name: "ldc.i4.s", Category: CatLoadConst, Operand: InlineI, OperandSize: 1, Kind: KindI4},
		{Code: LdcI4, Name: "ldc.i4", Category: CatLoadConst, Operand: InlineI, OperandSize: 4, Kind: KindI4},
		{Code: LdcI8, Name: "ldc.i8", Category: CatLoadConst, Operand: InlineI8, OperandSize: 8, Kind: KindI8},
		{Code: LdcR4, Name: "ldc.r4", Category: CatLoadConst, Operand: InlineR, OperandSize: 4, Kind: KindR4},
		{Code: LdcR8, Name: "ldc.r8", Category: CatLoadConst, Operand: InlineR, OperandSize: 8, Kind: KindR8},
		{Code: Dup, Name: "dup", Category: CatDup},
		{Code: Pop, Name: "pop", Category: CatPop},
		{Code: Jmp, Name: "jmp", Category: CatUnsupported, Operand: InlineMethod, OperandSize: 4},
		{Code: Call, Name: "call", Category: CatCall, Operand: InlineMethod, OperandSize: 4},
		{Code: Calli, Name: "calli", Category: CatUnsupported, Operand: InlineSig, OperandSize: 4},
		{Code: Ret, Name: "ret", Category: CatReturn},
		{Code: BrS, Name: "br.s", Category: CatBranch, Operand: InlineBrTarget, OperandSize: 1},
		{Code: BrfalseS, Name: "brfalse.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: Equal, TestsZero: true},
		{Code: BrtrueS, Name: "brtrue.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: NotEqual, TestsZero: true},
		{Code: BeqS, Name: "beq.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: Equal},
		{Code: BgeS, Name: "bge.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: GreaterThanOrEqual},
		{Code: BgtS, Name: "bgt.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: GreaterThan},
		{Code: BleS, Name: "ble.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: LessThanOrEqual},
		{Code: BltS, Name: "blt.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: LessThan},
		{Code: BneUnS, Name: "bne.un.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: NotEqual, Unsigned: true},
		{Code: BgeUnS, Name: "bge.un.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: GreaterThanOrEqual, Unsigned: true},
		{Code: BgtUnS, Name: "bgt.un.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: GreaterThan, Unsigned: true},
		{Code: BleUnS, Name: "ble.un.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: LessThanOrEqual, Unsigned: true},
		{Code: BltUnS, Name: "blt.un.s", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 1, Compare: LessThan, Unsigned: true},
		{Code: Br, Name: "br", Category: CatBranch, Operand: InlineBrTarget, OperandSize: 4},
		{Code: Brfalse, Name: "brfalse", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: Equal, TestsZero: true},
		{Code: Brtrue, Name: "brtrue", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: NotEqual, TestsZero: true},
		{Code: Beq, Name: "beq", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: Equal},
		{Code: Bge, Name: "bge", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: GreaterThanOrEqual},
		{Code: Bgt, Name: "bgt", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: GreaterThan},
		{Code: Ble, Name: "ble", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: LessThanOrEqual},
		{Code: Blt, Name: "blt", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: LessThan},
		{Code: BneUn, Name: "bne.un", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: NotEqual, Unsigned: true},
		{Code: BgeUn, Name: "bge.un", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: GreaterThanOrEqual, Unsigned: true},
		{Code: BgtUn, Name: "bgt.un", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: GreaterThan, Unsigned: true},
		{Code: BleUn, Name: "ble.un", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: LessThanOrEqual, Unsigned: true},
		{Code: BltUn, Name: "blt.un", Category: CatCondBranch, Operand: InlineBrTarget, OperandSize: 4, Compare: LessThan, Unsigned: true},
		{Code: Switch, Name: "switch", Category: CatSwitch, Operand: InlineSwitch, OperandSize: 4},
		{Code: LdindI1, Name: "ldind.i1", Category: CatLoadIndirect, Kind: KindI1},
		{Code: LdindU1, Name: "ldind.u1", Category: CatLoadIndirect, Kind: KindU1},
		{Code: LdindI2, Name: "ldind.i2", Category: CatLoadIndirect, Kind: KindI2},
		{Code: LdindU2, Name: "ldind.u2", Category: CatLoadIndirect, Kind: KindU2},
		{Code: LdindI4, Name: "ldind.i4", Category: CatLoadIndirect, Kind: KindI4},
		{Code: LdindU4, Name: "ldind.u4", Category: CatLoadIndirect, Kind: KindU4},
		{Code: LdindI8, Name: "ldind.i8", Category: CatLoadIndirect, Kind: KindI8},
		{Code: LdindI, Name: "ldind.i", Category: CatLoadIndirect, Kind: KindI},
		{Code: LdindR4, Name: "ldind.r4", Category: CatLoadIndirect, Kind: KindR4},
		{Code: LdindR8, Name: "ldind.r8", Category: CatLoadIndirect, Kind: KindR8},
		{Code: LdindRef, Name: "ldind.ref", Category: CatLoadIndirect, Kind: KindRef},
		{Code: StindRef, Name: "stind.ref", Category: CatStoreIndirect, Kind: KindRef},
		{Code: StindI1, Name: "stind.i1", Category: CatStoreIndirect, Kind: KindI1},
		{Code: StindI2, Name: "stind.i2", Category: CatStoreIndirect, Kind: KindI2},
		{Code: StindI4, Name: "stind.i4", Category: CatStoreIndirect, Kind: KindI4},
		{Code: StindI8, Name: "stind.i8", Category: CatStoreIndirect, Kind: KindI8},
		{Code: StindR4, Name: "stind.r4", Category: CatStoreIndirect, Kind: KindR4},
		{Code: StindR8, Name: "stind.r8", Category: CatStoreIndirect, Kind: KindR8},
		{Code: Add, Name: "add", Category: CatBinary, Binary: Addition},
		{Code: Sub, Name: "sub", Category: CatBinary, Binary: Subtraction},
		{Code: Mul, Name: "mul", Category: CatBinary, Binary: Multiplication},
		{Code: Div, Name: "div", Category: CatBinary, Binary: Division},
		{Code: DivUn, Name: "div.un", Category: CatBinary, Binary: Division, Unsigned: true},
		{Code: Rem, Name: "rem", Category: CatBinary, Binary: Modulus},
		{Code: RemUn, Name: "rem.un", Category: CatBinary, Binary: Modulus, Unsigned: true},
		{Code: And, Name: "and", Category: CatBinary, Binary: BitwiseAnd},
		{Code: Or, Name: "or", Category: CatBinary, Binary: BitwiseOr},
		{Code: Xor, Name: "xor", Category: CatBinary, Binary: BitwiseXor},
		{Code: Shl, Name: "shl", Category: CatBinary, Binary: ShiftLeft},
		{Code: Shr, Name: "shr", Category: CatBinary, Binary: ShiftRight},
		{Code: ShrUn, Name: "shr.un", Category: CatBinary, Binary: ShiftRight, Unsigned: true},
		{Code: Neg, Name: "neg", Category: CatUnary, Unary: Negation},
		{Code: Not, Name: "not", Category: CatUnary, Unary: BitwiseNot},
		{Code: ConvI1, Name: "conv.i1", Category: CatConvert, Kind: KindI1},
		{Code: ConvI2, Name: "conv.i2", Category: CatConvert, Kind: KindI2},
		{Code: ConvI4, Name: "conv.i4", Category: CatConvert, Kind: KindI4},
		{Code: ConvI8, Name: "conv.i8", Category: CatConvert, Kind: KindI8},
		{Code: ConvR4, Name: "conv.r4", Category: CatConvert, Kind: KindR4},
		{Code: ConvR8, Name: "conv.r8", Category: CatConvert, Kind: KindR8},
		{Code: ConvU4, Name: "conv.u4", Category: CatConvert, Kind: KindU4},
		{Code: ConvU8, Name: "conv.u8", Category: CatConvert, Kind: KindU8},
		{Code: Callvirt, Name: "callvirt", Category: CatCallVirt, Operand: InlineMethod, OperandSize: 4},
		{Code: Cpobj, Name: "cpobj", Category: CatCopyObj, Operand: InlineType, OperandSize: 4},
		{Code: Ldobj, Name: "ldobj", Category: CatLoadIndirect, Operand: InlineType, OperandSize: 4},
		{Code: Ldstr, Name: "ldstr", Category: CatLoadString, Operand: InlineString, OperandSize: 4},
		{Code: Newobj, Name: "newobj", Category: CatNewObj, Operand: InlineMethod, OperandSize: 4},
		{Code: Castclass, Name: "castclass", Category: CatCastClass, Operand: InlineType, OperandSize: 4},
		{Code: Isinst, Name: "isinst", Category: CatIsInst, Operand: InlineType, OperandSize: 4},
		{Code: ConvRUn, Name: "conv.r.un", Category: CatConvert, Kind: KindR8, Unsigned: true},
		{Code: Unbox, Name: "unbox", Category: CatUnbox, Operand: InlineType, OperandSize: 4},
		{Code: Throw, Name: "throw", Category: CatThrow},
		{Code: Ldfld, Name: "ldfld", Category: CatLoadField, Operand: InlineField, OperandSize: 4},
		{Code: Ldflda, Name: "ldflda", Category: CatLoadFieldAddr, Operand: InlineField, OperandSize: 4},
		{Code: Stfld, Name: "stfld", Category: CatStoreField, Operand: InlineField, OperandSize: 4},
		{Code: Ldsfld, Name: "ldsfld", Category: CatLoadStaticField, Operand: InlineField, OperandSize: 4},
		{Code: Ldsflda, Name: "ldsflda", Category: CatLoadStaticFieldAddr, Operand: InlineField, OperandSize: 4},
		{Code: Stsfld, Name: "stsfld", Category: CatStoreStaticField, Operand: InlineField, OperandSize: 4},
		{Code: Stobj, Name: "stobj", Category: CatStoreIndirect, Operand: InlineType, OperandSize: 4},
		{Code: ConvOvfI1Un, Name: "conv.ovf.i1.un", Category: CatConvert, Kind: KindI1, Checked: true, Unsigned: true},
		{Code: ConvOvfI2Un, Name: "conv.ovf.i2.un", Category: CatConvert, Kind: KindI2, Checked: true, Unsigned: true},
		{Code: ConvOvfI4Un, Name: "conv.ovf.i4.un", Category: CatConvert, Kind: KindI4, Checked: true, Unsigned: true},
		{Code: ConvOvfI8Un, Name: "conv.ovf.i8.un", Category: CatConvert, Kind: KindI8, Checked: true, Unsigned: true},
		{Code: ConvOvfU1Un, Name: "conv.ovf.u1.un", Category: CatConvert, Kind: KindU1, Checked: true, Unsigned: true},
		{Code: ConvOvfU2Un, Name: "conv.ovf.u2.un", Category: CatConvert, Kind: KindU2, Checked: true, Unsigned: true},
		{Code: ConvOvfU4Un, Name: "conv.ovf.u4.un", Category: CatConvert, Kind: KindU4, Checked: true, Unsigned: true},
		{Code: ConvOvfU8Un, Name: "conv.ovf.u8.un", Category: CatConvert, Kind: KindU8, Checked: true, Unsigned: true},
		{Code: ConvOvfIUn, Name: "conv.ovf.i.un", Category: CatConvert, Kind: KindI, Checked: true, Unsigned: true},
		{Code: ConvOvfUUn, Name: "conv.ovf.u.un", Category: CatConvert, Kind: KindU, Checked: true, Unsigned: true},
		{Code: Box, Name: "box", Category: CatBox, Operand: InlineType, OperandSize: 4},
		{Code: Newarr, Name: "newarr", Category: CatNewArr, Operand: InlineType, OperandSize: 4},
		{Code: Ldlen, Name: "ldlen", Category: CatLoadLength},
		{Code: Ldelema, Name: "ldelema", Category: CatLoadElementAddr, Operand: InlineType, OperandSize: 4},
		{Code: LdelemI1, Name: "ldelem.i1", Category: CatLoadElement, Kind: KindI1},
		{Code: LdelemU1, Name: "ldelem.u1", Category: CatLoadElement, Kind: KindU1},
		{Code: LdelemI2, Name: "ldelem.i2", Category: CatLoadElement, Kind: KindI2},
		{Code: LdelemU2, Name: "ldelem.u2", Category: CatLoadElement, Kind: KindU2},
		{Code: LdelemI4, Name: "ldelem.i4", Category: CatLoadElement, Kind: KindI4},
		{Code: LdelemU4, Name: "ldelem.u4", Category: CatLoadElement, Kind: KindU4},
		{Code: LdelemI8, Name: "ldelem.i8", Category: CatLoadElement, Kind: KindI8},
		{Code: LdelemI, Name: "ldelem.i", Category: CatLoadElement, Kind: KindI},
		{Code: LdelemR4, Name: "ldelem.r4", Category: CatLoadElement, Kind: KindR4},
		{Code: LdelemR8, Name: "ldelem.r8", Category: CatLoadElement, Kind: KindR8},
		{Code: LdelemRef, Name: "ldelem.ref", Category: CatLoadElement, Kind: KindRef},
		{Code: StelemI, Name: "stelem.i", Category: CatStoreElement, Kind: KindI},
		{Code: StelemI1, Name: "stelem.i1", Category: CatStoreElement, Kind: KindI1},
		{Code: StelemI2, Name: "stelem.i2", Category: CatStoreElement, Kind: KindI2},
		{Code: StelemI4, Name: "stelem.i4", Category: CatStoreElement, Kind: KindI4},
		{Code: StelemI8, Name: "stelem.i8", Category: CatStoreElement, Kind: KindI8},
		{Code: StelemR4, Name: "stelem.r4", Category: CatStoreElement, Kind: KindR4},
		{Code: StelemR8, Name: "stelem.r8", Category: CatStoreElement, Kind: KindR8},
		{Code: StelemRef, Name: "stelem.ref", Category: CatStoreElement, Kind: KindRef},
		{Code: Ldelem, Name: "ldelem", Category: CatLoadElement, Operand: InlineType, OperandSize: 4},
		{Code: Stelem, Name: "stelem", Category: CatStoreElement, Operand: InlineType, OperandSize: 4},
		{Code: UnboxAny, Name: "unbox.any", Category: CatUnboxAny, Operand: InlineType, OperandSize: 4},
		{Code: ConvOvfI1, Name: "conv.ovf.i1", Category: CatConvert, Kind: KindI1, Checked: true},
		{Code: ConvOvfU1, Name: "conv.ovf.u1", Category: CatConvert, Kind: KindU1, Checked: true},
		{Code: ConvOvfI2, Name: "conv.ovf.i2", Category: CatConvert, Kind: KindI2, Checked: true},
		{Code: ConvOvfU2, Name: "conv.ovf.u2", Category: CatConvert, Kind: KindU2, Checked: true},
		{Code: ConvOvfI4, Name: "conv.ovf.i4", Category: CatConvert, Kind: KindI4, Checked: true},
		{Code: ConvOvfU4, Name: "conv.ovf.u4", Category: CatConvert, Kind: KindU4, Checked: true},
		{Code: ConvOvfI8, Name: "conv.ovf.i8", Category: CatConvert, Kind: KindI8, Checked: true},
		{Code: ConvOvfU8, Name: "conv.ovf.u8", Category: CatConvert, Kind: KindU8, Checked: true},
		{Code: Refanyval, Name: "refanyval", Category: CatUnsupported, Operand: InlineType, OperandSize: 4},
		{Code: Ckfinite, Name: "ckfinite", Category: CatCheckFinite},
		{Code: Mkrefany, Name: "mkrefany", Category: CatUnsupported, Operand: InlineType, OperandSize: 4},
		{Code: Ldtoken, Name: "ldtoken", Category: CatLoadToken, Operand: InlineTok, OperandSize: 4},
		{Code: ConvU2, Name: "conv.u2", Category: CatConvert, Kind: KindU2},
		{Code: ConvU1, Name: "conv.u1", Category: CatConvert, Kind: KindU1},
		{Code: ConvI, Name: "conv.i", Category: CatConvert, Kind: KindI},
		{Code: ConvOvfI, Name: "conv.ovf.i", Category: CatConvert, Kind: KindI, Checked: true},
		{Code: ConvOvfU, Name: "conv.ovf.u", Category: CatConvert, Kind: KindU, Checked: true},
		{Code: AddOvf, Name: "add.ovf", Category: CatBinary, Binary: Addition, Checked: true},
		{Code: AddOvfUn, Name: "add.ovf.un", Category: CatBinary, Binary: Addition, Checked: true, Unsigned: true},
		{Code: MulOvf, Name: "mul.ovf", Category: CatBinary, Binary: Multiplication, Checked: true},
		{Code: MulOvfUn, Name: "mul.ovf.un", Category: CatBinary, Binary: Multiplication, Checked: true, Unsigned: true},
		{Code: SubOvf, Name: "sub.ovf", Category: CatBinary, Binary: Subtraction, Checked: true},
		{Code: SubOvfUn, Name: "sub.ovf.un", Category: CatBinary, Binary: Subtraction, Checked: true, Unsigned: true},
		{Code: Endfinally, Name: "endfinally", Category: CatEndFinally},
		{Code: Leave, Name: "leave", Category: CatLeave, Operand: InlineBrTarget, OperandSize: 4},
		{Code: LeaveS, Name: "leave.s", Category: CatLeave, Operand: InlineBrTarget, OperandSize: 1},
		{Code: StindI, Name: "stind.i", Category: CatStoreIndirect, Kind: KindI},
		{Code: ConvU, Name: "conv.u", Category: CatConvert, Kind: KindU},
		{Code: Arglist, Name: "arglist", Category: CatUnsupported},
		{Code: Ceq, Name: "ceq", Category: CatCompare, Compare: Equal},
		{Code: Cgt, Name: "cgt", Category: CatCompare, Compare: GreaterThan},
		{Code: CgtUn, Name: "cgt.un", Category: CatCompare, Compare: GreaterThan, Unsigned: true},
		{Code: Clt, Name: "clt", Category: CatCompare, Compare: LessThan},
		{Code: CltUn, Name: "clt.un", Category: CatCompare, Compare: LessThan, Unsigned: true},
		{Code: Ldftn, Name: "ldftn", Category: CatLoadFunction, Operand: InlineMethod, OperandSize: 4},
		{Code: Ldvirtftn, Name: "ldvirtftn", Category: CatLoadVirtFunction, Operand: InlineMethod, OperandSize: 4},
		{Code: Ldarg, Name: "ldarg", Category: CatLoadArg, Operand: InlineVar, OperandSize: 2},
		{Code: Ldarga, Name: "ldarga", Category: CatLoadArgAddr, Operand: InlineVar, OperandSize: 2},
		{Code: Starg, Name: "starg", Category: CatStoreArg, Operand: InlineVar, OperandSize: 2},
		{Code: Ldloc, Name: "ldloc", Category: CatLoadLocal, Operand: InlineVar, OperandSize: 2},
		{Code: Ldloca, Name: "ldloca", Category: CatLoadLocalAddr, Operand: InlineVar, OperandSize: 2},
		{Code: Stloc, Name: "stloc", Category: CatStoreLocal, Operand: InlineVar, OperandSize: 2},
		{Code: Localloc, Name: "localloc", Category: CatUnsupported},
		{Code: Endfilter, Name: "endfilter", Category: CatEndFilter},
		{Code: Unaligned, Name: "unaligned.", Category: CatPrefix, Operand: InlineI, OperandSize: 1},
		{Code: Volatile, Name: "volatile.", Category: CatPrefix},
		{Code: Tail, Name: "tail.", Category: CatPrefix},
		{Code: Initobj, Name: "initobj", Category: CatInitObj, Operand: InlineType, OperandSize: 4},
		{Code: Constrained, Name: "constrained.", Category: CatPrefix, Operand: InlineType, OperandSize: 4},
		{Code: Cpblk, Name: "cpblk", Category: CatUnsupported},
		{Code: Initblk, Name: "initblk", Category: CatUnsupported},
		{Code: No, Name: "no.", Category: CatPrefix, Operand: InlineI, OperandSize: 1},
		{Code: Rethrow, Name: "rethrow", Category: CatRethrow},
		{Code: Sizeof, Name: "sizeof", Category: CatSizeOf, Operand: InlineType, OperandSize: 4},
		{Code: Refanytype, Name: "refanytype", Category: CatUnsupported},
		{Code: Readonly, Name: "readonly.", Category: CatPrefix},
	}
	for _, o := range ops {
		infos[o.Code] = o
		byName[o.Name] = o.Code
	}
}

// GetInfo returns information about the given opcode. The returned Info has
// category CatInvalid when the opcode is unknown.
func GetInfo(code Code) Info {
	return infos[code]
}

// Lookup returns the opcode with the given mnemonic, for example "ldarg.0".
func Lookup(name string) (Code, bool) {
	code, ok := byName[name]
	return code, ok
}

// String returns the opcode mnemonic.
func (c Code) String() string {
	if info, ok := infos[c]; ok {
		return info.Name
	}
	return "invalid"
}
