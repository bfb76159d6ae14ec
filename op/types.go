package op

// Category groups opcodes that share one decompilation handler.
type Category uint8

const (
	CatInvalid Category = iota
	CatNop
	CatBreak
	CatPrefix
	CatLoadArg
	CatLoadArgAddr
	CatStoreArg
	CatLoadLocal
	CatLoadLocalAddr
	CatStoreLocal
	CatLoadNull
	CatLoadConst
	CatLoadString
	CatLoadToken
	CatLoadFunction
	CatLoadVirtFunction
	CatLoadIndirect
	CatStoreIndirect
	CatLoadElement
	CatLoadElementAddr
	CatStoreElement
	CatLoadLength
	CatLoadField
	CatLoadFieldAddr
	CatStoreField
	CatLoadStaticField
	CatLoadStaticFieldAddr
	CatStoreStaticField
	CatBinary
	CatUnary
	CatCompare
	CatBranch
	CatCondBranch
	CatSwitch
	CatLeave
	CatReturn
	CatThrow
	CatRethrow
	CatCall
	CatCallVirt
	CatNewObj
	CatConvert
	CatBox
	CatUnbox
	CatUnboxAny
	CatCastClass
	CatIsInst
	CatInitObj
	CatNewArr
	CatCopyObj
	CatDup
	CatPop
	CatEndFilter
	CatEndFinally
	CatCheckFinite
	CatSizeOf
	CatUnsupported
)

// OperandType describes the inline operand that follows an opcode.
type OperandType uint8

const (
	InlineNone OperandType = iota
	InlineBrTarget
	InlineSwitch
	InlineI
	InlineI8
	InlineR
	InlineString
	InlineType
	InlineMethod
	InlineField
	InlineTok
	InlineVar
	InlineSig
)

var operandTypeNames = map[OperandType]string{
	InlineNone:     "none",
	InlineBrTarget: "target",
	InlineSwitch:   "switch",
	InlineI:        "int32",
	InlineI8:       "int64",
	InlineR:        "float",
	InlineString:   "string",
	InlineType:     "type",
	InlineMethod:   "method",
	InlineField:    "field",
	InlineTok:      "token",
	InlineVar:      "var",
	InlineSig:      "sig",
}

func (t OperandType) String() string {
	return operandTypeNames[t]
}

// Kind is the primitive value kind an opcode loads, stores or converts to.
type Kind uint8

const (
	KindNone Kind = iota
	KindI1
	KindI2
	KindI4
	KindI8
	KindU1
	KindU2
	KindU4
	KindU8
	KindI
	KindU
	KindR4
	KindR8
	KindRef
)

// String returns the short IL suffix of the kind, for example "i4".
func (k Kind) String() string {
	switch k {
	case KindI1:
		return "i1"
	case KindI2:
		return "i2"
	case KindI4:
		return "i4"
	case KindI8:
		return "i8"
	case KindU1:
		return "u1"
	case KindU2:
		return "u2"
	case KindU4:
		return "u4"
	case KindU8:
		return "u8"
	case KindI:
		return "i"
	case KindU:
		return "u"
	case KindR4:
		return "r4"
	case KindR8:
		return "r8"
	case KindRef:
		return "ref"
	default:
		return ""
	}
}

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. For example, addition, subtraction, multiplication, etc.
type BinaryOpType uint16

const (
	Addition BinaryOpType = iota + 1
	Subtraction
	Multiplication
	Division
	Modulus
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	case Multiplication:
		return "*"
	case Division:
		return "/"
	case Modulus:
		return "%"
	case BitwiseAnd:
		return "&"
	case BitwiseOr:
		return "|"
	case BitwiseXor:
		return "^"
	case ShiftLeft:
		return "<<"
	case ShiftRight:
		return ">>"
	default:
		return ""
	}
}

// UnaryOpType describes an operation with a single operand.
type UnaryOpType uint16

const (
	Negation UnaryOpType = iota + 1
	BitwiseNot
	LogicalNot
	Checked
)

func (uop UnaryOpType) String() string {
	switch uop {
	case Negation:
		return "-"
	case BitwiseNot:
		return "~"
	case LogicalNot:
		return "!"
	case Checked:
		return "checked"
	default:
		return ""
	}
}

// CompareOpType describes a type of comparison operation. For example, less
// than, greater than, equal, etc. Unsigned comparison opcodes map onto the
// same values as their signed counterparts.
type CompareOpType uint16

const (
	Equal CompareOpType = iota + 1
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
)

// String returns a string representation of the comparison operation.
// For example "<" for less than.
func (cop CompareOpType) String() string {
	switch cop {
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return ""
	}
}
