package bytecode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/codom/op"
)

// OperandKind identifies which variant an Operand holds.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandInt
	OperandFloat
	OperandString
	OperandTarget
	OperandSwitch
	OperandType
	OperandMethod
	OperandField
	OperandIndex
)

// Operand is the inline operand of an instruction.
type Operand struct {
	kind    OperandKind
	i       int64
	f       float64
	s       string
	targets []string
	typ     *TypeRef
	method  *MethodRef
	field   *FieldRef
}

func NoOperand() Operand                 { return Operand{} }
func IntOperand(v int64) Operand         { return Operand{kind: OperandInt, i: v} }
func FloatOperand(v float64) Operand     { return Operand{kind: OperandFloat, f: v} }
func StringOperand(v string) Operand     { return Operand{kind: OperandString, s: v} }
func TargetOperand(label string) Operand { return Operand{kind: OperandTarget, s: label} }
func TypeOperand(t *TypeRef) Operand     { return Operand{kind: OperandType, typ: t} }
func MethodOperand(m *MethodRef) Operand { return Operand{kind: OperandMethod, method: m} }
func FieldOperand(f *FieldRef) Operand   { return Operand{kind: OperandField, field: f} }
func IndexOperand(index int) Operand     { return Operand{kind: OperandIndex, i: int64(index)} }

// SwitchOperand returns the jump table of a switch instruction.
func SwitchOperand(labels ...string) Operand {
	targets := make([]string, len(labels))
	copy(targets, labels)
	return Operand{kind: OperandSwitch, targets: targets}
}

func (o Operand) Kind() OperandKind     { return o.kind }
func (o Operand) Int() int64            { return o.i }
func (o Operand) Float() float64        { return o.f }
func (o Operand) Str() string           { return o.s }
func (o Operand) Target() string        { return o.s }
func (o Operand) Index() int            { return int(o.i) }
func (o Operand) Type() *TypeRef        { return o.typ }
func (o Operand) Method() *MethodRef    { return o.method }
func (o Operand) Field() *FieldRef      { return o.field }
func (o Operand) TargetCount() int      { return len(o.targets) }
func (o Operand) TargetAt(i int) string { return o.targets[i] }

// Token returns the member referenced by a type, method or field operand.
func (o Operand) Token() any {
	switch o.kind {
	case OperandType:
		return o.typ
	case OperandMethod:
		return o.method
	case OperandField:
		return o.field
	}
	return nil
}

func (o Operand) String() string {
	switch o.kind {
	case OperandInt, OperandIndex:
		return strconv.FormatInt(o.i, 10)
	case OperandFloat:
		return strconv.FormatFloat(o.f, 'g', -1, 64)
	case OperandString:
		return strconv.Quote(o.s)
	case OperandTarget:
		return o.s
	case OperandSwitch:
		return "(" + strings.Join(o.targets, ", ") + ")"
	case OperandType:
		return o.typ.String()
	case OperandMethod:
		return o.method.String()
	case OperandField:
		return o.field.String()
	}
	return ""
}

// Instruction is one opcode of a method body.
type Instruction struct {
	Offset  int
	Code    op.Code
	Operand Operand
	Label   string
}

// LabelFor returns the label of the instruction at the given byte offset.
func LabelFor(offset int) string {
	return fmt.Sprintf("IL_%04x", offset)
}

// NewInstruction returns an instruction labelled after its offset.
func NewInstruction(offset int, code op.Code, operand Operand) Instruction {
	return Instruction{
		Offset:  offset,
		Code:    code,
		Operand: operand,
		Label:   LabelFor(offset),
	}
}

// Info returns the opcode table entry of the instruction.
func (i Instruction) Info() op.Info {
	return op.GetInfo(i.Code)
}

// Size returns the encoded size of the instruction in bytes.
func (i Instruction) Size() int {
	info := i.Info()
	size := info.Size() + info.OperandSize
	if info.Operand == op.InlineSwitch {
		size += 4 * i.Operand.TargetCount()
	}
	return size
}

func (i Instruction) String() string {
	if i.Operand.Kind() == OperandNone {
		return fmt.Sprintf("%s: %s", i.Label, i.Code)
	}
	return fmt.Sprintf("%s: %s %s", i.Label, i.Code, i.Operand)
}
