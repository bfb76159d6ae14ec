package asm

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/op"
)

// body collects the parts of one method body until its closing brace.
type body struct {
	method     *bytecode.MethodRef
	codes      []op.Code
	operands   []bytecode.Operand
	marks      map[string]int
	locals     []bytecode.Local
	regions    []bytecode.ExceptionRegion
	initLocals bool
}

func newBody(m *bytecode.MethodRef) *body {
	return &body{method: m, marks: map[string]int{}}
}

// build lays the instructions out at consecutive offsets and resolves marks
// to the labels those offsets produce.
func (b *body) build() *bytecode.MethodBody {
	labels := make([]string, len(b.codes)+1)
	offset := 0
	for i, code := range b.codes {
		labels[i] = bytecode.LabelFor(offset)
		offset += bytecode.NewInstruction(offset, code, b.operands[i]).Size()
	}
	labels[len(b.codes)] = bytecode.LabelFor(offset)

	resolve := func(name string) string {
		if idx, ok := b.marks[name]; ok {
			return labels[idx]
		}
		return name
	}

	offset = 0
	instructions := make([]bytecode.Instruction, len(b.codes))
	for i, code := range b.codes {
		operand := b.operands[i]
		switch operand.Kind() {
		case bytecode.OperandTarget:
			operand = bytecode.TargetOperand(resolve(operand.Target()))
		case bytecode.OperandSwitch:
			targets := make([]string, operand.TargetCount())
			for j := range targets {
				targets[j] = resolve(operand.TargetAt(j))
			}
			operand = bytecode.SwitchOperand(targets...)
		}
		instructions[i] = bytecode.NewInstruction(offset, code, operand)
		offset += instructions[i].Size()
	}

	regions := make([]bytecode.ExceptionRegion, len(b.regions))
	for i, r := range b.regions {
		r.TryStart = resolve(r.TryStart)
		r.TryEnd = resolve(r.TryEnd)
		if r.FilterStart != "" {
			r.FilterStart = resolve(r.FilterStart)
		}
		r.HandlerStart = resolve(r.HandlerStart)
		r.HandlerEnd = resolve(r.HandlerEnd)
		regions[i] = r
	}

	return bytecode.NewMethodBody(bytecode.MethodBodyParams{
		Method:       b.method,
		Instructions: instructions,
		Regions:      regions,
		Locals:       b.locals,
		InitLocals:   b.initLocals,
	})
}
