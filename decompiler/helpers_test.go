package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/op"
)

var wk = bytecode.NewWellKnown()

// builder assembles method bodies for tests. Branch targets and region
// boundaries name marks, which resolve to the label of the instruction that
// follows the mark. Names that are not marks are kept verbatim.
type builder struct {
	method  *bytecode.MethodRef
	codes   []op.Code
	opers   []bytecode.Operand
	marks   map[string]int
	locals  []bytecode.Local
	regions []bytecode.ExceptionRegion
}

func newBuilder(m *bytecode.MethodRef) *builder {
	return &builder{method: m, marks: map[string]int{}}
}

func staticMethod(ret *bytecode.TypeRef, params ...*bytecode.TypeRef) *bytecode.MethodRef {
	m := &bytecode.MethodRef{
		DeclaringType: &bytecode.TypeRef{Namespace: "Demo", Name: "Program"},
		Name:          "Run",
		ReturnType:    ret,
		IsStatic:      true,
	}
	for i, p := range params {
		m.Parameters = append(m.Parameters, bytecode.Parameter{Index: i, Type: p})
	}
	return m
}

func (b *builder) mark(name string) *builder {
	b.marks[name] = len(b.codes)
	return b
}

func (b *builder) op(code op.Code, operand ...bytecode.Operand) *builder {
	o := bytecode.NoOperand()
	if len(operand) > 0 {
		o = operand[0]
	}
	b.codes = append(b.codes, code)
	b.opers = append(b.opers, o)
	return b
}

func (b *builder) local(t *bytecode.TypeRef) *builder {
	b.locals = append(b.locals, bytecode.Local{Index: len(b.locals), Type: t})
	return b
}

func (b *builder) region(r bytecode.ExceptionRegion) *builder {
	b.regions = append(b.regions, r)
	return b
}

func (b *builder) build() *bytecode.MethodBody {
	labels := make([]string, len(b.codes)+1)
	offset := 0
	for i, code := range b.codes {
		labels[i] = bytecode.LabelFor(offset)
		offset += bytecode.NewInstruction(offset, code, b.opers[i]).Size()
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
		operand := b.opers[i]
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
		InitLocals:   true,
	})
}

// code returns the statements of the code section.
func code(res *Result) []codom.Node {
	return res.Code().Stmts
}
