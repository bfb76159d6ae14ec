package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
)

// arguments pops the arguments of a call to m. The stack holds them in
// reverse call order; the result is in declaration order, each coerced to
// its parameter kind.
func (s *state) arguments(m *bytecode.MethodRef) ([]codom.Value, error) {
	args, err := s.stack.popN(len(m.Parameters), s.label)
	if err != nil {
		return nil, err
	}
	for i, p := range m.Parameters {
		args[i] = s.coerce(p.Type, args[i], forAssign)
	}
	return args, nil
}

func callee(ins bytecode.Instruction) (*bytecode.MethodRef, error) {
	m := ins.Operand.Method()
	if m == nil {
		return nil, errz.Newf(errz.ErrInvalidOperand, ins.Label, "%s without a method", ins.Code)
	}
	return m, nil
}

// handleCall covers call and callvirt. Calls returning nothing, and
// constructor calls on an existing object, become statements; other calls
// leave their result on the stack.
func handleCall(s *state, ins bytecode.Instruction, info op.Info) error {
	m, err := callee(ins)
	if err != nil {
		return err
	}
	args, err := s.arguments(m)
	if err != nil {
		return err
	}
	name, err := s.nameFor(m)
	if err != nil {
		return err
	}

	var target codom.Value
	if m.IsStatic {
		if m.DeclaringType != nil {
			if target, err = s.typeReference(m.DeclaringType); err != nil {
				return err
			}
		}
	} else if target, err = s.pop(); err != nil {
		return err
	}

	call := codom.NewReference(codom.RefCall, name, m.ReturnType).WithArgs(args...)
	if target != nil {
		call.WithTarget(target)
	}
	call.Method = m
	call.Virtual = info.Category == op.CatCallVirt
	if m.IsVoid() || m.IsConstructor() {
		return s.emit(call)
	}
	s.push(call)
	return nil
}

// handleNewObj allocates an object and runs its constructor. The new object
// is always pushed since the code that follows needs it.
func handleNewObj(s *state, ins bytecode.Instruction, info op.Info) error {
	m, err := callee(ins)
	if err != nil {
		return err
	}
	args, err := s.arguments(m)
	if err != nil {
		return err
	}
	typ := m.DeclaringType
	name := typ.String()
	if typ != nil {
		if name, err = s.nameFor(typ); err != nil {
			return err
		}
	}
	obj := codom.NewReference(codom.RefNewObject, name, typ).WithArgs(args...)
	obj.KindName = name
	obj.Method = m
	s.push(obj)
	return nil
}
