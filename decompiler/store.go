package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/op"
)

// assign emits target = value, coercing value to the kind of target.
func (s *state) assign(target codom.Value, value codom.Value) error {
	return s.emit(codom.NewAssign(target, s.coerce(target.Type(), value, forAssign)))
}

func handleStoreArg(s *state, ins bytecode.Instruction, info op.Info) error {
	value, err := s.pop()
	if err != nil {
		return err
	}
	arg, err := s.argument(slot(ins, info))
	if err != nil {
		return err
	}
	return s.assign(arg, value)
}

func handleStoreLocal(s *state, ins bytecode.Instruction, info op.Info) error {
	value, err := s.pop()
	if err != nil {
		return err
	}
	local, err := s.local(slot(ins, info))
	if err != nil {
		return err
	}
	return s.assign(local, value)
}

func handleStoreIndirect(s *state, ins bytecode.Instruction, info op.Info) error {
	value, err := s.pop()
	if err != nil {
		return err
	}
	ptr, err := s.pop()
	if err != nil {
		return err
	}
	var elem *bytecode.TypeRef
	if t := ptr.Type(); t != nil && t.IsPointer() {
		elem = t.Elem
	}
	return s.assign(deref(ptr, s.indirectType(ins, info, elem)), value)
}

func handleStoreElement(s *state, ins bytecode.Instruction, info op.Info) error {
	value, err := s.pop()
	if err != nil {
		return err
	}
	elem, err := s.element(ins, info)
	if err != nil {
		return err
	}
	return s.assign(elem, value)
}

func handleStoreField(s *state, ins bytecode.Instruction, info op.Info) error {
	value, err := s.pop()
	if err != nil {
		return err
	}
	ref, err := s.instanceField(ins)
	if err != nil {
		return err
	}
	return s.assign(ref, value)
}

func handleStoreStaticField(s *state, ins bytecode.Instruction, info op.Info) error {
	value, err := s.pop()
	if err != nil {
		return err
	}
	ref, err := s.field(ins, true)
	if err != nil {
		return err
	}
	return s.assign(ref, value)
}
