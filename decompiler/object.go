package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
)

func typeOperand(ins bytecode.Instruction) (*bytecode.TypeRef, error) {
	t := ins.Operand.Type()
	if t == nil {
		return nil, errz.Newf(errz.ErrInvalidOperand, ins.Label, "%s without a type", ins.Code)
	}
	return t, nil
}

// convertObject pops one value and pushes it wrapped in an object conversion
// to the type operand.
func (s *state) convertObject(ins bytecode.Instruction, kind codom.ObjectConversionKind) error {
	t, err := typeOperand(ins)
	if err != nil {
		return err
	}
	x, err := s.pop()
	if err != nil {
		return err
	}
	s.push(codom.NewObjectConversion(kind, x, t))
	return nil
}

func handleBox(s *state, ins bytecode.Instruction, info op.Info) error {
	if _, err := typeOperand(ins); err != nil {
		return err
	}
	x, err := s.pop()
	if err != nil {
		return err
	}
	s.push(codom.NewObjectConversion(codom.ConvBox, x, s.wk.Object))
	return nil
}

func handleUnbox(s *state, ins bytecode.Instruction, info op.Info) error {
	return s.convertObject(ins, codom.ConvUnBox)
}

func handleCastClass(s *state, ins bytecode.Instruction, info op.Info) error {
	return s.convertObject(ins, codom.ConvCast)
}

func handleIsInst(s *state, ins bytecode.Instruction, info op.Info) error {
	return s.convertObject(ins, codom.ConvAs)
}

// handleUnboxAny unboxes and loads value types, and casts reference types.
func handleUnboxAny(s *state, ins bytecode.Instruction, info op.Info) error {
	t, err := typeOperand(ins)
	if err != nil {
		return err
	}
	x, err := s.pop()
	if err != nil {
		return err
	}
	if t.IsValueType() {
		s.push(deref(codom.NewObjectConversion(codom.ConvUnBox, x, t), t))
		return nil
	}
	s.push(codom.NewObjectConversion(codom.ConvCast, x, t))
	return nil
}

// handleInitObj stores the default value of the type operand through the
// pointer on the stack, without running a constructor.
func handleInitObj(s *state, ins bytecode.Instruction, info op.Info) error {
	t, err := typeOperand(ins)
	if err != nil {
		return err
	}
	ptr, err := s.pop()
	if err != nil {
		return err
	}
	name, err := s.nameFor(t)
	if err != nil {
		return err
	}
	def := codom.NewReference(codom.RefDefault, name, t)
	def.KindName = name
	return s.emit(codom.NewAssign(deref(ptr, t), def))
}

func handleNewArr(s *state, ins bytecode.Instruction, info op.Info) error {
	t, err := typeOperand(ins)
	if err != nil {
		return err
	}
	n, err := s.pop()
	if err != nil {
		return err
	}
	s.push(codom.NewReference(codom.RefNewArray, "", t.ArrayOf()).WithArgs(n))
	return nil
}

// handleCopyObj loads the value at the source pointer and stores it through
// the destination pointer.
func handleCopyObj(s *state, ins bytecode.Instruction, info op.Info) error {
	t, err := typeOperand(ins)
	if err != nil {
		return err
	}
	src, err := s.pop()
	if err != nil {
		return err
	}
	dst, err := s.pop()
	if err != nil {
		return err
	}
	return s.emit(codom.NewAssign(deref(dst, t), deref(src, t)))
}

// handleDup pushes a clone of the top of the stack. The clone carries the
// label of the dup instruction, never the label of the original.
func handleDup(s *state, ins bytecode.Instruction, info op.Info) error {
	top, err := s.stack.peek(ins.Label)
	if err != nil {
		return err
	}
	s.push(top.Clone().(codom.Value))
	return nil
}

// handlePop discards the top of the stack. A discarded call still runs, so
// it becomes a statement. Discarding the exception of a catch block hides
// the exception variable of the block.
func handlePop(s *state, ins bytecode.Instruction, info op.Info) error {
	v, err := s.pop()
	if err != nil {
		return err
	}
	if block, ok := s.exceptions[v]; ok {
		block.ShowVariable = false
		delete(s.exceptions, v)
		return nil
	}
	if ref, ok := v.(*codom.Reference); ok && ref.IsCall() {
		return s.emit(ref)
	}
	s.trace.Infof(ins.Label, "discarded %s", codom.Render(v, nil))
	return nil
}
