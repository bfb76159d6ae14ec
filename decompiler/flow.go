package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/op"
)

// handleBranch emits goto target. Values left on the stack travel to the
// target through its temporaries.
func handleBranch(s *state, ins bytecode.Instruction, info op.Info) error {
	if s.stack.count() > 0 {
		if _, err := s.spill(ins.Operand.Target()); err != nil {
			return err
		}
	}
	return s.emit(codom.NewGoto(ins.Operand.Target()))
}

// carry spills the values below the operands of a conditional jump into the
// temporaries of every target and pushes them back for the fall-through
// path.
func (s *state) carry(targets ...string) error {
	if s.stack.count() == 0 || len(targets) == 0 {
		return nil
	}
	temps, err := s.spill(targets[0])
	if err != nil {
		return err
	}
	for _, t := range targets[1:] {
		if s.spills[t] == nil {
			s.spills[t] = temps
		} else if len(s.spills[t]) != len(temps) {
			s.trace.Warnf(t, "reached with %d stack values, %d on another path", len(temps), len(s.spills[t]))
		} else {
			for i, temp := range s.spills[t] {
				if err := s.emit(codom.NewAssign(temp.Clone().(codom.Value), temps[i].Clone().(codom.Value))); err != nil {
					return err
				}
			}
		}
	}
	for _, t := range temps {
		s.push(t.Clone().(codom.Value))
	}
	return nil
}

// handleCondBranch emits if (cond) goto target. brtrue and brfalse test
// their single operand against zero, coerced to the operand's kind so that
// references compare against null and booleans against false.
func handleCondBranch(s *state, ins bytecode.Instruction, info op.Info) error {
	var cond codom.Value
	if info.TestsZero {
		x, err := s.pop()
		if err != nil {
			return err
		}
		var zero codom.Value = codom.NewLiteral(int32(0), s.wk.Int32)
		if t := x.Type(); t != nil {
			zero = s.coerce(t, zero, forCompare)
		}
		cond = codom.NewCompare(info.Compare, x, zero, s.wk.Bool)
	} else {
		var err error
		if cond, err = s.compare(info); err != nil {
			return err
		}
	}
	if err := s.carry(ins.Operand.Target()); err != nil {
		return err
	}
	return s.emit(codom.NewIf(cond, codom.NewGoto(ins.Operand.Target())))
}

// handleSwitch emits a chain of conditionals comparing the selector with
// 0, 1, 2, ... in order, each nested as the else branch of the previous one.
func handleSwitch(s *state, ins bytecode.Instruction, info op.Info) error {
	selector, err := s.pop()
	if err != nil {
		return err
	}
	n := ins.Operand.TargetCount()
	if n == 0 {
		s.trace.Infof(ins.Label, "switch without targets")
		return nil
	}
	targets := make([]string, n)
	for i := range targets {
		targets[i] = ins.Operand.TargetAt(i)
	}
	if err := s.carry(targets...); err != nil {
		return err
	}
	var head, tail *codom.If
	for i := 0; i < n; i++ {
		sel := selector
		if i > 0 {
			sel = selector.Clone().(codom.Value)
		}
		cond := codom.NewCompare(op.Equal, sel, codom.NewLiteral(int32(i), s.wk.Int32), s.wk.Bool)
		branch := codom.NewIf(cond, codom.NewGoto(targets[i]))
		if head == nil {
			head = branch
		} else {
			tail.Else = branch
		}
		tail = branch
	}
	return s.emit(head)
}

func handleLeave(s *state, ins bytecode.Instruction, info op.Info) error {
	s.stack.clear()
	return s.emit(codom.NewLeave(ins.Operand.Target()))
}

func handleReturn(s *state, ins bytecode.Instruction, info op.Info) error {
	var value codom.Value
	if !s.method.IsVoid() && s.stack.count() > 0 {
		v, err := s.pop()
		if err != nil {
			return err
		}
		value = s.coerce(s.method.ReturnType, v, forAssign)
	}
	s.stack.clear()
	return s.emit(codom.NewReturn(value))
}

func handleThrow(s *state, ins bytecode.Instruction, info op.Info) error {
	ex, err := s.pop()
	if err != nil {
		return err
	}
	s.stack.clear()
	return s.emit(codom.NewThrow(ex))
}

func handleRethrow(s *state, ins bytecode.Instruction, info op.Info) error {
	s.stack.clear()
	return s.emit(codom.NewThrow(nil))
}

// handleEndFilter pops the verdict of a filter block, which becomes the value
// the block returns. The rest of the stack is left alone.
func handleEndFilter(s *state, ins bytecode.Instruction, info op.Info) error {
	verdict, err := s.pop()
	if err != nil {
		return err
	}
	if cur := s.blocks.current(); cur == nil || cur.Kind != codom.BlockFilter {
		s.trace.Warnf(ins.Label, "endfilter outside of a filter block")
	}
	return s.emit(codom.NewReturn(verdict))
}

func handleEndFinally(s *state, ins bytecode.Instruction, info op.Info) error {
	s.stack.clear()
	kind := codom.EndFinally
	if cur := s.blocks.current(); cur != nil && cur.Kind == codom.BlockFault {
		kind = codom.EndFault
	}
	return s.emit(codom.NewDoNothing(kind))
}

func handleCheckFinite(s *state, ins bytecode.Instruction, info op.Info) error {
	x, err := s.stack.peek(ins.Label)
	if err != nil {
		return err
	}
	return s.emit(codom.NewCheckFinite(x.Clone().(codom.Value)))
}
