package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/op"
)

// operands pops the right then the left operand of a two-operand opcode and
// coerces the right one against the kind of the left one.
func (s *state) operands() (left, right codom.Value, err error) {
	if right, err = s.pop(); err != nil {
		return nil, nil, err
	}
	if left, err = s.pop(); err != nil {
		return nil, nil, err
	}
	if t := left.Type(); t != nil {
		right = s.coerce(t, right, forCompare)
	}
	return left, right, nil
}

func resultType(left, right codom.Value) *bytecode.TypeRef {
	if t := left.Type(); t != nil {
		return t
	}
	return right.Type()
}

// checked wraps v in an overflow check when the opcode asks for one.
func checked(info op.Info, v codom.Value) codom.Value {
	if !info.Checked {
		return v
	}
	return codom.NewUnary(op.Checked, v, v.Type())
}

func handleBinary(s *state, ins bytecode.Instruction, info op.Info) error {
	left, right, err := s.operands()
	if err != nil {
		return err
	}
	s.push(checked(info, codom.NewBinary(info.Binary, left, right, resultType(left, right))))
	return nil
}

func handleUnary(s *state, ins bytecode.Instruction, info op.Info) error {
	x, err := s.pop()
	if err != nil {
		return err
	}
	s.push(codom.NewUnary(info.Unary, x, x.Type()))
	return nil
}

// compare builds the comparison of a ceq/cgt/clt opcode or a two-operand
// conditional branch. Unsigned variants share the signed operators.
func (s *state) compare(info op.Info) (codom.Value, error) {
	left, right, err := s.operands()
	if err != nil {
		return nil, err
	}
	return codom.NewCompare(info.Compare, left, right, s.wk.Bool), nil
}

func handleCompare(s *state, ins bytecode.Instruction, info op.Info) error {
	cmp, err := s.compare(info)
	if err != nil {
		return err
	}
	s.push(cmp)
	return nil
}

func handleConvert(s *state, ins bytecode.Instruction, info op.Info) error {
	x, err := s.pop()
	if err != nil {
		return err
	}
	s.push(checked(info, codom.NewConversion(info.Kind, x, s.wk.ForKind(info.Kind))))
	return nil
}
