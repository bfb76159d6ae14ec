package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/op"
)

// slot returns the argument or local index of an instruction, which short
// forms encode in the opcode itself.
func slot(ins bytecode.Instruction, info op.Info) int {
	if info.Implicit {
		return info.Index
	}
	return ins.Operand.Index()
}

func addressOf(v codom.Value) *codom.Reference {
	var typ *bytecode.TypeRef
	if t := v.Type(); t != nil {
		typ = t.PointerTo()
	}
	return codom.NewReference(codom.RefAddressOf, "", typ).WithTarget(v)
}

func deref(ptr codom.Value, typ *bytecode.TypeRef) *codom.Reference {
	if typ == nil {
		if t := ptr.Type(); t != nil && t.IsPointer() {
			typ = t.Elem
		}
	}
	return codom.NewReference(codom.RefDeref, "", typ).WithTarget(ptr)
}

func handleNop(s *state, ins bytecode.Instruction, info op.Info) error {
	return s.emit(codom.NewDoNothing(codom.Nop))
}

func handleBreak(s *state, ins bytecode.Instruction, info op.Info) error {
	return s.emit(codom.NewDoNothing(codom.DebuggerBreak))
}

// Prefixes only qualify the next instruction.
func handlePrefix(s *state, ins bytecode.Instruction, info op.Info) error {
	return nil
}

func handleLoadArg(s *state, ins bytecode.Instruction, info op.Info) error {
	arg, err := s.argument(slot(ins, info))
	if err != nil {
		return err
	}
	s.push(arg)
	return nil
}

func handleLoadArgAddr(s *state, ins bytecode.Instruction, info op.Info) error {
	arg, err := s.argument(slot(ins, info))
	if err != nil {
		return err
	}
	s.push(addressOf(arg))
	return nil
}

func handleLoadLocal(s *state, ins bytecode.Instruction, info op.Info) error {
	local, err := s.local(slot(ins, info))
	if err != nil {
		return err
	}
	s.push(local)
	return nil
}

func handleLoadLocalAddr(s *state, ins bytecode.Instruction, info op.Info) error {
	local, err := s.local(slot(ins, info))
	if err != nil {
		return err
	}
	s.push(addressOf(local))
	return nil
}

func handleLoadNull(s *state, ins bytecode.Instruction, info op.Info) error {
	s.push(codom.NewNull())
	return nil
}

func handleLoadConst(s *state, ins bytecode.Instruction, info op.Info) error {
	typ := s.wk.ForKind(info.Kind)
	switch info.Kind {
	case op.KindI4:
		v := int64(info.Index)
		if !info.Implicit {
			v = ins.Operand.Int()
		}
		s.push(codom.NewLiteral(int32(v), typ))
	case op.KindI8:
		s.push(codom.NewLiteral(ins.Operand.Int(), typ))
	case op.KindR4:
		s.push(codom.NewLiteral(float32(ins.Operand.Float()), typ))
	default:
		s.push(codom.NewLiteral(ins.Operand.Float(), typ))
	}
	return nil
}

func handleLoadString(s *state, ins bytecode.Instruction, info op.Info) error {
	s.push(codom.NewString(ins.Operand.Str(), s.wk.String))
	return nil
}

func handleLoadToken(s *state, ins bytecode.Instruction, info op.Info) error {
	token := ins.Operand.Token()
	if token == nil {
		return errz.New(errz.ErrInvalidOperand, ins.Label, "ldtoken without a member")
	}
	var typ *bytecode.TypeRef
	switch ins.Operand.Kind() {
	case bytecode.OperandMethod:
		typ = s.wk.RuntimeMethodHandle
	case bytecode.OperandField:
		typ = s.wk.RuntimeFieldHandle
	default:
		typ = s.wk.RuntimeTypeHandle
	}
	name, err := s.nameFor(token)
	if err != nil {
		return err
	}
	s.push(codom.NewToken(token, name, typ))
	return nil
}

func handleLoadFunction(s *state, ins bytecode.Instruction, info op.Info) error {
	method := ins.Operand.Method()
	if method == nil {
		return errz.New(errz.ErrInvalidOperand, ins.Label, "ldftn without a method")
	}
	name, err := s.nameFor(method)
	if err != nil {
		return err
	}
	ref := codom.NewReference(codom.RefMethodPointer, name, s.wk.IntPtr)
	ref.Method = method
	if method.DeclaringType != nil {
		owner, err := s.typeReference(method.DeclaringType)
		if err != nil {
			return err
		}
		ref.WithTarget(owner)
	}
	s.push(ref)
	return nil
}

func handleLoadVirtFunction(s *state, ins bytecode.Instruction, info op.Info) error {
	method := ins.Operand.Method()
	if method == nil {
		return errz.New(errz.ErrInvalidOperand, ins.Label, "ldvirtftn without a method")
	}
	obj, err := s.pop()
	if err != nil {
		return err
	}
	name, err := s.nameFor(method)
	if err != nil {
		return err
	}
	ref := codom.NewReference(codom.RefMethodPointer, name, s.wk.IntPtr).WithTarget(obj)
	ref.Method = method
	ref.Virtual = true
	s.push(ref)
	return nil
}

// indirectType returns the kind an indirect or element access moves: the
// opcode suffix, the type operand, or failing both the fallback.
func (s *state) indirectType(ins bytecode.Instruction, info op.Info, fallback *bytecode.TypeRef) *bytecode.TypeRef {
	if info.Kind != op.KindNone && info.Kind != op.KindRef {
		return s.wk.ForKind(info.Kind)
	}
	if t := ins.Operand.Type(); t != nil {
		return t
	}
	if fallback != nil {
		return fallback
	}
	if info.Kind == op.KindRef {
		return s.wk.Object
	}
	return nil
}

func handleLoadIndirect(s *state, ins bytecode.Instruction, info op.Info) error {
	ptr, err := s.pop()
	if err != nil {
		return err
	}
	var elem *bytecode.TypeRef
	if t := ptr.Type(); t != nil && t.IsPointer() {
		elem = t.Elem
	}
	s.push(deref(ptr, s.indirectType(ins, info, elem)))
	return nil
}

func elementType(array codom.Value) *bytecode.TypeRef {
	if t := array.Type(); t != nil && t.Kind == bytecode.TypeArray {
		return t.Elem
	}
	return nil
}

func (s *state) element(ins bytecode.Instruction, info op.Info) (*codom.Reference, error) {
	index, err := s.pop()
	if err != nil {
		return nil, err
	}
	array, err := s.pop()
	if err != nil {
		return nil, err
	}
	typ := s.indirectType(ins, info, elementType(array))
	return codom.NewReference(codom.RefArrayElement, "", typ).WithTarget(array).WithArgs(index), nil
}

func handleLoadElement(s *state, ins bytecode.Instruction, info op.Info) error {
	elem, err := s.element(ins, info)
	if err != nil {
		return err
	}
	s.push(elem)
	return nil
}

func handleLoadElementAddr(s *state, ins bytecode.Instruction, info op.Info) error {
	elem, err := s.element(ins, info)
	if err != nil {
		return err
	}
	s.push(addressOf(elem))
	return nil
}

func handleLoadLength(s *state, ins bytecode.Instruction, info op.Info) error {
	array, err := s.pop()
	if err != nil {
		return err
	}
	s.push(codom.NewReference(codom.RefArrayLength, "Length", s.wk.UIntPtr).WithTarget(array))
	return nil
}

func (s *state) field(ins bytecode.Instruction, static bool) (*codom.Reference, error) {
	f := ins.Operand.Field()
	if f == nil {
		return nil, errz.New(errz.ErrInvalidOperand, ins.Label, "field access without a field")
	}
	name, err := s.nameFor(f)
	if err != nil {
		return nil, err
	}
	kind := codom.RefField
	if static {
		kind = codom.RefStaticField
	}
	ref := codom.NewReference(kind, name, f.Type)
	ref.Field = f
	if static && f.DeclaringType != nil {
		owner, err := s.typeReference(f.DeclaringType)
		if err != nil {
			return nil, err
		}
		ref.WithTarget(owner)
	}
	return ref, nil
}

func (s *state) instanceField(ins bytecode.Instruction) (*codom.Reference, error) {
	ref, err := s.field(ins, false)
	if err != nil {
		return nil, err
	}
	obj, err := s.pop()
	if err != nil {
		return nil, err
	}
	return ref.WithTarget(obj), nil
}

func handleLoadField(s *state, ins bytecode.Instruction, info op.Info) error {
	ref, err := s.instanceField(ins)
	if err != nil {
		return err
	}
	s.push(ref)
	return nil
}

func handleLoadFieldAddr(s *state, ins bytecode.Instruction, info op.Info) error {
	ref, err := s.instanceField(ins)
	if err != nil {
		return err
	}
	s.push(addressOf(ref))
	return nil
}

func handleLoadStaticField(s *state, ins bytecode.Instruction, info op.Info) error {
	ref, err := s.field(ins, true)
	if err != nil {
		return err
	}
	s.push(ref)
	return nil
}

func handleLoadStaticFieldAddr(s *state, ins bytecode.Instruction, info op.Info) error {
	ref, err := s.field(ins, true)
	if err != nil {
		return err
	}
	s.push(addressOf(ref))
	return nil
}

func handleSizeOf(s *state, ins bytecode.Instruction, info op.Info) error {
	t := ins.Operand.Type()
	if t == nil {
		return errz.New(errz.ErrInvalidOperand, ins.Label, "sizeof without a type")
	}
	name, err := s.nameFor(t)
	if err != nil {
		return err
	}
	s.push(codom.NewReference(codom.RefSizeOf, name, s.wk.UInt32))
	return nil
}
