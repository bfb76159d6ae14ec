package decompiler

import (
	"fmt"

	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
	"github.com/deepnoodle-ai/codom/errz"
	"github.com/deepnoodle-ai/codom/trace"
)

// state holds everything that changes while one method body is decompiled.
// It is created per call and never shared.
type state struct {
	body     *bytecode.MethodBody
	method   *bytecode.MethodRef
	wk       *bytecode.WellKnown
	resolver bytecode.Resolver
	observer Observer
	trace    *trace.Trace

	stack  symbolicStack
	blocks *blockStack
	root   *codom.Block

	locals   []*codom.Reference
	declared []bytecode.Local

	// targets holds every label jumped to by a branch, leave or switch.
	targets map[string]bool

	// pendingLabel is given to the next emitted statement.
	pendingLabel string

	// spills holds the temporaries carrying stack values into a jump target
	// reached with a non-empty stack, bottom of the stack first.
	spills map[string][]*codom.Reference
	temps  int
	data   *codom.Block

	// exceptions maps exception references pushed on handler entry back to
	// their catch block.
	exceptions map[codom.Value]*codom.Block
	handlers   int

	label   string // label of the element being processed
	index   int    // index of the element being processed
	emitted int
}

func newState(d *Decompiler, body *bytecode.MethodBody, tr *trace.Trace) *state {
	root := codom.NewBlock(codom.BlockPlain)
	return &state{
		body:       body,
		method:     body.Method(),
		wk:         d.wellKnown,
		resolver:   d.resolver,
		observer:   d.observer,
		trace:      tr,
		blocks:     newBlockStack(root),
		root:       root,
		targets:    body.BranchTargets(),
		spills:     map[string][]*codom.Reference{},
		exceptions: map[codom.Value]*codom.Block{},
	}
}

func (s *state) run(elements []Element) error {
	if err := s.declareLocals(); err != nil {
		return err
	}
	s.blocks.open(codom.NewBlock(codom.BlockCode))
	for i, e := range elements {
		s.index = i
		s.label = e.Label
		if s.observer != nil && !s.observer.OnStep(s.stepEvent(e)) {
			return errz.Newf(errz.ErrHalted, s.label, "stopped by observer after %d elements", i)
		}
		var err error
		if e.IsMarker() {
			err = s.marker(e)
		} else {
			err = s.instruction(e.Instruction)
		}
		if err != nil {
			return err
		}
	}
	s.index = len(elements)
	s.label = s.body.EndLabel()
	return s.finish()
}

func (s *state) stepEvent(e Element) StepEvent {
	return StepEvent{
		Index:      s.index,
		Element:    e,
		Opcode:     e.Instruction.Code,
		StackDepth: s.stack.count(),
		BlockDepth: s.blocks.depth(),
	}
}

// finish closes the code section. Blocks still open at the end of the
// stream belong to regions whose end was never seen.
func (s *state) finish() error {
	s.flushLabel()
	if n := s.stack.count(); n > 0 {
		s.trace.Warnf(s.label, "%d values left on the stack", n)
		s.stack.clear()
	}
	if top := s.blocks.current(); top != nil && top.Kind != codom.BlockCode {
		return errz.Newf(errz.ErrMalformedRegion, s.label, "%s block is never closed", top.Kind)
	}
	_, err := s.blocks.close(codom.BlockCode, s.label)
	return err
}

// abandon pops every open block after a recoverable error. The blocks are
// already attached to the tree, so nothing is lost.
func (s *state) abandon() {
	s.flushLabel()
	for s.blocks.depth() > 0 {
		s.blocks.pop()
	}
	s.stack.clear()
}

// emit appends n to the innermost open block as a statement.
func (s *state) emit(n codom.Node) error {
	n.SetInline(false)
	n.SetLabel(s.pendingLabel)
	s.pendingLabel = ""
	s.blocks.emit(n)
	s.emitted++
	if s.observer != nil && !s.observer.OnEmit(EmitEvent{Node: n, Block: s.blocks.current()}) {
		return errz.New(errz.ErrHalted, s.label, "stopped by observer")
	}
	return nil
}

// flushLabel emits an empty statement carrying a label that no statement
// has claimed yet, so every jump target stays present in the tree.
func (s *state) flushLabel() {
	if s.pendingLabel == "" {
		return
	}
	nop := codom.NewDoNothing(codom.Nop)
	nop.SetLabel(s.pendingLabel)
	s.pendingLabel = ""
	s.blocks.emit(nop)
	s.emitted++
}

// enter records the label of an instruction that is a jump target. Values
// still on the stack are moved into the temporaries of the target first, so
// the target starts a statement with the same stack on every path into it.
func (s *state) enter(ins bytecode.Instruction) error {
	if !s.targets[ins.Label] {
		return nil
	}
	temps := s.spills[ins.Label]
	if s.stack.count() > 0 {
		var err error
		if temps, err = s.spill(ins.Label); err != nil {
			return err
		}
	}
	s.flushLabel()
	s.pendingLabel = ins.Label
	for _, t := range temps {
		s.push(t.Clone().(codom.Value))
	}
	return nil
}

// spill assigns every value on the stack to the temporaries shared by the
// paths into target and clears the stack.
func (s *state) spill(target string) ([]*codom.Reference, error) {
	values, err := s.stack.popN(s.stack.count(), s.label)
	if err != nil {
		return nil, err
	}
	temps := s.spills[target]
	if temps != nil && len(temps) != len(values) {
		s.trace.Warnf(target, "reached with %d stack values, %d on another path", len(values), len(temps))
	}
	for i, v := range values {
		if i == len(temps) {
			temps = append(temps, s.newTemp(v.Type()))
		}
		if err := s.emit(codom.NewAssign(temps[i].Clone().(codom.Value), v)); err != nil {
			return nil, err
		}
	}
	s.spills[target] = temps
	return temps[:len(values)], nil
}

// newTemp declares a temporary for a stack slot in the data section.
func (s *state) newTemp(typ *bytecode.TypeRef) *codom.Reference {
	ref := codom.NewReference(codom.RefLocal, fmt.Sprintf("stack%d", s.temps), typ)
	ref.Index = -1
	s.temps++
	if s.data != nil {
		decl := codom.NewDeclaration(ref.Clone().(*codom.Reference))
		decl.SetInline(false)
		s.data.Append(decl)
	}
	return ref
}

// nameFor returns the display name of member.
func (s *state) nameFor(member any) (string, error) {
	name, err := s.resolver.NameFor(member, s.method)
	if err != nil {
		return "", errz.Newf(errz.ErrMalformedMember, s.label, "cannot name %s", describe(member)).WithCause(err)
	}
	if !name.IsValid() {
		return "", errz.Newf(errz.ErrMalformedMember, s.label, "empty name for %s", describe(member))
	}
	return name.String(), nil
}

func describe(member any) string {
	switch m := member.(type) {
	case *bytecode.TypeRef:
		return "type " + m.FullName()
	case *bytecode.MethodRef:
		return "method " + m.FullName()
	case *bytecode.FieldRef:
		return "field " + m.FullName()
	case bytecode.Parameter:
		return fmt.Sprintf("parameter %d", m.Index)
	case bytecode.Local:
		return fmt.Sprintf("local %d", m.Index)
	}
	return fmt.Sprintf("%T", member)
}

// typeReference returns a reference naming t, used as the target of static
// member accesses.
func (s *state) typeReference(t *bytecode.TypeRef) (*codom.Reference, error) {
	name, err := s.nameFor(t)
	if err != nil {
		return nil, err
	}
	return codom.NewReference(codom.RefType, name, t), nil
}

// argument resolves an argument slot. Slot 0 of an instance method is the
// receiver; the remaining slots map to the declared parameters.
func (s *state) argument(slot int) (*codom.Reference, error) {
	index := slot
	if !s.method.IsStatic {
		if slot == 0 {
			return codom.NewReference(codom.RefThis, "this", s.method.DeclaringType), nil
		}
		index--
	}
	if index < 0 || index >= len(s.method.Parameters) {
		return nil, errz.Newf(errz.ErrInvalidOperand, s.label, "argument %d does not exist", slot)
	}
	param := s.method.Parameters[index]
	name, err := s.nameFor(param)
	if err != nil {
		return nil, err
	}
	ref := codom.NewReference(codom.RefParameter, name, param.Type)
	ref.Index = index
	return ref, nil
}

// local returns a fresh reference to a declared local.
func (s *state) local(index int) (*codom.Reference, error) {
	if index < 0 || index >= len(s.locals) {
		return nil, errz.Newf(errz.ErrInvalidOperand, s.label, "local %d does not exist", index)
	}
	return s.locals[index].Clone().(*codom.Reference), nil
}

// pop removes the top of the symbolic stack.
func (s *state) pop() (codom.Value, error) {
	return s.stack.pop(s.label)
}

func (s *state) push(v codom.Value) {
	v.SetLabel(s.label)
	s.stack.push(v)
}
