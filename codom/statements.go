package codom

import "github.com/deepnoodle-ai/codom/bytecode"

// Assign stores Value into Target.
type Assign struct {
	base
	Target Value
	Value  Value
}

// NewAssign returns an assignment statement.
func NewAssign(target, value Value) *Assign {
	return &Assign{Target: inlined(target), Value: inlined(value)}
}

func (a *Assign) stmtNode() {}

func (a *Assign) Clone() Node {
	c := *a
	c.label = ""
	c.Target = cloneValue(a.Target)
	c.Value = cloneValue(a.Value)
	return &c
}

// If executes Then when Cond holds and Else otherwise. Else is nil or
// another *If, which forms an else-if chain.
type If struct {
	base
	Cond Value
	Then *Block
	Else Statement
}

// NewIf returns a conditional whose body holds the given statements.
func NewIf(cond Value, then ...Node) *If {
	body := NewBlock(BlockPlain)
	for _, n := range then {
		body.Append(n)
	}
	return &If{Cond: inlined(cond), Then: body}
}

func (i *If) stmtNode() {}

func (i *If) Clone() Node {
	c := *i
	c.label = ""
	c.Cond = cloneValue(i.Cond)
	c.Then = i.Then.Clone().(*Block)
	if i.Else != nil {
		c.Else = i.Else.Clone().(Statement)
	}
	return &c
}

// BranchKind tags the variants of Branch.
type BranchKind uint8

const (
	BranchGoto BranchKind = iota
	BranchLeave
	BranchReturn
	BranchThrow
)

// Branch transfers control: to a label for Goto and Leave, out of the
// method for Return, or to a handler for Throw. Value is the returned or
// thrown operand and may be nil.
type Branch struct {
	base
	Kind   BranchKind
	Target string
	Value  Value
}

// NewGoto returns an unconditional jump.
func NewGoto(target string) *Branch {
	return &Branch{Kind: BranchGoto, Target: target}
}

// NewLeave returns a jump out of a protected region.
func NewLeave(target string) *Branch {
	return &Branch{Kind: BranchLeave, Target: target}
}

// NewReturn returns a return statement; value may be nil.
func NewReturn(value Value) *Branch {
	return &Branch{Kind: BranchReturn, Value: promote(value)}
}

// NewThrow returns a throw statement; a nil value rethrows.
func NewThrow(value Value) *Branch {
	return &Branch{Kind: BranchThrow, Value: promote(value)}
}

// promote makes v inline and drops the brackets an operation would
// otherwise get at its outermost level.
func promote(v Value) Value {
	if v == nil {
		return nil
	}
	v.SetInline(true)
	if o, ok := v.(*Operation); ok {
		o.NoBrackets = true
	}
	return v
}

func (b *Branch) stmtNode() {}

func (b *Branch) Clone() Node {
	c := *b
	c.label = ""
	c.Value = cloneValue(b.Value)
	return &c
}

// DoNothingKind tags the variants of DoNothing.
type DoNothingKind uint8

const (
	Nop DoNothingKind = iota
	DebuggerBreak
	EndFilter
	EndFinally
	EndFault
)

// DoNothing is a statement without effect on the decompiled program.
type DoNothing struct {
	base
	Kind DoNothingKind
}

// NewDoNothing returns an empty statement.
func NewDoNothing(kind DoNothingKind) *DoNothing {
	return &DoNothing{Kind: kind}
}

func (d *DoNothing) stmtNode() {}

func (d *DoNothing) Clone() Node {
	c := *d
	c.label = ""
	return &c
}

// CheckFinite throws when X is not a finite number.
type CheckFinite struct {
	base
	X Value
}

// NewCheckFinite returns a finiteness check.
func NewCheckFinite(x Value) *CheckFinite {
	return &CheckFinite{X: inlined(x)}
}

func (c *CheckFinite) stmtNode() {}

func (c *CheckFinite) Clone() Node {
	cp := *c
	cp.label = ""
	cp.X = cloneValue(c.X)
	return &cp
}

// Declaration declares a local variable.
type Declaration struct {
	base
	Var *Reference
	Typ *bytecode.TypeRef
}

// NewDeclaration returns a declaration of v.
func NewDeclaration(v *Reference) *Declaration {
	v.SetInline(true)
	return &Declaration{Var: v, Typ: v.Typ}
}

func (d *Declaration) stmtNode() {}

func (d *Declaration) Clone() Node {
	c := *d
	c.label = ""
	c.Var = d.Var.Clone().(*Reference)
	return &c
}
