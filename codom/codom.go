// Package codom defines the structured tree a method body is decompiled into.
//
// The tree uses three node categories:
//
//   - Values: expressions that produce a kind ([Operation], [Reference],
//     [Constant], [Conversion], [ObjectConversion])
//   - Statements: nodes that only have an effect ([Assign], [If], [Branch],
//     [DoNothing], [CheckFinite], [Declaration])
//   - Blocks: ordered, mutable statement lists ([Block], tagged by [BlockKind])
//
// Every node can be inline (embedded in another node) or a terminated
// statement, and may carry a label naming it as a jump target. Values
// appended to a block as statements, such as calls whose result is unused,
// simply have inline set to false.
package codom

import "github.com/deepnoodle-ai/codom/bytecode"

// Node represents a portion of the tree.
type Node interface {
	// Inline reports whether the node is embedded in another node rather than
	// standing as a terminated statement.
	Inline() bool
	SetInline(inline bool)

	// Label returns the jump-target name of the node, or "".
	Label() string
	SetLabel(label string)

	// Clone returns a deep copy of the node. The copy and all of its children
	// carry no label.
	Clone() Node

	codomNode()
}

// Value is a node that evaluates to a value of some kind.
type Value interface {
	Node

	// Type returns the kind of the value, or nil when it is unknown.
	Type() *bytecode.TypeRef

	valueNode()
}

// Statement is a node that is executed for its effect.
type Statement interface {
	Node
	stmtNode()
}

// base holds the fields shared by every node.
type base struct {
	inline bool
	label  string
}

func (b *base) Inline() bool          { return b.inline }
func (b *base) SetInline(inline bool) { b.inline = inline }
func (b *base) Label() string         { return b.label }
func (b *base) SetLabel(label string) { b.label = label }
func (b *base) codomNode()            {}

func cloneValue(v Value) Value {
	if v == nil {
		return nil
	}
	return v.Clone().(Value)
}

func cloneValues(vs []Value) []Value {
	if vs == nil {
		return nil
	}
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = cloneValue(v)
	}
	return out
}

// inlined marks v as an embedded expression and returns it.
func inlined(v Value) Value {
	if v != nil {
		v.SetInline(true)
	}
	return v
}
