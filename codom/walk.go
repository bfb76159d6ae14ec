package codom

import "iter"

// Visitor defines the interface for tree traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// children returns the non-nil direct children of n in rendering order.
func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		switch c := c.(type) {
		case nil:
			return
		case *Block:
			if c == nil {
				return
			}
		case *Reference:
			if c == nil {
				return
			}
		}
		out = append(out, c)
	}
	switch n := n.(type) {
	case *Block:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	// Statements
	case *Assign:
		add(n.Target)
		add(n.Value)
	case *If:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *Branch:
		add(n.Value)
	case *CheckFinite:
		add(n.X)
	case *Declaration:
		add(n.Var)
	case *DoNothing:
		// No children

	// Values
	case *Operation:
		add(n.X)
		add(n.Y)
	case *Reference:
		add(n.Target)
		for _, arg := range n.Args {
			add(arg)
		}
	case *Conversion:
		add(n.X)
	case *ObjectConversion:
		add(n.X)
	case *Constant:
		// No children
	}
	return out
}

// Inspect traverses a tree in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the tree rooted at root
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}
