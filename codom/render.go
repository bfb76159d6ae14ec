package codom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/codom/op"
)

// RenderFunc customizes rendering of individual nodes. It receives the node
// and a function rendering any child node through the same pipeline. When it
// returns false, or panics, the default form of the node is used instead.
type RenderFunc func(node Node, child func(Node) string) (string, bool)

const indentUnit = "    "

// Render returns the text form of the tree rooted at node, visiting it depth
// first. fn may be nil.
//
// Default forms: operators render as "left OP right", bracketed when embedded
// in another expression; statements end in ";" and are prefixed with
// "label: " when they are jump targets; blocks render as "header { ... }" with
// one statement per line; data and code sections render their statements
// without braces.
func Render(node Node, fn RenderFunc) string {
	r := &renderer{fn: fn}
	return r.render(node)
}

type renderer struct {
	fn RenderFunc
}

func (r *renderer) render(n Node) string {
	if n == nil {
		return ""
	}
	if r.fn != nil {
		if s, ok := r.custom(n); ok {
			return s
		}
	}
	return r.defaultForm(n)
}

func (r *renderer) custom(n Node) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	return r.fn(n, r.render)
}

func (r *renderer) defaultForm(n Node) string {
	switch n := n.(type) {
	case *Block:
		return labelled(n, r.block(n))
	case Statement:
		return labelled(n, r.statement(n))
	case Value:
		if n.Inline() {
			return r.value(n, false)
		}
		return labelled(n, r.value(n, true)+";")
	}
	return ""
}

func labelled(n Node, s string) string {
	if n.Label() == "" {
		return s
	}
	if s == "" {
		s = ";"
	}
	return n.Label() + ": " + s
}

func (r *renderer) block(b *Block) string {
	var lines []string
	for _, stmt := range b.Stmts {
		if s := r.render(stmt); s != "" {
			lines = append(lines, s)
		}
	}
	if b.Kind.IsSection() {
		return strings.Join(lines, "\n")
	}
	var sb strings.Builder
	if header := r.blockHeader(b); header != "" {
		sb.WriteString(header)
		sb.WriteString(" ")
	}
	sb.WriteString("{\n")
	for _, line := range lines {
		sb.WriteString(indent(line))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (r *renderer) blockHeader(b *Block) string {
	switch b.Kind {
	case BlockTry, BlockFinally, BlockFault, BlockFilterHandler:
		return b.Kind.String()
	case BlockCatch:
		typ := "object"
		if b.CatchType != nil {
			typ = b.CatchType.String()
		}
		if b.ShowVariable && b.Exception != nil {
			return fmt.Sprintf("catch (%s %s)", typ, b.Exception.Name)
		}
		return fmt.Sprintf("catch (%s)", typ)
	case BlockFilter:
		if b.Exception != nil {
			return fmt.Sprintf("filter (%s)", b.Exception.Name)
		}
		return "filter"
	}
	return ""
}

func indent(s string) string {
	return indentUnit + strings.ReplaceAll(s, "\n", "\n"+indentUnit)
}

func (r *renderer) statement(s Statement) string {
	switch s := s.(type) {
	case *Assign:
		return fmt.Sprintf("%s = %s;", r.expr(s.Target, true), r.expr(s.Value, true))
	case *If:
		out := fmt.Sprintf("if (%s) %s", r.expr(s.Cond, true), r.render(s.Then))
		if s.Else != nil {
			out += " else " + r.render(s.Else)
		}
		return out
	case *Branch:
		switch s.Kind {
		case BranchGoto:
			return "goto " + s.Target + ";"
		case BranchLeave:
			return "leave " + s.Target + ";"
		case BranchReturn:
			if s.Value == nil {
				return "return;"
			}
			return "return " + r.expr(s.Value, true) + ";"
		case BranchThrow:
			if s.Value == nil {
				return "throw;"
			}
			return "throw " + r.expr(s.Value, true) + ";"
		}
	case *DoNothing:
		if s.Kind == Nop || s.Kind == DebuggerBreak {
			return ";"
		}
		return ""
	case *CheckFinite:
		return fmt.Sprintf("ckfinite(%s);", r.expr(s.X, true))
	case *Declaration:
		return fmt.Sprintf("%s %s;", typeName(s.Var), s.Var.Name)
	}
	return ""
}

func typeName(ref *Reference) string {
	if ref.KindName != "" {
		return ref.KindName
	}
	return "var"
}

// expr renders a value. top is true when the value is the outermost
// expression of a statement, where operators need no brackets.
func (r *renderer) expr(v Value, top bool) string {
	if v == nil {
		return ""
	}
	if r.fn != nil {
		if s, ok := r.custom(v); ok {
			return s
		}
	}
	return r.value(v, top)
}

func (r *renderer) value(v Value, top bool) string {
	switch v := v.(type) {
	case *Operation:
		return r.operation(v, top)
	case *Reference:
		return r.reference(v)
	case *Constant:
		return constant(v)
	case *Conversion:
		name := v.To.String()
		if v.Typ != nil {
			name = v.Typ.String()
		}
		return fmt.Sprintf("(%s)%s", name, r.expr(v.X, false))
	case *ObjectConversion:
		return r.objectConversion(v, top)
	}
	return ""
}

func (r *renderer) operation(o *Operation, top bool) string {
	var s string
	switch o.Kind {
	case OpBinary:
		s = fmt.Sprintf("%s %s %s", r.expr(o.X, false), o.Binary, r.expr(o.Y, false))
	case OpCompare:
		s = fmt.Sprintf("%s %s %s", r.expr(o.X, false), o.Compare, r.expr(o.Y, false))
	case OpUnary:
		if o.Unary == op.Checked {
			return fmt.Sprintf("checked(%s)", r.expr(o.X, true))
		}
		return o.Unary.String() + r.expr(o.X, false)
	}
	if top || o.NoBrackets {
		return s
	}
	return "(" + s + ")"
}

func (r *renderer) reference(ref *Reference) string {
	switch ref.Kind {
	case RefThis:
		return "this"
	case RefField, RefStaticField:
		if ref.Target == nil {
			return ref.Name
		}
		return r.expr(ref.Target, false) + "." + ref.Name
	case RefCall:
		name := strings.TrimPrefix(ref.Name, ".")
		if ref.Target != nil {
			name = r.expr(ref.Target, false) + "." + name
		}
		return name + "(" + r.args(ref.Args) + ")"
	case RefNewObject:
		return "new " + ref.KindName + "(" + r.args(ref.Args) + ")"
	case RefMethodPointer:
		if ref.Target != nil {
			return "&" + r.expr(ref.Target, false) + "." + ref.Name
		}
		return "&" + ref.Name
	case RefArrayElement:
		return r.expr(ref.Target, false) + "[" + r.args(ref.Args) + "]"
	case RefArrayLength:
		return r.expr(ref.Target, false) + ".Length"
	case RefDeref:
		if conv, ok := ref.Target.(*ObjectConversion); ok && conv.Kind == ConvUnBox {
			return fmt.Sprintf("(%s)%s", conv.To, r.expr(conv.X, false))
		}
		return "*" + r.expr(ref.Target, false)
	case RefAddressOf:
		return "&" + r.expr(ref.Target, false)
	case RefNewArray:
		elem := ref.KindName
		if ref.Typ != nil && ref.Typ.Elem != nil {
			elem = ref.Typ.Elem.String()
		}
		return "new " + elem + "[" + r.args(ref.Args) + "]"
	case RefDefault:
		return "default(" + ref.KindName + ")"
	case RefSizeOf:
		return "sizeof(" + ref.Name + ")"
	}
	return ref.Name
}

func (r *renderer) args(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = r.expr(a, true)
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) objectConversion(c *ObjectConversion, top bool) string {
	switch c.Kind {
	case ConvAs:
		s := fmt.Sprintf("%s as %s", r.expr(c.X, false), c.To)
		if top {
			return s
		}
		return "(" + s + ")"
	case ConvUnBox:
		return fmt.Sprintf("unbox<%s>(%s)", c.To, r.expr(c.X, true))
	default:
		return fmt.Sprintf("(%s)%s", c.To, r.expr(c.X, false))
	}
}

func constant(c *Constant) string {
	switch c.Kind {
	case ConstNull:
		return "null"
	case ConstString:
		return strconv.Quote(c.Value.(string))
	case ConstBool:
		return strconv.FormatBool(c.Value.(bool))
	case ConstChar:
		return strconv.QuoteRune(c.Value.(rune))
	case ConstToken:
		return fmt.Sprintf("token(%v)", c.Value)
	}
	switch v := c.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	}
	return fmt.Sprint(c.Value)
}
