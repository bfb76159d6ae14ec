package decompiler

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/codom"
)

// coercion tells the resolver whether the value is stored or compared.
type coercion uint8

const (
	forAssign coercion = iota
	forCompare
)

// coerce re-creates the implicit conversion a value needs to flow into a
// destination of kind to. The evaluation stack is untyped below the level of
// primitive kinds, so the bytecode carries no trace of conversions such as
// integer literals used as booleans or characters, or values boxed on store.
func (s *state) coerce(to *bytecode.TypeRef, v codom.Value, mode coercion) codom.Value {
	if c, ok := v.(*codom.Constant); ok && (c.IsNull() || c.Kind == codom.ConstToken) {
		return v
	}
	from := v.Type()
	if to == nil || from == nil {
		s.trace.Warnf(s.label, "cannot coerce %s: kind unknown", codom.Render(v, nil))
		return v
	}
	if s.wk.IsAssignable(to, from) {
		return v
	}
	lit, isLiteral := intLiteral(v)
	if isLiteral {
		switch {
		case to.Equal(s.wk.Char):
			return relabel(codom.NewChar(rune(lit), s.wk.Char), v)
		case to.Equal(s.wk.Bool):
			return relabel(codom.NewBool(lit != 0, s.wk.Bool), v)
		}
	}
	if to.IsEnum() {
		if mode == forAssign {
			return relabel(codom.NewObjectConversion(codom.ConvBox, v, to), v)
		}
		return v
	}
	if to.IsValueType() || to.IsPointer() {
		return v
	}
	if isLiteral && lit == 0 {
		return relabel(codom.NewNull(), v)
	}
	if mode == forAssign {
		return relabel(codom.NewObjectConversion(codom.ConvBox, v, to), v)
	}
	return v
}

// intLiteral returns the value of an integer literal, looking through a
// numeric conversion wrapping one.
func intLiteral(v codom.Value) (int64, bool) {
	if conv, ok := v.(*codom.Conversion); ok {
		v = conv.X
	}
	c, ok := v.(*codom.Constant)
	if !ok {
		return 0, false
	}
	return c.IntValue()
}

func relabel(n codom.Value, from codom.Value) codom.Value {
	n.SetLabel(from.Label())
	return n
}
