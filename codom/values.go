package codom

import (
	"github.com/deepnoodle-ai/codom/bytecode"
	"github.com/deepnoodle-ai/codom/op"
)

// OperationKind tags the variants of Operation.
type OperationKind uint8

const (
	OpBinary OperationKind = iota
	OpUnary
	OpCompare
)

// Operation is a unary, binary or comparison operator applied to inline
// operands. Y is nil for unary operations.
type Operation struct {
	base
	Kind    OperationKind
	Binary  op.BinaryOpType
	Unary   op.UnaryOpType
	Compare op.CompareOpType
	X, Y    Value
	Result  *bytecode.TypeRef

	// NoBrackets suppresses the outer brackets when the operation is
	// rendered inline.
	NoBrackets bool
}

// NewBinary returns an inline binary operation.
func NewBinary(bop op.BinaryOpType, x, y Value, result *bytecode.TypeRef) *Operation {
	return &Operation{
		base:   base{inline: true},
		Kind:   OpBinary,
		Binary: bop,
		X:      inlined(x),
		Y:      inlined(y),
		Result: result,
	}
}

// NewUnary returns an inline unary operation.
func NewUnary(uop op.UnaryOpType, x Value, result *bytecode.TypeRef) *Operation {
	return &Operation{
		base:   base{inline: true},
		Kind:   OpUnary,
		Unary:  uop,
		X:      inlined(x),
		Result: result,
	}
}

// NewCompare returns an inline comparison producing a boolean.
func NewCompare(cop op.CompareOpType, x, y Value, boolean *bytecode.TypeRef) *Operation {
	return &Operation{
		base:    base{inline: true},
		Kind:    OpCompare,
		Compare: cop,
		X:       inlined(x),
		Y:       inlined(y),
		Result:  boolean,
	}
}

func (o *Operation) Type() *bytecode.TypeRef { return o.Result }
func (o *Operation) valueNode()              {}

func (o *Operation) Clone() Node {
	c := *o
	c.label = ""
	c.X = cloneValue(o.X)
	c.Y = cloneValue(o.Y)
	return &c
}

// RefKind tags the variants of Reference.
type RefKind uint8

const (
	RefThis RefKind = iota
	RefParameter
	RefLocal
	RefField
	RefStaticField
	RefCall
	RefNewObject
	RefMethodPointer
	RefArrayElement
	RefArrayLength
	RefDeref
	RefAddressOf
	RefException
	RefNewArray
	RefDefault
	RefSizeOf
	RefType
)

// Reference names something: a variable, a member, an element reached
// through another value, or the result of a call or allocation.
//
// Name and KindName are resolved when the node is built, so rendering never
// has to consult the resolver again.
type Reference struct {
	base
	Kind     RefKind
	Name     string // display name of the referenced member or variable
	KindName string // display name of the value's kind
	Target   Value  // receiver, array, pointer, or referenced location
	Args     []Value
	Index    int // parameter or local index
	Method   *bytecode.MethodRef
	Field    *bytecode.FieldRef
	Typ      *bytecode.TypeRef
	Virtual  bool
}

// NewReference returns an inline reference of the given kind. Target and
// arguments are forced inline.
func NewReference(kind RefKind, name string, typ *bytecode.TypeRef) *Reference {
	r := &Reference{
		base: base{inline: true},
		Kind: kind,
		Name: name,
		Typ:  typ,
	}
	if typ != nil {
		r.KindName = typ.String()
	}
	return r
}

// WithTarget sets the target operand and returns r.
func (r *Reference) WithTarget(target Value) *Reference {
	r.Target = inlined(target)
	return r
}

// WithArgs sets the argument operands and returns r.
func (r *Reference) WithArgs(args ...Value) *Reference {
	for _, a := range args {
		inlined(a)
	}
	r.Args = args
	return r
}

// IsCall reports whether the reference is a method or constructor
// invocation.
func (r *Reference) IsCall() bool {
	return r.Kind == RefCall || r.Kind == RefNewObject
}

func (r *Reference) Type() *bytecode.TypeRef { return r.Typ }
func (r *Reference) valueNode()              {}

func (r *Reference) Clone() Node {
	c := *r
	c.label = ""
	c.Target = cloneValue(r.Target)
	c.Args = cloneValues(r.Args)
	return &c
}

// ConstKind tags the variants of Constant.
type ConstKind uint8

const (
	ConstLiteral ConstKind = iota
	ConstNull
	ConstString
	ConstBool
	ConstChar
	ConstToken
)

// Constant is a literal value. Value holds int32, int64, float32, float64,
// string, bool or rune depending on the kind; Token holds the member of a
// token constant.
type Constant struct {
	base
	Kind  ConstKind
	Value any
	Token any
	Typ   *bytecode.TypeRef
}

// NewLiteral returns a numeric literal.
func NewLiteral(value any, typ *bytecode.TypeRef) *Constant {
	return &Constant{base: base{inline: true}, Kind: ConstLiteral, Value: value, Typ: typ}
}

// NewNull returns the null reference.
func NewNull() *Constant {
	return &Constant{base: base{inline: true}, Kind: ConstNull}
}

// NewString returns a string literal.
func NewString(s string, typ *bytecode.TypeRef) *Constant {
	return &Constant{base: base{inline: true}, Kind: ConstString, Value: s, Typ: typ}
}

// NewBool returns a boolean literal.
func NewBool(b bool, typ *bytecode.TypeRef) *Constant {
	return &Constant{base: base{inline: true}, Kind: ConstBool, Value: b, Typ: typ}
}

// NewChar returns a character literal.
func NewChar(r rune, typ *bytecode.TypeRef) *Constant {
	return &Constant{base: base{inline: true}, Kind: ConstChar, Value: r, Typ: typ}
}

// NewToken returns a metadata token constant for a type, method or field.
func NewToken(token any, name string, typ *bytecode.TypeRef) *Constant {
	return &Constant{base: base{inline: true}, Kind: ConstToken, Value: name, Token: token, Typ: typ}
}

// IsNull reports whether the constant is the null reference.
func (c *Constant) IsNull() bool { return c.Kind == ConstNull }

// IntValue returns the value of an integral literal.
func (c *Constant) IntValue() (int64, bool) {
	if c.Kind != ConstLiteral {
		return 0, false
	}
	switch v := c.Value.(type) {
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

func (c *Constant) Type() *bytecode.TypeRef { return c.Typ }
func (c *Constant) valueNode()              {}

func (c *Constant) Clone() Node {
	cp := *c
	cp.label = ""
	return &cp
}

// Conversion converts a numeric value to another primitive kind.
type Conversion struct {
	base
	To  op.Kind
	X   Value
	Typ *bytecode.TypeRef
}

// NewConversion returns an inline numeric conversion.
func NewConversion(to op.Kind, x Value, typ *bytecode.TypeRef) *Conversion {
	return &Conversion{base: base{inline: true}, To: to, X: inlined(x), Typ: typ}
}

func (c *Conversion) Type() *bytecode.TypeRef { return c.Typ }
func (c *Conversion) valueNode()              {}

func (c *Conversion) Clone() Node {
	cp := *c
	cp.label = ""
	cp.X = cloneValue(c.X)
	return &cp
}

// ObjectConversionKind tags the variants of ObjectConversion.
type ObjectConversionKind uint8

const (
	ConvAs ObjectConversionKind = iota
	ConvBox
	ConvCast
	ConvUnBox
)

// ObjectConversion converts between reference and value kinds.
type ObjectConversion struct {
	base
	Kind ObjectConversionKind
	X    Value
	To   *bytecode.TypeRef
}

// NewObjectConversion returns an inline object conversion.
func NewObjectConversion(kind ObjectConversionKind, x Value, to *bytecode.TypeRef) *ObjectConversion {
	return &ObjectConversion{base: base{inline: true}, Kind: kind, X: inlined(x), To: to}
}

// Type returns the destination kind; unboxing yields a pointer to it.
func (c *ObjectConversion) Type() *bytecode.TypeRef {
	if c.Kind == ConvUnBox && c.To != nil {
		return c.To.PointerTo()
	}
	return c.To
}

func (c *ObjectConversion) valueNode() {}

func (c *ObjectConversion) Clone() Node {
	cp := *c
	cp.label = ""
	cp.X = cloneValue(c.X)
	return &cp
}
