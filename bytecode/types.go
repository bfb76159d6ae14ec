package bytecode

import (
	"github.com/deepnoodle-ai/codom/op"
)

// TypeKind classifies a TypeRef.
type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeInterface
	TypeValueType
	TypeEnum
	TypePrimitive
	TypePointer
	TypeByRef
	TypeArray
	TypeGenericParam
)

// TypeRef describes a type referenced from a method body.
type TypeRef struct {
	Namespace  string
	Name       string
	Kind       TypeKind
	Alias      string     // keyword form for built-in types, e.g. "int32"
	Elem       *TypeRef   // element of pointer, byref and array types
	Base       *TypeRef   // base class, nil for interfaces and System.Object
	Interfaces []*TypeRef // implemented interfaces
	Underlying *TypeRef   // underlying integral type of an enum
}

// FullName returns the namespace-qualified name of the type.
func (t *TypeRef) FullName() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypePointer:
		return t.Elem.FullName() + "*"
	case TypeByRef:
		return t.Elem.FullName() + "&"
	case TypeArray:
		return t.Elem.FullName() + "[]"
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// String returns the keyword alias when one exists and the full name
// otherwise.
func (t *TypeRef) String() string {
	if t == nil {
		return "?"
	}
	switch t.Kind {
	case TypePointer:
		return t.Elem.String() + "*"
	case TypeByRef:
		return t.Elem.String() + "&"
	case TypeArray:
		return t.Elem.String() + "[]"
	}
	if t.Alias != "" {
		return t.Alias
	}
	return t.FullName()
}

// IsValueType reports whether values of the type are copied by value.
func (t *TypeRef) IsValueType() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeValueType, TypeEnum, TypePrimitive:
		return true
	}
	return false
}

// IsEnum reports whether the type is an enumeration.
func (t *TypeRef) IsEnum() bool {
	return t != nil && t.Kind == TypeEnum
}

// IsPointer reports whether the type is an unmanaged pointer or a managed
// reference.
func (t *TypeRef) IsPointer() bool {
	return t != nil && (t.Kind == TypePointer || t.Kind == TypeByRef)
}

// Equal reports whether both references name the same type.
func (t *TypeRef) Equal(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t == other {
		return true
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TypePointer, TypeByRef, TypeArray:
		return t.Elem.Equal(other.Elem)
	}
	return t.Namespace == other.Namespace && t.Name == other.Name
}

// PointerTo returns a managed reference to t.
func (t *TypeRef) PointerTo() *TypeRef {
	return &TypeRef{Kind: TypeByRef, Name: t.Name + "&", Elem: t}
}

// ArrayOf returns a one dimensional array of t.
func (t *TypeRef) ArrayOf() *TypeRef {
	return &TypeRef{Kind: TypeArray, Name: t.Name + "[]", Elem: t}
}

// WellKnown holds the built-in kinds the decompiler needs to reason about
// stack values. It is built once and never modified; pass the same table to
// every decompilation that shares a resolver.
type WellKnown struct {
	Void    *TypeRef
	Bool    *TypeRef
	Char    *TypeRef
	SByte   *TypeRef
	Byte    *TypeRef
	Int16   *TypeRef
	UInt16  *TypeRef
	Int32   *TypeRef
	UInt32  *TypeRef
	Int64   *TypeRef
	UInt64  *TypeRef
	IntPtr  *TypeRef
	UIntPtr *TypeRef
	Single  *TypeRef
	Double  *TypeRef
	String  *TypeRef
	Object  *TypeRef

	ValueType           *TypeRef
	Enum                *TypeRef
	Array               *TypeRef
	Exception           *TypeRef
	RuntimeTypeHandle   *TypeRef
	RuntimeMethodHandle *TypeRef
	RuntimeFieldHandle  *TypeRef

	byAlias map[string]*TypeRef
}

// NewWellKnown builds the table of built-in kinds.
func NewWellKnown() *WellKnown {
	w := &WellKnown{byAlias: map[string]*TypeRef{}}
	w.Object = &TypeRef{Namespace: "System", Name: "Object", Kind: TypeClass, Alias: "object"}
	w.ValueType = &TypeRef{Namespace: "System", Name: "ValueType", Kind: TypeClass, Base: w.Object}
	w.Enum = &TypeRef{Namespace: "System", Name: "Enum", Kind: TypeClass, Base: w.ValueType}
	w.Array = &TypeRef{Namespace: "System", Name: "Array", Kind: TypeClass, Base: w.Object}
	w.Exception = &TypeRef{Namespace: "System", Name: "Exception", Kind: TypeClass, Base: w.Object}
	w.String = &TypeRef{Namespace: "System", Name: "String", Kind: TypeClass, Alias: "string", Base: w.Object}

	prim := func(name, alias string) *TypeRef {
		return &TypeRef{Namespace: "System", Name: name, Kind: TypePrimitive, Alias: alias, Base: w.ValueType}
	}
	w.Void = prim("Void", "void")
	w.Bool = prim("Boolean", "bool")
	w.Char = prim("Char", "char")
	w.SByte = prim("SByte", "int8")
	w.Byte = prim("Byte", "uint8")
	w.Int16 = prim("Int16", "int16")
	w.UInt16 = prim("UInt16", "uint16")
	w.Int32 = prim("Int32", "int32")
	w.UInt32 = prim("UInt32", "uint32")
	w.Int64 = prim("Int64", "int64")
	w.UInt64 = prim("UInt64", "uint64")
	w.IntPtr = prim("IntPtr", "native int")
	w.UIntPtr = prim("UIntPtr", "native uint")
	w.Single = prim("Single", "float32")
	w.Double = prim("Double", "float64")

	handle := func(name string) *TypeRef {
		return &TypeRef{Namespace: "System", Name: name, Kind: TypeValueType, Base: w.ValueType}
	}
	w.RuntimeTypeHandle = handle("RuntimeTypeHandle")
	w.RuntimeMethodHandle = handle("RuntimeMethodHandle")
	w.RuntimeFieldHandle = handle("RuntimeFieldHandle")

	for _, t := range []*TypeRef{
		w.Void, w.Bool, w.Char, w.SByte, w.Byte, w.Int16, w.UInt16, w.Int32,
		w.UInt32, w.Int64, w.UInt64, w.IntPtr, w.UIntPtr, w.Single, w.Double,
		w.String, w.Object,
	} {
		w.byAlias[t.Alias] = t
	}
	return w
}

// Lookup returns the built-in type with the given keyword alias.
func (w *WellKnown) Lookup(alias string) (*TypeRef, bool) {
	t, ok := w.byAlias[alias]
	return t, ok
}

// ForKind returns the type an opcode kind suffix stands for. The result is
// nil for KindNone.
func (w *WellKnown) ForKind(k op.Kind) *TypeRef {
	switch k {
	case op.KindI1:
		return w.SByte
	case op.KindI2:
		return w.Int16
	case op.KindI4:
		return w.Int32
	case op.KindI8:
		return w.Int64
	case op.KindU1:
		return w.Byte
	case op.KindU2:
		return w.UInt16
	case op.KindU4:
		return w.UInt32
	case op.KindU8:
		return w.UInt64
	case op.KindI:
		return w.IntPtr
	case op.KindU:
		return w.UIntPtr
	case op.KindR4:
		return w.Single
	case op.KindR8:
		return w.Double
	case op.KindRef:
		return w.Object
	}
	return nil
}

// IsAssignable reports whether a value of type from can be stored in a
// location of type to without any conversion.
func (w *WellKnown) IsAssignable(to, from *TypeRef) bool {
	if to == nil || from == nil {
		return false
	}
	if to.Equal(from) {
		return true
	}
	if from.IsValueType() {
		// Boxing is a conversion, not an assignment.
		return false
	}
	if to.Equal(w.Object) && !from.IsPointer() {
		return true
	}
	if from.Kind == TypeArray && to.Equal(w.Array) {
		return true
	}
	if to.Kind == TypeArray && from.Kind == TypeArray {
		return !from.Elem.IsValueType() && w.IsAssignable(to.Elem, from.Elem)
	}
	for t := from; t != nil; t = t.Base {
		if t.Equal(to) {
			return true
		}
		if to.Kind == TypeInterface {
			for _, iface := range t.Interfaces {
				if iface.Equal(to) || w.IsAssignable(to, iface) {
					return true
				}
			}
		}
	}
	return false
}
