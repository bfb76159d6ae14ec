package bytecode

import (
	"fmt"
	"strings"
)

// Parameter describes one declared parameter of a method. Index is the
// position in the declared parameter list and does not count the implicit
// receiver of instance methods.
type Parameter struct {
	Index int
	Name  string
	Type  *TypeRef
}

// Local describes one local variable slot of a method body.
type Local struct {
	Index int
	Name  string
	Type  *TypeRef
}

// MethodRef describes a method, either the one being decompiled or one that
// is called from its body.
type MethodRef struct {
	DeclaringType *TypeRef
	Name          string
	Parameters    []Parameter
	ReturnType    *TypeRef
	IsStatic      bool
	IsVirtual     bool
	IsAbstract    bool
	IsNative      bool
}

// IsConstructor reports whether the method is an instance or type
// initializer.
func (m *MethodRef) IsConstructor() bool {
	return m.Name == ".ctor" || m.Name == ".cctor"
}

// IsVoid reports whether the method returns nothing.
func (m *MethodRef) IsVoid() bool {
	return m.ReturnType == nil || (m.ReturnType.Kind == TypePrimitive && m.ReturnType.Name == "Void")
}

// HasBody reports whether the method carries an instruction stream.
func (m *MethodRef) HasBody() bool {
	return !m.IsAbstract && !m.IsNative
}

// FullName returns "Type::Name".
func (m *MethodRef) FullName() string {
	if m.DeclaringType == nil {
		return m.Name
	}
	return m.DeclaringType.FullName() + "::" + m.Name
}

// String returns a signature such as "int32 Calc::Add(int32, int32)".
func (m *MethodRef) String() string {
	var sb strings.Builder
	if m.IsStatic {
		sb.WriteString("static ")
	}
	if m.ReturnType != nil {
		sb.WriteString(m.ReturnType.String())
		sb.WriteString(" ")
	}
	sb.WriteString(m.FullName())
	sb.WriteString("(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// FieldRef describes a field accessed from a method body.
type FieldRef struct {
	DeclaringType *TypeRef
	Name          string
	Type          *TypeRef
	IsStatic      bool
}

// FullName returns "Type::Name".
func (f *FieldRef) FullName() string {
	if f.DeclaringType == nil {
		return f.Name
	}
	return f.DeclaringType.FullName() + "::" + f.Name
}

func (f *FieldRef) String() string {
	return fmt.Sprintf("%s %s", f.Type, f.FullName())
}
