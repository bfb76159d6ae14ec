package bytecode

import "fmt"

// Name is the display name of a member. A name is either a literal string,
// typically supplied by a user override, or a type description that the
// renderer formats itself.
type Name struct {
	literal   string
	described *TypeRef
	valid     bool
}

// LiteralName returns a Name holding a fixed string.
func LiteralName(s string) Name {
	return Name{literal: s, valid: true}
}

// DescribedName returns a Name that refers to a type descriptor.
func DescribedName(t *TypeRef) Name {
	return Name{described: t, valid: t != nil}
}

// IsValid reports whether the name holds either variant.
func (n Name) IsValid() bool { return n.valid }

// IsLiteral reports whether the name is the literal variant.
func (n Name) IsLiteral() bool { return n.valid && n.described == nil }

// Literal returns the literal string, or "" for a described name.
func (n Name) Literal() string { return n.literal }

// Described returns the type descriptor, or nil for a literal name.
func (n Name) Described() *TypeRef { return n.described }

func (n Name) String() string {
	if n.described != nil {
		return n.described.String()
	}
	return n.literal
}

// Resolver supplies the built-in kind table and display names for the
// members referenced by a method body. Implementations must be safe for
// concurrent reads; the decompiler never mutates them.
type Resolver interface {
	WellKnown() *WellKnown

	// NameFor returns the display name of member as seen from the method
	// being decompiled. member is one of *TypeRef, *MethodRef, *FieldRef,
	// Parameter or Local.
	NameFor(member any, context *MethodRef) (Name, error)
}

// DefaultResolver names members after their descriptors.
type DefaultResolver struct {
	wellKnown *WellKnown
}

// NewDefaultResolver returns a resolver over the given kind table. A nil
// table is replaced with a fresh one.
func NewDefaultResolver(w *WellKnown) *DefaultResolver {
	if w == nil {
		w = NewWellKnown()
	}
	return &DefaultResolver{wellKnown: w}
}

// WellKnown returns the kind table.
func (r *DefaultResolver) WellKnown() *WellKnown {
	return r.wellKnown
}

// NameFor implements Resolver.
func (r *DefaultResolver) NameFor(member any, _ *MethodRef) (Name, error) {
	switch m := member.(type) {
	case *TypeRef:
		return DescribedName(m), nil
	case *MethodRef:
		return LiteralName(m.Name), nil
	case *FieldRef:
		return LiteralName(m.Name), nil
	case Parameter:
		if m.Name != "" {
			return LiteralName(m.Name), nil
		}
		return LiteralName(fmt.Sprintf("arg%d", m.Index)), nil
	case Local:
		if m.Name != "" {
			return LiteralName(m.Name), nil
		}
		return LiteralName(fmt.Sprintf("local%d", m.Index)), nil
	default:
		return Name{}, fmt.Errorf("cannot name member of type %T", member)
	}
}
