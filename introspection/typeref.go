package introspection

// Resolve unwraps LIST and NON_NULL wrappers and returns the underlying named type.
// The ofType chain is followed to any depth. ok is false when no name is found.
func (t *TypeRef) Resolve() (name string, ok bool) {
	for ref := t; ref != nil; ref = ref.OfType {
		if ref.Name != nil && *ref.Name != "" {
			return *ref.Name, true
		}
	}

	return "", false
}

// ResolveName is Resolve without the found flag; it returns "" for an unresolvable reference.
func ResolveName(t *TypeRef) string {
	name, _ := t.Resolve()

	return name
}

// String renders the reference in GraphQL type syntax, e.g. "[User!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}

	switch t.Kind {
	case TypeKindNonNull:
		return t.OfType.String() + "!"
	case TypeKindList:
		return "[" + t.OfType.String() + "]"
	}

	if t.Name != nil && *t.Name != "" {
		return *t.Name
	}

	return t.OfType.String()
}
