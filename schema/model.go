// Package schema builds the navigable model of a GraphQL API from its introspection result:
// a lookup table of named types and the ordered query and mutation operations.
package schema

import (
	"fmt"

	"github.com/Mohammadwh/Graphqler/introspection"
)

// ErrMalformedSchema is returned by Build when the document lacks data.__schema or its types.
var ErrMalformedSchema = introspection.ErrMalformedSchema

type OperationKind string

const (
	OperationKindQuery    OperationKind = "QUERY"
	OperationKindMutation OperationKind = "MUTATION"
)

// Keyword returns the lower-cased GraphQL keyword for the kind.
func (k OperationKind) Keyword() string {
	switch k {
	case OperationKindMutation:
		return "mutation"
	default:
		return "query"
	}
}

// root type names that produce operations
const (
	queryTypeName    = "Query"
	mutationTypeName = "Mutation"
)

// Types maps a type name to its definition. It is read-only once built.
type Types map[string]*introspection.FullType

// Lookup returns the type with the given name.
func (ts Types) Lookup(name string) (*introspection.FullType, bool) {
	if name == "" {
		return nil, false
	}
	t, ok := ts[name]

	return t, ok
}

type Argument struct {
	Name string
	// Type is the resolved named type, e.g. "ID" for an ID! argument.
	Type string
	// TypeRef keeps the wrapped form for display.
	TypeRef *introspection.TypeRef
}

type Operation struct {
	Name      string
	Kind      OperationKind
	Arguments []Argument
	// ReturnType is empty when the field type could not be resolved.
	ReturnType string
	// ReturnTypeRef keeps the wrapped form for display.
	ReturnTypeRef *introspection.TypeRef
}

// Model is the schema of one session. It holds no mutable state after Build.
type Model struct {
	Queries   []*Operation
	Mutations []*Operation
	Types     Types
	// Introspection is the decoded document the model was built from.
	Introspection *introspection.Query
}

// Build decodes a raw introspection document and builds the model.
func Build(raw []byte) (*Model, error) {
	q, err := introspection.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("build schema model: %w", err)
	}

	return FromQuery(q)
}

// FromQuery builds the model from an already decoded introspection result.
func FromQuery(q *introspection.Query) (*Model, error) {
	if q == nil || q.Schema == nil {
		return nil, fmt.Errorf("build schema model: %w: missing data.__schema", ErrMalformedSchema)
	}
	if q.Schema.Types == nil {
		return nil, fmt.Errorf("build schema model: %w: missing data.__schema.types", ErrMalformedSchema)
	}

	m := &Model{
		Types:         Types(q.Schema.Types.NameMap()),
		Introspection: q,
	}

	for _, typ := range q.Schema.Types {
		if typ == nil || typ.Name == nil || len(typ.Fields) == 0 {
			continue
		}

		var kind OperationKind
		switch *typ.Name {
		case queryTypeName:
			kind = OperationKindQuery
		case mutationTypeName:
			kind = OperationKindMutation
		default:
			continue
		}

		for _, f := range typ.Fields {
			op := newOperation(kind, f)
			if kind == OperationKindQuery {
				m.Queries = append(m.Queries, op)
			} else {
				m.Mutations = append(m.Mutations, op)
			}
		}
	}

	return m, nil
}

func newOperation(kind OperationKind, f *introspection.FieldValue) *Operation {
	op := &Operation{
		Name:          f.Name,
		Kind:          kind,
		ReturnType:    introspection.ResolveName(&f.Type),
		ReturnTypeRef: &f.Type,
	}

	for _, a := range f.Args {
		op.Arguments = append(op.Arguments, Argument{
			Name:    a.Name,
			Type:    introspection.ResolveName(&a.Type),
			TypeRef: &a.Type,
		})
	}

	return op
}

// Operations returns queries followed by mutations, each in document order.
func (m *Model) Operations() []*Operation {
	ops := make([]*Operation, 0, len(m.Queries)+len(m.Mutations))
	ops = append(ops, m.Queries...)
	ops = append(ops, m.Mutations...)

	return ops
}

// Operation looks an operation up by its exact name. Queries win over mutations.
func (m *Model) Operation(name string) (*Operation, bool) {
	for _, op := range m.Operations() {
		if op.Name == name {
			return op, true
		}
	}

	return nil, false
}

// OperationNames returns the names of Operations in order.
func (m *Model) OperationNames() []string {
	ops := m.Operations()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}

	return names
}
