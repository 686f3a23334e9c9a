package introspection

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// builtin definitions come from the gqlparser prelude and must not be redeclared.
var (
	builtinScalars = map[string]bool{
		"String":  true,
		"Int":     true,
		"Float":   true,
		"Boolean": true,
		"ID":      true,
	}
	builtinDirectives = map[string]bool{
		"skip":        true,
		"include":     true,
		"deprecated":  true,
		"specifiedBy": true,
		"defer":       true,
		"stream":      true,
		"oneOf":       true,
	}
)

// SchemaDocument converts an introspection result into a gqlparser schema document.
// Introspection types (__*) and builtin scalars and directives are left out.
func SchemaDocument(q *Query) *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}
	if q == nil || q.Schema == nil {
		return doc
	}

	if def := schemaDefinition(q.Schema); def != nil {
		doc.Schema = append(doc.Schema, def)
	}

	for _, typ := range q.Schema.Types {
		if typ == nil || typ.Name == nil {
			continue
		}
		name := *typ.Name
		if strings.HasPrefix(name, "__") || builtinScalars[name] {
			continue
		}
		doc.Definitions = append(doc.Definitions, definition(typ))
	}

	for _, d := range q.Schema.Directives {
		if d == nil || builtinDirectives[d.Name] {
			continue
		}
		doc.Directives = append(doc.Directives, directiveDefinition(d))
	}

	return doc
}

// SDL renders the introspection result in schema definition language.
func SDL(q *Query) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(SchemaDocument(q))

	return buf.String()
}

// LoadSchema builds and validates an ast.Schema from an introspection result.
func LoadSchema(name string, q *Query) (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: SDL(q)})
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if schema.Query == nil {
		schema.Query = &ast.Definition{
			Kind: ast.Object,
			Name: "Query",
		}
		schema.Types["Query"] = schema.Query
	}

	return schema, nil
}

func schemaDefinition(s *Schema) *ast.SchemaDefinition {
	def := &ast.SchemaDefinition{}
	add := func(op ast.Operation, ref *NamedRef) {
		if ref == nil || ref.Name == nil || *ref.Name == "" {
			return
		}
		def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{Operation: op, Type: *ref.Name})
	}
	add(ast.Query, s.QueryType)
	add(ast.Mutation, s.MutationType)
	add(ast.Subscription, s.SubscriptionType)

	if len(def.OperationTypes) == 0 {
		return nil
	}

	return def
}

func definition(typ *FullType) *ast.Definition {
	def := &ast.Definition{
		Name:        *typ.Name,
		Description: deref(typ.Description),
	}

	switch typ.Kind {
	case TypeKindObject, TypeKindInterface:
		def.Kind = ast.Object
		if typ.Kind == TypeKindInterface {
			def.Kind = ast.Interface
		}
		for _, f := range typ.Fields {
			if fd := fieldDefinition(f); fd != nil {
				def.Fields = append(def.Fields, fd)
			}
		}
		for _, i := range typ.Interfaces {
			if name, ok := i.Resolve(); ok {
				def.Interfaces = append(def.Interfaces, name)
			}
		}
	case TypeKindUnion:
		def.Kind = ast.Union
		for _, p := range typ.PossibleTypes {
			if name, ok := p.Resolve(); ok {
				def.Types = append(def.Types, name)
			}
		}
	case TypeKindEnum:
		def.Kind = ast.Enum
		for _, v := range typ.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
				Name:        v.Name,
				Description: deref(v.Description),
				Directives:  deprecated(v.IsDeprecated, v.DeprecationReason),
			})
		}
	case TypeKindInputObject:
		def.Kind = ast.InputObject
		for _, f := range typ.InputFields {
			t := astType(&f.Type)
			if t == nil {
				continue
			}
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:         f.Name,
				Description:  deref(f.Description),
				Type:         t,
				DefaultValue: rawValue(f.DefaultValue),
			})
		}
	default:
		def.Kind = ast.Scalar
	}

	return def
}

func fieldDefinition(f *FieldValue) *ast.FieldDefinition {
	t := astType(&f.Type)
	if t == nil {
		return nil
	}

	fd := &ast.FieldDefinition{
		Name:        f.Name,
		Description: deref(f.Description),
		Type:        t,
		Arguments:   argumentDefinitions(f.Args),
		Directives:  deprecated(f.IsDeprecated, f.DeprecationReason),
	}

	return fd
}

func argumentDefinitions(args []*InputValue) ast.ArgumentDefinitionList {
	var list ast.ArgumentDefinitionList
	for _, a := range args {
		t := astType(&a.Type)
		if t == nil {
			continue
		}
		list = append(list, &ast.ArgumentDefinition{
			Name:         a.Name,
			Description:  deref(a.Description),
			Type:         t,
			DefaultValue: rawValue(a.DefaultValue),
		})
	}

	return list
}

func directiveDefinition(d *DirectiveType) *ast.DirectiveDefinition {
	locations := make([]ast.DirectiveLocation, 0, len(d.Locations))
	for _, l := range d.Locations {
		locations = append(locations, ast.DirectiveLocation(l))
	}

	// the formatter reads Position.Src to skip builtin directives
	return &ast.DirectiveDefinition{
		Position:     &ast.Position{Src: &ast.Source{Name: "introspection"}},
		Name:         d.Name,
		Description:  deref(d.Description),
		Arguments:    argumentDefinitions(d.Args),
		Locations:    locations,
		IsRepeatable: d.IsRepeatable,
	}
}

func astType(t *TypeRef) *ast.Type {
	if t == nil {
		return nil
	}

	switch t.Kind {
	case TypeKindNonNull:
		inner := astType(t.OfType)
		if inner == nil {
			return nil
		}
		nonNull := *inner
		nonNull.NonNull = true

		return &nonNull
	case TypeKindList:
		inner := astType(t.OfType)
		if inner == nil {
			return nil
		}

		return &ast.Type{Elem: inner}
	}

	if t.Name == nil || *t.Name == "" {
		return nil
	}

	return &ast.Type{NamedType: *t.Name}
}

// rawValue keeps an introspection default value, which is already GraphQL literal text.
// EnumValue kinds are printed verbatim by the formatter.
func rawValue(s *string) *ast.Value {
	if s == nil {
		return nil
	}

	return &ast.Value{Kind: ast.EnumValue, Raw: *s}
}

func deprecated(isDeprecated bool, reason *string) ast.DirectiveList {
	if !isDeprecated {
		return nil
	}

	d := &ast.Directive{Name: "deprecated"}
	if reason != nil && *reason != "" {
		d.Arguments = ast.ArgumentList{
			{Name: "reason", Value: &ast.Value{Kind: ast.StringValue, Raw: *reason}},
		}
	}

	return ast.DirectiveList{d}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
