// Package query assembles query and mutation documents from an operation, literal argument
// values and a selection set fragment.
package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/Mohammadwh/Graphqler/schema"
)

const indent = "  "

// Construct renders a document such as
//
//	query {
//	  userById(id: "42") { id name }
//	}
//
// Argument values are written as JSON literals. This matches GraphQL for strings, numbers,
// booleans and null, but not for enums or input objects.
func Construct(op *schema.Operation, values map[string]any, fragment string) (string, error) {
	call := op.Name

	args, err := renderArguments(op, values)
	if err != nil {
		return "", err
	}
	if args != "" {
		call += "(" + args + ")"
	}

	var b strings.Builder
	b.WriteString(op.Kind.Keyword())
	b.WriteString(" {\n")
	b.WriteString(indent)
	b.WriteString(call)
	b.WriteString(" { ")
	b.WriteString(fragment)
	b.WriteString(" }\n}\n")

	return b.String(), nil
}

// renderArguments keeps the declared argument order, followed by undeclared names sorted.
func renderArguments(op *schema.Operation, values map[string]any) (string, error) {
	if len(values) == 0 {
		return "", nil
	}

	names := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, a := range op.Arguments {
		if _, ok := values[a.Name]; ok && !seen[a.Name] {
			names = append(names, a.Name)
			seen[a.Name] = true
		}
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if !seen[name] {
			names = append(names, name)
		}
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		literal, err := json.Marshal(values[name], json.Deterministic(true))
		if err != nil {
			return "", fmt.Errorf("encode argument %s: %w", name, err)
		}
		parts = append(parts, name+": "+string(literal))
	}

	return strings.Join(parts, ", "), nil
}
