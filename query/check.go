package query

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Parse checks that doc is syntactically a GraphQL executable document.
func Parse(doc string) (*ast.QueryDocument, error) {
	parsed, err := parser.ParseQuery(&ast.Source{Name: "query", Input: doc})
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	return parsed, nil
}

// Validate checks doc against schema. The returned error is a gqlerror.List.
func Validate(schema *ast.Schema, doc string) error {
	if _, errs := gqlparser.LoadQuery(schema, doc); len(errs) > 0 {
		return errs
	}

	return nil
}
