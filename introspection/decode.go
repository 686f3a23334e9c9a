package introspection

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Mohammadwh/Graphqler/graphqljson"
)

// ErrMalformedSchema is returned when a document lacks data.__schema or data.__schema.types.
var ErrMalformedSchema = errors.New("malformed schema")

// Decode parses a raw introspection document, the GraphQL response to the introspection query.
// Errors reported by the server are included when the schema is missing.
func Decode(raw []byte) (*Query, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: document is not valid JSON", ErrMalformedSchema)
	}

	resp, err := graphqljson.DecodeResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSchema, err)
	}

	if !gjson.GetBytes(raw, "data.__schema").IsObject() {
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("%w: missing data.__schema: %w", ErrMalformedSchema, resp.Errors)
		}

		return nil, fmt.Errorf("%w: missing data.__schema", ErrMalformedSchema)
	}

	if !gjson.GetBytes(raw, "data.__schema.types").IsArray() {
		return nil, fmt.Errorf("%w: missing data.__schema.types", ErrMalformedSchema)
	}

	var q Query
	if err := graphqljson.UnmarshalData(resp.Data, &q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSchema, err)
	}

	return &q, nil
}
