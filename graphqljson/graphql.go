package graphqljson

import (
	"fmt"
	"reflect"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Response is the envelope every GraphQL server answers with.
type Response struct {
	Data       jsontext.Value `json:"data,omitzero"`
	Errors     gqlerror.List  `json:"errors,omitzero"`
	Extensions jsontext.Value `json:"extensions,omitzero"`
}

// DecodeResponse parses a GraphQL response body. A body that is not a JSON object is an error.
func DecodeResponse(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	return &resp, nil
}

// UnmarshalData parses the GraphQL response payload contained in data and stores
// the result into v, which must be a non-nil pointer.
func UnmarshalData(data jsontext.Value, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode graphql data: decode json: cannot decode into non-pointer %T", v)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode graphql data: decode json: %w", err)
	}

	return nil
}

// Indent pretty-prints a JSON value for display and log files.
func Indent(v jsontext.Value) (string, error) {
	out, err := json.Marshal(v, jsontext.WithIndent("  "))
	if err != nil {
		return "", fmt.Errorf("indent json: %w", err)
	}

	return string(out), nil
}
