package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/Mohammadwh/Graphqler/introspection"
	"github.com/Mohammadwh/Graphqler/schema"
)

var ErrInvalidValue = errors.New("invalid argument value")

// Coerce converts raw user input for arg into a value for Construct.
//
//	Int            int64
//	Float          float64
//	Boolean        bool
//	String, ID     string
//	ENUM           string, checked against the enum values
//	INPUT_OBJECT   JSON object text
//	list types     JSON array text
//	anything else  string
func Coerce(arg schema.Argument, input string, types schema.Types) (any, error) {
	if isList(arg.TypeRef) {
		return rawJSON(arg, input, '[', "array")
	}

	trimmed := strings.TrimSpace(input)

	switch arg.Type {
	case "Int":
		// GraphQL Int is a signed 32-bit integer
		v, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (Int): %q", ErrInvalidValue, arg.Name, input)
		}

		return v, nil
	case "Float":
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (Float): %q", ErrInvalidValue, arg.Name, input)
		}

		return v, nil
	case "Boolean":
		v, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (Boolean): %q", ErrInvalidValue, arg.Name, input)
		}

		return v, nil
	case "String", "ID":
		return input, nil
	}

	typ, ok := types.Lookup(arg.Type)
	if !ok {
		return input, nil
	}

	switch typ.Kind {
	case introspection.TypeKindEnum:
		if !typ.HasEnumValue(trimmed) {
			return nil, fmt.Errorf("%w: %s (%s): %q is not an enum value", ErrInvalidValue, arg.Name, arg.Type, input)
		}

		return trimmed, nil
	case introspection.TypeKindInputObject:
		return rawJSON(arg, input, '{', "object")
	default:
		return input, nil
	}
}

func rawJSON(arg schema.Argument, input string, want jsontext.Kind, what string) (jsontext.Value, error) {
	v := jsontext.Value(strings.TrimSpace(input))
	if !v.IsValid() || v.Kind() != want {
		return nil, fmt.Errorf("%w: %s (%s): expected a JSON %s", ErrInvalidValue, arg.Name, arg.TypeRef, what)
	}

	if err := v.Compact(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, arg.Name, err)
	}

	return v, nil
}

func isList(ref *introspection.TypeRef) bool {
	if ref == nil {
		return false
	}
	if ref.Kind == introspection.TypeKindNonNull {
		ref = ref.OfType
	}

	return ref != nil && ref.Kind == introspection.TypeKindList
}
