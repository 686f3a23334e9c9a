// Package selection builds GraphQL selection sets by walking the type graph of a schema model
// and asking a Chooser which fields to include at each level.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Mohammadwh/Graphqler/introspection"
	"github.com/Mohammadwh/Graphqler/schema"
)

// DefaultMaxDepth bounds the nesting of a selection set.
const DefaultMaxDepth = 8

var (
	ErrTypeNotFound      = errors.New("type not found")
	ErrNoFieldsAvailable = errors.New("no fields available")
	ErrEmptySelection    = errors.New("no fields selected")
)

type Selector struct {
	types    schema.Types
	chooser  Chooser
	logger   *zap.Logger
	maxDepth int
}

type Option func(*Selector)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 keep DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Selector) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func NewSelector(types schema.Types, chooser Chooser, options ...Option) *Selector {
	s := &Selector{
		types:    types,
		chooser:  chooser,
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, option := range options {
		option(s)
	}

	return s
}

// Resolve finds the definition of typeName, unwrapping names still in wrapper form such as
// "[User!]!". It fails with ErrTypeNotFound or ErrNoFieldsAvailable.
func (s *Selector) Resolve(typeName string) (*introspection.FullType, error) {
	name := typeName
	typ, ok := s.types.Lookup(name)
	for !ok {
		next := unwrapName(name)
		if next == name {
			return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, typeName)
		}
		name = next
		typ, ok = s.types.Lookup(name)
	}

	if len(typ.Fields) == 0 {
		return typ, fmt.Errorf("%w: %q", ErrNoFieldsAvailable, name)
	}

	return typ, nil
}

// Select returns the selection set fragment for returnType, e.g. "id friend { id }".
// Missing types and types without fields degrade to an empty fragment.
// Only chooser errors are returned.
func (s *Selector) Select(ctx context.Context, returnType string) (string, error) {
	return s.selectFields(ctx, returnType, nil)
}

// SelectFor selects the fields of an operation's return type and fails with ErrEmptySelection
// when nothing was selected.
func (s *Selector) SelectFor(ctx context.Context, op *schema.Operation) (string, error) {
	fragment, err := s.Select(ctx, op.ReturnType)
	if err != nil {
		return "", err
	}

	if fragment == "" {
		return "", fmt.Errorf("%s: %w", op.Name, ErrEmptySelection)
	}

	return fragment, nil
}

func (s *Selector) selectFields(ctx context.Context, typeName string, path []string) (string, error) {
	logger := s.logger.With(zap.String("type", typeName), zap.Strings("path", path))

	typ, err := s.Resolve(typeName)
	switch {
	case errors.Is(err, ErrTypeNotFound):
		logger.Warn("return type not found in types table")
		return "", nil
	case errors.Is(err, ErrNoFieldsAvailable):
		// nested scalars land here on every leaf selection
		if len(path) == 0 {
			logger.Warn("no fields available for return type")
		} else {
			logger.Debug("no fields available for type")
		}
		return "", nil
	}

	if len(path) >= s.maxDepth {
		logger.Warn("selection depth limit reached", zap.Int("max_depth", s.maxDepth))
		return "", nil
	}

	req := Request{
		TypeName:   *typ.Name,
		Candidates: s.candidates(typ),
		Path:       path,
		Depth:      len(path),
	}

	chosen, err := s.chooser.Choose(ctx, req)
	if err != nil {
		return "", fmt.Errorf("choose fields of %s: %w", req.TypeName, err)
	}

	var selected []string
	for _, name := range chosen {
		name = strings.TrimSpace(name)
		field := typ.Field(name)
		if field == nil {
			continue
		}

		fieldType := introspection.ResolveName(&field.Type)
		if _, ok := s.types.Lookup(fieldType); !ok {
			logger.Debug("field type not found, selecting as leaf", zap.String("field", name), zap.String("field_type", fieldType))
			selected = append(selected, name)
			continue
		}

		nested, err := s.selectFields(ctx, fieldType, appendPath(path, name))
		if err != nil {
			return "", err
		}

		if nested == "" {
			selected = append(selected, name)
			continue
		}
		selected = append(selected, name+" { "+nested+" }")
	}

	return strings.Join(selected, " "), nil
}

func (s *Selector) candidates(typ *introspection.FullType) []Candidate {
	candidates := make([]Candidate, 0, len(typ.Fields))
	for _, f := range typ.Fields {
		c := Candidate{
			Name:    f.Name,
			Type:    introspection.ResolveName(&f.Type),
			TypeRef: f.Type.String(),
		}
		if t, ok := s.types.Lookup(c.Type); ok {
			c.Kind = t.Kind
			c.Object = len(t.Fields) > 0
		}
		candidates = append(candidates, c)
	}

	return candidates
}

// appendPath copies so sibling branches never share a backing array.
func appendPath(path []string, name string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)

	return append(next, name)
}

// unwrapName strips one layer of wrapper syntax: "[User!]!" -> "[User!]" -> "User!" -> "User".
func unwrapName(name string) string {
	switch {
	case strings.HasSuffix(name, "!"):
		return strings.TrimSuffix(name, "!")
	case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"):
		return name[1 : len(name)-1]
	}

	return name
}
