package selection

import (
	"context"
	"sync"

	"github.com/Mohammadwh/Graphqler/introspection"
)

// Candidate is a field offered to a Chooser.
type Candidate struct {
	Name string
	// Type is the resolved named type of the field.
	Type string
	// TypeRef is the wrapped type in GraphQL syntax, e.g. "[User!]".
	TypeRef string
	Kind    introspection.TypeKind
	// Object is true when selecting the field needs a nested selection set.
	Object bool
}

// Request describes one selection prompt.
type Request struct {
	TypeName   string
	Candidates []Candidate
	// Path holds the field names leading to TypeName, empty at the root.
	Path  []string
	Depth int
}

// Names returns the candidate field names in order.
func (r Request) Names() []string {
	names := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		names = append(names, c.Name)
	}

	return names
}

// Chooser returns the subset of the requested candidates to select.
// Unknown names in the answer are ignored. An empty answer ends the recursion at that level.
type Chooser interface {
	Choose(ctx context.Context, req Request) ([]string, error)
}

type ChooserFunc func(ctx context.Context, req Request) ([]string, error)

func (f ChooserFunc) Choose(ctx context.Context, req Request) ([]string, error) {
	return f(ctx, req)
}

// ScriptedChooser answers requests from a fixed script, one entry per request.
// Once the script is exhausted every answer is empty.
type ScriptedChooser struct {
	mu       sync.Mutex
	script   [][]string
	requests []Request
}

func NewScriptedChooser(script ...[]string) *ScriptedChooser {
	return &ScriptedChooser{script: script}
}

func (c *ScriptedChooser) Choose(_ context.Context, req Request) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if len(c.script) == 0 {
		return nil, nil
	}

	answer := c.script[0]
	c.script = c.script[1:]

	return answer, nil
}

// Requests returns the requests seen so far.
func (c *ScriptedChooser) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Request(nil), c.requests...)
}

// AutoChooser selects every leaf field, and object fields while the request depth is below Depth.
// Union-typed fields are skipped since they need inline fragments.
type AutoChooser struct {
	Depth int
}

func (c AutoChooser) Choose(_ context.Context, req Request) ([]string, error) {
	var names []string
	for _, cand := range req.Candidates {
		switch {
		case cand.Kind == introspection.TypeKindUnion:
			continue
		case cand.Object && req.Depth >= c.Depth:
			continue
		}
		names = append(names, cand.Name)
	}

	return names, nil
}
