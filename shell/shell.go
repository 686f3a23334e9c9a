// Package shell is the interactive session: it lists operations, shows their details and walks
// the user through building, sending and saving documents.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"

	"github.com/Mohammadwh/Graphqler/client"
	"github.com/Mohammadwh/Graphqler/graphqljson"
	"github.com/Mohammadwh/Graphqler/history"
	"github.com/Mohammadwh/Graphqler/introspection"
	"github.com/Mohammadwh/Graphqler/query"
	"github.com/Mohammadwh/Graphqler/schema"
	"github.com/Mohammadwh/Graphqler/selection"
)

const selectPrompt = `[?] Select a query/mutation (or type "exit" to quit): `

type Shell struct {
	model    *schema.Model
	prompter Prompter
	client   *client.Client
	store    *history.Store
	schema   *ast.Schema
	out      io.Writer
	logger   *zap.Logger
	maxDepth int
	palette  palette
}

type Option func(*Shell)

// WithClient enables sending. Without a client the shell only constructs documents.
func WithClient(c *client.Client) Option {
	return func(s *Shell) {
		s.client = c
	}
}

func WithStore(store *history.Store) Option {
	return func(s *Shell) {
		s.store = store
	}
}

// WithSchema enables validation of constructed documents.
func WithSchema(schema *ast.Schema) Option {
	return func(s *Shell) {
		s.schema = schema
	}
}

func WithOutput(w io.Writer) Option {
	return func(s *Shell) {
		s.out = w
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *Shell) {
		s.maxDepth = depth
	}
}

func WithoutColor() Option {
	return func(s *Shell) {
		s.palette.disable()
	}
}

func New(model *schema.Model, prompter Prompter, options ...Option) *Shell {
	s := &Shell{
		model:    model,
		prompter: prompter,
		store:    history.NewStore("logs"),
		out:      os.Stdout,
		logger:   zap.NewNop(),
		maxDepth: selection.DefaultMaxDepth,
		palette:  newPalette(),
	}
	for _, option := range options {
		option(s)
	}

	return s
}

// Summary prints the operation names found in the schema.
func (s *Shell) Summary() {
	s.success("Queries: %s", strings.Join(names(s.model.Queries), ", "))
	s.success("Mutations: %s", strings.Join(names(s.model.Mutations), ", "))
}

// Run reads operation names until "exit" or end of input.
// Ctrl+C abandons the current prompt and starts over.
func (s *Shell) Run(ctx context.Context) error {
	completions := s.model.OperationNames()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.prompter.Prompt(selectPrompt, completions)
		switch {
		case errors.Is(err, ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "exit") {
			return nil
		}
		if line == "" {
			continue
		}

		op, ok := s.model.Operation(line)
		if !ok {
			s.failure("Invalid selection. Please try again.")
			continue
		}

		s.Details(op)

		err = s.Execute(ctx, op)
		switch {
		case errors.Is(err, ErrInterrupt):
			fmt.Fprintln(s.out)
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			s.failure("%v", err)
		}
	}
}

// Details prints the arguments of op and the fields of its return type.
func (s *Shell) Details(op *schema.Operation) {
	fmt.Fprintf(s.out, "\n%s: %s\n", op.Kind, op.Name)
	for _, a := range op.Arguments {
		fmt.Fprintf(s.out, "  Arg: %s, Type: %s\n", a.Name, typeString(a.TypeRef, a.Type))
	}

	typ, ok := s.model.Types.Lookup(op.ReturnType)
	if !ok {
		s.failure("Error: Return type not found in types dictionary.")
		return
	}

	fmt.Fprintf(s.out, "\nReturn Type: %s\n", typeString(op.ReturnTypeRef, op.ReturnType))
	for _, f := range typ.Fields {
		fmt.Fprintf(s.out, "  Field: %s, Type: %s\n", f.Name, f.Type.String())
	}
}

// Execute runs the create, send and save dialogue for op.
func (s *Shell) Execute(ctx context.Context, op *schema.Operation) error {
	create, err := s.confirm("Do you want to create a query for this? (y/N, default is no): ", false)
	if err != nil || !create {
		return err
	}

	values, err := s.readArguments(op)
	if err != nil {
		return err
	}

	selector := selection.NewSelector(s.model.Types, &promptChooser{shell: s},
		selection.WithLogger(s.logger),
		selection.WithMaxDepth(s.maxDepth),
	)
	fragment, err := selector.SelectFor(ctx, op)
	if errors.Is(err, selection.ErrEmptySelection) {
		s.failure("No fields selected. Please try again.")
		return nil
	}
	if err != nil {
		return err
	}

	doc, err := query.Construct(op, values, fragment)
	if err != nil {
		return err
	}
	s.check(doc)

	if s.client == nil {
		return s.offerDocument(doc)
	}

	send, err := s.confirm("Do you want to send this request? (y/N, default is no): ", false)
	if err != nil {
		return err
	}
	if !send {
		return s.offerDocument(doc)
	}

	s.printDocument(doc)

	return s.send(ctx, doc)
}

func (s *Shell) send(ctx context.Context, doc string) error {
	raw, err := s.client.Post(ctx, "", doc, nil)
	if err != nil {
		// the loop goes on after a failed send
		s.failure("Request failed: %v", err)
		return nil
	}

	pretty, err := graphqljson.Indent(raw)
	if err != nil {
		pretty = string(raw)
	}
	s.success("Response from server:")
	fmt.Fprintln(s.out, pretty)

	if resp, err := graphqljson.DecodeResponse(raw); err == nil && len(resp.Errors) > 0 {
		for _, e := range resp.Errors {
			s.failure("GraphQL error: %s", e.Message)
		}
	}

	save, err := s.confirm("Do you want to save this request and response? (y/N, default is no): ", false)
	if err != nil || !save {
		return err
	}

	id, err := s.store.Save(doc, raw)
	if err != nil {
		return err
	}
	s.success("Saved as %s and %s", s.store.RequestPath(id), s.store.ResponsePath(id))

	return nil
}

func (s *Shell) offerDocument(doc string) error {
	show, err := s.confirm("Do you want to see the constructed query? (Y/n, default is yes): ", true)
	if err != nil || !show {
		return err
	}
	s.printDocument(doc)

	return nil
}

func (s *Shell) printDocument(doc string) {
	fmt.Fprintln(s.out, "Constructed GraphQL Query:")
	fmt.Fprintln(s.out, doc)
}

// check reports syntax errors and schema violations without blocking the document.
func (s *Shell) check(doc string) {
	if _, err := query.Parse(doc); err != nil {
		s.logger.Warn("constructed document does not parse", zap.Error(err))
		return
	}

	if s.schema == nil {
		return
	}
	if err := query.Validate(s.schema, doc); err != nil {
		s.logger.Warn("constructed document does not validate against the schema", zap.Error(err))
	}
}

// readArguments prompts for every argument, repeating a prompt until the value coerces.
// A blank answer leaves a nullable argument out.
func (s *Shell) readArguments(op *schema.Operation) (map[string]any, error) {
	values := make(map[string]any, len(op.Arguments))

	for _, arg := range op.Arguments {
		for {
			input, err := s.prompter.Prompt(fmt.Sprintf("[?] Enter value for %s (%s): ", arg.Name, typeString(arg.TypeRef, arg.Type)), nil)
			if err != nil {
				return nil, err
			}

			if strings.TrimSpace(input) == "" && !required(arg) {
				break
			}

			v, err := query.Coerce(arg, input, s.model.Types)
			if errors.Is(err, query.ErrInvalidValue) {
				s.failure("%v", err)
				continue
			}
			if err != nil {
				return nil, err
			}
			values[arg.Name] = v

			break
		}
	}

	return values, nil
}

func (s *Shell) confirm(prompt string, def bool) (bool, error) {
	fmt.Fprintln(s.out)
	answer, err := s.prompter.Prompt("[?] "+prompt, nil)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func required(arg schema.Argument) bool {
	return arg.TypeRef != nil && arg.TypeRef.Kind == introspection.TypeKindNonNull
}

func typeString(ref *introspection.TypeRef, resolved string) string {
	if s := ref.String(); s != "" {
		return s
	}
	if resolved == "" {
		return "unknown"
	}

	return resolved
}

func names(ops []*schema.Operation) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Name)
	}

	return out
}

type palette struct {
	ok   *color.Color
	fail *color.Color
	ask  *color.Color
}

func newPalette() palette {
	return palette{
		ok:   color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		ask:  color.New(color.FgCyan),
	}
}

func (p palette) disable() {
	p.ok.DisableColor()
	p.fail.DisableColor()
	p.ask.DisableColor()
}

func (s *Shell) success(format string, a ...any) {
	s.palette.ok.Fprint(s.out, "[+] ")
	fmt.Fprintf(s.out, format+"\n", a...)
}

func (s *Shell) failure(format string, a ...any) {
	s.palette.fail.Fprint(s.out, "[-] ")
	fmt.Fprintf(s.out, format+"\n", a...)
}
