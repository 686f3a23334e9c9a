package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Mohammadwh/Graphqler/client"
	"github.com/Mohammadwh/Graphqler/config"
	"github.com/Mohammadwh/Graphqler/history"
	"github.com/Mohammadwh/Graphqler/introspection"
	"github.com/Mohammadwh/Graphqler/query"
	"github.com/Mohammadwh/Graphqler/schema"
	"github.com/Mohammadwh/Graphqler/selection"
	"github.com/Mohammadwh/Graphqler/shell"
)

type options struct {
	configFile string
	schema     string
	endpoint   string
	proxy      string
	cookies    string
	logs       string
	maxDepth   int
	verbose    bool
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "graphqler",
		Short:         "Explore a GraphQL schema and build queries interactively",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, &opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: .graphqler.yml in the working directory)")
	flags.StringVarP(&opts.schema, "file", "f", "", "introspection JSON file")
	flags.StringVarP(&opts.endpoint, "url", "u", "", "GraphQL endpoint to introspect and send queries to")
	flags.StringVarP(&opts.proxy, "proxy", "p", "", "proxy URL for requests to the endpoint")
	flags.StringVarP(&opts.cookies, "cookies", "c", "", "JSON file of cookies sent to the endpoint")
	flags.StringVar(&opts.logs, "logs", "", "directory for saved requests and responses")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting of selection sets")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newListCommand(&opts),
		newSDLCommand(&opts),
		newBuildCommand(&opts),
	)

	return cmd
}

func runShell(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()
	shell.Banner(out)

	env, err := prepare(cmd, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Sync() }()

	prompter, err := shell.NewReadlinePrompter(env.cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer prompter.Close()

	shellOptions := []shell.Option{
		shell.WithOutput(out),
		shell.WithLogger(env.logger),
		shell.WithStore(history.NewStore(env.cfg.Logs)),
		shell.WithMaxDepth(env.cfg.MaxDepth),
		shell.WithSchema(env.checkSchema()),
	}
	if env.client != nil {
		shellOptions = append(shellOptions, shell.WithClient(env.client))
	} else {
		env.logger.Info("no endpoint configured, queries are constructed but not sent")
	}

	s := shell.New(env.model, prompter, shellOptions...)
	s.Summary()

	return s.Run(cmd.Context())
}

func newListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queries and mutations with their arguments and return types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := prepare(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, op := range env.model.Operations() {
				fmt.Fprintf(out, "%s %s%s: %s\n", op.Kind.Keyword(), op.Name, signature(op), op.ReturnTypeRef.String())
			}

			return nil
		},
	}
}

func newSDLCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sdl",
		Short: "Print the schema in schema definition language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := prepare(cmd, opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), introspection.SDL(env.model.Introspection))

			return nil
		},
	}
}

func newBuildCommand(opts *options) *cobra.Command {
	var (
		args  []string
		depth int
		check bool
	)

	cmd := &cobra.Command{
		Use:   "build <operation>",
		Short: "Build a document for an operation, selecting every leaf field up to --depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			env, err := prepare(cmd, opts)
			if err != nil {
				return err
			}

			op, ok := env.model.Operation(positional[0])
			if !ok {
				return fmt.Errorf("unknown operation %q", positional[0])
			}

			values, err := argumentValues(op, args, env.model.Types)
			if err != nil {
				return err
			}

			selector := selection.NewSelector(env.model.Types, selection.AutoChooser{Depth: depth},
				selection.WithLogger(env.logger),
				selection.WithMaxDepth(env.cfg.MaxDepth),
			)
			fragment, err := selector.SelectFor(cmd.Context(), op)
			if err != nil {
				return err
			}

			doc, err := query.Construct(op, values, fragment)
			if err != nil {
				return err
			}

			if check {
				if _, err := query.Parse(doc); err != nil {
					return err
				}
				s, err := introspection.LoadSchema(env.source, env.model.Introspection)
				if err != nil {
					return err
				}
				if err := query.Validate(s, doc); err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), doc)

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&args, "arg", nil, "argument value as name=value, repeatable")
	cmd.Flags().IntVar(&depth, "depth", 1, "levels of object fields to expand")
	cmd.Flags().BoolVar(&check, "check", false, "parse and validate the document against the schema")

	return cmd
}

// argumentValues coerces name=value pairs against the declared arguments of op.
func argumentValues(op *schema.Operation, pairs []string, types schema.Types) (map[string]any, error) {
	declared := make(map[string]schema.Argument, len(op.Arguments))
	for _, a := range op.Arguments {
		declared[a.Name] = a
	}

	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, input, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("--arg %q: expected name=value", pair)
		}

		arg, ok := declared[name]
		if !ok {
			return nil, fmt.Errorf("%s has no argument %q", op.Name, name)
		}

		v, err := query.Coerce(arg, input, types)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}

	for _, a := range op.Arguments {
		if _, ok := values[a.Name]; !ok && a.TypeRef != nil && a.TypeRef.Kind == introspection.TypeKindNonNull {
			return nil, fmt.Errorf("missing required argument %q of type %s", a.Name, a.TypeRef.String())
		}
	}

	return values, nil
}

func signature(op *schema.Operation) string {
	if len(op.Arguments) == 0 {
		return ""
	}

	args := make([]string, 0, len(op.Arguments))
	for _, a := range op.Arguments {
		args = append(args, a.Name+": "+a.TypeRef.String())
	}

	return "(" + strings.Join(args, ", ") + ")"
}

type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	client *client.Client
	model  *schema.Model
	source string
}

// checkSchema returns the validated schema, or nil when the introspection result does not
// form a valid schema. Constructed documents are then only syntax checked.
func (e *environment) checkSchema() *ast.Schema {
	s, err := introspection.LoadSchema(e.source, e.model.Introspection)
	if err != nil {
		e.logger.Warn("schema does not validate, constructed documents are not checked against it", zap.Error(err))
		return nil
	}

	return s
}

func prepare(cmd *cobra.Command, opts *options) (*environment, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	gqlClient, err := cfg.Client()
	if err != nil {
		return nil, err
	}

	model, err := cfg.LoadModel(cmd.Context(), gqlClient)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	source := cfg.Schema
	if source == "" {
		source = cfg.EndpointURL()
	}
	logger.Debug("schema loaded",
		zap.String("source", source),
		zap.Int("queries", len(model.Queries)),
		zap.Int("mutations", len(model.Mutations)),
		zap.Int("types", len(model.Types)),
	)

	return &environment{
		cfg:    cfg,
		logger: logger,
		client: gqlClient,
		model:  model,
		source: source,
	}, nil
}

// loadConfig reads the config file, if any, and lays the command-line flags over it.
func loadConfig(opts *options) (*config.Config, error) {
	cfgFile := opts.configFile
	if cfgFile == "" {
		found, err := config.FindConfigFile(".", config.DefaultConfigNames)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
		case err != nil:
			return nil, fmt.Errorf("failed to find config file: %w", err)
		default:
			cfgFile = found
		}
	}

	cfg := &config.Config{}
	if cfgFile != "" {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg = loaded
	}

	if opts.schema != "" {
		cfg.Schema = opts.schema
	}
	if opts.endpoint != "" {
		cfg.SetEndpoint(opts.endpoint)
	}
	if opts.proxy != "" {
		cfg.Proxy = opts.proxy
	}
	if opts.cookies != "" {
		cfg.Cookies = opts.cookies
	}
	if opts.logs != "" {
		cfg.Logs = opts.logs
	}
	if opts.maxDepth > 0 {
		cfg.MaxDepth = opts.maxDepth
	}
	cfg.Defaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zap.DebugLevel)
	}

	return cfg.Build()
}
