// Command formrun builds a form from a YAML definition, applies a script of
// JSON patches to it and prints every published snapshot as a JSON line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/lookup"
	"github.com/dmitrymomot/formkit/pkg/telemetry"
)

const usage = `formrun - drive a form from a definition and a patch script

USAGE:
  formrun -def <file> [flags]

FLAGS:
  -def <file>                 YAML form definition (required)
  -patch <file>               JSON array of JSON patches, applied in order
  -submit                     Submit the form after the last patch
  -timeout <duration>         Time allowed for validation and submit (default: 10s)
  -env <name>                 development or production; picks log format and level (default: development)
  -env-file <file>            Load variables from an env file before reading configuration
  -log.level <level>          debug, info, warn or error, overrides the environment default
  -otel.endpoint <addr>       OTLP collector endpoint, overrides OTEL_EXPORTER_OTLP_ENDPOINT
  -otel.service <name>        OpenTelemetry service name (default: formrun)

Forms start from FORM_* defaults; a config section in the definition replaces them.
Lookups read LOOKUP_REDIS_* and LOOKUP_PG_* from the environment or .env.
`

var errMissingDefinition = errors.New("formrun: -def is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	def          string
	patch        string
	submit       bool
	timeout      time.Duration
	env          string
	envFile      string
	logLevel     string
	otelEndpoint string
	otelService  string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("formrun", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	fs.StringVar(&o.def, "def", "", "")
	fs.StringVar(&o.patch, "patch", "", "")
	fs.BoolVar(&o.submit, "submit", false, "")
	fs.DurationVar(&o.timeout, "timeout", 10*time.Second, "")
	fs.StringVar(&o.env, "env", "development", "")
	fs.StringVar(&o.envFile, "env-file", "", "")
	fs.StringVar(&o.logLevel, "log.level", "", "")
	fs.StringVar(&o.otelEndpoint, "otel.endpoint", "", "")
	fs.StringVar(&o.otelService, "otel.service", "formrun", "")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.def == "" {
		fs.Usage()
		return o, errMissingDefinition
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(o.env, "formrun"),
		logger.WithOutput(stderr),
		logger.WithFormIDFromContext(),
	}
	if o.logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
			return fmt.Errorf("formrun: log level: %w", err)
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	if o.envFile != "" {
		if err := config.LoadEnv(o.envFile); err != nil {
			return err
		}
	}

	var tcfg telemetry.Config
	if err := config.Load(&tcfg); err != nil {
		return err
	}
	if o.otelEndpoint != "" {
		tcfg.Endpoint = o.otelEndpoint
	}
	tcfg.ServiceName = o.otelService
	shutdown, err := telemetry.Setup(ctx, tcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("telemetry shutdown failed", logger.Error(err))
		}
	}()

	if _, err := form.LoadDefaultConfig(); err != nil {
		return err
	}

	def, err := definition.Load(o.def)
	if err != nil {
		return err
	}

	backends, closeBackends, err := connect(ctx, def)
	if err != nil {
		return err
	}
	defer closeBackends()

	opts, err := definition.Build(def, backends)
	if err != nil {
		return err
	}

	out := &lineWriter{w: stdout}
	opts = append(opts,
		form.WithContext(ctx),
		form.WithLogger(log),
		form.WithAsyncSubmit(func(ctx context.Context, values form.Values, _ form.Meta, modified form.Values) error {
			log.InfoContext(ctx, "form submitted", slog.Int("modified_fields", len(modified)))
			return out.write(map[string]any{
				"event":    "submitted",
				"values":   values,
				"modified": modified,
			})
		}),
	)
	f := form.New(def.Initial(), opts...)

	f.Subscribe(func(s *form.Snapshot) {
		if err := out.write(definition.NewReport(f.ID(), s)); err != nil {
			log.Error("write snapshot", logger.Error(err))
		}
	})
	if err := out.write(definition.NewReport(f.ID(), f.Snapshot())); err != nil {
		return err
	}

	if o.patch != "" {
		if err := applyScript(f, o.patch); err != nil {
			return err
		}
	}
	if o.submit {
		f.Submit()
	}

	waitCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	if err := f.Wait(waitCtx); err != nil {
		return fmt.Errorf("formrun: waiting for form: %w", err)
	}

	s := f.Snapshot()
	log.InfoContext(logger.ContextWithFormID(ctx, f.ID()), "done",
		slog.Bool("valid", s.IsValid),
		slog.Int("invalid_fields", len(s.Invalid())),
	)
	return nil
}

func applyScript(f *form.Form, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("formrun: read patch script: %w", err)
	}
	steps, err := definition.DecodeScript(data)
	if err != nil {
		return err
	}
	for i, step := range steps {
		if _, err := definition.ApplyPatch(f, step); err != nil {
			return fmt.Errorf("formrun: step %d: %w", i, err)
		}
	}
	return nil
}

// connect opens only the lookup backends the definition refers to.
func connect(ctx context.Context, def *definition.Definition) (definition.Backends, func(), error) {
	var (
		b       definition.Backends
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, name := range backendsOf(def) {
		switch name {
		case definition.BackendRedis:
			var cfg lookup.RedisConfig
			if err := config.Load(&cfg); err != nil {
				closeAll()
				return b, nil, err
			}
			client, err := lookup.ConnectRedis(ctx, cfg)
			if err != nil {
				closeAll()
				return b, nil, err
			}
			b.Redis = client
			closers = append(closers, func() { _ = client.Close() })
		case definition.BackendPostgres:
			var cfg lookup.PostgresConfig
			if err := config.Load(&cfg); err != nil {
				closeAll()
				return b, nil, err
			}
			pool, err := lookup.ConnectPostgres(ctx, cfg)
			if err != nil {
				closeAll()
				return b, nil, err
			}
			b.Postgres = pool
			closers = append(closers, pool.Close)
		}
	}
	return b, closeAll, nil
}

func backendsOf(def *definition.Definition) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range def.Fields {
		if f.Lookup != nil && !seen[f.Lookup.Backend] {
			seen[f.Lookup.Backend] = true
			out = append(out, f.Lookup.Backend)
		}
	}
	return out
}

// lineWriter writes one JSON document per line.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) write(v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(append(data, '\n'))
	return err
}
