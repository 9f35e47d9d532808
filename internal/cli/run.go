package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/internal/config"
	"github.com/wesleyorama2/sockhttp/internal/metrics"
	"github.com/wesleyorama2/sockhttp/internal/output"
	"github.com/wesleyorama2/sockhttp/internal/pacing"
	"github.com/wesleyorama2/sockhttp/pkg/jsonschema"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a request or suite from a configuration file",
		Long: `Run executes named requests from a YAML configuration file. Requests in a
suite run in order; values pulled out with "extract" become variables for
the requests that follow. With --repeat the whole sequence runs N times and
a latency summary is printed at the end.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Configuration file (required)")
	flags.StringP("environment", "e", "", "Environment to use")
	flags.StringP("request", "r", "", "Request to run")
	flags.StringP("suite", "s", "", "Suite to run")
	flags.Int("repeat", 1, "Run the request or suite this many times")
	flags.Float64("rate", 0, "Start at most this many calls per second (0 means no limit)")
	flags.StringArray("var", nil, "Variable as name=value (repeatable)")
	_ = cmd.MarkFlagRequired("config")
	cmd.MarkFlagsMutuallyExclusive("request", "suite")
	cmd.MarkFlagsOneRequired("request", "suite")
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	envName, _ := flags.GetString("environment")
	reqName, _ := flags.GetString("request")
	suiteName, _ := flags.GetString("suite")
	repeat, _ := flags.GetInt("repeat")
	rate, _ := flags.GetFloat64("rate")
	rawVars, _ := flags.GetStringArray("var")

	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}
	if rate < 0 {
		return fmt.Errorf("rate must not be negative, got %g", rate)
	}
	cliVars, err := parseVars(rawVars)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintln(stderr, "Configuration validation errors:")
		for _, e := range errs {
			fmt.Fprintf(stderr, "  - %s\n", e.Error())
		}
		return fmt.Errorf("invalid configuration %s", path)
	}
	if envName != "" {
		if err := config.ValidateEnvironment(cfg, envName); err != nil {
			return err
		}
	}

	title := reqName
	names := []string{reqName}
	vars := map[string]string{}
	if suiteName != "" {
		if err := config.ValidateSuite(cfg, suiteName); err != nil {
			return err
		}
		suite := cfg.Suites[suiteName]
		title, names, vars = suiteName, suite.Requests, suite.Vars
	} else if err := config.ValidateRequest(cfg, reqName); err != nil {
		return err
	}
	vars = config.MergeEnvironments(vars, cliVars)

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	if flags.Changed("timeout") {
		timeout = g.timeout
	}
	lc, err := cfg.LoggingConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := g.openLogger(lc, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	r := &runner{
		cfg: cfg,
		env: envName,
		session: http.NewSession(
			http.WithSessionTimeout(timeout),
			http.WithSessionHeaders(cfg.SessionHeaders()),
			http.WithSessionLogger(logger),
		),
		recorder: metrics.NewRecorder(),
		pacer:    pacing.New(rate),
	}
	report := r.run(cmd.Context(), title, names, vars, repeat)
	writeBlock(cmd.OutOrStdout(), g.formatter().FormatReport(report))

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d calls failed", report.Failed, len(report.Calls))
	}
	return nil
}

// runner executes configured requests in order on one session.
type runner struct {
	cfg      *config.Config
	env      string
	session  *http.Session
	recorder *metrics.Recorder
	pacer    *pacing.Pacer
}

// run executes names repeat times. Each iteration starts from a copy of
// vars, so values extracted in one pass do not leak into the next. A
// cancelled context stops the run; calls made so far are still reported.
func (r *runner) run(ctx context.Context, title string, names []string, vars map[string]string, repeat int) *output.Report {
	start := time.Now()
	var calls []output.CallResult
loop:
	for i := 1; i <= repeat; i++ {
		scope := config.MergeEnvironments(vars, nil)
		for _, name := range names {
			if err := r.pacer.Wait(ctx); err != nil {
				break loop
			}
			calls = append(calls, r.call(ctx, name, scope, i))
		}
	}
	return output.NewReport(title, repeat, calls, r.recorder, time.Since(start))
}

// call runs one configured request. Extracted values are written back
// into vars.
func (r *runner) call(ctx context.Context, name string, vars map[string]string, iteration int) output.CallResult {
	res := output.CallResult{Name: name, Iteration: iteration}

	call, err := r.cfg.Resolve(name, r.env, vars)
	if err != nil {
		res.Errors = []string{err.Error()}
		return res
	}
	res.Method = string(call.Method)
	res.URL = call.URL

	var schema *jsonschema.Schema
	if call.Schema != "" {
		if schema, err = jsonschema.Compile(call.Schema); err != nil {
			res.Errors = []string{err.Error()}
			return res
		}
	}

	start := time.Now()
	resp, err := r.session.Do(ctx, call.Method, call.URL, &call.Params)
	elapsed := time.Since(start)
	res.Duration = elapsed.Milliseconds()
	if err != nil {
		res.Errors = []string{err.Error()}
		r.recorder.Record(name, elapsed, false, 0)
		return res
	}
	res.StatusCode = resp.StatusCode

	extracted, problems := inspect(resp, call.Extract, schema)
	if !resp.IsSuccess() {
		problems = append([]string{"unexpected status " + resp.Status}, problems...)
	}
	for k, v := range extracted {
		vars[k] = v
	}
	res.Extracted = extracted
	res.Errors = problems
	res.Passed = len(problems) == 0
	r.recorder.Record(name, elapsed, res.Passed, int64(len(resp.Body)))
	return res
}
