package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/devicelab-dev/uireport/pkg/catalog"
	"github.com/devicelab-dev/uireport/pkg/config"
	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/history"
	"github.com/devicelab-dev/uireport/pkg/locator"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/devicelab-dev/uireport/pkg/report"
	"github.com/devicelab-dev/uireport/pkg/summary"
	"github.com/mattn/go-shellwords"
	"github.com/urfave/cli/v2"
)

var generateCommand = &cli.Command{
	Name:  "generate",
	Usage: "Generate reports from the latest screenshot runs",
	Description: `Scan the latest run directory of each selected browser, correlate the
screenshots with the test catalog and write an HTML report.

The test outcome shown in the report comes from --result, or from the exit
status of the command given with --exec.

Examples:
  uireport generate --browser chrome --result passed
  uireport generate --browser chrome,firefox --markdown
  uireport generate --exec "pytest tests/" --timeout 10m`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "browser",
			Aliases: []string{"b"},
			Usage:   "Browser name, comma-separated list, or \"all\"",
			Value:   "all",
			EnvVars: []string{"UIREPORT_BROWSER"},
		},
		&cli.StringFlag{
			Name:  "result",
			Usage: "Outcome of the test run (passed, failed)",
		},
		&cli.StringFlag{
			Name:  "exec",
			Usage: "Run this test command and use its exit status as the outcome",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout for --exec (default from config, 5m)",
		},
		&cli.BoolFlag{
			Name:  "markdown",
			Usage: "Also write a Markdown report",
		},
		&cli.StringFlag{
			Name:  "screenshots",
			Usage: "Screenshots root directory (overrides config)",
		},
		&cli.StringFlag{
			Name:  "reports",
			Usage: "Reports output directory (overrides config)",
		},
		&cli.StringFlag{
			Name:  "catalog",
			Usage: "Alternate catalog.yaml (overrides config)",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "Do not record the reports in the history database",
		},
	},
	Action: runGenerate,
}

func runGenerate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyPathOverrides(c, &cfg)

	initLogger(c, cfg)
	defer logger.Close()

	logger.Info("=== Report generation started ===")
	logger.Info("Screenshots: %s", cfg.ScreenshotsPath())
	logger.Info("Reports: %s", cfg.ReportsPath())

	browsers, err := cfg.SelectBrowsers(c.String("browser"))
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	timeout := cfg.RunnerTimeout
	if c.IsSet("timeout") {
		timeout = c.Duration("timeout")
	}
	outcome, err := resolveOutcome(c.Context, c.String("result"), c.String("exec"), timeout, c)
	if err != nil {
		return err
	}
	logger.Info("Outcome: %s", outcome)

	var store *history.Store
	if !c.Bool("no-history") {
		store = openHistory(cfg)
		if store != nil {
			defer store.Close()
		}
	}

	printer := summary.New(outWriter(c), useColor(c))
	for _, b := range browsers {
		loc := locator.New(cat, locator.Options{
			Root:       cfg.ScreenshotsPath(),
			Prefix:     b.Prefix,
			Anchor:     cfg.BaseDir,
			Extensions: cfg.Extensions,
		})
		res, err := report.Generate(report.GenerateConfig{
			Catalog:      cat,
			Locator:      loc,
			Browser:      b.Name,
			BrowserTitle: b.Title,
			Outcome:      outcome,
			ReportsDir:   cfg.ReportsPath(),
			Markdown:     c.Bool("markdown"),
		})
		if err != nil {
			return err
		}

		printer.Print(summary.FromReport(res))
		recordHistory(c.Context, store, res)
	}
	return nil
}

func applyPathOverrides(c *cli.Context, cfg *config.Config) {
	if v := c.String("screenshots"); v != "" {
		cfg.ScreenshotsDir = v
	}
	if v := c.String("reports"); v != "" {
		cfg.ReportsDir = v
	}
	if v := c.String("catalog"); v != "" {
		cfg.Catalog = v
	}
}

// loadCatalog returns the configured catalog, catalog.yaml in the base
// directory, or the built-in catalog.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if path := cfg.CatalogPath(); path != "" {
		cat, err := catalog.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadFromDir(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// resolveOutcome determines the test outcome from --result or --exec.
func resolveOutcome(ctx context.Context, result, command string, timeout time.Duration, c *cli.Context) (core.Outcome, error) {
	if result != "" && command != "" {
		return core.OutcomeUnknown, errors.New("--result and --exec are mutually exclusive")
	}
	if command == "" {
		return core.ParseOutcome(result)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return runTestCommand(ctx, command, timeout, c)
}

// runTestCommand runs the external test runner. Any failure to start, a
// timeout, or a non-zero exit is a failed outcome, not an error.
func runTestCommand(ctx context.Context, command string, timeout time.Duration, c *cli.Context) (core.Outcome, error) {
	fields, err := shellwords.Parse(command)
	if err != nil {
		return core.OutcomeUnknown, fmt.Errorf("parse --exec command: %w", err)
	}
	if len(fields) == 0 {
		return core.OutcomeUnknown, errors.New("--exec requires a command")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.Info("Running test command: %s (timeout: %v)", command, timeout)
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...) //#nosec G204 -- user-provided test command
	cmd.Stdout = outWriter(c)
	cmd.Stderr = errWriter(c)

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		logger.Error("test command timed out after %v", timeout)
		return core.OutcomeFailed, nil
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return core.OutcomePassed, nil
	case errors.As(err, &exitErr):
		logger.Warn("test command exited with status %d", exitErr.ExitCode())
		return core.OutcomeFromExitCode(exitErr.ExitCode()), nil
	default:
		logger.Error("test command failed to start: %v", err)
		return core.OutcomeFailed, nil
	}
}

func openHistory(cfg config.Config) *history.Store {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("history disabled: %v", err)
		return nil
	}
	return store
}

func recordHistory(ctx context.Context, store *history.Store, res *report.Result) {
	if store == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := store.Record(ctx, history.EntryFromResult(res)); err != nil {
		logger.Warn("history: %v", err)
	}
}
