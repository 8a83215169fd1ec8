// Package cli provides the command-line interface for uireport.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/devicelab-dev/uireport/pkg/config"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/devicelab-dev/uireport/pkg/summary"
	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Usage:   "Path to workspace config.yaml (default: ./config.yaml if present)",
		EnvVars: []string{"UIREPORT_CONFIG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"UIREPORT_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:    "no-ansi",
		Usage:   "Disable ANSI colors",
		EnvVars: []string{"NO_ANSI"},
	},
}

// NewApp builds the uireport application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "uireport",
		Usage:   "Correlate UI test cases with screenshots and render reports",
		Version: Version,
		Description: `uireport scans the latest screenshot run of each browser, matches the
screenshots to the test catalog and writes a self-contained HTML report.

Examples:
  uireport generate --browser chrome --result passed
  uireport generate --browser all --exec "pytest tests/"
  uireport cases --check
  uireport history --limit 10`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			generateCommand,
			casesCommand,
			historyCommand,
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config, or config.yaml from the working directory, and
// applies defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// initLogger opens the log file for cfg. A failure is reported but does not
// stop the command.
func initLogger(c *cli.Context, cfg config.Config) {
	if err := logger.Init(cfg.LogPath()); err != nil {
		fmt.Fprintf(errWriter(c), "Warning: Failed to initialize logger: %v\n", err)
	}
	verbose := c.Bool("verbose")
	logger.SetVerbose(verbose)
	if verbose {
		logger.SetMirror(errWriter(c))
	}
}

func outWriter(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App != nil && c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// useColor reports whether output to c's writer should be colorized.
func useColor(c *cli.Context) bool {
	f, ok := outWriter(c).(*os.File)
	if !ok {
		return false
	}
	return summary.ShouldColor(f, c.Bool("no-ansi"))
}
