package cli

import (
	"fmt"

	"github.com/devicelab-dev/uireport/pkg/history"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/urfave/cli/v2"
)

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "List previously generated reports",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of reports to show (0 = all)",
			Value:   20,
		},
	},
	Action: runHistory,
}

func runHistory(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	initLogger(c, cfg)
	defer logger.Close()

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	entries, err := store.List(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	out := outWriter(c)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No reports recorded yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s  %-8s %-7s %3d/%-3d %s\n",
			shortID(e.ID),
			e.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			e.Browser, e.Outcome, e.Found, e.Expected, e.Path)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
