package cli

import (
	"fmt"

	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v2"
)

var casesCommand = &cli.Command{
	Name:  "cases",
	Usage: "List the test catalog",
	Description: `List the test cases and the screenshots each one expects.

Examples:
  uireport cases
  uireport cases --check
  uireport cases --yaml > catalog.yaml`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "check",
			Usage: "Validate the catalog and exit non-zero on problems",
		},
		&cli.BoolFlag{
			Name:  "yaml",
			Usage: "Print the catalog as catalog.yaml",
		},
		&cli.StringFlag{
			Name:  "catalog",
			Usage: "Alternate catalog.yaml (overrides config)",
		},
	},
	Action: runCases,
}

func runCases(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyPathOverrides(c, &cfg)

	initLogger(c, cfg)
	defer logger.Close()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	out := outWriter(c)

	if c.Bool("yaml") {
		data, err := cat.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	nameWidth := 0
	for _, tc := range cat.Cases() {
		nameWidth = max(nameWidth, runewidth.StringWidth(tc.Name))
	}
	for _, tc := range cat.Cases() {
		exc := "-"
		if !tc.Exception.IsNone() {
			exc = tc.Exception.DisplayName()
		}
		fmt.Fprintf(out, "%-6s %s  %2d  %s\n",
			tc.ID, runewidth.FillRight(tc.Name, nameWidth), len(tc.ExpectedScreenshots), exc)
	}

	if c.Bool("check") {
		if err := cat.Validate(); err != nil {
			logger.Error("catalog check failed: %v", err)
			return fmt.Errorf("catalog check failed:\n%w", err)
		}
		fmt.Fprintf(out, "catalog OK: %d cases\n", cat.Len())
	}
	return nil
}
