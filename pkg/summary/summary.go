// Package summary prints the console pass/fail tally after a report run.
package summary

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/report"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

const (
	ruleWidth    = 60
	maxNameWidth = 40
)

// Row is one test case line in the per-case table.
type Row struct {
	ID       string
	Name     string
	Found    int
	Expected int
}

// Input is everything the summary shows.
type Input struct {
	Title       string
	Outcome     core.Outcome
	ReportCount int
	RunDirCount int
	Rows        []Row
	ReportPaths []string
}

// FromReport builds an Input from generated report data.
func FromReport(res *report.Result) Input {
	in := Input{
		Title:       res.Data.Title,
		Outcome:     res.Data.Outcome,
		ReportCount: res.Data.ReportCount,
		RunDirCount: res.Data.RunDirCount,
	}
	for _, c := range res.Data.Cases {
		in.Rows = append(in.Rows, Row{
			ID:       c.ID,
			Name:     c.Name,
			Found:    len(c.Screenshots),
			Expected: len(c.ExpectedScreenshots),
		})
	}
	for _, p := range []string{res.HTMLPath, res.MarkdownPath} {
		if p != "" {
			in.ReportPaths = append(in.ReportPaths, p)
		}
	}
	return in
}

// Printer writes summaries to w.
type Printer struct {
	w     io.Writer
	green *color.Color
	red   *color.Color
	warn  *color.Color
	label *color.Color
}

// New creates a Printer. Colour is used only when colorize is true.
func New(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:     w,
		green: color.New(color.FgGreen, color.Bold),
		red:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow),
		label: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.green, p.red, p.warn, p.label} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// ShouldColor reports whether f is a terminal and colour was not disabled.
func ShouldColor(f *os.File, noANSI bool) bool {
	if noANSI || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Print writes the summary block.
func (p *Printer) Print(in Input) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w, rule)
	title := in.Title
	if title == "" {
		title = "UI Test Report"
	}
	fmt.Fprintf(p.w, " %s\n", title)
	fmt.Fprintln(p.w, rule)

	fmt.Fprintf(p.w, " %s %s\n", p.label.Sprint(pad("Test run:", 18)), p.outcome(in.Outcome))
	fmt.Fprintf(p.w, " %s %d\n", p.label.Sprint(pad("Report files:", 18)), in.ReportCount)
	fmt.Fprintf(p.w, " %s %d\n", p.label.Sprint(pad("Screenshot runs:", 18)), in.RunDirCount)

	if len(in.Rows) > 0 {
		fmt.Fprintln(p.w, strings.Repeat("-", ruleWidth))
		idWidth := 0
		for _, r := range in.Rows {
			idWidth = max(idWidth, runewidth.StringWidth(r.ID))
		}
		var found, expected int
		for _, r := range in.Rows {
			found += r.Found
			expected += r.Expected
			fmt.Fprintf(p.w, " %s  %s  %s\n", pad(r.ID, idWidth), pad(truncate(r.Name), maxNameWidth), p.count(r.Found, r.Expected))
		}
		fmt.Fprintf(p.w, " %s  %s  %d/%d\n", pad("", idWidth), pad("Total", maxNameWidth), found, expected)
	}

	if len(in.ReportPaths) > 0 {
		fmt.Fprintln(p.w, strings.Repeat("-", ruleWidth))
		for _, path := range in.ReportPaths {
			fmt.Fprintf(p.w, " %s %s\n", p.label.Sprint("Report:"), path)
		}
	}
	fmt.Fprintln(p.w, rule)
}

func (p *Printer) outcome(o core.Outcome) string {
	label := strings.ToUpper(o.String())
	switch o {
	case core.OutcomePassed:
		return p.green.Sprint(label)
	case core.OutcomeFailed:
		return p.red.Sprint(label)
	default:
		return p.warn.Sprint(label)
	}
}

func (p *Printer) count(found, expected int) string {
	s := fmt.Sprintf("%d/%d", found, expected)
	switch {
	case found == 0:
		return p.red.Sprint(s)
	case found < expected:
		return p.warn.Sprint(s)
	default:
		return p.green.Sprint(s)
	}
}

// pad right-fills s to width display columns; CJK runes count as two.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func truncate(s string) string {
	return runewidth.Truncate(s, maxNameWidth, "…")
}
