// Package report assembles self-contained HTML (and Markdown) reports from a
// test catalog and the screenshots located for each case.
//
// Assembly is pure: Build produces template data, Render and RenderMarkdown
// turn it into text. Only Write touches the filesystem.
package report

import (
	"html/template"
	"path/filepath"
	"time"

	"github.com/devicelab-dev/uireport/pkg/catalog"
	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/locator"
)

// Locator is what the assembler needs from *locator.Locator.
type Locator interface {
	Locate(id string) []locator.ScreenshotRecord
	Expected(id string) []locator.ScreenshotRecord
	Root() string
}

// Meta describes one report generation.
type Meta struct {
	ReportID     string
	Title        string
	Browser      string // e.g. "chrome"
	BrowserTitle string // e.g. "Chrome"
	Outcome      core.Outcome
	GeneratedAt  time.Time

	// Ancillary counts shown in the summary panel.
	ReportCount int
	RunDirCount int
}

// Data is the complete input of the report templates.
type Data struct {
	Meta
	ScreenshotsDir string // Absolute screenshots root
	Cases          []CaseData
	Totals         Totals
	Warnings       []string // Catalog integrity problems
}

// CaseData is one test case with its correlated screenshots.
type CaseData struct {
	catalog.TestCase
	Screenshots []Shot // Found in the latest run
	Expected    []Shot // Listed only when Screenshots is empty
	NotesHTML   template.HTML
}

// HasScreenshots reports whether the gallery is rendered for the case.
func (c CaseData) HasScreenshots() bool {
	return len(c.Screenshots) > 0
}

// Shot is a screenshot record prepared for the templates.
type Shot struct {
	locator.ScreenshotRecord
	Src template.URL // file:// URL; trusted because it is built from a local path
}

// Name returns the file name of the screenshot.
func (s Shot) Name() string {
	return filepath.Base(s.AbsPath)
}

// Totals aggregates screenshot coverage across all cases.
type Totals struct {
	Cases               int
	CasesWithShots      int
	ScreenshotsFound    int
	ScreenshotsExpected int
}

// Coverage returns the percentage of expected screenshots found.
func (t Totals) Coverage() float64 {
	if t.ScreenshotsExpected == 0 {
		return 0
	}
	return float64(t.ScreenshotsFound) / float64(t.ScreenshotsExpected) * 100
}
