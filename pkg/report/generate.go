package report

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/devicelab-dev/uireport/pkg/catalog"
	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/google/uuid"
)

// RunLocator is a Locator that can also count run directories.
type RunLocator interface {
	Locator
	CountRunDirs() int
}

// GenerateConfig contains everything needed to produce one browser report.
type GenerateConfig struct {
	Catalog      *catalog.Catalog
	Locator      RunLocator
	Browser      string
	BrowserTitle string
	Outcome      core.Outcome
	ReportsDir   string
	Markdown     bool // Also write a .md report next to the HTML one

	ReportID string           // Default: random UUID
	Now      func() time.Time // Default: time.Now
}

// Result describes the files a generation produced.
type Result struct {
	Data         Data
	HTMLPath     string
	MarkdownPath string
}

// Generate scans, renders and writes the report. Only write failures are
// returned; missing screenshots degrade to the expected-screenshot listing.
func Generate(cfg GenerateConfig) (*Result, error) {
	if cfg.Catalog == nil || cfg.Locator == nil {
		return nil, errors.New("generate report: catalog and locator are required")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	if cfg.ReportID == "" {
		cfg.ReportID = uuid.NewString()
	}

	generatedAt := now()
	meta := Meta{
		ReportID:     cfg.ReportID,
		Browser:      cfg.Browser,
		BrowserTitle: cfg.BrowserTitle,
		Outcome:      cfg.Outcome,
		GeneratedAt:  generatedAt,
		ReportCount:  CountReports(cfg.ReportsDir) + 1,
		RunDirCount:  cfg.Locator.CountRunDirs(),
	}

	for _, d := range cfg.Catalog.Duplicates() {
		logger.Warn("catalog: %s", d)
	}

	data := NewAssembler(cfg.Locator).Build(cfg.Catalog, meta)
	logger.Info("%s: %d/%d screenshots found across %d cases",
		cfg.Browser, data.Totals.ScreenshotsFound, data.Totals.ScreenshotsExpected, data.Totals.Cases)

	html, err := Render(data)
	if err != nil {
		return nil, err
	}

	res := &Result{Data: data}
	res.HTMLPath, err = WriteNew(cfg.ReportsDir, FileName(cfg.Browser, generatedAt, "html"), []byte(html))
	if err != nil {
		logger.Error("%v", err)
		return nil, err
	}
	logger.Info("wrote %s", res.HTMLPath)

	if cfg.Markdown {
		md, err := RenderMarkdown(data)
		if err != nil {
			return nil, err
		}
		// Same stem as the HTML report, including any uniqueness suffix.
		mdName := strings.TrimSuffix(filepath.Base(res.HTMLPath), ".html") + ".md"
		res.MarkdownPath, err = Write(cfg.ReportsDir, mdName, []byte(md))
		if err != nil {
			logger.Error("%v", err)
			return nil, err
		}
		logger.Info("wrote %s", res.MarkdownPath)
	}

	return res, nil
}
