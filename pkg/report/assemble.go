package report

import (
	"bytes"
	"html/template"

	"github.com/devicelab-dev/uireport/pkg/catalog"
	"github.com/devicelab-dev/uireport/pkg/locator"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"github.com/yuin/goldmark"
)

// Assembler merges catalog entries with located screenshots.
type Assembler struct {
	locator  Locator
	markdown goldmark.Markdown
}

// NewAssembler creates an Assembler backed by loc.
func NewAssembler(loc Locator) *Assembler {
	return &Assembler{
		locator:  loc,
		markdown: goldmark.New(),
	}
}

// Build queries the locator for every case, in catalog order, and returns
// the template data. Cases with no screenshots get their expected names.
func (a *Assembler) Build(cat *catalog.Catalog, meta Meta) Data {
	data := Data{
		Meta:           meta,
		ScreenshotsDir: a.locator.Root(),
	}
	if data.Title == "" {
		data.Title = defaultTitle(meta)
	}
	for _, d := range cat.Duplicates() {
		data.Warnings = append(data.Warnings, d.String())
	}

	for _, tc := range cat.Cases() {
		cd := CaseData{
			TestCase:    tc,
			Screenshots: toShots(a.locator.Locate(tc.ID)),
			NotesHTML:   a.renderNotes(tc),
		}
		if !cd.HasScreenshots() {
			cd.Expected = toShots(a.locator.Expected(tc.ID))
		}

		data.Totals.Cases++
		data.Totals.ScreenshotsFound += len(cd.Screenshots)
		data.Totals.ScreenshotsExpected += len(tc.ExpectedScreenshots)
		if cd.HasScreenshots() {
			data.Totals.CasesWithShots++
		}
		data.Cases = append(data.Cases, cd)
	}
	return data
}

func (a *Assembler) renderNotes(tc catalog.TestCase) template.HTML {
	if tc.Notes == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := a.markdown.Convert([]byte(tc.Notes), &buf); err != nil {
		logger.Warn("render notes for %s: %v", tc.ID, err)
		return template.HTML(template.HTMLEscapeString(tc.Notes)) //#nosec G203 -- escaped above
	}
	// goldmark omits raw HTML unless WithUnsafe is set.
	return template.HTML(buf.String()) //#nosec G203
}

func toShots(records []locator.ScreenshotRecord) []Shot {
	if len(records) == 0 {
		return nil
	}
	shots := make([]Shot, len(records))
	for i, r := range records {
		shots[i] = Shot{
			ScreenshotRecord: r,
			Src:              template.URL(r.URL()), //#nosec G203 -- local file URL
		}
	}
	return shots
}

func defaultTitle(meta Meta) string {
	if meta.BrowserTitle != "" {
		return meta.BrowserTitle + " UI Test Report"
	}
	return "UI Test Report"
}
