package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var mdTmpl = template.Must(template.New("markdown").Funcs(template.FuncMap{
	"formatTime":  formatTime,
	"formatSize":  formatSize,
	"statusLabel": statusLabel,
	"percent":     func(f float64) string { return fmt.Sprintf("%.0f%%", f) },
	"cell":        mdCell,
}).Parse(markdownTemplate))

// RenderMarkdown produces a Markdown version of the report, suitable for CI
// job summaries and pull request comments.
func RenderMarkdown(data Data) (string, error) {
	var buf bytes.Buffer
	if err := mdTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// mdCell makes a value safe for a single Markdown table cell.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

const markdownTemplate = `# {{.Title}}

- Generated: {{formatTime .GeneratedAt}}
{{- if .Browser}}
- Browser: {{.BrowserTitle}}
{{- end}}
- Test run: **{{statusLabel .Outcome}}**
- Screenshots found: {{.Totals.ScreenshotsFound}} / {{.Totals.ScreenshotsExpected}} ({{percent .Totals.Coverage}})
- Report files: {{.ReportCount}}, screenshot runs: {{.RunDirCount}}
{{- if .Warnings}}

> **Catalog integrity**
{{- range .Warnings}}
> - {{.}}
{{- end}}
{{- end}}

| ID | Test case | Exception | Screenshots |
|----|-----------|-----------|-------------|
{{- range .Cases}}
| {{.ID}} | {{cell .Name}} | {{with .Exception.DisplayName}}{{.}}{{else}}-{{end}} | {{len .Screenshots}} / {{len .ExpectedScreenshots}} |
{{- end}}
{{range .Cases}}
## {{.ID}} {{.Name}}

{{.Description}}

**Steps**
{{range .Steps}}
1. {{.}}
{{- end}}

**Expected result:** {{.ExpectedResult}}
{{if .HasScreenshots}}
| Screenshot | Path | Size |
|------------|------|------|
{{- range .Screenshots}}
| {{cell .Title}} | ` + "`{{cell .Path}}`" + ` | {{formatSize .Size}} |
{{- end}}
{{else}}
Expected screenshots (not yet generated) in ` + "`{{$.ScreenshotsDir}}`" + `:
{{range .Expected}}
- ` + "`{{.Name}}`" + `
{{- end}}
{{end}}
{{- end}}`
