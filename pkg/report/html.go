package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/devicelab-dev/uireport/pkg/core"
)

var htmlFuncs = template.FuncMap{
	"formatTime":  formatTime,
	"formatSize":  formatSize,
	"statusClass": statusClass,
	"statusLabel": statusLabel,
	"exception":   func(k core.ExceptionKind) string { return k.DisplayName() },
	"percent":     func(f float64) string { return fmt.Sprintf("%.0f%%", f) },
}

var htmlTmpl = template.Must(template.New("report").Funcs(htmlFuncs).Parse(htmlTemplate))

// Render produces the complete HTML document.
func Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

func statusClass(o core.Outcome) string {
	switch o {
	case core.OutcomePassed:
		return "passed"
	case core.OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func statusLabel(o core.Outcome) string {
	return strings.ToUpper(o.String())
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="report-id" content="{{.ReportID}}">
    <title>{{.Title}}</title>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f9fafb;
            --text-primary: #111827;
            --text-muted: rgb(107, 114, 128);
            --border-color: #e5e7eb;
            --passed: #22c55e;
            --passed-bg: rgba(34, 197, 94, 0.1);
            --failed: #ef4444;
            --failed-bg: rgba(239, 68, 68, 0.08);
            --pending: #eab308;
            --pending-bg: rgba(234, 179, 8, 0.12);
            --accent: #06b6d4;
        }

        * { box-sizing: border-box; margin: 0; padding: 0; }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'PingFang SC', 'Microsoft YaHei', sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            line-height: 1.5;
        }

        .header {
            background: var(--bg-secondary);
            border-bottom: 1px solid var(--border-color);
            padding: 16px 24px;
        }

        .header h1 { font-size: 20px; font-weight: 600; }
        .header .meta { font-size: 12px; color: var(--text-muted); }

        .summary {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            padding: 16px 24px;
        }

        .stat {
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 12px 16px;
            min-width: 150px;
        }

        .stat-label { font-size: 12px; color: var(--text-muted); }
        .stat-value { font-size: 22px; font-weight: 600; }

        .badge {
            display: inline-block;
            padding: 2px 10px;
            border-radius: 9999px;
            font-size: 12px;
            font-weight: 600;
        }

        .badge.passed { background: var(--passed-bg); color: var(--passed); }
        .badge.failed { background: var(--failed-bg); color: var(--failed); }
        .badge.unknown { background: var(--bg-secondary); color: var(--text-muted); }
        .badge.exception { background: var(--failed-bg); color: var(--failed); font-family: monospace; }
        .badge.pending { background: var(--pending-bg); color: #a16207; }

        .warnings {
            margin: 0 24px 16px;
            padding: 12px 16px;
            border-left: 4px solid var(--pending);
            background: var(--pending-bg);
            font-size: 13px;
        }

        .case {
            margin: 0 24px 24px;
            border: 1px solid var(--border-color);
            border-radius: 8px;
            overflow: hidden;
        }

        .case-header {
            display: flex;
            align-items: center;
            gap: 12px;
            padding: 12px 16px;
            background: var(--bg-secondary);
            border-bottom: 1px solid var(--border-color);
        }

        .case-id { font-family: monospace; color: var(--accent); font-weight: 600; }
        .case-name { font-weight: 600; }
        .case-body { padding: 16px; }
        .case-body h4 { font-size: 13px; margin: 12px 0 6px; color: var(--text-muted); }
        .case-body ol { padding-left: 20px; font-size: 14px; }
        .notes { font-size: 14px; }

        .gallery {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(240px, 1fr));
            gap: 12px;
        }

        .shot {
            border: 1px solid var(--border-color);
            border-radius: 6px;
            overflow: hidden;
            background: var(--bg-secondary);
        }

        .shot img { display: block; width: 100%; height: auto; cursor: zoom-in; }

        .shot-fallback {
            display: none;
            padding: 24px 12px;
            text-align: center;
            font-size: 12px;
            color: var(--failed);
        }

        .shot figcaption { padding: 8px; font-size: 12px; word-break: break-all; }
        .shot code, .expected code { font-size: 11px; }
        .shot small { color: var(--text-muted); }

        .expected {
            border: 1px dashed var(--pending);
            background: var(--pending-bg);
            border-radius: 6px;
            padding: 12px 16px;
            font-size: 13px;
        }

        .expected ul { list-style: none; margin: 8px 0; }
        .expected li { display: flex; align-items: center; gap: 8px; padding: 2px 0; }
        .hint { margin-top: 8px; color: var(--text-muted); }

        .footer { padding: 16px 24px; font-size: 12px; color: var(--text-muted); }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <div class="meta">Generated {{formatTime .GeneratedAt}}{{if .Browser}} &middot; Browser: {{.BrowserTitle}}{{end}}{{if .ReportID}} &middot; Report {{.ReportID}}{{end}}</div>
    </div>

    <div class="summary">
        <div class="stat">
            <div class="stat-label">Test run</div>
            <div class="stat-value"><span class="badge {{statusClass .Outcome}}">{{statusLabel .Outcome}}</span></div>
        </div>
        <div class="stat">
            <div class="stat-label">Test cases</div>
            <div class="stat-value">{{.Totals.Cases}}</div>
        </div>
        <div class="stat">
            <div class="stat-label">Cases with screenshots</div>
            <div class="stat-value">{{.Totals.CasesWithShots}}</div>
        </div>
        <div class="stat">
            <div class="stat-label">Screenshots found</div>
            <div class="stat-value">{{.Totals.ScreenshotsFound}} / {{.Totals.ScreenshotsExpected}} ({{percent .Totals.Coverage}})</div>
        </div>
        <div class="stat">
            <div class="stat-label">Report files</div>
            <div class="stat-value">{{.ReportCount}}</div>
        </div>
        <div class="stat">
            <div class="stat-label">Screenshot runs</div>
            <div class="stat-value">{{.RunDirCount}}</div>
        </div>
    </div>
{{if .Warnings}}
    <div class="warnings">
        <strong>Catalog integrity</strong>
        <ul>{{range .Warnings}}
            <li>{{.}}</li>{{end}}
        </ul>
    </div>
{{end}}
{{range .Cases}}
    <section class="case" id="{{.ID}}">
        <div class="case-header">
            <span class="case-id">{{.ID}}</span>
            <span class="case-name">{{.Name}}</span>
            {{with exception .Exception}}<span class="badge exception">{{.}}</span>{{end}}
        </div>
        <div class="case-body">
            <p>{{.Description}}</p>
            <h4>Steps</h4>
            <ol>{{range .Steps}}
                <li>{{.}}</li>{{end}}
            </ol>
            <h4>Expected result</h4>
            <p>{{.ExpectedResult}}</p>
{{if .NotesHTML}}
            <h4>Notes</h4>
            <div class="notes">{{.NotesHTML}}</div>
{{end}}
            <h4>Screenshots</h4>
{{if .HasScreenshots}}
            <div class="gallery">{{range .Screenshots}}
                <figure class="shot" data-type="{{.ContentType}}">
                    <img src="{{.Src}}" alt="{{.Title}}" loading="lazy" onerror="this.style.display='none';this.nextElementSibling.style.display='block';">
                    <div class="shot-fallback">Image failed to load ({{.ContentType}})<br><code>{{.Path}}</code></div>
                    <figcaption>
                        <strong>{{.Title}}</strong><br>
                        <code>{{.Path}}</code> ({{formatSize .Size}})<br>
                        <small>{{.AbsPath}}</small>
                    </figcaption>
                </figure>{{end}}
            </div>
{{else}}
            <div class="expected">
                <h4 class="expected-title">Expected screenshots</h4>
                <ul>{{range .Expected}}
                    <li><code>{{.Name}}</code> <span class="badge pending">not yet generated</span></li>{{end}}
                </ul>
                <div>Screenshots directory: <code>{{$.ScreenshotsDir}}</code></div>
                <div class="hint">Run the UI test suite{{if $.Browser}} for {{$.Browser}}{{end}} to capture screenshots, then regenerate this report{{if $.Browser}} with <code>uireport generate --browser {{$.Browser}}</code>{{end}}.</div>
            </div>
{{end}}
        </div>
    </section>
{{end}}
    <div class="footer">uireport &middot; {{len .Cases}} test cases</div>
</body>
</html>
`
