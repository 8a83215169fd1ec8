package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devicelab-dev/uireport/pkg/catalog"
	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func testMeta() Meta {
	return Meta{
		ReportID:     "report-1",
		Browser:      "chrome",
		BrowserTitle: "Chrome",
		Outcome:      core.OutcomePassed,
		GeneratedAt:  fixedTime,
		ReportCount:  3,
		RunDirCount:  1,
	}
}

func chromeLocator(cat *catalog.Catalog, root string) *locator.Locator {
	return locator.New(cat, locator.Options{Root: root, Prefix: "chrome_", Anchor: filepath.Dir(root)})
}

func writeRun(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("png"), 0o644))
	}
}

func renderFor(t *testing.T, cat *catalog.Catalog, root string) string {
	t.Helper()
	data := NewAssembler(chromeLocator(cat, root)).Build(cat, testMeta())
	html, err := Render(data)
	require.NoError(t, err)
	return html
}

func TestRender_EmptyRootShowsFallbackForEveryCase(t *testing.T) {
	root := filepath.Join(t.TempDir(), "screenshots")
	cat := catalog.Default()
	html := renderFor(t, cat, root)

	assert.Equal(t, cat.Len(), strings.Count(html, "Expected screenshots"))
	assert.Equal(t, 0, strings.Count(html, "<img"))

	var expected int
	for _, id := range cat.IDs() {
		for _, name := range cat.ExpectedScreenshotNames(id) {
			assert.Contains(t, html, "<code>"+name+"</code>")
			expected++
		}
	}
	assert.Equal(t, expected, strings.Count(html, "not yet generated"))
	assert.Contains(t, html, root)
	assert.Contains(t, html, "uireport generate --browser chrome")
}

func TestRender_PartialGallerySkipsFallback(t *testing.T) {
	root := filepath.Join(t.TempDir(), "screenshots")
	writeRun(t, root, "chrome_20240101_000000",
		"登录用例1_输入正确用户名.png",
		"登录用例1_登出操作.png",
	)
	cat := catalog.Default()
	html := renderFor(t, cat, root)

	assert.Equal(t, 2, strings.Count(html, "<img"))
	assert.Equal(t, cat.Len()-1, strings.Count(html, "Expected screenshots"))
	assert.NotContains(t, html, "ZgotmplZ")
	assert.Contains(t, html, `src="file:///`)
	assert.Contains(t, html, "screenshots/chrome_20240101_000000/登录用例1_登出操作.png")
	assert.Contains(t, html, filepath.Join(root, "chrome_20240101_000000", "登录用例1_登出操作.png"))

	// The TC001 section has a gallery and no fallback block.
	start := strings.Index(html, `id="TC001"`)
	end := strings.Index(html, `id="TC002"`)
	require.True(t, start >= 0 && end > start)
	section := html[start:end]
	assert.Contains(t, section, `class="gallery"`)
	assert.NotContains(t, section, "Expected screenshots")
	assert.Contains(t, section, "shot-fallback")
}

func TestRender_GalleryContentType(t *testing.T) {
	root := filepath.Join(t.TempDir(), "screenshots")
	writeRun(t, root, "chrome_20240101_000000",
		"登录用例1_打开登录页.JPG",
		"登录用例1_登出操作.png",
	)
	html := renderFor(t, catalog.Default(), root)

	assert.Contains(t, html, `<figure class="shot" data-type="image/jpeg">`)
	assert.Contains(t, html, `<figure class="shot" data-type="image/png">`)
	assert.Contains(t, html, "Image failed to load (image/jpeg)")
}

func TestRender_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeRun(t, root, "chrome_1", "异常用例5_等待超时.jpg")
	cat := catalog.Default()

	assert.Equal(t, renderFor(t, cat, root), renderFor(t, cat, root))
}

func TestRender_Outcome(t *testing.T) {
	cat := catalog.Default()
	loc := chromeLocator(cat, t.TempDir())

	meta := testMeta()
	html, err := Render(NewAssembler(loc).Build(cat, meta))
	require.NoError(t, err)
	assert.Contains(t, html, `<span class="badge passed">PASSED</span>`)

	meta.Outcome = core.OutcomeFailed
	html, err = Render(NewAssembler(loc).Build(cat, meta))
	require.NoError(t, err)
	assert.Contains(t, html, `<span class="badge failed">FAILED</span>`)
	assert.Contains(t, html, "Chrome UI Test Report")
	assert.Contains(t, html, "2024-01-02 03:04:05")
	assert.Contains(t, html, `content="report-1"`)
}

func TestRender_ExceptionBadge(t *testing.T) {
	html := renderFor(t, catalog.Default(), t.TempDir())
	assert.Contains(t, html, "StaleElementReferenceException</span>")
	assert.Contains(t, html, "TimeoutException</span>")
}

func TestRender_EscapesCatalogText(t *testing.T) {
	cat := catalog.New(catalog.TestCase{
		ID:                  "X1",
		Name:                "<script>alert(1)</script>",
		Patterns:            []string{"x"},
		ExpectedScreenshots: []string{"x.png"},
	})
	html := renderFor(t, cat, t.TempDir())

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_NotesAsMarkdown(t *testing.T) {
	cat := catalog.New(catalog.TestCase{
		ID:                  "X1",
		Name:                "notes",
		Patterns:            []string{"x"},
		ExpectedScreenshots: []string{"x.png"},
		Notes:               "Uses **explicit** waits.\n\n<script>bad()</script>",
	})
	html := renderFor(t, cat, t.TempDir())

	assert.Contains(t, html, "<strong>explicit</strong>")
	assert.NotContains(t, html, "<script>bad()</script>")
}

func TestRender_DuplicateWarning(t *testing.T) {
	cat := catalog.New(
		catalog.TestCase{ID: "TC001", Name: "old", Patterns: []string{"a"}, ExpectedScreenshots: []string{"a.png"}},
		catalog.TestCase{ID: "TC001", Name: "new", Patterns: []string{"b"}, ExpectedScreenshots: []string{"b.png"}},
	)
	html := renderFor(t, cat, t.TempDir())

	assert.Contains(t, html, "Catalog integrity")
	assert.Contains(t, html, "TC001 defined more than once")
	assert.Contains(t, html, "<code>b.png</code>")
	assert.NotContains(t, html, "<code>a.png</code>")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "2.0 MB", formatSize(2*1024*1024))
}
