// Package locator correlates test cases with the screenshots a browser run
// produced for them.
//
// A run directory is an immediate child of the screenshots root named
// <prefix><timestamp>. Only the most recently modified one is considered;
// screenshots from older runs never leak into a report. Within it, a file
// belongs to a case when its name contains one of the case's patterns.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/devicelab-dev/uireport/pkg/core"
	"github.com/devicelab-dev/uireport/pkg/logger"
	"golang.org/x/text/unicode/norm"
)

// Catalog is the subset of *catalog.Catalog the locator needs.
type Catalog interface {
	Patterns(id string) []string
	ExpectedScreenshotNames(id string) []string
}

// ScreenshotRecord is one screenshot correlated to a test case.
type ScreenshotRecord struct {
	Title   string // Pattern that matched, not the file name
	Path    string // Slash-separated path relative to the anchor directory
	AbsPath string
	Exists  bool
	Size    int64
}

// URL returns a file:// URL for the screenshot.
func (r ScreenshotRecord) URL() string {
	return FileURL(r.AbsPath)
}

// ContentType returns the MIME type implied by the file extension.
func (r ScreenshotRecord) ContentType() string {
	return core.ContentTypeFor(r.AbsPath)
}

// FileURL converts an absolute filesystem path into a file:// URL.
func FileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// Options configures a Locator.
type Options struct {
	Root       string   // Screenshots root
	Prefix     string   // Run directory name prefix, e.g. "chrome_"
	Anchor     string   // Directory record paths are made relative to
	Extensions []string // Allow-list in scan order; defaults to png, jpg, jpeg
}

// Locator finds the screenshots of the latest run for a browser.
type Locator struct {
	catalog Catalog
	opts    Options
}

// New creates a Locator. An empty Anchor means paths are relative to Root.
func New(cat Catalog, opts Options) *Locator {
	opts.Extensions = core.NormalizeExtensions(opts.Extensions)
	if opts.Anchor == "" {
		opts.Anchor = opts.Root
	}
	return &Locator{catalog: cat, opts: opts}
}

// Root returns the screenshots root.
func (l *Locator) Root() string { return l.opts.Root }

// RunDirs returns the run directories under the root matching the prefix,
// sorted by name. A missing root yields no directories and no error.
func (l *Locator) RunDirs() ([]string, error) {
	entries, err := l.runDirEntries()
	if err != nil {
		return nil, err
	}
	dirs := make([]string, len(entries))
	for i, e := range entries {
		dirs[i] = filepath.Join(l.opts.Root, e.Name())
	}
	return dirs, nil
}

// CountRunDirs returns len(RunDirs()), or 0 when the root cannot be read.
func (l *Locator) CountRunDirs() int {
	dirs, err := l.RunDirs()
	if err != nil {
		logger.Warn("count run directories in %s: %v", l.opts.Root, err)
		return 0
	}
	return len(dirs)
}

// LatestRunDir returns the matching run directory with the greatest
// modification time, or "" when there is none. Ties go to the directory
// encountered last.
func (l *Locator) LatestRunDir() (string, error) {
	entries, err := l.runDirEntries()
	if err != nil {
		return "", err
	}

	var (
		latest    string
		latestMod time.Time
	)
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			logger.Debug("skip run directory %s: %v", e.Name(), err)
			continue
		}
		if latest == "" || !info.ModTime().Before(latestMod) {
			latest = filepath.Join(l.opts.Root, e.Name())
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}

// Locate returns the screenshots of the latest run that belong to the test
// case, one per matched pattern, in pattern order. Any filesystem error is
// logged and reported as no screenshots.
func (l *Locator) Locate(id string) []ScreenshotRecord {
	records, err := l.locate(id)
	if err != nil {
		logger.Warn("locate screenshots for %s: %v", id, err)
		return nil
	}
	return records
}

// Expected returns placeholder records for the case's expected screenshot
// names. They carry the path each file would have and Exists=false.
func (l *Locator) Expected(id string) []ScreenshotRecord {
	dir := l.opts.Root
	if latest, err := l.LatestRunDir(); err == nil && latest != "" {
		dir = latest
	}

	names := l.catalog.ExpectedScreenshotNames(id)
	records := make([]ScreenshotRecord, 0, len(names))
	for _, name := range names {
		abs := filepath.Join(dir, name)
		records = append(records, ScreenshotRecord{
			Title:   strings.TrimSuffix(name, filepath.Ext(name)),
			Path:    l.relative(abs),
			AbsPath: abs,
		})
	}
	return records
}

func (l *Locator) locate(id string) ([]ScreenshotRecord, error) {
	patterns := l.catalog.Patterns(id)
	if len(patterns) == 0 {
		return nil, nil
	}

	dir, err := l.LatestRunDir()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		logger.Debug("no %s* run directory under %s", l.opts.Prefix, l.opts.Root)
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read run directory: %w", err)
	}
	files := make([]fs.DirEntry, 0, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e)
		names = append(names, norm.NFC.String(e.Name()))
	}

	var records []ScreenshotRecord
	for _, pattern := range patterns {
		if rec, ok := l.match(dir, pattern, files, names); ok {
			records = append(records, rec)
		}
	}
	logger.Debug("%s: %d/%d patterns matched in %s", id, len(records), len(patterns), dir)
	return records, nil
}

// match returns the first file containing pattern, scanning extensions in
// allow-list order.
func (l *Locator) match(dir, pattern string, files []fs.DirEntry, names []string) (ScreenshotRecord, bool) {
	want := norm.NFC.String(pattern)
	for _, ext := range l.opts.Extensions {
		for i, f := range files {
			if !core.HasExtension(names[i], ext) || !strings.Contains(names[i], want) {
				continue
			}
			abs := filepath.Join(dir, f.Name())
			rec := ScreenshotRecord{
				Title:   pattern,
				Path:    l.relative(abs),
				AbsPath: abs,
			}
			if info, err := f.Info(); err == nil {
				rec.Exists = true
				rec.Size = info.Size()
			}
			return rec, true
		}
	}
	return ScreenshotRecord{}, false
}

func (l *Locator) runDirEntries() ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(l.opts.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read screenshots root: %w", err)
	}

	var out []fs.DirEntry
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), l.opts.Prefix) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (l *Locator) relative(abs string) string {
	rel, err := filepath.Rel(l.opts.Anchor, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
