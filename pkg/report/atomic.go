package report

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// lockFileName guards the reports directory against concurrent writers.
const lockFileName = ".uireport.lock"

// Write stores content as dir/name. The write is atomic (temp file, then
// rename) and serialised with other uireport processes through a lock file
// in dir. Returns the absolute path written.
func Write(dir, name string, content []byte) (string, error) {
	return writeLocked(dir, name, content, false)
}

// WriteNew is like Write but never replaces an existing file: when dir/name
// exists, a numeric suffix is added before the extension (name_2.html,
// name_3.html, ...). The name is chosen while the lock is held.
func WriteNew(dir, name string, content []byte) (string, error) {
	return writeLocked(dir, name, content, true)
}

func writeLocked(dir, name string, content []byte, unique bool) (string, error) {
	if err := ensureDir(dir); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock reports directory: %w", err)
	}
	defer lock.Unlock()

	if unique {
		name = freeName(dir, name)
	}
	path := filepath.Join(dir, name)
	if err := atomicWriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}

// freeName returns name, or the first name_N variant not present in dir.
func freeName(dir, name string) string {
	if _, err := os.Lstat(filepath.Join(dir, name)); os.IsNotExist(err) {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Lstat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
	}
}

// FileName builds <browser>_test_report_<YYYYMMDD_HHMMSS>.<ext>.
func FileName(browser string, t time.Time, ext string) string {
	prefix := "test_report"
	if browser != "" {
		prefix = browser + "_" + prefix
	}
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

// CountReports returns the number of HTML reports in dir. A missing or
// unreadable directory counts as zero.
func CountReports(dir string) int {
	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return 0
	}
	return len(matches)
}

// atomicWriteFile writes data to a file atomically.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return err
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// On Windows, rename fails if target exists
	if runtime.GOOS == "windows" {
		os.Remove(path)
	}

	return os.Rename(tmpPath, path)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
