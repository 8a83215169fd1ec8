// Package core provides the shared vocabulary of uireport: exception tags,
// run outcomes and screenshot file types.
package core

import (
	"path/filepath"
	"strings"
)

// Common content types
const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
)

// DefaultImageExtensions is the screenshot extension allow-list, in scan order.
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg"}

// ContentTypeFor returns the MIME type for a screenshot file name.
// Unknown extensions are reported as PNG, which is what the harness writes.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	default:
		return ContentTypePNG
	}
}

// NormalizeExtensions lower-cases extensions and adds a leading dot when
// missing. Empty input yields DefaultImageExtensions.
func NormalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return append([]string(nil), DefaultImageExtensions...)
	}
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// HasExtension reports whether name ends with ext, ignoring case.
func HasExtension(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
