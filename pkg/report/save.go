package report

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultDirName is the directory reports are saved to when none is given.
const DefaultDirName = "accessibility_reports"

const maxDomainLen = 20

// DefaultDir returns DefaultDirName under the working directory.
func DefaultDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, DefaultDirName), nil
}

// Filename builds the automatic file name for a report of pageURL
// rendered as f at t.
func Filename(pageURL string, f Format, t time.Time) string {
	return fmt.Sprintf("accessibility_report_%s_%s.%s",
		sanitizeDomain(pageURL), t.Format("20060102_150405"), f.Extension())
}

func sanitizeDomain(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "website"
	}
	host := strings.ToLower(u.Host)
	host = strings.ReplaceAll(host, "www.", "")
	host = strings.ReplaceAll(host, ".", "_")

	var b strings.Builder
	n := 0
	for _, c := range host {
		if n == maxDomainLen {
			break
		}
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			b.WriteRune(c)
			n++
		}
	}
	if b.Len() == 0 {
		return "website"
	}
	return b.String()
}

// Save renders r as f into dir and returns the written path. An empty dir
// means DefaultDir; an empty filename is generated with Filename. Only the
// base name of a supplied filename is used.
func Save(r *Report, f Format, dir, filename string) (string, error) {
	renderer, err := RendererFor(f)
	if err != nil {
		return "", err
	}

	if dir == "" {
		if dir, err = DefaultDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if filename == "" {
		filename = Filename(r.URL, f, r.Timestamp)
	} else {
		filename = filepath.Base(filename)
	}
	path := filepath.Join(dir, filename)

	file, err := os.Create(path) //nolint:gosec // G304: path is built from a sanitized base name
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := renderer.Render(file, r); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to render %s report: %w", f, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}
