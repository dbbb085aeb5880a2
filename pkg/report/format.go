package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedFormat is returned for an unknown report format.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Format names a report renderer.
type Format string

// Report formats.
const (
	FormatConsole  Format = "console"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatConsole, FormatJSON, FormatHTML, FormatMarkdown, FormatPDF}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console", "text":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension used when saving the format.
func (f Format) Extension() string {
	switch f {
	case FormatConsole:
		return "txt"
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// Binary reports whether the format cannot be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatPDF
}

// Renderer writes a report in one format.
type Renderer interface {
	Format() Format
	Render(w io.Writer, r *Report) error
}

// RendererFor returns the renderer for f. The console renderer is returned
// without color.
func RendererFor(f Format) (Renderer, error) {
	switch f {
	case FormatConsole:
		return NewConsoleRenderer(false), nil
	case FormatJSON:
		return JSONRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	case FormatPDF:
		return PDFRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
