package report

import (
	"bytes"
	"fmt"
	"io"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownRenderer writes the HTML report body converted to Markdown.
type MarkdownRenderer struct{}

// Format implements Renderer.
func (MarkdownRenderer) Format() Format { return FormatMarkdown }

// Render implements Renderer.
func (MarkdownRenderer) Render(w io.Writer, r *Report) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "body", newTemplateData(r)); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return fmt.Errorf("failed to convert report to markdown: %w", err)
	}
	if _, err := io.WriteString(w, md+"\n"); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}
