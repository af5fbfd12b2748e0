// Package extract pulls line-oriented text out of budget PDFs so the
// parser can work from plain text regardless of how the document was
// published.
package extract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts the text of the PDF at path, one output line per
// visual row, pages in order. Pages that fail to decode are skipped
// with a warning rather than aborting the whole document.
func Text(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	pages := r.NumPage()
	for n := 1; n <= pages; n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			slog.Warn("page text extraction failed", "page", n, "error", err)
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteByte('\n')
		}
	}

	slog.Info("pdf text extracted", "path", path, "pages", pages)
	return b.String(), nil
}

// TextToFile extracts the PDF at src and writes the text to dst.
func TextToFile(src, dst string) error {
	text, err := Text(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
