// Package pdftext extracts ordered text lines from PDF pages. Nothing
// downstream sees binary PDF structure, only [][]string.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// ExtractPages returns the text lines of each page of the PDF at path, top to
// bottom.
func ExtractPages(path string) (pages [][]string, err error) {
	f, r, err := openFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open PDF: %s", path)
	}
	defer func() { _ = f.Close() }()

	pages, err = extract(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract text from PDF: %s", path)
	}
	return pages, nil
}

// ExtractPagesFromBytes is ExtractPages over an in-memory PDF.
func ExtractPagesFromBytes(data []byte) ([][]string, error) {
	r, err := newReader(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PDF")
	}

	pages, err := extract(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract text from PDF")
	}
	return pages, nil
}

// Lines flattens pages into a single ordered list of lines.
func Lines(pages [][]string) []string {
	var lines []string
	for _, page := range pages {
		lines = append(lines, page...)
	}
	return lines
}

// The pdf package panics on some malformed files.
func openFile(path string) (f interface{ Close() error }, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return file, reader, nil
}

func newReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func extract(r *pdf.Reader) (pages [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed PDF: %v", rec)
		}
	}()

	total := r.NumPage()
	pages = make([][]string, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, []string{})
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, errors.Wrapf(err, "page %d", i)
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, text := range row.Content {
				parts = append(parts, text.S)
			}
			if line := NormalizeLine(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, lines)
	}
	return pages, nil
}

// NormalizeLine applies NFKC so ligatures and compatibility forms become
// plain letters, replaces invalid UTF-8, and collapses runs of spaces.
func NormalizeLine(line string) string {
	line = strings.ToValidUTF8(line, "�")
	line = norm.NFKC.String(line)
	return strings.Join(strings.Fields(line), " ")
}
