package intake

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// CountPages returns the number of pages in a PDF on disk.
func CountPages(path string) (pages int, err error) {
	// the pdf reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("failed to read pdf: %v", r)
		}
	}()
	file, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()
	return reader.NumPage(), nil
}

// Enrich fills in best-effort metadata for a candidate. Failures are ignored.
func Enrich(c Candidate) Candidate {
	if c.Ext != "pdf" {
		return c
	}
	if pages, err := CountPages(c.Path); err == nil {
		c.Pages = pages
	}
	return c
}
