package pdf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrNoBackend is returned when none of the PDF readers could open a file
var ErrNoBackend = errors.New("no PDF backend could read the file")

// backend opens a file and returns its pages as raw objects
type backend struct {
	name string
	open func(path string) (*document, error)
}

var backends = []backend{
	// ledongthuc has the most accurate glyph positions
	{name: "ledongthuc", open: openLedongthuc},
	{name: "dslipak", open: openDslipak},
}

// document implements Document on top of whichever backend read the file
type document struct {
	file     io.Closer
	filepath string
	pages    []Page
	metadata Metadata
}

// Open opens a PDF file and returns a Document. Backends are tried in
// order; pdfcpu then adds metadata and stroked ruling lines.
func Open(filepath string) (Document, error) {
	if _, err := os.Stat(filepath); err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var errs []error
	for _, b := range backends {
		doc, err := b.open(filepath)
		if err != nil {
			slog.Debug("PDF backend failed", "backend", b.name, "path", filepath, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			continue
		}
		doc.metadata.Backend = b.name
		doc.enrichWithPDFCPU()
		return doc, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrNoBackend, errors.Join(errs...))
}

// enrichWithPDFCPU merges pdfcpu metadata and ruling lines into the pages.
// A pdfcpu failure leaves the document as the backend produced it.
func (d *document) enrichWithPDFCPU() {
	info, err := readPDFCPU(d.filepath)
	if err != nil {
		slog.Debug("pdfcpu enrichment skipped", "path", d.filepath, "error", err)
		return
	}

	backendName := d.metadata.Backend
	d.metadata = info.metadata
	d.metadata.Backend = backendName

	for i, p := range d.pages {
		if i >= len(info.rulings) {
			break
		}
		if pg, ok := p.(*page); ok {
			pg.objects.Lines = append(pg.objects.Lines, info.rulings[i]...)
		}
	}
}

// Metadata returns the PDF metadata
func (d *document) Metadata() Metadata {
	return d.metadata
}

// Pages returns all pages in the document
func (d *document) Pages() []Page {
	return d.pages
}

// Page returns a specific page by index (0-based)
func (d *document) Page(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *document) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *document) Close() error {
	d.pages = nil
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// closeOnError releases c when the open failed, including by panic
func closeOnError(c io.Closer, err error) {
	if err != nil && c != nil {
		c.Close()
	}
}

// recoverBackend converts a panic raised by a backend reader into an error.
// The rsc-derived readers panic on malformed content streams.
func recoverBackend(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s reader panicked: %v", name, r)
	}
}
