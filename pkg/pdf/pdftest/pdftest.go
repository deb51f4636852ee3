// Package pdftest writes small uncompressed PDF files for tests. Text is set
// in Courier, so every glyph is 0.6em wide.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Page size used for every page (A4)
const (
	PageWidth  = 595.0
	PageHeight = 842.0
)

// Builder accumulates pages and writes them as one PDF
type Builder struct {
	pages   []*Page
	title   string
	inherit bool
}

// Page collects content stream operators for one page
type Page struct {
	content bytes.Buffer
}

// New creates an empty builder
func New() *Builder {
	return &Builder{}
}

// Title sets the document information Title entry
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// InheritMediaBox moves the MediaBox from each page onto the Pages node
func (b *Builder) InheritMediaBox() *Builder {
	b.inherit = true
	return b
}

// AddPage appends a page and returns it
func (b *Builder) AddPage() *Page {
	p := &Page{}
	b.pages = append(b.pages, p)
	return p
}

// Text shows s with its baseline at (x, y), PDF user space
func (p *Page) Text(x, y, size float64, s string) *Page {
	fmt.Fprintf(&p.content, "BT /F1 %.2f Tf %.2f %.2f Td (%s) Tj ET\n", size, x, y, escape(s))
	return p
}

// Rect strokes a rectangle with lower-left corner (x, y)
func (p *Page) Rect(x, y, w, h float64) *Page {
	fmt.Fprintf(&p.content, "%.2f %.2f %.2f %.2f re S\n", x, y, w, h)
	return p
}

// Line strokes a single segment
func (p *Page) Line(x0, y0, x1, y1 float64) *Page {
	fmt.Fprintf(&p.content, "%.2f %.2f m %.2f %.2f l S\n", x0, y0, x1, y1)
	return p
}

// Grid describes a ruled table. Left and Top give the top-left corner in
// PDF user space; each cell is stroked as its own rectangle.
type Grid struct {
	Left      float64
	Top       float64
	Widths    []float64
	RowHeight float64
	FontSize  float64
}

// Table draws rows as a ruled grid. A cell may hold several lines
// separated by "\n"; RowHeight must leave room for them.
func (p *Page) Table(g Grid, rows [][]string) *Page {
	size := g.FontSize
	if size == 0 {
		size = 8
	}
	for r, row := range rows {
		y := g.Top - float64(r+1)*g.RowHeight
		x := g.Left
		for c, w := range g.Widths {
			p.Rect(x, y, w, g.RowHeight)
			if c < len(row) {
				for k, line := range strings.Split(row[c], "\n") {
					if line == "" {
						continue
					}
					baseline := y + g.RowHeight - float64(k+1)*(size+2)
					p.Text(x+2, baseline, size, line)
				}
			}
			x += w
		}
	}
	return p
}

// Bytes renders the document
func (b *Builder) Bytes() []byte {
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(b.pages))
	for i := range b.pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	mediaBox := fmt.Sprintf("/MediaBox [0 0 %.0f %.0f]", PageWidth, PageHeight)
	pagesBox, pageBox := "", mediaBox
	if b.inherit {
		pagesBox, pageBox = " "+mediaBox, ""
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d%s >>", strings.Join(kids, " "), len(b.pages), pagesBox))

	widths := strings.TrimSpace(strings.Repeat("600 ", 95))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths ["+widths+"] >>")

	for i, p := range b.pages {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R %s /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			pageBox, 5+2*i))
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", p.content.Len(), p.content.String()))
	}

	info := 0
	if b.title != "" {
		objects = append(objects, fmt.Sprintf("<< /Title (%s) /Producer (pdftest) >>", escape(b.title)))
		info = len(objects)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}

	out.WriteString("trailer\n")
	if info > 0 {
		fmt.Fprintf(&out, "<< /Size %d /Root 1 0 R /Info %d 0 R >>\n", len(objects)+1, info)
	} else {
		fmt.Fprintf(&out, "<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	}
	fmt.Fprintf(&out, "startxref\n%d\n%%%%EOF\n", xref)

	return out.Bytes()
}

// WriteFile renders the document to path
func (b *Builder) WriteFile(path string) error {
	return os.WriteFile(path, b.Bytes(), 0o644)
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
