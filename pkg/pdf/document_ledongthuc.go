package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
)

// openLedongthuc opens a PDF file using the ledongthuc/pdf library
func openLedongthuc(filepath string) (doc *document, err error) {
	var f io.Closer
	defer func() { closeOnError(f, err) }()
	defer recoverBackend("ledongthuc", &err)

	file, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	f = file
	doc = &document{
		file:     file,
		filepath: filepath,
	}

	pageCount := r.NumPage()
	doc.pages = make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			return nil, fmt.Errorf("failed to initialize page %d", i)
		}

		width, height := defaultPageWidth, defaultPageHeight
		mediaBox := ledongthucInherited(p.V, "MediaBox")
		if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
			width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
			height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
		}

		content := p.Content()
		raw := rawPage{width: width, height: height}
		for _, t := range content.Text {
			raw.texts = append(raw.texts, rawText{
				font:     t.Font,
				fontSize: t.FontSize,
				x:        t.X,
				y:        t.Y,
				w:        t.W,
				s:        t.S,
			})
		}
		for _, rc := range content.Rect {
			raw.rects = append(raw.rects, rawRect{
				x0: rc.Min.X, y0: rc.Min.Y,
				x1: rc.Max.X, y1: rc.Max.Y,
			})
		}

		doc.pages = append(doc.pages, newPage(i, raw))
	}

	return doc, nil
}

// ledongthucInherited looks key up on the page dictionary and then its Parent chain
func ledongthucInherited(v lpdf.Value, key string) lpdf.Value {
	for ; !v.IsNull(); v = v.Key("Parent") {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
	}
	return lpdf.Value{}
}
