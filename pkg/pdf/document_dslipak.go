package pdf

import (
	"fmt"
	"os"

	gopdf "github.com/dslipak/pdf"
)

// openDslipak opens a PDF file using the dslipak/pdf library. The page size
// falls back to US Letter when no MediaBox is inherited.
func openDslipak(filepath string) (doc *document, err error) {
	var f *os.File
	defer func() {
		if f != nil {
			closeOnError(f, err)
		}
	}()
	defer recoverBackend("dslipak", &err)

	f, err = os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}
	r, err := gopdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc = &document{file: f, filepath: filepath}

	pageCount := r.NumPage()
	doc.pages = make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.Kind() == gopdf.Null {
			return nil, fmt.Errorf("failed to initialize page %d", i)
		}

		width, height := defaultPageWidth, defaultPageHeight
		mediaBox := dslipakInherited(p.V, "MediaBox")
		if mediaBox.Kind() == gopdf.Array && mediaBox.Len() == 4 {
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

// dslipakInherited looks key up on the page dictionary and then its Parent chain
func dslipakInherited(v gopdf.Value, key string) gopdf.Value {
	for ; !v.IsNull(); v = v.Key("Parent") {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
	}
	return gopdf.Value{}
}
