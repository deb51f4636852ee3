package pdf

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// US Letter, used when a page has no MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// rawText is a shown glyph run in PDF user space (bottom-left origin)
type rawText struct {
	font     string
	fontSize float64
	x, y     float64
	w        float64
	s        string
}

// rawRect is a rectangle in PDF user space (bottom-left origin)
type rawRect struct {
	x0, y0, x1, y1 float64
}

// rawPage is what a backend hands over before coordinates are flipped
type rawPage struct {
	width, height float64
	texts         []rawText
	rects         []rawRect
}

// page implements the Page interface for every backend
type page struct {
	pageNumber int
	width      float64
	height     float64
	bbox       BoundingBox
	objects    Objects

	// baseline of a space glyph not yet attached to a following char
	pendingSpace  bool
	pendingSpaceY float64
}

// newPage converts backend output into top-left origin objects
func newPage(pageNumber int, raw rawPage) *page {
	p := &page{
		pageNumber: pageNumber,
		width:      raw.width,
		height:     raw.height,
		bbox:       BoundingBox{X0: 0, Y0: 0, X1: raw.width, Y1: raw.height},
	}

	for _, text := range raw.texts {
		p.addText(text)
	}

	for _, r := range raw.rects {
		rect := RectObject{
			X0: math.Min(r.x0, r.x1),
			Y0: p.height - math.Max(r.y0, r.y1),
			X1: math.Max(r.x0, r.x1),
			Y1: p.height - math.Min(r.y0, r.y1),
		}
		// page backgrounds and frames are not table rulings
		if rect.GetBBox().Width() >= p.width*0.95 && rect.GetBBox().Height() >= p.height*0.95 {
			continue
		}
		p.objects.Rects = append(p.objects.Rects, rect)
	}

	return p
}

// addText splits a glyph run into characters. Y is flipped so that it grows
// downward; the glyph box spans from 0.8em above the baseline to 0.2em below.
func (p *page) addText(text rawText) {
	chars := []rune(norm.NFKC.String(text.s))
	if len(chars) == 0 {
		return
	}

	fontSize := text.fontSize
	if fontSize <= 0 {
		fontSize = 1
	}
	top := p.height - (text.y + fontSize*0.8)
	charWidth := text.w / float64(len(chars))
	x := text.x

	for _, ch := range chars {
		if ch == ' ' || ch == '\n' || ch == '\r' || ch == '\t' {
			p.pendingSpace = true
			p.pendingSpaceY = text.y
			x += charWidth
			continue
		}
		p.objects.Chars = append(p.objects.Chars, CharObject{
			Text:        string(ch),
			Font:        text.font,
			FontSize:    fontSize,
			X0:          x,
			Y0:          top,
			X1:          x + charWidth,
			Y1:          top + fontSize,
			SpaceBefore: p.pendingSpace && math.Abs(text.y-p.pendingSpaceY) <= fontSize/2,
		})
		p.pendingSpace = false
		x += charWidth
	}
}

// Number returns the page number (1-based)
func (p *page) Number() int {
	return p.pageNumber
}

// Width returns the page width
func (p *page) Width() float64 {
	return p.width
}

// Height returns the page height
func (p *page) Height() float64 {
	return p.height
}

// Objects returns all objects on the page
func (p *page) Objects() Objects {
	return p.objects
}

// ExtractText extracts text from the page, one line per row of glyphs
func (p *page) ExtractText(opts ...TextExtractionOption) string {
	config := newTextExtractionConfig(opts)

	lines := groupCharsIntoLines(p.objects.Chars, config.YTolerance)
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := joinChars(line, config.XTolerance); text != "" {
			texts = append(texts, text)
		}
	}

	return strings.Join(texts, "\n")
}

// ExtractWords extracts individual words from the page
func (p *page) ExtractWords(opts ...TextExtractionOption) []Word {
	config := newTextExtractionConfig(opts)

	var words []Word
	for _, line := range groupCharsIntoLines(p.objects.Chars, config.YTolerance) {
		words = append(words, wordsFromLine(line, config.XTolerance)...)
	}
	return words
}

// ExtractTables extracts tables from the page
func (p *page) ExtractTables(opts ...TableExtractionOption) []Table {
	return newTableExtractor(p, opts...).ExtractTables()
}

// Crop returns a new page restricted to objects intersecting bbox
func (p *page) Crop(bbox BoundingBox) Page {
	cropped := &page{
		pageNumber: p.pageNumber,
		width:      p.width,
		height:     p.height,
		bbox:       bbox,
	}

	for _, obj := range p.objects.Chars {
		if bbox.Intersects(obj.GetBBox()) {
			cropped.objects.Chars = append(cropped.objects.Chars, obj)
		}
	}
	for _, obj := range p.objects.Lines {
		if bbox.Intersects(obj.GetBBox()) {
			cropped.objects.Lines = append(cropped.objects.Lines, obj)
		}
	}
	for _, obj := range p.objects.Rects {
		if bbox.Intersects(obj.GetBBox()) {
			cropped.objects.Rects = append(cropped.objects.Rects, obj)
		}
	}

	return cropped
}

// groupCharsIntoLines sorts characters top to bottom and groups those whose
// tops are within tolerance. Each returned line is sorted left to right.
func groupCharsIntoLines(chars []CharObject, tolerance float64) [][]CharObject {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]CharObject, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y0 < sorted[j].Y0
	})

	var lines [][]CharObject
	current := []CharObject{sorted[0]}
	currentY := sorted[0].Y0

	for _, char := range sorted[1:] {
		if math.Abs(char.Y0-currentY) > tolerance {
			lines = append(lines, current)
			current = []CharObject{char}
			currentY = char.Y0
			continue
		}
		current = append(current, char)
	}
	lines = append(lines, current)

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].X0 < line[j].X0
		})
	}

	return lines
}

// wordBreak reports whether line[i] starts a new word
func wordBreak(line []CharObject, i int, xTolerance float64) bool {
	return line[i].SpaceBefore || line[i].X0-line[i-1].X1 > xTolerance
}

// joinChars concatenates a sorted line, inserting one space per break
func joinChars(line []CharObject, xTolerance float64) string {
	var text strings.Builder
	for i, char := range line {
		if i > 0 && wordBreak(line, i, xTolerance) {
			text.WriteByte(' ')
		}
		text.WriteString(char.Text)
	}
	return text.String()
}

// wordsFromLine splits a sorted line at space glyphs and horizontal gaps
func wordsFromLine(line []CharObject, xTolerance float64) []Word {
	var words []Word
	start := 0
	for i := 1; i <= len(line); i++ {
		if i == len(line) || wordBreak(line, i, xTolerance) {
			words = append(words, createWord(line[start:i]))
			start = i
		}
	}
	return words
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	minX, minY := chars[0].X0, chars[0].Y0
	maxX, maxY := chars[0].X1, chars[0].Y1

	for _, char := range chars {
		text.WriteString(char.Text)
		minX = math.Min(minX, char.X0)
		minY = math.Min(minY, char.Y0)
		maxX = math.Max(maxX, char.X1)
		maxY = math.Max(maxY, char.Y1)
	}

	own := make([]CharObject, len(chars))
	copy(own, chars)

	return Word{
		Text:       text.String(),
		X0:         minX,
		Y0:         minY,
		X1:         maxX,
		Y1:         maxY,
		Characters: own,
	}
}
