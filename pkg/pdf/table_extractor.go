package pdf

import (
	"math"
	"sort"
	"strings"
)

// tableExtractor handles table extraction from PDF pages
type tableExtractor struct {
	page          Page
	strategy      string
	minTableSize  int
	textTolerance float64
	snapTolerance float64
	joinTolerance float64
}

// newTableExtractor creates a new table extractor with default settings
func newTableExtractor(page Page, opts ...TableExtractionOption) *tableExtractor {
	config := newTableExtractionConfig(opts)

	return &tableExtractor{
		page:          page,
		strategy:      config.Strategy,
		minTableSize:  config.MinTableSize,
		textTolerance: config.TextTolerance,
		snapTolerance: config.SnapTolerance,
		joinTolerance: config.SnapTolerance,
	}
}

// ExtractTables extracts tables from the page, top to bottom
func (te *tableExtractor) ExtractTables() []Table {
	objects := te.page.Objects()

	var tables []Table
	if te.strategy != StrategyStream {
		tables = te.extractLatticeTables(objects)
	}

	if len(tables) == 0 && te.strategy != StrategyLattice {
		tables = te.extractStreamTables(objects)
	}

	sort.SliceStable(tables, func(i, j int) bool {
		if math.Abs(tables[i].BBox.Y0-tables[j].BBox.Y0) > te.snapTolerance {
			return tables[i].BBox.Y0 < tables[j].BBox.Y0
		}
		return tables[i].BBox.X0 < tables[j].BBox.X0
	})

	return tables
}

// lattice is one connected network of ruling segments
type lattice struct {
	h, v []segment
}

// extractLatticeTables finds tables delimited by ruling lines and rectangle
// edges. Each connected network of rulings becomes one table whose grid is
// the distinct X positions of its vertical rulings and Y positions of its
// horizontal ones.
func (te *tableExtractor) extractLatticeTables(objects Objects) []Table {
	h, v := splitSegments(objects.Lines, objects.Rects, te.snapTolerance, te.snapTolerance)
	if len(h) < 2 || len(v) < 2 {
		return nil
	}

	h = mergeSegments(snapSegments(h, te.snapTolerance), te.joinTolerance)
	v = mergeSegments(snapSegments(v, te.snapTolerance), te.joinTolerance)

	var tables []Table
	for _, l := range te.connectedLattices(h, v) {
		if table, ok := te.tableFromLattice(l, objects.Chars); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// connectedLattices groups segments that touch each other
func (te *tableExtractor) connectedLattices(h, v []segment) []lattice {
	uf := newUnionFind(len(h) + len(v))
	for i, hs := range h {
		for j, vs := range v {
			if hs.covers(vs.pos, te.snapTolerance) && vs.covers(hs.pos, te.snapTolerance) {
				uf.union(i, len(h)+j)
			}
		}
	}

	byRoot := map[int]*lattice{}
	var roots []int
	get := func(i int) *lattice {
		root := uf.find(i)
		l, ok := byRoot[root]
		if !ok {
			l = &lattice{}
			byRoot[root] = l
			roots = append(roots, root)
		}
		return l
	}
	for i, hs := range h {
		l := get(i)
		l.h = append(l.h, hs)
	}
	for j, vs := range v {
		l := get(len(h) + j)
		l.v = append(l.v, vs)
	}

	sort.Ints(roots)
	result := make([]lattice, 0, len(roots))
	for _, root := range roots {
		if l := byRoot[root]; len(l.h) >= 2 && len(l.v) >= 2 {
			result = append(result, *l)
		}
	}
	return result
}

// tableFromLattice builds the cell grid of a lattice. Cells whose shared
// border is missing are merged; the merged text goes to the top-left cell
// and the others stay empty.
func (te *tableExtractor) tableFromLattice(l lattice, chars []CharObject) (Table, bool) {
	xs := uniquePositions(l.v)
	ys := uniquePositions(l.h)
	rows, cols := len(ys)-1, len(xs)-1
	if rows < te.minTableSize || cols < 1 {
		return Table{}, false
	}

	cell := func(r, c int) int { return r*cols + c }
	owners := newUnionFind(rows * cols)
	for r := 0; r < rows; r++ {
		midY := (ys[r] + ys[r+1]) / 2
		for c := 0; c < cols; c++ {
			midX := (xs[c] + xs[c+1]) / 2
			if c > 0 && !te.hasRuling(l.v, xs[c], midY) {
				owners.union(cell(r, c-1), cell(r, c))
			}
			if r > 0 && !te.hasRuling(l.h, ys[r], midX) {
				owners.union(cell(r-1, c), cell(r, c))
			}
		}
	}

	cellChars := make(map[int][]CharObject)
	for _, char := range chars {
		cx, cy := char.GetBBox().Center()
		c, r := intervalIndex(xs, cx), intervalIndex(ys, cy)
		if c < 0 || r < 0 {
			continue
		}
		owner := owners.find(cell(r, c))
		cellChars[owner] = append(cellChars[owner], char)
	}

	table := Table{
		Rows: make([][]string, rows),
		BBox: BoundingBox{X0: xs[0], Y0: ys[0], X1: xs[cols], Y1: ys[rows]},
	}
	for r := range table.Rows {
		table.Rows[r] = make([]string, cols)
		for c := range table.Rows[r] {
			if owners.find(cell(r, c)) == cell(r, c) {
				table.Rows[r][c] = te.cellText(cellChars[cell(r, c)])
			}
		}
	}

	return table, true
}

// hasRuling reports whether a segment at pos spans the point along
func (te *tableExtractor) hasRuling(segments []segment, pos, along float64) bool {
	for _, s := range segments {
		if math.Abs(s.pos-pos) <= FloatTolerance && s.covers(along, te.snapTolerance) {
			return true
		}
	}
	return false
}

// cellText assembles the characters of a cell into lines joined by newlines
func (te *tableExtractor) cellText(chars []CharObject) string {
	lines := groupCharsIntoLines(chars, te.textTolerance)
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := strings.TrimSpace(joinChars(line, te.textTolerance)); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

// wordLine is a row of words sharing a baseline
type wordLine struct {
	Words []Word
	Y     float64
	BBox  BoundingBox
}

// extractStreamTables detects a table from text alignment alone: word
// starts shared by enough lines become column boundaries
func (te *tableExtractor) extractStreamTables(objects Objects) []Table {
	var words []Word
	for _, line := range groupCharsIntoLines(objects.Chars, te.textTolerance) {
		words = append(words, wordsFromLine(line, te.textTolerance)...)
	}

	lines := te.groupWordsIntoLines(words)
	if len(lines) < te.minTableSize {
		return nil
	}

	columns := te.findAlignedColumnsFromWords(lines)
	if len(columns) < 2 {
		return nil
	}

	return []Table{te.createTableFromWordLines(lines, columns)}
}

// groupWordsIntoLines groups words into lines based on Y position
func (te *tableExtractor) groupWordsIntoLines(words []Word) []wordLine {
	if len(words) == 0 {
		return nil
	}

	sortedWords := make([]Word, len(words))
	copy(sortedWords, words)
	sort.SliceStable(sortedWords, func(i, j int) bool {
		return sortedWords[i].Y0 < sortedWords[j].Y0
	})

	var lines []wordLine
	currentLine := wordLine{
		Words: []Word{sortedWords[0]},
		Y:     sortedWords[0].Y0,
	}

	for _, word := range sortedWords[1:] {
		if math.Abs(word.Y0-currentLine.Y) <= te.textTolerance {
			currentLine.Words = append(currentLine.Words, word)
			continue
		}
		lines = append(lines, te.finalizeWordLine(currentLine))
		currentLine = wordLine{
			Words: []Word{word},
			Y:     word.Y0,
		}
	}
	lines = append(lines, te.finalizeWordLine(currentLine))

	return lines
}

// finalizeWordLine sorts words left to right and computes the line box
func (te *tableExtractor) finalizeWordLine(line wordLine) wordLine {
	sort.SliceStable(line.Words, func(i, j int) bool {
		return line.Words[i].X0 < line.Words[j].X0
	})

	line.BBox = line.Words[0].GetBBox()
	for _, word := range line.Words[1:] {
		line.BBox.X0 = min(line.BBox.X0, word.X0)
		line.BBox.Y0 = min(line.BBox.Y0, word.Y0)
		line.BBox.X1 = max(line.BBox.X1, word.X1)
		line.BBox.Y1 = max(line.BBox.Y1, word.Y1)
	}

	return line
}

// findAlignedColumnsFromWords finds vertically aligned columns from word positions
func (te *tableExtractor) findAlignedColumnsFromWords(lines []wordLine) []float64 {
	if len(lines) < 2 {
		return nil
	}

	// count each snapped start once per line
	xPositions := make(map[float64]int)
	for _, line := range lines {
		seen := make(map[float64]bool)
		for _, word := range line.Words {
			x := math.Round(word.X0/te.snapTolerance) * te.snapTolerance
			if !seen[x] {
				seen[x] = true
				xPositions[x]++
			}
		}
	}

	// at least 2 lines or 30% of them
	minCount := max(2.0, float64(len(lines)*3/10))

	var columns []float64
	for x, count := range xPositions {
		if float64(count) >= minCount {
			columns = append(columns, x)
		}
	}

	sort.Float64s(columns)
	return columns
}

// createTableFromWordLines creates a table from aligned word lines
func (te *tableExtractor) createTableFromWordLines(lines []wordLine, columns []float64) Table {
	rows := make([][]string, len(lines))

	bbox := lines[0].BBox
	for _, line := range lines[1:] {
		bbox.X0 = min(bbox.X0, line.BBox.X0)
		bbox.Y0 = min(bbox.Y0, line.BBox.Y0)
		bbox.X1 = max(bbox.X1, line.BBox.X1)
		bbox.Y1 = max(bbox.Y1, line.BBox.Y1)
	}

	for i, line := range lines {
		rows[i] = make([]string, len(columns))
		for _, word := range line.Words {
			colIdx := te.findWordColumn(word.X0, columns)
			if colIdx < 0 {
				continue
			}
			if rows[i][colIdx] != "" {
				rows[i][colIdx] += " "
			}
			rows[i][colIdx] += word.Text
		}
	}

	return Table{
		Rows: rows,
		BBox: bbox,
	}
}

// findWordColumn returns the last column starting at or before wordX
func (te *tableExtractor) findWordColumn(wordX float64, columns []float64) int {
	col := -1
	for i, colX := range columns {
		if colX <= wordX+te.snapTolerance {
			col = i
		}
	}
	return col
}
