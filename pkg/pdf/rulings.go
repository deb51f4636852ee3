package pdf

import (
	"bytes"
	"math"
	"strconv"
)

// matrix is a PDF transformation matrix [a b c d e f]
type matrix struct {
	A, B, C, D, E, F float64
}

func identityMatrix() matrix {
	return matrix{A: 1, D: 1}
}

// multiply returns m1 × m2
func (m1 matrix) multiply(m2 matrix) matrix {
	return matrix{
		A: m1.A*m2.A + m1.B*m2.C,
		B: m1.A*m2.B + m1.B*m2.D,
		C: m1.C*m2.A + m1.D*m2.C,
		D: m1.C*m2.B + m1.D*m2.D,
		E: m1.E*m2.A + m1.F*m2.C + m2.E,
		F: m1.E*m2.B + m1.F*m2.D + m2.F,
	}
}

func (m1 matrix) apply(x, y float64) (float64, float64) {
	return m1.A*x + m1.C*y + m1.E, m1.B*x + m1.D*y + m1.F
}

type point struct {
	X, Y float64
}

// subpath is a polyline in user space; closed subpaths get their closing edge
type subpath struct {
	points []point
	closed bool
}

type rulingState struct {
	ctm       matrix
	lineWidth float64
}

// rulingScanner walks a content stream and keeps only what matters for
// table detection: straight stroked segments and thin filled rectangles.
// Text, colour and image operators are skipped.
type rulingScanner struct {
	top      float64
	state    rulingState
	stack    []rulingState
	path     []subpath
	operands []float64
	lines    []LineObject
}

// thinFill is the thickness under which a filled rectangle counts as a line
const thinFill = 2.0

func newRulingScanner(top float64) *rulingScanner {
	return &rulingScanner{
		top:   top,
		state: rulingState{ctm: identityMatrix(), lineWidth: 1},
	}
}

// Scan returns the ruling segments of content in top-left coordinates
func (s *rulingScanner) Scan(content []byte) []LineObject {
	r := bytes.NewReader(content)

	for r.Len() > 0 {
		b, _ := r.ReadByte()
		switch {
		case isWhitespace(b):
		case b == '%':
			skipComment(r)
		case b == '(':
			skipStringLiteral(r)
			s.operands = s.operands[:0]
		case b == '<':
			next, _ := r.ReadByte()
			if next != '<' {
				r.UnreadByte()
				skipUntil(r, '>')
			}
			s.operands = s.operands[:0]
		case b == '>' || b == '[' || b == ']' || b == '{' || b == '}' || b == ')':
		case b == '/':
			readToken(r)
		default:
			r.UnreadByte()
			token := readToken(r)
			if token == "" {
				r.ReadByte()
				continue
			}
			if f, err := strconv.ParseFloat(token, 64); err == nil {
				s.operands = append(s.operands, f)
				continue
			}
			if token == "ID" {
				skipInlineImage(r)
			}
			s.operator(token)
			s.operands = s.operands[:0]
		}
	}

	return s.lines
}

func (s *rulingScanner) operator(op string) {
	args := s.operands
	switch op {
	case "q":
		s.stack = append(s.stack, s.state)
	case "Q":
		if n := len(s.stack); n > 0 {
			s.state = s.stack[n-1]
			s.stack = s.stack[:n-1]
		}
	case "cm":
		if len(args) >= 6 {
			m := matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
			s.state.ctm = m.multiply(s.state.ctm)
		}
	case "w":
		if len(args) >= 1 {
			s.state.lineWidth = args[0]
		}
	case "m":
		if len(args) >= 2 {
			s.path = append(s.path, subpath{points: []point{{args[0], args[1]}}})
		}
	case "l":
		if len(args) >= 2 && len(s.path) > 0 {
			last := &s.path[len(s.path)-1]
			last.points = append(last.points, point{args[0], args[1]})
		}
	case "c", "v", "y":
		// curves break straight rulings; keep only the end point
		if len(args) >= 4 && len(s.path) > 0 {
			last := &s.path[len(s.path)-1]
			last.points = append(last.points, point{args[len(args)-2], args[len(args)-1]})
		}
	case "h":
		if len(s.path) > 0 {
			s.path[len(s.path)-1].closed = true
		}
	case "re":
		if len(args) >= 4 {
			x, y, w, h := args[0], args[1], args[2], args[3]
			s.path = append(s.path, subpath{
				points: []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}},
				closed: true,
			})
		}
	case "S", "s", "B", "B*", "b", "b*":
		if op == "s" || op == "b" || op == "b*" {
			if len(s.path) > 0 {
				s.path[len(s.path)-1].closed = true
			}
		}
		s.stroke()
		s.path = nil
	case "f", "F", "f*":
		s.fill()
		s.path = nil
	case "n":
		s.path = nil
	}
}

// stroke emits every straight segment of the current path
func (s *rulingScanner) stroke() {
	for _, sp := range s.path {
		pts := sp.points
		if sp.closed && len(pts) > 2 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			s.emit(pts[i-1], pts[i])
		}
	}
}

// fill emits thin filled rectangles as a single line along their long side
func (s *rulingScanner) fill() {
	for _, sp := range s.path {
		if len(sp.points) != 4 {
			continue
		}
		minX, minY, maxX, maxY := bounds(sp.points)
		w, h := maxX-minX, maxY-minY
		switch {
		case h <= thinFill && w > h:
			y := (minY + maxY) / 2
			s.emit(point{minX, y}, point{maxX, y})
		case w <= thinFill && h > w:
			x := (minX + maxX) / 2
			s.emit(point{x, minY}, point{x, maxY})
		}
	}
}

func (s *rulingScanner) emit(a, b point) {
	x0, y0 := s.state.ctm.apply(a.X, a.Y)
	x1, y1 := s.state.ctm.apply(b.X, b.Y)
	line := LineObject{X0: x0, Y0: s.top - y0, X1: x1, Y1: s.top - y1, Width: s.state.lineWidth}
	if line.IsHorizontal(FloatTolerance) || line.IsVertical(FloatTolerance) {
		s.lines = append(s.lines, line)
	}
}

func bounds(pts []point) (minX, minY, maxX, maxY float64) {
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return
}

// isWhitespace checks if a byte is PDF whitespace
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

// isDelimiter checks if a byte is a PDF delimiter
func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

func readToken(r *bytes.Reader) string {
	var token []byte
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if isDelimiter(b) || isWhitespace(b) {
			r.UnreadByte()
			break
		}
		token = append(token, b)
	}
	return string(token)
}

func skipComment(r *bytes.Reader) {
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if b == '\n' || b == '\r' {
			return
		}
	}
}

func skipStringLiteral(r *bytes.Reader) {
	depth := 1
	for r.Len() > 0 && depth > 0 {
		b, _ := r.ReadByte()
		switch b {
		case '\\':
			r.ReadByte()
		case '(':
			depth++
		case ')':
			depth--
		}
	}
}

func skipUntil(r *bytes.Reader, end byte) {
	for r.Len() > 0 {
		if b, _ := r.ReadByte(); b == end {
			return
		}
	}
}

// skipInlineImage advances past the binary data of BI ... ID ... EI
func skipInlineImage(r *bytes.Reader) {
	var prev [3]byte
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if isWhitespace(prev[0]) && prev[1] == 'E' && prev[2] == 'I' && isWhitespace(b) {
			return
		}
		prev[0], prev[1], prev[2] = prev[1], prev[2], b
	}
}
