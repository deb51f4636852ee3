package pdf

import (
	"math"
	"sort"
)

// Tolerance for floating point comparisons
const FloatTolerance = 0.1

// segment is an axis-aligned ruling. For horizontal segments pos is Y and
// start/end are X; for vertical segments pos is X and start/end are Y.
type segment struct {
	pos   float64
	start float64
	end   float64
}

func (s segment) length() float64 {
	return s.end - s.start
}

// covers reports whether the segment spans v, within tolerance
func (s segment) covers(v, tolerance float64) bool {
	return v >= s.start-tolerance && v <= s.end+tolerance
}

// splitSegments classifies lines and rectangle edges into horizontal and
// vertical segments, dropping diagonals and anything shorter than minLength
func splitSegments(lines []LineObject, rects []RectObject, tolerance, minLength float64) (h, v []segment) {
	all := make([]LineObject, 0, len(lines)+4*len(rects))
	all = append(all, lines...)
	for _, rect := range rects {
		all = append(all, rect.Edges()...)
	}

	for _, line := range all {
		bbox := line.GetBBox()
		switch {
		case line.IsHorizontal(tolerance):
			s := segment{pos: (line.Y0 + line.Y1) / 2, start: bbox.X0, end: bbox.X1}
			if s.length() >= minLength {
				h = append(h, s)
			}
		case line.IsVertical(tolerance):
			s := segment{pos: (line.X0 + line.X1) / 2, start: bbox.Y0, end: bbox.Y1}
			if s.length() >= minLength {
				v = append(v, s)
			}
		}
	}

	return h, v
}

// snapSegments moves segments whose positions lie within tolerance of each
// other onto their mean position
func snapSegments(segments []segment, tolerance float64) []segment {
	if len(segments) == 0 {
		return segments
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].pos < segments[j].pos
	})

	start := 0
	sum := segments[0].pos
	flush := func(end int) {
		mean := sum / float64(end-start)
		for k := start; k < end; k++ {
			segments[k].pos = mean
		}
	}

	for i := 1; i < len(segments); i++ {
		if segments[i].pos-segments[i-1].pos > tolerance {
			flush(i)
			start = i
			sum = 0
		}
		sum += segments[i].pos
	}
	flush(len(segments))

	return segments
}

// mergeSegments joins collinear segments that overlap or are separated by
// less than tolerance. Input must already be snapped.
func mergeSegments(segments []segment, tolerance float64) []segment {
	if len(segments) == 0 {
		return segments
	}

	sort.Slice(segments, func(i, j int) bool {
		if math.Abs(segments[i].pos-segments[j].pos) > FloatTolerance {
			return segments[i].pos < segments[j].pos
		}
		return segments[i].start < segments[j].start
	})

	result := []segment{}
	current := segments[0]

	for _, s := range segments[1:] {
		if math.Abs(s.pos-current.pos) <= FloatTolerance && s.start <= current.end+tolerance {
			current.end = math.Max(current.end, s.end)
			continue
		}
		result = append(result, current)
		current = s
	}
	result = append(result, current)

	return result
}

// uniquePositions returns the sorted distinct positions of segments
func uniquePositions(segments []segment) []float64 {
	positions := make([]float64, 0, len(segments))
	for _, s := range segments {
		positions = append(positions, s.pos)
	}
	sort.Float64s(positions)

	result := positions[:0]
	for i, p := range positions {
		if i == 0 || p-result[len(result)-1] > FloatTolerance {
			result = append(result, p)
		}
	}
	return result
}

// intervalIndex returns i such that bounds[i] <= v < bounds[i+1], or -1
func intervalIndex(bounds []float64, v float64) int {
	if len(bounds) < 2 || v < bounds[0] || v > bounds[len(bounds)-1] {
		return -1
	}
	i := sort.SearchFloat64s(bounds, v)
	if i < len(bounds) && bounds[i] == v {
		if i == len(bounds)-1 {
			return i - 1
		}
		return i
	}
	return i - 1
}

// unionFind is a disjoint set keeping the smallest index as root
type unionFind []int

func newUnionFind(n int) unionFind {
	u := make(unionFind, n)
	for i := range u {
		u[i] = i
	}
	return u
}

func (u unionFind) find(i int) int {
	for u[i] != i {
		u[i] = u[u[i]]
		i = u[i]
	}
	return i
}

func (u unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u[rb] = ra
	} else {
		u[ra] = rb
	}
}
