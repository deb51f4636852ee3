package pdf

import (
	"math"
)

// ObjectType represents the type of a page object
type ObjectType string

const (
	ObjectTypeChar ObjectType = "char"
	ObjectTypeLine ObjectType = "line"
	ObjectTypeRect ObjectType = "rect"
)

// BoundingBox represents a rectangular area in top-left origin coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Center returns the centre point of the bounding box
func (b BoundingBox) Center() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Backend  string // library that produced the page objects
}

// Objects represents the objects found on a page
type Objects struct {
	Chars []CharObject
	Lines []LineObject
	Rects []RectObject
}

// CharObject represents a single glyph on the page
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64

	// SpaceBefore is set when a space glyph preceded this char on the same baseline
	SpaceBefore bool
}

// GetType returns the object type
func (c CharObject) GetType() ObjectType {
	return ObjectTypeChar
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// Width returns the advance width of the glyph
func (c CharObject) Width() float64 {
	return c.X1 - c.X0
}

// LineObject represents a stroked straight segment
type LineObject struct {
	X0    float64
	Y0    float64
	X1    float64
	Y1    float64
	Width float64
}

// GetType returns the object type
func (l LineObject) GetType() ObjectType {
	return ObjectTypeLine
}

// GetBBox returns the line's bounding box
func (l LineObject) GetBBox() BoundingBox {
	return BoundingBox{
		X0: math.Min(l.X0, l.X1),
		Y0: math.Min(l.Y0, l.Y1),
		X1: math.Max(l.X0, l.X1),
		Y1: math.Max(l.Y0, l.Y1),
	}
}

// IsHorizontal reports whether the segment is horizontal within tolerance
func (l LineObject) IsHorizontal(tolerance float64) bool {
	return math.Abs(l.Y0-l.Y1) <= tolerance
}

// IsVertical reports whether the segment is vertical within tolerance
func (l LineObject) IsVertical(tolerance float64) bool {
	return math.Abs(l.X0-l.X1) <= tolerance
}

// RectObject represents a rectangle appended to a path with the re operator
type RectObject struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// GetType returns the object type
func (r RectObject) GetType() ObjectType {
	return ObjectTypeRect
}

// GetBBox returns the rectangle's bounding box
func (r RectObject) GetBBox() BoundingBox {
	return BoundingBox{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

// Edges returns the four sides of the rectangle as line segments
func (r RectObject) Edges() []LineObject {
	return []LineObject{
		{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y0},
		{X0: r.X0, Y0: r.Y1, X1: r.X1, Y1: r.Y1},
		{X0: r.X0, Y0: r.Y0, X1: r.X0, Y1: r.Y1},
		{X0: r.X1, Y0: r.Y0, X1: r.X1, Y1: r.Y1},
	}
}

// Word represents a run of characters without a gap
type Word struct {
	Text       string
	X0         float64
	Y0         float64
	X1         float64
	Y1         float64
	Characters []CharObject
}

// GetBBox returns the word's bounding box
func (w Word) GetBBox() BoundingBox {
	return BoundingBox{X0: w.X0, Y0: w.Y0, X1: w.X1, Y1: w.Y1}
}

// Table represents an extracted table. Empty cells are empty strings.
type Table struct {
	Rows [][]string
	BBox BoundingBox
}

// Table extraction strategies
const (
	StrategyAuto    = "auto"    // lattice, then stream when no ruled table is found
	StrategyLattice = "lattice" // ruling lines only
	StrategyStream  = "stream"  // text alignment only
)

// TextExtractionOption is a function that modifies text extraction behavior
type TextExtractionOption func(*textExtractionConfig)

type textExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

func newTextExtractionConfig(opts []TextExtractionOption) *textExtractionConfig {
	config := &textExtractionConfig{
		XTolerance: 3.0,
		YTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithXTolerance sets the horizontal gap above which a space is inserted
func WithXTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the vertical distance under which glyphs share a line
func WithYTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.YTolerance = tolerance
	}
}

// TableExtractionOption is a function that modifies table extraction behavior
type TableExtractionOption func(*tableExtractionConfig)

type tableExtractionConfig struct {
	Strategy      string
	MinTableSize  int
	TextTolerance float64
	SnapTolerance float64
}

func newTableExtractionConfig(opts []TableExtractionOption) *tableExtractionConfig {
	config := &tableExtractionConfig{
		Strategy:      StrategyAuto,
		MinTableSize:  3,
		TextTolerance: 3.0,
		SnapTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithTableStrategy selects StrategyAuto, StrategyLattice or StrategyStream
func WithTableStrategy(strategy string) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.Strategy = strategy
	}
}

// WithMinTableSize sets the minimum number of rows for a table
func WithMinTableSize(rows int) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.MinTableSize = rows
	}
}

// WithTextTolerance sets the tolerance used when assembling cell text
func WithTextTolerance(tolerance float64) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.TextTolerance = tolerance
	}
}

// WithSnapTolerance sets the distance under which ruling lines are merged
func WithSnapTolerance(tolerance float64) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.SnapTolerance = tolerance
	}
}
