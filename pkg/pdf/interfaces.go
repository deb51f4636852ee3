package pdf

// Document represents an opened PDF document
type Document interface {
	// Metadata returns the document information dictionary
	Metadata() Metadata

	// Pages returns all pages in the document
	Pages() []Page

	// Page returns a specific page by index (0-based)
	Page(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// Number returns the page number (1-based)
	Number() int

	// Width returns the page width in points
	Width() float64

	// Height returns the page height in points
	Height() float64

	// Objects returns all objects on the page
	Objects() Objects

	// ExtractText returns the page text, one line per text row
	ExtractText(opts ...TextExtractionOption) string

	// ExtractWords returns the words on the page in reading order
	ExtractWords(opts ...TextExtractionOption) []Word

	// ExtractTables returns the tables found on the page, top to bottom
	ExtractTables(opts ...TableExtractionOption) []Table

	// Crop returns a page restricted to the objects inside bbox
	Crop(bbox BoundingBox) Page
}
