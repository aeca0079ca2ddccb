// Package toc implements the editable text form of a PDF table of contents.
//
// A table of contents moves through three shapes: the indented text format
// that users edit, a flat sequence of leveled entries, and the outline tree
// stored inside a PDF document. This package owns the first two shapes and
// the conversions between all three; writing the tree into an actual
// document is the job of the pdfdoc package.
package toc

// NoOffset marks an entry or node without a vertical position.
const NoOffset = -1

// Entry is one line of a table of contents: a title, its nesting level,
// and the location it points at.
type Entry struct {
	Title string
	Level int // 1 = top level
	Page  int // 1-indexed

	// Offset is the vertical position of the target, in points measured
	// from the top edge of the page. NoOffset means "top of page".
	Offset float64
}

// Node is one node of the tree-shaped outline as stored in a document.
// Nesting is structural: each node owns its children.
type Node struct {
	Title    string
	Page     int
	Offset   float64 // NoOffset when absent
	Children []*Node
}
