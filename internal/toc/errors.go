package toc

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed line in the ToC text format.
type FormatError struct {
	Line int // 1-based line number (entry number when raised by Build)
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// RangeError reports an entry whose page number lies outside the document.
type RangeError struct {
	Title     string
	Page      int
	PageCount int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("page %d out of range [1, %d] for entry %q",
		e.Page, e.PageCount, e.Title)
}

// CharProblem identifies the unrepresentable characters of a single entry.
type CharProblem struct {
	Entry     int // 1-based entry number
	Title     string
	Positions []int // byte offsets into Title
}

// EncodingError reports every entry whose title cannot be represented in
// the encoding the outline writer would use. Problems are collected across
// the whole sequence so a single run surfaces all of them.
type EncodingError struct {
	Problems []CharProblem
}

func (e *EncodingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d title(s) contain characters that cannot be stored in a PDF outline", len(e.Problems))
	for i, p := range e.Problems {
		if i == 3 {
			fmt.Fprintf(&b, "; and %d more", len(e.Problems)-i)
			break
		}
		fmt.Fprintf(&b, "; entry %d %q", p.Entry, p.Title)
	}
	return b.String()
}
