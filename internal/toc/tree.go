package toc

import "strings"

// untitledPlaceholder stands in for outline items whose title is empty or
// all whitespace, so that Dump output always parses back.
const untitledPlaceholder = "(untitled)"

// Flatten walks an outline tree in document order and returns the
// corresponding flat entry sequence, with level = depth + 1. The result
// always satisfies the level-consistency and non-empty-title rules
// enforced by Parse.
func Flatten(nodes []*Node) []Entry {
	var entries []Entry
	var walk func(n *Node, level int)
	walk = func(n *Node, level int) {
		title := strings.TrimSpace(n.Title)
		if title == "" {
			title = untitledPlaceholder
		}
		entries = append(entries, Entry{
			Title:  title,
			Level:  level,
			Page:   n.Page,
			Offset: n.Offset,
		})
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	for _, n := range nodes {
		walk(n, 1)
	}
	return entries
}

// Build converts a flat entry sequence into an outline tree. It maintains a
// stack of currently open ancestors: the entry at level L becomes the last
// child of the node at level L-1, or a new top-level sibling at level 1.
//
// Every page must lie in [1, pageCount]; a violation fails with a
// *RangeError and no tree is returned. A level sequence that skips a level
// on the way down fails with a *FormatError, so Build is safe to call on
// sequences that did not come from Parse or Flatten.
func Build(entries []Entry, pageCount int) ([]*Node, error) {
	var roots []*Node
	var stack []*Node
	for i, e := range entries {
		if e.Level < 1 || e.Level > len(stack)+1 {
			return nil, &FormatError{Line: i + 1, Msg: "skipped indentation level"}
		}
		if e.Page < 1 || e.Page > pageCount {
			return nil, &RangeError{Title: e.Title, Page: e.Page, PageCount: pageCount}
		}

		n := &Node{Title: e.Title, Page: e.Page, Offset: e.Offset}
		stack = stack[:e.Level-1] // drop everything that is not an ancestor
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
		stack = append(stack, n)
	}
	return roots, nil
}
