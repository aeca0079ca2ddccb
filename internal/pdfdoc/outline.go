package pdfdoc

import (
	"fmt"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/outline"
	"seehuhn.de/go/pdf/pdfcopy"

	"github.com/metcalfc/pdftoc/internal/toc"
)

// letterHeight is the fallback page height when no MediaBox is found.
const letterHeight = 792.0

// ReadTOC reads the document's outline tree and flattens it into a leveled
// entry sequence. It returns ErrNoOutline when the document has no outline
// or an empty one.
func (d *Document) ReadTOC() ([]toc.Entry, error) {
	tree, err := outline.Read(d.r)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	if tree == nil || len(tree.Children) == 0 {
		return nil, ErrNoOutline
	}

	nodes := make([]*toc.Node, 0, len(tree.Children))
	for _, c := range tree.Children {
		nodes = append(nodes, d.toNode(c))
	}
	return toc.Flatten(nodes), nil
}

// toNode resolves one outline item and its descendants. Items whose
// destination cannot be resolved keep their place in the hierarchy and
// point at page 1.
func (d *Document) toNode(t *outline.Tree) *toc.Node {
	node := &toc.Node{Title: t.Title, Page: 1, Offset: toc.NoOffset}
	if page, off, ok := d.resolveAction(t.Action); ok {
		node.Page, node.Offset = page, off
	}
	for _, c := range t.Children {
		node.Children = append(node.Children, d.toNode(c))
	}
	return node
}

// resolveAction handles the action dict of an outline item; only GoTo
// actions target a page in this document.
func (d *Document) resolveAction(action pdf.Dict) (int, float64, bool) {
	if action == nil {
		return 0, 0, false
	}
	if s, err := pdf.GetName(d.r, action["S"]); err != nil || s != "GoTo" {
		return 0, 0, false
	}
	return d.resolveDest(action["D"])
}

// resolveDest turns a destination object (a direct array, or name or string
// to be looked up in the document's destination tables) into a 1-based page
// number and an offset from the top of that page.
func (d *Document) resolveDest(obj pdf.Object) (int, float64, bool) {
	obj, err := pdf.Resolve(d.r, obj)
	if err != nil || obj == nil {
		return 0, 0, false
	}
	switch dest := obj.(type) {
	case pdf.Array:
		return d.destArray(dest)
	case pdf.Name:
		return d.namedDest(dest)
	case pdf.String:
		return d.namedDest(pdf.Name(dest))
	}
	return 0, 0, false
}

func (d *Document) destArray(arr pdf.Array) (int, float64, bool) {
	if len(arr) == 0 {
		return 0, 0, false
	}
	ref, ok := arr[0].(pdf.Reference)
	if !ok {
		return 0, 0, false
	}
	no, ok := d.pageNo[ref]
	if !ok {
		return 0, 0, false
	}

	off := float64(toc.NoOffset)
	topIdx := -1
	if len(arr) >= 2 {
		switch name, _ := pdf.GetName(d.r, arr[1]); name {
		case "XYZ":
			topIdx = 3
		case "FitH", "FitBH":
			topIdx = 2
		}
	}
	if topIdx >= 0 && topIdx < len(arr) && arr[topIdx] != nil {
		if top, err := pdf.GetNumber(d.r, arr[topIdx]); err == nil {
			off = d.pageTop(ref) - float64(top)
			if off < 0 {
				off = 0
			}
		}
	}
	return no + 1, off, true
}

type destLookup map[pdf.Name]pdf.Object

func (d *Document) namedDest(name pdf.Name) (int, float64, bool) {
	if !d.destsLoaded {
		d.destsLoaded = true
		d.dests = d.loadDests()
	}
	obj, ok := d.dests[name]
	if !ok {
		return 0, 0, false
	}
	obj, err := pdf.Resolve(d.r, obj)
	if err != nil {
		return 0, 0, false
	}
	// a named destination may be the array itself or a dict holding it
	// under /D
	if dict, ok := obj.(pdf.Dict); ok {
		obj, err = pdf.Resolve(d.r, dict["D"])
		if err != nil {
			return 0, 0, false
		}
	}
	if arr, ok := obj.(pdf.Array); ok {
		return d.destArray(arr)
	}
	return 0, 0, false
}

// loadDests collects the named destinations of the document: the /Dests
// name tree under the catalog's /Names entry, plus the PDF 1.1 style
// /Dests dictionary directly in the catalog. A missing or damaged table
// just yields an empty lookup.
func (d *Document) loadDests() destLookup {
	dests := destLookup{}
	catalog := d.r.GetMeta().Catalog
	if names, err := pdf.GetDict(d.r, catalog.Names); err == nil && names != nil {
		seen := map[pdf.Reference]bool{}
		d.collectNameTree(names["Dests"], dests, seen)
	}
	if legacy, err := pdf.GetDict(d.r, catalog.Dests); err == nil {
		for name, obj := range legacy {
			if _, ok := dests[name]; !ok {
				dests[name] = obj
			}
		}
	}
	return dests
}

func (d *Document) collectNameTree(obj pdf.Object, dests destLookup, seen map[pdf.Reference]bool) {
	if ref, ok := obj.(pdf.Reference); ok {
		if seen[ref] {
			return
		}
		seen[ref] = true
	}
	node, err := pdf.GetDict(d.r, obj)
	if err != nil || node == nil {
		return
	}
	if names, err := pdf.GetArray(d.r, node["Names"]); err == nil {
		for i := 0; i+1 < len(names); i += 2 {
			key, err := pdf.GetString(d.r, names[i])
			if err != nil {
				continue
			}
			dests[pdf.Name(key)] = names[i+1]
		}
	}
	if kids, err := pdf.GetArray(d.r, node["Kids"]); err == nil {
		for _, kid := range kids {
			d.collectNameTree(kid, dests, seen)
		}
	}
}

// pageTop returns the y coordinate of the top edge of the page, taking the
// inheritable MediaBox from the page or its ancestors.
func (d *Document) pageTop(ref pdf.Reference) float64 {
	obj := pdf.Object(ref)
	for range 32 {
		dict, err := pdf.GetDict(d.r, obj)
		if err != nil || dict == nil {
			break
		}
		if mb, err := pdf.GetArray(d.r, dict["MediaBox"]); err == nil && len(mb) == 4 {
			if top, err := pdf.GetNumber(d.r, mb[3]); err == nil {
				return float64(top)
			}
		}
		parent, ok := dict["Parent"].(pdf.Reference)
		if !ok {
			break
		}
		obj = parent
	}
	return letterHeight
}

// WriteTOC validates entries, builds the outline tree and stages it as the
// replacement that the next Save installs. Nothing is staged on error.
func (d *Document) WriteTOC(entries []toc.Entry) error {
	nodes, err := toc.Build(entries, d.PageCount())
	if err != nil {
		return err
	}
	d.outline = nodes
	d.replace = true
	return nil
}

// outlineTree converts the staged nodes into the library's outline tree,
// with destinations pointing at the copied pages of the output file.
func (d *Document) outlineTree(copier *pdfcopy.Copier) (*outline.Tree, error) {
	root := &outline.Tree{}
	children, err := d.treeItems(d.outline, copier)
	if err != nil {
		return nil, err
	}
	root.Children = children
	return root, nil
}

func (d *Document) treeItems(nodes []*toc.Node, copier *pdfcopy.Copier) ([]*outline.Tree, error) {
	items := make([]*outline.Tree, 0, len(nodes))
	for _, n := range nodes {
		// Build has checked the page bounds already
		srcPage := d.pages[n.Page-1]
		pageRef, err := copier.CopyReference(srcPage)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n.Page, err)
		}

		var top pdf.Object
		if n.Offset >= 0 {
			t := d.pageTop(srcPage) - n.Offset
			if t < 0 {
				t = 0
			}
			top = pdf.Number(t)
		}

		item := &outline.Tree{
			Title: n.Title,
			Open:  true,
			Action: pdf.Dict{
				"S": pdf.Name("GoTo"),
				"D": pdf.Array{pageRef, pdf.Name("XYZ"), nil, top, nil},
			},
		}
		children, err := d.treeItems(n.Children, copier)
		if err != nil {
			return nil, err
		}
		item.Children = children
		items = append(items, item)
	}
	return items, nil
}
