// Package pdfdoc bridges the toc package to real PDF documents. It wraps
// seehuhn.de/go/pdf and exposes exactly the outline operations the rest of
// the tool needs: read the existing outline as a flat entry sequence, or
// replace it wholesale from one.
//
// The underlying library separates reading and writing, so a Document is
// backed by a reader and Save produces a fresh file, copying every object
// over and installing the staged outline on the way out.
package pdfdoc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"

	"github.com/metcalfc/pdftoc/internal/toc"
)

// ErrNoOutline reports that a document has no outline to read. This is a
// recoverable condition, not a corrupt file.
var ErrNoOutline = errors.New("document has no outline")

// Document is a PDF document opened for reading, with its page tree
// resolved so that pages can be addressed by 1-based page number.
type Document struct {
	r      *pdf.Reader
	pages  []pdf.Reference
	pageNo map[pdf.Reference]int // 0-based

	// outline staged by WriteTOC, installed by Save
	outline []*toc.Node
	replace bool

	dests       destLookup
	destsLoaded bool
}

// Open loads the PDF document at path. Close must be called when the
// Document is no longer needed.
func Open(path string) (*Document, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := newDocument(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func newDocument(r *pdf.Reader) (*Document, error) {
	pages, err := pagetree.FindPages(r)
	if err != nil {
		return nil, fmt.Errorf("page tree: %w", err)
	}
	pageNo := make(map[pdf.Reference]int, len(pages))
	for i, ref := range pages {
		pageNo[ref] = i
	}
	return &Document{r: r, pages: pages, pageNo: pageNo}, nil
}

// Close releases the underlying reader.
func (d *Document) Close() error {
	return d.r.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Save writes the document to path: a full copy of the original, with the
// outline staged by WriteTOC installed in place of the old one. Without a
// staged outline the existing one is carried over unchanged.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.writeTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (d *Document) writeTo(out io.Writer) error {
	w, err := pdf.NewWriter(out, pdf.GetVersion(d.r), nil)
	if err != nil {
		return err
	}
	copier := pdfcopy.NewCopier(w, d.r)

	catalog := *d.r.GetMeta().Catalog
	if d.replace {
		// the old outline must not be dragged along by the copier
		catalog.Outlines = 0
	}
	newCatalog, err := pdfcopy.CopyStruct(copier, &catalog)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	w.GetMeta().Catalog = newCatalog

	if info := d.r.GetMeta().Info; info != nil {
		newInfo, err := pdfcopy.CopyStruct(copier, info)
		if err != nil {
			return fmt.Errorf("info: %w", err)
		}
		w.GetMeta().Info = newInfo
	}
	w.GetMeta().ID = d.r.GetMeta().ID

	if d.replace && len(d.outline) > 0 {
		tree, err := d.outlineTree(copier)
		if err != nil {
			return err
		}
		if err := tree.Write(w); err != nil {
			return fmt.Errorf("outline: %w", err)
		}
	}

	return w.Close()
}
