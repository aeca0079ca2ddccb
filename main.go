package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/metcalfc/pdftoc/internal/pdfdoc"
	"github.com/metcalfc/pdftoc/internal/toc"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	outPath := flag.String("o", "", "output pdf path (default: input with an _out suffix)")
	tocPath := flag.String("t", "", "toc file path (default: stdin)")
	human := flag.Bool("H", false, "print the toc in a human-readable format")
	debug := flag.Bool("g", false, "debug mode: print the raw error instead of a friendly message")
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "show version information")
	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Pdftoc - Edit the table of contents of a PDF file\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdftoc [options] in.pdf\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdftoc in.pdf                    Print the existing toc for editing\n")
		fmt.Fprintf(os.Stderr, "  pdftoc -H in.pdf                 Print the toc in a readable tree form\n")
		fmt.Fprintf(os.Stderr, "  pdftoc in.pdf < toc              Write a toc file back into the pdf\n")
		fmt.Fprintf(os.Stderr, "  pdftoc -t toc -o out.pdf in.pdf  Same, without redirection\n")
		fmt.Fprintf(os.Stderr, "\nThe toc format is one entry per line: a title, a | separator, a\n")
		fmt.Fprintf(os.Stderr, "1-based page number, and an optional vertical offset in points from\n")
		fmt.Fprintf(os.Stderr, "the top of the page. Nesting is one leading tab per level.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("pdftoc %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "error: expected exactly one input pdf")
		fmt.Fprintln(os.Stderr, "Try: pdftoc -h")
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "error: interrupted")
		os.Exit(1)
	}()

	if err := run(flag.Arg(0), *outPath, *tocPath, *human); err != nil {
		reportError(err, *debug)
		os.Exit(1)
	}
}

func run(input, output, tocPath string, human bool) error {
	doc, err := pdfdoc.Open(input)
	if err != nil {
		return err
	}
	defer doc.Close()

	var in io.Reader
	switch {
	case tocPath != "":
		f, err := os.Open(tocPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", tocPath, err)
		}
		defer f.Close()
		in = f
	case stdinIsPiped():
		in = os.Stdin
	}

	if in == nil {
		// no toc supplied: print the document's existing one
		entries, err := doc.ReadTOC()
		if err != nil {
			return err
		}
		if human {
			fmt.Print(toc.DumpHuman(entries))
		} else {
			fmt.Print(toc.Dump(entries))
		}
		return nil
	}

	entries, err := toc.Parse(in)
	if err != nil {
		return err
	}
	if err := toc.ValidateEntries(entries); err != nil {
		return err
	}
	if err := doc.WriteTOC(entries); err != nil {
		return err
	}

	if output == "" {
		output = defaultOutPath(input)
	}
	return doc.Save(output)
}

// stdinIsPiped reports whether stdin is redirected or piped rather than a
// terminal.
func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

// defaultOutPath inserts _out before the extension: in.pdf -> in_out.pdf.
func defaultOutPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_out" + ext
}

func reportError(err error, debug bool) {
	if debug {
		fmt.Fprintf(os.Stderr, "error (%T): %v\n", err, err)
		return
	}

	var ferr *toc.FormatError
	var rerr *toc.RangeError
	var eerr *toc.EncodingError
	switch {
	case errors.Is(err, pdfdoc.ErrNoOutline):
		fmt.Fprintln(os.Stderr, "error: no table of contents found")
	case errors.As(err, &ferr):
		fmt.Fprintf(os.Stderr, "error: invalid toc format: %v\n", ferr)
	case errors.As(err, &rerr):
		fmt.Fprintf(os.Stderr, "error: %v\n", rerr)
	case errors.As(err, &eerr):
		fmt.Fprintf(os.Stderr, "error: %v\n", eerr)
		for _, p := range eerr.Problems {
			fmt.Fprintf(os.Stderr, "  entry %d: %q\n", p.Entry, p.Title)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
