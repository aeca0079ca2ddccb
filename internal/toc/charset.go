package toc

import "unicode/utf8"

// Encoding identifies one of the two encodings PDF text strings support.
type Encoding int

const (
	// EncodingPDFDoc is PDFDocEncoding, the single-byte encoding for text
	// strings (Appendix D.2 of PDF 32000-1:2008).
	EncodingPDFDoc Encoding = iota
	// EncodingUTF16 is UTF-16BE with a byte order mark. It covers every
	// Unicode scalar value.
	EncodingUTF16
)

// Check returns the byte offsets of the characters in title that cannot be
// represented in enc. An empty result means the title is fully
// representable. Check only detects; any substitution or rejection policy
// belongs to the caller.
func Check(title string, enc Encoding) []int {
	var bad []int
	for i, r := range title {
		if !representable(title, i, r, enc) {
			bad = append(bad, i)
		}
	}
	return bad
}

func representable(s string, i int, r rune, enc Encoding) bool {
	if r == 0 {
		// embedded NUL is never allowed in an outline title
		return false
	}
	if r == utf8.RuneError {
		// distinguish a genuine U+FFFD from an invalid input byte
		if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
			return false
		}
	}
	if enc == EncodingPDFDoc {
		return pdfDocHas[r]
	}
	return true
}

// PickEncoding returns the encoding an outline writer would store title in:
// PDFDocEncoding when every character maps, UTF-16 otherwise.
func PickEncoding(title string) Encoding {
	if len(Check(title, EncodingPDFDoc)) == 0 {
		return EncodingPDFDoc
	}
	return EncodingUTF16
}

// ValidateEntries checks every title against the encoding the writer would
// use and collects all problems into a single *EncodingError, so the whole
// sequence can be reported before any write decision is made.
func ValidateEntries(entries []Entry) error {
	var problems []CharProblem
	for i, e := range entries {
		if bad := Check(e.Title, PickEncoding(e.Title)); len(bad) > 0 {
			problems = append(problems, CharProblem{
				Entry:     i + 1,
				Title:     e.Title,
				Positions: bad,
			})
		}
	}
	if len(problems) > 0 {
		return &EncodingError{Problems: problems}
	}
	return nil
}
