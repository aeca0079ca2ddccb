package toc

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// The text grammar: one entry per non-blank line, written as
//
//	<tabs><title>|<page>[|<offset>]
//
// where the number of leading tabs is level-1. Inside a title the
// characters \, | and tab must be escaped as \\, \| and \t.
const (
	indentUnit = '\t'
	separator  = '|'
)

// Parse reads ToC text and returns the flat, leveled entry sequence it
// encodes. Blank lines are skipped. Parsing fails with a *FormatError on
// the first malformed line; empty input yields an empty sequence.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	prevLevel := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		if prevLevel == 0 && e.Level != 1 {
			return nil, &FormatError{Line: lineNo, Msg: "first entry must be top-level"}
		}
		if prevLevel > 0 && e.Level > prevLevel+1 {
			return nil, &FormatError{Line: lineNo, Msg: "skipped indentation level"}
		}
		entries = append(entries, e)
		prevLevel = e.Level
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) ([]Entry, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(line string, lineNo int) (Entry, error) {
	level := 1
	for len(line) > 0 && line[0] == indentUnit {
		line = line[1:]
		level++
	}
	if len(line) > 0 && line[0] == ' ' {
		// only whole tabs may indent
		return Entry{}, &FormatError{Line: lineNo, Msg: "bad indentation"}
	}

	title, rest, err := scanTitle(line, lineNo)
	if err != nil {
		return Entry{}, err
	}
	title = strings.TrimRight(title, " ")
	if title == "" {
		return Entry{}, &FormatError{Line: lineNo, Msg: "empty title"}
	}

	fields := strings.Split(rest, string(separator))
	if len(fields) > 2 {
		return Entry{}, &FormatError{Line: lineNo, Msg: "too many fields"}
	}

	page, err2 := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err2 != nil || page < 1 {
		return Entry{}, &FormatError{Line: lineNo, Msg: "bad page number"}
	}

	offset := float64(NoOffset)
	if len(fields) == 2 {
		v, err2 := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err2 != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Entry{}, &FormatError{Line: lineNo, Msg: "bad offset"}
		}
		offset = v
	}

	return Entry{Title: title, Level: level, Page: page, Offset: offset}, nil
}

// scanTitle consumes the escaped title up to the first unescaped separator
// and returns the unescaped title together with everything after the
// separator.
func scanTitle(s string, lineNo int) (string, string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", "", &FormatError{Line: lineNo, Msg: "bad escape sequence"}
			}
			i++
			switch s[i] {
			case '\\':
				b.WriteByte('\\')
			case separator:
				b.WriteByte(separator)
			case 't':
				b.WriteByte('\t')
			default:
				return "", "", &FormatError{Line: lineNo, Msg: "bad escape sequence"}
			}
		case separator:
			return b.String(), s[i+1:], nil
		case indentUnit:
			if strings.TrimSpace(b.String()) == "" {
				return "", "", &FormatError{Line: lineNo, Msg: "bad indentation"}
			}
			return "", "", &FormatError{Line: lineNo, Msg: "unescaped tab in title"}
		default:
			b.WriteByte(s[i])
		}
	}
	return "", "", &FormatError{Line: lineNo, Msg: "missing page number"}
}
