package toc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	entries := []Entry{
		{Title: "Chapter 1", Level: 1, Page: 1, Offset: NoOffset},
		{Title: "Section 1.1", Level: 2, Page: 2, Offset: 72.5},
		{Title: "Chapter 2", Level: 1, Page: 5, Offset: NoOffset},
	}
	want := "Chapter 1|1\n\tSection 1.1|2|72.5\nChapter 2|5\n"
	if got := Dump(entries); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestDumpEscapes(t *testing.T) {
	entries := []Entry{
		{Title: `a|b\c` + "\td", Level: 1, Page: 1, Offset: NoOffset},
	}
	want := `a\|b\\c\td|1` + "\n"
	if got := Dump(entries); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name: "plain",
			entries: []Entry{
				{Title: "Chapter 1", Level: 1, Page: 1, Offset: NoOffset},
				{Title: "Section 1.1", Level: 2, Page: 2, Offset: NoOffset},
				{Title: "Chapter 2", Level: 1, Page: 5, Offset: NoOffset},
			},
		},
		{
			name: "reserved characters",
			entries: []Entry{
				{Title: `x|y and \z`, Level: 1, Page: 3, Offset: NoOffset},
				{Title: "tab\there", Level: 2, Page: 4, Offset: 12.25},
			},
		},
		{
			name: "deep nesting with offsets",
			entries: []Entry{
				{Title: "A", Level: 1, Page: 1, Offset: 0},
				{Title: "B", Level: 2, Page: 2, Offset: 700.125},
				{Title: "C", Level: 3, Page: 3, Offset: NoOffset},
				{Title: "D", Level: 2, Page: 9, Offset: 36},
			},
		},
		{
			name: "unicode titles",
			entries: []Entry{
				{Title: "第一章", Level: 1, Page: 1, Offset: NoOffset},
				{Title: "Übersicht — études", Level: 2, Page: 2, Offset: NoOffset},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(Dump(tt.entries))
			if err != nil {
				t.Fatalf("Parse(Dump(...)): %v", err)
			}
			if diff := cmp.Diff(tt.entries, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDumpHuman(t *testing.T) {
	entries := []Entry{
		{Title: "Chapter 1", Level: 1, Page: 1, Offset: NoOffset},
		{Title: "Section 1.1", Level: 2, Page: 2, Offset: NoOffset},
	}
	got := DumpHuman(entries)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[0], "Chapter 1") || !strings.Contains(lines[0], "(page 1)") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Section 1.1") || !strings.HasPrefix(lines[1], "    ") {
		t.Errorf("line 2 = %q", lines[1])
	}
}
