package toc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var titleEscaper = strings.NewReplacer(
	"\\", "\\\\",
	string(separator), "\\"+string(separator),
	"\t", "\\t",
)

// Dump renders entries in the canonical text format, one line per entry.
// For any sequence produced by Parse or Flatten, Parse(Dump(entries))
// reproduces an equal sequence.
func Dump(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		for i := 1; i < e.Level; i++ {
			b.WriteByte(indentUnit)
		}
		b.WriteString(titleEscaper.Replace(e.Title))
		b.WriteByte(separator)
		b.WriteString(strconv.Itoa(e.Page))
		if e.Offset >= 0 {
			b.WriteByte(separator)
			b.WriteString(strconv.FormatFloat(e.Offset, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var (
	topLevelStyle = lipgloss.NewStyle().Bold(true)
	pageStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// DumpHuman renders entries as an indented tree for terminal display.
// The output is one-directional: it is never parsed back.
func DumpHuman(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		title := e.Title
		if e.Level == 1 {
			title = topLevelStyle.Render(title)
		}
		b.WriteString(strings.Repeat("    ", e.Level-1))
		b.WriteString(title)
		b.WriteString(" ")
		b.WriteString(pageStyle.Render(fmt.Sprintf("(page %d)", e.Page)))
		b.WriteString("\n")
	}
	return b.String()
}
