package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// mapStyles colours overlay glyphs. Unlisted glyphs render plain.
type mapStyles struct {
	frame  lipgloss.Style
	title  lipgloss.Style
	glyphs map[rune]lipgloss.Style
}

func newMapStyles(w io.Writer) mapStyles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return mapStyles{
		frame: r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		title: r.NewStyle().Bold(true),
		glyphs: map[rune]lipgloss.Style{
			'S': fg("10").Bold(true),
			'G': fg("9").Bold(true),
			'*': fg("11").Bold(true),
			'#': fg("240"),
			'w': fg("33"),
			'~': fg("30"),
			'f': fg("28"),
			'h': fg("136"),
			'.': fg("250"),
		},
	}
}

// renderMap draws rows inside a rounded frame with an optional title line.
// Colours follow the terminal capabilities of w; plain writers get plain text.
func renderMap(w io.Writer, title string, rows []string) string {
	st := newMapStyles(w)
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			if s, ok := st.glyphs[r]; ok {
				b.WriteString(s.Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
	}
	body := b.String()
	if title != "" {
		body = st.title.Render(title) + "\n" + body
	}

	return st.frame.Render(body)
}
