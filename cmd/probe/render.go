package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/woxQAQ/boundary-probe/pkg/protocol"
)

type styles struct {
	label lipgloss.Style
	value lipgloss.Style
	bytes lipgloss.Style
	note  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		label: r.NewStyle().Bold(true).Width(13),
		value: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		bytes: r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		note:  r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func renderReport(w io.Writer, rep *protocol.Report) error {
	s := newStyles(w)

	ascii := ""
	if rep.ASCII {
		ascii = ", ascii"
	}

	lines := []string{
		s.label.Render("text") + s.value.Render(fmt.Sprintf("%q", rep.Text)),
		s.label.Render("code points") + s.value.Render(fmt.Sprint(rep.CodePoints)) +
			s.note.Render(fmt.Sprintf(" (%d UTF-8 bytes)", rep.UTF8Bytes)),
		s.label.Render("compact") + s.value.Render(fmt.Sprintf("width %d", rep.CompactWidth)) +
			s.note.Render(fmt.Sprintf(" (%s, %d bytes%s)", rep.CompactKind, rep.CompactBytes, ascii)),
		s.label.Render("wide") + s.value.Render(fmt.Sprintf("width %d", rep.WideWidth)) +
			s.note.Render(fmt.Sprintf(" (%d bytes)", rep.WideBytes)),
		s.label.Render(fmt.Sprintf("index %d", rep.Index)) + s.value.Render(fmt.Sprintf("%s %q", rep.CodePoint, rep.Char)),
		renderProbe(s, rep.Compact),
		renderProbe(s, rep.Wide),
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func renderProbe(s styles, pr protocol.Probe) string {
	return s.label.Render("  "+pr.Representation) +
		s.note.Render(fmt.Sprintf("@%-4d ", pr.Offset)) +
		s.bytes.Render(pr.Bytes.String())
}
