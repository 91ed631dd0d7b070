// Package render formats solve results for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/ui/output"
	"go.trai.ch/squares/internal/ui/style"
)

// NoWords is printed when a solve returns nothing.
const NoWords = "No words found"

// Results renders grouped words with found and invalid markers.
type Results struct {
	w       io.Writer
	heading lipgloss.Style
	word    lipgloss.Style
	found   lipgloss.Style
	invalid lipgloss.Style
}

// New creates a Results renderer on w. When plain is set, no escape codes are emitted.
func New(w io.Writer, plain bool) *Results {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(output.ColorProfile())
	}

	return &Results{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(style.Accent),
		word:    r.NewStyle(),
		found:   r.NewStyle().Foreground(style.Green),
		invalid: r.NewStyle().Foreground(style.Red).Strikethrough(true),
	}
}

// Render writes one block per word length, shortest first.
func (r *Results) Render(words []string, found, invalid domain.WordSet) error {
	groups := domain.GroupByLength(words)
	if len(groups) == 0 {
		_, err := fmt.Fprintln(r.w, NoWords)
		return err
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.heading.Render(fmt.Sprintf("%d letters (%d)", g.Length, len(g.Words))))
		b.WriteString("\n")

		cells := make([]string, 0, len(g.Words))
		for _, w := range g.Words {
			cells = append(cells, r.cell(w, found, invalid))
		}
		b.WriteString("  " + strings.Join(cells, "  ") + "\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Results) cell(w string, found, invalid domain.WordSet) string {
	switch {
	case found.Has(w):
		return r.found.Render(style.Check + " " + w)
	case invalid.Has(w):
		return r.invalid.Render(style.Cross + " " + w)
	default:
		return r.word.Render(w)
	}
}
