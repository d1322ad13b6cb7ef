// Package ui renders the status lines printed while scaffolding and checking
// a project. Lines look like "  [ OK ] Created src/" and are coloured with
// lipgloss only when the destination is a terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Tag is the fixed-width marker at the start of a status line.
type Tag string

const (
	TagOK      Tag = "[ OK ]"
	TagSkip    Tag = "[SKIP]"
	TagPatch   Tag = "[PTCH]"
	TagInstall Tag = "[INST]"
	TagMiss    Tag = "[MISS]"
	TagWarn    Tag = "[WARN]"
	TagFail    Tag = "[FAIL]"
	TagFix     Tag = "[FIX ]"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	stylePrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
)

func (t Tag) style() lipgloss.Style {
	switch t {
	case TagOK, TagInstall, TagFix:
		return styleSuccess
	case TagPatch:
		return stylePrimary
	case TagWarn, TagMiss:
		return styleWarn
	case TagFail:
		return styleError
	default:
		return styleMuted
	}
}

// Printer writes status lines to an output stream.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a Printer for w. Colour is enabled when w is a
// terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, color: isTerminal(w) && os.Getenv("NO_COLOR") == ""}
}

// Plain returns a Printer that never emits escape sequences.
func Plain(w io.Writer) *Printer {
	return &Printer{w: w}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Status prints one indented status line.
func (p *Printer) Status(tag Tag, format string, args ...any) {
	if p == nil {
		return
	}
	marker := string(tag)
	if p.color {
		marker = tag.style().Render(marker)
	}
	fmt.Fprintf(p.w, "  %s %s\n", marker, fmt.Sprintf(format, args...))
}

// Heading prints an unindented section title.
func (p *Printer) Heading(title string) {
	if p == nil {
		return
	}
	if p.color {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}
	fmt.Fprintln(p.w, title)
}

// Hint prints a dimmed follow-up line aligned under the status text.
func (p *Printer) Hint(format string, args ...any) {
	if p == nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if p.color {
		text = styleMuted.Render(text)
	}
	fmt.Fprintf(p.w, "         %s\n", text)
}
