// Package style centralizes terminal styling for gro's output: adaptive
// lipgloss styles with semantic names, the glyphs used when rendering plans,
// and output format detection. Commands render through this package so that
// piped output degrades to plain text automatically.
package style

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/gro/pkg/types"
)

// Glyphs prefixing rendered plan lines.
const (
	GlyphCreate   = "+"
	GlyphRelink   = "~"
	GlyphRemove   = "-"
	GlyphConflict = "!"
	GlyphOrphan   = "?"
)

// Semantic styles with colors that adapt to light and dark terminals.
var (
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
	Change = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	Danger = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "196"})
	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "94", Dark: "220"})
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "243"})
	Header = lipgloss.NewStyle().Bold(true)
)

// ActionGlyph returns the glyph for an action type.
func ActionGlyph(t types.ActionType) string {
	switch t {
	case types.ActionCreate:
		return GlyphCreate
	case types.ActionRelink:
		return GlyphRelink
	case types.ActionRemove:
		return GlyphRemove
	default:
		return "?"
	}
}

// ActionStyle returns the style for an action type.
func ActionStyle(t types.ActionType) lipgloss.Style {
	switch t {
	case types.ActionCreate:
		return Success
	case types.ActionRelink:
		return Change
	case types.ActionRemove:
		return Danger
	default:
		return Muted
	}
}

// Format selects how command output is rendered.
type Format int

const (
	// FormatAuto picks terminal or text based on the output destination.
	FormatAuto Format = iota
	// FormatTerminal renders styled output.
	FormatTerminal
	// FormatText renders plain text.
	FormatText
)

// String returns the format's configuration name.
func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "auto"
	}
}

// ParseFormat parses a configuration value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal", "always":
		return FormatTerminal, nil
	case "text", "plain", "never":
		return FormatText, nil
	default:
		return FormatAuto, fmt.Errorf("unknown output format: %s", s)
	}
}

// DetectFormat resolves FormatAuto against the actual output destination:
// NO_COLOR, non-terminal output, and monochrome terminals all fall back to
// plain text.
func DetectFormat(f Format, output *os.File) Format {
	if f != FormatAuto {
		return f
	}
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Render applies the style when the format is terminal, and passes the text
// through untouched otherwise.
func Render(f Format, s lipgloss.Style, text string) string {
	if f == FormatTerminal {
		return s.Render(text)
	}
	return text
}
