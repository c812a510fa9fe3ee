// Package output renders CLI output in text, markdown, or json form.
// Commands write through a Renderer so terminal and scripted invocations get
// appropriate formatting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto selects text on a TTY and markdown otherwise.
	ModeAuto Mode = "auto"

	// ModeText is styled terminal output.
	ModeText Mode = "text"

	// ModeMarkdown is plain markdown, agent- and pipe-friendly.
	ModeMarkdown Mode = "markdown"

	// ModeJSON is machine-readable output.
	ModeJSON Mode = "json"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Renderer writes formatted output to an out/err writer pair.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
}

// NewRenderer creates a renderer. ModeAuto resolves against whether stdout
// is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = termenv.NewOutput(f).Profile != termenv.Ascii && isTerminal(f)
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether the renderer writes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Println writes a line to the output writer.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	if r.EffectiveMode() == ModeText {
		r.Println(successStyle.Render("✓ ") + s)
		return
	}
	r.Println("✓ " + s)
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(s string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, errorStyle.Render("✗ ")+s)
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "✗ "+s)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(s string) {
	if r.EffectiveMode() == ModeText {
		r.Println(mutedStyle.Render(s))
		return
	}
	r.Println(s)
}

// Header writes a section header at the given level.
func (r *Renderer) Header(level int, s string) {
	if r.EffectiveMode() == ModeText {
		r.Println(headerStyle.Render(s))
		return
	}
	r.Println(FormatHeader(level, s))
}

// StatusLine writes a per-item status entry (e.g. a created file).
func (r *Renderer) StatusLine(name, status, note string) {
	marker := "-"
	if status == "success" {
		marker = successStyle.Render("✓")
		if r.EffectiveMode() != ModeText {
			marker = "✓"
		}
	}
	line := fmt.Sprintf("  %s %s", marker, name)
	if note != "" {
		line += " " + note
	}
	r.Println(line)
}

// JSON writes v as indented JSON to the output writer.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader returns a markdown header at the given level.
func FormatHeader(level int, s string) string {
	return strings.Repeat("#", level) + " " + s
}

// FormatKeyValue returns a markdown key/value line.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}
