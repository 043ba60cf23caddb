package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type ConsoleStyle int

const (
	StyleNormal ConsoleStyle = iota
	StyleError
	StyleWarning
	StyleSuccess
	StyleInfo
	StyleMuted
)

// Console prints user-facing messages. Regular output goes to out, errors
// and warnings to errOut.
type Console struct {
	out       io.Writer
	errOut    io.Writer
	useColors bool
	styles    map[ConsoleStyle]lipgloss.Style
}

func NewConsole() *Console {
	return NewConsoleWithWriters(os.Stdout, os.Stderr, isTerminal())
}

// NewConsoleWithWriters returns a console on the given writers. Colours are
// emitted only when useColors is set.
func NewConsoleWithWriters(out, errOut io.Writer, useColors bool) *Console {
	renderer := lipgloss.NewRenderer(errOut)
	if useColors {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Console{
		out:       out,
		errOut:    errOut,
		useColors: useColors,
		styles: map[ConsoleStyle]lipgloss.Style{
			StyleError:   renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			StyleWarning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
			StyleSuccess: renderer.NewStyle().Foreground(lipgloss.Color("2")),
			StyleInfo:    renderer.NewStyle().Foreground(lipgloss.Color("4")),
			StyleMuted:   renderer.NewStyle().Faint(true),
		},
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func (c *Console) formatMessage(style ConsoleStyle, message string) string {
	if !c.useColors {
		return message
	}
	s, ok := c.styles[style]
	if !ok {
		return message
	}
	return s.Render(message)
}

func (c *Console) PrintError(message string) {
	fmt.Fprintf(c.errOut, "%s\n", c.formatMessage(StyleError, "Error: "+message))
}

func (c *Console) PrintWarning(message string) {
	fmt.Fprintf(c.errOut, "%s\n", c.formatMessage(StyleWarning, "Warning: "+message))
}

func (c *Console) PrintSuccess(message string) {
	fmt.Fprintf(c.out, "%s\n", c.formatMessage(StyleSuccess, message))
}

func (c *Console) PrintInfo(message string) {
	fmt.Fprintf(c.out, "%s\n", c.formatMessage(StyleInfo, message))
}

// PrintMuted prints secondary output such as skipped stages and dry-run notes.
func (c *Console) PrintMuted(message string) {
	fmt.Fprintf(c.out, "%s\n", c.formatMessage(StyleMuted, message))
}

// Println prints an unstyled line.
func (c *Console) Println(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *Console) FormatErrorMessage(context, cause, suggestion string) string {
	var parts []string

	if context != "" {
		parts = append(parts, context)
	}

	if cause != "" {
		parts = append(parts, fmt.Sprintf("Cause: %s", cause))
	}

	if suggestion != "" {
		parts = append(parts, fmt.Sprintf("Suggestion: %s", suggestion))
	}

	return strings.Join(parts, "\n")
}
