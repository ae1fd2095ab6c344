package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var noticeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5252"))

var noticeBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#ff5252")).
	Padding(0, 1)

// Output handles styled terminal output.
type Output struct {
	noColor bool
	stdout  io.Writer
	stderr  io.Writer
}

// NewOutput creates a new Output instance writing to the process streams.
func NewOutput() *Output {
	return &Output{stdout: os.Stdout, stderr: os.Stderr}
}

// NewBufferedOutput creates an Output writing to the given writers (useful for testing).
func NewBufferedOutput(stdout, stderr io.Writer) *Output {
	return &Output{stdout: stdout, stderr: stderr, noColor: true}
}

// SetNoColor disables colored output.
func (o *Output) SetNoColor(v bool) {
	o.noColor = v
}

// NoColor reports whether colored output is disabled.
func (o *Output) NoColor() bool {
	return o.noColor
}

// Stdout returns the writer for regular output.
func (o *Output) Stdout() io.Writer {
	return o.stdout
}

// Success prints a success message with a green checkmark.
func (o *Output) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(o.stdout, "OK %s\n", msg)
	} else {
		fmt.Fprintf(o.stdout, "\033[32m✓\033[0m %s\n", msg)
	}
}

// Error prints an error message with a red X.
func (o *Output) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(o.stderr, "FAIL %s\n", msg)
	} else {
		fmt.Fprintf(o.stderr, "\033[31m✗\033[0m %s\n", msg)
	}
}

// Warning prints a warning message with a yellow exclamation.
func (o *Output) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.noColor {
		fmt.Fprintf(o.stderr, "WARN %s\n", msg)
	} else {
		fmt.Fprintf(o.stderr, "\033[33m!\033[0m %s\n", msg)
	}
}

// Notice prints a titled, boxed message on stderr. It is the terminal
// stand-in for an error dialog.
func (o *Output) Notice(title, message string) {
	if o.noColor {
		fmt.Fprintf(o.stderr, "FAIL %s\n%s\n", title, message)
		return
	}
	fmt.Fprintln(o.stderr, noticeBoxStyle.Render(noticeTitleStyle.Render(title)+"\n\n"+message))
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...any) {
	fmt.Fprintf(o.stdout, format+"\n", args...)
}

// Println prints a line to stdout.
func (o *Output) Println(format string, args ...any) {
	fmt.Fprintf(o.stdout, format+"\n", args...)
}

// Table prints a simple aligned table. Widths are measured in terminal
// cells so wide characters in summaries do not break alignment.
func (o *Output) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	last := len(widths) - 1

	for i, h := range headers {
		o.cell(h, widths[i], i == last)
	}
	fmt.Fprintln(o.stdout)

	for i, w := range widths {
		fmt.Fprint(o.stdout, strings.Repeat("-", w))
		if i < last {
			fmt.Fprint(o.stdout, "  ")
		}
	}
	fmt.Fprintln(o.stdout)

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				o.cell(cell, widths[i], i == last)
			}
		}
		fmt.Fprintln(o.stdout)
	}
}

func (o *Output) cell(s string, width int, last bool) {
	if last {
		fmt.Fprint(o.stdout, s)
		return
	}
	fmt.Fprint(o.stdout, runewidth.FillRight(s, width)+"  ")
}
