// Package output writes amcui command results to the terminal.
//
// Commands never print directly. They take a Writer from the command
// context, which honors --json, --quiet and --no-color and can be pointed
// at buffers in tests.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/amc-launcher/amcui/internal/terminal"
)

type contextKey struct{}

// Status symbols.
const (
	CheckMark   = "\u2713"
	XMark       = "\u2717"
	WarningMark = "\u26A0"
	InfoMark    = "\u2139"
)

// Writer handles CLI output in human, JSON and quiet modes.
type Writer struct {
	Out     io.Writer
	Err     io.Writer
	JSON    bool
	Quiet   bool
	Verbose bool

	terminal *terminal.Info

	successColor *color.Color
	errorColor   *color.Color
	warningColor *color.Color
	infoColor    *color.Color
	mutedColor   *color.Color
	keyColor     *color.Color
}

// Default returns a Writer for stdout and stderr.
func Default() *Writer {
	return NewWriter(os.Stdout, os.Stderr, terminal.Detect())
}

// NewWriter creates a Writer with custom writers and terminal info.
func NewWriter(out, errOut io.Writer, term *terminal.Info) *Writer {
	w := &Writer{
		Out:          out,
		Err:          errOut,
		terminal:     term,
		successColor: color.New(color.FgGreen),
		errorColor:   color.New(color.FgRed),
		warningColor: color.New(color.FgYellow),
		infoColor:    color.New(color.FgCyan),
		mutedColor:   color.New(color.FgHiBlack),
		keyColor:     color.New(color.Bold),
	}

	if !term.ColorEnabled() {
		color.NoColor = true
	}

	return w
}

// WithContext stores the Writer in the context.
func (w *Writer) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, w)
}

// FromContext retrieves the Writer from context, or returns Default().
func FromContext(ctx context.Context) *Writer {
	if w, ok := ctx.Value(contextKey{}).(*Writer); ok {
		return w
	}

	return Default()
}

// Terminal returns the terminal info.
func (w *Writer) Terminal() *terminal.Info {
	return w.terminal
}

// SetNoColor disables colored output.
func (w *Writer) SetNoColor(disabled bool) {
	w.terminal.ForceFlag = disabled
	if disabled {
		color.NoColor = true
	}
}

// Print writes to stdout unless quiet.
func (w *Writer) Print(format string, args ...any) {
	if !w.Quiet {
		fmt.Fprintf(w.Out, format, args...)
	}
}

// Println writes a line to stdout unless quiet.
func (w *Writer) Println(args ...any) {
	if !w.Quiet {
		fmt.Fprintln(w.Out, args...)
	}
}

// PrintJSON writes v as indented JSON. Quiet does not suppress it.
func (w *Writer) PrintJSON(v any) error {
	enc := json.NewEncoder(w.Out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// PrintJSONLine writes v as one compact JSON line, for streams a script
// reads record by record.
func (w *Writer) PrintJSONLine(v any) error {
	enc := json.NewEncoder(w.Out)
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...any) {
	fmt.Fprintf(w.Err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(args ...any) {
	fmt.Fprintln(w.Err, args...)
}

// Write implements io.Writer, writing to Out.
func (w *Writer) Write(p []byte) (int, error) {
	if w.Quiet {
		return len(p), nil
	}

	return w.Out.Write(p)
}

// Debug writes to stdout only in verbose mode.
func (w *Writer) Debug(format string, args ...any) {
	if w.Verbose {
		w.mutedColor.Fprintf(w.Out, "[debug] "+format+"\n", args...)
	}
}

// Success writes a message prefixed with a check mark.
func (w *Writer) Success(format string, args ...any) {
	if !w.Quiet {
		w.status(w.Out, w.successColor, CheckMark, fmt.Sprintf(format, args...))
	}
}

// Failure writes a message prefixed with an X mark to stderr. Quiet does
// not suppress it.
func (w *Writer) Failure(format string, args ...any) {
	w.status(w.Err, w.errorColor, XMark, fmt.Sprintf(format, args...))
}

// Warning writes a warning message.
func (w *Writer) Warning(format string, args ...any) {
	if !w.Quiet {
		w.status(w.Out, w.warningColor, WarningMark, fmt.Sprintf(format, args...))
	}
}

// Info writes an info message.
func (w *Writer) Info(format string, args ...any) {
	if !w.Quiet {
		w.status(w.Out, w.infoColor, InfoMark, fmt.Sprintf(format, args...))
	}
}

// Muted writes gray text.
func (w *Writer) Muted(format string, args ...any) {
	if w.Quiet {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if w.terminal.ColorEnabled() {
		w.mutedColor.Fprintln(w.Out, msg)
		return
	}

	fmt.Fprintln(w.Out, msg)
}

// Field is one row of a KeyValues listing.
type Field struct {
	Key   string
	Value string
}

// KeyValues writes fields as an aligned two-column listing. Keys are padded
// by display width so wide runes line up.
func (w *Writer) KeyValues(fields []Field) {
	if w.Quiet || len(fields) == 0 {
		return
	}

	width := 0
	for _, f := range fields {
		width = max(width, runewidth.StringWidth(f.Key))
	}

	for _, f := range fields {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(f.Key)+2)

		if w.terminal.ColorEnabled() {
			w.keyColor.Fprint(w.Out, f.Key)
			fmt.Fprintln(w.Out, pad+f.Value)

			continue
		}

		fmt.Fprintln(w.Out, f.Key+pad+f.Value)
	}
}

func (w *Writer) status(dst io.Writer, tone *color.Color, prefix, message string) {
	if w.terminal.ColorEnabled() {
		tone.Fprint(dst, prefix+" ")
		fmt.Fprintln(dst, message)

		return
	}

	fmt.Fprintln(dst, prefix+" "+message)
}
