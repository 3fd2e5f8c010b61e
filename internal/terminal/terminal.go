// Package terminal reports what the attached terminal can do: whether the
// TUI can take over stdin and stdout, whether colors are wanted, and how
// large the screen is.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Info holds terminal capability information.
type Info struct {
	IsTTY      bool // stdout
	StdinIsTTY bool
	NoColor    bool
	Width      int
	Height     int
	ForceFlag  bool // --no-color
}

// Detect returns terminal information for the current process.
func Detect() *Info {
	return detect(int(os.Stdout.Fd()), int(os.Stdin.Fd()), os.LookupEnv)
}

func detect(outFD, inFD int, lookup func(string) (string, bool)) *Info {
	info := &Info{
		IsTTY:      term.IsTerminal(outFD),
		StdinIsTTY: term.IsTerminal(inFD),
		Width:      defaultWidth,
		Height:     defaultHeight,
	}

	if info.IsTTY {
		if w, h, err := term.GetSize(outFD); err == nil && w > 0 && h > 0 {
			info.Width, info.Height = w, h
		}
	}

	// https://no-color.org/
	_, info.NoColor = lookup("NO_COLOR")

	if v, _ := lookup("TERM"); v == "dumb" {
		info.NoColor = true
	}

	return info
}

// ColorEnabled returns true if colored output should be used.
func (t *Info) ColorEnabled() bool {
	return !t.ForceFlag && t.IsTTY && !t.NoColor
}

// InteractiveEnabled reports whether a full-screen UI can run: it needs
// both keystrokes in and a screen out.
func (t *Info) InteractiveEnabled() bool {
	return t.IsTTY && t.StdinIsTTY
}

// SpinnersEnabled returns true if spinners should be used.
func (t *Info) SpinnersEnabled() bool {
	return t.IsTTY && !t.NoColor
}
