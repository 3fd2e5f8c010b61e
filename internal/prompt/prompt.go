// Package prompt asks the user short questions on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amc-launcher/amcui/internal/output"
)

// ErrNotInteractive is returned when a question is asked without a terminal.
var ErrNotInteractive = errors.New("no interactive terminal")

// Prompter handles interactive prompts.
type Prompter struct {
	out    *output.Writer
	reader *bufio.Reader
}

// New creates a Prompter that reads answers from in.
func New(out *output.Writer, in io.Reader) *Prompter {
	return &Prompter{
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// CanPrompt reports whether both ends of the terminal are interactive and
// output is meant for a person.
func (p *Prompter) CanPrompt() bool {
	return p.out.Terminal().InteractiveEnabled() && !p.out.JSON && !p.out.Quiet
}

// Confirm asks a yes/no question. An empty answer picks defaultValue; EOF
// counts as an empty answer.
func (p *Prompter) Confirm(message string, defaultValue bool) (bool, error) {
	if !p.CanPrompt() {
		return defaultValue, ErrNotInteractive
	}

	choices := "y/N"
	if defaultValue {
		choices = "Y/n"
	}

	p.out.Print("%s [%s]: ", message, choices)

	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return defaultValue, fmt.Errorf("read answer: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(input)) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
