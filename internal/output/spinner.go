package output

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner and degrades to plain text when the
// terminal cannot animate.
type Spinner struct {
	spinner  *spinner.Spinner
	message  string
	writer   *Writer
	disabled bool
}

// Spinner creates a spinner for an operation that waits on the host.
func (w *Writer) Spinner(message string) *Spinner {
	if w.Quiet || !w.terminal.SpinnersEnabled() {
		return &Spinner{disabled: true, message: message, writer: w}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = w.Out
	s.Suffix = " " + message

	return &Spinner{spinner: s, message: message, writer: w}
}

// Start begins the animation, or prints the message once when disabled.
func (s *Spinner) Start() {
	if s.disabled {
		s.writer.Print("%s... ", s.message)
		return
	}

	s.spinner.Start()
}

// Stop stops the animation.
func (s *Spinner) Stop() {
	if !s.disabled {
		s.spinner.Stop()
	}
}

// StopWithSuccess stops the spinner and reports success.
func (s *Spinner) StopWithSuccess(message string) {
	s.finish("done", message, s.writer.Success)
}

// StopWithFailure stops the spinner and reports failure.
func (s *Spinner) StopWithFailure(message string) {
	s.finish("failed", message, s.writer.Failure)
}

// StopWithWarning stops the spinner and reports a warning.
func (s *Spinner) StopWithWarning(message string) {
	s.finish("warning", message, s.writer.Warning)
}

// UpdateMessage changes the spinner message.
func (s *Spinner) UpdateMessage(message string) {
	s.message = message
	if !s.disabled {
		s.spinner.Suffix = " " + message
	}
}

func (s *Spinner) finish(word, message string, report func(string, ...any)) {
	if s.disabled {
		s.writer.Println(word)
	} else {
		s.spinner.Stop()
	}

	if message != "" {
		report("%s", message)
	}
}
