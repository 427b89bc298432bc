// Package progress renders use-case progress to the terminal.
package progress

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/trebuchet-org/zkdeploy/internal/usecase"
)

// SpinnerSink shows a spinner while long-running stages (estimation,
// broadcast, confirmation wait) are in flight.
type SpinnerSink struct {
	spinner *spinner.Spinner
}

// NewSpinnerSink creates a spinner-based progress sink.
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false
	return &SpinnerSink{spinner: s}
}

// OnProgress handles progress events.
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		r.spinner.Suffix = " " + event.Message
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Message != "" {
		fmt.Println(event.Message)
	}
}

// Info prints an informational line, pausing the spinner if needed.
func (r *SpinnerSink) Info(message string) {
	if r.spinner.Active() {
		r.spinner.Stop()
		defer r.spinner.Start()
	}
	fmt.Println(message)
}

// Error prints an error line in red.
func (r *SpinnerSink) Error(message string) {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	color.New(color.FgRed).Fprintln(os.Stderr, message)
}

// Stop halts the spinner; safe to call when it is not running.
func (r *SpinnerSink) Stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// NewNopSink returns a sink that discards all events.
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}
