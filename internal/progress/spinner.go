package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerInterval = 100 * time.Millisecond
	lineWidth       = 80
)

// Spinner displays an animated spinner with a message during long operations.
// In non-TTY environments, it prints the message once without animation.
type Spinner struct {
	mu      sync.Mutex
	output  io.Writer
	message string
	done    chan struct{}
	exited  chan struct{}
	running bool
	stopped bool
	isTTY   bool
}

// NewSpinner creates a new spinner that writes to the given output.
// If output is nil, os.Stderr is used.
func NewSpinner(output io.Writer) *Spinner {
	if output == nil {
		output = os.Stderr
	}
	return &Spinner{
		output: output,
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		isTTY:  ShouldShowProgress(),
	}
}

// Start begins the spinner animation with the given message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	s.message = message
	if s.running || s.stopped {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	if !s.isTTY {
		fmt.Fprintf(s.output, "%s\n", message)
		close(s.exited)
		return
	}

	go s.animate()
}

// SetMessage updates the spinner message while it's running.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Batches is a progress callback for the AUR client; it rewrites the
// message with the batch count. Safe to call from several goroutines.
func (s *Spinner) Batches(done, total int) {
	s.SetMessage(BatchMessage(done, total))
}

// Stop halts the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.finish("")
}

// StopWithMessage halts the spinner and prints a final message.
func (s *Spinner) StopWithMessage(message string) {
	s.finish(message)
}

func (s *Spinner) finish(message string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	running := s.running
	s.mu.Unlock()

	close(s.done)
	if running {
		// Wait so the last frame can't land after the cleared line.
		<-s.exited
	}

	switch {
	case s.isTTY && running:
		fmt.Fprintf(s.output, "\r%s\r", strings.Repeat(" ", lineWidth))
		if message != "" {
			fmt.Fprintf(s.output, "%s\n", message)
		}
	case message != "":
		fmt.Fprintf(s.output, "%s\n", message)
	}
}

func (s *Spinner) animate() {
	defer close(s.exited)

	frame := 0
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()

			line := fmt.Sprintf("\r%s %s", spinnerFrames[frame%len(spinnerFrames)], msg)
			if pad := lineWidth - len(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
			fmt.Fprint(s.output, line)
			frame++
		}
	}
}
