package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// ProgressIndicator renders a terminal spinner next to a message while
// a long running operation (detection, training) is in flight.
type ProgressIndicator struct {
	mu         sync.Mutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	StopMsg    string
	stopChan   chan struct{}
}

const (
	successColor = "\x1b[32m"
	defaultColor = "\x1b[0m"
)

// NewProgressIndicator instantiates a new progress indicator writing to stderr.
func NewProgressIndicator(msg string, d time.Duration) *ProgressIndicator {
	return &ProgressIndicator{
		delay:    d,
		writer:   os.Stderr,
		message:  msg,
		stopChan: make(chan struct{}, 1),
	}
}

// Start starts the progress indicator.
func (pi *ProgressIndicator) Start() {
	go func() {
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-pi.stopChan:
					return
				default:
					pi.mu.Lock()
					output := fmt.Sprintf("\r%s%s %c%s", pi.message, successColor, r, defaultColor)
					fmt.Fprint(pi.writer, output)
					pi.lastOutput = output
					pi.mu.Unlock()

					time.Sleep(pi.delay)
				}
			}
		}
	}()
}

// Stop stops the progress indicator and prints the stop message, if any.
func (pi *ProgressIndicator) Stop() {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.clear()
	if len(pi.StopMsg) > 0 {
		fmt.Fprintln(pi.writer, pi.StopMsg)
	}
	pi.stopChan <- struct{}{}
}

// clear deletes the last rendered line. Caller must hold the lock.
func (pi *ProgressIndicator) clear() {
	n := utf8.RuneCountInString(pi.lastOutput)
	fmt.Fprint(pi.writer, "\r"+strings.Repeat(" ", n)+"\r\033[K")
	pi.lastOutput = ""
}
