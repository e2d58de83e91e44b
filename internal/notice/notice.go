// Package notice delivers short user-facing messages (the terminal
// equivalent of a toast) about list changes.
package notice

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Kind classifies a notice.
type Kind int

const (
	// Info is neutral information, such as a word already in a list.
	Info Kind = iota
	// Success confirms a completed change.
	Success
	// Error reports a rejected or failed operation.
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Sink receives notices. Implementations must not block the caller for
// long; the result of a notice is never inspected.
type Sink interface {
	Notify(message string, kind Kind)
}

// Discard drops every notice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(string, Kind) {}

// Terminal writes one styled line per notice.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	styles map[Kind]lipgloss.Style
}

// NewTerminal creates a terminal sink writing to out.
func NewTerminal(out io.Writer) *Terminal {
	base := lipgloss.NewStyle().Bold(true)
	return &Terminal{
		out: out,
		styles: map[Kind]lipgloss.Style{
			Info:    base.Foreground(lipgloss.Color("39")),
			Success: base.Foreground(lipgloss.Color("42")),
			Error:   base.Foreground(lipgloss.Color("196")),
		},
	}
}

var badges = map[Kind]string{
	Info:    "i",
	Success: "✓",
	Error:   "✗",
}

// Notify writes the message prefixed with a colored badge.
func (t *Terminal) Notify(message string, kind Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	badge := t.styles[kind].Render(badges[kind])
	fmt.Fprintf(t.out, "%s %s\n", badge, message)
}

// Entry is a recorded notice.
type Entry struct {
	Message string
	Kind    Kind
}

// Recorder keeps every notice in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Notify records the notice.
func (r *Recorder) Notify(message string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Message: message, Kind: kind})
}

// Entries returns a copy of the recorded notices.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Reset drops recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
