package notice

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminal_Notify(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Notify("List SAT created", Success)
	term.Notify("List SAT already exists", Error)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "List SAT created") || !strings.Contains(lines[0], "✓") {
		t.Errorf("unexpected success line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "✗") {
		t.Errorf("unexpected error line: %q", lines[1])
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Error("empty recorder should have no last entry")
	}

	r.Notify("one", Info)
	r.Notify("two", Error)

	last, ok := r.Last()
	if !ok || last.Message != "two" || last.Kind != Error {
		t.Errorf("Last = %+v, %v", last, ok)
	}
	if got := len(r.Entries()); got != 2 {
		t.Errorf("Entries = %d, want 2", got)
	}

	r.Reset()
	if got := len(r.Entries()); got != 0 {
		t.Errorf("Entries after Reset = %d", got)
	}
}

func TestKindString(t *testing.T) {
	if Success.String() != "success" || Error.String() != "error" || Info.String() != "info" {
		t.Error("unexpected Kind strings")
	}
}
