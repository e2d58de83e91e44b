package reminder

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestFunc(t *testing.T) {
	var got []string
	var trigger Trigger = Func(func(reason string) { got = append(got, reason) })

	trigger.Reschedule(ReasonListChanged)
	trigger.Reschedule(ReasonDataWiped)

	if len(got) != 2 || got[0] != ReasonListChanged || got[1] != ReasonDataWiped {
		t.Errorf("Unexpected reasons: %v", got)
	}
}

func TestNop(t *testing.T) {
	Nop.Reschedule(ReasonDailyWordsCached)
}

func TestLogTrigger(t *testing.T) {
	var buf bytes.Buffer
	LogTrigger{Logger: log.New(&buf, "", 0)}.Reschedule(ReasonDailyWordsCleared)

	if !strings.Contains(buf.String(), ReasonDailyWordsCleared) {
		t.Errorf("Expected reason in log output, got %q", buf.String())
	}

	// A zero LogTrigger drops requests.
	LogTrigger{}.Reschedule(ReasonDailyWordsCleared)
}
