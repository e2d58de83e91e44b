// Package reminder is the hook into push-notification scheduling. The
// scheduler itself lives outside this module; the store side only tells it
// that cache or list state changed.
package reminder

import "log"

// Trigger asks the notification scheduler to re-plan. Calls are
// fire-and-forget.
type Trigger interface {
	Reschedule(reason string)
}

// Func adapts a function to Trigger.
type Func func(reason string)

// Reschedule calls f.
func (f Func) Reschedule(reason string) {
	f(reason)
}

// Nop ignores every trigger.
var Nop Trigger = Func(func(string) {})

// LogTrigger logs reschedule requests. It stands in for a real scheduler
// when running from the command line.
type LogTrigger struct {
	Logger *log.Logger
}

// Reschedule logs the reason.
func (t LogTrigger) Reschedule(reason string) {
	if t.Logger == nil {
		return
	}
	t.Logger.Printf("reminders rescheduled: %s", reason)
}

// Reasons passed to Reschedule.
const (
	ReasonDailyWordsCached  = "daily-words-cached"
	ReasonDailyWordsCleared = "daily-words-cleared"
	ReasonListChanged       = "list-changed"
	ReasonDataWiped         = "data-wiped"
)
