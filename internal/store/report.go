package store

import (
	"fmt"
	"strings"
)

// Granularity controls how a user-data wipe is broken into statements.
type Granularity int

const (
	// GranularityBatched runs each wipe step as a single statement.
	GranularityBatched Granularity = iota

	// GranularityPerRow selects the affected rows first and touches them one
	// statement at a time, so one failing row cannot abort its whole step.
	GranularityPerRow
)

func (g Granularity) String() string {
	switch g {
	case GranularityBatched:
		return "batched"
	case GranularityPerRow:
		return "per-row"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// Names of the steps recorded in maintenance reports.
const (
	StepClearAllTx       = "clear-all-transaction"
	StepWipeCache        = "wipe-cache"
	StepWipeCustomLists  = "wipe-custom-lists"
	StepEmptyDefaultList = "empty-default-list"
	StepSeedDefaultList  = "seed-default-list"
)

// StepResult is the outcome of one guarded maintenance step.
type StepResult struct {
	Name string
	Err  error
}

// Report collects the step outcomes of a maintenance operation. Step
// failures are recorded here instead of being returned; only a failure to
// restore the default list is returned to the caller.
type Report struct {
	Operation string
	Steps     []StepResult
}

// Record appends a step outcome.
func (r *Report) Record(name string, err error) {
	r.Steps = append(r.Steps, StepResult{Name: name, Err: err})
}

// Failed returns the steps that did not succeed.
func (r *Report) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// OK reports whether every step succeeded.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(r.Operation)
	for _, s := range r.Steps {
		if s.Err != nil {
			fmt.Fprintf(&b, "\n  %s: %v", s.Name, s.Err)
		} else {
			fmt.Fprintf(&b, "\n  %s: ok", s.Name)
		}
	}
	return b.String()
}
