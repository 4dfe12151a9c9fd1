package scenario

// Call records one handler invocation.
type Call struct {
	Handler  string
	Receiver string
}

// Entry records the outcome of one step.
type Entry struct {
	Index int
	Op    string
	// Target is the handler (and receiver) or event the step acted on.
	Target string

	// Dispatch results.
	Calls            []Call
	Prevented        bool
	Stopped          bool
	ImmediateStopped bool

	// Live registrations after the step.
	Live int

	Err error
	// ErrExpected marks Err as matching the step's expect_error.
	ErrExpected bool
	Mismatches  []string
}

// Failed reports whether the step errored unexpectedly or missed an
// expectation.
func (e *Entry) Failed() bool {
	return (e.Err != nil && !e.ErrExpected) || len(e.Mismatches) > 0
}

// Trace is the record of a scenario run.
type Trace struct {
	// RunID tags the run's log lines.
	RunID       string
	Scenario    string
	Description string
	Entries     []*Entry
	// Aborted is set when a failure stopped the run early.
	Aborted bool
}

// Failures returns the entries that failed.
func (t *Trace) Failures() []*Entry {
	var failed []*Entry
	for _, e := range t.Entries {
		if e.Failed() {
			failed = append(failed, e)
		}
	}
	return failed
}

// CallCount returns the total number of handler invocations.
func (t *Trace) CallCount() int {
	n := 0
	for _, e := range t.Entries {
		n += len(e.Calls)
	}
	return n
}
