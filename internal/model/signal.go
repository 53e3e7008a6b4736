package model

import "strconv"

// TriggerResult is the outcome of evaluating one price against a band list.
// The zero value means no band matched.
type TriggerResult struct {
	Matched bool
	Index   int // 1-based position of the matched band
	Band    Band
}

// Level returns the display label of a matched band, e.g. "L2".
func (r TriggerResult) Level() string {
	if !r.Matched {
		return ""
	}
	return "L" + strconv.Itoa(r.Index)
}

// OutcomeStatus summarizes how an instrument's evaluation ended.
type OutcomeStatus string

const (
	StatusUnavailable OutcomeStatus = "UNAVAILABLE"
	StatusWait        OutcomeStatus = "WAIT"
	StatusMatched     OutcomeStatus = "MATCHED"
)

// Outcome is the per-instrument result of one run.
type Outcome struct {
	Instrument Instrument
	Snapshot   *IndicatorSnapshot
	Result     TriggerResult
	Status     OutcomeStatus
	Err        error // data error when Status is StatusUnavailable
	NotifyErr  error
	JournalErr error
}
