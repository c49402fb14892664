package syncer

import "time"

// SourceOutcome records what happened to one source during a sync pass.
// Failures are captured here instead of propagating, so one broken source
// never blocks the rest of the pass.
type SourceOutcome struct {
	SourceID    string `json:"source_id"`
	Books       int    `json:"books"`
	Tracks      int    `json:"tracks"`
	Synthesized bool   `json:"synthesized"`
	Skipped     bool   `json:"skipped"`
	Error       string `json:"error,omitempty"`
}

// Failed reports whether this source's pipeline aborted.
func (o SourceOutcome) Failed() bool {
	return o.Error != ""
}

// Summary aggregates the outcome of one full sync pass.
type Summary struct {
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Skipped    bool            `json:"skipped"`
	Forced     bool            `json:"forced"`
	Sources    []SourceOutcome `json:"sources,omitempty"`
}

// FailedSources returns how many sources aborted during the pass.
func (s *Summary) FailedSources() int {
	n := 0
	for _, o := range s.Sources {
		if o.Failed() {
			n++
		}
	}
	return n
}
