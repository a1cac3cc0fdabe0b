package model

// Outcome summarizes a load so an empty collection can be told apart from a failed one.
type Outcome string

const (
	// OutcomeComplete means every discovered file became a post.
	OutcomeComplete Outcome = "complete"
	// OutcomePartial means some files were skipped.
	OutcomePartial Outcome = "partial"
	// OutcomeEmpty means discovery succeeded but found no files.
	OutcomeEmpty Outcome = "empty"
	// OutcomeUnavailable means files were expected but none could be loaded.
	OutcomeUnavailable Outcome = "unavailable"
)

// SkippedFile records a discovered file that did not make it into the collection.
type SkippedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// StrategyError records a discovery strategy that failed.
type StrategyError struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}

type LoadReport struct {
	RunID      string          `json:"runId"`
	Strategy   string          `json:"strategy"`
	Discovered int             `json:"discovered"`
	Loaded     int             `json:"loaded"`
	Skipped    []SkippedFile   `json:"skipped,omitempty"`
	Discovery  []StrategyError `json:"discoveryErrors,omitempty"`
}

func (r LoadReport) Outcome() Outcome {
	switch {
	case r.Discovered == 0 && len(r.Discovery) > 0:
		return OutcomeUnavailable
	case r.Discovered == 0:
		return OutcomeEmpty
	case r.Loaded == 0:
		return OutcomeUnavailable
	case len(r.Skipped) > 0:
		return OutcomePartial
	default:
		return OutcomeComplete
	}
}
