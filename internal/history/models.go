package history

import "time"

// Status represents the lifecycle of a recorded export job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExporting Status = "exporting"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusRejected marks jobs refused before any engine interaction
	// (missing source, oversized input).
	StatusRejected Status = "rejected"
)

var allStatuses = []Status{
	StatusPending,
	StatusExporting,
	StatusCompleted,
	StatusFailed,
	StatusRejected,
}

// Valid reports whether the status is one of the known lifecycle values.
func (s Status) Valid() bool {
	for _, status := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Terminal reports whether the status is an end state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRejected:
		return true
	default:
		return false
	}
}

// Job is one export invocation as persisted in the journal.
type Job struct {
	ID              string
	SourceName      string
	SourceBytes     int64
	StartSeconds    float64
	EndSeconds      float64
	Status          Status
	ProgressPercent int
	ProgressStage   string
	ProgressMessage string
	ErrorMessage    string
	ArtifactName    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the requested clip length in seconds.
func (j *Job) Duration() float64 {
	return j.EndSeconds - j.StartSeconds
}
