package exporting

import (
	"errors"
	"fmt"
)

// Stage names one step of the export state machine.
type Stage string

const (
	StageIdle       Stage = "idle"
	StagePreparing  Stage = "preparing"
	StageLoading    Stage = "loading"
	StageWriting    Stage = "writing"
	StageEncoding   Stage = "encoding"
	StageReading    Stage = "reading"
	StageFinalizing Stage = "finalizing"
	StageResolved   Stage = "resolved"
)

// Source is the user-selected input. The orchestrator borrows the content for
// the duration of one export; ownership stays with the caller.
type Source struct {
	// Name is the declared filename. It is used only to derive the input
	// extension and never reaches the engine.
	Name string
	// Size is the declared byte size, validated against the input ceiling
	// before any engine interaction.
	Size int64
	Data []byte
}

// NewSource builds a Source whose size matches its content.
func NewSource(name string, data []byte) *Source {
	return &Source{Name: name, Size: int64(len(data)), Data: data}
}

// Range is the user-chosen [start, end] interval in seconds.
type Range struct {
	Start float64
	End   float64
}

// Duration returns the requested clip length in seconds.
func (r Range) Duration() float64 {
	return r.End - r.Start
}

// Validate checks the basic range invariant. The caller supplies values
// already bounded by the source duration.
func (r Range) Validate() error {
	if r.Start < 0 {
		return fmt.Errorf("range start %v is negative", r.Start)
	}
	if r.End <= r.Start {
		return fmt.Errorf("range end %v is not after start %v", r.End, r.Start)
	}
	return nil
}

// Update is the progress signal published to the UI shell.
type Update struct {
	JobID   string
	Stage   Stage
	Percent int
	Message string
	Stalled bool
}

// Artifact is a successful export's result.
type Artifact struct {
	Data          []byte
	SuggestedName string
}

// ErrBusy is returned when an export is submitted while another is still in
// progress (including the short terminal display window).
var ErrBusy = errors.New("an export is already in progress")
