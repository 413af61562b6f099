package services

import (
	"errors"
	"fmt"
	"strings"

	"snip/internal/history"
)

var (
	// ErrNoSource marks an export request that arrived without a media source.
	ErrNoSource = errors.New("no source selected")
	// ErrSizeLimit marks input rejected for exceeding the size ceiling.
	ErrSizeLimit = errors.New("input exceeds size limit")
	// ErrEngineLoad marks a failure to initialize the transcoding engine.
	ErrEngineLoad = errors.New("engine load error")
	// ErrEngineRun marks a failed engine invocation.
	ErrEngineRun = errors.New("engine run error")
	// ErrIO marks a virtual filesystem read or write failure.
	ErrIO = errors.New("virtual filesystem error")
	// ErrUnknown is the catch-all for unexpected pipeline failures.
	ErrUnknown = errors.New("unknown export error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later status classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrUnknown
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a pipeline error to the history status the orchestrator
// should persist after the job fails.
func FailureStatus(err error) history.Status {
	switch {
	case errors.Is(err, ErrNoSource), errors.Is(err, ErrSizeLimit):
		return history.StatusRejected
	default:
		return history.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "export failure"
	}
	return strings.Join(parts, ": ")
}
