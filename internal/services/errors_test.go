package services_test

import (
	"errors"
	"testing"

	"snip/internal/history"
	"snip/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := services.Wrap(services.ErrEngineRun, "export", "run engine", "engine invocation failed", cause)
	if !errors.Is(err, services.ErrEngineRun) {
		t.Fatalf("wrapped error should match marker: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error should match cause: %v", err)
	}
}

func TestWrapNilMarkerFallsBackToUnknown(t *testing.T) {
	err := services.Wrap(nil, "export", "", "", nil)
	if !errors.Is(err, services.ErrUnknown) {
		t.Fatalf("nil marker should tag ErrUnknown: %v", err)
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		err  error
		want history.Status
	}{
		{services.Wrap(services.ErrNoSource, "export", "prepare", "", nil), history.StatusRejected},
		{services.Wrap(services.ErrSizeLimit, "export", "prepare", "", nil), history.StatusRejected},
		{services.Wrap(services.ErrEngineLoad, "export", "load", "", nil), history.StatusFailed},
		{services.Wrap(services.ErrEngineRun, "export", "run", "", nil), history.StatusFailed},
		{services.Wrap(services.ErrIO, "export", "read", "", nil), history.StatusFailed},
		{services.Wrap(services.ErrUnknown, "export", "", "", nil), history.StatusFailed},
	}
	for _, tc := range cases {
		if got := services.FailureStatus(tc.err); got != tc.want {
			t.Errorf("FailureStatus(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
