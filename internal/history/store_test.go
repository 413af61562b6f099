package history_test

import (
	"context"
	"testing"

	"snip/internal/history"
	"snip/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewJobStartsPending(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "movie.mp4", 2048, 5, 15)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if job.ID == "" {
		t.Fatal("job ID must be assigned")
	}
	if job.Status != history.StatusPending {
		t.Fatalf("status = %v, want pending", job.Status)
	}
	if job.Duration() != 10 {
		t.Fatalf("duration = %v, want 10", job.Duration())
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be set")
	}
}

func TestProgressAndTerminalOutcome(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "movie.mp4", 2048, 0, 10)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	if err := store.UpdateStatus(ctx, job.ID, history.StatusExporting); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := store.UpdateProgress(ctx, job.ID, 40, "encoding", "Encoding 40%"); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}

	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != history.StatusExporting || got.ProgressPercent != 40 || got.ProgressStage != "encoding" {
		t.Fatalf("job = %+v", got)
	}

	if err := store.Finish(ctx, job.ID, history.StatusCompleted, "", "split_0:00-0:10.mp4"); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, err = store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != history.StatusCompleted || got.ArtifactName != "split_0:00-0:10.mp4" {
		t.Fatalf("finished job = %+v", got)
	}
}

func TestFinishRejectsNonTerminalStatus(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.NewJob(ctx, "movie.mp4", 1, 0, 1)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if err := store.Finish(ctx, job.ID, history.StatusExporting, "", ""); err == nil {
		t.Fatal("Finish must reject non-terminal status")
	}
}

func TestListNewestFirstAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.NewJob(ctx, "a.mp4", 1, 0, 1)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	second, err := store.NewJob(ctx, "b.mp4", 1, 0, 1)
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	jobs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len = %d, want 2", len(jobs))
	}
	if jobs[0].ID != second.ID {
		t.Fatal("list should be newest first")
	}

	if err := store.Finish(ctx, first.ID, history.StatusFailed, "engine run error", ""); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	removed, err := store.Clear(ctx, false)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1 (only terminal jobs)", removed)
	}

	removed, err = store.Clear(ctx, true)
	if err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
}

func TestGetByIDMissing(t *testing.T) {
	store := openStore(t)
	if _, err := store.GetByID(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for missing job")
	}
}
