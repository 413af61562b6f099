package exporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"snip/internal/engine"
	"snip/internal/history"
	"snip/internal/logging"
	"snip/internal/services"
)

const (
	defaultStallTimeout = 5 * time.Second
	// DefaultMaxInputBytes is the 1 GiB input ceiling.
	DefaultMaxInputBytes = int64(1) << 30

	progressPersistInterval = 2 * time.Second
)

// Options tunes orchestrator timing and limits. Zero StallTimeout and
// MaxInputBytes fall back to defaults; ResolveDelay is taken as-is (zero
// releases the orchestrator immediately after a job resolves).
type Options struct {
	StallTimeout  time.Duration
	ResolveDelay  time.Duration
	LoadTimeout   time.Duration
	MaxInputBytes int64
}

// Orchestrator serializes export jobs against a single engine session.
type Orchestrator struct {
	handle *engine.Handle
	store  *history.Store
	logger *slog.Logger

	stallTimeout  time.Duration
	resolveDelay  time.Duration
	loadTimeout   time.Duration
	maxInputBytes int64

	mu   sync.Mutex
	busy bool
}

// New constructs an orchestrator. The history store is optional; a nil store
// skips journaling.
func New(handle *engine.Handle, store *history.Store, logger *slog.Logger, opts Options) *Orchestrator {
	if opts.StallTimeout <= 0 {
		opts.StallTimeout = defaultStallTimeout
	}
	if opts.MaxInputBytes <= 0 {
		opts.MaxInputBytes = DefaultMaxInputBytes
	}
	return &Orchestrator{
		handle:        handle,
		store:         store,
		logger:        logging.NewComponentLogger(logger, "exporting"),
		stallTimeout:  opts.StallTimeout,
		resolveDelay:  opts.ResolveDelay,
		loadTimeout:   opts.LoadTimeout,
		maxInputBytes: opts.MaxInputBytes,
	}
}

// InProgress reports whether a job is in flight or still inside its terminal
// display window.
func (o *Orchestrator) InProgress() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Export runs one trim job to completion. onUpdate receives every published
// progress signal; it is called synchronously and must not block.
func (o *Orchestrator) Export(ctx context.Context, source *Source, trim Range, onUpdate func(Update)) (artifact *Artifact, err error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	o.busy = true
	o.mu.Unlock()

	session := o.handle.Current()
	job := &jobState{ctx: ctx, orc: o, onUpdate: onUpdate, stage: StageIdle}

	sourceName := ""
	var sourceSize int64
	if source != nil {
		sourceName, sourceSize = source.Name, source.Size
	}
	if o.store != nil {
		if rec, herr := o.store.NewJob(ctx, sourceName, sourceSize, trim.Start, trim.End); herr != nil {
			o.logger.Warn("failed to record export job", logging.Error(herr))
			job.id = uuid.NewString()
		} else {
			job.id = rec.ID
			if serr := o.store.UpdateStatus(ctx, job.id, history.StatusExporting); serr != nil {
				o.logger.Warn("failed to mark job exporting", logging.Error(serr))
			}
		}
	} else {
		job.id = uuid.NewString()
	}

	defer func() {
		if r := recover(); r != nil {
			err = services.Wrap(services.ErrUnknown, "export", string(job.currentStage()),
				fmt.Sprintf("unexpected panic: %v", r), nil)
			artifact = nil
		}
		session.SetLogSink(nil)
		job.stopStall()
		o.resolve(job, artifact, err)
		o.scheduleRelease()
	}()

	job.publish(StagePreparing, 0, "Preparing export")
	if source == nil {
		return nil, services.Wrap(services.ErrNoSource, "export", "prepare", "no media source selected", nil)
	}
	if verr := trim.Validate(); verr != nil {
		return nil, services.Wrap(services.ErrUnknown, "export", "prepare", "invalid trim range", verr)
	}
	if source.Size > o.maxInputBytes {
		return nil, services.Wrap(services.ErrSizeLimit, "export", "prepare",
			fmt.Sprintf("input is %d bytes, ceiling is %d", source.Size, o.maxInputBytes), nil)
	}

	inputName := SafeInputName(source.Name)
	job.setTracker(newProgressTracker(trim.Duration()))
	session.SetLogSink(job.observeLine)

	if !session.IsLoaded() {
		job.publish(StageLoading, 0, "Loading engine")
		loadCtx := ctx
		if o.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(ctx, o.loadTimeout)
			defer cancel()
		}
		if lerr := session.EnsureLoaded(loadCtx); lerr != nil {
			return nil, services.Wrap(services.ErrEngineLoad, "export", "load engine", "engine failed to initialize", lerr)
		}
	}

	job.publish(StageWriting, 0, "Writing source")
	if werr := session.WriteInput(inputName, source.Data); werr != nil {
		return nil, services.Wrap(services.ErrIO, "export", "write input", "failed to write source into the engine namespace", werr)
	}

	job.publish(StageEncoding, 0, "Encoding clip")
	job.armStall(o.stallTimeout)
	runErr := session.Run(ctx, BuildEngineArgs(trim, inputName, OutputName)...)
	job.stopStall()
	if runErr != nil {
		return nil, services.Wrap(services.ErrEngineRun, "export", "run engine", "engine invocation failed", runErr)
	}

	job.publish(StageReading, job.percent(), "Reading output")
	data, rerr := session.ReadOutput(OutputName)
	if rerr != nil {
		return nil, services.Wrap(services.ErrIO, "export", "read output", "engine ran but produced no output", rerr)
	}

	job.publish(StageFinalizing, 100, "Finalizing")
	for _, name := range []string{inputName, OutputName} {
		if cerr := session.Remove(name); cerr != nil {
			o.logger.Debug("cleanup failed", logging.String("file", name), logging.Error(cerr))
		}
	}

	return &Artifact{Data: data, SuggestedName: SuggestedArtifactName(trim)}, nil
}

func (o *Orchestrator) resolve(job *jobState, artifact *Artifact, err error) {
	if err != nil {
		if errors.Is(err, ErrBusy) {
			return
		}
		if o.store != nil && job.id != "" {
			if ferr := o.store.Finish(context.Background(), job.id, services.FailureStatus(err), err.Error(), ""); ferr != nil {
				o.logger.Warn("failed to record export outcome", logging.Error(ferr))
			}
		}
		o.logger.Error("export failed",
			logging.String(logging.FieldJobID, job.id),
			logging.Error(err),
		)
		job.publish(StageResolved, job.percent(), UserMessage(err))
		return
	}

	if o.store != nil && job.id != "" {
		if ferr := o.store.Finish(context.Background(), job.id, history.StatusCompleted, "", artifact.SuggestedName); ferr != nil {
			o.logger.Warn("failed to record export outcome", logging.Error(ferr))
		}
	}
	o.logger.Info("export complete",
		logging.String(logging.FieldJobID, job.id),
		logging.String(logging.FieldArtifact, artifact.SuggestedName),
		logging.Int("artifact_bytes", len(artifact.Data)),
	)
	job.publish(StageResolved, 100, "Export complete")
}

func (o *Orchestrator) scheduleRelease() {
	release := func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}
	if o.resolveDelay <= 0 {
		release()
		return
	}
	time.AfterFunc(o.resolveDelay, release)
}

// UserMessage summarizes a pipeline error for end users. Engine and IO
// failures share one generic message; detail stays in the logs.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNoSource):
		return "No media file selected"
	case errors.Is(err, services.ErrSizeLimit):
		return "File exceeds the input size limit"
	case errors.Is(err, services.ErrEngineLoad):
		return "Transcoding engine failed to load"
	default:
		return "Export failed"
	}
}

// jobState carries one job's mutable progress and stall state. The log sink,
// the stall timer, and the orchestrator goroutine all touch it.
type jobState struct {
	ctx      context.Context
	orc      *Orchestrator
	onUpdate func(Update)

	mu          sync.Mutex
	id          string
	stage       Stage
	tracker     *progressTracker
	stalled     bool
	stallTimer  *time.Timer
	lastPersist time.Time
}

func (j *jobState) currentStage() Stage {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stage
}

func (j *jobState) setTracker(tracker *progressTracker) {
	j.mu.Lock()
	j.tracker = tracker
	j.mu.Unlock()
}

func (j *jobState) percent() int {
	j.mu.Lock()
	tracker := j.tracker
	j.mu.Unlock()
	if tracker == nil {
		return 0
	}
	return tracker.Percent()
}

func (j *jobState) publish(stage Stage, percent int, message string) {
	j.mu.Lock()
	j.stage = stage
	update := Update{JobID: j.id, Stage: stage, Percent: percent, Message: message, Stalled: j.stalled}
	j.mu.Unlock()
	if j.onUpdate != nil {
		j.onUpdate(update)
	}
	j.persist(update, true)
}

// observeLine is the session log sink while this job owns the session.
func (j *jobState) observeLine(line string) {
	j.mu.Lock()
	tracker := j.tracker
	j.mu.Unlock()
	if tracker == nil {
		return
	}
	percent, advanced := tracker.Observe(line)
	if !advanced {
		return
	}

	j.mu.Lock()
	if j.stage != StageEncoding {
		j.mu.Unlock()
		return
	}
	if percent > 0 {
		j.stalled = false
		if j.stallTimer != nil {
			j.stallTimer.Stop()
		}
	}
	update := Update{JobID: j.id, Stage: StageEncoding, Percent: percent, Message: fmt.Sprintf("Encoding %d%%", percent), Stalled: j.stalled}
	j.mu.Unlock()

	if j.onUpdate != nil {
		j.onUpdate(update)
	}
	j.persist(update, false)
}

func (j *jobState) armStall(timeout time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stallTimer = time.AfterFunc(timeout, j.raiseStall)
}

// raiseStall fires when encoding has produced no progress for the stall
// window. Advisory only: the message changes, the job keeps running.
func (j *jobState) raiseStall() {
	percent := j.percent()
	j.mu.Lock()
	if j.stage != StageEncoding || percent > 0 {
		j.mu.Unlock()
		return
	}
	j.stalled = true
	update := Update{JobID: j.id, Stage: StageEncoding, Percent: 0, Message: "Encoding is taking longer than expected", Stalled: true}
	j.mu.Unlock()

	j.orc.logger.Warn("encoding stalled at 0%",
		logging.String(logging.FieldJobID, update.JobID),
		logging.String(logging.FieldErrorHint, "hard-reset the engine session if this persists"),
	)
	if j.onUpdate != nil {
		j.onUpdate(update)
	}
}

func (j *jobState) stopStall() {
	j.mu.Lock()
	if j.stallTimer != nil {
		j.stallTimer.Stop()
		j.stallTimer = nil
	}
	j.stalled = false
	j.mu.Unlock()
}

func (j *jobState) persist(update Update, force bool) {
	j.mu.Lock()
	id := j.id
	j.mu.Unlock()
	if j.orc.store == nil || id == "" {
		return
	}
	now := time.Now()
	j.mu.Lock()
	if !force && !j.lastPersist.IsZero() && now.Sub(j.lastPersist) < progressPersistInterval {
		j.mu.Unlock()
		return
	}
	j.lastPersist = now
	j.mu.Unlock()
	if uerr := j.orc.store.UpdateProgress(j.ctx, id, update.Percent, string(update.Stage), update.Message); uerr != nil {
		j.orc.logger.Warn("failed to persist export progress", logging.Error(uerr))
	}
}
