package exporting

import (
	"math"
	"strings"
	"sync"

	"snip/internal/timecode"
)

// progressTracker maps engine log lines to a monotonic 0-100 percent. The
// raw engine stream is not guaranteed monotonic, so a later smaller ratio is
// ignored rather than republished.
type progressTracker struct {
	mu       sync.Mutex
	duration float64
	percent  int
}

func newProgressTracker(duration float64) *progressTracker {
	return &progressTracker{duration: duration}
}

// Observe scans one log line for a time=<timestamp> token. It returns the
// current percent and whether this line advanced it.
func (t *progressTracker) Observe(line string) (int, bool) {
	idx := strings.Index(line, "time=")
	if idx < 0 {
		return t.Percent(), false
	}
	token := line[idx+len("time="):]
	if end := strings.IndexAny(token, " \t"); end >= 0 {
		token = token[:end]
	}
	seconds := timecode.ParseEngineTimestamp(token)
	if t.duration <= 0 {
		return t.Percent(), false
	}

	percent := int(math.Round(seconds / t.duration * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if percent <= t.percent {
		return t.percent, false
	}
	t.percent = percent
	return t.percent, true
}

// Percent returns the highest percent observed so far.
func (t *progressTracker) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.percent
}
