package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"snip/internal/exporting"
)

// progressRenderer turns orchestrator updates into terminal output: a live
// bar on interactive terminals, plain lines everywhere else. Updates arrive
// from the export goroutine, the engine log sink, and the stall timer.
type progressRenderer struct {
	out         io.Writer
	interactive bool

	mu       sync.Mutex
	bar      *progressbar.ProgressBar
	lastLine string
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	r := &progressRenderer{out: out, interactive: isInteractive(out)}
	if r.interactive {
		r.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Preparing"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	return r
}

func (r *progressRenderer) observe(update exporting.Update) {
	label := stageLabel(update.Stage)
	if update.Stalled {
		label += " (stalled)"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.interactive {
		r.bar.Describe(label)
		_ = r.bar.Set(update.Percent)
		return
	}

	line := fmt.Sprintf("%s: %s", label, update.Message)
	if line == r.lastLine {
		return
	}
	r.lastLine = line
	fmt.Fprintln(r.out, line)
}

func (r *progressRenderer) done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

func stageLabel(stage exporting.Stage) string {
	return cases.Title(language.Und).String(string(stage))
}

func isInteractive(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
