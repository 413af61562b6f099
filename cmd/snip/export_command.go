package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"snip/internal/config"
	"snip/internal/engine"
	"snip/internal/exporting"
	"snip/internal/timecode"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var endFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Trim a clip out of a media file",
		Long: `Export encodes the chosen interval of a media file into a standalone clip.
Start and end accept plain seconds (90.5) or colon notation (1:30).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(ctx, cmd, args[0], startFlag, endFlag, outputFlag)
		},
	}

	cmd.Flags().StringVarP(&startFlag, "start", "s", "0", "Clip start (seconds or M:SS)")
	cmd.Flags().StringVarP(&endFlag, "end", "e", "", "Clip end (seconds or M:SS)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination path (defaults to the output directory)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runExport(ctx *commandContext, cmd *cobra.Command, inputPath, startFlag, endFlag, outputFlag string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	trim, err := parseTrimRange(startFlag, endFlag)
	if err != nil {
		return err
	}

	resolvedInput, err := config.ExpandPath(inputPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(resolvedInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	source := exporting.NewSource(filepath.Base(resolvedInput), data)

	if err := boundRangeToSource(cmd, cfg, resolvedInput, &trim); err != nil {
		return err
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another export is already running (lock held at %s)", cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	orc, err := ctx.newOrchestrator(store)
	if err != nil {
		return err
	}

	renderer := newProgressRenderer(cmd.ErrOrStderr())
	artifact, err := orc.Export(cmd.Context(), source, trim, renderer.observe)
	renderer.done()
	if err != nil {
		return fmt.Errorf("%s: %w", exporting.UserMessage(err), err)
	}

	destination := strings.TrimSpace(outputFlag)
	if destination == "" {
		destination = filepath.Join(cfg.Paths.OutputDir, artifact.SuggestedName)
	} else {
		if destination, err = config.ExpandPath(destination); err != nil {
			return err
		}
	}
	if err := os.WriteFile(destination, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write clip: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", destination, len(artifact.Data))
	return nil
}

func parseTrimRange(startFlag, endFlag string) (exporting.Range, error) {
	start, err := timecode.ParseUserTime(startFlag)
	if err != nil {
		return exporting.Range{}, fmt.Errorf("start: %w", err)
	}
	end, err := timecode.ParseUserTime(endFlag)
	if err != nil {
		return exporting.Range{}, fmt.Errorf("end: %w", err)
	}
	trim := exporting.Range{Start: start, End: end}
	if err := trim.Validate(); err != nil {
		return exporting.Range{}, err
	}
	return trim, nil
}

// boundRangeToSource clamps the requested interval to the probed media
// duration. A probe failure only skips the clamp; the engine surfaces real
// problems during the export itself.
func boundRangeToSource(cmd *cobra.Command, cfg *config.Config, path string, trim *exporting.Range) error {
	runtime := engine.NewFFmpegRuntime(cfg.Engine.Binary, cfg.Engine.ProbeBinary, cfg.Paths.ScratchDir)
	duration, err := runtime.ProbeDuration(cmd.Context(), path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not probe duration: %v\n", err)
		return nil
	}
	if trim.Start >= duration {
		return fmt.Errorf("start %s is beyond the media duration %s",
			timecode.FormatDisplay(trim.Start), timecode.FormatDisplay(duration))
	}
	if trim.End > duration {
		trim.End = duration
	}
	return nil
}
