package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// FFmpegRuntime drives an ffmpeg binary as the embedded transcoding engine.
// Each Run stages the session's virtual files into a fresh directory under
// the scratch root, executes the engine with that directory as its working
// directory, and loads produced files back into the namespace.
type FFmpegRuntime struct {
	binary      string
	probeBinary string
	scratchDir  string

	resolvedBinary string
	resolvedProbe  string
}

// NewFFmpegRuntime constructs a runtime for the given engine assets.
func NewFFmpegRuntime(binary, probeBinary, scratchDir string) *FFmpegRuntime {
	return &FFmpegRuntime{binary: binary, probeBinary: probeBinary, scratchDir: scratchDir}
}

// Load verifies both engine assets are reachable and the scratch root is
// usable. Both must resolve before the session is considered loaded.
func (r *FFmpegRuntime) Load(ctx context.Context) error {
	resolved, err := ResolveAsset(r.binary)
	if err != nil {
		return fmt.Errorf("engine binary %s: %w", r.binary, err)
	}
	r.resolvedBinary = resolved

	resolved, err = ResolveAsset(r.probeBinary)
	if err != nil {
		return fmt.Errorf("engine probe binary %s: %w", r.probeBinary, err)
	}
	r.resolvedProbe = resolved

	if err := os.MkdirAll(r.scratchDir, 0o755); err != nil {
		return fmt.Errorf("scratch directory: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// Run executes the engine with the prepared argv. The argv references files
// by their virtual names; the fresh working directory makes those names
// resolve without ever passing user-controlled paths to the engine.
func (r *FFmpegRuntime) Run(ctx context.Context, args []string, fs *MemFS, logLine LogLine) error {
	if r.resolvedBinary == "" {
		return fmt.Errorf("engine runtime not loaded")
	}

	workDir, err := os.MkdirTemp(r.scratchDir, "job-")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	staged := make(map[string]struct{})
	for _, name := range fs.Names() {
		data, err := fs.Read(name)
		if err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(workDir, name), data, 0o644); err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		staged[name] = struct{}{}
	}

	cmd := commandContext(ctx, r.resolvedBinary, args...)
	cmd.Dir = workDir
	cmd.Stdout = io.Discard
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	var tail []string
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanEngineLines)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tail = append(tail, line)
		if len(tail) > 20 {
			tail = tail[1:]
		}
		if logLine != nil {
			logLine(line)
		}
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		detail := strings.Join(tail, "; ")
		if detail != "" {
			return fmt.Errorf("engine run failed: %w: %s", err, detail)
		}
		return fmt.Errorf("engine run failed: %w", err)
	}
	if scanErr != nil {
		return fmt.Errorf("read engine output: %w", scanErr)
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return fmt.Errorf("collect outputs: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := staged[entry.Name()]; ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(workDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("collect %s: %w", entry.Name(), err)
		}
		fs.Write(entry.Name(), data)
	}
	return nil
}

// ProbeDuration reports a media file's duration in seconds using the probe
// companion. This is a UI-side helper; the export pipeline itself never
// inspects file internals.
func (r *FFmpegRuntime) ProbeDuration(ctx context.Context, path string) (float64, error) {
	probe := r.resolvedProbe
	if probe == "" {
		resolved, err := ResolveAsset(r.probeBinary)
		if err != nil {
			return 0, fmt.Errorf("engine probe binary %s: %w", r.probeBinary, err)
		}
		probe = resolved
	}
	cmd := commandContext(ctx, probe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	value := strings.TrimSpace(string(out))
	duration, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse probe output %q: %w", value, err)
	}
	return duration, nil
}

// ResolveAsset locates an engine asset: explicit paths are stat'd, bare
// names are resolved on PATH.
func ResolveAsset(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("asset name empty")
	}
	if strings.ContainsRune(trimmed, os.PathSeparator) {
		info, err := os.Stat(trimmed)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", trimmed)
		}
		return trimmed, nil
	}
	return exec.LookPath(trimmed)
}

// scanEngineLines splits on both \n and \r so in-place progress updates
// arrive as individual lines.
func scanEngineLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
