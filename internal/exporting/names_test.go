package exporting_test

import (
	"testing"

	"snip/internal/exporting"
)

func TestSafeInputName(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"movie.mp4", "input_source.mp4"},
		{"clip:weird name.mov", "input_source.mov"},
		{"UPPER.MKV", "input_source.mkv"},
		{"noextension", "input_source.mp4"},
		{"trailing.", "input_source.mp4"},
		{"http://evil.example/x.webm", "input_source.webm"},
		{"archive.tar something", "input_source.tarsomething"},
		{".hidden", "input_source.hidden"},
		{"", "input_source.mp4"},
	}
	for _, tc := range cases {
		if got := exporting.SafeInputName(tc.filename); got != tc.want {
			t.Errorf("SafeInputName(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestSuggestedArtifactName(t *testing.T) {
	got := exporting.SuggestedArtifactName(exporting.Range{Start: 5, End: 15})
	if got != "split_0:05-0:15.mp4" {
		t.Fatalf("SuggestedArtifactName = %q, want split_0:05-0:15.mp4", got)
	}
	got = exporting.SuggestedArtifactName(exporting.Range{Start: 65, End: 125})
	if got != "split_1:05-2:05.mp4" {
		t.Fatalf("SuggestedArtifactName = %q, want split_1:05-2:05.mp4", got)
	}
}

func TestBuildEngineArgs(t *testing.T) {
	args := exporting.BuildEngineArgs(exporting.Range{Start: 5, End: 15}, "input_source.mp4", "output_processed.mp4")
	want := []string{
		"-ss", "5",
		"-i", "input_source.mp4",
		"-t", "10",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-avoid_negative_ts", "make_zero",
		"output_processed.mp4",
	}
	if len(args) != len(want) {
		t.Fatalf("args length = %d, want %d (%v)", len(args), len(want), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestBuildEngineArgsFractionalSeconds(t *testing.T) {
	args := exporting.BuildEngineArgs(exporting.Range{Start: 1.5, End: 4}, "input_source.mp4", "output_processed.mp4")
	if args[1] != "1.5" {
		t.Fatalf("seek = %q, want 1.5", args[1])
	}
	if args[5] != "2.5" {
		t.Fatalf("duration = %q, want 2.5", args[5])
	}
}
