package exporting

import "strconv"

// BuildEngineArgs assembles the fixed engine argument template for a trim:
// seek offset, input, clip duration, fast low-effort H.264 video, a pixel
// format every player accepts, AAC audio, relocated container metadata for
// progressive playback, and negative timestamps normalized to zero. The
// policy favors speed and compatibility over file size and is deliberately
// not configurable.
func BuildEngineArgs(trim Range, inputName, outputName string) []string {
	return []string{
		"-ss", formatSeconds(trim.Start),
		"-i", inputName,
		"-t", formatSeconds(trim.Duration()),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-avoid_negative_ts", "make_zero",
		outputName,
	}
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
