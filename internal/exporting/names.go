package exporting

import (
	"fmt"
	"strings"

	"snip/internal/timecode"
)

// OutputName is the fixed virtual name the engine writes the clip to.
const OutputName = "output_processed.mp4"

const inputStem = "input_source"

// SafeInputName derives the virtual input name from the user's filename. Only
// the lower-cased extension survives, reduced to ASCII letters and digits;
// anything else in the name is discarded. Defaults to mp4 when no usable
// extension is present.
func SafeInputName(filename string) string {
	ext := ""
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	ext = b.String()
	if ext == "" {
		ext = "mp4"
	}
	return inputStem + "." + ext
}

// SuggestedArtifactName builds the download filename for a trim range,
// e.g. split_0:05-0:15.mp4.
func SuggestedArtifactName(trim Range) string {
	return fmt.Sprintf("split_%s-%s.mp4",
		timecode.FormatDisplay(trim.Start),
		timecode.FormatDisplay(trim.End))
}
