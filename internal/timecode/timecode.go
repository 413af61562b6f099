// Package timecode converts between seconds and the textual time formats the
// export pipeline deals in: the M:SS display form shown to users and the
// HH:MM:SS.frac timestamps found in the engine's progress log.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDisplay renders a duration in seconds as M:SS with the seconds
// component zero-padded, e.g. 65 -> "1:05".
func FormatDisplay(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// ParseUserTime parses a user-entered position into seconds. Plain numbers
// are taken as seconds; colon-delimited values as M:SS or H:MM:SS.
func ParseUserTime(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty time value")
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", text)
	}
	total := 0.0
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("invalid time %q", text)
		}
		total = total*60 + value
	}
	return total, nil
}

// ParseEngineTimestamp parses an HH:MM:SS.frac timestamp into seconds. The
// engine log stream is free text and partial lines may arrive, so anything
// with fewer than three colon-delimited parts parses to 0 instead of failing.
func ParseEngineTimestamp(text string) float64 {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 3 {
		return 0
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0
	}
	return hours*3600 + minutes*60 + seconds
}
