package timecode_test

import (
	"testing"

	"snip/internal/timecode"
)

func TestFormatDisplay(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{65, "1:05"},
		{65.9, "1:05"},
		{600, "10:00"},
		{3725, "62:05"},
	}
	for _, tc := range cases {
		if got := timecode.FormatDisplay(tc.seconds); got != tc.want {
			t.Errorf("FormatDisplay(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestParseUserTime(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"5", 5},
		{"90.5", 90.5},
		{"1:05", 65},
		{"10:00", 600},
		{"1:02:03", 3723},
	}
	for _, tc := range cases {
		got, err := timecode.ParseUserTime(tc.text)
		if err != nil {
			t.Errorf("ParseUserTime(%q) error: %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseUserTime(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}

	for _, text := range []string{"", "abc", "1:2:3:4", "-5", "1:-05"} {
		if _, err := timecode.ParseUserTime(text); err == nil {
			t.Errorf("ParseUserTime(%q) should fail", text)
		}
	}
}

func TestParseEngineTimestamp(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"00:01:30.50", 90.5},
		{"01:00:00.00", 3600},
		{"00:00:05", 5},
		{" 00:02:00.25 ", 120.25},
		{"garbage", 0},
		{"12:34", 0},
		{"", 0},
		{"aa:bb:cc", 0},
		{"00:01:xx", 0},
	}
	for _, tc := range cases {
		if got := timecode.ParseEngineTimestamp(tc.text); got != tc.want {
			t.Errorf("ParseEngineTimestamp(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
