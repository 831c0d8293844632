package dates

import (
	"testing"
	"time"
)

func TestParseAwardDate(t *testing.T) {
	cases := []struct {
		in   string
		want string // "" means nil
	}{
		{"2024-12-01", "2024-12-01"},
		{"2024/12/01", "2024-12-01"},
		{"2024年12月01日", "2024-12-01"},
		{"2024年12月", "2024-12-01"},
		{"2024-12", "2024-12-01"},
		{"2024-1-5", "2024-01-05"},
		{"2024-12-01 00:00:00", "2024-12-01"},
		{"", ""},
		{"   ", ""},
		{"not a date", ""},
		{"2024-13", ""},
	}

	for _, tc := range cases {
		got := ParseAwardDate(tc.in)
		if tc.want == "" {
			if got != nil {
				t.Errorf("ParseAwardDate(%q) = %v, want nil", tc.in, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("ParseAwardDate(%q) = nil, want %s", tc.in, tc.want)
			continue
		}
		if got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseAwardDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
		}
	}
}

func TestFormatAwardDate(t *testing.T) {
	if got := FormatAwardDate(nil); got != "" {
		t.Errorf("FormatAwardDate(nil) = %q, want empty", got)
	}
	d := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatAwardDate(&d); got != "2024-12-01" {
		t.Errorf("FormatAwardDate = %q, want 2024-12-01", got)
	}
}
