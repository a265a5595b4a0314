package service

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		want   string // formatted result when wantOK
	}{
		{
			name:   "ISO date",
			raw:    "2023-05-01",
			wantOK: true,
			want:   "Mon May 01 2023",
		},
		{
			name:   "stored text form round-trips",
			raw:    "Mon May 01 2023",
			wantOK: true,
			want:   "Mon May 01 2023",
		},
		{
			name:   "RFC3339 keeps the date only",
			raw:    "2023-05-01T18:30:00Z",
			wantOK: true,
			want:   "Mon May 01 2023",
		},
		{
			name:   "surrounding whitespace",
			raw:    "  2023-05-01  ",
			wantOK: true,
			want:   "Mon May 01 2023",
		},
		{
			name:   "empty",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "garbage",
			raw:    "not-a-date",
			wantOK: false,
		},
		{
			name:   "bare year",
			raw:    "2023",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if formatted := formatDate(got); formatted != tt.want {
				t.Errorf("formatDate(parseDate(%q)) = %q, want %q", tt.raw, formatted, tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("parseDate(%q) kept a time-of-day component: %v", tt.raw, got)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, time.May, 1, 14, 45, 0, 0, time.UTC)
	if got := formatDate(d); got != "Mon May 01 2023" {
		t.Errorf("formatDate() = %q, want %q", got, "Mon May 01 2023")
	}
}
