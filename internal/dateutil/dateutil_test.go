package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "full date", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long month", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short month and year", format: "MMM YY", want: "Jan 06"},
		{name: "time tokens", format: "HH:mm:ss", want: "15:04:05"},
		{name: "month and minute do not collide", format: "MM mm", want: "01 04"},
		{name: "bracket escape", format: "[at] HH:mm", want: "at 15:04"},
		{name: "literal characters kept", format: "DD.MM", want: "02.01"},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[oops", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 1, 15, 9, 5, 7, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty uses default", value: "", want: "2024-01-15 09:05"},
		{name: "iso preset", value: "iso", want: "2024-01-15"},
		{name: "preset is case-insensitive", value: "DATETIME", want: "2024-01-15 09:05:07"},
		{name: "long preset", value: "long", want: "January 15, 2024"},
		{name: "custom format", value: "DD/MM/YYYY", want: "15/01/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Format(tt.value, fixed)
			if err != nil {
				t.Fatalf("Format(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormat_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := Format("[broken", time.Now()); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("Format() error = %v, want ErrInvalidDateFormat", err)
	}
}
