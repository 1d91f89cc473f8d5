package cli

import (
	"testing"
	"time"

	"cadence/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"mon", []time.Weekday{time.Monday}, false},
		{"mon,wed,fri", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, false},
		{"Sunday, Saturday", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"7", nil, true},
		{"funday", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekdays(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWeekdays(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekdays(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseWeekdays(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFormatSchedule(t *testing.T) {
	daily := models.Schedule{}
	if got := FormatSchedule(daily); got != "daily" {
		t.Errorf("FormatSchedule(empty) = %q, want daily", got)
	}

	mwf := models.Schedule{Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}}
	if got := FormatSchedule(mwf); got != "Mon,Wed,Fri" {
		t.Errorf("FormatSchedule(mwf) = %q, want Mon,Wed,Fri", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(nil); got != "-" {
		t.Errorf("FormatRate(nil) = %q, want -", got)
	}
	rate := 57
	if got := FormatRate(&rate); got != "57%" {
		t.Errorf("FormatRate(57) = %q, want 57%%", got)
	}
}
