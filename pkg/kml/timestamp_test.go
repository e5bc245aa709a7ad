package kml

import (
	"testing"
	"time"

	"chronomap/pkg/model"
)

func caseTime(hour, minute int) time.Time {
	return model.CaseDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestTimestampFromDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want *time.Time
	}{
		{"explicit at", "last seen at 2:13 pm near the bridge", ptr(caseTime(14, 13))},
		{"time prefix", "Time: 14:13 per tower logs", ptr(caseTime(14, 13))},
		{"time prefix with meridiem", "Time: 2:13 pm", ptr(caseTime(14, 13))},
		{"bare", "witness puts it around 9:02am", ptr(caseTime(9, 2))},
		{"tilde approximate", "~6:40 departure", ptr(caseTime(6, 40))},
		{"approx prefix", "approx. 6:40 departure", ptr(caseTime(6, 40))},
		{"noon stays twelve", "lunch at 12:05 pm", ptr(caseTime(12, 5))},
		{"midnight becomes zero", "at 12:30 am the camera triggered", ptr(caseTime(0, 30))},
		{"dotted meridiem", "at 9:02 a.m. sharp", ptr(caseTime(9, 2))},
		{"no match", "no time mentioned here", nil},
		{"empty", "", nil},
		{"html markup stripped", "<b>Seen</b> at <i>2:13 pm</i><br/>by patrol", ptr(caseTime(14, 13))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimestampFromDescription(tt.desc)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("want nil, got %v", got)
			case tt.want != nil && got == nil:
				t.Fatalf("want %v, got nil", *tt.want)
			case tt.want != nil && !got.Equal(*tt.want):
				t.Fatalf("want %v, got %v", *tt.want, *got)
			}
		})
	}
}

// Case and whitespace variants of the same clock time must resolve to the
// identical absolute timestamp.
func TestTimestampCaseAndSpacingInsensitive(t *testing.T) {
	a := TimestampFromDescription("seen at 9:02am")
	b := TimestampFromDescription("seen at 9:02 AM")
	if a == nil || b == nil {
		t.Fatal("both variants must parse")
	}
	if !a.Equal(*b) {
		t.Fatalf("variants differ: %v vs %v", *a, *b)
	}
}

// The explicit "at" pattern outranks the bare pattern when both could match
// different times in the same description.
func TestTimestampPatternPriority(t *testing.T) {
	got := TimestampFromDescription("report filed 11:00 pm about events at 2:13 pm")
	if got == nil {
		t.Fatal("expected a match")
	}
	if !got.Equal(caseTime(14, 13)) {
		t.Fatalf("priority order violated: got %v", *got)
	}
}

func TestTimestampAnchoredToCaseDate(t *testing.T) {
	got := TimestampFromDescription("at 9:02 am")
	if got == nil {
		t.Fatal("expected a match")
	}
	y, m, d := got.Date()
	cy, cm, cd := model.CaseDate.Date()
	if y != cy || m != cm || d != cd {
		t.Fatalf("timestamp not on the case date: %v", *got)
	}
}

func ptr(t time.Time) *time.Time { return &t }
