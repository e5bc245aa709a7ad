package kml

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"chronomap/pkg/model"
)

// Descriptions in the source document are frequently HTML fragments. The
// patterns below are tried in priority order against the stripped text; the
// first match wins. Clock times are resolved against model.CaseDate.
var timePatterns = []*regexp.Regexp{
	// "at 2:13 pm", "at 2:13PM", "at 2:13 p.m."
	regexp.MustCompile(`(?i)\bat\s+(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)`),
	// "Time: 14:13", "Time: 2:13 pm"
	regexp.MustCompile(`(?i)\btime:\s*(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)?`),
	// bare "2:13 pm"
	regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)`),
	// approximate: "~2:13", "approx. 2:13 pm"
	regexp.MustCompile(`(?i)(?:~\s*|\bapprox\.?\s+)(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)?`),
}

// TimestampFromDescription scans a placemark description for a clock time.
// It returns nil when no pattern matches; absence is an expected state, not
// an error.
func TimestampFromDescription(desc string) *time.Time {
	if desc == "" {
		return nil
	}
	text := stripMarkup(desc)

	for _, re := range timePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour > 23 {
			continue
		}
		minute, err := strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			continue
		}
		hour = to24Hour(hour, m[3])
		t := model.CaseDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		return &t
	}
	return nil
}

// to24Hour applies standard noon/midnight rules: 12pm stays 12, 12am
// becomes 0. An empty meridiem leaves the hour untouched.
func to24Hour(hour int, meridiem string) int {
	switch strings.ToLower(strings.ReplaceAll(meridiem, ".", "")) {
	case "am":
		if hour == 12 {
			return 0
		}
	case "pm":
		if hour != 12 {
			return hour + 12
		}
	}
	return hour
}

// stripMarkup extracts the text content of an HTML fragment. Plain text
// passes through unchanged.
func stripMarkup(s string) string {
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tok.Token().Data)
			b.WriteByte(' ')
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return s
	}
	return out
}
