package animation

import (
	"strings"

	"chronomap/pkg/model"
)

// TrailColor is the polyline color for the revealed trail prefix.
const TrailColor = "#e53935"

// staticColors is the palette for static markers, keyed by name substring.
// It is independent of the animated-event palette below; the two must not
// be conflated.
var staticColors = struct {
	red, darkRed, yellow, green, blue string
}{
	red:     "#d32f2f",
	darkRed: "#7f0000",
	yellow:  "#fbc02d",
	green:   "#388e3c",
	blue:    "#1976d2",
}

// StaticColor picks the color for a static layer from its record name.
// First matching rule wins.
func StaticColor(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "abduction"), strings.Contains(n, "subject a"):
		return staticColors.red
	case strings.Contains(n, "cell"), strings.Contains(n, "tower"):
		return staticColors.yellow
	case strings.Contains(n, "remains"):
		return staticColors.darkRed
	case strings.Contains(n, "atm"):
		return staticColors.green
	case strings.Contains(n, "marker"):
		return staticColors.yellow
	default:
		return staticColors.blue
	}
}

// eventColors is the palette for animated markers, keyed by the explicit
// category tag on the timeline event.
var eventColors = map[model.Category]string{
	model.CategoryTimeline:  "#0288d1",
	model.CategoryNarrative: "#8e24aa",
	model.CategoryPhoneA:    "#e64a19",
	model.CategoryPhoneB:    "#00897b",
	model.CategoryEvidence:  "#43a047",
	model.CategoryUnknown:   "#757575",
}

// EventColor maps a category tag to the animated-marker palette. Unmapped
// tags fall back to the unknown color.
func EventColor(cat model.Category) string {
	if c, ok := eventColors[cat]; ok {
		return c
	}
	return eventColors[model.CategoryUnknown]
}
