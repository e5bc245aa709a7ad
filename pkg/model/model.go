package model

import (
	"time"

	"github.com/paulmach/orb"
)

// LocationRecord is a named geographic feature extracted from the source
// document. Geometry is exactly one of orb.Point, orb.LineString or
// orb.Polygon; consumers switch exhaustively on the concrete type.
type LocationRecord struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StyleTag    string       `json:"style_tag"`
	Geometry    orb.Geometry `json:"-"`

	// Timestamp is derived from the description text for Point records.
	// Line and Polygon records never carry one.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// Altitude from the source coordinate tuple, if present. Only
	// meaningful for Point records.
	Altitude float64 `json:"altitude,omitempty"`
}

// Category classifies a timeline event. It drives color selection only.
type Category string

const (
	CategoryTimeline  Category = "timeline"
	CategoryNarrative Category = "narrative"
	CategoryPhoneA    Category = "phone-a"
	CategoryPhoneB    Category = "phone-b"
	CategoryEvidence  Category = "evidence"
	CategoryUnknown   Category = "unknown"
)

// TimelineEvent is one entry of the curated narrative timeline.
type TimelineEvent struct {
	Label       string    `json:"label"` // original time label, e.g. "5:45 PM"
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Time        time.Time `json:"time"`
	Category    Category  `json:"category"`
}

// Point returns the event position as an orb.Point (lon, lat order).
func (e TimelineEvent) Point() orb.Point {
	return orb.Point{e.Lon, e.Lat}
}

// AnimationUpdate is the declarative frame the animation controller hands to
// the rendering collaborator on every time change. Trail holds the revealed
// prefix; fewer than two points means no polyline is drawn.
type AnimationUpdate struct {
	ID        string         `json:"id"`
	Event     TimelineEvent  `json:"event"`
	Color     string         `json:"color"`
	TimeLabel string         `json:"time_label"` // 12-hour clock, e.g. "2:13 PM"
	Trail     orb.LineString `json:"trail"`
}
