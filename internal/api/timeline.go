package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chronomap/pkg/animation"
	"chronomap/pkg/model"
)

// eventDTO is a timeline event with its display color attached.
type eventDTO struct {
	model.TimelineEvent
	Color string `json:"color"`
}

// TimelineHandler serves the curated timeline.
type TimelineHandler struct {
	events []eventDTO
}

// NewTimelineHandler creates a timeline handler over the curated events.
func NewTimelineHandler(events []model.TimelineEvent) *TimelineHandler {
	dtos := make([]eventDTO, len(events))
	for i, e := range events {
		dtos[i] = eventDTO{TimelineEvent: e, Color: animation.EventColor(e.Category)}
	}
	return &TimelineHandler{events: dtos}
}

// HandleEvents returns the timeline events as JSON.
// GET /api/timeline/events
func (h *TimelineHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.events); err != nil {
		slog.Error("Failed to encode timeline events", "error", err)
	}
}
