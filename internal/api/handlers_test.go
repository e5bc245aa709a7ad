package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"chronomap/pkg/model"
)

func testRecords() []model.LocationRecord {
	ts := model.CaseDate.Add(9 * time.Hour)
	return []model.LocationRecord{
		{Name: "Abduction site", Description: "Last seen here", Geometry: orb.Point{-86.5, 39.2}, Timestamp: &ts},
		{Name: "Cell tower 12", Geometry: orb.Point{-86.51, 39.19}},
		{Name: "No geometry"},
	}
}

func TestLocationsHandler(t *testing.T) {
	h := NewLocationsHandler(testRecords())

	rec := httptest.NewRecorder()
	h.HandleLocations(rec, httptest.NewRequest(http.MethodGet, "/api/map/locations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)

	// The record without geometry is dropped.
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	require.Equal(t, "Abduction site", first.Properties["name"])
	require.Equal(t, "#d32f2f", first.Properties["color"])
	require.Equal(t, "9:00 AM", first.Properties["timestamp"])

	second := fc.Features[1]
	require.Equal(t, "#fbc02d", second.Properties["color"])
	_, hasTS := second.Properties["timestamp"]
	require.False(t, hasTS)
}

func TestTimelineHandler(t *testing.T) {
	events := []model.TimelineEvent{
		{Label: "First ping", Time: model.CaseDate.Add(8 * time.Hour), Category: model.CategoryPhoneA},
		{Label: "Sighting", Time: model.CaseDate.Add(10 * time.Hour), Category: model.CategoryNarrative},
	}
	h := NewTimelineHandler(events)

	rec := httptest.NewRecorder()
	h.HandleEvents(rec, httptest.NewRequest(http.MethodGet, "/api/timeline/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Label string `json:"label"`
		Color string `json:"color"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "First ping", got[0].Label)
	require.Equal(t, "#e64a19", got[0].Color)
	require.Equal(t, "#8e24aa", got[1].Color)
}

func TestVersionHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	handleVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Version)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}
