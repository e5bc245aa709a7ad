package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"chronomap/pkg/animation"
	"chronomap/pkg/model"
)

// LocationsHandler serves the static map layers as GeoJSON. The feature
// collection is built once at startup; records are immutable.
type LocationsHandler struct {
	fc *geojson.FeatureCollection
}

// NewLocationsHandler builds the GeoJSON projection of the location records.
func NewLocationsHandler(records []model.LocationRecord) *LocationsHandler {
	fc := geojson.NewFeatureCollection()
	for _, rec := range records {
		if rec.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(rec.Geometry)
		f.Properties["name"] = rec.Name
		f.Properties["description"] = rec.Description
		f.Properties["style_tag"] = rec.StyleTag
		f.Properties["color"] = animation.StaticColor(rec.Name)
		if rec.Timestamp != nil {
			f.Properties["timestamp"] = rec.Timestamp.Format("3:04 PM")
		}
		fc.Append(f)
	}
	return &LocationsHandler{fc: fc}
}

// HandleLocations returns the static layers.
// GET /api/map/locations
func (h *LocationsHandler) HandleLocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(h.fc); err != nil {
		slog.Error("Failed to encode locations", "error", err)
	}
}
