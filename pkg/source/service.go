// Package source assembles the immutable startup dataset: it obtains the
// placemark document, extracts location records, merges supplementary
// shapefile layers and derives the trail coordinate list.
package source

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/paulmach/orb"

	"chronomap/pkg/config"
	"chronomap/pkg/kml"
	"chronomap/pkg/model"
	"chronomap/pkg/shape"
)

// Fetcher fetches a URL, caching under the given key.
type Fetcher interface {
	Get(ctx context.Context, url, cacheKey string) ([]byte, error)
}

// Service loads the startup dataset once.
type Service struct {
	fetcher Fetcher
	cfg     config.SourceConfig
}

// NewService creates a source service. fetcher may be nil when the source is
// purely local.
func NewService(fetcher Fetcher, cfg config.SourceConfig) *Service {
	return &Service{fetcher: fetcher, cfg: cfg}
}

// Load obtains and extracts the dataset. Extraction fails softly: an
// unreachable or malformed document degrades to an empty location set so the
// map still renders.
func (s *Service) Load(ctx context.Context) ([]model.LocationRecord, orb.LineString) {
	records := s.extract(ctx)

	if s.cfg.Shapefile != "" {
		extra, err := shape.Load(s.cfg.Shapefile)
		if err != nil {
			slog.Warn("skipping shapefile layers", "path", s.cfg.Shapefile, "error", err)
		} else {
			slog.Info("loaded shapefile layers", "path", s.cfg.Shapefile, "records", len(extra))
			records = append(records, extra...)
		}
	}

	marker := s.cfg.TrailMarker
	if marker == "" {
		marker = "trail"
	}
	trail := kml.TrailFromRecords(records, marker)

	slog.Info("source dataset loaded", "records", len(records), "trail_points", len(trail))
	return records, trail
}

func (s *Service) extract(ctx context.Context) []model.LocationRecord {
	doc, err := s.document(ctx)
	if err != nil {
		slog.Warn("source document unavailable, continuing with empty location set", "error", err)
		return nil
	}

	records, err := kml.Parse(doc)
	if err != nil {
		var perr *kml.ParseError
		if errors.As(err, &perr) {
			slog.Warn("source document malformed, continuing with empty location set", "error", err)
			return nil
		}
		slog.Warn("extraction failed", "error", err)
		return nil
	}
	return records
}

func (s *Service) document(ctx context.Context) ([]byte, error) {
	if s.cfg.URL != "" && s.fetcher != nil {
		return s.fetcher.Get(ctx, s.cfg.URL, "source:"+s.cfg.URL)
	}
	return os.ReadFile(s.cfg.Path)
}
