// Package scrape turns station site markup into programs and episodes. Each
// station registers a Strategy keyed by its name; adding a station means
// registering a new strategy, not editing a dispatch function.
package scrape

import (
	"context"

	"radiorsser/internal/models"
)

// Strategy knows how to extract one station's programs and episodes from its
// markup.
type Strategy interface {
	ExtractPrograms(ctx context.Context, station models.Station) ([]models.Program, error)
	ExtractEpisodes(ctx context.Context, program models.Program) ([]models.Episode, error)
}

// RecordInfo resolves duration and byte size for a remote audio file.
// Implemented by audiocache.Cache.
type RecordInfo interface {
	FileInfo(ctx context.Context, fileURL, fileName string) (int, int64, error)
}

var registry = map[string]Strategy{}

// Register binds a station name to its extraction strategy.
func Register(stationName string, s Strategy) {
	registry[stationName] = s
}

// ForStation looks up the registered strategy for a station.
func ForStation(stationName string) (Strategy, bool) {
	s, ok := registry[stationName]
	return s, ok
}
