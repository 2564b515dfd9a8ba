package recap

//go:generate mockgen -source=deps.go -destination=mock_deps_test.go -package=recap

import (
	"context"

	"recapstream/models"
	"recapstream/services/canon"
)

// MetadataProvider supplies the factual movie, series and season data. A missing title
// is reported with an error matching metadata.ErrNotFound.
type MetadataProvider interface {
	MovieDetail(ctx context.Context, id int64) (*models.MovieMetadata, error)
	SeriesDetail(ctx context.Context, id int64) (*models.SeriesMetadata, error)
	SeasonDetail(ctx context.Context, seriesID int64, season int) (*models.SeasonMetadata, error)
}

// CanonSource looks up optional wiki text. It never fails; an empty Enrichment means
// nothing usable was found.
type CanonSource interface {
	MovieCanonSummary(ctx context.Context, movieID int64, title string) canon.Enrichment
	SeriesCanonSummary(ctx context.Context, seriesID int64, seriesName string, season int, episodes []canon.EpisodeRef) canon.Enrichment
}

// Generator produces recap text from a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
