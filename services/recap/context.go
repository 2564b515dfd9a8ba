package recap

import (
	"context"
	"errors"
	"log"

	"github.com/sourcegraph/conc/pool"

	"recapstream/models"
	"recapstream/services/canon"
	"recapstream/services/metadata"
)

const unknownName = "Unknown"

// ContextBuilder gathers the facts a prompt is rendered from. Contexts are plain values
// scoped to one request.
type ContextBuilder struct {
	meta  MetadataProvider
	canon CanonSource
}

// NewContextBuilder wires the builder. A nil canon disables enrichment and the enriched
// builders return the base context.
func NewContextBuilder(meta MetadataProvider, canon CanonSource) *ContextBuilder {
	return &ContextBuilder{
		meta:  meta,
		canon: canon,
	}
}

func (b *ContextBuilder) BuildMovieContext(ctx context.Context, movieID int64) (models.MovieContext, error) {
	data, err := b.meta.MovieDetail(ctx, movieID)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return models.MovieContext{}, notFoundf("movie %d", movieID)
		}
		return models.MovieContext{}, err
	}
	if data == nil {
		return models.MovieContext{}, notFoundf("movie %d", movieID)
	}
	return models.MovieContext{
		Title:         orUnknown(data.Title),
		Overview:      data.Overview,
		Tagline:       data.Tagline,
		IncludeEnding: true,
	}, nil
}

// BuildMovieContextEnriched adds wiki synopsis and plot when available. Canon faults
// are logged and dropped.
func (b *ContextBuilder) BuildMovieContextEnriched(ctx context.Context, movieID int64) (models.MovieContext, error) {
	mc, err := b.BuildMovieContext(ctx, movieID)
	if err != nil || b.canon == nil {
		return mc, err
	}
	e := b.canon.MovieCanonSummary(ctx, movieID, mc.Title)
	if e.Fault != nil {
		log.Printf("[recap] movie %d canon skipped: %v", movieID, e.Fault)
	}
	if !e.Empty() {
		mc.CanonSummary = e.Text
	}
	return mc, nil
}

// BuildSeriesContext reads the series and the season concurrently and keeps the
// episodes numbered within [from, to]. Episodes without a number are dropped.
func (b *ContextBuilder) BuildSeriesContext(ctx context.Context, seriesID int64, season, from, to int) (models.SeriesContext, error) {
	var (
		show   *models.SeriesMetadata
		detail *models.SeasonMetadata
	)
	p := pool.New().WithContext(ctx).WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		show, err = b.meta.SeriesDetail(ctx, seriesID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		detail, err = b.meta.SeasonDetail(ctx, seriesID, season)
		return err
	})
	if err := p.Wait(); err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return models.SeriesContext{}, notFoundf("series %d or season %d", seriesID, season)
		}
		return models.SeriesContext{}, err
	}
	if show == nil {
		return models.SeriesContext{}, notFoundf("series %d", seriesID)
	}
	if detail == nil || len(detail.Episodes) == 0 {
		return models.SeriesContext{}, notFoundf("season %d of series %d", season, seriesID)
	}

	episodes := make([]models.SeriesEpisodeContext, 0, len(detail.Episodes))
	for _, ep := range detail.Episodes {
		if ep.EpisodeNumber == nil || *ep.EpisodeNumber < from || *ep.EpisodeNumber > to {
			continue
		}
		episodes = append(episodes, episodeContext(season, ep))
	}

	return models.SeriesContext{
		SeriesName:  orUnknown(show.Name),
		Season:      season,
		EpisodeFrom: from,
		EpisodeTo:   to,
		Episodes:    episodes,
	}, nil
}

func (b *ContextBuilder) BuildSeriesContextEnriched(ctx context.Context, seriesID int64, season, from, to int) (models.SeriesContext, error) {
	sc, err := b.BuildSeriesContext(ctx, seriesID, season, from, to)
	if err != nil || b.canon == nil {
		return sc, err
	}

	refs := make([]canon.EpisodeRef, len(sc.Episodes))
	for i, ep := range sc.Episodes {
		refs[i] = canon.EpisodeRef{Number: ep.EpisodeNumber, Name: ep.Name}
	}
	e := b.canon.SeriesCanonSummary(ctx, seriesID, sc.SeriesName, season, refs)
	if e.Fault != nil {
		log.Printf("[recap] series %d season %d canon skipped: %v", seriesID, season, e.Fault)
	}
	if !e.Empty() {
		sc.CanonSummary = e.Text
	}
	return sc, nil
}

// BuildSeriesContextUpTo collects every episode from season 1 through targetSeason,
// stopping at targetEpisode in the final season. Seasons are read in order and the
// first failed read ends the build.
func (b *ContextBuilder) BuildSeriesContextUpTo(ctx context.Context, seriesID int64, targetSeason, targetEpisode int) (models.SeriesContext, error) {
	show, err := b.meta.SeriesDetail(ctx, seriesID)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return models.SeriesContext{}, notFoundf("series %d", seriesID)
		}
		return models.SeriesContext{}, err
	}
	if show == nil {
		return models.SeriesContext{}, notFoundf("series %d", seriesID)
	}

	var episodes []models.SeriesEpisodeContext
	for season := 1; season <= targetSeason; season++ {
		if err := ctx.Err(); err != nil {
			return models.SeriesContext{}, err
		}
		detail, err := b.meta.SeasonDetail(ctx, seriesID, season)
		if err != nil {
			if errors.Is(err, metadata.ErrNotFound) {
				return models.SeriesContext{}, notFoundf("season %d of series %d", season, seriesID)
			}
			return models.SeriesContext{}, err
		}
		if detail == nil {
			continue
		}
		for _, ep := range detail.Episodes {
			if ep.EpisodeNumber == nil {
				continue
			}
			if season == targetSeason && *ep.EpisodeNumber > targetEpisode {
				continue
			}
			episodes = append(episodes, episodeContext(season, ep))
		}
	}

	return models.SeriesContext{
		SeriesName:  orUnknown(show.Name),
		Season:      targetSeason,
		EpisodeFrom: targetEpisode,
		EpisodeTo:   targetEpisode,
		Episodes:    episodes,
	}, nil
}

// SeasonLastEpisodeNumber returns the highest episode number in a season, or 0 when
// the season lists no episodes.
func (b *ContextBuilder) SeasonLastEpisodeNumber(ctx context.Context, seriesID int64, season int) (int, error) {
	detail, err := b.meta.SeasonDetail(ctx, seriesID, season)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			return 0, notFoundf("season %d of series %d", season, seriesID)
		}
		return 0, err
	}
	last := 0
	if detail == nil {
		return last, nil
	}
	for _, ep := range detail.Episodes {
		if ep.EpisodeNumber != nil && *ep.EpisodeNumber > last {
			last = *ep.EpisodeNumber
		}
	}
	return last, nil
}

func episodeContext(season int, ep models.EpisodeMetadata) models.SeriesEpisodeContext {
	return models.SeriesEpisodeContext{
		SeasonNumber:  season,
		EpisodeNumber: *ep.EpisodeNumber,
		Name:          orUnknown(ep.Name),
		Overview:      ep.Overview,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknownName
	}
	return s
}
