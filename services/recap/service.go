// Package recap turns metadata and optional wiki text into generated recaps. It owns
// request validation, prompt selection, retrying generation and result caching.
package recap

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"recapstream/internal/metrics"
	"recapstream/internal/validation"
	"recapstream/models"
	"recapstream/services/llm"
)

// DefaultChunkEpisodeLimit is the largest history rendered as one previously-on prompt.
const DefaultChunkEpisodeLimit = 40

// Service is the public entry point of the recap pipeline.
type Service struct {
	builder    *ContextBuilder
	gen        Generator
	cache      *ResultCache
	chunkLimit int
}

// NewService wraps gen with policy's retries. A chunkLimit below 1 uses
// DefaultChunkEpisodeLimit.
func NewService(builder *ContextBuilder, gen Generator, policy llm.Policy, cache *ResultCache, chunkLimit int) *Service {
	if chunkLimit < 1 {
		chunkLimit = DefaultChunkEpisodeLimit
	}
	return &Service{
		builder:    builder,
		gen:        llm.NewRetrier(gen, policy),
		cache:      cache,
		chunkLimit: chunkLimit,
	}
}

// Cache exposes the shared result cache for administration.
func (s *Service) Cache() *ResultCache {
	return s.cache
}

// GenerateMovieRecap returns the recap for one movie. The recap type and ending policy
// shape the prompt but not the cache key.
func (s *Service) GenerateMovieRecap(ctx context.Context, req models.MovieRecapRequest) (models.RecapResult, error) {
	if verr := validation.ValidateStruct(req); verr != nil {
		return models.RecapResult{}, invalidRequest(verr)
	}

	opts := req.Options
	key := MovieKey(req.MovieID, opts.Enriched())
	res, hit, err := s.cache.Do(ctx, key, func(ctx context.Context) (models.RecapResult, error) {
		var (
			mc  models.MovieContext
			err error
		)
		if opts.Enriched() {
			mc, err = s.builder.BuildMovieContextEnriched(ctx, req.MovieID)
		} else {
			mc, err = s.builder.BuildMovieContext(ctx, req.MovieID)
		}
		if err != nil {
			return models.RecapResult{}, err
		}
		mc.IncludeEnding = opts.Ending()

		quick := opts.Type() == models.RecapTypeQuick
		prompt := BuildMoviePrompt(mc)
		if quick {
			prompt = BuildMovieQuickPrompt(mc)
		}

		content, err := s.generate(ctx, key, prompt)
		if err != nil {
			return models.RecapResult{}, err
		}
		result := models.RecapResult{Content: content, HasSpoilers: mc.IncludeEnding}
		if quick {
			result.KeyPlotPoints = ParseBulletPoints(content)
		}
		return result, nil
	})
	s.observe("movie", key, hit, err)
	return res, err
}

// GenerateSeriesRecap returns the recap of an inclusive episode range within a season.
// Context is always enriched when canon is available and the result always counts as
// containing spoilers.
func (s *Service) GenerateSeriesRecap(ctx context.Context, req models.SeriesRecapRequest) (models.RecapResult, error) {
	if verr := validation.ValidateStruct(req); verr != nil {
		return models.RecapResult{}, invalidRequest(verr)
	}

	key := SeriesKey(req.SeriesID, req.Season, req.EpisodeFrom, req.EpisodeTo, req.UseEnrichedContext)
	res, hit, err := s.cache.Do(ctx, key, func(ctx context.Context) (models.RecapResult, error) {
		sc, err := s.builder.BuildSeriesContextEnriched(ctx, req.SeriesID, req.Season, req.EpisodeFrom, req.EpisodeTo)
		if err != nil {
			return models.RecapResult{}, err
		}
		content, err := s.generate(ctx, key, BuildSeriesPromptStructured(sc))
		if err != nil {
			return models.RecapResult{}, err
		}
		return models.RecapResult{Content: content, HasSpoilers: true}, nil
	})
	s.observe("series", key, hit, err)
	return res, err
}

// GeneratePreviouslyOn recaps everything from season 1 up to the target episode. Short
// histories are rendered as one prompt. Longer ones are recapped season by season and
// then merged.
func (s *Service) GeneratePreviouslyOn(ctx context.Context, req models.PreviouslyOnRequest) (models.RecapResult, error) {
	if verr := validation.ValidateStruct(req); verr != nil {
		return models.RecapResult{}, invalidRequest(verr)
	}

	key := PreviouslyOnKey(req.SeriesID, req.TargetSeason, req.TargetEpisode)
	res, hit, err := s.cache.Do(ctx, key, func(ctx context.Context) (models.RecapResult, error) {
		sc, err := s.builder.BuildSeriesContextUpTo(ctx, req.SeriesID, req.TargetSeason, req.TargetEpisode)
		if err != nil {
			return models.RecapResult{}, err
		}
		if len(sc.Episodes) == 0 {
			return models.RecapResult{}, notFoundf("no episodes of series %d up to s%de%d", req.SeriesID, req.TargetSeason, req.TargetEpisode)
		}

		var prompt string
		if len(sc.Episodes) <= s.chunkLimit {
			prompt = BuildPreviouslyOnPrompt(sc)
		} else {
			log.Printf("[recap] series %d history has %d episodes (limit %d), recapping by season",
				req.SeriesID, len(sc.Episodes), s.chunkLimit)
			recaps, err := s.seasonRecaps(ctx, req)
			if err != nil {
				return models.RecapResult{}, err
			}
			prompt = BuildSeriesMergePrompt(recaps)
		}

		content, err := s.generate(ctx, key, prompt)
		if err != nil {
			return models.RecapResult{}, err
		}
		return models.RecapResult{Content: content, HasSpoilers: true}, nil
	})
	s.observe("previously", key, hit, err)
	return res, err
}

// seasonRecaps returns one recap per season 1..TargetSeason, the last capped at
// TargetEpisode. Each goes through GenerateSeriesRecap and so is cached on its own.
func (s *Service) seasonRecaps(ctx context.Context, req models.PreviouslyOnRequest) ([]string, error) {
	recaps := make([]string, 0, req.TargetSeason)
	for season := 1; season <= req.TargetSeason; season++ {
		last := req.TargetEpisode
		if season < req.TargetSeason {
			var err error
			last, err = s.builder.SeasonLastEpisodeNumber(ctx, req.SeriesID, season)
			if err != nil {
				return nil, err
			}
		}
		if last < 1 {
			recaps = append(recaps, fmt.Sprintf("No episodes aired in season %d.", season))
			continue
		}
		r, err := s.GenerateSeriesRecap(ctx, models.SeriesRecapRequest{
			SeriesID:           req.SeriesID,
			Season:             season,
			EpisodeFrom:        1,
			EpisodeTo:          last,
			UseEnrichedContext: true,
		})
		if err != nil {
			return nil, err
		}
		recaps = append(recaps, r.Content)
	}
	return recaps, nil
}

func (s *Service) generate(ctx context.Context, key, prompt string) (string, error) {
	start := time.Now()
	content, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[recap] generation failed key=%s: %v", key, err)
		return "", err
	}
	log.Printf("[recap] generated key=%s promptChars=%d duration=%s", key, len(prompt), time.Since(start))
	return strings.TrimSpace(content), nil
}

func (s *Service) observe(kind, key string, hit bool, err error) {
	outcome := "generated"
	switch {
	case err != nil:
		outcome = "error"
	case hit:
		outcome = "hit"
		log.Printf("[recap] cache hit key=%s", key)
	}
	metrics.RecapRequests.WithLabelValues(kind, outcome).Inc()
}
