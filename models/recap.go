package models

import "time"

// RecapType selects the movie recap template.
type RecapType string

const (
	RecapTypeQuick RecapType = "quick"
	RecapTypeFull  RecapType = "full"
)

// MovieRecapOptions is the body of POST recap/movie/{movieId}.
// Nil pointers take the documented defaults (includeEnding=true, useEnrichedContext=false).
type MovieRecapOptions struct {
	RecapType          RecapType `json:"recapType,omitempty" validate:"omitempty,oneof=quick full"`
	IncludeEnding      *bool     `json:"includeEnding,omitempty"`
	UseEnrichedContext *bool     `json:"useEnrichedContext,omitempty"`
}

// Type returns the requested recap type, defaulting to full.
func (o MovieRecapOptions) Type() RecapType {
	if o.RecapType == "" {
		return RecapTypeFull
	}
	return o.RecapType
}

// Ending reports whether the recap may reveal the ending.
func (o MovieRecapOptions) Ending() bool {
	if o.IncludeEnding == nil {
		return true
	}
	return *o.IncludeEnding
}

// Enriched reports whether canon text should be merged into the context.
func (o MovieRecapOptions) Enriched() bool {
	return o.UseEnrichedContext != nil && *o.UseEnrichedContext
}

// MovieRecapRequest identifies a movie recap.
type MovieRecapRequest struct {
	MovieID int64 `validate:"min=1"`
	Options MovieRecapOptions
}

// SeriesRecapRequest identifies a recap of an inclusive episode range within one season.
type SeriesRecapRequest struct {
	SeriesID           int64 `validate:"min=1"`
	Season             int   `validate:"min=1,max=100"`
	EpisodeFrom        int   `validate:"min=1,max=10000"`
	EpisodeTo          int   `validate:"min=1,max=10000,gtefield=EpisodeFrom"`
	UseEnrichedContext bool
}

// PreviouslyOnRequest identifies a cumulative recap from season 1 up to a target episode.
type PreviouslyOnRequest struct {
	SeriesID      int64 `validate:"min=1"`
	TargetSeason  int   `validate:"min=1,max=100"`
	TargetEpisode int   `validate:"min=1,max=10000"`
}

// RecapResult is what every recap entry point returns.
type RecapResult struct {
	Content       string   `json:"content"`
	HasSpoilers   bool     `json:"hasSpoilers"`
	KeyPlotPoints []string `json:"keyPlotPoints,omitempty"`
}

// CacheEntry is a completed recap stored under its fingerprint.
type CacheEntry struct {
	Key       string
	Value     RecapResult
	CreatedAt time.Time
}

// MovieContext is the factual input for a movie prompt.
type MovieContext struct {
	Title         string
	Overview      string
	Tagline       string
	CanonSummary  string
	IncludeEnding bool
}

// SeriesEpisodeContext is one episode inside a SeriesContext.
type SeriesEpisodeContext struct {
	SeasonNumber  int
	EpisodeNumber int
	Name          string
	Overview      string
}

// SeriesContext is the factual input for a series prompt. Episodes are ordered by
// season then episode number.
type SeriesContext struct {
	SeriesName   string
	Season       int
	EpisodeFrom  int
	EpisodeTo    int
	Episodes     []SeriesEpisodeContext
	CanonSummary string
}
