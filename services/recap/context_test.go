package recap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"recapstream/models"
	"recapstream/services/canon"
	"recapstream/services/metadata"
)

func ptr[T any](v T) *T {
	return &v
}

func episodes(numbers ...int) []models.EpisodeMetadata {
	eps := make([]models.EpisodeMetadata, len(numbers))
	for i, n := range numbers {
		eps[i] = models.EpisodeMetadata{EpisodeNumber: ptr(n), Name: fmt.Sprintf("Ep %d", n), Overview: fmt.Sprintf("Overview %d", n)}
	}
	return eps
}

func TestBuildMovieContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	b := NewContextBuilder(meta, nil)
	ctx := context.Background()

	meta.EXPECT().MovieDetail(gomock.Any(), int64(603)).Return(&models.MovieMetadata{Overview: "Neo wakes up.", Tagline: "Free your mind"}, nil)
	mc, err := b.BuildMovieContext(ctx, 603)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", mc.Title)
	assert.Equal(t, "Neo wakes up.", mc.Overview)
	assert.Equal(t, "Free your mind", mc.Tagline)
	assert.True(t, mc.IncludeEnding)

	meta.EXPECT().MovieDetail(gomock.Any(), int64(1)).Return(nil, fmt.Errorf("tmdb movie 1: %w", metadata.ErrNotFound))
	_, err = b.BuildMovieContext(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	boom := errors.New("tmdb status 503")
	meta.EXPECT().MovieDetail(gomock.Any(), int64(2)).Return(nil, boom)
	_, err = b.BuildMovieContext(ctx, 2)
	assert.Same(t, boom, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestBuildMovieContextEnriched(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	src := NewMockCanonSource(ctrl)
	b := NewContextBuilder(meta, src)
	ctx := context.Background()

	meta.EXPECT().MovieDetail(gomock.Any(), int64(155)).Return(&models.MovieMetadata{Title: "The Dark Knight"}, nil).Times(2)

	src.EXPECT().MovieCanonSummary(gomock.Any(), int64(155), "The Dark Knight").Return(canon.Enrichment{Text: "Plot: Joker."})
	mc, err := b.BuildMovieContextEnriched(ctx, 155)
	require.NoError(t, err)
	assert.Equal(t, "Plot: Joker.", mc.CanonSummary)

	src.EXPECT().MovieCanonSummary(gomock.Any(), int64(155), "The Dark Knight").Return(canon.Enrichment{Fault: canon.ErrPageUnavailable})
	mc, err = b.BuildMovieContextEnriched(ctx, 155)
	require.NoError(t, err)
	assert.Empty(t, mc.CanonSummary)
	assert.Equal(t, "The Dark Knight", mc.Title)
}

func TestBuildSeriesContextFiltersRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	b := NewContextBuilder(meta, nil)

	eps := episodes(1, 2, 3, 4, 5, 6)
	eps = append(eps, models.EpisodeMetadata{Name: "Special"})
	meta.EXPECT().SeriesDetail(gomock.Any(), int64(1396)).Return(&models.SeriesMetadata{Name: "Breaking Bad"}, nil)
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(1396), 2).Return(&models.SeasonMetadata{Episodes: eps}, nil)

	sc, err := b.BuildSeriesContext(context.Background(), 1396, 2, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "Breaking Bad", sc.SeriesName)
	assert.Equal(t, 2, sc.Season)
	require.Len(t, sc.Episodes, 3)

	prev := 0
	for _, ep := range sc.Episodes {
		assert.GreaterOrEqual(t, ep.EpisodeNumber, prev)
		assert.GreaterOrEqual(t, ep.EpisodeNumber, 2)
		assert.LessOrEqual(t, ep.EpisodeNumber, 4)
		assert.Equal(t, 2, ep.SeasonNumber)
		prev = ep.EpisodeNumber
	}
}

func TestBuildSeriesContextNotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("series missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		meta := NewMockMetadataProvider(ctrl)
		meta.EXPECT().SeriesDetail(gomock.Any(), int64(9)).Return(nil, metadata.ErrNotFound)
		meta.EXPECT().SeasonDetail(gomock.Any(), int64(9), 1).Return(&models.SeasonMetadata{Episodes: episodes(1)}, nil).AnyTimes()

		_, err := NewContextBuilder(meta, nil).BuildSeriesContext(ctx, 9, 1, 1, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("season empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		meta := NewMockMetadataProvider(ctrl)
		meta.EXPECT().SeriesDetail(gomock.Any(), int64(9)).Return(&models.SeriesMetadata{Name: "Show"}, nil)
		meta.EXPECT().SeasonDetail(gomock.Any(), int64(9), 7).Return(&models.SeasonMetadata{}, nil)

		_, err := NewContextBuilder(meta, nil).BuildSeriesContext(ctx, 9, 7, 1, 3)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		meta := NewMockMetadataProvider(ctrl)
		boom := errors.New("connection refused")
		meta.EXPECT().SeriesDetail(gomock.Any(), int64(9)).Return(&models.SeriesMetadata{Name: "Show"}, nil)
		meta.EXPECT().SeasonDetail(gomock.Any(), int64(9), 1).Return(nil, boom)

		_, err := NewContextBuilder(meta, nil).BuildSeriesContext(ctx, 9, 1, 1, 3)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestBuildSeriesContextEnriched(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	src := NewMockCanonSource(ctrl)
	b := NewContextBuilder(meta, src)

	meta.EXPECT().SeriesDetail(gomock.Any(), int64(1)).Return(&models.SeriesMetadata{Name: "Dark"}, nil)
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 1).Return(&models.SeasonMetadata{Episodes: episodes(1, 2, 3)}, nil)
	src.EXPECT().
		SeriesCanonSummary(gomock.Any(), int64(1), "Dark", 1, []canon.EpisodeRef{{Number: 1, Name: "Ep 1"}, {Number: 2, Name: "Ep 2"}}).
		Return(canon.Enrichment{Text: "Episode 1 \"Ep 1\":\nPlot: x"})

	sc, err := b.BuildSeriesContextEnriched(context.Background(), 1, 1, 1, 2)
	require.NoError(t, err)
	assert.Contains(t, sc.CanonSummary, "Plot: x")
	assert.Len(t, sc.Episodes, 2)
}

func TestBuildSeriesContextUpTo(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	b := NewContextBuilder(meta, nil)

	meta.EXPECT().SeriesDetail(gomock.Any(), int64(5)).Return(&models.SeriesMetadata{Name: "Lost"}, nil)
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(5), 1).Return(&models.SeasonMetadata{Episodes: episodes(1, 2, 3)}, nil)
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(5), 2).Return(&models.SeasonMetadata{Episodes: episodes(1, 2)}, nil)
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(5), 3).Return(&models.SeasonMetadata{Episodes: episodes(1, 2, 3, 4)}, nil)

	sc, err := b.BuildSeriesContextUpTo(context.Background(), 5, 3, 2)
	require.NoError(t, err)

	var got []string
	for _, ep := range sc.Episodes {
		got = append(got, fmt.Sprintf("s%de%d", ep.SeasonNumber, ep.EpisodeNumber))
	}
	assert.Equal(t, []string{"s1e1", "s1e2", "s1e3", "s2e1", "s2e2", "s3e1", "s3e2"}, got)
	assert.Equal(t, 3, sc.Season)
	assert.Equal(t, 2, sc.EpisodeTo)
}

func TestBuildSeriesContextUpToStopsAtMissingSeason(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	b := NewContextBuilder(meta, nil)

	meta.EXPECT().SeriesDetail(gomock.Any(), int64(1)).Return(&models.SeriesMetadata{Name: "Short"}, nil)
	gomock.InOrder(
		meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 1).Return(&models.SeasonMetadata{Episodes: episodes(1, 2)}, nil).Times(1),
		meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 2).Return(&models.SeasonMetadata{Episodes: episodes(1, 2)}, nil).Times(1),
		meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 3).Return(nil, fmt.Errorf("tmdb season 3: %w", metadata.ErrNotFound)).Times(1),
	)

	_, err := b.BuildSeriesContextUpTo(context.Background(), 1, 5000, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "season 3")
}

func TestBuildSeriesContextUpToHonoursCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	b := NewContextBuilder(meta, nil)

	ctx, cancel := context.WithCancel(context.Background())
	meta.EXPECT().SeriesDetail(gomock.Any(), int64(2)).Return(&models.SeriesMetadata{Name: "Long"}, nil)
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(2), 1).DoAndReturn(func(context.Context, int64, int) (*models.SeasonMetadata, error) {
		cancel()
		return &models.SeasonMetadata{Episodes: episodes(1)}, nil
	}).Times(1)

	_, err := b.BuildSeriesContextUpTo(ctx, 2, 50, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeasonLastEpisodeNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := NewMockMetadataProvider(ctrl)
	b := NewContextBuilder(meta, nil)
	ctx := context.Background()

	eps := append(episodes(3, 10, 7), models.EpisodeMetadata{Name: "unnumbered"})
	meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 1).Return(&models.SeasonMetadata{Episodes: eps}, nil)
	last, err := b.SeasonLastEpisodeNumber(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, last)

	meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 2).Return(&models.SeasonMetadata{}, nil)
	last, err = b.SeasonLastEpisodeNumber(ctx, 1, 2)
	require.NoError(t, err)
	assert.Zero(t, last)

	meta.EXPECT().SeasonDetail(gomock.Any(), int64(1), 9).Return(nil, metadata.ErrNotFound)
	_, err = b.SeasonLastEpisodeNumber(ctx, 1, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
