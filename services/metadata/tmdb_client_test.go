package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"

	"recapstream/config"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"":      "en-US",
		"en":    "en-US",
		"en_US": "en-US",
		"pt-br": "pt-BR",
		"fr-FR": "fr-FR",
		"es":    "es-US",
	}
	for input, expect := range tests {
		if got := normalizeLanguage(input); got != expect {
			t.Fatalf("normalizeLanguage(%q) = %q, want %q", input, got, expect)
		}
	}
}

func newTestTMDB(t *testing.T, handler http.HandlerFunc, cacheDir string) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.TMDBConfig{APIKey: "k", BaseURL: srv.URL, Language: "en", CacheDir: cacheDir, CacheTTLHours: 24}
	return NewTMDBClient(cfg, afero.NewMemMapFs(), srv.Client())
}

func TestTMDBMovieDetail(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "k" || r.URL.Query().Get("language") != "en-US" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"title":"The Matrix","overview":"A hacker learns the truth.","tagline":"Welcome to the Real World."}`))
	}, "")

	movie, err := client.MovieDetail(context.Background(), 603)
	if err != nil {
		t.Fatalf("MovieDetail: %v", err)
	}
	if movie.Title != "The Matrix" || movie.Tagline != "Welcome to the Real World." {
		t.Fatalf("unexpected movie %+v", movie)
	}
}

func TestTMDBNotFound(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}, "")

	_, err := client.SeriesDetail(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTMDBServerErrorIsNotNotFound(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}, "")

	_, err := client.MovieDetail(context.Background(), 1)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected non-notfound error, got %v", err)
	}
}

func TestTMDBSeasonDetailUnknownEpisodeNumber(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"episodes":[{"episode_number":1,"name":"Pilot","overview":"o"},{"episode_number":null,"name":"Special"}]}`))
	}, "")

	season, err := client.SeasonDetail(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("SeasonDetail: %v", err)
	}
	if len(season.Episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(season.Episodes))
	}
	if season.Episodes[0].EpisodeNumber == nil || *season.Episodes[0].EpisodeNumber != 1 {
		t.Fatalf("expected episode number 1, got %v", season.Episodes[0].EpisodeNumber)
	}
	if season.Episodes[1].EpisodeNumber != nil {
		t.Fatalf("expected unknown episode number, got %d", *season.Episodes[1].EpisodeNumber)
	}
}

func TestTMDBCachesSuccessfulResponses(t *testing.T) {
	var calls atomic.Int32
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"name":"Dark"}`))
	}, "/cache/tmdb")

	for i := 0; i < 3; i++ {
		series, err := client.SeriesDetail(context.Background(), 70523)
		if err != nil {
			t.Fatalf("SeriesDetail: %v", err)
		}
		if series.Name != "Dark" {
			t.Fatalf("unexpected name %q", series.Name)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls.Load())
	}

	if err := client.ClearCache(); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if _, err := client.SeriesDetail(context.Background(), 70523); err != nil {
		t.Fatalf("SeriesDetail: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected refetch after clear, got %d calls", calls.Load())
	}
}
