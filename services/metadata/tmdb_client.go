package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/afero"

	"recapstream/config"
	"recapstream/models"
)

// ErrNotFound is returned when TMDB answers 404 for a movie, series or season.
var ErrNotFound = errors.New("metadata: not found")

const tmdbDefaultBaseURL = "https://api.themoviedb.org/3"

// TMDBClient reads the movie, series and season facts recaps are built from.
type TMDBClient struct {
	apiKey   string
	language string
	baseURL  string
	httpc    *http.Client
	timeout  time.Duration
	cache    *fileCache
}

// NewTMDBClient builds a client from cfg. fs backs the response cache, which is
// disabled when cfg.CacheDir is empty. Each request is bounded by cfg.Timeout.
func NewTMDBClient(cfg config.TMDBConfig, fs afero.Fs, httpc *http.Client) *TMDBClient {
	if httpc == nil {
		httpc = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = tmdbDefaultBaseURL
	}
	c := &TMDBClient{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		language: normalizeLanguage(cfg.Language),
		baseURL:  baseURL,
		httpc:    httpc,
		timeout:  timeout,
	}
	if dir := strings.TrimSpace(cfg.CacheDir); dir != "" {
		c.cache = newFileCache(fs, dir, cfg.CacheTTLHours)
	}
	return c
}

// normalizeLanguage turns "en", "en_US" or "pt-br" into TMDB's xx-YY form.
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return "en-US"
	}
	parts := strings.SplitN(lang, "-", 2)
	primary := strings.ToLower(parts[0])
	if len(parts) == 2 && parts[1] != "" {
		return primary + "-" + strings.ToUpper(parts[1])
	}
	return primary + "-US"
}

func (c *TMDBClient) MovieDetail(ctx context.Context, id int64) (*models.MovieMetadata, error) {
	var out models.MovieMetadata
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), &out); err != nil {
		return nil, fmt.Errorf("tmdb movie %d: %w", id, err)
	}
	return &out, nil
}

func (c *TMDBClient) SeriesDetail(ctx context.Context, id int64) (*models.SeriesMetadata, error) {
	var out models.SeriesMetadata
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d", id), &out); err != nil {
		return nil, fmt.Errorf("tmdb series %d: %w", id, err)
	}
	return &out, nil
}

func (c *TMDBClient) SeasonDetail(ctx context.Context, seriesID int64, season int) (*models.SeasonMetadata, error) {
	var out models.SeasonMetadata
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d/season/%d", seriesID, season), &out); err != nil {
		return nil, fmt.Errorf("tmdb series %d season %d: %w", seriesID, season, err)
	}
	return &out, nil
}

// ClearCache drops every cached response.
func (c *TMDBClient) ClearCache() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.clear()
}

func (c *TMDBClient) getJSON(ctx context.Context, path string, v any) error {
	id := cacheKey("tmdb", c.language, path)
	if c.cache != nil {
		if ok, _ := c.cache.get(id, v); ok {
			return nil
		}
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	endpoint := c.baseURL + path + "?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tmdb status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read tmdb response: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.set(id, v); err != nil {
			log.Printf("[tmdb] failed to cache response for %s: %v", path, err)
		}
	}
	return nil
}
