// Package canon scrapes fan wiki pages for movie and episode summaries used to ground
// generated recaps. Every lookup is best-effort: failures surface as an empty
// Enrichment, never as an error to the caller.
package canon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"

	"recapstream/config"
	"recapstream/internal/metrics"
)

const (
	movieTextLimit   = 12000
	episodeTextLimit = 4000
)

var (
	// ErrNoWiki means the title produced no usable wiki slug.
	ErrNoWiki = errors.New("canon: title has no wiki slug")
	// ErrPageUnavailable means every applicable strategy ran without getting the page.
	ErrPageUnavailable = errors.New("canon: page unavailable")
	// ErrNoContent means pages were fetched but yielded no text.
	ErrNoContent = errors.New("canon: no content")
)

// Enrichment is the result of a canon lookup. Fault explains an empty Text and is only
// ever logged.
type Enrichment struct {
	Text  string
	Fault error
}

func (e Enrichment) Empty() bool { return strings.TrimSpace(e.Text) == "" }

// EpisodeRef names an episode whose wiki page should be read.
type EpisodeRef struct {
	Number int
	Name   string
}

type stage struct {
	strategy Strategy
	// onStatus gates fallback stages on the previous stage's status.
	onStatus int
}

// Fetcher resolves titles to wiki pages and extracts their synopsis and plot.
type Fetcher struct {
	stages      []stage
	limiter     *rate.Limiter
	concurrency int
	pageURL     func(slug, pagePath string) string
}

// NewFetcher assembles the strategy chain from cfg. With a relay key configured the
// relay is the only strategy. Otherwise pages are fetched directly, and a 403 falls
// back to the headless browser when it is enabled.
func NewFetcher(cfg config.CanonConfig, httpc *http.Client) *Fetcher {
	f := &Fetcher{
		limiter:     rate.NewLimiter(rate.Inf, 1),
		concurrency: cfg.MaxConcurrency,
		pageURL:     WikiURL,
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	if f.concurrency <= 0 {
		f.concurrency = 1
	}

	if key := strings.TrimSpace(cfg.ScraperAPIKey); key != "" {
		relay := NewRelayStrategy(cfg.RelayURL, key, httpc, cfg.RelayTimeout, cfg.BreakerFailures, cfg.BreakerCooldown)
		f.stages = []stage{{strategy: relay}}
		return f
	}

	f.stages = []stage{{strategy: NewDirectStrategy(httpc, cfg.DirectTimeout)}}
	if cfg.UseBrowser {
		f.stages = append(f.stages, stage{
			strategy: NewBrowserStrategy(cfg.BrowserTimeout, cfg.BrowserSettle),
			onStatus: http.StatusForbidden,
		})
	}
	return f
}

// Strategies lists the chain in the order it is tried.
func (f *Fetcher) Strategies() []string {
	names := make([]string, 0, len(f.stages))
	for _, st := range f.stages {
		names = append(names, st.strategy.Name())
	}
	return names
}

// MovieCanonSummary returns up to 12000 characters of synopsis and plot for a movie.
func (f *Fetcher) MovieCanonSummary(ctx context.Context, movieID int64, title string) Enrichment {
	slug := WikiSlug(title)
	if slug == "" {
		return Enrichment{Fault: ErrNoWiki}
	}

	target := f.pageURL(slug, WikiPagePath(title))
	text, err := f.pageSummary(ctx, target)
	if err != nil {
		log.Printf("[canon] movie %d %q unavailable at %s: %v", movieID, title, target, err)
		return Enrichment{Fault: err}
	}
	return Enrichment{Text: truncate(text, movieTextLimit)}
}

// SeriesCanonSummary returns per-episode summaries for the given episodes of one season,
// each capped at 4000 characters and labelled with its number and name. Episodes are
// fetched concurrently; the output keeps the input order.
func (f *Fetcher) SeriesCanonSummary(ctx context.Context, seriesID int64, seriesName string, season int, episodes []EpisodeRef) Enrichment {
	slug := WikiSlug(seriesName)
	if slug == "" {
		return Enrichment{Fault: ErrNoWiki}
	}
	if len(episodes) == 0 {
		return Enrichment{Fault: ErrNoContent}
	}

	blocks := make([]string, len(episodes))
	faults := make([]error, len(episodes))
	p := pool.New().WithMaxGoroutines(f.concurrency)
	for i, ep := range episodes {
		p.Go(func() {
			target := f.pageURL(slug, WikiPagePath(episodePageName(season, ep.Number, ep.Name)))
			text, err := f.pageSummary(ctx, target)
			if err != nil {
				faults[i] = fmt.Errorf("episode %d: %w", ep.Number, err)
				return
			}
			blocks[i] = fmt.Sprintf("Episode %d \"%s\":\n%s", ep.Number, ep.Name, truncate(text, episodeTextLimit))
		})
	}
	p.Wait()

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			parts = append(parts, b)
		}
	}
	if len(parts) == 0 {
		err := errors.Join(faults...)
		log.Printf("[canon] series %d %q season %d unavailable: %v", seriesID, seriesName, season, err)
		return Enrichment{Fault: err}
	}
	if err := errors.Join(faults...); err != nil {
		log.Printf("[canon] series %d season %d partial (%d pages found): %v", seriesID, season, len(parts), err)
	}
	return Enrichment{Text: strings.Join(parts, "\n\n")}
}

func (f *Fetcher) pageSummary(ctx context.Context, target string) (string, error) {
	page, err := f.fetchPage(ctx, target)
	if err != nil {
		return "", err
	}
	text := ExtractSynopsisAndPlot(PageText(page))
	if strings.TrimSpace(text) == "" {
		return "", ErrNoContent
	}
	return text, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, target string) (string, error) {
	var prev Page
	for i, st := range f.stages {
		if i > 0 && prev.Status != st.onStatus {
			continue
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}

		name := st.strategy.Name()
		page, err := st.strategy.Fetch(ctx, target)
		if err != nil {
			metrics.CanonFetches.WithLabelValues(name, "error").Inc()
			return "", fmt.Errorf("%s fetch: %w", name, err)
		}
		metrics.CanonFetches.WithLabelValues(name, fetchResult(page.Status)).Inc()
		if page.Status == http.StatusOK {
			return page.HTML, nil
		}
		prev = page
	}
	return "", fmt.Errorf("%w: status %d", ErrPageUnavailable, prev.Status)
}

func fetchResult(status int) string {
	switch status {
	case http.StatusOK:
		return "ok"
	case http.StatusForbidden:
		return "blocked"
	case http.StatusNotFound:
		return "missing"
	default:
		return "error"
	}
}
