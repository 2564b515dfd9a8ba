package canon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
)

// maxPageBytes caps how much of a scraped page is read.
const maxPageBytes = 4 << 20

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Page is the outcome of one fetch attempt. HTML is only populated for status 200.
type Page struct {
	Status int
	HTML   string
}

// Strategy retrieves a wiki page by one transport.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, target string) (Page, error)
}

// DirectStrategy requests the page with browser-like headers. 200, 403 and 404 are
// reported as pages; any other status is an error.
type DirectStrategy struct {
	client  *http.Client
	timeout time.Duration
}

// NewDirectStrategy bounds every fetch by timeout; 0 leaves it to the caller's context.
func NewDirectStrategy(client *http.Client, timeout time.Duration) *DirectStrategy {
	if client == nil {
		client = &http.Client{}
	}
	return &DirectStrategy{client: client, timeout: timeout}
}

func (s *DirectStrategy) Name() string { return "direct" }

func (s *DirectStrategy) Fetch(ctx context.Context, target string) (Page, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if origin := originOf(target); origin != "" {
		req.Header.Set("Referer", origin+"/")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
		if err != nil {
			return Page{}, fmt.Errorf("read page: %w", err)
		}
		return Page{Status: resp.StatusCode, HTML: string(body)}, nil
	case http.StatusForbidden, http.StatusNotFound:
		return Page{Status: resp.StatusCode}, nil
	default:
		return Page{}, fmt.Errorf("direct fetch status %d", resp.StatusCode)
	}
}

// RelayStrategy fetches through a scraping relay that takes the target as a query
// parameter. Repeated relay failures open a circuit breaker so a dead relay is not
// hammered for every episode.
type RelayStrategy struct {
	endpoint string
	apiKey   string
	client   *http.Client
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker[Page]
}

func NewRelayStrategy(endpoint, apiKey string, client *http.Client, timeout time.Duration, failures uint32, cooldown time.Duration) *RelayStrategy {
	if client == nil {
		client = &http.Client{}
	}
	if failures == 0 {
		failures = 5
	}
	breaker := gobreaker.NewCircuitBreaker[Page](gobreaker.Settings{
		Name:    "canon-relay",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellation says nothing about relay health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &RelayStrategy{endpoint: endpoint, apiKey: apiKey, client: client, timeout: timeout, breaker: breaker}
}

func (s *RelayStrategy) Name() string { return "relay" }

func (s *RelayStrategy) Fetch(ctx context.Context, target string) (Page, error) {
	return s.breaker.Execute(func() (Page, error) {
		return s.fetch(ctx, target)
	})
}

func (s *RelayStrategy) fetch(ctx context.Context, target string) (Page, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return Page{}, fmt.Errorf("relay endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", s.apiKey)
	q.Set("url", target)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{Status: resp.StatusCode}, fmt.Errorf("relay status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Page{}, fmt.Errorf("read relay body: %w", err)
	}
	return Page{Status: resp.StatusCode, HTML: string(body)}, nil
}

func originOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
