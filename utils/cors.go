package utils

import (
	"net/http"
	"net/netip"
	"net/url"
	"strings"

	"github.com/go-chi/cors"
)

// privatePrefixes covers loopback, RFC1918, link-local and unique-local ranges.
var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fe80::/10"),
	netip.MustParsePrefix("fc00::/7"),
}

// OriginPolicy decides which browser origins may call the API. Origins listed
// explicitly are always trusted, as are LAN origins: localhost, .local names,
// single-label hosts and private IPs. A "*" entry trusts everything.
type OriginPolicy struct {
	allowed  map[string]struct{}
	allowAll bool
}

func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		switch o {
		case "":
		case "*":
			p.allowAll = true
		default:
			p.allowed[o] = struct{}{}
		}
	}
	return p
}

// Allowed reports whether an Origin header value should be trusted.
func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if p.allowAll {
		return true
	}
	if _, ok := p.allowed[strings.TrimRight(strings.ToLower(origin), "/")]; ok {
		return true
	}
	return isLANOrigin(origin)
}

// Middleware returns the CORS handler enforcing the policy.
func (p *OriginPolicy) Middleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool { return p.Allowed(origin) },
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:  []string{"Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:  []string{"X-Request-ID"},
		MaxAge:          300,
	})
}

func isLANOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	hostname := parsed.Hostname()

	switch {
	case hostname == "localhost", strings.HasSuffix(hostname, ".local"):
		return true
	case !strings.Contains(hostname, ".") && !strings.Contains(hostname, ":"):
		return true
	}

	addr, err := netip.ParseAddr(hostname)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range privatePrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
