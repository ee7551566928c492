// Package enrich implements the typed HTTP enricher clients (hexdb.io,
// planespotters.net) that sit behind the cache/backoff layer.
package enrich

import (
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Timeout is the transport contract's fixed per-request timeout.
const Timeout = 10 * time.Second

// BuildHTTPClient builds an *http.Client with explicit dial/keepalive/TLS
// timeouts, honoring a CLI-provided proxy override ahead of per-scheme
// environment proxies, and NO_PROXY bypass -- the same resolution order
// the rest of this codebase's HTTP clients use.
func BuildHTTPClient(proxyOverride string) *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	tr := &http.Transport{
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	proxyOverride = strings.TrimSpace(proxyOverride)
	if proxyOverride != "" {
		if purl, err := url.Parse(proxyOverride); err == nil && purl.Host != "" {
			fixed := purl
			tr.Proxy = func(req *http.Request) (*url.URL, error) {
				if noProxyMatch(req.URL.Hostname()) {
					return nil, nil
				}
				return fixed, nil
			}
		}
	} else {
		tr.Proxy = func(req *http.Request) (*url.URL, error) {
			if noProxyMatch(req.URL.Hostname()) {
				return nil, nil
			}
			return http.ProxyFromEnvironment(req)
		}
	}

	return &http.Client{Timeout: Timeout, Transport: tr}
}

// noProxyMatch reports whether host should bypass the proxy according to
// the NO_PROXY/no_proxy environment variable (suffix/glob style).
func noProxyMatch(host string) bool {
	if host == "" {
		return false
	}
	noProxy := os.Getenv("NO_PROXY")
	if noProxy == "" {
		noProxy = os.Getenv("no_proxy")
	}
	if noProxy == "" {
		return false
	}
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for _, token := range strings.Split(noProxy, ",") {
		t := strings.ToLower(strings.TrimSpace(token))
		if t == "" {
			continue
		}
		if t == "*" {
			return true
		}
		if h, _, err := net.SplitHostPort(t); err == nil {
			t = h
		}
		if strings.HasPrefix(t, ".") {
			if strings.HasSuffix(host, t) || host == strings.TrimPrefix(t, ".") {
				return true
			}
			continue
		}
		if host == t || strings.HasSuffix(host, "."+t) {
			return true
		}
	}
	return false
}

// BearerToken resolves the bearer token for a provider: its specific
// environment variable first, then the generic API_TOKEN fallback.
// Returns "" if neither is set, in which case the caller sends no
// Authorization header (the provider is treated as best-effort).
func BearerToken(specificEnvVar string) string {
	if v := os.Getenv(specificEnvVar); v != "" {
		return v
	}
	return os.Getenv("API_TOKEN")
}
