package enrich

import (
	"os"
	"testing"
)

func TestNoProxyMatch(t *testing.T) {
	t.Setenv("NO_PROXY", "example.com,.internal,10.0.0.1")
	t.Setenv("no_proxy", "")

	cases := []struct {
		host string
		want bool
	}{
		{"example.com", true},
		{"example.com:443", true},
		{"api.internal", true},
		{"internal", true},
		{"10.0.0.1", true},
		{"other.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := noProxyMatch(c.host); got != c.want {
			t.Errorf("noProxyMatch(%q) = %v, want %v", c.host, got, c.want)
		}
	}
}

func TestNoProxyMatchWildcard(t *testing.T) {
	t.Setenv("NO_PROXY", "*")
	if !noProxyMatch("anything.example") {
		t.Errorf("wildcard NO_PROXY should bypass every host")
	}
}

func TestBearerTokenPrefersSpecificEnvVar(t *testing.T) {
	t.Setenv("AIRLAB_API_TOKEN", "specific")
	t.Setenv("API_TOKEN", "generic")
	if got := BearerToken("AIRLAB_API_TOKEN"); got != "specific" {
		t.Errorf("BearerToken = %q, want specific", got)
	}
}

func TestBearerTokenFallsBackToGeneric(t *testing.T) {
	os.Unsetenv("AIRLAB_API_TOKEN")
	t.Setenv("API_TOKEN", "generic")
	if got := BearerToken("AIRLAB_API_TOKEN"); got != "generic" {
		t.Errorf("BearerToken = %q, want generic", got)
	}
}

func TestBearerTokenEmptyWhenNeitherSet(t *testing.T) {
	os.Unsetenv("AIRLAB_API_TOKEN")
	os.Unsetenv("API_TOKEN")
	if got := BearerToken("AIRLAB_API_TOKEN"); got != "" {
		t.Errorf("BearerToken = %q, want empty", got)
	}
}
