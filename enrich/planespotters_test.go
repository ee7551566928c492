package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skywatch-go/skywatch/cache"
)

func TestPlaneSpottersPhotosSendsGenericBearerToken(t *testing.T) {
	t.Setenv("API_TOKEN", "generic-token")

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open cache: %v", err)
	}
	defer c.Close()

	p := NewPlaneSpotters(srv.URL, srv.Client(), c)
	if _, ok, _ := p.Photos(context.Background(), "A12F52"); !ok {
		t.Fatalf("Photos() reported a miss on a 200 response")
	}

	if gotAuth != "Bearer generic-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer generic-token")
	}
}

func TestPlaneSpottersPhotosOmitsAuthorizationWhenNoTokenSet(t *testing.T) {
	t.Setenv("API_TOKEN", "")

	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open cache: %v", err)
	}
	defer c.Close()

	p := NewPlaneSpotters(srv.URL, srv.Client(), c)
	if _, ok, _ := p.Photos(context.Background(), "A12F52"); !ok {
		t.Fatalf("Photos() reported a miss on a 200 response")
	}

	if sawAuth {
		t.Errorf("Authorization header sent, want none when API_TOKEN is unset")
	}
}
