package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skywatch-go/skywatch/cache"
	"github.com/skywatch-go/skywatch/monitoring"
)

// Photo is one entry of a planespotters.net photo listing.
type Photo struct {
	ThumbnailLarge struct {
		Src    string `json:"src"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"thumbnail_large"`
	Link string `json:"link"`
}

// PhotosResponse is planespotters.net's photo-lookup response shape.
type PhotosResponse struct {
	Photos []Photo `json:"photos"`
}

// PlaneSpotters wraps planespotters.net's photo lookup behind the
// cache/backoff layer. Its terms of use forbid retaining responses for
// more than 24 hours, so successful lookups are cached with
// cache.PhotoTTL rather than unbounded.
type PlaneSpotters struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

// NewPlaneSpotters builds a client against planespotters.net (baseURL
// defaults to "https://api.planespotters.net/pub" when empty).
func NewPlaneSpotters(baseURL string, client *http.Client, c *cache.Cache) *PlaneSpotters {
	if baseURL == "" {
		baseURL = "https://api.planespotters.net/pub"
	}
	return &PlaneSpotters{baseURL: baseURL, client: client, cache: c}
}

// Photos looks up the photo listing for a 6-hex ICAO address.
func (p *PlaneSpotters) Photos(ctx context.Context, hex string) (PhotosResponse, bool, string) {
	args := []cache.Arg{{Name: "hex", Value: hex}}
	return cache.Through(p.cache, "photos", args, cache.PhotoTTL, func() (PhotosResponse, error) {
		url := p.baseURL + "/photos/hex/" + hex

		ctx, end := monitoring.StartClientSpan(ctx, "planespotters", "photos", url, http.MethodGet)
		defer end()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return PhotosResponse{}, err
		}
		req.Header.Set("Accept", "application/json")
		if tok := BearerToken(""); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return PhotosResponse{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return PhotosResponse{}, fmt.Errorf("planespotters: photos: HTTP %d", resp.StatusCode)
		}
		var out PhotosResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		return out, err
	})
}
