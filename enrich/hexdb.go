package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skywatch-go/skywatch/cache"
	"github.com/skywatch-go/skywatch/monitoring"
)

const hexdbEnvVar = "AIRLAB_API_TOKEN"

// AircraftInfo is hexdb.io's aircraft-lookup response shape.
type AircraftInfo struct {
	ModeS            string `json:"ModeS"`
	Registration     string `json:"Registration"`
	Manufacturer     string `json:"Manufacturer"`
	ICAOTypeCode     string `json:"ICAOTypeCode"`
	Type             string `json:"Type"`
	RegisteredOwners string `json:"RegisteredOwners"`
	OperatorFlagCode string `json:"OperatorFlagCode"`
}

// AirportInfo is hexdb.io's airport-lookup response shape.
type AirportInfo struct {
	CountryCode string  `json:"country_code"`
	RegionName  string  `json:"region_name"`
	IATA        string  `json:"iata"`
	ICAO        string  `json:"icao"`
	Airport     string  `json:"airport"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// RouteInfo is hexdb.io's route-lookup response shape.
type RouteInfo struct {
	Flight     string `json:"flight"`
	Route      string `json:"route"`
	UpdateTime int64  `json:"updatetime"`
}

// HexDB wraps hexdb.io's aircraft/airport/route lookups behind the
// cache/backoff layer.
type HexDB struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

// NewHexDB builds a client against hexdb.io (baseURL defaults to
// "https://hexdb.io/api/v1" when empty).
func NewHexDB(baseURL string, client *http.Client, c *cache.Cache) *HexDB {
	if baseURL == "" {
		baseURL = "https://hexdb.io/api/v1"
	}
	return &HexDB{baseURL: baseURL, client: client, cache: c}
}

func (h *HexDB) get(ctx context.Context, op, path string, dst any) error {
	url := h.baseURL + path
	ctx, end := monitoring.StartClientSpan(ctx, "hexdb", op, url, http.MethodGet)
	defer end()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if tok := BearerToken(hexdbEnvVar); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("hexdb: %s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// Aircraft looks up a 6-hex ICAO address, cached/backed off under the
// operation name "aircraft".
func (h *HexDB) Aircraft(ctx context.Context, hex string) (AircraftInfo, bool, string) {
	args := []cache.Arg{{Name: "hex", Value: hex}}
	return cache.Through(h.cache, "aircraft", args, 0, func() (AircraftInfo, error) {
		var out AircraftInfo
		err := h.get(ctx, "aircraft", "/aircraft/"+hex, &out)
		return out, err
	})
}

// AirportICAO looks up an airport by ICAO code.
func (h *HexDB) AirportICAO(ctx context.Context, code string) (AirportInfo, bool, string) {
	args := []cache.Arg{{Name: "code", Value: code}}
	return cache.Through(h.cache, "airport_icao", args, 0, func() (AirportInfo, error) {
		var out AirportInfo
		err := h.get(ctx, "airport_icao", "/airport/icao/"+code, &out)
		return out, err
	})
}

// AirportIATA looks up an airport by IATA code.
func (h *HexDB) AirportIATA(ctx context.Context, code string) (AirportInfo, bool, string) {
	args := []cache.Arg{{Name: "code", Value: code}}
	return cache.Through(h.cache, "airport_iata", args, 0, func() (AirportInfo, error) {
		var out AirportInfo
		err := h.get(ctx, "airport_iata", "/airport/iata/"+code, &out)
		return out, err
	})
}

// RouteICAO looks up a route by ICAO callsign.
func (h *HexDB) RouteICAO(ctx context.Context, callsign string) (RouteInfo, bool, string) {
	args := []cache.Arg{{Name: "callsign", Value: callsign}}
	return cache.Through(h.cache, "route_icao", args, 0, func() (RouteInfo, error) {
		var out RouteInfo
		err := h.get(ctx, "route_icao", "/route/icao/"+callsign, &out)
		return out, err
	})
}

// RouteIATA looks up a route by IATA callsign.
func (h *HexDB) RouteIATA(ctx context.Context, callsign string) (RouteInfo, bool, string) {
	args := []cache.Arg{{Name: "callsign", Value: callsign}}
	return cache.Through(h.cache, "route_iata", args, 0, func() (RouteInfo, error) {
		var out RouteInfo
		err := h.get(ctx, "route_iata", "/route/iata/"+callsign, &out)
		return out, err
	})
}
