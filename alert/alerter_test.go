package alert

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skywatch-go/skywatch/cache"
	"github.com/skywatch-go/skywatch/enrich"
	"github.com/skywatch-go/skywatch/enrichment"
	"github.com/skywatch-go/skywatch/refstore"
)

type stubNotifier struct {
	calls int
	last  Embed
}

func (s *stubNotifier) Notify(ctx context.Context, content string, embed Embed) error {
	s.calls++
	s.last = embed
	return nil
}

func newTestAlerter(t *testing.T, notifier *stubNotifier) *Alerter {
	t.Helper()

	missHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(missHandler)
	t.Cleanup(srv.Close)

	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	ref, err := refstore.Open("")
	if err != nil {
		t.Fatalf("Open refstore: %v", err)
	}

	client := srv.Client()
	hexdb := enrich.NewHexDB(srv.URL, client, c)
	photos := enrich.NewPlaneSpotters(srv.URL, client, c)

	engine := &enrichment.Engine{Ref: ref, HexDB: hexdb, PlaneSpotters: photos}
	dedup := NewDedup(c, time.Minute)

	return NewAlerter(37.78, -122.15, 3, dedup, engine, notifier)
}

func TestAlerterFiresOnceForQualifyingSnapshot(t *testing.T) {
	notifier := &stubNotifier{}
	a := newTestAlerter(t, notifier)
	ctx := context.Background()

	snapshot := map[string]string{
		"latitude":  "37.78368",
		"longitude": "-122.15441",
		"callsign":  "SWA123",
		"altitude":  "3500",
	}

	d1, ok1, fired1 := a.Evaluate(ctx, "A12F52", snapshot)
	if !ok1 || !fired1 {
		t.Fatalf("first Evaluate: ok=%v fired=%v, want true,true", ok1, fired1)
	}
	if d1 > 3 {
		t.Errorf("distance = %v, want within 3km radius", d1)
	}

	_, ok2, fired2 := a.Evaluate(ctx, "A12F52", snapshot)
	if !ok2 {
		t.Fatalf("second Evaluate: ok=%v, want true", ok2)
	}
	if fired2 {
		t.Errorf("second Evaluate fired a duplicate alert within the cooldown window")
	}

	if notifier.calls != 1 {
		t.Errorf("notifier called %d times, want exactly 1", notifier.calls)
	}
	if notifier.last.Title != "A12F52" {
		t.Errorf("embed title = %q, want A12F52", notifier.last.Title)
	}
}

func TestAlerterDoesNotFireWithoutCallsign(t *testing.T) {
	notifier := &stubNotifier{}
	a := newTestAlerter(t, notifier)

	snapshot := map[string]string{
		"latitude":  "37.78368",
		"longitude": "-122.15441",
	}

	_, ok, fired := a.Evaluate(context.Background(), "A12F52", snapshot)
	if !ok {
		t.Fatalf("Evaluate: ok=%v, want true", ok)
	}
	if fired {
		t.Errorf("fired without a callsign present in the snapshot")
	}
	if notifier.calls != 0 {
		t.Errorf("notifier called %d times, want 0", notifier.calls)
	}
}

func TestAlerterSkipsMissingCoordinates(t *testing.T) {
	notifier := &stubNotifier{}
	a := newTestAlerter(t, notifier)

	_, ok, fired := a.Evaluate(context.Background(), "A12F52", map[string]string{"callsign": "SWA123"})
	if ok {
		t.Errorf("Evaluate with no coordinates: ok=%v, want false", ok)
	}
	if fired {
		t.Errorf("fired despite missing coordinates")
	}
}

func TestAlerterDoesNotFireOutsideRadius(t *testing.T) {
	notifier := &stubNotifier{}
	a := newTestAlerter(t, notifier)

	snapshot := map[string]string{
		"latitude":  "0",
		"longitude": "0",
		"callsign":  "SWA123",
	}
	d, ok, fired := a.Evaluate(context.Background(), "A12F52", snapshot)
	if !ok {
		t.Fatalf("Evaluate: ok=%v, want true", ok)
	}
	if fired {
		t.Errorf("fired for a snapshot far outside the alert radius (distance=%v)", d)
	}
}
