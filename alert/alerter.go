package alert

import (
	"context"
	"log"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/skywatch-go/skywatch/enrichment"
	"github.com/skywatch-go/skywatch/monitoring"
)

// Alerter evaluates each processed snapshot for proximity, updates the
// observed-distance high-water mark, and dispatches enrichment +
// notification when a qualifying, non-duplicate alert condition is
// met.
type Alerter struct {
	HomeLat, HomeLon, RadiusKM float64

	Dedup    *Dedup
	Engine   *enrichment.Engine
	Notifier Notifier

	maxObservedBits atomic.Uint64
}

// NewAlerter builds an Alerter around home coordinates and the
// supporting collaborators.
func NewAlerter(homeLat, homeLon, radiusKM float64, dedup *Dedup, engine *enrichment.Engine, notifier Notifier) *Alerter {
	return &Alerter{HomeLat: homeLat, HomeLon: homeLon, RadiusKM: radiusKM, Dedup: dedup, Engine: engine, Notifier: notifier}
}

// MaxObservedKM returns the largest distance seen so far.
func (a *Alerter) MaxObservedKM() float64 {
	return math.Float64frombits(a.maxObservedBits.Load())
}

func (a *Alerter) updateMax(d float64) {
	for {
		cur := a.maxObservedBits.Load()
		if d <= math.Float64frombits(cur) {
			return
		}
		if a.maxObservedBits.CompareAndSwap(cur, math.Float64bits(d)) {
			return
		}
	}
}

// Evaluate computes the distance for a snapshot carrying numeric
// latitude/longitude (ok=false if either is missing or non-numeric),
// updates the max-observed mark, and fires an alert when qualifying.
// fired reports whether a notification was attempted this call (it is
// true even if the notifier itself failed -- the dedup key is never
// rolled back on notifier failure).
func (a *Alerter) Evaluate(ctx context.Context, hex string, snapshot map[string]string) (distanceKM float64, ok bool, fired bool) {
	latStr, lonStr := snapshot["latitude"], snapshot["longitude"]
	if latStr == "" || lonStr == "" {
		return 0, false, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, false, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, false, false
	}

	distanceKM = DistanceKM(a.HomeLat, a.HomeLon, lat, lon)
	a.updateMax(distanceKM)
	monitoring.MaxObservedDistanceKM.Set(a.MaxObservedKM())

	if distanceKM > a.RadiusKM {
		return distanceKM, true, false
	}
	if !a.Dedup.Armed(hex) {
		return distanceKM, true, false
	}
	if snapshot["callsign"] == "" {
		return distanceKM, true, false
	}

	a.Dedup.Fire(hex)
	fired = true
	monitoring.AlertsFired.Inc()

	rec := a.Engine.Compose(ctx, hex)
	embed := BuildEmbed(hex, distanceKM, snapshot["altitude"], snapshot["callsign"], latStr, lonStr, snapshot["ground_speed"], rec)

	if err := a.Notifier.Notify(ctx, Content, embed); err != nil {
		log.Printf("alert: notify failed hex=%s err=%v", hex, err)
	}

	return distanceKM, true, fired
}
