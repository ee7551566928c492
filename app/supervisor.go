// Package app wires every pipeline component into a single Supervisor:
// the stream consumer, backlog queue, aggregator, enrichment engine,
// proximity alerter, and the ops-only HTTP surface, plus the periodic
// monitor that reports their combined state.
package app

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skywatch-go/skywatch/aggregate"
	"github.com/skywatch-go/skywatch/alert"
	"github.com/skywatch-go/skywatch/cache"
	"github.com/skywatch-go/skywatch/enrich"
	"github.com/skywatch-go/skywatch/enrichment"
	"github.com/skywatch-go/skywatch/monitoring"
	"github.com/skywatch-go/skywatch/queue"
	"github.com/skywatch-go/skywatch/refstore"
	"github.com/skywatch-go/skywatch/sbs"
)

// Supervisor owns every handle the pipeline needs: no package-level
// singletons. Run is the sole entry point; it starts the consumer,
// processor loop, monitor task and (optionally) the ops HTTP server,
// and shuts all of them down cooperatively when ctx is canceled.
type Supervisor struct {
	cfg Config

	cacheStore *cache.Cache
	agg        *aggregate.Store
	ref        *refstore.Store
	missing    *missingHexSet
	csv        *csvLog

	q        *queue.Queue
	consumer *sbs.Consumer
	alerter  *alert.Alerter

	rateConsumeBits atomic.Uint64

	// alive reports whether the consumer and processor tasks are both
	// still running. It starts false and is flipped true once Run has
	// launched them, then flipped back the moment either one exits, so
	// /healthz fails as soon as either task dies instead of forever
	// reporting the process as healthy.
	alive atomic.Bool
}

// Alive reports whether the consumer and processor tasks are both
// currently running, the liveness check the ops surface's /healthz
// route serves.
func (s *Supervisor) Alive() bool {
	return s.alive.Load()
}

// NewSupervisor opens every durable handle the pipeline needs and
// returns a Supervisor ready for Run. Home coordinates are taken
// directly from cfg: the location provider that would otherwise
// resolve them from a live feed is an out-of-scope collaborator, so a
// missing pair is a configuration error here.
func NewSupervisor(cfg Config) (*Supervisor, error) {
	if cfg.HomeLat == 0 && cfg.HomeLon == 0 {
		return nil, fmt.Errorf("app: home coordinates are required (--home.lat/--home.lon)")
	}
	if cfg.TCPAddr == "" {
		return nil, fmt.Errorf("app: tcp target is required (--sbs.addr)")
	}

	if cfg.Debug {
		monitoring.SetLogLevel("debug")
	}

	csvLog, err := openCSVLog(cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("app: open csv log: %w", err)
	}

	ref, err := refstore.Open(cfg.RefStorePath)
	if err != nil {
		return nil, fmt.Errorf("app: open reference store: %w", err)
	}

	cacheStore, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("app: open cache store: %w", err)
	}

	aggStore, err := aggregate.Open(cfg.AggregatePath)
	if err != nil {
		return nil, fmt.Errorf("app: open aggregate store: %w", err)
	}

	httpClient := enrich.BuildHTTPClient(cfg.ProxyOverride)
	hexdb := enrich.NewHexDB(cfg.HexDBBaseURL, httpClient, cacheStore)
	photos := enrich.NewPlaneSpotters(cfg.PlaneSpottersBaseURL, httpClient, cacheStore)
	missing := newMissingHexSet(cfg.MissingHexTTL)

	engine := &enrichment.Engine{Ref: ref, HexDB: hexdb, PlaneSpotters: photos, Missing: missing}
	notifier := alert.NewDiscordNotifier(cfg.WebhookID, cfg.WebhookToken, httpClient)
	dedup := alert.NewDedup(cacheStore, cfg.AlertCooldown)
	alerter := alert.NewAlerter(cfg.HomeLat, cfg.HomeLon, cfg.AlertRadiusKM, dedup, engine, notifier)

	q := queue.New(cfg.QueueCapacity)
	consumer := sbs.NewConsumer(cfg.TCPAddr, q)

	return &Supervisor{
		cfg:        cfg,
		cacheStore: cacheStore,
		agg:        aggStore,
		ref:        ref,
		missing:    missing,
		csv:        csvLog,
		q:          q,
		consumer:   consumer,
		alerter:    alerter,
	}, nil
}

// Run starts every task and blocks until ctx is canceled (by a caught
// signal, typically) or the consumer loop exits with an error. The
// processor loop runs in the calling goroutine, matching the teacher's
// convention of running the long-lived server loop on the main task.
func (s *Supervisor) Run(ctx context.Context) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	s.alive.Store(true)

	if s.cfg.MetricsEnabled {
		srv := &http.Server{
			Addr:              s.cfg.ServerListen,
			Handler:           opsRouter(s.Alive),
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      20 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("app: ops surface listening on %s", s.cfg.ServerListen)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("app: ops surface exited: %v", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.monitorLoop(ctx)
	}()

	consumerErrCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer s.alive.Store(false)
		consumerErrCh <- s.consumer.Run(ctx)
		cancel()
	}()

	s.processLoop(ctx)
	s.alive.Store(false)

	wg.Wait()

	if err := s.csv.Close(); err != nil {
		log.Printf("app: close csv log: %v", err)
	}
	if err := s.cacheStore.Close(); err != nil {
		log.Printf("app: close cache store: %v", err)
	}
	if err := s.agg.Close(); err != nil {
		log.Printf("app: close aggregate store: %v", err)
	}
	if err := s.ref.Close(); err != nil {
		log.Printf("app: close reference store: %v", err)
	}

	select {
	case err := <-consumerErrCh:
		if parent.Err() != nil || err == nil {
			return nil
		}
		return err
	default:
		return nil
	}
}

// processLoop dequeues messages, logs them, merges them into the
// aggregator, and attempts an alert against the refreshed snapshot --
// the snapshot, not the raw message, is what carries a qualifying
// callsign once it has arrived on any earlier message for the same
// hex_ident (see S1/S2).
func (s *Supervisor) processLoop(ctx context.Context) {
	var windowCount int64
	windowStart := time.Now()

	for {
		if ctx.Err() != nil {
			return
		}

		msg, ok := s.q.Get(sbs.PutTimeout)
		if !ok {
			continue
		}

		windowCount++
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("app: processor recovered from panic hex=%s: %v", msg.HexIdent, r)
				}
			}()
			s.csv.Append(msg)

			s.agg.Merge(msg.HexIdent, msg.AsMap())
			snapshot := s.agg.Snapshot(msg.HexIdent)
			s.alerter.Evaluate(ctx, msg.HexIdent, snapshot)
		}()

		if elapsed := time.Since(windowStart); elapsed >= time.Second {
			rate := float64(windowCount) / elapsed.Seconds()
			s.rateConsumeBits.Store(math.Float64bits(rate))
			monitoring.MsgRateConsume.Set(rate)
			windowCount = 0
			windowStart = time.Now()
		}
	}
}

func (s *Supervisor) rateConsume() float64 {
	return math.Float64frombits(s.rateConsumeBits.Load())
}

// monitorLoop logs the pipeline's combined state every
// cfg.MonitorInterval, publishes the consumer's produce rate and drop
// count to their metrics, and flushes the CSV log.
func (s *Supervisor) monitorLoop(ctx context.Context) {
	interval := s.cfg.MonitorInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var droppedReported int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logStatus()
			monitoring.MsgRateProduce.Set(s.consumer.Rate())
			dropped := s.consumer.Dropped()
			monitoring.QueueDropped.Add(float64(dropped - droppedReported))
			droppedReported = dropped
			s.csv.Flush()
		}
	}
}

func (s *Supervisor) logStatus() {
	monitoring.QueueDepth.Set(float64(s.q.Len()))

	missing := s.missing.Sorted()
	monitoring.MissingHexCount.Set(float64(len(missing)))

	log.Printf(
		"monitor queue_depth=%d/%d msg_rate_produce=%.2f msg_rate_consume=%.2f dropped=%d max_observed_distance_km=%.3f missing_hex=%s",
		s.q.Len(), s.q.Cap(), s.consumer.Rate(), s.rateConsume(), s.consumer.Dropped(),
		s.alerter.MaxObservedKM(), strings.Join(missing, ","),
	)
}
