package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/skywatch-go/skywatch/app"
	"github.com/skywatch-go/skywatch/monitoring"
)

func main() {
	def := app.DefaultConfig()

	cmd := &cli.Command{
		Name:  "skywatch",
		Usage: "Ingest, enrich and alert on live SBS-1 aircraft surveillance traffic",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Category: "sbs",
				Name:     "sbs.addr",
				Aliases:  []string{"addr"},
				Value:    def.TCPAddr,
				Sources:  cli.EnvVars("SBS_ADDR"),
				Usage:    "`ADDRESS` of the SBS-1 decoder (host:port)",
			},
			&cli.StringFlag{
				Category: "sbs",
				Name:     "queue.capacity",
				Value:    strconv.Itoa(def.QueueCapacity),
				Usage:    "Backlog queue capacity",
			},
			&cli.DurationFlag{
				Category: "sbs",
				Name:     "monitor.interval",
				Value:    def.MonitorInterval,
				Usage:    "Interval between periodic monitor log lines",
			},
			&cli.StringFlag{
				Category: "alert",
				Name:     "home.lat",
				Sources:  cli.EnvVars("HOME_LAT"),
				Usage:    "Observer latitude in decimal degrees",
			},
			&cli.StringFlag{
				Category: "alert",
				Name:     "home.lon",
				Sources:  cli.EnvVars("HOME_LON"),
				Usage:    "Observer longitude in decimal degrees",
			},
			&cli.StringFlag{
				Category: "alert",
				Name:     "alert.radius_km",
				Value:    strconv.FormatFloat(def.AlertRadiusKM, 'f', -1, 64),
				Usage:    "Proximity alert radius in kilometers",
			},
			&cli.DurationFlag{
				Category: "alert",
				Name:     "alert.cooldown",
				Value:    def.AlertCooldown,
				Usage:    "Per-aircraft alert dedup cooldown",
			},
			&cli.StringFlag{
				Category: "storage",
				Name:     "cache.path",
				Value:    def.CachePath,
				Usage:    "Path to the cache/backoff BuntDB file",
			},
			&cli.StringFlag{
				Category: "storage",
				Name:     "aggregate.path",
				Value:    def.AggregatePath,
				Usage:    "Path to the per-aircraft aggregate BuntDB file",
			},
			&cli.StringFlag{
				Category: "storage",
				Name:     "refstore.path",
				Usage:    "Path to the read-only reference DuckDB file (optional)",
			},
			&cli.StringFlag{
				Category: "storage",
				Name:     "csv.path",
				Usage:    "Path to an optional append-only CSV log of processed messages",
			},
			&cli.DurationFlag{
				Category: "enrich",
				Name:     "missing_hex.ttl",
				Value:    def.MissingHexTTL,
				Usage:    "Retention window for the in-process missing_hex set",
			},
			&cli.StringFlag{
				Category: "enrich",
				Name:     "hexdb.base_url",
				Usage:    "hexdb.io base URL override",
			},
			&cli.StringFlag{
				Category: "enrich",
				Name:     "planespotters.base_url",
				Usage:    "planespotters.net base URL override",
			},
			&cli.StringFlag{
				Category: "net",
				Name:     "net.proxy",
				Aliases:  []string{"proxy", "x"},
				Usage:    "Proxy URL override for all outbound HTTP requests. If empty, per-scheme env proxies apply",
			},
			&cli.StringFlag{
				Category: "alert",
				Name:     "webhook.id",
				Sources:  cli.EnvVars("WEBHOOK_ID"),
				Usage:    "Discord webhook ID",
			},
			&cli.StringFlag{
				Category: "alert",
				Name:     "webhook.token",
				Sources:  cli.EnvVars("WEBHOOK_TOKEN"),
				Usage:    "Discord webhook token",
			},
			&cli.StringFlag{
				Category: "server",
				Name:     "server.listen",
				Aliases:  []string{"listen", "l"},
				Value:    def.ServerListen,
				Usage:    "`ADDRESS` the ops surface (/metrics, /healthz) listens on",
			},
			&cli.BoolFlag{
				Category: "monitoring",
				Name:     "metrics.enabled",
				Value:    true,
				Usage:    "Serve the /metrics and /healthz ops surface",
			},
			&cli.StringFlag{
				Category: "monitoring",
				Name:     "tracing.endpoint",
				Aliases:  []string{"tracing", "t"},
				Usage:    "OpenTelemetry collector `ENDPOINT` for traces",
			},
			&cli.BoolFlag{
				Category: "monitoring",
				Name:     "debug",
				Aliases:  []string{"d"},
				Usage:    "Enable debug logging",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	def := app.DefaultConfig()

	shutdownTracer := monitoring.InitTracer(c.String("tracing.endpoint"), "skywatch")
	defer shutdownTracer()

	homeLat, err := parseFloatFlag(c, "home.lat")
	if err != nil {
		log.Printf("configuration error: %v", err)
		os.Exit(2)
	}
	homeLon, err := parseFloatFlag(c, "home.lon")
	if err != nil {
		log.Printf("configuration error: %v", err)
		os.Exit(2)
	}
	radiusKM, err := parseFloatFlag(c, "alert.radius_km")
	if err != nil {
		log.Printf("configuration error: %v", err)
		os.Exit(2)
	}

	queueCapacity := def.QueueCapacity
	if v := c.String("queue.capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("configuration error: --queue.capacity must be an integer: %v", err)
			os.Exit(2)
		}
		queueCapacity = n
	}

	cfg := app.Config{
		TCPAddr:              c.String("sbs.addr"),
		QueueCapacity:        queueCapacity,
		MonitorInterval:      c.Duration("monitor.interval"),
		HomeLat:              homeLat,
		HomeLon:              homeLon,
		AlertRadiusKM:        radiusKM,
		AlertCooldown:        c.Duration("alert.cooldown"),
		CachePath:            c.String("cache.path"),
		AggregatePath:        c.String("aggregate.path"),
		RefStorePath:         c.String("refstore.path"),
		CSVPath:              c.String("csv.path"),
		MissingHexTTL:        c.Duration("missing_hex.ttl"),
		HexDBBaseURL:         c.String("hexdb.base_url"),
		PlaneSpottersBaseURL: c.String("planespotters.base_url"),
		ProxyOverride:        c.String("net.proxy"),
		WebhookID:            c.String("webhook.id"),
		WebhookToken:         c.String("webhook.token"),
		ServerListen:         c.String("server.listen"),
		MetricsEnabled:       c.Bool("metrics.enabled"),
		TracingEndpoint:      c.String("tracing.endpoint"),
		Debug:                c.Bool("debug"),
	}

	sup, err := app.NewSupervisor(cfg)
	if err != nil {
		log.Printf("configuration error: %v", err)
		os.Exit(2)
	}

	return sup.Run(ctx)
}

func parseFloatFlag(c *cli.Command, name string) (float64, error) {
	v := c.String(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("--%s must be a number: %w", name, err)
	}
	return f, nil
}
