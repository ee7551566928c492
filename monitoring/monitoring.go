// Package monitoring provides Prometheus metrics, OpenTelemetry tracing,
// and unified structured logging helpers for the pipeline.
package monitoring

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	github_chi_mw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	namespace = "skywatch"

	// logging level: 0=info, 1=debug
	logLevel int32

	QueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "queue", Name: "depth",
		Help: "Current number of messages waiting in the backlog queue.",
	})

	QueueDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "queue", Name: "dropped_total",
		Help: "Messages dropped because the backlog queue was full.",
	})

	MsgRateProduce = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "consumer", Name: "msg_rate_produce",
		Help: "Lines accepted by the consumer per second.",
	})

	MsgRateConsume = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "processor", Name: "msg_rate_consume",
		Help: "Lines processed by the processor loop per second.",
	})

	MaxObservedDistanceKM = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "alerter", Name: "max_observed_distance_km",
		Help: "Largest great-circle distance observed from home so far.",
	})

	AlertsFired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "alerter", Name: "fired_total",
		Help: "Proximity alerts dispatched to the notifier.",
	})

	MissingHexCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "enrichment", Name: "missing_hex_count",
		Help: "Distinct hex_idents with no airplane row in any source.",
	})

	CacheResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "cache", Name: "results_total",
		Help: "Cache/backoff outcomes by operation and result.",
	}, []string{"op", "result"}) // result: hit, miss_ok, miss_backoff, miss_fail

	EnrichDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "enrich", Name: "call_duration_seconds",
		Help:    "Duration of outbound enrichment HTTP calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"client", "op"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_total",
		Help: "Total number of inbound ops-surface HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "http", Name: "duration_seconds",
		Help:    "Duration of inbound ops-surface HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func init() {
	prometheus.MustRegister(
		QueueDepth, QueueDropped, MsgRateProduce, MsgRateConsume,
		MaxObservedDistanceKM, AlertsFired, MissingHexCount, CacheResults,
		EnrichDuration, HTTPRequests, HTTPDuration,
	)
	SetLogLevel("info")
}

// SetLogLevel switches the package-wide debug gate.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		atomic.StoreInt32(&logLevel, 1)
		log.Printf("log_level=debug")
	case "info", "":
		atomic.StoreInt32(&logLevel, 0)
		log.Printf("log_level=info")
	default:
		atomic.StoreInt32(&logLevel, 0)
		log.Printf("log_level=info (unknown level %q)", level)
	}
}

func IsDebug() bool { return atomic.LoadInt32(&logLevel) == 1 }

func Debugf(format string, args ...any) {
	if IsDebug() {
		log.Printf("DEBUG "+format, args...)
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments all ops-surface HTTP traffic.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(rr, r)

		duration := time.Since(start).Seconds()
		path := r.URL.Path
		HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
		HTTPRequests.WithLabelValues(r.Method, path, http.StatusText(rr.status)).Inc()
	})
}

// PrometheusHandler exposes registered metrics.
func PrometheusHandler() http.Handler { return promhttp.Handler() }

// StartClientSpan starts a client span for an outbound enrichment HTTP
// call and records its duration against EnrichDuration once the caller
// invokes the returned func, which also ends the span.
func StartClientSpan(ctx context.Context, client, op, urlStr, method string) (context.Context, func()) {
	if method == "" {
		method = "GET"
	}
	ctx, span := otel.Tracer("skywatch-enrich").Start(ctx, client+" "+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		semconv.HTTPMethodKey.String(method),
		attribute.String("http.url", urlStr),
	)
	start := time.Now()
	return ctx, func() {
		EnrichDuration.WithLabelValues(client, op).Observe(time.Since(start).Seconds())
		span.End()
	}
}

var tracer = otel.Tracer("skywatch-http")

// InitTracer installs a tracer provider. With no endpoint it installs a
// local-only provider so spans are created but never exported.
func InitTracer(endpoint string, serviceName string) func() {
	ctx := context.Background()

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	if endpoint == "" {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName(serviceName),
			)),
		)
		otel.SetTracerProvider(tp)
		return func() { _ = tp.Shutdown(ctx) }
	}

	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Printf("failed to create OTEL exporter: %v", err)
		return func() {}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	return func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer: %v", err)
		}
	}
}

// TracingMiddleware starts a server span for each ops-surface request.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prop := otel.GetTextMapPropagator()
		ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		spanName := r.Method + " " + r.URL.Path
		ctx, span := tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		span.SetAttributes(
			semconv.HTTPMethodKey.String(r.Method),
			semconv.URLPathKey.String(r.URL.Path),
		)
		if rid := github_chi_mw.GetReqID(r.Context()); rid != "" {
			span.SetAttributes(attribute.String("http.request_id", rid))
		}
		if sc := span.SpanContext(); sc.IsValid() {
			w.Header().Set("X-Trace-Id", sc.TraceID().String())
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware writes a structured log line per ops-surface
// request, correlated with its trace/span/request IDs.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rr, r)

		dur := time.Since(start)
		traceID, spanID := "", ""
		if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.IsValid() {
			traceID = sc.TraceID().String()
			spanID = sc.SpanID().String()
		}
		rid := github_chi_mw.GetReqID(r.Context())

		log.Printf("http_request method=%s path=%q status=%d duration=%s remote=%s trace_id=%s span_id=%s request_id=%s",
			r.Method, r.URL.Path, rr.status, dur, clientIP(r), traceID, spanID, rid)
	})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xr := r.Header.Get("X-Real-Ip"); xr != "" {
		return xr
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
