package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/GeorgeMish/Yatube/configs"
	"github.com/GeorgeMish/Yatube/internal/app"
	"github.com/GeorgeMish/Yatube/internal/migrate"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/shared/jwt"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
)

// initOTEL installs a tracer provider exporting over OTLP/HTTP. Without an
// endpoint tracing stays a no-op.
func initOTEL(ctx context.Context, cfg *configs.Config) func(context.Context) error {
	if cfg.OtelEndpoint == "" {
		return func(context.Context) error { return nil }
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.OtelEndpoint), otlptracehttp.WithInsecure())
	if err != nil {
		logrus.WithError(err).Fatal("otel exporter")
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.OtelServiceName),
		attribute.String("deployment.environment", cfg.Env),
	))
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.OtelSampleRatio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	cfg := configs.LoadConfig()
	logx.Setup(cfg.LogLevel, cfg.LogFormat)
	logrus.WithField("config", cfg.String()).Info("starting blog-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := initOTEL(ctx, cfg)
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	store, err := db.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("db")
	}
	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			logrus.WithError(err).Fatal("migrate")
		}
	}

	cache, closeCache, err := app.OpenCache(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("page cache")
	}
	defer closeCache()

	images, err := app.OpenImages(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("image storage")
	}

	events := app.OpenEvents(cfg)
	defer events.Close()

	limiter, closeLimiter, err := app.OpenLimiter(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("rate limiter")
	}
	defer closeLimiter()

	handler := app.New(app.Deps{
		Store:      store,
		Cache:      cache,
		CacheTTL:   cfg.CacheIndexTTL,
		Images:     images,
		Events:     events,
		JWT:        jwt.New(cfg.JWTSecret),
		LoginURL:   cfg.LoginURL,
		AdminToken: cfg.AdminToken,
		PageSize:   cfg.PageSize,
		Limiter:    limiter,
	})

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(handler, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	go func() {
		<-ctx.Done()
		c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(c)
	}()

	logrus.WithField("addr", cfg.AppPort).Info("blog-service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("http server")
	}
}
