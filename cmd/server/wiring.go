package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	jwttoken "kycgate/internal/jwt_token"
	"kycgate/internal/kyc/adapters"
	"kycgate/internal/kyc/events"
	kychandler "kycgate/internal/kyc/handler"
	kycmetrics "kycgate/internal/kyc/metrics"
	"kycgate/internal/kyc/provider"
	"kycgate/internal/kyc/service"
	"kycgate/internal/kyc/store"
	"kycgate/internal/kyc/webhook"
	"kycgate/internal/platform/config"
	"kycgate/internal/platform/kafka"
	"kycgate/internal/platform/metrics"
	"kycgate/internal/platform/postgres"
	kredis "kycgate/internal/platform/redis"
	audit "kycgate/pkg/platform/audit"
	auditmemory "kycgate/pkg/platform/audit/store/memory"
	auditpostgres "kycgate/pkg/platform/audit/store/postgres"
	"kycgate/pkg/platform/circuit"
	"kycgate/pkg/platform/httputil"
	"kycgate/pkg/platform/middleware/admin"
	"kycgate/pkg/platform/middleware/metadata"
	"kycgate/pkg/platform/middleware/request"
	"kycgate/pkg/platform/middleware/requesttime"
	txcontext "kycgate/pkg/platform/tx"
)

const (
	userLockPrefix = "kyc:lock:user:"
	breakerName    = "kyc-provider"
)

type app struct {
	router  http.Handler
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// build connects optional infrastructure and assembles the router. Postgres,
// Redis and Kafka are each optional; without them the process runs on
// in-memory stores, a process-local lock and no event stream.
func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	a := &app{}
	fail := func(err error) (*app, error) {
		a.close()
		return nil, err
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fail(err)
	}
	if db != nil {
		a.closers = append(a.closers, func() { _ = db.Close() })
		if err := store.EnsureSchema(ctx, db); err != nil {
			return fail(fmt.Errorf("ensure schema: %w", err))
		}
	}

	rdb, err := kredis.New(ctx, cfg.Redis)
	if err != nil {
		return fail(err)
	}
	if rdb != nil {
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fail(err)
	}
	if producer != nil {
		a.closers = append(a.closers, producer.Close)
		if err := producer.EnsureTopic(ctx, -1, -1); err != nil {
			return fail(err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg)
	kycMetrics := kycmetrics.New(reg)

	records, users, auditStore := dataLayer(db, rdb, cfg, log)
	auditPublisher := audit.NewPublisher(auditStore, audit.WithLogger(log))

	providerClient := provider.New(provider.Config{
		BaseURL:   cfg.Provider.BaseURL,
		AppToken:  cfg.Provider.AppToken,
		SecretKey: cfg.Provider.SecretKey,
		Timeout:   cfg.Provider.Timeout,
	},
		provider.WithLogger(log),
		provider.WithMetrics(kycMetrics),
		provider.WithBreaker(circuit.New(breakerName)),
		provider.WithRetryPolicy(retryPolicy(cfg.Provider.MaxAttempts)),
		provider.WithTracer(otel.Tracer("kycgate/provider")),
	)

	var locker service.UserLocker = service.NewKeyedMutex()
	if rdb != nil {
		locker = kredis.NewLocker(rdb.Client, userLockPrefix)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(kycMetrics),
		service.WithAuditPublisher(auditPublisher),
		service.WithLevelName(cfg.Verification.LevelName),
		service.WithAccessTokenTTL(cfg.Verification.AccessTokenTTL),
	}
	if producer != nil {
		opts = append(opts, service.WithEventPublisher(events.NewKafkaPublisher(producer)))
	} else {
		log.Warn("kafka disabled: status changes will not be published")
	}
	if db != nil {
		opts = append(opts, service.WithTransactor(txcontext.NewTransactor(db)))
	}
	svc, err := service.New(records, users, providerClient, locker, opts...)
	if err != nil {
		return fail(err)
	}

	jwtValidator := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience))
	api := kychandler.New(svc, log, adminCheck(cfg, log), jwtValidator)
	hooks := webhook.New(svc, providerClient, cfg.Provider.WebhookSecret,
		webhook.WithLogger(log),
		webhook.WithMetrics(kycMetrics),
		webhook.WithAuditPublisher(auditPublisher),
		webhook.WithSignatureHeader(cfg.WebhookSignatureHeader),
	)
	if cfg.Provider.WebhookSecret == "" {
		log.Warn("KYC_WEBHOOK_SECRET is empty: every webhook delivery will be rejected")
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(log))
	r.Use(request.Recovery(log))
	r.Use(httpMetrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(db, rdb))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	api.Register(r)
	hooks.Register(r)

	a.router = r
	return a, nil
}

func dataLayer(db *sql.DB, rdb *kredis.Client, cfg config.Server, log *slog.Logger) (service.Store, service.UserDirectory, audit.Store) {
	if db == nil {
		log.Warn("DATABASE_URL not set: using in-memory stores")
		return store.NewInMemoryStore(), adapters.NewMemoryDirectory(), auditmemory.NewInMemoryStore()
	}
	var users adapters.Directory = adapters.NewPostgresDirectory(db)
	if rdb != nil {
		users = adapters.NewCachedDirectory(users, rdb.Client,
			adapters.WithCacheTTL(cfg.UserCacheTTL),
			adapters.WithCacheLogger(log),
		)
	}
	return store.NewPostgres(db), users, auditpostgres.New(db)
}

func retryPolicy(maxAttempts int) provider.RetryPolicy {
	p := provider.DefaultRetryPolicy
	if maxAttempts > 0 {
		p.MaxAttempts = maxAttempts
	}
	return p
}

func adminCheck(cfg config.Server, log *slog.Logger) admin.TokenCheck {
	if cfg.AdminAPITokenHash != "" {
		return admin.HashedToken(cfg.AdminAPITokenHash)
	}
	if cfg.AdminAPIToken == "" {
		log.Warn("no admin token configured: admin routes will reject every request")
	}
	return admin.PlainToken(cfg.AdminAPIToken)
}

func readiness(db *sql.DB, rdb *kredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}
		status := http.StatusOK
		if db != nil {
			checks["postgres"] = "ok"
			if err := db.PingContext(ctx); err != nil {
				checks["postgres"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Health(ctx); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, status, checks)
	}
}
