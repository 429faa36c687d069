package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apppayment "github.com/commercekit/klarna-payments/internal/application/payment"
	appsession "github.com/commercekit/klarna-payments/internal/application/session"
	"github.com/commercekit/klarna-payments/internal/infrastructure/config"
	"github.com/commercekit/klarna-payments/internal/infrastructure/gateway"
	"github.com/commercekit/klarna-payments/internal/infrastructure/memory"
	"github.com/commercekit/klarna-payments/internal/infrastructure/observability/oteltrace"
	"github.com/commercekit/klarna-payments/internal/infrastructure/observability/prometrics"
	"github.com/commercekit/klarna-payments/internal/infrastructure/observability/telemetry"
	"github.com/commercekit/klarna-payments/internal/infrastructure/observability/zaplogger"
	"github.com/commercekit/klarna-payments/internal/infrastructure/outbox"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/pkg/logging"
	httppresentation "github.com/commercekit/klarna-payments/internal/presentation/http"
	workerpresentation "github.com/commercekit/klarna-payments/internal/presentation/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	obsLogger := zaplogger.New(
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)

	registry := prometrics.New("", "")
	counters := map[string]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			observability.MUsecaseRequests,
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			observability.MHTTPRequests,
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
		observability.MExternalRequests: registry.Counter(
			observability.MExternalRequests,
			"Total number of outbound gateway calls.",
			"peer", "endpoint", "outcome",
		),
	}
	histograms := map[string]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			observability.MUsecaseDuration,
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			observability.MHTTPRequestDuration,
			"Duration of HTTP requests in seconds.",
			prometheus.DefBuckets,
			"method", "route", "status",
		),
		observability.MExternalRequestDuration: registry.Histogram(
			observability.MExternalRequestDuration,
			"Duration of outbound gateway calls in seconds.",
			prometheus.DefBuckets,
			"peer", "endpoint",
		),
	}
	tel := telemetry.New(oteltrace.New(cfg.ServiceName), obsLogger, counters, histograms)

	bus := outbox.NewBus(tel.Logger())
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	sessionStore := memory.NewSessionStore()
	paymentRepo := memory.NewPaymentRepository()
	klarnaGateway := gateway.NewSimulated(cfg.GatewayAcceptRate, tel)

	builderCfg := cfg.BuilderConfig()
	authService := appsession.NewAuthService(sessionStore, tel.Logger())
	refreshUseCase := appsession.NewRefreshUseCase(builderCfg, nil, nil, sessionStore, klarnaGateway, tel)
	submitUseCase := apppayment.NewSubmitOrderUseCase(builderCfg, nil, nil, authService, klarnaGateway, paymentRepo, bus, tel)
	notificationService := apppayment.NewNotificationService(bus, tel.Logger())

	fraudWorker := apppayment.NewWorker(workerpresentation.NewSubscriber(bus, obsLogger, tel), paymentRepo, tel)
	fraudWorker.Start()

	handler := httppresentation.NewHandler(
		refreshUseCase, authService, submitUseCase, notificationService,
		tel.Logger(), tel,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		systemLogger.Info("http_server_stopped")
	}
}
