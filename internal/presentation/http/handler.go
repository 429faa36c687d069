// Package httppresentation exposes the engine over HTTP: session refresh,
// authorization-token capture, order submission, and Klarna's fraud
// notification callback.
package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/commercekit/klarna-payments/internal/application/builder"
	apppayment "github.com/commercekit/klarna-payments/internal/application/payment"
	appsession "github.com/commercekit/klarna-payments/internal/application/session"
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	headerTenantID       = "X-Tenant-ID"
)

type Handler struct {
	sessions      *appsession.RefreshUseCase
	auth          *appsession.AuthService
	orders        *apppayment.SubmitOrderUseCase
	notifications *apppayment.NotificationService
	log           observability.Logger
	tel           observability.Telemetry
}

func NewHandler(
	sessions *appsession.RefreshUseCase,
	auth *appsession.AuthService,
	orders *apppayment.SubmitOrderUseCase,
	notifications *apppayment.NotificationService,
	logger observability.Logger,
	tel observability.Telemetry,
) *Handler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = observability.NopLogger()
	}
	return &Handler{
		sessions:      sessions,
		auth:          auth,
		orders:        orders,
		notifications: notifications,
		log:           baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel:           tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Wire each route with middlewares:
	// Trace -> ObservabilityMiddleware (request logger) -> HTTP metrics -> Access log -> Handler
	h.muxHandle(mux, http.MethodPost, "/session", h.handleRefreshSession)
	h.muxHandle(mux, http.MethodPut, "/session/auth", h.handleSaveAuth)
	h.muxHandle(mux, http.MethodPost, "/order", h.handleSubmitOrder)
	h.muxHandle(mux, http.MethodPost, "/notification", h.handleNotification)
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Store stable route template for low-cardinality labels
		ctx := contextWithRoute(r.Context(), route)
		r = r.WithContext(ctx)

		wrapped := h.withTrace(
			ObservabilityMiddleware(
				logctx.FromOr(ctx, h.log),
				func(r *http.Request) string {
					return r.Header.Get(headerRequestID)
				},
				func(r *http.Request) string {
					return r.Header.Get(headerTenantID)
				},
				h.tel,
			)(
				h.withAccessLog(
					h.withHTTPMetrics(http.HandlerFunc(handler)),
				),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type localePayload struct {
	Country      string `json:"country"`
	KlarnaLocale string `json:"klarna_locale"`
}

func (p localePayload) toLocale() builder.Locale {
	return builder.Locale{Country: p.Country, KlarnaLocale: p.KlarnaLocale}
}

type refreshSessionRequest struct {
	BasketID string        `json:"basket_id"`
	Locale   localePayload `json:"locale"`
	Basket   basketPayload `json:"basket"`
}

type refreshSessionResponse struct {
	SessionID   string `json:"session_id"`
	ClientToken string `json:"client_token"`
	Created     bool   `json:"created"`
}

func (h *Handler) handleRefreshSession(w http.ResponseWriter, r *http.Request) {
	var req refreshSessionRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	agg, err := req.Basket.toAggregate(checkout.KindBasket)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.sessions.Execute(r.Context(), appsession.RefreshInput{
		BasketID:  req.BasketID,
		Aggregate: agg,
		Locale:    req.Locale.toLocale(),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshSessionResponse{
		SessionID:   result.SessionID,
		ClientToken: result.ClientToken,
		Created:     result.Created,
	})
}

type saveAuthRequest struct {
	BasketID           string `json:"basket_id"`
	AuthorizationToken string `json:"authorization_token"`
}

func (h *Handler) handleSaveAuth(w http.ResponseWriter, r *http.Request) {
	var req saveAuthRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.auth.SaveAuth(r.Context(), req.BasketID, req.AuthorizationToken); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitOrderRequest struct {
	BasketID           string        `json:"basket_id,omitempty"`
	AuthorizationToken string        `json:"authorization_token,omitempty"`
	Locale             localePayload `json:"locale"`
	Order              basketPayload `json:"order"`
}

type submitOrderResponse struct {
	KlarnaOrderID string             `json:"klarna_order_id"`
	RedirectURL   string             `json:"redirect_url,omitempty"`
	FraudStatus   dompay.FraudStatus `json:"fraud_status"`
}

func (h *Handler) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	agg, err := req.Order.toAggregate(checkout.KindOrder)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.orders.Execute(r.Context(), apppayment.SubmitOrderInput{
		BasketID:           req.BasketID,
		Aggregate:          agg,
		Locale:             req.Locale.toLocale(),
		AuthorizationToken: req.AuthorizationToken,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitOrderResponse{
		KlarnaOrderID: result.KlarnaOrderID,
		RedirectURL:   result.RedirectURL,
		FraudStatus:   result.FraudStatus,
	})
}

type notificationRequest struct {
	EventType string `json:"event_type"`
	OrderID   string `json:"order_id"`
}

// handleNotification is Klarna's asynchronous fraud callback. It only
// acknowledges receipt; the verdict is applied by the worker.
func (h *Handler) handleNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.notifications.Notify(r.Context(), req.OrderID, req.EventType); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("klarna-payments.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		spanName := route
		if spanName == "unknown" {
			spanName = r.Method + " " + r.URL.Path
		}
		template := route
		if idx := strings.Index(template, " "); idx >= 0 {
			template = template[idx+1:]
		}
		if template == "unknown" || template == "" {
			template = r.URL.Path
		}

		ctxWithSpan, span := tracer.Start(parentCtx,
			spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", template),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

// withHTTPMetrics records RED-ish HTTP metrics using injected vectors.
func (h *Handler) withHTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		if h.tel != nil {
			h.tel.Counter(observability.MHTTPRequests).Add(1,
				observability.L("method", r.Method),
				observability.L("route", routeFromContext(r.Context())),
				observability.L("status", strconv.Itoa(lrw.status)),
			)
			h.tel.Histogram(observability.MHTTPRequestDuration).Observe(time.Since(start).Seconds(),
				observability.L("method", r.Method),
				observability.L("route", routeFromContext(r.Context())),
				observability.L("status", strconv.Itoa(lrw.status)),
			)
		}
	})
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dompay.ErrNotFound),
		errors.Is(err, appsession.ErrNotFound),
		errors.Is(err, appsession.ErrAuthNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, builder.ErrInvalidParams),
		errors.Is(err, dompay.ErrInvalidAmount),
		errors.Is(err, apppayment.ErrUnknownFraudEvent):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, dompay.ErrConflict):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
