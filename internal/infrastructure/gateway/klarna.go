// Package gateway provides a simulated Klarna payments adapter for demo and
// testing. Session ids, client tokens, and order ids are generated locally;
// the fraud verdict is drawn from a configurable acceptance rate.
package gateway

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	apppayment "github.com/commercekit/klarna-payments/internal/application/payment"
	"github.com/commercekit/klarna-payments/internal/application/session"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

const peerKlarna = "klarna"

// Simulated implements the session and order gateway ports without calling
// out to Klarna.
type Simulated struct {
	mu         sync.Mutex
	random     *rand.Rand
	acceptRate float64
	sessions   map[string]bool // known session ids, for update validation

	log        observability.Logger
	reqCounter observability.Counter
	durHist    observability.Histogram
}

var (
	_ session.Gateway    = (*Simulated)(nil)
	_ apppayment.Gateway = (*Simulated)(nil)
)

func NewSimulated(acceptRate float64, tel observability.Telemetry) *Simulated {
	if acceptRate < 0 {
		acceptRate = 0
	}
	if acceptRate > 1 {
		acceptRate = 1
	}

	log := observability.NopLogger()
	var req observability.Counter
	var dur observability.Histogram
	if tel != nil {
		log = tel.Logger().With(observability.F("component", "klarna_gateway"))
		req = tel.Counter(observability.MExternalRequests)
		dur = tel.Histogram(observability.MExternalRequestDuration)
	}

	return &Simulated{
		random:     rand.New(rand.NewSource(time.Now().UnixNano())),
		acceptRate: acceptRate,
		sessions:   make(map[string]bool),
		log:        log,
		reqCounter: req,
		durHist:    dur,
	}
}

func (g *Simulated) CreateSession(ctx context.Context, req *klarna.Request) (*session.CreateResult, error) {
	defer g.record(ctx, "create_session", time.Now())

	if req == nil {
		return nil, errors.New("gateway: request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &session.CreateResult{
		SessionID:   uuid.NewString(),
		ClientToken: uuid.NewString(),
	}

	g.mu.Lock()
	g.sessions[result.SessionID] = true
	g.mu.Unlock()

	logctx.FromOr(ctx, g.log).Info("session_created",
		observability.F("session_id", result.SessionID),
		observability.F("purchase_country", req.PurchaseCountry),
	)
	return result, nil
}

func (g *Simulated) UpdateSession(ctx context.Context, sessionID string, req *klarna.Request) error {
	defer g.record(ctx, "update_session", time.Now())

	if req == nil {
		return errors.New("gateway: request is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	known := g.sessions[sessionID]
	g.mu.Unlock()
	if !known {
		return session.ErrNotFound
	}

	logctx.FromOr(ctx, g.log).Info("session_updated",
		observability.F("session_id", sessionID),
	)
	return nil
}

func (g *Simulated) CreateOrder(ctx context.Context, authorizationToken string, req *klarna.Request) (*apppayment.OrderResult, error) {
	defer g.record(ctx, "create_order", time.Now())

	if authorizationToken == "" {
		return nil, errors.New("gateway: authorization token is required")
	}
	if req == nil {
		return nil, errors.New("gateway: request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fraud := dompay.FraudPending
	g.mu.Lock()
	if g.random.Float64() < g.acceptRate {
		fraud = dompay.FraudAccepted
	}
	g.mu.Unlock()

	result := &apppayment.OrderResult{
		KlarnaOrderID: uuid.NewString(),
		RedirectURL:   "https://payments.example.klarna.com/redirect/" + uuid.NewString(),
		FraudStatus:   fraud,
	}

	logctx.FromOr(ctx, g.log).Info("order_created",
		observability.F("klarna_order_id", result.KlarnaOrderID),
		observability.F("fraud_status", string(fraud)),
	)
	return result, nil
}

func (g *Simulated) record(ctx context.Context, endpoint string, start time.Time) {
	_ = ctx
	if g.reqCounter != nil {
		g.reqCounter.Add(1,
			observability.L("peer", peerKlarna),
			observability.L("endpoint", endpoint),
			observability.L("outcome", "success"),
		)
	}
	if g.durHist != nil {
		g.durHist.Observe(time.Since(start).Seconds(),
			observability.L("peer", peerKlarna),
			observability.L("endpoint", endpoint),
		)
	}
}
