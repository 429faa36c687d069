package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/klarna-payments/internal/application/builder"
	"github.com/commercekit/klarna-payments/internal/application/session"
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	domoutbox "github.com/commercekit/klarna-payments/internal/domain/outbox"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
	"github.com/commercekit/klarna-payments/internal/infrastructure/memory"
)

type fakeOrderGateway struct {
	result  *OrderResult
	err     error
	token   string
	lastReq *klarna.Request
}

func (f *fakeOrderGateway) CreateOrder(_ context.Context, token string, req *klarna.Request) (*OrderResult, error) {
	f.token = token
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// syncBus delivers events to subscribers inline, keeping tests deterministic.
type syncBus struct {
	subs      map[string][]domoutbox.Handler
	published []domoutbox.Event
}

func newSyncBus() *syncBus { return &syncBus{subs: map[string][]domoutbox.Handler{}} }

func (b *syncBus) Subscribe(eventName string, h domoutbox.Handler) {
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *syncBus) Publish(ctx context.Context, e domoutbox.Event) error {
	b.published = append(b.published, e)
	for _, h := range b.subs[e.EventName()] {
		if err := h(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func placedOrder() *checkout.Aggregate {
	return &checkout.Aggregate{
		Kind:          checkout.KindOrder,
		OrderNo:       "00001234",
		CurrencyCode:  "GBP",
		CustomerEmail: "shopper@example.com",
		ProductLines: []checkout.ProductLine{
			{
				Kind:        checkout.LineKindProduct,
				ProductID:   "SKU-1",
				ProductName: "Jacket",
				Quantity:    1,
				GrossPrice:  checkout.PriceFromString("60.00"),
			},
		},
		TotalGrossPrice: checkout.PriceFromString("60.00"),
	}
}

func gbLocale() builder.Locale { return builder.Locale{Country: "GB", KlarnaLocale: "en-GB"} }

func authService(t *testing.T, basketID, token string) *session.AuthService {
	t.Helper()
	store := memory.NewSessionStore()
	svc := session.NewAuthService(store, nil)
	if token != "" {
		require.NoError(t, svc.SaveAuth(context.Background(), basketID, token))
	}
	return svc
}

func TestSubmitOrder_RecordsPaymentAndPublishes(t *testing.T) {
	repo := memory.NewPaymentRepository()
	bus := newSyncBus()
	gw := &fakeOrderGateway{result: &OrderResult{
		KlarnaOrderID: "kco-1",
		RedirectURL:   "https://example.com/redirect",
		FraudStatus:   dompay.FraudAccepted,
	}}

	uc := NewSubmitOrderUseCase(builder.Config{}, nil, nil,
		authService(t, "basket-1", "auth-token"), gw, repo, bus, nil)

	result, err := uc.Execute(context.Background(), SubmitOrderInput{
		BasketID:  "basket-1",
		Aggregate: placedOrder(),
		Locale:    gbLocale(),
	})
	require.NoError(t, err)

	assert.Equal(t, "kco-1", result.KlarnaOrderID)
	assert.Equal(t, dompay.FraudAccepted, result.FraudStatus)
	assert.Equal(t, "auth-token", gw.token)

	require.NotNil(t, gw.lastReq)
	assert.Equal(t, "00001234", gw.lastReq.MerchantReference1)
	assert.Equal(t, int64(6000), gw.lastReq.OrderAmount)

	p, err := repo.GetByKlarnaOrderID(context.Background(), "kco-1")
	require.NoError(t, err)
	assert.Equal(t, "00001234", p.OrderNo)
	assert.Equal(t, dompay.StatusAccepted, p.Status)
	assert.Equal(t, int64(6000), p.Amount)
	assert.Equal(t, "GBP", p.Currency)

	require.Len(t, bus.published, 1)
	assert.Equal(t, "payment.submitted", bus.published[0].EventName())
}

func TestSubmitOrder_ExplicitTokenOverridesStored(t *testing.T) {
	gw := &fakeOrderGateway{result: &OrderResult{KlarnaOrderID: "kco-1", FraudStatus: dompay.FraudPending}}
	uc := NewSubmitOrderUseCase(builder.Config{}, nil, nil,
		authService(t, "basket-1", "stored-token"), gw, memory.NewPaymentRepository(), newSyncBus(), nil)

	_, err := uc.Execute(context.Background(), SubmitOrderInput{
		BasketID:           "basket-1",
		AuthorizationToken: "explicit-token",
		Aggregate:          placedOrder(),
		Locale:             gbLocale(),
	})
	require.NoError(t, err)
	assert.Equal(t, "explicit-token", gw.token)
}

func TestSubmitOrder_MissingToken(t *testing.T) {
	uc := NewSubmitOrderUseCase(builder.Config{}, nil, nil,
		authService(t, "basket-1", ""), &fakeOrderGateway{}, memory.NewPaymentRepository(), newSyncBus(), nil)

	_, err := uc.Execute(context.Background(), SubmitOrderInput{
		BasketID:  "basket-1",
		Aggregate: placedOrder(),
		Locale:    gbLocale(),
	})
	assert.ErrorIs(t, err, session.ErrAuthNotFound)
}

func TestSubmitOrder_GatewayFailure(t *testing.T) {
	gw := &fakeOrderGateway{err: errors.New("klarna unavailable")}
	uc := NewSubmitOrderUseCase(builder.Config{}, nil, nil, nil, gw,
		memory.NewPaymentRepository(), newSyncBus(), nil)

	_, err := uc.Execute(context.Background(), SubmitOrderInput{
		AuthorizationToken: "auth-token",
		Aggregate:          placedOrder(),
		Locale:             gbLocale(),
	})
	assert.ErrorContains(t, err, "klarna unavailable")
}

func TestNotificationService(t *testing.T) {
	t.Run("publishes fraud decision", func(t *testing.T) {
		bus := newSyncBus()
		svc := NewNotificationService(bus, nil)

		require.NoError(t, svc.Notify(context.Background(), "kco-1", dompay.EventFraudRiskAccepted))
		require.Len(t, bus.published, 1)

		evt, ok := bus.published[0].(dompay.FraudDecisionEvent)
		require.True(t, ok)
		assert.Equal(t, "kco-1", evt.KlarnaOrderID)
		assert.Equal(t, dompay.EventFraudRiskAccepted, evt.Decision)
	})

	t.Run("rejects unknown event types", func(t *testing.T) {
		svc := NewNotificationService(newSyncBus(), nil)
		err := svc.Notify(context.Background(), "kco-1", "ORDER_CAPTURED")
		assert.ErrorIs(t, err, ErrUnknownFraudEvent)
	})

	t.Run("requires order id", func(t *testing.T) {
		svc := NewNotificationService(newSyncBus(), nil)
		assert.Error(t, svc.Notify(context.Background(), "", dompay.EventFraudRiskAccepted))
	})
}

func TestWorker_AppliesFraudDecisions(t *testing.T) {
	newPayment := func(t *testing.T, repo *memory.PaymentRepository) {
		t.Helper()
		p, err := dompay.New("00001234", "kco-1", "GBP", 6000, dompay.FraudPending)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(context.Background(), p))
	}

	tests := []struct {
		name       string
		decision   string
		wantStatus dompay.Status
	}{
		{name: "accepted", decision: dompay.EventFraudRiskAccepted, wantStatus: dompay.StatusAccepted},
		{name: "rejected", decision: dompay.EventFraudRiskRejected, wantStatus: dompay.StatusRejected},
		{name: "stopped maps to rejected", decision: dompay.EventFraudRiskStopped, wantStatus: dompay.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewPaymentRepository()
			newPayment(t, repo)

			bus := newSyncBus()
			NewWorker(bus, repo, nil).Start()

			require.NoError(t, bus.Publish(context.Background(),
				dompay.NewFraudDecisionEvent("kco-1", tt.decision)))

			p, err := repo.GetByKlarnaOrderID(context.Background(), "kco-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, p.Status)
		})
	}

	t.Run("unknown payment", func(t *testing.T) {
		bus := newSyncBus()
		NewWorker(bus, memory.NewPaymentRepository(), nil).Start()

		err := bus.Publish(context.Background(),
			dompay.NewFraudDecisionEvent("missing", dompay.EventFraudRiskAccepted))
		assert.ErrorIs(t, err, dompay.ErrNotFound)
	})
}
