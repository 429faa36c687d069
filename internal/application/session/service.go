package session

import (
	"context"
	"errors"

	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

// AuthService stores and retrieves the authorization token the widget hands
// back after a successful client-side authorize call. The token is consumed
// by the order submission use case.
type AuthService struct {
	store Store
	log   observability.Logger
}

func NewAuthService(store Store, log observability.Logger) *AuthService {
	if log == nil {
		log = observability.NopLogger()
	}
	return &AuthService{
		store: store,
		log:   log.With(observability.F("component", "session_auth")),
	}
}

func (s *AuthService) SaveAuth(ctx context.Context, basketID, token string) error {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("basket_id", basketID))

	if basketID == "" {
		return errors.New("session: basket id is required")
	}
	if token == "" {
		return errors.New("session: authorization token is required")
	}

	if err := s.store.SaveAuth(ctx, basketID, token); err != nil {
		logger.Error("auth_token_save_failed", observability.F("error", err.Error()))
		return err
	}
	logger.Info("auth_token_saved")
	return nil
}

func (s *AuthService) LoadAuth(ctx context.Context, basketID string) (string, error) {
	if basketID == "" {
		return "", errors.New("session: basket id is required")
	}
	return s.store.LoadAuth(ctx, basketID)
}
