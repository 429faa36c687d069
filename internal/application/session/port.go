package session

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/klarna-payments/internal/domain/klarna"
)

var (
	ErrNotFound     = errors.New("session: not found")
	ErrAuthNotFound = errors.New("session: authorization token not found")
)

// Record is one stored checkout session: the Klarna session id and the
// client token the storefront widget loads with, keyed by basket.
type Record struct {
	BasketID    string
	SessionID   string
	ClientToken string
	Locale      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store persists session records and the authorization tokens captured by
// the widget between authorize and order placement.
type Store interface {
	Load(ctx context.Context, basketID string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, basketID string) error

	SaveAuth(ctx context.Context, basketID, token string) error
	LoadAuth(ctx context.Context, basketID string) (string, error)
}

// CreateResult is the gateway's answer to a session creation.
type CreateResult struct {
	SessionID   string
	ClientToken string
}

// Gateway is the outbound port to Klarna's session endpoints. It belongs to
// the application layer to express use-case dependencies.
type Gateway interface {
	CreateSession(ctx context.Context, req *klarna.Request) (*CreateResult, error)
	UpdateSession(ctx context.Context, sessionID string, req *klarna.Request) error
}
