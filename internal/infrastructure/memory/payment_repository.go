package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/commercekit/klarna-payments/internal/domain/payment"
)

// PaymentRepository is an in-memory payment store indexed by merchant order
// number and by Klarna order id.
type PaymentRepository struct {
	mu       sync.RWMutex
	byOrder  map[string]*domain.Payment
	byKlarna map[string]string // klarna order id -> order no
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		byOrder:  make(map[string]*domain.Payment),
		byKlarna: make(map[string]string),
	}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	if p == nil || p.OrderNo == "" {
		return fmt.Errorf("payment repository: order number is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[p.OrderNo]; exists {
		return domain.ErrConflict
	}

	r.byOrder[p.OrderNo] = p.Clone()
	if p.KlarnaOrderID != "" {
		r.byKlarna[p.KlarnaOrderID] = p.OrderNo
	}
	return nil
}

func (r *PaymentRepository) GetByOrderNo(ctx context.Context, orderNo string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byOrder[orderNo]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PaymentRepository) GetByKlarnaOrderID(ctx context.Context, klarnaOrderID string) (*domain.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	orderNo, ok := r.byKlarna[klarnaOrderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p, found := r.byOrder[orderNo]
	if !found {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	_ = ctx
	if p == nil || p.OrderNo == "" {
		return fmt.Errorf("payment repository: order number is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[p.OrderNo]; !exists {
		return domain.ErrNotFound
	}

	r.byOrder[p.OrderNo] = p.Clone()
	if p.KlarnaOrderID != "" {
		r.byKlarna[p.KlarnaOrderID] = p.OrderNo
	}
	return nil
}
