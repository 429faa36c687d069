package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		orderNo    string
		klarnaID   string
		amount     int64
		fraud      FraudStatus
		wantErr    bool
		wantStatus Status
		wantFraud  FraudStatus
	}{
		{
			name: "pending verdict", orderNo: "O-1", klarnaID: "K-1", amount: 4000,
			fraud: FraudPending, wantStatus: StatusSubmitted, wantFraud: FraudPending,
		},
		{
			name: "accepted verdict", orderNo: "O-1", klarnaID: "K-1", amount: 4000,
			fraud: FraudAccepted, wantStatus: StatusAccepted, wantFraud: FraudAccepted,
		},
		{
			name: "rejected verdict", orderNo: "O-1", klarnaID: "K-1", amount: 4000,
			fraud: FraudRejected, wantStatus: StatusRejected, wantFraud: FraudRejected,
		},
		{
			name: "unknown verdict treated as pending", orderNo: "O-1", klarnaID: "K-1",
			amount: 4000, fraud: FraudStatus("WEIRD"), wantStatus: StatusSubmitted, wantFraud: FraudPending,
		},
		{name: "missing order no", klarnaID: "K-1", amount: 4000, wantErr: true},
		{name: "missing klarna id", orderNo: "O-1", amount: 4000, wantErr: true},
		{name: "negative amount", orderNo: "O-1", klarnaID: "K-1", amount: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.orderNo, tt.klarnaID, "GBP", tt.amount, tt.fraud)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantFraud, p.FraudStatus)
		})
	}
}

func TestFraudTransitions(t *testing.T) {
	submitted := func(t *testing.T) *Payment {
		p, err := New("O-1", "K-1", "GBP", 4000, FraudPending)
		require.NoError(t, err)
		return p
	}

	t.Run("accept pending", func(t *testing.T) {
		p := submitted(t)
		require.NoError(t, p.AcceptFraudRisk())
		assert.Equal(t, StatusAccepted, p.Status)
		assert.Equal(t, FraudAccepted, p.FraudStatus)
		assert.False(t, p.Pending())
	})

	t.Run("reject pending", func(t *testing.T) {
		p := submitted(t)
		require.NoError(t, p.RejectFraudRisk())
		assert.Equal(t, StatusRejected, p.Status)
	})

	t.Run("accept is idempotent", func(t *testing.T) {
		p := submitted(t)
		require.NoError(t, p.AcceptFraudRisk())
		assert.NoError(t, p.AcceptFraudRisk())
	})

	t.Run("reject after accept is invalid", func(t *testing.T) {
		p := submitted(t)
		require.NoError(t, p.AcceptFraudRisk())
		assert.ErrorIs(t, p.RejectFraudRisk(), ErrInvalidTransition)
	})

	t.Run("accept after reject is invalid", func(t *testing.T) {
		p := submitted(t)
		require.NoError(t, p.RejectFraudRisk())
		assert.ErrorIs(t, p.AcceptFraudRisk(), ErrInvalidTransition)
	})
}

func TestClone(t *testing.T) {
	p, err := New("O-1", "K-1", "GBP", 4000, FraudPending)
	require.NoError(t, err)

	clone := p.Clone()
	require.NoError(t, clone.AcceptFraudRisk())

	assert.Equal(t, StatusSubmitted, p.Status)
	assert.Equal(t, StatusAccepted, clone.Status)
}
