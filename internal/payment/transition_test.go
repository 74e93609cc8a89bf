package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mekbib/stayfinder/internal/gateway"
	"github.com/mekbib/stayfinder/internal/model"
)

func TestNext(t *testing.T) {
	cases := []struct {
		name       string
		current    model.PaymentStatus
		outcome    gateway.VerifyOutcome
		wantStatus model.PaymentStatus
		wantNotify bool
	}{
		{"pending + success completes and notifies", model.PaymentPending, gateway.VerifySuccess, model.PaymentCompleted, true},
		{"pending + failed fails silently", model.PaymentPending, gateway.VerifyFailed, model.PaymentFailed, false},
		{"pending + pending stays pending", model.PaymentPending, gateway.VerifyPending, model.PaymentPending, false},
		{"completed + success suppresses duplicate notification", model.PaymentCompleted, gateway.VerifySuccess, model.PaymentCompleted, false},
		{"completed + failed never regresses", model.PaymentCompleted, gateway.VerifyFailed, model.PaymentCompleted, false},
		{"completed + pending never regresses", model.PaymentCompleted, gateway.VerifyPending, model.PaymentCompleted, false},
		{"failed + success stays failed", model.PaymentFailed, gateway.VerifySuccess, model.PaymentFailed, false},
		{"failed + pending stays failed", model.PaymentFailed, gateway.VerifyPending, model.PaymentFailed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, notify := Next(tc.current, tc.outcome)
			assert.Equal(t, tc.wantStatus, got)
			assert.Equal(t, tc.wantNotify, notify)
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.False(t, model.PaymentPending.Terminal())
	assert.True(t, model.PaymentCompleted.Terminal())
	assert.True(t, model.PaymentFailed.Terminal())

	assert.True(t, model.PaymentPending.Valid())
	assert.False(t, model.PaymentStatus("REFUNDED").Valid())
}
