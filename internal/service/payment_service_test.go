package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandloop/internal/domain"
	"brandloop/internal/models"
	"brandloop/pkg/gateway"

	"github.com/stretchr/testify/assert"
)

func TestFundingAmount(t *testing.T) {
	// 100000 x 2 posts + 10% platform fee
	got := FundingAmount(dec("100000"), 2)
	assert.True(t, got.Equal(dec("220000")), "got %s", got)

	got = FundingAmount(dec("150000.50"), 1)
	assert.True(t, got.Equal(dec("165000.55")), "got %s", got)
}

func TestMapGatewayStatus(t *testing.T) {
	cases := map[string]string{
		gateway.StatusSettlement: domain.PaymentSettled,
		gateway.StatusCapture:    domain.PaymentSettled,
		gateway.StatusExpire:     domain.PaymentExpired,
		gateway.StatusCancel:     domain.PaymentCancelled,
		gateway.StatusDeny:       domain.PaymentFailed,
		gateway.StatusPending:    domain.PaymentPending,
		"something-new":          domain.PaymentPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, mapGatewayStatus(in), "gateway status %q", in)
	}
}

func TestReconcileSurfacesGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := &PaymentService{gw: gateway.NewClient(srv.URL, "SB-server-key", false)}
	_, err := s.Reconcile(context.Background(), "fund-abc")
	assert.ErrorIs(t, err, domain.ErrUpstreamGateway)
}

func TestFinishRedirectURL(t *testing.T) {
	s := &PaymentService{frontendURL: "https://app.brandloop.id"}
	cases := []struct {
		status string
		want   string
	}{
		{domain.PaymentSettled, "https://app.brandloop.id/payments/finish?order_id=fund-abc&status=success"},
		{domain.PaymentExpired, "https://app.brandloop.id/payments/finish?order_id=fund-abc&status=failure"},
		{domain.PaymentFailed, "https://app.brandloop.id/payments/finish?order_id=fund-abc&status=failure"},
		{domain.PaymentPending, "https://app.brandloop.id/payments/finish?order_id=fund-abc&status=pending"},
	}
	for _, tc := range cases {
		p := &models.Payment{OrderID: "fund-abc", Status: tc.status}
		assert.Equal(t, tc.want, s.FinishRedirectURL(p))
	}
}
