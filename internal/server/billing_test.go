package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBilling struct {
	markedMonth string
	entry       *billingdomain.MonthlyPayment
}

func (s *stubBilling) MarkMonthPaid(_ context.Context, _ billingdomain.Kind, _, month string) (*billingdomain.MonthlyPayment, error) {
	s.markedMonth = month
	return s.entry, nil
}

func (s *stubBilling) RevertMonthPayment(context.Context, billingdomain.Kind, string, string) error {
	return nil
}

func (s *stubBilling) History(context.Context, billingdomain.Kind, string) ([]billingdomain.MonthlyPayment, error) {
	return nil, nil
}

func newBillingRouter(billing billingdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handlers{log: zap.NewNop(), billing: billing}
	engine := gin.New()
	engine.POST("/v1/clients/:id/payments/:month", h.MarkClientMonthPaid)
	engine.DELETE("/v1/clients/:id/payments/:month", h.RevertClientMonthPayment)
	return engine
}

func TestMarkMonthPaidRejectsMalformedMonth(t *testing.T) {
	billing := &stubBilling{}
	engine := newBillingRouter(billing)

	for _, month := range []string{"2025-13", "202511", "2025-1", "nov-2025"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/clients/c1/payments/"+month, nil)
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, month)
		assert.Empty(t, billing.markedMonth)
	}
}

func TestMarkMonthPaidAcceptsValidMonth(t *testing.T) {
	billing := &stubBilling{entry: &billingdomain.MonthlyPayment{Month: "2025-11", IsPaid: true}}
	engine := newBillingRouter(billing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/clients/c1/payments/2025-11", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-11", billing.markedMonth)
}

func TestMarkMonthPaidUnknownSubscriber(t *testing.T) {
	billing := &stubBilling{entry: nil}
	engine := newBillingRouter(billing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/clients/ghost/payments/2025-11", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevertMonthPayment(t *testing.T) {
	billing := &stubBilling{}
	engine := newBillingRouter(billing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/clients/c1/payments/2025-11", nil)
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
