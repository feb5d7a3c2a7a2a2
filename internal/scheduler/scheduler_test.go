package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/config"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingRecomputer struct {
	calls int
}

func (r *recordingRecomputer) Recompute(context.Context) { r.calls++ }

type stubInvoices struct {
	purges int
}

func (s *stubInvoices) Create(context.Context, invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, nil
}

func (s *stubInvoices) Delete(context.Context, string) error { return nil }

func (s *stubInvoices) List(context.Context, invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	return invoicedomain.ListInvoiceResponse{}, nil
}

func (s *stubInvoices) GetByID(context.Context, string) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, nil
}

func (s *stubInvoices) TogglePaid(context.Context, string) (invoicedomain.Invoice, error) {
	return invoicedomain.Invoice{}, nil
}

func (s *stubInvoices) PurgePaid(context.Context, time.Duration) (int64, error) {
	s.purges++
	return 0, nil
}

func TestTickFiresOncePerDay(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 23, 50, 0, 0, time.UTC))
	reminder := &recordingRecomputer{}
	invoices := &stubInvoices{}

	s := New(Params{
		Log:      zap.NewNop(),
		Clock:    clk,
		Config:   config.Config{InvoiceRetentionDays: 90},
		Reminder: reminder,
		Invoices: invoices,
	})

	ctx := context.Background()

	s.Tick(ctx)
	assert.Equal(t, 1, reminder.calls)
	assert.Equal(t, 1, invoices.purges)

	// Same day, nothing happens.
	clk.Advance(5 * time.Minute)
	s.Tick(ctx)
	assert.Equal(t, 1, reminder.calls)

	// Midnight rollover fires the daily pass.
	clk.Advance(10 * time.Minute)
	s.Tick(ctx)
	assert.Equal(t, 2, reminder.calls)
	assert.Equal(t, 2, invoices.purges)
}
