package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/digimanager/digimanager/internal/invoice/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type noopRecomputer struct{}

func (noopRecomputer) Recompute(context.Context) {}

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clientdomain.Client{}, &domain.Invoice{}))

	client := clientdomain.Client{
		ID:          "c1",
		CompanyName: "Al Noor Trading",
		Slug:        "al-noor-trading",
		ContactName: "Ahmed Hassan",
		Phone:       "+966 55 123 4567",
		Email:       "ahmed@alnoor.example",
		Currency:    currency.SAR,
		JoinedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&client).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clk,
		Repo:       repository.Provide(),
		ClientRepo: clientrepo.Provide(),
		Reminder:   noopRecomputer{},
	})
	return svc, db, clk
}

func createRequest() domain.CreateInvoiceRequest {
	return domain.CreateInvoiceRequest{
		ClientID: "c1",
		Currency: currency.SAR,
		Items: []domain.LineItem{
			{Description: "Campaign management", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
			{Description: "Content production", Quantity: 1, UnitPrice: decimal.NewFromInt(800)},
		},
	}
}

func TestCreateInvoiceTotalsItems(t *testing.T) {
	svc, _, _ := newTestService(t)

	invoice, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(3800)))
	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Items[0].Total.Equal(decimal.NewFromInt(3000)))
	assert.False(t, invoice.IsPaid)
	assert.NotEmpty(t, invoice.InvoiceNumber)
	assert.Equal(t, invoice.IssueDate.AddDate(0, 0, 14), invoice.DueDate)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := createRequest()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidItems)

	req = createRequest()
	req.ClientID = "ghost"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	req = createRequest()
	req.Currency = "USD"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestTogglePaidRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	invoice, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	paid, err := svc.TogglePaid(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidDate)

	unpaid, err := svc.TogglePaid(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.False(t, unpaid.IsPaid)
	assert.Nil(t, unpaid.PaidDate)
}

func TestTogglePaidUnknownInvoice(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.TogglePaid(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurgePaidKeepsUnpaidAndRecent(t *testing.T) {
	svc, db, clk := newTestService(t)

	oldPaid, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	_, err = svc.TogglePaid(context.Background(), oldPaid.ID)
	require.NoError(t, err)

	oldUnpaid, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	clk.Advance(120 * 24 * time.Hour)

	freshPaid, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	_, err = svc.TogglePaid(context.Background(), freshPaid.ID)
	require.NoError(t, err)

	removed, err := svc.PurgePaid(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var remaining []domain.Invoice
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	ids := []string{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, oldUnpaid.ID)
	assert.Contains(t, ids, freshPaid.ID)
}

func TestPurgePaidKeyedOnCreationDate(t *testing.T) {
	svc, db, clk := newTestService(t)

	// A backdated invoice: issued long ago but entered just now.
	clk.Advance(120 * 24 * time.Hour)
	req := createRequest()
	req.IssueDate = time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)

	invoice, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.TogglePaid(context.Background(), invoice.ID)
	require.NoError(t, err)

	removed, err := svc.PurgePaid(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	var count int64
	require.NoError(t, db.Model(&domain.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
