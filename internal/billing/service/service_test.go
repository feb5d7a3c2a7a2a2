package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/digimanager/digimanager/internal/billing/domain"
	billingrepo "github.com/digimanager/digimanager/internal/billing/repository"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	invoicerepo "github.com/digimanager/digimanager/internal/invoice/repository"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	siterepo "github.com/digimanager/digimanager/internal/siteproject/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type noopRecomputer struct{}

func (noopRecomputer) Recompute(context.Context) {}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&sitedomain.SiteProject{},
		&invoicedomain.Invoice{},
		&domain.MonthlyPayment{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, clk clock.Clock) *Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       clk,
		Numberer:    NewNumberer(node),
		Repo:        billingrepo.Provide(),
		ClientRepo:  clientrepo.Provide(),
		SiteRepo:    siterepo.Provide(),
		InvoiceRepo: invoicerepo.Provide(),
		Reminder:    noopRecomputer{},
	})
	return svc.(*Service)
}

func seedClient(t *testing.T, db *gorm.DB, fee int64) clientdomain.Client {
	t.Helper()
	client := clientdomain.Client{
		ID:          "c1",
		CompanyName: "Al Noor Trading",
		Slug:        "al-noor-trading",
		ContactName: "Ahmed Hassan",
		Phone:       "+966 55 123 4567",
		Email:       "ahmed@alnoor.example",
		Currency:    currency.SAR,
		IsMonthly:   true,
		MonthlyFee:  decimal.NewFromInt(fee),
		PaymentDay:  1,
		JoinedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func seedSite(t *testing.T, db *gorm.DB) sitedomain.SiteProject {
	t.Helper()
	site := sitedomain.SiteProject{
		ID:             "s1",
		ClientID:       "c2",
		Domain:         "cairosweets.example",
		ServiceName:    "Hosting and maintenance",
		Currency:       currency.EGP,
		Status:         sitedomain.StatusActive,
		MonthlyFee:     decimal.NewFromInt(1000),
		ThirdPartyCost: decimal.NewFromInt(200),
		PaymentDay:     10,
	}
	require.NoError(t, db.Create(&site).Error)
	return site
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestMarkMonthPaidClientRetainer(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "2025-11", entry.Month)
	assert.True(t, entry.IsPaid)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(5000)))
	assert.NotEmpty(t, entry.InvoiceID)

	assert.True(t, strings.HasPrefix(entry.InvoiceID, "INV-AD-"))

	var invoice invoicedomain.Invoice
	require.NoError(t, db.Where("id = ?", entry.InvoiceID).First(&invoice).Error)
	assert.True(t, strings.HasPrefix(invoice.ID, "INV-AD-"))
	assert.Equal(t, invoice.ID, invoice.InvoiceNumber)
	assert.True(t, invoice.IsPaid)
	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "c1", invoice.ClientID)
	require.Len(t, invoice.Items, 1)

	history, err := svc.History(context.Background(), domain.KindClient, "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestMarkMonthPaidSiteProject(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedSite(t, db)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindSite, "s1", "2025-10")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, currency.EGP, entry.Currency)

	var invoice invoicedomain.Invoice
	require.NoError(t, db.Where("id = ?", entry.InvoiceID).First(&invoice).Error)
	assert.True(t, strings.HasPrefix(invoice.ID, "INV-SITE-"))
	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "c2", invoice.ClientID)

	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Items[0].Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, invoice.Items[1].Total.Equal(decimal.NewFromInt(200)))
}

func TestMarkMonthPaidIdempotent(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)

	first, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)
	second, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)

	assert.Equal(t, first.InvoiceID, second.InvoiceID)
	assert.EqualValues(t, 1, countRows(t, db, &domain.MonthlyPayment{}))
	assert.EqualValues(t, 1, countRows(t, db, &invoicedomain.Invoice{}))
}

func TestRevertMonthPaymentRoundTrip(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)

	_, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)

	require.NoError(t, svc.RevertMonthPayment(context.Background(), domain.KindClient, "c1", "2025-11"))

	assert.EqualValues(t, 0, countRows(t, db, &domain.MonthlyPayment{}))
	assert.EqualValues(t, 0, countRows(t, db, &invoicedomain.Invoice{}))

	history, err := svc.History(context.Background(), domain.KindClient, "c1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRevertMonthPaymentNoEntryIsNoop(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)

	require.NoError(t, svc.RevertMonthPayment(context.Background(), domain.KindClient, "c1", "2025-11"))
	assert.EqualValues(t, 0, countRows(t, db, &domain.MonthlyPayment{}))
}

func TestRevertMonthPaymentDanglingInvoice(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)

	// Someone deletes the invoice behind the ledger's back.
	require.NoError(t, db.Where("id = ?", entry.InvoiceID).Delete(&invoicedomain.Invoice{}).Error)

	require.NoError(t, svc.RevertMonthPayment(context.Background(), domain.KindClient, "c1", "2025-11"))
	assert.EqualValues(t, 0, countRows(t, db, &domain.MonthlyPayment{}))
}

func TestMarkMonthPaidUnknownSubscriberIsNoop(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "ghost", "2025-11")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.EqualValues(t, 0, countRows(t, db, &invoicedomain.Invoice{}))
}

func TestAmountIsSnapshotNotLive(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)

	require.NoError(t, db.Model(&clientdomain.Client{}).
		Where("id = ?", "c1").
		Update("monthly_fee", decimal.NewFromInt(9999)).Error)

	history, err := svc.History(context.Background(), domain.KindClient, "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, entry.InvoiceID, history[0].InvoiceID)
}

func TestMarkMonthPaidZeroFeeStillMints(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 0)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Amount.IsZero())
	assert.EqualValues(t, 1, countRows(t, db, &invoicedomain.Invoice{}))
}

func TestSiteInvoiceAlwaysHasTwoLines(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)

	site := sitedomain.SiteProject{
		ID:          "s2",
		ClientID:    "c3",
		Domain:      "desertrose.example",
		ServiceName: "Hosting",
		Currency:    currency.SAR,
		Status:      sitedomain.StatusActive,
		MonthlyFee:  decimal.NewFromInt(800),
		PaymentDay:  5,
	}
	require.NoError(t, db.Create(&site).Error)

	entry, err := svc.MarkMonthPaid(context.Background(), domain.KindSite, "s2", "2025-10")
	require.NoError(t, err)
	require.NotNil(t, entry)

	var invoice invoicedomain.Invoice
	require.NoError(t, db.Where("id = ?", entry.InvoiceID).First(&invoice).Error)
	require.Len(t, invoice.Items, 2)
	assert.True(t, invoice.Items[1].Total.IsZero())
	assert.True(t, invoice.Amount.Equal(decimal.NewFromInt(800)))
}

func TestHistoryIndependentAcrossKinds(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedClient(t, db, 5000)
	seedSite(t, db)

	_, err := svc.MarkMonthPaid(context.Background(), domain.KindClient, "c1", "2025-11")
	require.NoError(t, err)
	_, err = svc.MarkMonthPaid(context.Background(), domain.KindSite, "s1", "2025-11")
	require.NoError(t, err)

	clientHistory, err := svc.History(context.Background(), domain.KindClient, "c1")
	require.NoError(t, err)
	siteHistory, err := svc.History(context.Background(), domain.KindSite, "s1")
	require.NoError(t, err)

	assert.Len(t, clientHistory, 1)
	assert.Len(t, siteHistory, 1)
	assert.NotEqual(t, clientHistory[0].InvoiceID, siteHistory[0].InvoiceID)
}
