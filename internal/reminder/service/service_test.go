package service

import (
	"context"
	"testing"
	"time"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	billingrepo "github.com/digimanager/digimanager/internal/billing/repository"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	invoicerepo "github.com/digimanager/digimanager/internal/invoice/repository"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	orderrepo "github.com/digimanager/digimanager/internal/order/repository"
	"github.com/digimanager/digimanager/internal/reminder/domain"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&orderdomain.Order{},
		&invoicedomain.Invoice{},
		&billingdomain.MonthlyPayment{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, clk clock.Clock) *Service {
	t.Helper()
	return New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       clk,
		InvoiceRepo: invoicerepo.Provide(),
		OrderRepo:   orderrepo.Provide(),
		ClientRepo:  clientrepo.Provide(),
		BillingRepo: billingrepo.Provide(),
	})
}

func seedInvoice(t *testing.T, db *gorm.DB, id string, due time.Time, paid bool) {
	t.Helper()
	invoice := invoicedomain.Invoice{
		ID:            id,
		InvoiceNumber: "INV-" + id,
		ClientID:      "c1",
		Amount:        decimal.NewFromInt(1000),
		Currency:      currency.SAR,
		IsPaid:        paid,
		IssueDate:     due.AddDate(0, 0, -14),
		DueDate:       due,
	}
	require.NoError(t, db.Create(&invoice).Error)
}

func seedMonthlyClient(t *testing.T, db *gorm.DB, id string, paymentDay int) {
	t.Helper()
	client := clientdomain.Client{
		ID:          id,
		CompanyName: "Al Noor Trading",
		Slug:        "al-noor-trading",
		ContactName: "Ahmed Hassan",
		Phone:       "+966 55 123 4567",
		Email:       "ahmed@alnoor.example",
		Currency:    currency.SAR,
		IsMonthly:   true,
		MonthlyFee:  decimal.NewFromInt(5000),
		PaymentDay:  paymentDay,
		JoinedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&client).Error)
}

func seedOrder(t *testing.T, db *gorm.DB, id string, status orderdomain.Status) {
	t.Helper()
	order := orderdomain.Order{
		ID:          id,
		ClientID:    "c1",
		ServiceType: orderdomain.ServiceAdsSocial,
		Amount:      decimal.NewFromInt(500),
		Currency:    currency.SAR,
		Status:      status,
		StartDate:   time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)
}

func findByID(list []domain.Notification, id string) *domain.Notification {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func TestOverdueInvoiceNotification(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedInvoice(t, db, "inv-1", time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), false)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())

	n := findByID(list, "overdue-inv-inv-1")
	require.NotNil(t, n)
	assert.Equal(t, domain.TypeError, n.Type)
	assert.Contains(t, n.Message, "overdue by 3 days")
	assert.False(t, n.Read)
}

func TestDueSoonInvoiceNotification(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedInvoice(t, db, "inv-2", time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), false)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())

	n := findByID(list, "due-inv-inv-2")
	require.NotNil(t, n)
	assert.Equal(t, domain.TypeWarning, n.Type)
	assert.Contains(t, n.Message, "in 2 days")
}

func TestDueTodayWording(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedInvoice(t, db, "inv-3", time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC), false)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())

	n := findByID(list, "due-inv-inv-3")
	require.NotNil(t, n)
	assert.Contains(t, n.Message, "due today")
}

func TestPaidInvoiceProducesNothing(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedInvoice(t, db, "inv-4", time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), true)

	svc.Recompute(context.Background())
	assert.Empty(t, svc.List(context.Background()))
}

func TestActiveOrdersSummary(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedOrder(t, db, "o1", orderdomain.StatusActive)
	seedOrder(t, db, "o2", orderdomain.StatusActive)
	seedOrder(t, db, "o3", orderdomain.StatusPending)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())

	n := findByID(list, "notif-active-orders-2025-11-08")
	require.NotNil(t, n)
	assert.Equal(t, domain.TypeInfo, n.Type)
	assert.Contains(t, n.Message, "2 active campaigns")
}

func TestSubscriptionDueNotification(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedMonthlyClient(t, db, "c1", 10)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())

	n := findByID(list, "sub-due-c1-2025-11")
	require.NotNil(t, n)
	assert.Equal(t, domain.TypeWarning, n.Type)
	assert.Contains(t, n.Message, "in 2 days")
	assert.Equal(t, "2025-11-08", n.Date)
}

func TestSubscriptionDueSkipsPaidMonth(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedMonthlyClient(t, db, "c1", 10)

	paidDate := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	entry := billingdomain.MonthlyPayment{
		Kind:         billingdomain.KindClient,
		SubscriberID: "c1",
		Month:        "2025-11",
		IsPaid:       true,
		PaidDate:     &paidDate,
		Amount:       decimal.NewFromInt(5000),
		Currency:     currency.SAR,
		InvoiceID:    "inv-x",
	}
	require.NoError(t, db.Create(&entry).Error)

	svc.Recompute(context.Background())
	assert.Nil(t, findByID(svc.List(context.Background()), "sub-due-c1-2025-11"))
}

func TestSubscriptionDueRollsToNextMonth(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 29, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedMonthlyClient(t, db, "c1", 1)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())

	n := findByID(list, "sub-due-c1-2025-12")
	require.NotNil(t, n)
	assert.Contains(t, n.Message, "in 2 days")
	assert.Equal(t, "2025-11-29", n.Date)
}

func TestReadStateSurvivesRecomputation(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedMonthlyClient(t, db, "c1", 10)

	svc.Recompute(context.Background())
	svc.MarkRead(context.Background(), "sub-due-c1-2025-11")

	// Unrelated change, then regenerate.
	seedOrder(t, db, "o1", orderdomain.StatusActive)
	svc.Recompute(context.Background())

	n := findByID(svc.List(context.Background()), "sub-due-c1-2025-11")
	require.NotNil(t, n)
	assert.True(t, n.Read)
}

func TestManualNotificationsPreserved(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)

	svc.mu.Lock()
	svc.notifications = append(svc.notifications, domain.Notification{
		ID:      "manual-1",
		Title:   "Handwritten note",
		Message: "Call the bank",
		Date:    "2025-11-01",
		Type:    domain.TypeInfo,
	})
	svc.mu.Unlock()

	svc.Recompute(context.Background())

	n := findByID(svc.List(context.Background()), "manual-1")
	require.NotNil(t, n)
	assert.Equal(t, "Call the bank", n.Message)
}

func TestListSortedByDateDescending(t *testing.T) {
	db := newTestDB(t)
	clk := clock.NewFakeClock(time.Date(2025, 11, 8, 12, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	seedMonthlyClient(t, db, "c1", 10)
	seedOrder(t, db, "o1", orderdomain.StatusActive)

	svc.Recompute(context.Background())
	list := svc.List(context.Background())
	require.GreaterOrEqual(t, len(list), 2)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Date, list[i].Date)
	}
}
