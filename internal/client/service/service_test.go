package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/digimanager/digimanager/internal/client/domain"
	"github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type noopRecomputer struct{}

func (noopRecomputer) Recompute(context.Context) {}

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2025, 11, 8, 10, 0, 0, 0, time.UTC)),
		Repo:     repository.Provide(),
		Reminder: noopRecomputer{},
	})
	return svc, db
}

func validCreate() domain.CreateClientRequest {
	return domain.CreateClientRequest{
		CompanyName: "Al Noor Trading",
		ContactName: "Ahmed Hassan",
		Phone:       "+966 55 123 4567",
		Email:       "ahmed@alnoor.example",
		Currency:    currency.SAR,
		IsMonthly:   true,
		MonthlyFee:  decimal.NewFromInt(5000),
		PaymentDay:  1,
	}
}

func TestCreateClient(t *testing.T) {
	svc, _ := newTestService(t)

	client, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "al-noor-trading", client.Slug)
	assert.Equal(t, currency.SAR, client.Currency)
	assert.True(t, client.MonthlyFee.Equal(decimal.NewFromInt(5000)))
}

func TestCreateClientValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name    string
		mutate  func(*domain.CreateClientRequest)
		wantErr error
	}{
		{"empty company", func(r *domain.CreateClientRequest) { r.CompanyName = " " }, domain.ErrInvalidName},
		{"empty contact", func(r *domain.CreateClientRequest) { r.ContactName = "" }, domain.ErrInvalidName},
		{"bad email", func(r *domain.CreateClientRequest) { r.Email = "not-an-email" }, domain.ErrInvalidEmail},
		{"bad currency", func(r *domain.CreateClientRequest) { r.Currency = "USD" }, domain.ErrInvalidCurrency},
		{"bad due day", func(r *domain.CreateClientRequest) { r.PaymentDay = 40 }, domain.ErrInvalidDueDay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateClientNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	req := validCreate()
	_, err := svc.Update(context.Background(), domain.UpdateClientRequest{
		ID:          "missing",
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Currency:    req.Currency,
		IsMonthly:   req.IsMonthly,
		MonthlyFee:  req.MonthlyFee,
		PaymentDay:  req.PaymentDay,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListClientsFiltersMonthly(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	oneOff := validCreate()
	oneOff.CompanyName = "Cairo Sweets"
	oneOff.Email = "mona@cairosweets.example"
	oneOff.IsMonthly = false
	oneOff.PaymentDay = 0
	_, err = svc.Create(context.Background(), oneOff)
	require.NoError(t, err)

	monthly := true
	resp, err := svc.List(context.Background(), domain.ListClientRequest{IsMonthly: &monthly})
	require.NoError(t, err)
	require.Len(t, resp.Clients, 1)
	assert.Equal(t, "al-noor-trading", resp.Clients[0].Slug)
}

func TestDeleteClient(t *testing.T) {
	svc, db := newTestService(t)

	client, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), client.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Client{}).Count(&count).Error)
	assert.Zero(t, count)
}
