// Package seed installs demo fixtures on an empty database so a fresh
// install has something to show.
package seed

import (
	"context"
	"time"

	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/config"
	"github.com/digimanager/digimanager/internal/currency"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Config     config.Config
	ClientRepo clientrepo.Repository
	Reminder   reminderdomain.Recomputer
}

// Run seeds demo data once. Any existing client row disables seeding.
func Run(p Params) error {
	if !p.Config.SeedDemoData {
		return nil
	}

	ctx := context.Background()
	count, err := p.ClientRepo.Count(ctx, p.DB)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := p.Clock.Now()
	clients := demoClients(now)
	orders := demoOrders(now)
	invoices := demoInvoices(now)
	sites := demoSites(now)
	if err := p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&clients).Error; err != nil {
			return err
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}
		if err := tx.Create(&invoices).Error; err != nil {
			return err
		}
		return tx.Create(&sites).Error
	}); err != nil {
		return err
	}

	p.Log.Info("demo data seeded")
	p.Reminder.Recompute(ctx)
	return nil
}

func demoClients(now time.Time) []clientdomain.Client {
	return []clientdomain.Client{
		{
			ID:          "c1",
			CompanyName: "Al Noor Trading",
			Slug:        "al-noor-trading",
			ContactName: "Ahmed Hassan",
			Phone:       "+966 55 123 4567",
			Email:       "ahmed@alnoor.example",
			Address:     "Riyadh",
			Currency:    currency.SAR,
			IsMonthly:   true,
			MonthlyFee:  decimal.NewFromInt(5000),
			PaymentDay:  1,
			JoinedAt:    now.AddDate(0, -6, 0),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "c2",
			CompanyName: "Cairo Sweets",
			Slug:        "cairo-sweets",
			ContactName: "Mona Adel",
			Phone:       "+20 10 2345 6789",
			Email:       "mona@cairosweets.example",
			Address:     "Cairo",
			Currency:    currency.EGP,
			IsMonthly:   false,
			MonthlyFee:  decimal.Zero,
			JoinedAt:    now.AddDate(0, -3, 0),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "c3",
			CompanyName: "Desert Rose Spa",
			Slug:        "desert-rose-spa",
			ContactName: "Sara Khalid",
			Phone:       "+966 50 987 6543",
			Email:       "sara@desertrose.example",
			Address:     "Jeddah",
			Currency:    currency.SAR,
			IsMonthly:   true,
			MonthlyFee:  decimal.NewFromInt(3000),
			PaymentDay:  15,
			JoinedAt:    now.AddDate(0, -1, 0),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func demoOrders(now time.Time) []orderdomain.Order {
	return []orderdomain.Order{
		{
			ID:          "o1",
			ClientID:    "c1",
			ServiceType: orderdomain.ServiceAdsSocial,
			Description: "Ramadan campaign on social platforms",
			Amount:      decimal.NewFromInt(8000),
			Currency:    currency.SAR,
			Status:      orderdomain.StatusActive,
			StartDate:   now.AddDate(0, 0, -10),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "o2",
			ClientID:    "c2",
			ServiceType: orderdomain.ServiceWebDesign,
			Description: "Storefront redesign",
			Amount:      decimal.NewFromInt(15000),
			Currency:    currency.EGP,
			Status:      orderdomain.StatusInProgress,
			StartDate:   now.AddDate(0, 0, -20),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "o3",
			ClientID:    "c3",
			ServiceType: orderdomain.ServiceSEO,
			Description: "Search ranking improvement",
			Amount:      decimal.NewFromInt(4500),
			Currency:    currency.SAR,
			Status:      orderdomain.StatusPending,
			StartDate:   now.AddDate(0, 0, -2),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func demoInvoices(now time.Time) []invoicedomain.Invoice {
	issued := now.AddDate(0, 0, -12)
	due := now.AddDate(0, 0, 2)
	paidDate := now.AddDate(0, 0, -5)
	return []invoicedomain.Invoice{
		{
			ID:            "inv-001",
			InvoiceNumber: "INV-001",
			ClientID:      "c2",
			OrderID:       "o2",
			Items: []invoicedomain.LineItem{
				{
					ID:          "li-1",
					Description: "Storefront redesign deposit",
					Quantity:    1,
					UnitPrice:   decimal.NewFromInt(7500),
					Total:       decimal.NewFromInt(7500),
				},
			},
			Amount:    decimal.NewFromInt(7500),
			Currency:  currency.EGP,
			IsPaid:    true,
			IssueDate: issued,
			DueDate:   issued.AddDate(0, 0, 7),
			PaidDate:  &paidDate,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:            "inv-002",
			InvoiceNumber: "INV-002",
			ClientID:      "c1",
			OrderID:       "o1",
			Items: []invoicedomain.LineItem{
				{
					ID:          "li-1",
					Description: "Campaign management fee",
					Quantity:    1,
					UnitPrice:   decimal.NewFromInt(8000),
					Total:       decimal.NewFromInt(8000),
				},
			},
			Amount:    decimal.NewFromInt(8000),
			Currency:  currency.SAR,
			IsPaid:    false,
			IssueDate: now.AddDate(0, 0, -8),
			DueDate:   due,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func demoSites(now time.Time) []sitedomain.SiteProject {
	return []sitedomain.SiteProject{
		{
			ID:             "s1",
			ClientID:       "c2",
			Domain:         "cairosweets.example",
			ServiceName:    "Hosting and maintenance",
			Currency:       currency.EGP,
			Status:         sitedomain.StatusActive,
			MonthlyFee:     decimal.NewFromInt(1000),
			ThirdPartyCost: decimal.NewFromInt(200),
			PaymentDay:     10,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:          "s2",
			ClientID:    "c1",
			Domain:      "alnoor.example",
			ServiceName: "Hosting",
			Currency:    currency.SAR,
			Status:      sitedomain.StatusDevelopment,
			MonthlyFee:  decimal.NewFromInt(750),
			PaymentDay:  1,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
