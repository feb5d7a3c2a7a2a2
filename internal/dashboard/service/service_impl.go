package service

import (
	"context"

	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/dashboard/domain"
	invoicerepo "github.com/digimanager/digimanager/internal/invoice/repository"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	orderrepo "github.com/digimanager/digimanager/internal/order/repository"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	siterepo "github.com/digimanager/digimanager/internal/siteproject/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	ClientRepo  clientrepo.Repository
	OrderRepo   orderrepo.Repository
	InvoiceRepo invoicerepo.Repository
	SiteRepo    siterepo.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clientRepo  clientrepo.Repository
	orderRepo   orderrepo.Repository
	invoiceRepo invoicerepo.Repository
	siteRepo    siterepo.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("dashboard.service"),
		clientRepo:  p.ClientRepo,
		orderRepo:   p.OrderRepo,
		invoiceRepo: p.InvoiceRepo,
		siteRepo:    p.SiteRepo,
	}
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	stats := domain.Stats{
		Revenue:     map[string]decimal.Decimal{},
		Outstanding: map[string]decimal.Decimal{},
		Pipeline:    map[string]decimal.Decimal{},
	}

	var err error
	if stats.TotalClients, err = s.clientRepo.Count(ctx, s.db); err != nil {
		return domain.Stats{}, err
	}
	if stats.ActiveOrders, err = s.orderRepo.CountByStatus(ctx, s.db, orderdomain.StatusActive); err != nil {
		return domain.Stats{}, err
	}
	if stats.UnpaidInvoices, err = s.invoiceRepo.CountUnpaid(ctx, s.db); err != nil {
		return domain.Stats{}, err
	}
	if stats.ActiveSites, err = s.siteRepo.CountByStatus(ctx, s.db, sitedomain.StatusActive); err != nil {
		return domain.Stats{}, err
	}

	paid, err := s.invoiceRepo.SumByPaid(ctx, s.db, true)
	if err != nil {
		return domain.Stats{}, err
	}
	if stats.Revenue, err = toDecimals(paid); err != nil {
		return domain.Stats{}, err
	}

	unpaid, err := s.invoiceRepo.SumByPaid(ctx, s.db, false)
	if err != nil {
		return domain.Stats{}, err
	}
	if stats.Outstanding, err = toDecimals(unpaid); err != nil {
		return domain.Stats{}, err
	}

	pipeline, err := s.orderRepo.SumAmountByStatus(ctx, s.db, orderdomain.StatusActive)
	if err != nil {
		return domain.Stats{}, err
	}
	if stats.Pipeline, err = toDecimals(pipeline); err != nil {
		return domain.Stats{}, err
	}

	return stats, nil
}

func toDecimals(totals map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(totals))
	for code, raw := range totals {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		out[code] = d
	}
	return out, nil
}
