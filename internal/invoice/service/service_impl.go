package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/digimanager/digimanager/internal/invoice/repository"
	"github.com/digimanager/digimanager/internal/observability/metrics"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Metrics    *metrics.Metrics
	Repo       repository.Repository
	ClientRepo clientrepo.Repository
	Reminder   reminderdomain.Recomputer
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	metrics    *metrics.Metrics
	repo       repository.Repository
	clientRepo clientrepo.Repository
	reminder   reminderdomain.Recomputer
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		metrics:    p.Metrics,
		repo:       p.Repo,
		clientRepo: p.ClientRepo,
		reminder:   p.Reminder,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return domain.Invoice{}, domain.ErrInvalidClient
	}
	if len(req.Items) == 0 {
		return domain.Invoice{}, domain.ErrInvalidItems
	}
	if !currency.Valid(req.Currency) {
		return domain.Invoice{}, domain.ErrInvalidCurrency
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, req.ClientID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if client == nil {
		return domain.Invoice{}, domain.ErrInvalidClient
	}

	now := s.clock.Now()
	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = clock.Midnight(now)
	}
	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, 14)
	}
	if dueDate.Before(issueDate) {
		return domain.Invoice{}, domain.ErrInvalidDueDate
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.ID == "" {
			item.ID = fmt.Sprintf("li-%d", i+1)
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.Total.IsZero() {
			item.Total = item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		}
		items = append(items, item)
	}
	amount := lo.Reduce(items, func(sum decimal.Decimal, item domain.LineItem, _ int) decimal.Decimal {
		return sum.Add(item.Total)
	}, decimal.Zero)

	seq := s.genID.Generate().String()
	invoice := domain.Invoice{
		ID:            "inv-" + seq,
		InvoiceNumber: "INV-" + seq,
		ClientID:      req.ClientID,
		OrderID:       req.OrderID,
		Items:         items,
		Amount:        amount,
		Currency:      req.Currency,
		IsPaid:        false,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoiceMinted(ctx, "manual")
	s.reminder.Recompute(ctx)
	return invoice, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.reminder.Recompute(ctx)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID,
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) TogglePaid(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	now := s.clock.Now()
	invoice.IsPaid = !invoice.IsPaid
	if invoice.IsPaid {
		paidDate := clock.Midnight(now)
		invoice.PaidDate = &paidDate
	} else {
		invoice.PaidDate = nil
	}
	invoice.UpdatedAt = now

	if err := s.repo.Save(ctx, s.db, invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.reminder.Recompute(ctx)
	return *invoice, nil
}

func (s *Service) PurgePaid(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-olderThan)
	removed, err := s.repo.DeletePaidBefore(ctx, s.db, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("purged paid invoices",
			zap.Int64("removed", removed),
			zap.Time("cutoff", cutoff),
		)
		s.reminder.Recompute(ctx)
	}
	return removed, nil
}
