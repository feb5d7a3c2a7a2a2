package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/digimanager/digimanager/internal/client/domain"
	"github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     repository.Repository
	Reminder reminderdomain.Recomputer
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     repository.Repository
	reminder reminderdomain.Recomputer
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("client.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		reminder: p.Reminder,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	if err := validate(req.CompanyName, req.ContactName, req.Email, req.Currency, req.IsMonthly, req.PaymentDay); err != nil {
		return domain.Client{}, err
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:          s.genID.Generate().String(),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Slug:        slug.Make(req.CompanyName),
		ContactName: strings.TrimSpace(req.ContactName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
		Notes:       req.Notes,
		Currency:    req.Currency,
		IsMonthly:   req.IsMonthly,
		MonthlyFee:  req.MonthlyFee,
		PaymentDay:  req.PaymentDay,
		JoinedAt:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}

	s.reminder.Recompute(ctx)
	return client, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClientRequest) (domain.Client, error) {
	if err := validate(req.CompanyName, req.ContactName, req.Email, req.Currency, req.IsMonthly, req.PaymentDay); err != nil {
		return domain.Client{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Client{}, err
	}
	if existing == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	existing.CompanyName = strings.TrimSpace(req.CompanyName)
	existing.Slug = slug.Make(req.CompanyName)
	existing.ContactName = strings.TrimSpace(req.ContactName)
	existing.Phone = strings.TrimSpace(req.Phone)
	existing.Email = strings.TrimSpace(req.Email)
	existing.Address = strings.TrimSpace(req.Address)
	existing.Notes = req.Notes
	existing.Currency = req.Currency
	existing.IsMonthly = req.IsMonthly
	existing.MonthlyFee = req.MonthlyFee
	existing.PaymentDay = req.PaymentDay
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, existing); err != nil {
		return domain.Client{}, err
	}

	s.reminder.Recompute(ctx)
	return *existing, nil
}

// Delete removes the client record only. Orders, invoices and payment
// history referencing the client stay in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.reminder.Recompute(ctx)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(client *domain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        client.ID,
			CreatedAt: client.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}

	resp := domain.ListClientResponse{Clients: clients}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *client, nil
}

func validate(companyName, contactName, email string, code currency.Code, isMonthly bool, paymentDay int) error {
	if strings.TrimSpace(companyName) == "" || strings.TrimSpace(contactName) == "" {
		return domain.ErrInvalidName
	}
	if email = strings.TrimSpace(email); email == "" || !strings.Contains(email, "@") {
		return domain.ErrInvalidEmail
	}
	if !currency.Valid(code) {
		return domain.ErrInvalidCurrency
	}
	if isMonthly && (paymentDay < 0 || paymentDay > 31) {
		return domain.ErrInvalidDueDay
	}
	return nil
}
