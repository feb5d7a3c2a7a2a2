package service

import (
	"context"
	"strings"
	"time"

	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/internal/order/domain"
	"github.com/digimanager/digimanager/internal/order/repository"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Repo       repository.Repository
	ClientRepo clientrepo.Repository
	Reminder   reminderdomain.Recomputer
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	repo       repository.Repository
	clientRepo clientrepo.Repository
	reminder   reminderdomain.Recomputer
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("order.service"),
		clock:      p.Clock,
		repo:       p.Repo,
		clientRepo: p.ClientRepo,
		reminder:   p.Reminder,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return domain.Order{}, domain.ErrInvalidClient
	}
	if err := validate(req.ServiceType, req.Status, req.Currency, req.Amount.IsNegative()); err != nil {
		return domain.Order{}, err
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, req.ClientID)
	if err != nil {
		return domain.Order{}, err
	}
	if client == nil {
		return domain.Order{}, domain.ErrInvalidClient
	}

	now := s.clock.Now()
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	order := domain.Order{
		ID:          "ord_" + ulid.Make().String(),
		ClientID:    req.ClientID,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      req.Status,
		StartDate:   startDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.Order{}, err
	}

	s.reminder.Recompute(ctx)
	return order, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOrderRequest) (domain.Order, error) {
	if err := validate(req.ServiceType, req.Status, req.Currency, req.Amount.IsNegative()); err != nil {
		return domain.Order{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Order{}, err
	}
	if existing == nil {
		return domain.Order{}, domain.ErrNotFound
	}

	existing.ServiceType = req.ServiceType
	existing.Description = req.Description
	existing.Amount = req.Amount
	existing.Currency = req.Currency
	existing.Status = req.Status
	if !req.StartDate.IsZero() {
		existing.StartDate = req.StartDate
	}
	existing.EndDate = req.EndDate
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, existing); err != nil {
		return domain.Order{}, err
	}

	s.reminder.Recompute(ctx)
	return *existing, nil
}

// Delete removes the order. Invoices already issued for it keep their
// order reference and are left untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.reminder.Recompute(ctx)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrderRequest) (domain.ListOrderResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOrderResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(order *domain.Order) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        order.ID,
			CreatedAt: order.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	resp := domain.ListOrderResponse{Orders: orders}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrNotFound
	}
	return *order, nil
}

func validate(serviceType domain.ServiceType, status domain.Status, code currency.Code, negative bool) error {
	if !domain.ValidServiceType(serviceType) {
		return domain.ErrInvalidServiceType
	}
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	if !currency.Valid(code) {
		return domain.ErrInvalidCurrency
	}
	if negative {
		return domain.ErrInvalidAmount
	}
	return nil
}
