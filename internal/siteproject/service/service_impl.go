package service

import (
	"context"
	"strings"
	"time"

	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/currency"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	"github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/digimanager/digimanager/internal/siteproject/repository"
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
		log:        p.Log.Named("siteproject.service"),
		clock:      p.Clock,
		repo:       p.Repo,
		clientRepo: p.ClientRepo,
		reminder:   p.Reminder,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSiteProjectRequest) (domain.SiteProject, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return domain.SiteProject{}, domain.ErrInvalidClient
	}
	if err := validate(req.Domain, req.Status, req.Currency, req.PaymentDay); err != nil {
		return domain.SiteProject{}, err
	}

	client, err := s.clientRepo.FindByID(ctx, s.db, req.ClientID)
	if err != nil {
		return domain.SiteProject{}, err
	}
	if client == nil {
		return domain.SiteProject{}, domain.ErrInvalidClient
	}

	now := s.clock.Now()
	site := domain.SiteProject{
		ID:             "site_" + ulid.Make().String(),
		ClientID:       req.ClientID,
		Domain:         strings.ToLower(strings.TrimSpace(req.Domain)),
		ServiceName:    strings.TrimSpace(req.ServiceName),
		Currency:       req.Currency,
		Status:         req.Status,
		MonthlyFee:     req.MonthlyFee,
		ThirdPartyCost: req.ThirdPartyCost,
		PaymentDay:     req.PaymentDay,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &site); err != nil {
		return domain.SiteProject{}, err
	}

	s.reminder.Recompute(ctx)
	return site, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSiteProjectRequest) (domain.SiteProject, error) {
	if err := validate(req.Domain, req.Status, req.Currency, req.PaymentDay); err != nil {
		return domain.SiteProject{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.SiteProject{}, err
	}
	if existing == nil {
		return domain.SiteProject{}, domain.ErrNotFound
	}

	existing.Domain = strings.ToLower(strings.TrimSpace(req.Domain))
	existing.ServiceName = strings.TrimSpace(req.ServiceName)
	existing.Currency = req.Currency
	existing.Status = req.Status
	existing.MonthlyFee = req.MonthlyFee
	existing.ThirdPartyCost = req.ThirdPartyCost
	existing.PaymentDay = req.PaymentDay
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, existing); err != nil {
		return domain.SiteProject{}, err
	}

	s.reminder.Recompute(ctx)
	return *existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.reminder.Recompute(ctx)
	return nil
}

func (s *Service) List(ctx context.Context, req domain.ListSiteProjectRequest) (domain.ListSiteProjectResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListSiteProjectResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(site *domain.SiteProject) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        site.ID,
			CreatedAt: site.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	sites := make([]domain.SiteProject, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		sites = append(sites, *item)
	}

	resp := domain.ListSiteProjectResponse{Sites: sites}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.SiteProject, error) {
	site, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.SiteProject{}, err
	}
	if site == nil {
		return domain.SiteProject{}, domain.ErrNotFound
	}
	return *site, nil
}

func validate(siteDomain string, status domain.Status, code currency.Code, paymentDay int) error {
	if strings.TrimSpace(siteDomain) == "" {
		return domain.ErrInvalidDomain
	}
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	if !currency.Valid(code) {
		return domain.ErrInvalidCurrency
	}
	if paymentDay < 0 || paymentDay > 31 {
		return domain.ErrInvalidDueDay
	}
	return nil
}
