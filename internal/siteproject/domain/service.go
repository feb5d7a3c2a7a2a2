package domain

import (
	"context"
	"errors"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateSiteProjectRequest struct {
	ClientID       string
	Domain         string
	ServiceName    string
	Currency       currency.Code
	Status         Status
	MonthlyFee     decimal.Decimal
	ThirdPartyCost decimal.Decimal
	PaymentDay     int
}

type UpdateSiteProjectRequest struct {
	ID             string
	Domain         string
	ServiceName    string
	Currency       currency.Code
	Status         Status
	MonthlyFee     decimal.Decimal
	ThirdPartyCost decimal.Decimal
	PaymentDay     int
}

type ListSiteProjectRequest struct {
	PageToken string
	PageSize  int
	ClientID  string
	Status    Status
}

type ListSiteProjectResponse struct {
	pagination.PageInfo
	Sites []SiteProject `json:"sites"`
}

type Service interface {
	Create(context.Context, CreateSiteProjectRequest) (SiteProject, error)
	Update(context.Context, UpdateSiteProjectRequest) (SiteProject, error)
	Delete(ctx context.Context, id string) error
	List(context.Context, ListSiteProjectRequest) (ListSiteProjectResponse, error)
	GetByID(ctx context.Context, id string) (SiteProject, error)
}

var (
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidDomain   = errors.New("invalid_domain")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidDueDay   = errors.New("invalid_payment_day")
	ErrNotFound        = errors.New("not_found")
)
