package domain

import (
	"context"
	"errors"
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	ClientID    string
	ServiceType ServiceType
	Description string
	Amount      decimal.Decimal
	Currency    currency.Code
	Status      Status
	StartDate   time.Time
	EndDate     *time.Time
}

type UpdateOrderRequest struct {
	ID          string
	ServiceType ServiceType
	Description string
	Amount      decimal.Decimal
	Currency    currency.Code
	Status      Status
	StartDate   time.Time
	EndDate     *time.Time
}

type ListOrderRequest struct {
	PageToken string
	PageSize  int
	ClientID  string
	Status    Status
}

type ListOrderResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}

type Service interface {
	Create(context.Context, CreateOrderRequest) (Order, error)
	Update(context.Context, UpdateOrderRequest) (Order, error)
	Delete(ctx context.Context, id string) error
	List(context.Context, ListOrderRequest) (ListOrderResponse, error)
	GetByID(ctx context.Context, id string) (Order, error)
}

var (
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidCurrency    = errors.New("invalid_currency")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrNotFound           = errors.New("not_found")
)
