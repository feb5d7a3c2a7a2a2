package domain

import (
	"context"
	"errors"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type CreateClientRequest struct {
	CompanyName string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Notes       string
	Currency    currency.Code
	IsMonthly   bool
	MonthlyFee  decimal.Decimal
	PaymentDay  int
}

type UpdateClientRequest struct {
	ID          string
	CompanyName string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Notes       string
	Currency    currency.Code
	IsMonthly   bool
	MonthlyFee  decimal.Decimal
	PaymentDay  int
}

type ListClientRequest struct {
	PageToken string
	PageSize  int
	IsMonthly *bool
	Currency  currency.Code
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(context.Context, CreateClientRequest) (Client, error)
	Update(context.Context, UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidDueDay   = errors.New("invalid_payment_day")
	ErrNotFound        = errors.New("not_found")
)
