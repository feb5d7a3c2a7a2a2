package domain

import (
	"context"
	"errors"
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/digimanager/digimanager/pkg/db/pagination"
)

type CreateInvoiceRequest struct {
	ClientID  string
	OrderID   string
	Items     []LineItem
	Currency  currency.Code
	IssueDate time.Time
	DueDate   time.Time
	Notes     string
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int
	ClientID  string
	IsPaid    *bool
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)

	// TogglePaid flips the paid flag. Marking paid stamps the paid date
	// with the current day; marking unpaid clears it.
	TogglePaid(ctx context.Context, id string) (Invoice, error)

	// PurgePaid deletes paid invoices older than the retention window.
	// Unpaid invoices are never purged, however old.
	PurgePaid(ctx context.Context, olderThan time.Duration) (int64, error)
}

var (
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidItems    = errors.New("invalid_items")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidDueDate  = errors.New("invalid_due_date")
	ErrNotFound        = errors.New("not_found")
)
