// Package domain defines the recurring payment ledger model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

// Kind selects which subscriber collection a ledger entry belongs to.
// Client retainers and hosted sites keep independent histories and
// independent invoice number prefixes.
type Kind string

const (
	KindClient Kind = "client"
	KindSite   Kind = "site"
)

func ValidKind(k Kind) bool { return k == KindClient || k == KindSite }

// MonthlyPayment is one (subscriber, month) ledger row. A row exists only
// for months marked paid; absence means unpaid. Amount is a snapshot taken
// at marking time and never recomputed from the subscriber's current fee.
type MonthlyPayment struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	Kind         Kind            `gorm:"type:text;not null;uniqueIndex:idx_subscription_month,priority:1" json:"kind"`
	SubscriberID string          `gorm:"not null;uniqueIndex:idx_subscription_month,priority:2" json:"subscriber_id"`
	Month        string          `gorm:"not null;uniqueIndex:idx_subscription_month,priority:3" json:"month"` // YYYY-MM
	IsPaid       bool            `gorm:"not null;default:true" json:"is_paid"`
	PaidDate     *time.Time      `json:"paid_date,omitempty"`
	Amount       decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Currency     currency.Code   `gorm:"type:text;not null" json:"currency"`
	InvoiceID    string          `gorm:"not null" json:"invoice_id"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (MonthlyPayment) TableName() string { return "subscription_payments" }

// Subscription is the billable capability shared by the two subscriber
// kinds. The ledger algorithm is written once against it.
type Subscription interface {
	SubscriberID() string
	ClientID() string
	Kind() Kind
	Currency() currency.Code

	// InvoicePrefix is the invoice-number prefix minted for this kind,
	// without the trailing separator.
	InvoicePrefix() string

	// Amount is the total due for one month at current configuration.
	Amount() decimal.Decimal

	// LineItems renders the invoice rows for the given month.
	LineItems(month string) []invoicedomain.LineItem
}

// InvoiceNumberer yields unique suffixes for ledger-minted invoices.
type InvoiceNumberer interface {
	Next() string
}

type Service interface {
	// MarkMonthPaid records a month as paid and mints the matching
	// invoice. Marking an already-paid month is a no-op returning the
	// existing entry. An unknown subscriber is a no-op returning nil.
	MarkMonthPaid(ctx context.Context, kind Kind, subscriberID, month string) (*MonthlyPayment, error)

	// RevertMonthPayment removes the ledger row for the month and
	// deletes the invoice it minted. Absent rows are a no-op.
	RevertMonthPayment(ctx context.Context, kind Kind, subscriberID, month string) error

	// History lists a subscriber's ledger rows, most recent month first.
	History(ctx context.Context, kind Kind, subscriberID string) ([]MonthlyPayment, error)
}

var ErrUnknownKind = errors.New("unknown_subscriber_kind")
