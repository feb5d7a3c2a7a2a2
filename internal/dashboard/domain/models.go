// Package domain defines the aggregated dashboard view.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Stats is the landing-page summary. Monetary totals are grouped by
// currency code since amounts are never converted.
type Stats struct {
	TotalClients   int64 `json:"total_clients"`
	ActiveOrders   int64 `json:"active_orders"`
	UnpaidInvoices int64 `json:"unpaid_invoices"`
	ActiveSites    int64 `json:"active_sites"`

	Revenue     map[string]decimal.Decimal `json:"revenue"`     // paid invoices
	Outstanding map[string]decimal.Decimal `json:"outstanding"` // unpaid invoices
	Pipeline    map[string]decimal.Decimal `json:"pipeline"`    // active orders
}

type Service interface {
	Stats(ctx context.Context) (Stats, error)
}
