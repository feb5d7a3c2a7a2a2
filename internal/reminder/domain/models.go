// Package domain defines the derived notification model.
package domain

import "context"

// Type classifies a notification for the UI.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Notification is a derived reminder. The list is recomputed wholesale from
// invoices, orders and clients on every relevant mutation and is never
// persisted; the deterministic ID is what lets read-state survive a
// recomputation.
type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Date    string `json:"date"` // YYYY-MM-DD
	Read    bool   `json:"read"`
	Type    Type   `json:"type"`
}

// ID prefixes reserved for generated notifications. Anything outside these
// prefixes is treated as manually created and survives recomputation
// untouched.
const (
	PrefixSubscriptionDue = "sub-due-"
	PrefixInvoiceDueSoon  = "due-inv-"
	PrefixInvoiceOverdue  = "overdue-inv-"
	PrefixActiveOrders    = "notif-active-"
)

// Derived reports whether the notification id belongs to the generator.
func Derived(id string) bool {
	for _, prefix := range []string{PrefixSubscriptionDue, PrefixInvoiceDueSoon, PrefixInvoiceOverdue, PrefixActiveOrders} {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

type Service interface {
	Recomputer

	// List returns the current notification list, most recent date first.
	List(ctx context.Context) []Notification

	// MarkRead flags a notification as read. Unknown ids are ignored.
	MarkRead(ctx context.Context, id string)
}

// Recomputer is the trigger surface mutating services depend on. Recompute
// runs synchronously and fully replaces the derived notification list.
type Recomputer interface {
	Recompute(ctx context.Context)
}
