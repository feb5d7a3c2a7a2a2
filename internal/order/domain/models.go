// Package domain contains persistence models for one-off service orders.
package domain

import (
	"time"

	"github.com/digimanager/digimanager/internal/currency"
	"github.com/shopspring/decimal"
)

// ServiceType enumerates the services the agency sells.
type ServiceType string

const (
	ServiceAdsSocial    ServiceType = "ads_social"
	ServiceAdsGoogle    ServiceType = "ads_google"
	ServiceWebDesign    ServiceType = "web_design"
	ServiceSEO          ServiceType = "seo"
	ServiceFieldService ServiceType = "field_service"
)

func ValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceAdsSocial, ServiceAdsGoogle, ServiceWebDesign, ServiceSEO, ServiceFieldService:
		return true
	}
	return false
}

// Status tracks an order through its lifecycle. Active orders feed the
// daily reminder digest.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is a one-off engagement for a client. Invoicing an order is a
// separate explicit action; deleting the order leaves issued invoices
// in place.
type Order struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	ClientID    string          `gorm:"not null;index" json:"client_id"`
	ServiceType ServiceType     `gorm:"type:text;not null" json:"service_type"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Currency    currency.Code   `gorm:"type:text;not null" json:"currency"`
	Status      Status          `gorm:"type:text;not null;index" json:"status"`
	StartDate   time.Time       `gorm:"not null" json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }
