// Package domain contains the single-row agency settings model.
package domain

import (
	"context"
	"errors"
	"time"
)

// Settings is the agency profile printed on invoices. Exactly one row
// exists; reads fall back to the configured branding defaults until the
// row is first written.
type Settings struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	AgencyName      string `gorm:"not null" json:"agency_name"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	TaxNumber       string `json:"tax_number,omitempty"`
	FooterText      string `json:"footer_text,omitempty"`
	BankName        string `json:"bank_name,omitempty"`
	BankAccount     string `json:"bank_account,omitempty"`
	BankBeneficiary string `json:"bank_beneficiary,omitempty"`

	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Settings) TableName() string { return "settings" }

type UpdateSettingsRequest struct {
	AgencyName      string
	Phone           string
	Address         string
	TaxNumber       string
	FooterText      string
	BankName        string
	BankAccount     string
	BankBeneficiary string
}

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(context.Context, UpdateSettingsRequest) (Settings, error)
}

var ErrInvalidAgencyName = errors.New("invalid_agency_name")
