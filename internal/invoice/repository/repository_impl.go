package repository

import (
	"context"
	"time"

	"github.com/digimanager/digimanager/internal/invoice/domain"
	"github.com/digimanager/digimanager/pkg/db/option"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error
	Save(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceRequest, page pagination.Pagination) ([]*domain.Invoice, error)
	ListUnpaid(ctx context.Context, db *gorm.DB) ([]*domain.Invoice, error)
	DeletePaidBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
	SumByPaid(ctx context.Context, db *gorm.DB, paid bool) (map[string]string, error)
	CountUnpaid(ctx context.Context, db *gorm.DB) (int64, error)
}

type repo struct{}

func Provide() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Save(invoice).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Invoice{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListInvoiceRequest, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.IsPaid != nil {
		stmt = stmt.Where("is_paid = ?", *filter.IsPaid)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListUnpaid returns every open invoice; the reminder generator inspects
// their due dates on each recomputation.
func (r *repo) ListUnpaid(ctx context.Context, db *gorm.DB) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	err := db.WithContext(ctx).
		Where("is_paid = ?", false).
		Order("due_date").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// DeletePaidBefore removes paid invoices created before the cutoff.
// Age is measured from created_at, not issue_date, so a backdated
// invoice is not purged ahead of schedule.
func (r *repo) DeletePaidBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("is_paid = ? AND created_at < ?", true, cutoff).
		Delete(&domain.Invoice{})
	return res.RowsAffected, res.Error
}

func (r *repo) SumByPaid(ctx context.Context, db *gorm.DB, paid bool) (map[string]string, error) {
	type row struct {
		Currency string
		Total    string
	}
	var rows []row
	err := db.WithContext(ctx).Model(&domain.Invoice{}).
		Select("currency, CAST(SUM(amount) AS TEXT) AS total").
		Where("is_paid = ?", paid).
		Group("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]string, len(rows))
	for _, r := range rows {
		totals[r.Currency] = r.Total
	}
	return totals, nil
}

func (r *repo) CountUnpaid(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Invoice{}).Where("is_paid = ?", false).Count(&count).Error
	return count, err
}
