package repository

import (
	"context"

	"github.com/digimanager/digimanager/internal/order/domain"
	"github.com/digimanager/digimanager/pkg/db/option"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error
	Save(ctx context.Context, db *gorm.DB, order *domain.Order) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Order, error)
	List(ctx context.Context, db *gorm.DB, filter domain.ListOrderRequest, page pagination.Pagination) ([]*domain.Order, error)
	CountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error)
	SumAmountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (map[string]string, error)
}

type repo struct{}

func Provide() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListOrderRequest, page pagination.Pagination) ([]*domain.Order, error) {
	var orders []*domain.Order
	stmt := db.WithContext(ctx).Model(&domain.Order{})
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Order{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// SumAmountByStatus totals order amounts per currency for dashboard
// aggregation. Sums are returned as strings so the caller can rebuild
// exact decimals.
func (r *repo) SumAmountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (map[string]string, error) {
	type row struct {
		Currency string
		Total    string
	}
	var rows []row
	err := db.WithContext(ctx).Model(&domain.Order{}).
		Select("currency, CAST(SUM(amount) AS TEXT) AS total").
		Where("status = ?", status).
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
