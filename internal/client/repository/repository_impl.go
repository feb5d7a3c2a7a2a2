package repository

import (
	"context"

	"github.com/digimanager/digimanager/internal/client/domain"
	"github.com/digimanager/digimanager/pkg/db/option"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error
	Save(ctx context.Context, db *gorm.DB, client *domain.Client) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Client, error)
	List(ctx context.Context, db *gorm.DB, filter domain.ListClientRequest, page pagination.Pagination) ([]*domain.Client, error)
	ListMonthly(ctx context.Context, db *gorm.DB) ([]*domain.Client, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type repo struct{}

func Provide() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Save(client).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Client{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListClientRequest, page pagination.Pagination) ([]*domain.Client, error) {
	var clients []*domain.Client
	stmt := db.WithContext(ctx).Model(&domain.Client{})
	if filter.IsMonthly != nil {
		stmt = stmt.Where("is_monthly = ?", *filter.IsMonthly)
	}
	if filter.Currency != "" {
		stmt = stmt.Where("currency = ?", filter.Currency)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// ListMonthly returns clients enrolled in monthly billing; the reminder
// generator walks these on every recomputation.
func (r *repo) ListMonthly(ctx context.Context, db *gorm.DB) ([]*domain.Client, error) {
	var clients []*domain.Client
	err := db.WithContext(ctx).
		Where("is_monthly = ?", true).
		Order("id").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Client{}).Count(&count).Error
	return count, err
}
