package repository

import (
	"context"

	"github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/digimanager/digimanager/pkg/db/option"
	"github.com/digimanager/digimanager/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, site *domain.SiteProject) error
	Save(ctx context.Context, db *gorm.DB, site *domain.SiteProject) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.SiteProject, error)
	List(ctx context.Context, db *gorm.DB, filter domain.ListSiteProjectRequest, page pagination.Pagination) ([]*domain.SiteProject, error)
	CountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error)
}

type repo struct{}

func Provide() Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, site *domain.SiteProject) error {
	return db.WithContext(ctx).Create(site).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, site *domain.SiteProject) error {
	return db.WithContext(ctx).Save(site).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.SiteProject{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.SiteProject, error) {
	var site domain.SiteProject
	err := db.WithContext(ctx).Where("id = ?", id).First(&site).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListSiteProjectRequest, page pagination.Pagination) ([]*domain.SiteProject, error) {
	var sites []*domain.SiteProject
	stmt := db.WithContext(ctx).Model(&domain.SiteProject{})
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, status domain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.SiteProject{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
