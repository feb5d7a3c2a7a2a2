package repository

import (
	"context"

	"github.com/digimanager/digimanager/internal/billing/domain"
	"gorm.io/gorm"
)

type Repository interface {
	FindEntry(ctx context.Context, db *gorm.DB, kind domain.Kind, subscriberID, month string) (*domain.MonthlyPayment, error)
	Upsert(ctx context.Context, db *gorm.DB, entry *domain.MonthlyPayment) error
	DeleteEntry(ctx context.Context, db *gorm.DB, kind domain.Kind, subscriberID, month string) error
	ListBySubscriber(ctx context.Context, db *gorm.DB, kind domain.Kind, subscriberID string) ([]domain.MonthlyPayment, error)
	ListPaid(ctx context.Context, db *gorm.DB, kind domain.Kind) ([]domain.MonthlyPayment, error)
}

type repo struct{}

func Provide() Repository {
	return &repo{}
}

func (r *repo) FindEntry(ctx context.Context, db *gorm.DB, kind domain.Kind, subscriberID, month string) (*domain.MonthlyPayment, error) {
	var entry domain.MonthlyPayment
	err := db.WithContext(ctx).
		Where("kind = ? AND subscriber_id = ? AND month = ?", kind, subscriberID, month).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert replaces any existing row for the (kind, subscriber, month) key
// before inserting the new one. Replace-on-write keeps the one-entry-per-
// month invariant even if a stale unpaid row lingers.
func (r *repo) Upsert(ctx context.Context, db *gorm.DB, entry *domain.MonthlyPayment) error {
	err := db.WithContext(ctx).
		Where("kind = ? AND subscriber_id = ? AND month = ?", entry.Kind, entry.SubscriberID, entry.Month).
		Delete(&domain.MonthlyPayment{}).Error
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) DeleteEntry(ctx context.Context, db *gorm.DB, kind domain.Kind, subscriberID, month string) error {
	return db.WithContext(ctx).
		Where("kind = ? AND subscriber_id = ? AND month = ?", kind, subscriberID, month).
		Delete(&domain.MonthlyPayment{}).Error
}

func (r *repo) ListBySubscriber(ctx context.Context, db *gorm.DB, kind domain.Kind, subscriberID string) ([]domain.MonthlyPayment, error) {
	var entries []domain.MonthlyPayment
	err := db.WithContext(ctx).
		Where("kind = ? AND subscriber_id = ?", kind, subscriberID).
		Order("month desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPaid returns every paid row of a kind; the reminder generator builds
// its paid-month lookup from this.
func (r *repo) ListPaid(ctx context.Context, db *gorm.DB, kind domain.Kind) ([]domain.MonthlyPayment, error) {
	var entries []domain.MonthlyPayment
	err := db.WithContext(ctx).
		Where("kind = ? AND is_paid = ?", kind, true).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
