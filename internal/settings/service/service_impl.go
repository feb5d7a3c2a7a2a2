package service

import (
	"context"
	"strings"

	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/config"
	"github.com/digimanager/digimanager/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// settingsRowID pins the singleton row.
const settingsRowID = 1

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Branding *config.BrandingHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	branding *config.BrandingHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("settings.service"),
		clock:    p.Clock,
		branding: p.Branding,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	var row domain.Settings
	err := s.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&row).Error
	if err == nil {
		return row, nil
	}
	if err != gorm.ErrRecordNotFound {
		return domain.Settings{}, err
	}

	branding := s.branding.Current()
	return domain.Settings{
		ID:              settingsRowID,
		AgencyName:      branding.AgencyName,
		Phone:           branding.AgencyPhone,
		Address:         branding.AgencyAddress,
		TaxNumber:       branding.TaxNumber,
		FooterText:      branding.FooterText,
		BankName:        branding.BankName,
		BankAccount:     branding.BankAccount,
		BankBeneficiary: branding.BankBeneficiary,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	if strings.TrimSpace(req.AgencyName) == "" {
		return domain.Settings{}, domain.ErrInvalidAgencyName
	}

	row := domain.Settings{
		ID:              settingsRowID,
		AgencyName:      strings.TrimSpace(req.AgencyName),
		Phone:           strings.TrimSpace(req.Phone),
		Address:         strings.TrimSpace(req.Address),
		TaxNumber:       strings.TrimSpace(req.TaxNumber),
		FooterText:      req.FooterText,
		BankName:        strings.TrimSpace(req.BankName),
		BankAccount:     strings.TrimSpace(req.BankAccount),
		BankBeneficiary: strings.TrimSpace(req.BankBeneficiary),
		UpdatedAt:       s.clock.Now(),
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return domain.Settings{}, err
	}
	return row, nil
}
