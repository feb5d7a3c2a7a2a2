package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Branding holds the agency profile defaults used until the operator saves
// settings of their own. It lives in a YAML file so an installer can brand
// the dashboard without touching the database.
type Branding struct {
	AgencyName      string `mapstructure:"agencyName"`
	AgencyPhone     string `mapstructure:"agencyPhone"`
	AgencyAddress   string `mapstructure:"agencyAddress"`
	TaxNumber       string `mapstructure:"taxNumber"`
	FooterText      string `mapstructure:"footerText"`
	BankName        string `mapstructure:"bankName"`
	BankAccount     string `mapstructure:"bankAccount"`
	BankBeneficiary string `mapstructure:"bankBeneficiary"`
}

func DefaultBranding() Branding {
	return Branding{
		AgencyName:      "DigiManager Agency",
		AgencyPhone:     "+966 50 000 0000",
		AgencyAddress:   "Riyadh, Saudi Arabia",
		TaxNumber:       "300000000000003",
		FooterText:      "Thank you for your business",
		BankName:        "Al Rajhi Bank",
		BankAccount:     "SA00 0000 0000 0000 0000",
		BankBeneficiary: "DigiManager Agency",
	}
}

// BrandingHolder exposes the current branding and hot-reloads it when the
// config file changes on disk.
type BrandingHolder struct {
	current atomic.Value // holds Branding
}

func NewBrandingHolder() (*BrandingHolder, error) {
	v := viper.New()

	v.SetConfigName("branding")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/digimanager")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DIGIMANAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultBranding()
		v.SetDefault("branding.agencyName", defaults.AgencyName)
		v.SetDefault("branding.agencyPhone", defaults.AgencyPhone)
		v.SetDefault("branding.agencyAddress", defaults.AgencyAddress)
		v.SetDefault("branding.taxNumber", defaults.TaxNumber)
		v.SetDefault("branding.footerText", defaults.FooterText)
		v.SetDefault("branding.bankName", defaults.BankName)
		v.SetDefault("branding.bankAccount", defaults.BankAccount)
		v.SetDefault("branding.bankBeneficiary", defaults.BankBeneficiary)
	}

	var branding Branding
	if err := v.UnmarshalKey("branding", &branding); err != nil {
		return nil, err
	}
	if err := validateBranding(branding); err != nil {
		return nil, err
	}

	holder := &BrandingHolder{}
	holder.current.Store(branding)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Branding
		if err := v.UnmarshalKey("branding", &updated); err != nil {
			log.Printf("[branding] reload failed: %v", err)
			return
		}
		if err := validateBranding(updated); err != nil {
			log.Printf("[branding] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[branding] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Current returns the active branding snapshot.
func (h *BrandingHolder) Current() Branding {
	if v, ok := h.current.Load().(Branding); ok {
		return v
	}
	return DefaultBranding()
}

func validateBranding(b Branding) error {
	if strings.TrimSpace(b.AgencyName) == "" {
		return errors.New("branding: agencyName is required")
	}
	return nil
}
