package service

import (
	"fmt"

	"github.com/digimanager/digimanager/internal/billing/domain"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	"github.com/digimanager/digimanager/internal/currency"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/shopspring/decimal"
)

// clientSubscription bills a monthly retainer client.
type clientSubscription struct {
	client clientdomain.Client
}

func (s clientSubscription) SubscriberID() string    { return s.client.ID }
func (s clientSubscription) ClientID() string        { return s.client.ID }
func (s clientSubscription) Kind() domain.Kind       { return domain.KindClient }
func (s clientSubscription) Currency() currency.Code { return s.client.Currency }
func (s clientSubscription) InvoicePrefix() string   { return "INV-AD" }

func (s clientSubscription) Amount() decimal.Decimal { return s.client.MonthlyFee }

func (s clientSubscription) LineItems(month string) []invoicedomain.LineItem {
	return []invoicedomain.LineItem{
		{
			ID:          "li-1",
			Description: fmt.Sprintf("Monthly retainer for %s", month),
			Quantity:    1,
			UnitPrice:   s.client.MonthlyFee,
			Total:       s.client.MonthlyFee,
		},
	}
}

// siteSubscription bills a hosted site: the agency fee plus any
// third-party cost passed through as its own line.
type siteSubscription struct {
	site sitedomain.SiteProject
}

func (s siteSubscription) SubscriberID() string    { return s.site.ID }
func (s siteSubscription) ClientID() string        { return s.site.ClientID }
func (s siteSubscription) Kind() domain.Kind       { return domain.KindSite }
func (s siteSubscription) Currency() currency.Code { return s.site.Currency }
func (s siteSubscription) InvoicePrefix() string   { return "INV-SITE" }

func (s siteSubscription) Amount() decimal.Decimal {
	return s.site.MonthlyFee.Add(s.site.ThirdPartyCost)
}

func (s siteSubscription) LineItems(month string) []invoicedomain.LineItem {
	service := s.site.ServiceName
	if service == "" {
		service = "Hosting"
	}
	// Both lines are always present, even at zero third-party cost.
	return []invoicedomain.LineItem{
		{
			ID:          "li-1",
			Description: fmt.Sprintf("%s for %s (%s)", service, s.site.Domain, month),
			Quantity:    1,
			UnitPrice:   s.site.MonthlyFee,
			Total:       s.site.MonthlyFee,
		},
		{
			ID:          "li-2",
			Description: fmt.Sprintf("Third-party costs for %s (%s)", s.site.Domain, month),
			Quantity:    1,
			UnitPrice:   s.site.ThirdPartyCost,
			Total:       s.site.ThirdPartyCost,
		},
	}
}
