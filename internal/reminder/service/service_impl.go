package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	billingrepo "github.com/digimanager/digimanager/internal/billing/repository"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	invoicerepo "github.com/digimanager/digimanager/internal/invoice/repository"
	"github.com/digimanager/digimanager/internal/observability/metrics"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	orderrepo "github.com/digimanager/digimanager/internal/order/repository"
	"github.com/digimanager/digimanager/internal/reminder/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dueSoonWindowDays is the look-ahead for "due soon" reminders.
const dueSoonWindowDays = 3

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Metrics     *metrics.Metrics
	InvoiceRepo invoicerepo.Repository
	OrderRepo   orderrepo.Repository
	ClientRepo  clientrepo.Repository
	BillingRepo billingrepo.Repository
}

// Service regenerates the notification list wholesale from invoices,
// orders and clients. The list lives in memory only; deterministic ids
// let read-state survive each regeneration.
type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	metrics     *metrics.Metrics
	invoiceRepo invoicerepo.Repository
	orderRepo   orderrepo.Repository
	clientRepo  clientrepo.Repository
	billingRepo billingrepo.Repository

	mu            sync.RWMutex
	notifications []domain.Notification
}

func New(p Params) *Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("reminder.service"),
		clock:       p.Clock,
		metrics:     p.Metrics,
		invoiceRepo: p.InvoiceRepo,
		orderRepo:   p.OrderRepo,
		clientRepo:  p.ClientRepo,
		billingRepo: p.BillingRepo,
	}
}

func AsService(s *Service) domain.Service { return s }

func AsRecomputer(s *Service) domain.Recomputer { return s }

// Recompute rebuilds the derived list. It runs synchronously after every
// relevant mutation; a failed read keeps the previous list in place.
func (s *Service) Recompute(ctx context.Context) {
	today := clock.Midnight(s.clock.Now())
	todayStr := today.Format(dateLayout)

	fresh, err := s.generate(ctx, today, todayStr)
	if err != nil {
		s.log.Warn("reminder recomputation failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	previous := make(map[string]domain.Notification, len(s.notifications))
	for _, n := range s.notifications {
		previous[n.ID] = n
	}

	merged := make([]domain.Notification, 0, len(fresh)+4)
	// Manually created notifications survive regeneration untouched.
	for _, n := range s.notifications {
		if !domain.Derived(n.ID) {
			merged = append(merged, n)
		}
	}
	for _, n := range fresh {
		if prior, ok := previous[n.ID]; ok {
			n.Read = prior.Read
		}
		merged = append(merged, n)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	s.notifications = merged
	total := len(merged)
	s.mu.Unlock()

	s.metrics.RecordReminderRun(ctx, total)
}

func (s *Service) generate(ctx context.Context, today time.Time, todayStr string) ([]domain.Notification, error) {
	var out []domain.Notification

	unpaid, err := s.invoiceRepo.ListUnpaid(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for _, invoice := range unpaid {
		days := diffDays(clock.Midnight(invoice.DueDate), today)
		switch {
		case days < 0:
			out = append(out, domain.Notification{
				ID:      domain.PrefixInvoiceOverdue + invoice.ID,
				Title:   "Invoice overdue",
				Message: fmt.Sprintf("Invoice %s is overdue by %d days", invoice.InvoiceNumber, -days),
				Date:    todayStr,
				Type:    domain.TypeError,
			})
		case days <= dueSoonWindowDays:
			out = append(out, domain.Notification{
				ID:      domain.PrefixInvoiceDueSoon + invoice.ID,
				Title:   "Invoice due soon",
				Message: fmt.Sprintf("Invoice %s is due %s", invoice.InvoiceNumber, dueWording(days)),
				Date:    todayStr,
				Type:    domain.TypeWarning,
			})
		}
	}

	activeOrders, err := s.orderRepo.CountByStatus(ctx, s.db, orderdomain.StatusActive)
	if err != nil {
		return nil, err
	}
	if activeOrders > 0 {
		// Keyed by date only, so the count can change under an already-read
		// notification until the day rolls over.
		out = append(out, domain.Notification{
			ID:      domain.PrefixActiveOrders + "orders-" + todayStr,
			Title:   "Active campaigns",
			Message: fmt.Sprintf("You have %d active campaigns running", activeOrders),
			Date:    todayStr,
			Type:    domain.TypeInfo,
		})
	}

	subs, err := s.subscriptionsDue(ctx, today, todayStr)
	if err != nil {
		return nil, err
	}
	out = append(out, subs...)

	return out, nil
}

func (s *Service) subscriptionsDue(ctx context.Context, today time.Time, todayStr string) ([]domain.Notification, error) {
	clients, err := s.clientRepo.ListMonthly(ctx, s.db)
	if err != nil {
		return nil, err
	}
	paidRows, err := s.billingRepo.ListPaid(ctx, s.db, billingdomain.KindClient)
	if err != nil {
		return nil, err
	}
	paid := make(map[string]bool, len(paidRows))
	for _, row := range paidRows {
		paid[row.SubscriberID+"|"+row.Month] = true
	}

	var out []domain.Notification
	for _, client := range clients {
		if client.PaymentDay < 1 {
			continue
		}
		due := nextDueDate(today, client.PaymentDay)
		days := diffDays(due, today)
		if days < 0 || days > dueSoonWindowDays {
			continue
		}
		month := due.Format("2006-01")
		if paid[client.ID+"|"+month] {
			continue
		}
		out = append(out, domain.Notification{
			ID:      domain.PrefixSubscriptionDue + client.ID + "-" + month,
			Title:   "Subscription payment due",
			Message: fmt.Sprintf("Monthly payment for %s is due %s", client.CompanyName, dueWording(days)),
			Date:    todayStr,
			Type:    domain.TypeWarning,
		})
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Service) MarkRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}

// diffDays counts whole days from today to due, rounding up so a partial
// day still counts as a day away.
func diffDays(due, today time.Time) int {
	return int(math.Ceil(due.Sub(today).Hours() / 24))
}

// nextDueDate finds the next occurrence of the due day-of-month at or
// after today. Days past the month's length roll into the next month.
func nextDueDate(today time.Time, day int) time.Time {
	due := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, today.Location())
	if due.Before(today) {
		due = time.Date(today.Year(), today.Month()+1, day, 0, 0, 0, 0, today.Location())
	}
	return due
}

func dueWording(days int) string {
	if days == 0 {
		return "today"
	}
	if days == 1 {
		return "in 1 day"
	}
	return fmt.Sprintf("in %d days", days)
}
