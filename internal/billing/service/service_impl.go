package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/digimanager/digimanager/internal/billing/domain"
	"github.com/digimanager/digimanager/internal/billing/repository"
	clientrepo "github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/clock"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	invoicerepo "github.com/digimanager/digimanager/internal/invoice/repository"
	"github.com/digimanager/digimanager/internal/observability/metrics"
	reminderdomain "github.com/digimanager/digimanager/internal/reminder/domain"
	siterepo "github.com/digimanager/digimanager/internal/siteproject/repository"
	pkgdb "github.com/digimanager/digimanager/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Metrics     *metrics.Metrics
	Numberer    domain.InvoiceNumberer
	Repo        repository.Repository
	ClientRepo  clientrepo.Repository
	SiteRepo    siterepo.Repository
	InvoiceRepo invoicerepo.Repository
	Reminder    reminderdomain.Recomputer
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	metrics     *metrics.Metrics
	numberer    domain.InvoiceNumberer
	repo        repository.Repository
	clientRepo  clientrepo.Repository
	siteRepo    siterepo.Repository
	invoiceRepo invoicerepo.Repository
	reminder    reminderdomain.Recomputer
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("billing.service"),
		clock:       p.Clock,
		metrics:     p.Metrics,
		numberer:    p.Numberer,
		repo:        p.Repo,
		clientRepo:  p.ClientRepo,
		siteRepo:    p.SiteRepo,
		invoiceRepo: p.InvoiceRepo,
		reminder:    p.Reminder,
	}
}

// snowflakeNumberer issues invoice-number suffixes from the shared node.
type snowflakeNumberer struct {
	node *snowflake.Node
}

func NewNumberer(node *snowflake.Node) domain.InvoiceNumberer {
	return snowflakeNumberer{node: node}
}

func (n snowflakeNumberer) Next() string { return n.node.Generate().String() }

func (s *Service) MarkMonthPaid(ctx context.Context, kind domain.Kind, subscriberID, month string) (*domain.MonthlyPayment, error) {
	sub, err := s.lookup(ctx, kind, subscriberID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		// Unknown subscribers are absorbed rather than surfaced.
		s.log.Debug("mark paid for unknown subscriber",
			zap.String("kind", string(kind)),
			zap.String("subscriber_id", subscriberID),
			zap.String("month", month),
		)
		return nil, nil
	}

	var (
		entry  *domain.MonthlyPayment
		minted bool
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindEntry(ctx, tx, kind, subscriberID, month)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsPaid {
			entry = existing
			return nil
		}

		now := s.clock.Now()
		today := clock.Midnight(now)
		amount := sub.Amount()

		// The prefixed number is the invoice id. History rows point at it
		// directly, so reverting a month can delete by id alone.
		number := sub.InvoicePrefix() + "-" + s.numberer.Next()
		invoice := invoicedomain.Invoice{
			ID:            number,
			InvoiceNumber: number,
			ClientID:      sub.ClientID(),
			Items:         sub.LineItems(month),
			Amount:        amount,
			Currency:      sub.Currency(),
			IsPaid:        true,
			IssueDate:     today,
			DueDate:       today,
			PaidDate:      &today,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.invoiceRepo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}

		entry = &domain.MonthlyPayment{
			Kind:         kind,
			SubscriberID: subscriberID,
			Month:        month,
			IsPaid:       true,
			PaidDate:     &today,
			Amount:       amount,
			Currency:     sub.Currency(),
			InvoiceID:    invoice.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Upsert(ctx, tx, entry); err != nil {
			return err
		}
		minted = true
		return nil
	})
	if err != nil {
		// Two racing marks for the same month: the loser finds the
		// winner's row and returns it, same as the idempotent path.
		if pkgdb.IsDuplicateKeyErr(err) {
			if existing, ferr := s.repo.FindEntry(ctx, s.db, kind, subscriberID, month); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	if minted {
		s.metrics.RecordInvoiceMinted(ctx, string(kind))
		s.reminder.Recompute(ctx)
	}
	return entry, nil
}

func (s *Service) RevertMonthPayment(ctx context.Context, kind domain.Kind, subscriberID, month string) error {
	if !domain.ValidKind(kind) {
		return domain.ErrUnknownKind
	}

	var reverted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.repo.FindEntry(ctx, tx, kind, subscriberID, month)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}

		if entry.InvoiceID != "" {
			invoice, err := s.invoiceRepo.FindByID(ctx, tx, entry.InvoiceID)
			if err != nil {
				return err
			}
			if invoice == nil {
				// Someone deleted the invoice out from under the ledger.
				// The revert still completes.
				s.log.Debug("ledger entry references missing invoice",
					zap.String("invoice_id", entry.InvoiceID),
					zap.String("subscriber_id", subscriberID),
					zap.String("month", month),
				)
			} else if err := s.invoiceRepo.Delete(ctx, tx, invoice.ID); err != nil {
				return err
			}
		}

		if err := s.repo.DeleteEntry(ctx, tx, kind, subscriberID, month); err != nil {
			return err
		}
		reverted = true
		return nil
	})
	if err != nil {
		return err
	}

	if reverted {
		s.metrics.RecordPaymentReverted(ctx, string(kind))
		s.reminder.Recompute(ctx)
	}
	return nil
}

func (s *Service) History(ctx context.Context, kind domain.Kind, subscriberID string) ([]domain.MonthlyPayment, error) {
	if !domain.ValidKind(kind) {
		return nil, domain.ErrUnknownKind
	}
	return s.repo.ListBySubscriber(ctx, s.db, kind, subscriberID)
}

func (s *Service) lookup(ctx context.Context, kind domain.Kind, subscriberID string) (domain.Subscription, error) {
	switch kind {
	case domain.KindClient:
		client, err := s.clientRepo.FindByID(ctx, s.db, subscriberID)
		if err != nil || client == nil {
			return nil, err
		}
		return clientSubscription{client: *client}, nil
	case domain.KindSite:
		site, err := s.siteRepo.FindByID(ctx, s.db, subscriberID)
		if err != nil || site == nil {
			return nil, err
		}
		return siteSubscription{site: *site}, nil
	default:
		return nil, domain.ErrUnknownKind
	}
}
