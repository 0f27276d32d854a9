// Package refresh periodically pulls the upstream collections into the
// local snapshot store and announces new snapshots over AMQP.
package refresh

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"payvue/internal/amqp"
	"payvue/internal/core"
	"payvue/internal/log"
	"payvue/internal/storage"
)

// Fetcher retrieves the three collections from the upstream API.
type Fetcher interface {
	FetchIncomes(ctx context.Context) ([]core.Income, error)
	FetchDebts(ctx context.Context) ([]core.Debt, error)
	FetchPayments(ctx context.Context) ([]core.Payment, error)
}

// SnapshotWriter persists a complete snapshot and returns its new version.
type SnapshotWriter interface {
	ReplaceSnapshot(ctx context.Context, snap storage.Snapshot) (int64, error)
}

// Publisher announces a stored snapshot. Optional; a nil publisher is a no-op.
type Publisher interface {
	PublishSnapshotRefreshed(ctx context.Context, msg *amqp.SnapshotRefreshedMessage) error
}

// Refresher runs the fetch-store-publish cycle on a fixed interval.
type Refresher struct {
	fetcher   Fetcher
	writer    SnapshotWriter
	publisher Publisher
	interval  time.Duration
	logger    *log.Logger
}

func New(fetcher Fetcher, writer SnapshotWriter, publisher Publisher, interval time.Duration, logger *log.Logger) *Refresher {
	return &Refresher{
		fetcher:   fetcher,
		writer:    writer,
		publisher: publisher,
		interval:  interval,
		logger:    logger.WithComponent(log.ComponentRefresher),
	}
}

// Run refreshes once immediately, then on every tick until the context is
// cancelled. A failed cycle is logged and retried on the next tick; the
// previous snapshot stays in place.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.RefreshOnce(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Initial refresh failed", log.FieldError, err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Refresher stopping", log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "Refresh cycle failed", log.FieldError, err)
			}
		}
	}
}

// RefreshOnce fetches the three collections concurrently, stores them as
// one snapshot, and publishes a notification.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	start := time.Now()

	var snap storage.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		incomes, err := r.fetcher.FetchIncomes(gctx)
		if err != nil {
			return err
		}
		snap.Incomes = incomes
		return nil
	})
	g.Go(func() error {
		debts, err := r.fetcher.FetchDebts(gctx)
		if err != nil {
			return err
		}
		snap.Debts = debts
		return nil
	})
	g.Go(func() error {
		payments, err := r.fetcher.FetchPayments(gctx)
		if err != nil {
			return err
		}
		snap.Payments = payments
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	version, err := r.writer.ReplaceSnapshot(ctx, snap)
	if err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Snapshot refreshed",
		log.FieldSnapshotVersion, version,
		log.FieldIncomeCount, len(snap.Incomes),
		log.FieldDebtCount, len(snap.Debts),
		log.FieldPaymentCount, len(snap.Payments),
		log.FieldDuration, time.Since(start).Milliseconds())

	if r.publisher != nil {
		msg := amqp.NewSnapshotRefreshedMessage(version, len(snap.Incomes), len(snap.Debts), len(snap.Payments))
		if err := r.publisher.PublishSnapshotRefreshed(ctx, msg); err != nil {
			// The snapshot is already stored; readers fall back to version polling
			r.logger.WarnContext(ctx, "Failed to publish refresh notification",
				log.FieldError, err,
				log.FieldSnapshotVersion, version)
		}
	}

	return nil
}
