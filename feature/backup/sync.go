package backup

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"backup-manager/feature/backup/models"
	"backup-manager/feature/backup/reconcile"
	"backup-manager/feature/backup/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultSyncTimeout bounds a full sync run when no timeout is configured.
const DefaultSyncTimeout = 5 * time.Minute

// Summary reports how many source records were successfully reconciled
// (created or updated) per entity type. Attempted-but-failed records are
// surfaced only via logs and a lower count, never via an error.
type Summary struct {
	Builds    int `json:"builds"`
	Orders    int `json:"orders"`
	Users     int `json:"users"`
	Inquiries int `json:"inquiries"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d builds, %d orders, %d users, %d inquiries",
		s.Builds, s.Orders, s.Users, s.Inquiries)
}

// Coordinator orchestrates reconciliation across all entity types in
// dependency order. User profiles are reconciled first because orders may
// need to synthesize a placeholder profile; builds, orders, and inquiries
// are mutually independent and run concurrently after that barrier.
type Coordinator struct {
	source   store.Source
	target   store.Target
	archiver *Archiver
	logger   *zap.Logger
	timeout  time.Duration

	// Overlapping manual and scheduled invocations coalesce into one run
	// rather than racing writes to the replica.
	sf singleflight.Group
}

// NewCoordinator creates a sync coordinator. The archiver may be nil.
func NewCoordinator(source store.Source, target store.Target, archiver *Archiver, timeout time.Duration, logger *zap.Logger) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	return &Coordinator{
		source:   source,
		target:   target,
		archiver: archiver,
		logger:   logger,
		timeout:  timeout,
	}
}

// RunFullSync reconciles every entity type from the primary store into the
// replica. It fails only when a store is unreachable; individual record
// failures are logged and reflected in lower counts. Entity types completed
// before a failure keep their counts (no rollback).
func (c *Coordinator) RunFullSync(ctx context.Context) (Summary, error) {
	v, err, shared := c.sf.Do("full-sync", func() (any, error) {
		return c.run(ctx)
	})
	if shared {
		c.logger.Info("Coalesced overlapping sync invocation into the in-flight run")
	}
	summary, _ := v.(Summary)
	return summary, err
}

func (c *Coordinator) run(parent context.Context) (Summary, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	start := time.Now()
	c.logger.Info("Starting full sync")

	var summary Summary
	var users atomic.Int64

	// Phase barrier: user profiles must be observably committed before the
	// order loop starts reading user-existence state.
	if err := c.syncUsers(ctx, &users); err != nil {
		summary.Users = int(users.Load())
		return summary, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.Builds, err = c.syncBuilds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Orders, err = c.syncOrders(gctx, &users)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Inquiries, err = c.syncInquiries(gctx)
		return err
	})
	err := g.Wait()
	summary.Users = int(users.Load())
	if err != nil {
		return summary, err
	}

	elapsed := time.Since(start)
	c.logger.Info("Full sync completed",
		zap.Int("builds", summary.Builds),
		zap.Int("orders", summary.Orders),
		zap.Int("users", summary.Users),
		zap.Int("inquiries", summary.Inquiries),
		zap.Duration("elapsed", elapsed),
	)

	c.archiver.ArchiveRun(ctx, summary, elapsed)

	return summary, nil
}

func (c *Coordinator) syncUsers(ctx context.Context, synced *atomic.Int64) error {
	records, err := c.source.Users(ctx)
	if err != nil {
		return err
	}
	acc := c.target.UserTarget()
	for i := range records {
		if ok := c.reconcileRecord(ctx, &records[i], acc, nil); ok {
			synced.Add(1)
		} else if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

func (c *Coordinator) syncBuilds(ctx context.Context) (int, error) {
	records, err := c.source.Builds(ctx)
	if err != nil {
		return 0, err
	}
	acc := c.target.BuildTarget()
	count := 0
	for i := range records {
		if ok := c.reconcileRecord(ctx, &records[i], acc, nil); ok {
			count++
		} else if ctx.Err() != nil {
			return count, ctx.Err()
		}
	}
	return count, nil
}

func (c *Coordinator) syncOrders(ctx context.Context, users *atomic.Int64) (int, error) {
	records, err := c.source.Orders(ctx)
	if err != nil {
		return 0, err
	}
	acc := c.target.OrderTarget()
	count := 0
	for i := range records {
		order := &records[i]
		pre := func(ctx context.Context) error {
			return c.ensureOrderUser(ctx, order, users)
		}
		if ok := c.reconcileRecord(ctx, order, acc, pre); ok {
			count++
		} else if ctx.Err() != nil {
			return count, ctx.Err()
		}
	}
	return count, nil
}

func (c *Coordinator) syncInquiries(ctx context.Context) (int, error) {
	records, err := c.source.Inquiries(ctx)
	if err != nil {
		return 0, err
	}
	acc := c.target.InquiryTarget()
	count := 0
	for i := range records {
		if ok := c.reconcileRecord(ctx, &records[i], acc, nil); ok {
			count++
		} else if ctx.Err() != nil {
			return count, ctx.Err()
		}
	}
	return count, nil
}

// reconcileRecord reconciles one record and contains its failure: a bad
// record is logged with its entity type and identity, then skipped, so one
// malformed record never aborts a multi-thousand-record sync.
func (c *Coordinator) reconcileRecord(ctx context.Context, rec reconcile.Record, acc reconcile.Accessor, pre func(context.Context) error) bool {
	if pre != nil {
		if err := pre(ctx); err != nil {
			c.logger.Error("Record prerequisite failed",
				zap.String("entity", rec.EntityType()),
				zap.String("identity", rec.Identity()),
				zap.Error(err),
			)
			return false
		}
	}
	outcome, err := reconcile.One(ctx, rec, acc)
	if err != nil {
		c.logger.Error("Record reconciliation failed",
			zap.String("entity", rec.EntityType()),
			zap.String("identity", rec.Identity()),
			zap.Error(err),
		)
		return false
	}
	if outcome == reconcile.OutcomeDuplicate {
		c.logger.Warn("Natural key collision, record written under disambiguated key",
			zap.String("entity", rec.EntityType()),
			zap.String("identity", rec.Identity()),
			zap.String("natural_key", rec.NaturalKey()),
		)
	}
	return true
}

// ensureOrderUser makes sure the order's referenced user profile exists in
// the replica before the order is written, synthesizing a minimal placeholder
// when the primary store has none. reconcile.One re-checks existence right
// before creating, which guards against two orders for the same unknown user
// in one run.
func (c *Coordinator) ensureOrderUser(ctx context.Context, order *models.Order, users *atomic.Int64) error {
	acc := c.target.UserTarget()
	exists, err := acc.ExistsByIdentity(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("user existence check for order %q: %w", order.Identity(), err)
	}
	if exists {
		return nil
	}

	profile := models.PlaceholderProfile(order)
	outcome, err := reconcile.One(ctx, &profile, acc)
	if err != nil {
		return fmt.Errorf("placeholder profile for user %q: %w", order.UserID, err)
	}
	if outcome == reconcile.OutcomeCreated {
		c.logger.Warn("Synthesized placeholder profile for unknown user",
			zap.String("user_id", order.UserID),
			zap.String("order", order.Identity()),
		)
		users.Add(1)
	}
	return nil
}
