package service

import (
	"context"
	"time"

	"invoice-wallet-engine/internal/core/ports"
	"invoice-wallet-engine/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Reconciler runs the background jobs that keep stored state honest: the
// wallet TTL sweeper and the reserve ratio refresh. Both are idempotent, so
// an overlapping or missed run is harmless.
type Reconciler struct {
	walletRepo ports.WalletRepository
	reserves   ports.ReserveLedger
	cron       *cron.Cron
	log        zerolog.Logger
	now        func() time.Time
}

// NewReconciler creates a reconciler with its own cron scheduler.
func NewReconciler(walletRepo ports.WalletRepository, reserves ports.ReserveLedger, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		walletRepo: walletRepo,
		reserves:   reserves,
		cron:       cron.New(),
		log:        log,
		now:        time.Now,
	}
}

// Start registers the jobs on the given schedule and starts the scheduler.
func (r *Reconciler) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		r.SweepExpired(ctx)
		r.RefreshReserveMetrics(ctx)
	}); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info().Str("schedule", schedule).Msg("reconciler started")
	return nil
}

// Stop halts the scheduler and waits for in-flight jobs.
func (r *Reconciler) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info().Msg("reconciler stopped")
}

// SweepExpired transitions every ACTIVE ephemeral wallet past its deadline to
// EXPIRED. The update is guarded on status, so racing a lazy Touch on the
// same wallet converges on one transition.
func (r *Reconciler) SweepExpired(ctx context.Context) {
	n, err := r.walletRepo.ExpireDue(ctx, r.now().UTC())
	if err != nil {
		r.log.Error().Err(err).Msg("wallet expiry sweep failed")
		return
	}
	if n > 0 {
		r.log.Info().Int64("expired", n).Msg("swept expired wallets")
	}
}

// RefreshReserveMetrics re-exports the backing ratio gauge for every tracked
// currency, so the metric stays current even on currencies with no recent
// mint traffic.
func (r *Reconciler) RefreshReserveMetrics(ctx context.Context) {
	accounts, err := r.reserves.List(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("reserve metrics refresh failed")
		return
	}
	for _, acct := range accounts {
		metrics.SetReserveRatio(acct.Currency, acct.Ratio())
	}
}
