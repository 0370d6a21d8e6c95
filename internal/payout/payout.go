// Package payout runs the scheduled payouts for funded savings plans.
package payout

import (
	"context"
	"errors"

	"github.com/ajo-zero/backend/internal/models"
	"github.com/ajo-zero/backend/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler executes due payouts on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
}

// NewScheduler returns a Scheduler that runs due payouts on the given
// cron schedule.
func NewScheduler(schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(stdLogger{})

	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger))),
		schedule: schedule,
	}
}

// Start registers the payout job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		RunDuePayouts(types.Today())
	})
	if err != nil {
		return err
	}

	log.Info().Str("schedule", s.schedule).Msg("Starting payout scheduler")
	s.cron.Start()

	return nil
}

// Stop stops the scheduler. The returned context is done when all
// running jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunDuePayouts executes one payout for every plan that is due on the
// given day. A plan that fails does not stop the payouts of other plans.
//
// Executing at most one payout per plan and run keeps a plan that was
// inactive for several periods from being drained in a single run.
func RunDuePayouts(today types.Date) {
	plans, err := models.DuePlans(today)
	if err != nil {
		log.Error().Msgf("finding due plans failed: %v", err)
		return
	}

	for _, plan := range plans {
		transaction, err := models.RealizePayout(plan.ID)
		if err != nil {
			// Another writer may have exhausted or drained the plan
			// between the query and the payout.
			if errors.Is(err, models.ErrPlanExhausted) || errors.Is(err, models.ErrInsufficientBalance) {
				log.Warn().
					Str("plan", plan.Code).
					Msgf("skipping payout: %v", err)
				continue
			}

			log.Error().
				Str("plan", plan.Code).
				Msgf("payout failed: %v", err)
			continue
		}

		log.Info().
			Str("plan", plan.Code).
			Str("amount", transaction.Amount.String()).
			Str("reference", transaction.Reference).
			Msg("Payout executed")
	}
}

// stdLogger adapts zerolog to the Printf style logger the cron recovery
// middleware expects.
type stdLogger struct{}

func (stdLogger) Printf(format string, v ...interface{}) {
	log.WithLevel(zerolog.ErrorLevel).Msgf(format, v...)
}
