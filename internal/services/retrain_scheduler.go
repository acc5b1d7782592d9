package services

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// UserLister yields the users the nightly sweep considers.
type UserLister interface {
	ListActiveIDs() ([]uint, error)
}

// RetrainScheduler runs the retrain-due sweep on a cron schedule.
type RetrainScheduler struct {
	users    UserLister
	retrain  *RetrainService
	schedule string
	logger   zerolog.Logger
	cron     *cron.Cron
}

func NewRetrainScheduler(users UserLister, retrain *RetrainService, schedule string, logger zerolog.Logger) *RetrainScheduler {
	return &RetrainScheduler{
		users:    users,
		retrain:  retrain,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the sweep and runs the cron loop until the context is
// cancelled. It blocks on running jobs during shutdown.
func (scheduler *RetrainScheduler) Start(ctx context.Context) error {
	runner := cron.New()
	if _, err := runner.AddFunc(scheduler.schedule, scheduler.Sweep); err != nil {
		return err
	}
	scheduler.cron = runner
	runner.Start()

	go func() {
		<-ctx.Done()
		stopped := runner.Stop()
		<-stopped.Done()
	}()
	return nil
}

// Sweep retrains due models for every active user. Per-user errors are
// logged and skipped so one bad account cannot stall the batch.
func (scheduler *RetrainScheduler) Sweep() {
	userIDs, err := scheduler.users.ListActiveIDs()
	if err != nil {
		scheduler.logger.Error().Err(err).Msg("retrain sweep: listing users failed")
		return
	}

	total := 0
	for _, userID := range userIDs {
		trained, err := scheduler.retrain.RetrainDue(userID)
		if err != nil {
			scheduler.logger.Error().Err(err).Uint("user_id", userID).Msg("retrain sweep: user failed")
			continue
		}
		total += trained
	}
	scheduler.logger.Info().
		Int("users", len(userIDs)).
		Int("models_trained", total).
		Msg("retrain sweep finished")
}
