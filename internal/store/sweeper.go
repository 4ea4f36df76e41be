package store

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Sweeper runs the registry eviction sweep on a fixed interval.
type Sweeper struct {
	scheduler gocron.Scheduler
	log       zerolog.Logger
}

// NewSweeper schedules periodic sweeps of the registry.
func NewSweeper(r *Registry, interval time.Duration, log zerolog.Logger) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n := r.Sweep(time.Now()); n > 0 {
				log.Info().Int("evicted", n).Msg("session sweep")
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Sweeper{scheduler: scheduler, log: log}, nil
}

// Start begins sweeping in the background.
func (s *Sweeper) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down.
func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}
