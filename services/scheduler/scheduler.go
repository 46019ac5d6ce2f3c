// Package scheduler runs the periodic background jobs: the random match
// arranging pass and the presence resync.
package scheduler

import (
	"Connect4/logger"
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	sched gocron.Scheduler
}

func New() (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	return &Scheduler{sched: sched}, nil
}

// Every runs task each interval once started. A run still going when the next
// one is due pushes the next one to the following tick, so runs of the same
// job never overlap. Each run gets a context bounded by ten intervals.
func (s *Scheduler) Every(name string, interval time.Duration, task func(ctx context.Context)) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval*10)
			defer cancel()
			task(ctx)
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	logger.Infof("[SCHEDULER] %s every %s", name, interval)
	return nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
