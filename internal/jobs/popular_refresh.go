package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher recomputes the popular deals ranking.
type Refresher interface {
	RefreshPopular(ctx context.Context) error
}

const refreshTimeout = 30 * time.Second

// Scheduler runs the popular refresh on a cron schedule such as "@every 1m".
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	schedule  string
}

func NewScheduler(schedule string, r Refresher) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		refresher: r,
		schedule:  schedule,
	}
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, fmt.Errorf("add popular refresh %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs a single refresh and logs failures.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if err := s.refresher.RefreshPopular(ctx); err != nil {
		log.Printf("[POPULAR-REFRESH] error: %v", err)
	}
}

// Start warms the ranking once, then hands over to the cron schedule.
func (s *Scheduler) Start() {
	s.RunOnce()
	s.cron.Start()
	log.Printf("[POPULAR-REFRESH] started schedule=%q", s.schedule)
}

// Stop stops the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
