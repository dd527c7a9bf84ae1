package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const defaultJobTimeout = 30 * time.Second

// Task is a unit of scheduled work. Its context carries the job timeout.
type Task func(ctx context.Context) error

// Scheduler runs tasks on standard 5-field cron specs, evaluated in a fixed
// location so "55 23 * * *" means five to midnight on the user's calendar.
type Scheduler struct {
	cron       *cron.Cron
	jobTimeout time.Duration
}

func New(loc *time.Location, jobTimeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if jobTimeout <= 0 {
		jobTimeout = defaultJobTimeout
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		jobTimeout: jobTimeout,
	}
}

func (s *Scheduler) Add(name, spec string, task Task) error {
	entryID, err := s.cron.AddFunc(spec, s.wrapTask(name, task))
	if err != nil {
		return fmt.Errorf("schedule %s [%s]: %w", name, spec, err)
	}
	log.Debugf("scheduler: job [%s] scheduled on [%s], entry %d", name, spec, entryID)
	return nil
}

func (s *Scheduler) wrapTask(name string, task Task) func() {
	return func() {
		startTime := time.Now()
		log.Tracef("scheduler: starting job [%s]", name)

		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		if err := task(ctx); err != nil {
			log.Errorf("scheduler: job [%s] failed: %s", name, err)
			return
		}
		log.Debugf("scheduler: job [%s] done in %v", name, time.Since(startTime))
	}
}

// Jobs returns the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Debugf("scheduler started with %d job(s)", s.Jobs())
}

// Stop stops scheduling new runs. The returned context is done when running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
