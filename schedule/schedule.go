// Package schedule runs named periodic jobs on a cron scheduler.
package schedule

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler owns a cron instance and tracks jobs by name.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger

	mu   sync.Mutex
	jobs map[string]cron.EntryID
}

func New(logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Every registers fn under name using a cron spec such as "@every 5m" or
// "0 9 * * *". Registering an existing name replaces the old job.
func (s *Scheduler) Every(name, spec string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, func() {
		s.logger.Printf("running scheduled job %s", name)
		fn()
	})
	if err != nil {
		return fmt.Errorf("error scheduling job %s: %w", name, err)
	}
	if old, ok := s.jobs[name]; ok {
		s.cron.Remove(old)
	}
	s.jobs[name] = id
	return nil
}

// Remove drops the named job. Unknown names are ignored.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.jobs[name]; ok {
		s.cron.Remove(id)
		delete(s.jobs, name)
	}
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Printf("scheduler started with %d job(s)", s.Jobs())
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Println("scheduler stopped")
}
