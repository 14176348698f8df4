package maintenance

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Scheduler triggers the daily scans at fixed local times: the parts
// expiration check at 08:00 and the maintenance check at 09:00.
type Scheduler struct {
	Checker              *Checker
	PartsCheckHour       int
	MaintenanceCheckHour int

	runMu sync.Mutex // a run must finish before the next one starts
	stop  chan struct{}
	wg    sync.WaitGroup
}

// NewScheduler creates a scheduler with the default check times.
func NewScheduler(checker *Checker) *Scheduler {
	return &Scheduler{
		Checker:              checker,
		PartsCheckHour:       8,
		MaintenanceCheckHour: 9,
		stop:                 make(chan struct{}),
	}
}

// NextRun returns the next occurrence of hour:00 strictly after now.
func NextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start launches the scan loops in the background.
func (s *Scheduler) Start() {
	s.wg.Add(2)
	go s.loop(s.PartsCheckHour, s.RunPartsCheckNow)
	go s.loop(s.MaintenanceCheckHour, s.RunMaintenanceCheckNow)
	log.Infof("Scheduler started: parts check at %02d:00, maintenance check at %02d:00",
		s.PartsCheckHour, s.MaintenanceCheckHour)
}

// Stop terminates the scan loops and waits for them to exit.
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) loop(hour int, run func()) {
	defer s.wg.Done()
	for {
		timer := time.NewTimer(time.Until(NextRun(time.Now(), hour)))
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			run()
		}
	}
}

// RunMaintenanceCheckNow runs the vehicle scan immediately. Also used by
// the manual trigger endpoint.
func (s *Scheduler) RunMaintenanceCheckNow() {
	if !s.runMu.TryLock() {
		log.Warn("Previous run still in progress, skipping maintenance check")
		return
	}
	defer s.runMu.Unlock()

	log.Info("Starting maintenance check...")
	if err := s.Checker.CheckMaintenanceDue(context.Background()); err != nil {
		log.WithError(err).Error("Maintenance check aborted")
		return
	}
	log.Info("Maintenance check completed")
}

// RunPartsCheckNow runs the parts expiration scan immediately.
func (s *Scheduler) RunPartsCheckNow() {
	if !s.runMu.TryLock() {
		log.Warn("Previous run still in progress, skipping parts expiration check")
		return
	}
	defer s.runMu.Unlock()

	log.Info("Starting parts expiration check...")
	if err := s.Checker.CheckPartsExpiration(context.Background()); err != nil {
		log.WithError(err).Error("Parts expiration check aborted")
		return
	}
	log.Info("Parts expiration check completed")
}
