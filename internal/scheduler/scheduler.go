package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/nimbusview/weather-backend/internal/weather"
)

// Scheduler periodically refreshes the snapshot for a configured home
// location so the cache stays warm between user-initiated fetches. Job
// failures are only logged: the orchestrator's cache semantics already
// decide what gets served.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	lat, lon  float64
	interval  time.Duration
}

// New creates a Scheduler refreshing the given coordinates.
func New(lat, lon float64, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		lat:       lat,
		lon:       lon,
		interval:  interval,
	}
}

// Start schedules the periodic refresh and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 20
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := s.service.FetchSnapshot(ctx, s.lat, s.lon)
		if err != nil {
			log.Printf("scheduler: refresh failed for %.4f,%.4f: %v", s.lat, s.lon, err)
			return
		}
		if result.Stale() {
			log.Printf("scheduler: refresh for %.4f,%.4f served stale data: %s", s.lat, s.lon, result.Reason)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
