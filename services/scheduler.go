package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"netwin-platform/models"
	"netwin-platform/store"
)

// liveWindow is how long a tournament stays live after its start time before
// the scheduler marks it completed.
const liveWindow = time.Hour

// StartStatusScheduler advances tournament statuses every minute:
// upcoming tournaments whose start time has passed go live, and live ones
// past the live window complete. Cancelled tournaments are never touched.
func (s *TournamentService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			moved, err := s.AdvanceStatuses(time.Now())
			if err != nil {
				log.Printf("[Scheduler] status advance failed: %v", err)
				return
			}
			if moved > 0 {
				log.Printf("✅ Advanced %d tournament status(es)", moved)
			}
		}),
	)
}

// AdvanceStatuses applies the time-based transitions as of now and returns
// how many tournaments moved.
func (s *TournamentService) AdvanceStatuses(now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	if err != nil {
		return 0, err
	}

	moved := 0
	for i := range all {
		switch all[i].Status {
		case models.TournamentUpcoming:
			if !all[i].Date.After(now) {
				all[i].Status = models.TournamentLive
				moved++
			}
		case models.TournamentLive:
			if !all[i].Date.Add(liveWindow).After(now) {
				all[i].Status = models.TournamentCompleted
				moved++
			}
		}
	}
	if moved == 0 {
		return 0, nil
	}
	return moved, store.SetJSON(s.store, store.KeyTournaments, all)
}
