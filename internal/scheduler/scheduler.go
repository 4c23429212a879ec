// Package scheduler wires up the cron job that periodically checks every
// active alert and publishes one digest event per user with matches.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobmate/jobboard-service/internal/alerts"
	"jobmate/jobboard-service/internal/events"
)

// AlertChecker returns the current (alert, job) matches across all users.
// *alerts.Service satisfies it.
type AlertChecker interface {
	CheckAllAlerts(ctx context.Context) ([]alerts.Match, error)
}

// Scheduler wraps robfig/cron and manages the digest loop.
type Scheduler struct {
	cron    *cron.Cron
	checker AlertChecker
	pub     events.Publisher
	spec    string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(checker AlertChecker, pub events.Publisher, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		checker: checker,
		pub:     pub,
		spec:    fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one digest
// immediately so subscribers hear about existing matches without waiting
// for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runDigest(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)

	go s.runDigest(ctx)

	return nil
}

// Stop shuts down the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runDigest(ctx context.Context) {
	log.Println("[scheduler] Digest cycle started")
	users, err := s.RunOnce(ctx)
	if err != nil {
		log.Printf("[scheduler] Digest error: %v", err)
		return
	}
	log.Printf("[scheduler] Digest cycle complete, %d user(s) notified", users)
}

// RunOnce checks every active alert and publishes one AlertDigest event per
// user with at least one match. It returns the number of users notified.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	matches, err := s.checker.CheckAllAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("checkAllAlerts: %w", err)
	}
	if len(matches) == 0 {
		log.Println("[scheduler] No alert matches, nothing to publish")
		return 0, nil
	}

	// Group by user, keeping first-seen order.
	var order []string
	byUser := map[string][]map[string]string{}
	for _, m := range matches {
		uid := m.Alert.UserID
		if _, seen := byUser[uid]; !seen {
			order = append(order, uid)
		}
		byUser[uid] = append(byUser[uid], map[string]string{
			"alertId": m.Alert.ID,
			"jobId":   m.Job.ID,
			"title":   m.Job.Title,
		})
	}

	for _, uid := range order {
		events.Emit(ctx, s.pub, events.AlertDigest, map[string]any{
			"userId":  uid,
			"matches": byUser[uid],
		})
	}
	return len(order), nil
}
