// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartAuditScheduler periodically reconciles garden counters against the
// append-only achievement log and logs any drift for out-of-band repair.
// Drift is expected only after a crash between the session write and the
// garden update; it is reported, never silently fixed.
func (s *GardenService) StartAuditScheduler(interval time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			drifts, err := s.AuditTotals()
			if err != nil {
				log.Printf("[GardenAudit] query error: %v", err)
				return
			}
			if len(drifts) == 0 {
				return
			}
			for _, d := range drifts {
				log.Printf("⚠️ [GardenAudit] counter drift: child=%s kind=%s counter=%d events=%d",
					d.ChildID, d.Kind, d.Counter, d.EventSum)
			}
		}),
	)
}
