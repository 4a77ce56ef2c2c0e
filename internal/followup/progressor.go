package followup

import (
	"context"
	"fmt"
	"time"

	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

// Progressor advances follow-up stages by elapsed days since the appointment
// date: Day-1 after one day, Day-3 after three, Day-7 after seven, Completed
// once the sequence has run its course. Only appointments whose visit
// actually happened (Visited or Follow-Up Required) are progressed; Booked,
// No-Show and Cancelled records are left alone.
type Progressor struct {
	store  appointments.Store
	logger *logging.Logger
	now    func() time.Time
}

// NewProgressor creates a stage progressor.
func NewProgressor(store appointments.Store, logger *logging.Logger) *Progressor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Progressor{store: store, logger: logger, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (p *Progressor) WithNow(now func() time.Time) *Progressor {
	p.now = now
	return p
}

// Run ticks until the context is cancelled.
func (p *Progressor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := p.ProcessOnce(ctx); err != nil {
				p.logger.Error("followup progressor: pass failed", "error", err)
			} else if n > 0 {
				p.logger.Info("followup progressor: stages advanced", "count", n)
			}
		}
	}
}

// ProcessOnce advances every eligible appointment one pass. Returns the
// number of stage changes written.
func (p *Progressor) ProcessOnce(ctx context.Context) (int, error) {
	appts, err := p.store.List(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("followup progressor: list: %w", err)
	}

	advanced := 0
	for i := range appts {
		appt := &appts[i]
		target, ok := p.targetStage(appt)
		if !ok {
			continue
		}
		if _, err := p.store.UpdateStatus(ctx, appt.ID, appt.Status, target); err != nil {
			p.logger.Error("followup progressor: update failed", "id", appt.ID, "error", err)
			continue
		}
		p.logger.Info("follow-up stage advanced",
			"id", appt.ID,
			"from", appt.FollowUpStage,
			"to", target,
		)
		advanced++
	}
	return advanced, nil
}

func (p *Progressor) targetStage(appt *appointments.Appointment) (appointments.Stage, bool) {
	switch appt.Status {
	case appointments.StatusVisited, appointments.StatusFollowUp:
	default:
		return "", false
	}
	if appt.FollowUpStage == appointments.StageCompleted {
		return "", false
	}

	visited, err := time.Parse(time.DateOnly, appt.AppointmentDate)
	if err != nil {
		return "", false
	}
	days := int(p.now().Sub(visited).Hours() / 24)

	var target appointments.Stage
	switch {
	case days >= 10:
		target = appointments.StageCompleted
	case days >= 7:
		target = appointments.StageDay7
	case days >= 3:
		target = appointments.StageDay3
	case days >= 1:
		target = appointments.StageDay1
	default:
		return "", false
	}

	if stageRank(target) <= stageRank(appt.FollowUpStage) {
		return "", false
	}
	return target, true
}

func stageRank(s appointments.Stage) int {
	switch s {
	case appointments.StageNone:
		return 0
	case appointments.StageDay1:
		return 1
	case appointments.StageDay3:
		return 2
	case appointments.StageDay7:
		return 3
	case appointments.StageCompleted:
		return 4
	}
	return -1
}
