package appointments

import "context"

// Store is the durable appointment collection. Implementations: the remote
// spreadsheet web app (SheetsStore), the on-device bbolt file (BoltStore) and
// Postgres (PostgresStore). FallbackStore composes a primary with a local
// fallback so callers never see a transport failure.
type Store interface {
	// Add persists a new appointment record.
	Add(ctx context.Context, appt *Appointment) error

	// List returns appointments, optionally narrowed to one YYYY-MM-DD date.
	// An empty date returns everything.
	List(ctx context.Context, date string) ([]Appointment, error)

	// UpdateStatus sets status and, when stage is non-empty, the follow-up
	// stage of the appointment with the given ID. Returns ErrNotFound when
	// no record matches.
	UpdateStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error)
}
