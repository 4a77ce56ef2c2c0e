package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps appointments in Postgres for clinics that outgrow the
// spreadsheet backend. Schema lives in migrations/.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a Postgres-backed appointment store.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const apptColumns = `id, patient_name, phone_number, appointment_date, appointment_time, service_type, status, follow_up_stage, last_message_sent, notes, created_at`

// Add inserts a new appointment row.
func (s *PostgresStore) Add(ctx context.Context, appt *Appointment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO appointments (`+apptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		appt.ID, appt.PatientName, appt.PhoneNumber, appt.AppointmentDate,
		appt.AppointmentTime, appt.ServiceType, string(appt.Status),
		string(appt.FollowUpStage), appt.LastMessageSent, appt.Notes, appt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgstore: insert %s: %w", appt.ID, err)
	}
	return nil
}

// List returns appointments, optionally filtered by date, oldest first.
func (s *PostgresStore) List(ctx context.Context, date string) ([]Appointment, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if date != "" {
		rows, err = s.db.Query(ctx, `
			SELECT `+apptColumns+` FROM appointments
			WHERE appointment_date = $1
			ORDER BY created_at ASC`, date)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT `+apptColumns+` FROM appointments
			ORDER BY created_at ASC`)
	}
	if err != nil {
		return nil, fmt.Errorf("pgstore: list: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// UpdateStatus mutates one row and returns its new state.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    follow_up_stage = CASE WHEN $3 = '' THEN follow_up_stage ELSE $3 END
		WHERE id = $1
		RETURNING `+apptColumns, id, string(status), string(stage))

	appt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("pgstore: update %s: %w", id, err)
	}
	return appt, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	var status, stage string
	err := row.Scan(
		&appt.ID, &appt.PatientName, &appt.PhoneNumber, &appt.AppointmentDate,
		&appt.AppointmentTime, &appt.ServiceType, &status, &stage,
		&appt.LastMessageSent, &appt.Notes, &appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	appt.Status = Status(status)
	appt.FollowUpStage = Stage(stage)
	return &appt, nil
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	var appts []Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("pgstore: scan: %w", err)
		}
		appts = append(appts, *appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: rows: %w", err)
	}
	return appts, nil
}
