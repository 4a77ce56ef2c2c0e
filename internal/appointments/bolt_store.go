package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
)

// BoltStore is the on-device fallback store: one bbolt bucket, keyed by
// appointment ID, holding JSON-encoded records. It replaces the browser
// localStorage fallback of the original site.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBoltStore opens (creating if needed) the bbolt file at path. bucket is
// the storage key the records live under.
func OpenBoltStore(path, bucket string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("boltstore: open %s: %w", path, err)
	}
	s := &BoltStore{db: db, bucket: []byte(bucket)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltstore: create bucket: %w", err)
	}
	return s, nil
}

// Close releases the underlying file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Add persists a new appointment.
func (s *BoltStore) Add(ctx context.Context, appt *Appointment) error {
	data, err := json.Marshal(appt)
	if err != nil {
		return fmt.Errorf("boltstore: marshal: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(appt.ID), data)
	})
	if err != nil {
		return fmt.Errorf("boltstore: put %s: %w", appt.ID, err)
	}
	return nil
}

// List returns stored appointments, optionally filtered by date, ordered by
// creation time.
func (s *BoltStore) List(ctx context.Context, date string) ([]Appointment, error) {
	var appts []Appointment
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(_, v []byte) error {
			var appt Appointment
			if err := json.Unmarshal(v, &appt); err != nil {
				return err
			}
			if date == "" || appt.AppointmentDate == date {
				appts = append(appts, appt)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: list: %w", err)
	}
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].CreatedAt.Before(appts[j].CreatedAt)
	})
	return appts, nil
}

// UpdateStatus mutates status (and stage, when non-empty) of one record.
func (s *BoltStore) UpdateStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error) {
	var updated *Appointment
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		raw := b.Get([]byte(id))
		if raw == nil {
			return ErrNotFound
		}
		var appt Appointment
		if err := json.Unmarshal(raw, &appt); err != nil {
			return err
		}
		appt.Status = status
		if stage != "" {
			appt.FollowUpStage = stage
		}
		data, err := json.Marshal(&appt)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(id), data); err != nil {
			return err
		}
		updated = &appt
		return nil
	})
	if err == ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("boltstore: update %s: %w", id, err)
	}
	return updated, nil
}
