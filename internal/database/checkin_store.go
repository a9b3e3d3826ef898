package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/belphemur/mood-checkin/internal/checkin"
	"github.com/belphemur/mood-checkin/internal/constants"
	"github.com/belphemur/mood-checkin/internal/logging"
)

// ArchivedCheckIn is one stored check-in
type ArchivedCheckIn struct {
	ID          int64
	Name        string
	Ratings     checkin.Ratings
	Average     float64
	Message     string
	CheckedInAt time.Time
}

const checkInColumns = `id, name, monday, tuesday, wednesday, thursday, friday, saturday, sunday,
	average, message, checked_in_unix`

// CheckInStore handles the check-in archive in SQLite
type CheckInStore struct {
	db     *DB
	logger zerolog.Logger
}

// NewCheckInStore creates a new check-in store
func NewCheckInStore(db *DB) *CheckInStore {
	return &CheckInStore{db: db, logger: logging.GetLogger("checkin-store")}
}

// Insert stores an accepted check-in inside the given transaction and returns its id
func (s *CheckInStore) Insert(ctx context.Context, tx *sql.Tx, entry checkin.Entry) (int64, error) {
	r := entry.Ratings
	result, err := tx.ExecContext(ctx, `
		INSERT INTO check_ins (name, monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			average, message, checked_in_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Name,
		r[constants.Monday], r[constants.Tuesday], r[constants.Wednesday], r[constants.Thursday],
		r[constants.Friday], r[constants.Saturday], r[constants.Sunday],
		entry.Average, entry.Message, entry.At.Unix())
	if err != nil {
		s.logger.Error().Err(err).Str("name", entry.Name).Msg("Failed to insert check-in")
		return 0, fmt.Errorf("failed to insert check-in: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read check-in id: %w", err)
	}
	s.logger.Debug().Int64("id", id).Str("name", entry.Name).Msg("Check-in archived")
	return id, nil
}

// CountSince returns how many check-ins were made at or after since
func (s *CheckInStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM check_ins WHERE checked_in_unix >= ?`, since.Unix()).Scan(&count)
	if err != nil {
		s.logger.Error().Err(err).Time("since", since).Msg("Failed to count check-ins")
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}

// Recent returns the latest limit check-ins, listed in the requested order
func (s *CheckInStore) Recent(ctx context.Context, limit int, order constants.ListOrder) ([]ArchivedCheckIn, error) {
	if limit <= 0 {
		return nil, nil
	}
	if !order.IsValid() {
		return nil, fmt.Errorf("invalid list order: %s", order)
	}

	query := fmt.Sprintf(`
		SELECT %[1]s FROM (
			SELECT %[1]s FROM check_ins
			ORDER BY checked_in_unix DESC, id DESC
			LIMIT ?
		)
		ORDER BY checked_in_unix %[2]s, id %[2]s
	`, checkInColumns, order.SQL())

	rows, err := s.db.Conn().QueryContext(ctx, query, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to query recent check-ins")
		return nil, fmt.Errorf("failed to query recent check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []ArchivedCheckIn
	for rows.Next() {
		var (
			c        ArchivedCheckIn
			days     [7]int
			unixTime int64
		)
		if err := rows.Scan(&c.ID, &c.Name,
			&days[0], &days[1], &days[2], &days[3], &days[4], &days[5], &days[6],
			&c.Average, &c.Message, &unixTime); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		c.Ratings = make(checkin.Ratings, len(days))
		for i, day := range constants.Weekdays() {
			c.Ratings[day] = days[i]
		}
		c.CheckedInAt = time.Unix(unixTime, 0)
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}

	s.logger.Debug().Int("count", len(checkIns)).Str("order", order.String()).Msg("Recent check-ins retrieved")
	return checkIns, nil
}

// ArchivingPersister archives a check-in and writes it through an inner persister
// as a single unit: if the inner write fails, the archive row is rolled back.
// Once the inner write succeeded the row is committed even if ctx is cancelled meanwhile.
type ArchivingPersister struct {
	store  *CheckInStore
	inner  checkin.Persister
	logger zerolog.Logger
}

// NewArchivingPersister wraps inner so that every persisted check-in is also archived
func NewArchivingPersister(store *CheckInStore, inner checkin.Persister) *ArchivingPersister {
	return &ArchivingPersister{store: store, inner: inner, logger: logging.GetLogger("archiving-persister")}
}

// Persist implements checkin.Persister.
// Archive failures are reported as *checkin.PersistenceError naming the database file.
func (p *ArchivingPersister) Persist(ctx context.Context, entry checkin.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txCtx := context.WithoutCancel(ctx)
	err := p.store.db.WithTransaction(txCtx, func(tx *sql.Tx) error {
		id, err := p.store.Insert(txCtx, tx, entry)
		if err != nil {
			return err
		}
		if err := p.inner.Persist(txCtx, entry); err != nil {
			p.logger.Warn().Err(err).Int64("id", id).Msg("Inner persister failed, discarding archived check-in")
			return err
		}
		return nil
	})
	if err == nil {
		return nil
	}

	var persistErr *checkin.PersistenceError
	if errors.As(err, &persistErr) {
		return err
	}
	return &checkin.PersistenceError{Path: p.store.db.dbPath, Err: err}
}
