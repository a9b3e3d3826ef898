// Package journal appends accepted check-ins to a plain-text file per calendar day.
package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/belphemur/mood-checkin/internal/checkin"
	"github.com/belphemur/mood-checkin/internal/logging"
)

const (
	// DefaultFilePrefix starts every journal file name
	DefaultFilePrefix = "check_ins_"
	// DefaultDateLayout stamps the file name with an ISO 8601 date
	DefaultDateLayout = "2006-01-02"
)

// Journal is a date-stamped, append-only text log.
// Every submission of a day lands in the same file; there is no locking.
type Journal struct {
	dir        string
	prefix     string
	dateLayout string
	now        func() time.Time
	logger     zerolog.Logger
}

// Option customises a Journal
type Option func(*Journal)

// WithFilePrefix overrides the file name prefix
func WithFilePrefix(prefix string) Option {
	return func(j *Journal) { j.prefix = prefix }
}

// WithDateLayout overrides the time layout used in the file name
func WithDateLayout(layout string) Option {
	return func(j *Journal) { j.dateLayout = layout }
}

// WithClock overrides the clock used by Path
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// New creates a journal writing into dir; an empty dir means the working directory
func New(dir string, opts ...Option) *Journal {
	j := &Journal{
		dir:        dir,
		prefix:     DefaultFilePrefix,
		dateLayout: DefaultDateLayout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.logger = logging.GetLogger("journal").With().Str("dir", j.dir).Logger()
	return j
}

// Path returns the journal file for today
func (j *Journal) Path() string {
	return j.pathFor(j.now())
}

func (j *Journal) pathFor(at time.Time) string {
	return filepath.Join(j.dir, fmt.Sprintf("%s%s.txt", j.prefix, at.Format(j.dateLayout)))
}

// Persist appends the check-in's log record to the file of the entry's day
func (j *Journal) Persist(ctx context.Context, entry checkin.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	at := entry.At
	if at.IsZero() {
		at = j.now()
	}
	path := j.pathFor(at)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		j.logger.Error().Err(err).Str("path", path).Msg("Failed to open journal file")
		return &checkin.PersistenceError{Path: path, Err: err}
	}

	if _, err := file.WriteString(entry.LogRecord()); err != nil {
		file.Close()
		j.logger.Error().Err(err).Str("path", path).Msg("Failed to append to journal file")
		return &checkin.PersistenceError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		j.logger.Error().Err(err).Str("path", path).Msg("Failed to close journal file")
		return &checkin.PersistenceError{Path: path, Err: err}
	}

	j.logger.Debug().Str("path", path).Str("name", entry.Name).Msg("Check-in appended to journal")
	return nil
}
