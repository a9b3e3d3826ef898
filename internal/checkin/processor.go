package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/belphemur/mood-checkin/internal/logging"
	"github.com/belphemur/mood-checkin/internal/signals"
)

// Persister stores an accepted check-in.
// Failures are not retried; the caller treats them as fatal for the submission.
type Persister interface {
	Persist(ctx context.Context, entry Entry) error
}

// Presenter is the user-facing surface of the processor
type Presenter interface {
	// ShowError notifies the user of a rejected submission
	ShowError(ctx context.Context, message string) error
	// ShowSummary renders the summary and returns once the user acknowledged it
	ShowSummary(ctx context.Context, summary Summary) error
}

// Stats counts the submissions handled by a processor
type Stats struct {
	Accepted int64
	Rejected int64
}

// Processor runs a submission through validation, aggregation, persistence and feedback
type Processor struct {
	persister Persister
	presenter Presenter
	now       func() time.Time
	logger    zerolog.Logger
	accepted  *atomic.Int64
	rejected  *atomic.Int64
}

// NewProcessor creates a processor writing through the given persister and presenter
func NewProcessor(persister Persister, presenter Presenter) *Processor {
	return &Processor{
		persister: persister,
		presenter: presenter,
		now:       time.Now,
		logger:    logging.GetLogger("checkin-processor"),
		accepted:  atomic.NewInt64(0),
		rejected:  atomic.NewInt64(0),
	}
}

// SetClock replaces the clock used to stamp entries
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

// Stats returns how many submissions were accepted and rejected so far
func (p *Processor) Stats() Stats {
	return Stats{Accepted: p.accepted.Load(), Rejected: p.rejected.Load()}
}

// Submit processes one form.
// A rejected form returns a *ValidationError after the user has been notified and nothing is saved.
// A failed write returns a *PersistenceError (or the persister's error) and no summary is shown.
func (p *Processor) Submit(ctx context.Context, form Form) (*Summary, error) {
	logger := p.logger.With().Str("name", form.Name).Logger()
	logger.Debug().Msg("Validating check-in")

	ratings, err := Validate(form.Moods)
	if err != nil {
		p.rejected.Inc()
		return nil, p.reject(ctx, logger, form, err)
	}

	average := Aggregate(ratings)
	message := Classify(average)
	logger.Debug().Float64("average", average).Msg("Check-in accepted")

	entry := Entry{
		CheckIn: CheckIn{Name: form.Name, Ratings: ratings},
		Average: average,
		Message: message,
		At:      p.now(),
	}
	if err := p.persister.Persist(ctx, entry); err != nil {
		logger.Error().Err(err).Msg("Failed to persist check-in")
		return nil, err
	}
	p.accepted.Inc()
	logger.Info().Float64("average", average).Msg("Check-in saved")

	signals.EmitCheckInProcessed(ctx, signals.CheckInProcessedData{
		Name:     form.Name,
		Accepted: true,
		Average:  average,
	})

	summary := &Summary{Name: form.Name, Ratings: ratings, Average: average, Message: message}
	if err := p.presenter.ShowSummary(ctx, *summary); err != nil {
		return summary, fmt.Errorf("failed to show summary: %w", err)
	}
	return summary, nil
}

func (p *Processor) reject(ctx context.Context, logger zerolog.Logger, form Form, err error) error {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}
	logger.Info().Strs("days", dayNames(validationErr)).Msg("Check-in rejected")

	signals.EmitCheckInProcessed(ctx, signals.CheckInProcessedData{
		Name:     form.Name,
		Problems: len(validationErr.Problems()),
	})

	for _, problem := range validationErr.Problems() {
		if showErr := p.presenter.ShowError(ctx, problem.Message()); showErr != nil {
			return fmt.Errorf("failed to show validation error: %w", showErr)
		}
	}
	if showErr := p.presenter.ShowError(ctx, RangeReminder); showErr != nil {
		return fmt.Errorf("failed to show validation error: %w", showErr)
	}
	return validationErr
}

func dayNames(err *ValidationError) []string {
	days := err.Days()
	names := make([]string, len(days))
	for i, day := range days {
		names[i] = day.String()
	}
	return names
}
