package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belphemur/mood-checkin/internal/constants"
	"github.com/belphemur/mood-checkin/internal/signals"
)

type recordingPersister struct {
	entries []Entry
	err     error
}

func (p *recordingPersister) Persist(ctx context.Context, entry Entry) error {
	if p.err != nil {
		return p.err
	}
	p.entries = append(p.entries, entry)
	return nil
}

type recordingPresenter struct {
	errors    []string
	summaries []Summary
	err       error
}

func (p *recordingPresenter) ShowError(ctx context.Context, message string) error {
	p.errors = append(p.errors, message)
	return p.err
}

func (p *recordingPresenter) ShowSummary(ctx context.Context, summary Summary) error {
	p.summaries = append(p.summaries, summary)
	return p.err
}

var submittedAt = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newTestProcessor() (*Processor, *recordingPersister, *recordingPresenter) {
	persister := &recordingPersister{}
	presenter := &recordingPresenter{}
	p := NewProcessor(persister, presenter)
	p.SetClock(func() time.Time { return submittedAt })
	return p, persister, presenter
}

func TestProcessor_ScenarioA_MixedWeek(t *testing.T) {
	p, persister, presenter := newTestProcessor()

	summary, err := p.Submit(context.Background(), Form{Name: "Alice", Moods: rawWeek("3", "4", "5", "2", "3", "4", "5")})
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.InDelta(t, 3.714, summary.Average, 0.001)
	assert.Equal(t, EncouragingMessage, summary.Message)

	require.Len(t, persister.entries, 1)
	entry := persister.entries[0]
	assert.Equal(t, "Alice", entry.Name)
	assert.Equal(t, submittedAt, entry.At)
	assert.Equal(t, summary.Ratings, entry.Ratings)
	assert.Equal(t, EncouragingMessage, entry.Message)

	assert.Empty(t, presenter.errors)
	require.Len(t, presenter.summaries, 1)
	assert.Equal(t, *summary, presenter.summaries[0])
	assert.Equal(t, Stats{Accepted: 1}, p.Stats())
}

func TestProcessor_ScenarioB_AllFives(t *testing.T) {
	p, persister, _ := newTestProcessor()

	summary, err := p.Submit(context.Background(), Form{Name: "Bob", Moods: rawWeek("5", "5", "5", "5", "5", "5", "5")})
	require.NoError(t, err)

	assert.Equal(t, 5.0, summary.Average)
	assert.Equal(t, CelebratoryMessage, summary.Message)
	assert.Len(t, persister.entries, 1)
}

func TestProcessor_ScenarioC_NonNumericTuesday(t *testing.T) {
	p, persister, presenter := newTestProcessor()

	summary, err := p.Submit(context.Background(), Form{Name: "Cleo", Moods: rawWeek("3", "abc", "5", "2", "3", "4", "5")})
	require.Error(t, err)
	assert.Nil(t, summary)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []constants.Weekday{constants.Tuesday}, validationErr.Days())

	assert.Empty(t, persister.entries, "nothing may be persisted for a rejected check-in")
	assert.Empty(t, presenter.summaries)
	assert.Equal(t, []string{
		"Please enter a valid integer mood rating for Tuesday",
		RangeReminder,
	}, presenter.errors)
	assert.Equal(t, Stats{Rejected: 1}, p.Stats())
}

func TestProcessor_ScenarioD_OutOfRangeWednesday(t *testing.T) {
	p, persister, presenter := newTestProcessor()

	_, err := p.Submit(context.Background(), Form{Name: "Dan", Moods: rawWeek("3", "4", "7", "2", "3", "4", "5")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Empty(t, persister.entries)
	require.Len(t, presenter.errors, 2)
	assert.Contains(t, presenter.errors[0], "Wednesday")
}

func TestProcessor_PersistenceFailureIsReturned(t *testing.T) {
	p, persister, presenter := newTestProcessor()
	persister.err = &PersistenceError{Path: "check_ins_2026-10-19.txt", Err: errors.New("disk full")}

	summary, err := p.Submit(context.Background(), Form{Name: "Eve", Moods: rawWeek("3", "3", "3", "3", "3", "3", "3")})
	require.Error(t, err)
	assert.Nil(t, summary)

	var persistErr *PersistenceError
	require.True(t, errors.As(err, &persistErr))
	assert.Empty(t, presenter.summaries, "no summary for an unsaved check-in")
	assert.Equal(t, Stats{}, p.Stats())
}

func TestProcessor_RetryAfterRejection(t *testing.T) {
	p, persister, _ := newTestProcessor()

	_, err := p.Submit(context.Background(), Form{Name: "Fay", Moods: rawWeek("3", "x")})
	require.Error(t, err)

	_, err = p.Submit(context.Background(), Form{Name: "Fay", Moods: rawWeek("1", "2", "1", "2", "1", "2", "1")})
	require.NoError(t, err)

	require.Len(t, persister.entries, 1)
	assert.Equal(t, CautionaryMessage, persister.entries[0].Message)
	assert.Equal(t, Stats{Accepted: 1, Rejected: 1}, p.Stats())
}

func TestProcessor_EmitsProcessedSignal(t *testing.T) {
	var outcomes []signals.CheckInProcessedData
	signals.OnCheckInProcessed(func(ctx context.Context, data signals.CheckInProcessedData) {
		outcomes = append(outcomes, data)
	}, "processor-test")
	t.Cleanup(func() { signals.RemoveCheckInProcessed("processor-test") })

	p, _, _ := newTestProcessor()
	_, err := p.Submit(context.Background(), Form{Name: "Gus", Moods: rawWeek("4", "4", "4", "4", "4", "4", "4")})
	require.NoError(t, err)
	_, err = p.Submit(context.Background(), Form{Name: "Gus", Moods: rawWeek("4", "9", "4", "a", "4", "4", "4")})
	require.Error(t, err)

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Accepted)
	assert.Equal(t, 4.0, outcomes[0].Average)
	assert.False(t, outcomes[1].Accepted)
	assert.Equal(t, 2, outcomes[1].Problems)
}

func TestProcessor_PresenterFailure(t *testing.T) {
	p, persister, presenter := newTestProcessor()
	presenter.err = errors.New("terminal closed")

	summary, err := p.Submit(context.Background(), Form{Name: "Hal", Moods: rawWeek("2", "2", "2", "2", "2", "2", "2")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to show summary")
	// the check-in was already saved when the summary could not be shown
	assert.NotNil(t, summary)
	assert.Len(t, persister.entries, 1)
}
