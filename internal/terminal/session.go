package terminal

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/belphemur/mood-checkin/internal/checkin"
	"github.com/belphemur/mood-checkin/internal/logging"
)

// Submitter processes one collected form
type Submitter interface {
	Submit(ctx context.Context, form checkin.Form) (*checkin.Summary, error)
}

// Session repeats the form until the input ends.
// Rejected forms go back to the prompt; any other error ends the session.
type Session struct {
	terminal  *Terminal
	submitter Submitter
	logger    zerolog.Logger
}

// NewSession creates a session collecting forms from t and handing them to submitter
func NewSession(t *Terminal, submitter Submitter) *Session {
	return &Session{terminal: t, submitter: submitter, logger: logging.GetLogger("session")}
}

// Run loops until the input ends (nil, even halfway through a form), ctx is done (ctx.Err()) or a submission fails
func (s *Session) Run(ctx context.Context) error {
	for {
		form, err := s.terminal.Collect(ctx)
		if errors.Is(err, io.EOF) {
			s.logger.Debug().Msg("Input closed, ending session")
			return nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			s.logger.Info().Msg("Input closed in the middle of a form, discarding it")
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := s.submitter.Submit(ctx, form); err != nil {
			var validationErr *checkin.ValidationError
			if errors.As(err, &validationErr) {
				s.logger.Debug().Msg("Submission rejected, prompting again")
				continue
			}
			return err
		}
	}
}
