package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/belphemur/mood-checkin/internal/checkin"
	"github.com/belphemur/mood-checkin/internal/constants"
	"github.com/belphemur/mood-checkin/internal/database"
)

// Terminal renders the check-in form and notifications on a text stream
type Terminal struct {
	in  *LineReader
	out io.Writer
}

// New creates a terminal reading answers from in and writing prompts to out
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: NewLineReader(in), out: out}
}

// Collect prompts for a name and the seven daily moods.
// It returns io.EOF when the input ends before a new form was started and
// io.ErrUnexpectedEOF when it ends halfway through one.
func (t *Terminal) Collect(ctx context.Context) (checkin.Form, error) {
	if _, err := fmt.Fprintf(t.out, "\n%s\n%s\n", constants.AppTitle, strings.Repeat("=", len(constants.AppTitle))); err != nil {
		return checkin.Form{}, err
	}

	name, err := t.prompt(ctx, "Enter your name: ")
	if err != nil {
		return checkin.Form{}, err
	}

	form := checkin.Form{Name: name, Moods: make(map[constants.Weekday]string)}
	for _, day := range constants.Weekdays() {
		mood, err := t.prompt(ctx, fmt.Sprintf("How is your mood on %s? (1 to 5): ", day))
		if errors.Is(err, io.EOF) {
			return checkin.Form{}, io.ErrUnexpectedEOF
		}
		if err != nil {
			return checkin.Form{}, err
		}
		form.Moods[day] = mood
	}
	return form, nil
}

func (t *Terminal) prompt(ctx context.Context, label string) (string, error) {
	if _, err := io.WriteString(t.out, label); err != nil {
		return "", err
	}
	line, err := t.in.Next(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ShowError implements checkin.Presenter
func (t *Terminal) ShowError(ctx context.Context, message string) error {
	_, err := fmt.Fprintf(t.out, "Error: %s\n", message)
	return err
}

// ShowSummary implements checkin.Presenter; it blocks until the user presses Enter
func (t *Terminal) ShowSummary(ctx context.Context, summary checkin.Summary) error {
	if _, err := fmt.Fprintf(t.out, "\n--- Check-in Summary ---\n%s\n\n[OK] Press Enter to continue", summary); err != nil {
		return err
	}
	_, err := t.in.Next(ctx)
	if errors.Is(err, io.EOF) {
		// nothing left to read: the summary has been shown, treat it as acknowledged
		err = nil
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(t.out)
	return err
}

// ShowHistory lists previously archived check-ins
func (t *Terminal) ShowHistory(checkIns []database.ArchivedCheckIn) error {
	if len(checkIns) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("Recent check-ins:\n")
	for _, c := range checkIns {
		fmt.Fprintf(&b, "  %s  %-12s average %.2f\n", c.CheckedInAt.Format("2006-01-02 15:04"), c.Name, c.Average)
	}
	_, err := io.WriteString(t.out, b.String())
	return err
}
