package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/draft"
	"github.com/felipeleveke/gym-sub000/internal/engine"
	"github.com/felipeleveke/gym-sub000/internal/routine"
)

func newStartCmd(app *App) *cobra.Command {
	var routineID, variantID string
	var fromLast, discardDraft bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a workout session",
		Long: `Start a live workout session. With --routine the session is pre-populated
from the catalog server; with --from-last it copies the structure of the most
recently submitted session. Without a pre-population source, an unfinished
draft from a previous run is offered for resume.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("gym start needs an interactive terminal")
			}

			ctx := context.Background()
			sess, resumed, err := buildSession(ctx, app, routineID, variantID, fromLast, discardDraft)
			if err != nil {
				return err
			}

			saver := draft.NewAutosaver(app.Drafts, app.Logger, nil)
			var alarm engine.Alarm = engine.SilentAlarm{}
			if app.Config.Session.Sound {
				alarm = engine.BellAlarm{W: os.Stderr}
			}

			eng := engine.New(sess,
				engine.WithAlarm(alarm),
				engine.WithSaver(saver),
				engine.WithLogger(app.Logger),
				engine.WithRestCountdown(app.Config.Session.RestCountdown),
			)
			if resumed {
				eng.FinalizeInterrupted()
			}
			// Autosave arms only after the resume question is settled.
			eng.EnableAutosave()

			model := newSessionModel(app, eng, saver)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&routineID, "routine", "", "Routine ID to pre-populate from")
	cmd.Flags().StringVar(&variantID, "variant", "", "Routine variant ID")
	cmd.Flags().BoolVar(&fromLast, "from-last", false, "Copy the most recent submitted session")
	cmd.Flags().BoolVar(&discardDraft, "discard-draft", false, "Discard any unfinished draft without asking")

	return cmd
}

// buildSession resolves the pre-population source and the resume-or-discard
// protocol. The draft prompt appears only when no source is given; resuming
// restores the stored snapshot verbatim and suppresses further prompts.
func buildSession(ctx context.Context, app *App, routineID, variantID string, fromLast, discardDraft bool) (*domain.Session, bool, error) {
	defaultRest := app.Config.Session.DefaultRestSeconds

	switch {
	case routineID != "":
		r, err := app.Routines.FetchRoutine(ctx, routineID, variantID)
		if err != nil {
			return nil, false, err
		}
		return routine.SessionFromRoutine(r, defaultRest), false, nil

	case fromLast:
		last, err := app.History.GetLatest(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("loading last session: %w", err)
		}
		sess, err := routine.SessionFromPrior(last, defaultRest)
		if err != nil {
			return nil, false, err
		}
		return sess, false, nil
	}

	// Cheap existence check first; the common case is a clean start with
	// nothing stored, which should not pay for decoding a snapshot.
	stored, err := app.Drafts.Exists(ctx)
	if err != nil {
		// Degraded storage still lets the user train; they just lose resume.
		app.Logger.Printf("draft check failed: %v", err)
		return routine.NewEmptySession(defaultRest), false, nil
	}
	if !stored {
		return routine.NewEmptySession(defaultRest), false, nil
	}

	snap, err := app.Drafts.Load(ctx)
	if errors.Is(err, draft.ErrNoDraft) {
		return routine.NewEmptySession(defaultRest), false, nil
	}
	if err != nil {
		app.Logger.Printf("draft load failed: %v", err)
		return routine.NewEmptySession(defaultRest), false, nil
	}

	resume := !discardDraft
	if !discardDraft {
		prompt := huh.NewConfirm().
			Title("Unfinished session found").
			Description(fmt.Sprintf("Last saved %s. Resume it?", snap.LastSavedAt.Local().Format("Mon 15:04"))).
			Affirmative("Resume").
			Negative("Discard").
			Value(&resume)
		if err := prompt.Run(); err != nil {
			return nil, false, err
		}
	}

	if !resume {
		if err := app.Drafts.Clear(ctx); err != nil {
			return nil, false, fmt.Errorf("discarding draft: %w", err)
		}
		return routine.NewEmptySession(defaultRest), false, nil
	}
	return snap.Restore(), true, nil
}
