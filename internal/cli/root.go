package cli

import (
	"database/sql"
	"log"

	"github.com/spf13/cobra"

	"github.com/felipeleveke/gym-sub000/internal/config"
	"github.com/felipeleveke/gym-sub000/internal/db"
	"github.com/felipeleveke/gym-sub000/internal/draft"
	"github.com/felipeleveke/gym-sub000/internal/history"
	"github.com/felipeleveke/gym-sub000/internal/routine"
	"github.com/felipeleveke/gym-sub000/internal/submit"
)

// App bundles everything the commands need: configuration, the local
// database, stores, and the external clients.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	UoW      db.UnitOfWork
	Drafts   draft.Store
	History  history.Store
	Routines *routine.Client
	Submit   *submit.Service
	Logger   *log.Logger

	// IsInteractive gates the TUI; non-terminals get a plain error instead
	// of a garbled alt screen.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "gym" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gym",
		Short:         "Live workout session runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStartCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app),
	)

	return root
}
