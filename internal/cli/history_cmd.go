package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List submitted sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.History.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(styleDim.Render("No submitted sessions yet."))
				return nil
			}

			fmt.Println(styleHeader.Render("date        dur    volume  ex  sets  notes"))
			for _, e := range entries {
				notes := e.Notes
				if len(notes) > 32 {
					notes = notes[:29] + "…"
				}
				fmt.Printf("%s  %4dm  %7.0f  %2d  %4d  %s\n",
					e.Date.Format("2006-01-02"), e.DurationMin, e.Volume,
					e.ExerciseCount, e.SetCount, styleDim.Render(notes))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")
	return cmd
}
