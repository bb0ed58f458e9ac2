package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			fmt.Println(styleHeader.Render("server"))
			fmt.Printf("  url: %s\n", cfg.Server.URL)
			fmt.Println(styleHeader.Render("storage"))
			fmt.Printf("  path: %s\n", cfg.Storage.Path)
			fmt.Println(styleHeader.Render("session"))
			fmt.Printf("  default_rest_seconds: %d\n", cfg.Session.DefaultRestSeconds)
			fmt.Printf("  rest_countdown: %t\n", cfg.Session.RestCountdown)
			fmt.Printf("  sound: %t\n", cfg.Session.Sound)
			return nil
		},
	}
	return cmd
}
