package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pedrosal/intervue/internal/api"
	"github.com/pedrosal/intervue/internal/config"
	"github.com/pedrosal/intervue/internal/history"
	"github.com/pedrosal/intervue/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive interview session",
	Long: `Start an interactive interview session.

The most recent session is resumed, or a new one is created. Type your
answers and press Enter; use /hint, /answer and /finish for the assisted
actions. Type 'exit' or press Ctrl+C to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg := loadConfig()

	creds, err := config.LoadCredentials()
	if err != nil {
		return err
	}

	client, err := api.NewClient(cfg.BackendURL, creds, api.WithVerbose(cfg.Verbose))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	// The archive is optional; the chat still works without it.
	store, err := history.DefaultStore()
	if err != nil {
		store = nil
	}

	return tui.RunChat(client, store, cfg)
}
