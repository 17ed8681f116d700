package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pedrosal/intervue/internal/api"
	"github.com/pedrosal/intervue/internal/config"
	"github.com/pedrosal/intervue/internal/history"
	"github.com/pedrosal/intervue/internal/models"
	"github.com/pedrosal/intervue/internal/render"
	"github.com/pedrosal/intervue/internal/tui"
)

var exportOutputFlag string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse and export archived interviews",
	Long: `Browse the local interview archive.

Without a subcommand an interactive picker opens and prints the selected
transcript. Finished interviews are archived automatically; 'sessions pull'
archives any backend session by id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return err
		}

		selected, confirmed, err := tui.RunTranscriptSelector(store)
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}

		return printTranscript(store, selected.ChatID)
	},
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return err
		}

		transcripts, err := store.List()
		if err != nil {
			return err
		}

		if len(transcripts) == 0 {
			cmd.Println("No archived interviews.")
			return nil
		}

		for _, t := range transcripts {
			title := t.Title
			if title == "" {
				title = "(untitled)"
			}
			status := " "
			if t.Finished {
				status = "finished"
			}
			cmd.Printf("%-24s  %-40s  %3d turns  %s\n", t.ChatID, title, len(t.Messages), status)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <chat-id>",
	Short: "Show an archived interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return err
		}
		return printTranscript(store, args[0])
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <chat-id>",
	Short: "Export an archived interview as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return err
		}

		md, err := store.ExportToMarkdown(args[0])
		if err != nil {
			return err
		}

		if exportOutputFlag == "" {
			cmd.Print(md)
			return nil
		}

		if err := os.WriteFile(exportOutputFlag, []byte(md), 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		cmd.Printf("Exported to %s\n", exportOutputFlag)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <chat-id>",
	Short: "Delete an archived interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.DefaultStore()
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		cmd.Println("Deleted.")
		return nil
	},
}

var sessionsPullCmd = &cobra.Command{
	Use:   "pull <chat-id>",
	Short: "Fetch a backend session into the local archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		store, err := history.DefaultStore()
		if err != nil {
			return err
		}

		spin := newSpinner("Fetching session")
		spin.start()
		chat, err := client.LoadChat(context.Background(), args[0])
		if err != nil {
			spin.stopWithError()
			return err
		}
		spin.stopWithSuccess("Fetched")

		if err := store.Save(transcriptFromChat(chat)); err != nil {
			return err
		}

		cmd.Printf("Archived %s (%d turns)\n", chat.ID, len(chat.Messages))
		return nil
	},
}

// printTranscript renders an archived transcript to stdout, through glamour
// when stdout is a terminal.
func printTranscript(store *history.Store, chatID string) error {
	md, err := store.ExportToMarkdown(chatID)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return nil
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	rendered, err := render.Markdown(md, render.LoadOptionsFromConfigWithWidth(width))
	if err != nil {
		fmt.Print(md)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// transcriptFromChat maps a backend session onto an archive entry.
func transcriptFromChat(chat *models.Chat) *history.Transcript {
	return &history.Transcript{
		ChatID:    chat.ID,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		Finished:  chat.Finished,
		Messages:  chat.Messages,
	}
}

func init() {
	sessionsExportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "Write the export to a file")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsPullCmd)
}
