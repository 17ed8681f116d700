// Package commands provides CLI commands for intervue.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pedrosal/intervue/internal/config"
)

var (
	// Global flags
	backendFlag string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "intervue",
	Short: "Terminal client for the Intervue interview-practice backend",
	Long: `intervue is a terminal client for practicing technical interviews.

The interviewer asks questions; you answer in a chat. Ask for hints, reveal
the expected answer, or finish the interview to get a structured evaluation.

Examples:
  intervue                       Start (or resume) an interview
  intervue login creds.json      Import backend credentials
  intervue sessions              Browse archived interviews
  intervue sessions export <id>  Export a transcript as Markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			cmd.Printf("intervue %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Bare invocation starts the chat TUI.
		return runChat()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log requests to stderr")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig returns the effective configuration with flag overrides applied.
func loadConfig() config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if backendFlag != "" {
		cfg.BackendURL = backendFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	return cfg
}
