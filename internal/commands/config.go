package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pedrosal/intervue/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		cmd.Printf("backend_url         %s\n", cfg.BackendURL)
		cmd.Printf("typing_interval_ms  %d\n", cfg.TypingIntervalMs)
		cmd.Printf("verbose             %t\n", cfg.Verbose)
		cmd.Printf("copy_to_clipboard   %t\n", cfg.CopyToClipboard)
		cmd.Printf("markdown.style      %s\n", cfg.Markdown.Style)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "backend_url":
			cfg.BackendURL = value
		case "typing_interval_ms":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("typing_interval_ms must be a positive integer")
			}
			cfg.TypingIntervalMs = n
		case "verbose":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("verbose must be true or false")
			}
			cfg.Verbose = b
		case "copy_to_clipboard":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("copy_to_clipboard must be true or false")
			}
			cfg.CopyToClipboard = b
		case "markdown.style":
			cfg.Markdown.Style = value
		default:
			return fmt.Errorf("unknown setting: %s", key)
		}

		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		cmd.Printf("%s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
