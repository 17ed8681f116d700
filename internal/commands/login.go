package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pedrosal/intervue/internal/config"
)

var (
	accessTokenFlag  string
	refreshTokenFlag string
)

var loginCmd = &cobra.Command{
	Use:   "login [credentials-file]",
	Short: "Store backend credentials",
	Long: `Store the backend token pair locally.

Either import a JSON file with {"access_token": ..., "refresh_token": ...}
or pass the tokens directly:

  intervue login ~/Downloads/intervue-credentials.json
  intervue login --access-token <token> --refresh-token <token>`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := config.ImportCredentials(args[0]); err != nil {
				return err
			}
			cmd.Println("Credentials imported.")
			return nil
		}

		if accessTokenFlag == "" {
			return fmt.Errorf("provide a credentials file or --access-token")
		}

		creds := &config.Credentials{}
		creds.SetBoth(accessTokenFlag, refreshTokenFlag)
		if err := config.SaveCredentials(creds); err != nil {
			return err
		}
		cmd.Println("Credentials saved.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored credentials",
	Long:  `Remove both stored tokens. Succeeds even when already logged out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearCredentials(); err != nil {
			return err
		}
		cmd.Println("Logged out. Run 'intervue login' to sign in again.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&accessTokenFlag, "access-token", "", "Access token")
	loginCmd.Flags().StringVar(&refreshTokenFlag, "refresh-token", "", "Refresh token")
}
