package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"icctv-admin/internal/auth"
	"icctv-admin/internal/client"
	"icctv-admin/internal/config"
)

var (
	loginUser string
	loginPass string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the icctv backend",
	Long: `Exchanges operator credentials for an access token and saves it locally
for future commands.

Example:
  icctv-admin login --base-url https://icctv.example.com/api -u admin -p secret`,
	Run: func(cmd *cobra.Command, args []string) {
		api := newClient()

		fmt.Printf("Authenticating against %s as user '%s'...\n", config.BaseURL(), loginUser)

		env, err := api.Login(ctxOf(cmd), loginUser, loginPass)
		if err == nil {
			err = env.Check()
		}
		if err != nil {
			fail("login failed: %s", client.Detail(err))
		}

		// Keep the address so later commands need no --base-url.
		if err := config.SaveBaseURL(config.BaseURL()); err != nil {
			fail("failed to save configuration file: %v", err)
		}
		if err := config.SaveToken(env.Data.AccessToken); err != nil {
			fail("failed to save configuration file: %v", err)
		}

		fmt.Printf("Login successful. Token saved to %s.\n", config.Path())
		if exp, err := auth.ExpiresAt(env.Data.AccessToken); err == nil {
			fmt.Printf("Token expires at %s.\n", exp.Local().Format(time.RFC1123))
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved access token",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.ClearToken(); err != nil {
			fail("failed to save configuration file: %v", err)
		}
		fmt.Println("Logged out.")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "admin", "Operator username")
	loginCmd.Flags().StringVarP(&loginPass, "password", "p", "", "Operator password")

	_ = loginCmd.MarkFlagRequired("password")
}
