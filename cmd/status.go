package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"icctv-admin/internal/auth"
	"icctv-admin/internal/config"
)

type statusReport struct {
	BaseURL   string     `json:"base_url"`
	Config    string     `json:"config"`
	LoggedIn  bool       `json:"logged_in"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
	Backend   string     `json:"backend"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured backend and login state",
	Run: func(cmd *cobra.Command, args []string) {
		token := config.Token()
		report := statusReport{
			BaseURL:  config.BaseURL(),
			Config:   config.Path(),
			LoggedIn: token != "",
		}

		if token != "" {
			exp, err := auth.ExpiresAt(token)
			switch {
			case err == nil:
				report.ExpiresAt = &exp
				report.Expired = time.Now().After(exp)
			case errors.Is(err, auth.ErrNoExpiry):
			default:
				logger.Warn().Err(err).Msg("saved token is not a JWT")
			}
		}

		if text, err := newClient().Health(ctxOf(cmd)); err != nil {
			report.Backend = "unreachable: " + err.Error()
		} else {
			report.Backend = text
		}

		render(report, func(w io.Writer) {
			fmt.Fprintf(w, "Backend:\t%s\n", report.BaseURL)
			fmt.Fprintf(w, "Health:\t%s\n", report.Backend)
			fmt.Fprintf(w, "Config:\t%s\n", report.Config)
			fmt.Fprintf(w, "Logged in:\t%s\n", yesNo(report.LoggedIn))
			if report.ExpiresAt != nil {
				state := "valid"
				if report.Expired {
					state = "expired"
				}
				fmt.Fprintf(w, "Token:\t%s (until %s)\n", state, report.ExpiresAt.Local().Format(time.RFC1123))
			}
		})
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend health endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := newClient().Health(ctxOf(cmd))
		if err != nil {
			fail("health check failed: %v", err)
		}
		fmt.Println(text)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(healthCmd)
}
