package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"icctv-admin/internal/auth"
	"icctv-admin/internal/client"
	"icctv-admin/internal/config"
	"icctv-admin/internal/store"
)

// newClient builds an API client from the loaded configuration. The
// persisted token is read on every request.
func newClient() *client.Client {
	return client.New(client.Config{
		BaseURL: config.BaseURL(),
		Timeout: config.Timeout(),
		Tokens:  config.Tokens(),
		Logger:  &logger,
	})
}

// getRegistry checks for a usable token and returns the stores of one
// command run. Outcome notifications go to the logger.
func getRegistry() *store.Registry {
	token := config.Token()
	if token == "" {
		fail("Not logged in. Please run 'icctv-admin login' first.")
	}
	if auth.Expired(token, time.Now()) {
		logger.Warn().Msg("access token has expired, run 'icctv-admin login' again")
	}

	return store.NewRegistry(newClient(), store.LogNotifier{Logger: logger})
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// exitOnErr stops the command on err. The store already reported the
// failure, so nothing more is printed.
func exitOnErr(err error) {
	if err != nil {
		os.Exit(1)
	}
}
