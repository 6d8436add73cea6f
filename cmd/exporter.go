package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"icctv-admin/internal/auth"
	"icctv-admin/internal/client"
	"icctv-admin/internal/config"
	"icctv-admin/internal/metrics"
)

var (
	expPort       string
	expUser       string
	expPass       string
	serviceAction string // install, uninstall, start, stop
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	server *http.Server
	api    *client.Client
	tokens *auth.MemoryToken
	user   string
	pass   string
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

// login fetches a fresh access token with the exporter credentials.
func (p *program) login(ctx context.Context) error {
	if p.user == "" {
		return errors.New("no exporter credentials configured")
	}
	env, err := p.api.Login(ctx, p.user, p.pass)
	if err == nil {
		err = env.Check()
	}
	if err != nil {
		return fmt.Errorf("login as %s: %w", p.user, err)
	}
	p.tokens.Set(env.Data.AccessToken)
	return nil
}

func (p *program) run() {
	// 1. Initial login, unless a saved token is used
	if p.user != "" {
		logger.Info().Str("user", p.user).Msg("attempting initial login")
		if err := p.login(context.Background()); err != nil {
			// Exit so the service manager attempts a restart.
			logger.Error().Err(err).Msg("initial login failed")
			os.Exit(1)
		}
		logger.Info().Msg("initial login successful")
	}

	// 2. Setup Prometheus
	var login func(context.Context) error
	if p.user != "" {
		login = p.login
	}
	collector := metrics.NewFleetCollector(p.api, login, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(collector))

	p.server = &http.Server{
		Addr:              ":" + expPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", p.server.Addr).Msg("icctv exporter listening")

	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("http server error")
	}
}

func (p *program) Stop(s service.Service) error {
	logger.Info().Msg("stopping service")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("server forced to shutdown")
		}
	}
	return nil
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start the Prometheus exporter service",
	Long: `Starts a long-running HTTP server that exposes fleet metrics on /metrics.
Can be installed as a system service. Without --username the saved login token
is used and never refreshed.`,
	Run: func(cmd *cobra.Command, args []string) {
		// flags are bound to viper, so this covers flags and the config file
		expUser, expPass = config.ExporterCredentials()
		if expPort == "" {
			expPort = config.MetricsPort()
		}

		tokens := &auth.MemoryToken{}
		tokens.Set(config.Token())

		prg := &program{
			api: client.New(client.Config{
				BaseURL: config.BaseURL(),
				Timeout: config.Timeout(),
				Tokens:  tokens,
				Logger:  &logger,
			}),
			tokens: tokens,
			user:   expUser,
			pass:   expPass,
		}

		// Arguments passed to the binary when run as a service
		svcArgs := []string{"exporter", "--base-url", config.BaseURL(), "--port", expPort}
		if cfgFile != "" {
			svcArgs = append(svcArgs, "--config", cfgFile)
		}
		if expUser != "" {
			svcArgs = append(svcArgs, "--username", expUser, "--password", expPass)
		}

		svcConfig := &service.Config{
			Name:        "icctv-exporter",
			DisplayName: "icctv Prometheus Exporter",
			Description: "Exposes icctv fleet metrics to Prometheus",
			Arguments:   svcArgs,
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			fail("%v", err)
		}

		// Service control actions
		if serviceAction != "" {
			if serviceAction == "install" && expUser == "" && config.Token() == "" {
				fail("provide --username/--password or log in before installing the service")
			}
			if err := service.Control(s, serviceAction); err != nil {
				fail("failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run the service (blocking), as the service manager does or interactively
		if err := s.Run(); err != nil {
			logger.Error().Err(err).Msg("service stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expPort, "port", "", "Port to listen on (default metrics.port, 9108)")
	exporterCmd.Flags().StringVar(&expUser, "username", "", "Account used to log in again when the token expires")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Password of that account")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")

	_ = viper.BindPFlag(config.KeyExporterUser, exporterCmd.Flags().Lookup("username"))
	_ = viper.BindPFlag(config.KeyExporterPass, exporterCmd.Flags().Lookup("password"))
}
