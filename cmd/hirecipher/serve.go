package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iajcodes/HireC/internal/auth"
	"github.com/iajcodes/HireC/internal/config"
	"github.com/iajcodes/HireC/internal/ingestion"
	"github.com/iajcodes/HireC/internal/llm"
	"github.com/iajcodes/HireC/internal/logger"
	"github.com/iajcodes/HireC/internal/server"
	"github.com/iajcodes/HireC/internal/store"
)

var (
	servePort    int
	serveStore   string
	serveConfig  string
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes login, resume upload, and roster search endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveStore, "store", "hirecipher.db", "Path to the local store database file")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func loadServeConfig() (config.Config, error) {
	cfg := config.Config{
		Port:      servePort,
		StorePath: serveStore,
		Verbose:   serveVerbose,
	}

	if serveConfig != "" {
		fileCfg, err := config.LoadConfig(serveConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = config.APIKeyFromEnv()
	}
	if cfg.APIKey == "" {
		return config.Config{}, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Verbose || serveVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is not actionable

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.StorePath, log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}
	defer client.Close()

	adapter, err := ingestion.NewAdapter(client,
		ingestion.WithTimeout(time.Duration(cfg.IngestTimeoutSeconds)*time.Second),
		ingestion.WithLogger(log),
	)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:  cfg.Port,
		Store: st,
		Gate:  auth.NewGate(st, nil, log),
		// One upload at a time; a second submission while one is in
		// flight is rejected, not queued.
		Extractor: ingestion.NewSingleFlight(adapter),
		JWT:       jwtCfg,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
