// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/medical-staff/config"
	"github.com/ariebrainware/medical-staff/endpoint"
	"github.com/ariebrainware/medical-staff/middleware"
	"github.com/ariebrainware/medical-staff/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medical-staff",
		Short: "Physician, patient and patient record API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(geoipCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger := util.InitLogger(cfg.AppEnv, cfg.LogLevel)

			db, err := config.ConnectDatabase(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err := config.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info().Str("driver", cfg.DBDriver).Msg("schema is up to date")
			return nil
		},
	}
}

func geoipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geoip",
		Short: "Manage the GeoIP database used for security log locations",
	}

	var url, dest string
	var timeout time.Duration
	download := &cobra.Command{
		Use:   "download",
		Short: "Download a GeoLite2-City database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dest == "" {
				dest = config.LoadConfig().GeoIPDBPath
			}
			if url == "" || dest == "" {
				return errors.New("both --url and a destination (--dest or GEOIP_DB_PATH) are required")
			}
			path, err := util.DownloadGeoIPWithRequest(cmd.Context(), util.DownloadRequest{URL: url, DestPath: dest, Timeout: timeout})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "GeoIP database written to %s\n", path)
			return nil
		},
	}
	download.Flags().StringVar(&url, "url", "", "download URL (.mmdb or .mmdb.gz)")
	download.Flags().StringVar(&dest, "dest", "", "destination path, defaults to GEOIP_DB_PATH")
	download.Flags().DurationVar(&timeout, "timeout", time.Minute, "download timeout")

	validate := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check that a GeoIP database can be opened",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.LoadConfig().GeoIPDBPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := util.ValidateGeoIP(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid GeoIP database\n", path)
			return nil
		},
	}

	cmd.AddCommand(download, validate)
	return cmd
}

func runServer() error {
	cfg := config.LoadConfig()
	logger := util.InitLogger(cfg.AppEnv, cfg.LogLevel)

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWTSECRET must be set")
	}
	util.SetJWTSecret(cfg.JWTSecret)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	util.SetSecurityLoggerDB(db)
	logger.Info().Str("driver", cfg.DBDriver).Msg("connected to database")

	if cfg.GeoIPDBPath != "" {
		if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
			logger.Warn().Err(err).Msg("geoip disabled")
		}
		defer util.CloseGeoIP()
	}

	if _, err := config.ConnectRedis(cfg); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, rate limiting and session revocation disabled")
	}

	gin.SetMode(cfg.GinMode)
	router, err := endpoint.NewRouter(db, endpoint.RouterConfig{
		AppName:   cfg.AppName,
		TokenTTL:  cfg.TokenTTL,
		RateLimit: middleware.RateLimitConfig{Limit: cfg.RateLimit, Window: cfg.RateWindow},
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
