package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obiora/librarium/internal/api"
	"github.com/obiora/librarium/internal/config"
	"github.com/obiora/librarium/internal/logger"
	"github.com/obiora/librarium/internal/session"
	"github.com/obiora/librarium/internal/store"
)

func HTTPCommand(ctx context.Context) *cobra.Command {
	var addr int
	var env string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "run the librarium http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

			var handler slog.Handler

			switch env {
			case "dev":
				handler = slog.NewTextHandler(os.Stderr, nil)
			case "prod":
				handler = slog.NewJSONHandler(os.Stderr, nil)
			default:
				return fmt.Errorf("environment can only be dev or prod")
			}

			baseLogger := slog.New(handler).With(
				slog.String("app", "librarium"),
				slog.String("runtime", runtime.Version()),
				slog.String("os", runtime.GOOS),
				slog.String("architecture", runtime.GOARCH),
			)

			viper.SetConfigFile("internal/config/.env")
			viper.AutomaticEnv()

			viper.SetDefault("SESSION_TTL", 60)
			viper.SetDefault("SWEEP_INTERVAL", 10)
			viper.SetDefault("MAX_DB_CONNS", 10)
			viper.SetDefault("SESSION_COOKIE", "library_session")
			viper.SetDefault("STATIC_DIR", "frontend")

			// a missing .env is fine, config can come entirely from the environment
			if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return fmt.Errorf("error reading in config: %v", err)
				}
			}

			var cfg config.Config

			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("error unmarshalling config: %v", err)
			}

			log := logger.NewSlogLogger(baseLogger)

			db, err := store.Open(cfg.Db_conn, cfg.Max_db_conns)

			if err != nil {
				return err
			}

			defer db.Close()

			pgStore, err := store.NewPostgresStore(db)

			if err != nil {
				return err
			}

			sessions, err := session.NewPostgresManager(db, time.Duration(cfg.Session_ttl)*time.Minute)

			if err != nil {
				return err
			}

			router := chi.NewRouter()

			server := api.New(router, log, pgStore, sessions, &cfg)
			server.RegisterRoutes()

			httpServer := &http.Server{
				Addr:        fmt.Sprintf(":%d", addr),
				Handler:     router,
				IdleTimeout: 15 * time.Minute,
			}

			sweepCtx, stopSweeper := context.WithCancel(ctx)
			defer stopSweeper()

			go func() {
				ticker := time.NewTicker(time.Duration(cfg.Sweep_interval) * time.Minute)
				defer ticker.Stop()

				for {
					select {
					case <-sweepCtx.Done():
						return
					case <-ticker.C:
						swept, err := sessions.DeleteExpired(sweepCtx)
						if err != nil {
							log.Error(err.Error(), "service", "session sweeper")
							continue
						}
						if swept > 0 {
							log.Info("swept expired sessions", "count", swept)
						}
					}
				}
			}()

			errCh := make(chan error, 1)

			log.Info("server startup", "status", fmt.Sprintf("server starting on port: %d", addr))
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err

			case <-sig:
				log.Info("server shutdown", "status", "kill signal received")
				ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("error shutting down server: %v", err)
				}

				log.Info("server shutdown", "status", "shutdown complete")
				return nil
			}
		},
	}

	cmd.Flags().IntVarP(&addr, "addr", "a", 3000, "server address")
	cmd.Flags().StringVarP(&env, "env", "e", "dev", "current working environment")

	return cmd
}
