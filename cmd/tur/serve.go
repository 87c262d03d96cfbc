package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/turlang/tur/internal/adapters/http"
	"github.com/turlang/tur/internal/config"
	"github.com/turlang/tur/internal/session"
	"github.com/turlang/tur/pkg/adapters/memory"
	"github.com/turlang/tur/pkg/adapters/redis"
	"github.com/turlang/tur/pkg/persistence/middleware"
	"github.com/turlang/tur/pkg/ports"
	"github.com/turlang/tur/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the JSON API over HTTP, exposing parsing, encoding and
stateful execution sessions. Sessions live in memory unless --redis points
at a Redis instance. Settings may also come from a YAML file via --config;
flags take precedence. Set TUR_SESSION_KEY (64 hex characters) to encrypt
stored sessions at rest.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		configPath, _ := cmd.Flags().GetString("config")
		logger := newLogger(cmd)

		cfg := config.Default()
		if configPath != "" {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
		}
		// Flags override the file.
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if cmd.Flags().Changed("redis") {
			cfg.Redis = redisAddr
		}

		catalog, err := registry.Builtin()
		if err != nil {
			fmt.Printf("Error loading builtin programs: %v\n", err)
			os.Exit(1)
		}

		var store ports.SessionStore = memory.NewStore()
		if cfg.Redis != "" {
			var opts []redis.Option
			if cfg.SessionTTL > 0 {
				opts = append(opts, redis.WithTTL(time.Duration(cfg.SessionTTL)))
			}
			redisStore := redis.New(cfg.Redis, "", 0, opts...)
			defer redisStore.Close()
			store = redisStore
		}

		// TUR_SESSION_KEY (hex, 32 bytes) turns on encryption at rest.
		if keyHex := os.Getenv("TUR_SESSION_KEY"); keyHex != "" {
			key, err := hex.DecodeString(keyHex)
			if err != nil || len(key) != 32 {
				fmt.Println("TUR_SESSION_KEY must be 64 hex characters (32 bytes)")
				os.Exit(1)
			}
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
			logger.Info("session encryption enabled")
		}

		manager := session.NewManager(store, logger)
		handler := httpAdapter.NewHandler(catalog, manager, logger)

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Tur Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Tur Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (empty = in-memory)")
	serveCmd.Flags().String("config", "", "Path to a YAML configuration file")
}
