package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LKAC-Leander/boardReview/internal/app"
	"github.com/LKAC-Leander/boardReview/internal/config"
	"github.com/LKAC-Leander/boardReview/internal/infra/memory"
	pgstore "github.com/LKAC-Leander/boardReview/internal/infra/postgres"
	redisstore "github.com/LKAC-Leander/boardReview/internal/infra/redis"
	transport "github.com/LKAC-Leander/boardReview/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	takeBase := cfg.Share.BaseURL
	if takeBase == "" {
		takeBase = "http://localhost:" + finalPort + "/take"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var store app.QuizStore = memory.NewQuizStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = pgstore.NewQuizStore(pool)
	}
	if redisClient != nil {
		cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
		store = redisstore.NewQuizCache(redisClient, store, cacheTTL)
	}

	resultTTL := config.TTLDuration(cfg.Result.TTL, 30*time.Minute)
	var results app.ResultStore = memory.NewResultStore(resultTTL)
	var prefs app.PreferenceStore = memory.NewPreferenceStore()
	if redisClient != nil {
		results = redisstore.NewResultStore(redisClient, resultTTL)
		prefs = redisstore.NewPreferenceStore(redisClient)
	}

	catalog := app.NewCatalog(store)
	handler := transport.NewHandler(store, results, prefs, catalog, takeBase)
	wsHandler := transport.NewWSHandler(catalog)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logrus.Infof("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logrus.Info("shutting down server...")
	case <-ctx.Done():
		logrus.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
