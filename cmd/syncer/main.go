// Command syncer runs one synchronization pass: it fetches recent Open
// Collective contributions, persists the ones not yet in the ledger, and
// announces them to Discord. It runs to completion and exits; scheduling
// (cron, systemd timer) is the caller's job, as is making sure two
// instances never share a ledger concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/twohoursonelife/collective-sync/internal/config"
	"github.com/twohoursonelife/collective-sync/internal/database"
	"github.com/twohoursonelife/collective-sync/internal/discord"
	"github.com/twohoursonelife/collective-sync/internal/ledger"
	"github.com/twohoursonelife/collective-sync/internal/model"
	"github.com/twohoursonelife/collective-sync/internal/opencollective"
	"github.com/twohoursonelife/collective-sync/internal/syncer"
	"github.com/twohoursonelife/collective-sync/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/syncer.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	os.Exit(run(logger, *configPath))
}

func run(logger *slog.Logger, configPath string) int {
	logger.Info("starting syncer",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
	)

	// A local .env may supply the ${VAR} values the config references.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	logger.Info("configuration loaded",
		"account", cfg.OpenCollective.AccountSlug,
		"endpoint", cfg.OpenCollective.Endpoint,
		"lookback", cfg.Sync.Lookback.Std(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer pool.Close()

	client := opencollective.NewClient(
		cfg.OpenCollective.Endpoint,
		cfg.OpenCollective.APIKey,
		opencollective.WithLogger(logger),
		opencollective.WithTimeout(cfg.OpenCollective.Timeout.Std()),
		opencollective.WithRetries(cfg.OpenCollective.MaxRetries, time.Second),
		opencollective.WithPageLimit(cfg.OpenCollective.PageLimit),
	)

	webhook := discord.NewWebhook(
		cfg.Discord.WebhookURL,
		discord.WithUsername(cfg.Discord.Username),
		discord.WithAvatarURL(cfg.Discord.AvatarURL),
		discord.WithLogger(logger),
	)

	slug := cfg.OpenCollective.AccountSlug
	fetcher := syncer.FetcherFunc(func(ctx context.Context, since time.Time) ([]model.Transaction, error) {
		return client.TransactionsSince(ctx, slug, since)
	})

	s := syncer.New(
		syncer.Config{Lookback: cfg.Sync.Lookback.Std()},
		fetcher,
		ledger.NewStore(pool, logger),
		webhook,
		logger,
	)

	res, err := s.Run(ctx)
	if err != nil {
		if res != nil && res.Inserted > 0 {
			logger.Error("saved transactions but failed to announce them",
				"inserted", res.Inserted,
				"error", err,
			)
		} else {
			logger.Error("sync failed", "error", err)
		}
		return 1
	}

	if res.New == 0 {
		fmt.Println("No new transactions to send.")
	} else {
		fmt.Printf("Saved and sent %d new transactions.\n", res.New)
	}

	return 0
}
