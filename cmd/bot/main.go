package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"videobot/internal/adapter/repo"
	"videobot/internal/bot"
	"videobot/internal/http/handlers"
	"videobot/internal/http/httpapi"
	"videobot/internal/infra"
	"videobot/internal/providers/freepik"
	"videobot/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := repo.EnsureSchema(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare schema")
	}

	tg, err := telegram.NewClient(telegram.Options{
		Token:   cfg.TelegramToken,
		BaseURL: cfg.TelegramBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure telegram client")
	}

	gateway, err := freepik.NewClient(freepik.Options{
		APIKey:  cfg.FreepikAPIKey,
		BaseURL: cfg.FreepikBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure freepik client")
	}

	coordinator := bot.NewCoordinator(
		tg,
		gateway,
		repo.NewQuotaRepository(dbpool),
		repo.NewJobRepository(dbpool),
		logger,
		bot.Config{
			DailyLimit:   cfg.DailyLimit,
			PollInterval: cfg.PollInterval,
			PollTimeout:  cfg.PollTimeout,
		},
	)

	// Liveness surface for the hosting platform.
	app := handlers.NewApp(dbpool)
	server := infra.NewHealthServer(cfg, httpapi.NewRouter(app))
	go func() {
		logger.Info().Msgf("health server listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	logger.Info().Int("daily_limit", cfg.DailyLimit).Msg("bot started")
	runUpdateLoop(ctx, tg, coordinator, cfg.UpdateTimeout, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("bot stopped")
}

// runUpdateLoop long-polls Telegram and dispatches updates sequentially
// until ctx is cancelled.
func runUpdateLoop(ctx context.Context, tg *telegram.Client, coordinator *bot.Coordinator, timeout time.Duration, logger infra.Logger) {
	var offset int64
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := tg.GetUpdates(ctx, offset, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn().Err(err).Msg("get updates failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			coordinator.HandleUpdate(ctx, u)
		}
	}
}
