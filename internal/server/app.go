package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/bot"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/lifecycle"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/sqlite"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/telegram"
)

// Run wires the store, the chat client and the ops server and blocks until ctx is done
func Run(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	repo, err := sqlite.NewRepository(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	client, err := telegram.New(cfg.BotToken, cfg.Workers, logger)
	if err != nil {
		return err
	}

	username, err := client.Username(ctx)
	if err != nil {
		return err
	}

	sched := lifecycle.NewScheduler(cfg.DeleteDelay)
	handler := bot.New(BotConfig(cfg, username), files.NewService(repo), client, sched, logger)
	srv := New(cfg.HTTPAddr, repo)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.Run(gctx, handler)
	})

	g.Go(func() error {
		logger.Info("Starting ops server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start ops server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Ops server shutdown failed", "error", err)
		}
		// Pending deletions fire now so transient messages do not outlive the process
		if err := sched.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Pending deletions not finished", "pending", sched.Pending(), "error", err)
		}
		return nil
	})

	return g.Wait()
}

// BotConfig maps the process configuration onto the handler configuration
func BotConfig(cfg *Config, username string) bot.Config {
	return bot.Config{
		SourceChannelID: cfg.FilesChannelID,
		LogChannelID:    cfg.LogChannelID,
		AdminIDs:        cfg.AdminIDs,
		Username:        username,
		PageSize:        cfg.PageSize,
		GroupRedirect:   cfg.GroupRedirect,
		AckFirst:        cfg.AckFirst,
		Texts:           bot.DefaultTexts(cfg.SupportChannel, cfg.DeleteDelay),
	}
}
