// Package bot implements the search and delivery pipeline on top of a chat Transport.
package bot

import (
	"context"
	"log/slog"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/lifecycle"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/metrics"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/paging"
)

// Config controls the handler's behavior
type Config struct {
	SourceChannelID int64
	LogChannelID    int64
	AdminIDs        []int64

	// Username is the bot's own handle, without '@'
	Username string
	PageSize int

	// GroupRedirect answers group searches with a link to a private chat
	GroupRedirect bool
	// AckFirst answers callbacks before processing them instead of after
	AckFirst bool

	Texts Texts
}

// Handler routes inbound events through indexing, search, delivery and admin commands
type Handler struct {
	cfg    Config
	files  *files.Service
	tr     Transport
	sched  *lifecycle.Scheduler
	logger *slog.Logger
	admins map[int64]struct{}
}

// New creates a handler
func New(cfg Config, svc *files.Service, tr Transport, sched *lifecycle.Scheduler, logger *slog.Logger) *Handler {
	if cfg.PageSize <= 0 {
		cfg.PageSize = paging.DefaultPageSize
	}
	if cfg.Texts == (Texts{}) {
		cfg.Texts = DefaultTexts("", sched.Delay())
	}
	if logger == nil {
		logger = slog.Default()
	}

	admins := make(map[int64]struct{}, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = struct{}{}
	}

	return &Handler{
		cfg:    cfg,
		files:  svc,
		tr:     tr,
		sched:  sched,
		logger: logger,
		admins: admins,
	}
}

// scheduleDelete removes msg after the scheduler delay. Failures are only logged.
func (h *Handler) scheduleDelete(msg Message) *lifecycle.Task {
	return h.sched.After(func(ctx context.Context) {
		if err := h.tr.Delete(ctx, msg); err != nil {
			metrics.Cleanups.WithLabelValues("failed").Inc()
			h.logger.Debug("Deferred delete failed", "chat_id", msg.ChatID, "message_id", msg.ID, "error", err)
			return
		}
		metrics.Cleanups.WithLabelValues("ok").Inc()
	})
}

// reply sends a text message and optionally schedules its removal
func (h *Handler) reply(ctx context.Context, out Text, transient bool) {
	msg, err := h.tr.SendText(ctx, out)
	if err != nil {
		h.logger.Warn("Failed to send message", "chat_id", out.ChatID, "error", err)
		return
	}
	if transient {
		h.scheduleDelete(msg)
	}
}

// notifyOperator writes a line to the log channel. Failures never propagate.
func (h *Handler) notifyOperator(ctx context.Context, line string) {
	if h.cfg.LogChannelID == 0 {
		return
	}
	if _, err := h.tr.SendText(ctx, Text{ChatID: h.cfg.LogChannelID, Text: line}); err != nil {
		h.logger.Warn("Failed to write to log channel", "error", err)
	}
}
