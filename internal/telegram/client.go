// Package telegram adapts the Telegram Bot API client to bot.Transport and
// feeds incoming updates to a bot.Handler.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/bot"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
)

// EventHandler receives decoded updates
type EventHandler interface {
	OnMediaPosted(ctx context.Context, ev bot.MediaEvent) error
	OnText(ctx context.Context, ev bot.TextEvent)
	OnCallback(ctx context.Context, ev bot.CallbackEvent)
}

// Client implements bot.Transport on the Telegram Bot API
type Client struct {
	api     *tgbot.Bot
	logger  *slog.Logger
	handler EventHandler
}

// DefaultWorkers is the number of updates processed concurrently when none is configured
const DefaultWorkers = 8

// New creates a client that processes up to workers updates at once and verifies the token
func New(token string, workers int, logger *slog.Logger) (*Client, error) {
	c := &Client{logger: logger}

	api, err := tgbot.New(token,
		tgbot.WithDefaultHandler(c.dispatch),
		tgbot.WithWorkers(workerCount(workers)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	c.api = api

	return c, nil
}

// Username returns the bot's own handle
func (c *Client) Username(ctx context.Context) (string, error) {
	me, err := c.api.GetMe(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get bot identity: %w", err)
	}
	return me.Username, nil
}

// Run polls for updates and delivers them to h until ctx is done
func (c *Client) Run(ctx context.Context, h EventHandler) error {
	c.handler = h
	c.logger.Info("Starting update polling")
	c.api.Start(ctx)
	return nil
}

func workerCount(n int) int {
	if n < 1 {
		return DefaultWorkers
	}
	return n
}

func (c *Client) dispatch(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	if c.handler == nil {
		return
	}

	switch ev := decodeUpdate(update).(type) {
	case bot.MediaEvent:
		// Errors are already reported to the log channel by the handler
		if err := c.handler.OnMediaPosted(ctx, ev); err != nil {
			c.logger.Error("Media post not indexed", "chat_id", ev.ChatID, "message_id", ev.MessageID, "error", err)
		}
	case bot.TextEvent:
		c.handler.OnText(ctx, ev)
	case bot.CallbackEvent:
		c.handler.OnCallback(ctx, ev)
	}
}

// decodeUpdate converts an update into one of the bot event types, or nil
func decodeUpdate(update *models.Update) any {
	switch {
	case update.ChannelPost != nil:
		post := update.ChannelPost
		att := attachment(post)
		if att == nil {
			return nil
		}
		return bot.MediaEvent{
			ChatID:     post.Chat.ID,
			MessageID:  post.ID,
			Caption:    post.Caption,
			Attachment: att,
		}

	case update.Message != nil && update.Message.Text != "":
		msg := update.Message
		ev := bot.TextEvent{
			ChatID:    msg.Chat.ID,
			ChatType:  bot.ChatType(msg.Chat.Type),
			MessageID: msg.ID,
			Text:      msg.Text,
		}
		if msg.From != nil {
			ev.UserID = msg.From.ID
		}
		return ev

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		ev := bot.CallbackEvent{
			ID:     cq.ID,
			UserID: cq.From.ID,
			Data:   cq.Data,
		}
		if m := cq.Message.Message; m != nil {
			ev.Message = bot.Message{ChatID: m.Chat.ID, ID: m.ID}
		}
		return ev
	}

	return nil
}

func attachment(msg *models.Message) *bot.Attachment {
	switch {
	case msg.Document != nil:
		return &bot.Attachment{Kind: files.KindDocument, Ref: msg.Document.FileID, Name: msg.Document.FileName}
	case msg.Video != nil:
		return &bot.Attachment{Kind: files.KindVideo, Ref: msg.Video.FileID, Name: msg.Video.FileName}
	case msg.Audio != nil:
		return &bot.Attachment{Kind: files.KindAudio, Ref: msg.Audio.FileID, Name: msg.Audio.FileName}
	}
	return nil
}
