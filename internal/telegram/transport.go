package telegram

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/bot"
)

// SendText sends a text message
func (c *Client) SendText(ctx context.Context, msg bot.Text) (bot.Message, error) {
	sent, err := c.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:          msg.ChatID,
		Text:            msg.Text,
		ReplyParameters: replyTo(msg.ReplyTo),
		ReplyMarkup:     markup(msg.Keyboard),
	})
	if err != nil {
		return bot.Message{}, fmt.Errorf("failed to send message: %w", err)
	}
	return handle(sent), nil
}

// SendDocument sends a file as a document
func (c *Client) SendDocument(ctx context.Context, media bot.Media) (bot.Message, error) {
	sent, err := c.api.SendDocument(ctx, &tgbot.SendDocumentParams{
		ChatID:          media.ChatID,
		Document:        &models.InputFileString{Data: media.Ref},
		Caption:         media.Caption,
		ReplyParameters: replyTo(media.ReplyTo),
	})
	if err != nil {
		return bot.Message{}, fmt.Errorf("failed to send document: %w", err)
	}
	return handle(sent), nil
}

// SendVideo sends a file as a video
func (c *Client) SendVideo(ctx context.Context, media bot.Media) (bot.Message, error) {
	sent, err := c.api.SendVideo(ctx, &tgbot.SendVideoParams{
		ChatID:          media.ChatID,
		Video:           &models.InputFileString{Data: media.Ref},
		Caption:         media.Caption,
		ReplyParameters: replyTo(media.ReplyTo),
	})
	if err != nil {
		return bot.Message{}, fmt.Errorf("failed to send video: %w", err)
	}
	return handle(sent), nil
}

// SendAudio sends a file as audio
func (c *Client) SendAudio(ctx context.Context, media bot.Media) (bot.Message, error) {
	sent, err := c.api.SendAudio(ctx, &tgbot.SendAudioParams{
		ChatID:          media.ChatID,
		Audio:           &models.InputFileString{Data: media.Ref},
		Caption:         media.Caption,
		ReplyParameters: replyTo(media.ReplyTo),
	})
	if err != nil {
		return bot.Message{}, fmt.Errorf("failed to send audio: %w", err)
	}
	return handle(sent), nil
}

// EditText replaces the text and keyboard of a message
func (c *Client) EditText(ctx context.Context, msg bot.Message, text string, kb bot.Keyboard) error {
	_, err := c.api.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:      msg.ChatID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: markup(kb),
	})
	if err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// Delete removes a message
func (c *Client) Delete(ctx context.Context, msg bot.Message) error {
	ok, err := c.api.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    msg.ChatID,
		MessageID: msg.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to delete message %d", msg.ID)
	}
	return nil
}

// MemberRole looks up the user's status in the chat
func (c *Client) MemberRole(ctx context.Context, chatID, userID int64) (bot.Role, error) {
	member, err := c.api.GetChatMember(ctx, &tgbot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat member: %w", err)
	}
	return role(member.Type)
}

// AnswerCallback acknowledges a button press
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	_, err := c.api.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

func role(t models.ChatMemberType) (bot.Role, error) {
	switch t {
	case models.ChatMemberTypeOwner:
		return bot.RoleOwner, nil
	case models.ChatMemberTypeAdministrator:
		return bot.RoleAdministrator, nil
	case models.ChatMemberTypeLeft, models.ChatMemberTypeBanned:
		return "", bot.ErrNotMember
	}
	return bot.RoleMember, nil
}

func handle(m *models.Message) bot.Message {
	return bot.Message{ChatID: m.Chat.ID, ID: m.ID}
}

func replyTo(id int) *models.ReplyParameters {
	if id == 0 {
		return nil
	}
	return &models.ReplyParameters{MessageID: id, AllowSendingWithoutReply: true}
}

// markup converts a keyboard, returning a nil interface for an empty one
func markup(kb bot.Keyboard) models.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(kb))
	for _, r := range kb {
		row := make([]models.InlineKeyboardButton, 0, len(r))
		for _, b := range r {
			row = append(row, models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data, URL: b.URL})
		}
		rows = append(rows, row)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

var _ bot.Transport = (*Client)(nil)
