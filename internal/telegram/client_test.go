package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/bot"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
)

func TestDecodeUpdate(t *testing.T) {
	tests := []struct {
		name     string
		update   *models.Update
		expected any
	}{
		{
			name: "channel video post",
			update: &models.Update{ChannelPost: &models.Message{
				ID:      3,
				Chat:    models.Chat{ID: -100, Type: models.ChatTypeChannel},
				Caption: "caption",
				Video:   &models.Video{FileID: "vid", FileName: "movie.mp4"},
			}},
			expected: bot.MediaEvent{
				ChatID:     -100,
				MessageID:  3,
				Caption:    "caption",
				Attachment: &bot.Attachment{Kind: files.KindVideo, Ref: "vid", Name: "movie.mp4"},
			},
		},
		{
			name: "channel post without media",
			update: &models.Update{ChannelPost: &models.Message{
				Chat: models.Chat{ID: -100, Type: models.ChatTypeChannel},
				Text: "hello",
			}},
			expected: nil,
		},
		{
			name: "private text",
			update: &models.Update{Message: &models.Message{
				ID:   9,
				Chat: models.Chat{ID: 42, Type: models.ChatTypePrivate},
				From: &models.User{ID: 42},
				Text: "batman",
			}},
			expected: bot.TextEvent{ChatID: 42, ChatType: bot.ChatPrivate, UserID: 42, MessageID: 9, Text: "batman"},
		},
		{
			name: "callback on accessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID:   "cb",
				From: models.User{ID: 42},
				Data: "filespage|batman|2",
				Message: models.MaybeInaccessibleMessage{
					Message: &models.Message{ID: 11, Chat: models.Chat{ID: 42}},
				},
			}},
			expected: bot.CallbackEvent{ID: "cb", UserID: 42, Data: "filespage|batman|2", Message: bot.Message{ChatID: 42, ID: 11}},
		},
		{
			name: "callback on inaccessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				ID:   "cb",
				From: models.User{ID: 42},
				Data: "sendfile|x",
			}},
			expected: bot.CallbackEvent{ID: "cb", UserID: 42, Data: "sendfile|x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeUpdate(tt.update))
		})
	}
}

func TestMarkup(t *testing.T) {
	assert.Nil(t, markup(nil))

	m := markup(bot.Keyboard{
		{{Text: "1. a", Data: "sendfile|a"}},
		{{Text: "Prev", Data: "filespage|q|1"}, {Text: "Start", URL: "https://t.me/x"}},
	})
	kb, ok := m.(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "sendfile|a", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "https://t.me/x", kb.InlineKeyboard[1][1].URL)
}

func TestRole(t *testing.T) {
	r, err := role(models.ChatMemberTypeOwner)
	require.NoError(t, err)
	assert.Equal(t, bot.RoleOwner, r)

	r, err = role(models.ChatMemberTypeAdministrator)
	require.NoError(t, err)
	assert.Equal(t, bot.RoleAdministrator, r)

	_, err = role(models.ChatMemberTypeLeft)
	assert.ErrorIs(t, err, bot.ErrNotMember)

	r, err = role(models.ChatMemberTypeMember)
	require.NoError(t, err)
	assert.Equal(t, bot.RoleMember, r)
}

func TestWorkerCount(t *testing.T) {
	assert.Equal(t, DefaultWorkers, workerCount(0))
	assert.Equal(t, DefaultWorkers, workerCount(-3))
	assert.Equal(t, 1, workerCount(1))
	assert.Equal(t, 32, workerCount(32))
}
