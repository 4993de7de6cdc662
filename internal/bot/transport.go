package bot

import (
	"context"
	"errors"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
)

// ErrNotMember is returned by MemberRole when the user is not in the chat
var ErrNotMember = errors.New("user is not a chat member")

// ChatType is the kind of chat an event came from
type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSupergroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// IsGroup reports whether the chat is a multi-user group
func (c ChatType) IsGroup() bool {
	return c == ChatGroup || c == ChatSupergroup
}

// Role is a chat member status as reported by the transport
type Role string

const (
	RoleOwner         Role = "creator"
	RoleAdministrator Role = "administrator"
	RoleMember        Role = "member"
)

// Message identifies a sent message
type Message struct {
	ChatID int64
	ID     int
}

// Button is an inline action. Data is a callback payload; URL opens a link.
type Button struct {
	Text string
	Data string
	URL  string
}

// Keyboard is a grid of inline buttons
type Keyboard [][]Button

// Text is an outgoing text message
type Text struct {
	ChatID   int64
	ReplyTo  int
	Text     string
	Keyboard Keyboard
}

// Media is an outgoing file sent by its external reference
type Media struct {
	ChatID  int64
	ReplyTo int
	Ref     string
	Caption string
}

// Transport is the chat client used to talk to users
type Transport interface {
	SendText(ctx context.Context, msg Text) (Message, error)
	SendDocument(ctx context.Context, media Media) (Message, error)
	SendVideo(ctx context.Context, media Media) (Message, error)
	SendAudio(ctx context.Context, media Media) (Message, error)
	EditText(ctx context.Context, msg Message, text string, kb Keyboard) error
	Delete(ctx context.Context, msg Message) error
	// MemberRole returns ErrNotMember when the user is not in the chat
	MemberRole(ctx context.Context, chatID, userID int64) (Role, error)
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}

// Attachment is the media carried by a source channel post
type Attachment struct {
	Kind files.Kind
	Ref  string
	Name string
}

// MediaEvent is a post in a channel the bot can read
type MediaEvent struct {
	ChatID     int64
	MessageID  int
	Caption    string
	Attachment *Attachment
}

// TextEvent is a text message or command from a user
type TextEvent struct {
	ChatID    int64
	ChatType  ChatType
	UserID    int64
	MessageID int
	Text      string
}

// CallbackEvent is a button press. Message is zero when the originating
// message is no longer accessible.
type CallbackEvent struct {
	ID      string
	UserID  int64
	Message Message
	Data    string
}
