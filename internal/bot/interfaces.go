package bot

import (
	"ChessyBot/internal/core"

	tb "gopkg.in/telebot.v4"
)

// SettingsInterface lists chat settings store methods.
type SettingsInterface = core.SettingsInterface

type ChatSettings = core.ChatSettings

// API is the subset of the telegram client used by handlers and the
// scheduler. *tb.Bot satisfies it; tests substitute a fake.
type API interface {
	Send(to tb.Recipient, what interface{}, opts ...interface{}) (*tb.Message, error)
	Edit(msg tb.Editable, what interface{}, opts ...interface{}) (*tb.Message, error)
	Delete(msg tb.Editable) error
	Pin(msg tb.Editable, opts ...interface{}) error
	Respond(c *tb.Callback, resp ...*tb.CallbackResponse) error
	ChatMemberOf(chat, user tb.Recipient) (*tb.ChatMember, error)
}
