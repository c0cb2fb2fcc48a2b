package bot

import (
	"github.com/sirupsen/logrus"
	tb "gopkg.in/telebot.v4"
)

// Permissions answers admin and pin-rights questions against the platform.
// Both checks fail closed: any query error reads as "no".
type Permissions struct {
	api API
	me  *tb.User
}

// NewPermissions creates the permission checker. me is the bot's own user.
func NewPermissions(api API, me *tb.User) *Permissions {
	return &Permissions{api: api, me: me}
}

// IsChatAdmin reports whether the user is an administrator or the creator
func (p *Permissions) IsChatAdmin(chat *tb.Chat, user *tb.User) bool {
	member, err := p.api.ChatMemberOf(chat, user)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"chat_id": chat.ID, "user_id": user.ID}).Warn("Admin check failed")
		return false
	}
	return member.Role == tb.Administrator || member.Role == tb.Creator
}

// CanPin reports whether the bot itself may pin messages in the chat
func (p *Permissions) CanPin(chat *tb.Chat) bool {
	member, err := p.api.ChatMemberOf(chat, p.me)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chat.ID).Warn("Pin permission check failed")
		return false
	}
	return member.Rights.CanPinMessages
}
