package bot

import (
	"fmt"

	"github.com/sirupsen/logrus"
	tb "gopkg.in/telebot.v4"
)

// FeatureHandler aggregates the bot's user-facing handlers
type FeatureHandler struct {
	api      API
	settings SettingsInterface
	sched    *Scheduler
	perms    *Permissions
	me       *tb.User
}

// NewFeatureHandler constructs the feature handler
func NewFeatureHandler(api API, settings SettingsInterface, sched *Scheduler, perms *Permissions, me *tb.User) *FeatureHandler {
	return &FeatureHandler{api: api, settings: settings, sched: sched, perms: perms, me: me}
}

func (fh *FeatureHandler) groupURL() string {
	return fmt.Sprintf("https://t.me/%s?startgroup=true", fh.me.Username)
}

func (fh *FeatureHandler) privateURL() string {
	return fmt.Sprintf("https://t.me/%s", fh.me.Username)
}

func isGroup(chat *tb.Chat) bool {
	return chat != nil && (chat.Type == tb.ChatGroup || chat.Type == tb.ChatSuperGroup)
}

func (fh *FeatureHandler) welcomeText() string {
	return "♟️ Welcome to ChessyBot! 🧠\n" +
		"Your chess quiz companion for group battles!\n\n" +
		"👥 Add me to your group and I will:\n\n" +
		"🔁 Drop a new chess question every 30 minutes\n\n" +
		"♟️ Sharpen your skills with fun and tricky puzzles\n\n" +
		"🏁 Ready to play? Just add me to your group now!"
}

func (fh *FeatureHandler) welcomeMarkup(withAddButton bool) *tb.ReplyMarkup {
	var rows [][]tb.InlineButton
	if withAddButton {
		rows = append(rows, []tb.InlineButton{{Text: "➕ Add me to your group ➕", URL: fh.groupURL()}})
	}
	rows = append(rows, []tb.InlineButton{AboutButton()})
	return &tb.ReplyMarkup{InlineKeyboard: rows}
}

// HandleStart greets the chat and, in groups, activates the quiz schedule
func (fh *FeatureHandler) HandleStart(c tb.Context) error {
	if c.Chat() == nil || c.Sender() == nil {
		return nil
	}
	chat := c.Chat()
	if isGroup(chat) {
		text := fmt.Sprintf("Hi %s !!\n\nThanks for starting me !!\n"+
			"Chess quizzes will now be sent to this group.\n\n"+
			"To change bot settings\nJust hit /settings", c.Sender().FirstName)
		markup := &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{{{Text: "Start Me", URL: fh.privateURL()}}}}
		if _, err := fh.api.Send(chat, text, markup); err != nil {
			logrus.WithError(err).WithField("chat_id", chat.ID).Error("Failed to send group welcome")
		}
		fh.settings.Ensure(chat.ID)
		fh.settings.SetActive(chat.ID, true)
		fh.sched.Schedule(chat.ID)
		return nil
	}
	_, err := fh.api.Send(chat, fh.welcomeText(), fh.welcomeMarkup(true))
	return err
}

// HandleUserJoined schedules quizzes when the bot itself is added to a group
func (fh *FeatureHandler) HandleUserJoined(c tb.Context) error {
	if c.Message() == nil || c.Chat() == nil {
		return nil
	}
	for _, u := range joinedUsers(c.Message()) {
		if u.ID != fh.me.ID {
			continue
		}
		chatID := c.Chat().ID
		fh.settings.Ensure(chatID)
		if _, err := fh.api.Send(c.Chat(),
			"Hi everyone! I'm ChessyBot. I will now start sending chess quizzes every 30 minutes.\n"+
				"Use /settings to customize the settings."); err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send join greeting")
		}
		fh.sched.Schedule(chatID)
		logrus.WithField("chat_id", chatID).Info("Added to group")
	}
	return nil
}

// joinedUsers extracts users from a join update
func joinedUsers(msg *tb.Message) []*tb.User {
	if len(msg.UsersJoined) > 0 {
		users := make([]*tb.User, len(msg.UsersJoined))
		for i := range msg.UsersJoined {
			users[i] = &msg.UsersJoined[i]
		}
		return users
	}
	if msg.UserJoined != nil {
		return []*tb.User{msg.UserJoined}
	}
	return nil
}

// HandleAbout shows the about screen
func (fh *FeatureHandler) HandleAbout(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil {
		return nil
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	text := "🧠 About ChessyBot\n\n" +
		"ChessyBot brings the world of chess to life through fun and challenging quizzes.\n\n" +
		"➤ Sends automatic chess quizzes every 30 minutes in group chats\n" +
		"➤ Covers everything from classic tactics to modern legends\n" +
		"➤ Easy to set up with the /settings command\n\n" +
		"Challenge your friends and rule the 64 squares!"
	markup := &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{{BackFromAboutButton()}}}
	_, err := fh.api.Edit(c.Callback().Message, text, markup)
	return err
}

// HandleBackFromAbout returns from the about screen to the welcome screen
func (fh *FeatureHandler) HandleBackFromAbout(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil {
		return nil
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	_, err := fh.api.Edit(c.Callback().Message, fh.welcomeText(), fh.welcomeMarkup(!isGroup(c.Chat())))
	return err
}

// HandleClose deletes the message carrying the current screen
func (fh *FeatureHandler) HandleClose(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil {
		return nil
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	if err := fh.api.Delete(c.Callback().Message); err != nil {
		logrus.WithError(err).WithField("chat_id", c.Chat().ID).Warn("Failed to delete message on close")
	}
	return nil
}
