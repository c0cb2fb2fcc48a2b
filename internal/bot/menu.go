package bot

import (
	"fmt"

	"github.com/sirupsen/logrus"
	tb "gopkg.in/telebot.v4"
)

// Languages the quiz can be served in.
var Languages = []string{"English", "Hindi"}

// CreateInlineButton helper
func CreateInlineButton(unique, text string) tb.InlineButton {
	return tb.InlineButton{Unique: unique, Text: text}
}

// LanguageMenuButton opens the language picker
func LanguageMenuButton() tb.InlineButton {
	return CreateInlineButton("change_language", "🌐 Language")
}

// AutoDeleteMenuButton opens the auto-delete toggle screen
func AutoDeleteMenuButton() tb.InlineButton {
	return CreateInlineButton("toggle_autodelete", "🗑️ Auto-Delete")
}

// AutoPinMenuButton opens the auto-pin toggle screen
func AutoPinMenuButton() tb.InlineButton {
	return CreateInlineButton("toggle_autopin", "📌 Auto-Pin")
}

// BackToSettingsButton returns to the main settings screen
func BackToSettingsButton() tb.InlineButton {
	return CreateInlineButton("back_to_settings", "↩️ Back")
}

// CloseButton dismisses the current screen
func CloseButton() tb.InlineButton {
	return CreateInlineButton("quiz_close", "Close")
}

// AboutButton opens the about screen
func AboutButton() tb.InlineButton {
	return CreateInlineButton("about", "📝 About")
}

// BackFromAboutButton leaves the about screen
func BackFromAboutButton() tb.InlineButton {
	return CreateInlineButton("back_from_about", "↩️ Back")
}

// LanguagePickButton selects a concrete language
func LanguagePickButton(language string) tb.InlineButton {
	return tb.InlineButton{Unique: "pick_language", Text: language, Data: language}
}

// AutoDeleteSetButton selects auto-delete ON or OFF
func AutoDeleteSetButton(value string) tb.InlineButton {
	return tb.InlineButton{Unique: "set_autodelete", Text: value, Data: value}
}

// AutoPinSetButton selects auto-pin ON or OFF
func AutoPinSetButton(value string) tb.InlineButton {
	return tb.InlineButton{Unique: "set_autopin", Text: value, Data: value}
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func settingsText(cfg ChatSettings) string {
	return fmt.Sprintf("🔩 Setup Zone\n\n"+
		"🌐 Language : %s\n"+
		"🗑️ Auto-Delete : %s\n"+
		"📌 Auto-Pin : %s\n\n"+
		"Select an option:", cfg.Language, onOff(cfg.AutoDelete), onOff(cfg.AutoPin))
}

func settingsMarkup() *tb.ReplyMarkup {
	return &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{
		{LanguageMenuButton()},
		{AutoDeleteMenuButton()},
		{AutoPinMenuButton()},
	}}
}

func backMarkup() *tb.ReplyMarkup {
	return &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{{BackToSettingsButton()}}}
}

func closeMarkup() *tb.ReplyMarkup {
	return &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{{CloseButton()}}}
}

// HandleSettings shows the main settings screen (groups only)
func (fh *FeatureHandler) HandleSettings(c tb.Context) error {
	if c.Chat() == nil {
		return nil
	}
	if !isGroup(c.Chat()) {
		_, err := fh.api.Send(c.Chat(), "⚠️ Oops! This command is only for groups.")
		return err
	}
	cfg := fh.settings.Ensure(c.Chat().ID)
	_, err := fh.api.Send(c.Chat(), settingsText(cfg), settingsMarkup())
	return err
}

// HandleBackToSettings re-renders the main settings screen
func (fh *FeatureHandler) HandleBackToSettings(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil {
		return nil
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	cfg := fh.settings.Ensure(c.Chat().ID)
	_, err := fh.api.Edit(c.Callback().Message, settingsText(cfg), settingsMarkup())
	return err
}

// denyNotAdmin terminates an admin-gated flow into the shared denial screen
func (fh *FeatureHandler) denyNotAdmin(c tb.Context) error {
	_, err := fh.api.Edit(c.Callback().Message, "You don't have admin right to perform this action.", closeMarkup())
	return err
}

// HandleLanguageMenu shows the language picker (admins only)
func (fh *FeatureHandler) HandleLanguageMenu(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil || c.Sender() == nil {
		return nil
	}
	if !fh.perms.IsChatAdmin(c.Chat(), c.Sender()) {
		return fh.denyNotAdmin(c)
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	cfg := fh.settings.Ensure(c.Chat().ID)
	text := fmt.Sprintf("🌐 Current Language: %s\n\nSelect your preferred language:", cfg.Language)
	rows := make([][]tb.InlineButton, 0, len(Languages)+1)
	for _, lang := range Languages {
		rows = append(rows, []tb.InlineButton{LanguagePickButton(lang)})
	}
	rows = append(rows, []tb.InlineButton{BackToSettingsButton()})
	_, err := fh.api.Edit(c.Callback().Message, text, &tb.ReplyMarkup{InlineKeyboard: rows})
	return err
}

// HandleLanguageSelect stores the picked language (admins only)
func (fh *FeatureHandler) HandleLanguageSelect(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil || c.Sender() == nil {
		return nil
	}
	if !fh.perms.IsChatAdmin(c.Chat(), c.Sender()) {
		return fh.denyNotAdmin(c)
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	lang := c.Callback().Data
	if lang == "" {
		logrus.WithField("chat_id", c.Chat().ID).Error("Empty language selection payload")
		return nil
	}
	fh.settings.SetLanguage(c.Chat().ID, lang)
	_, err := fh.api.Edit(c.Callback().Message, fmt.Sprintf("Language set to %s.", lang), backMarkup())
	return err
}

// HandleAutoDeleteMenu shows the auto-delete toggle screen (admins only)
func (fh *FeatureHandler) HandleAutoDeleteMenu(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil || c.Sender() == nil {
		return nil
	}
	if !fh.perms.IsChatAdmin(c.Chat(), c.Sender()) {
		return fh.denyNotAdmin(c)
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	cfg := fh.settings.Ensure(c.Chat().ID)
	text := fmt.Sprintf("🛠️ Auto-Delete is: %s\n\n"+
		"ℹ️ What it means:\n"+
		"• ✅ ON: Old quiz will be auto-deleted\n"+
		"• ❌ OFF: Old quiz will stay in the chat\n\n"+
		"Tap below to toggle this setting 🔄", onOff(cfg.AutoDelete))
	markup := &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{
		{AutoDeleteSetButton("ON"), AutoDeleteSetButton("OFF")},
		{BackToSettingsButton()},
	}}
	_, err := fh.api.Edit(c.Callback().Message, text, markup)
	return err
}

// HandleAutoDeleteSelect stores the auto-delete choice (admins only)
func (fh *FeatureHandler) HandleAutoDeleteSelect(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil || c.Sender() == nil {
		return nil
	}
	if !fh.perms.IsChatAdmin(c.Chat(), c.Sender()) {
		return fh.denyNotAdmin(c)
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	on := c.Callback().Data == "ON"
	fh.settings.SetAutoDelete(c.Chat().ID, on)
	_, err := fh.api.Edit(c.Callback().Message, fmt.Sprintf("Auto-Delete set to %s.", onOff(on)), backMarkup())
	return err
}

// HandleAutoPinMenu shows the auto-pin toggle screen (admins only)
func (fh *FeatureHandler) HandleAutoPinMenu(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil || c.Sender() == nil {
		return nil
	}
	if !fh.perms.IsChatAdmin(c.Chat(), c.Sender()) {
		return fh.denyNotAdmin(c)
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	cfg := fh.settings.Ensure(c.Chat().ID)
	text := fmt.Sprintf("📌 Auto-Pin is: %s\n\n"+
		"ℹ️ What it means:\n"+
		"• ✅ ON: Auto-pins each quiz message.\n"+
		"• ❌ OFF: Quiz messages won't be pinned.\n\n"+
		"Tap below to toggle this setting 🔄", onOff(cfg.AutoPin))
	markup := &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{
		{AutoPinSetButton("ON"), AutoPinSetButton("OFF")},
		{BackToSettingsButton()},
	}}
	_, err := fh.api.Edit(c.Callback().Message, text, markup)
	return err
}

// HandleAutoPinSelect stores the auto-pin choice (admins only). Enabling
// requires the bot to hold pin rights; without them the setting stays
// unchanged and the chat is asked for the permission.
func (fh *FeatureHandler) HandleAutoPinSelect(c tb.Context) error {
	if c.Callback() == nil || c.Callback().Message == nil || c.Sender() == nil {
		return nil
	}
	if !fh.perms.IsChatAdmin(c.Chat(), c.Sender()) {
		return fh.denyNotAdmin(c)
	}
	_ = fh.api.Respond(c.Callback(), &tb.CallbackResponse{})
	on := c.Callback().Data == "ON"
	if on && !fh.perms.CanPin(c.Chat()) {
		_, err := fh.api.Edit(c.Callback().Message,
			"To perform this action, please make me admin with pin messages permission.", closeMarkup())
		return err
	}
	fh.settings.SetAutoPin(c.Chat().ID, on)
	_, err := fh.api.Edit(c.Callback().Message, fmt.Sprintf("Auto-Pin set to %s.", onOff(on)), backMarkup())
	return err
}
