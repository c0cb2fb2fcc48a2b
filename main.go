package main

import (
	"os"
	"time"

	"ChessyBot/internal/bot"
	"ChessyBot/internal/core"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	tb "gopkg.in/telebot.v4"
)

// Handler aggregates bot dependencies
type Handler struct {
	bot     *tb.Bot
	feature *bot.FeatureHandler
	sched   *bot.Scheduler
	store   core.SettingsInterface
}

func main() {
	logrus.Info("Bot is starting...")
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		logrus.Fatal("BOT_TOKEN missing")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	b, err := tb.NewBot(tb.Settings{Token: token, Poller: &tb.LongPoller{Timeout: 10 * time.Second}})
	if err != nil {
		logrus.WithError(err).Fatal("bot create failed")
	}

	h := NewHandler(b)
	h.Register()

	bot.StartKeepAlive(port)

	// Resume quizzes for every chat seen before this restart
	for _, chatID := range h.store.ChatIDs() {
		h.sched.Schedule(chatID)
	}

	logrus.WithField("username", b.Me.Username).Info("Bot started")
	b.Start()
}

// NewHandler wires dependencies
func NewHandler(b *tb.Bot) *Handler {
	store := core.NewSettings("chat_settings.json")
	bank := bot.LoadQuestions("questions.json")
	perms := bot.NewPermissions(b, b.Me)
	sched := bot.NewScheduler(b, store, bank, bot.QuizInterval)
	feature := bot.NewFeatureHandler(b, store, sched, perms, b.Me)
	return &Handler{bot: b, feature: feature, sched: sched, store: store}
}

// Register sets handlers
func (h *Handler) Register() {
	h.bot.Handle("/start", h.feature.HandleStart)
	h.bot.Handle("/settings", h.feature.HandleSettings)
	h.bot.Handle(tb.OnUserJoined, h.feature.HandleUserJoined)

	handleButton := func(btn tb.InlineButton, fn func(tb.Context) error) {
		h.bot.Handle(&btn, fn)
	}
	handleButton(bot.AboutButton(), h.feature.HandleAbout)
	handleButton(bot.BackFromAboutButton(), h.feature.HandleBackFromAbout)
	handleButton(bot.LanguageMenuButton(), h.feature.HandleLanguageMenu)
	handleButton(bot.AutoDeleteMenuButton(), h.feature.HandleAutoDeleteMenu)
	handleButton(bot.AutoPinMenuButton(), h.feature.HandleAutoPinMenu)
	handleButton(bot.LanguagePickButton(""), h.feature.HandleLanguageSelect)
	handleButton(bot.AutoDeleteSetButton(""), h.feature.HandleAutoDeleteSelect)
	handleButton(bot.AutoPinSetButton(""), h.feature.HandleAutoPinSelect)
	handleButton(bot.BackToSettingsButton(), h.feature.HandleBackToSettings)
	handleButton(bot.CloseButton(), h.feature.HandleClose)
	h.setBotCommands()
}

// setBotCommands sets bot commands
func (h *Handler) setBotCommands() {
	commands := []tb.Command{
		{Text: "start", Description: "Start the bot and activate quizzes"},
		{Text: "settings", Description: "Open the quiz settings menu"},
	}
	_ = h.bot.SetCommands(commands)
}
