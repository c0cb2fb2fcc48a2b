package bot

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	tb "gopkg.in/telebot.v4"
)

// QuizInterval is the fixed delay between quizzes in a chat.
const QuizInterval = 1800 * time.Second

// Scheduler runs one recurring quiz timer per chat. Each chat gets its own
// goroutine, so ticks of the same chat never overlap; re-scheduling stops
// the previous goroutine before starting a new one.
type Scheduler struct {
	api      API
	settings SettingsInterface
	bank     *QuestionBank
	interval time.Duration

	mu    sync.Mutex
	stops map[int64]chan struct{}
}

// NewScheduler creates a scheduler with the given tick interval
func NewScheduler(api API, settings SettingsInterface, bank *QuestionBank, interval time.Duration) *Scheduler {
	return &Scheduler{
		api:      api,
		settings: settings,
		bank:     bank,
		interval: interval,
		stops:    make(map[int64]chan struct{}),
	}
}

// Schedule (re)registers the chat's quiz timer. The first tick fires
// immediately. Safe to call repeatedly: a prior timer is always cancelled
// before the new one is installed.
func (s *Scheduler) Schedule(chatID int64) {
	s.mu.Lock()
	if stop, ok := s.stops[chatID]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	s.stops[chatID] = stop
	s.mu.Unlock()
	go s.run(chatID, stop)
	logrus.WithField("chat_id", chatID).Info("Quiz scheduled")
}

// Stop cancels the chat's timer if one exists
func (s *Scheduler) Stop(chatID int64) {
	s.mu.Lock()
	if stop, ok := s.stops[chatID]; ok {
		close(stop)
		delete(s.stops, chatID)
	}
	s.mu.Unlock()
}

func (s *Scheduler) run(chatID int64, stop <-chan struct{}) {
	s.tick(chatID)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick(chatID)
		}
	}
}

// tick sends one quiz to the chat: delete the previous poll if configured,
// post the new one, pin it if configured. Failures stay scoped to this chat.
func (s *Scheduler) tick(chatID int64) {
	cfg := s.settings.Ensure(chatID)

	q, ok := s.bank.PickRandom()
	if !ok {
		logrus.WithField("chat_id", chatID).Warn("No sendable questions, skipping tick")
		return
	}

	if cfg.AutoDelete && cfg.LastQuizID != 0 {
		if err := s.api.Delete(storedMessage(chatID, cfg.LastQuizID)); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"chat_id": chatID, "message_id": cfg.LastQuizID}).Warn("Failed to delete previous quiz")
		}
	}

	poll := &tb.Poll{
		Type:          tb.PollQuiz,
		Question:      q.Question,
		CorrectOption: q.CorrectIndex(),
		Anonymous:     false,
	}
	poll.AddOptions(q.PollOptions()...)

	msg, err := s.api.Send(&tb.Chat{ID: chatID}, poll)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to send quiz")
		s.settings.SetActive(chatID, false)
		return
	}
	s.settings.RecordQuiz(chatID, msg.ID)

	if cfg.AutoPin {
		s.pinQuiz(chatID, msg)
	}
}

// pinQuiz pins the fresh quiz. A rights-denied failure disables auto-pin and
// tells the chat; any other failure is logged and retried next tick.
func (s *Scheduler) pinQuiz(chatID int64, msg *tb.Message) {
	err := s.api.Pin(msg, tb.Silent)
	if err == nil {
		return
	}
	logrus.WithError(err).WithFields(logrus.Fields{"chat_id": chatID, "message_id": msg.ID}).Warn("Failed to pin quiz")
	if !isRightsError(err) {
		return
	}
	s.settings.SetAutoPin(chatID, false)
	markup := &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{{CloseButton()}}}
	if _, err := s.api.Send(&tb.Chat{ID: chatID}, "Auto-Pin feature has been turned off because I do not have the required permission to pin messages.", markup); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to send auto-pin notice")
	}
}

// isRightsError matches the platform's insufficient-rights error message
func isRightsError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not enough rights")
}

// storedMessage references a message by chat and id for deletion
func storedMessage(chatID int64, messageID int) tb.StoredMessage {
	return tb.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)}
}
