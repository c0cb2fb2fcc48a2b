package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultLanguage is assigned to chats that never picked one.
const DefaultLanguage = "English"

// ChatSettings holds per-chat quiz preferences.
// LastQuizID of zero means no previous quiz message exists.
type ChatSettings struct {
	Language   string `json:"language"`
	AutoDelete bool   `json:"auto_delete"`
	AutoPin    bool   `json:"auto_pin"`
	LastQuizID int    `json:"last_quiz_id"`
	Active     bool   `json:"active"`
}

// Settings holds all chat settings and mirrors them to a JSON file
type Settings struct {
	mu    sync.RWMutex
	chats map[int64]*ChatSettings
	file  string
}

// NewSettings allocates a settings store backed by a JSON file in data/
func NewSettings(file string) SettingsInterface {
	const dataDir = "data"
	_ = os.MkdirAll(dataDir, 0755)
	if !strings.HasPrefix(file, "data/") {
		file = "data/" + file
	}
	s := &Settings{chats: make(map[int64]*ChatSettings), file: file}
	s.load()
	return s
}

// NewSettingsAt allocates a settings store backed by an explicit file path
func NewSettingsAt(file string) SettingsInterface {
	s := &Settings{chats: make(map[int64]*ChatSettings), file: file}
	s.load()
	return s
}

func defaultSettings() *ChatSettings {
	return &ChatSettings{Language: DefaultLanguage, AutoDelete: true, AutoPin: false, LastQuizID: 0, Active: true}
}

// Ensure returns the chat's settings, creating defaults on first access
func (s *Settings) Ensure(chatID int64) ChatSettings {
	s.mu.Lock()
	cfg, ok := s.chats[chatID]
	if !ok {
		cfg = defaultSettings()
		s.chats[chatID] = cfg
	}
	snapshot := *cfg
	s.mu.Unlock()
	if !ok {
		s.save()
	}
	return snapshot
}

// SetLanguage updates the chat's quiz language
func (s *Settings) SetLanguage(chatID int64, language string) {
	s.mutate(chatID, func(cfg *ChatSettings) { cfg.Language = language })
}

// SetAutoDelete toggles deletion of the previous quiz
func (s *Settings) SetAutoDelete(chatID int64, on bool) {
	s.mutate(chatID, func(cfg *ChatSettings) { cfg.AutoDelete = on })
}

// SetAutoPin toggles pinning of new quizzes
func (s *Settings) SetAutoPin(chatID int64, on bool) {
	s.mutate(chatID, func(cfg *ChatSettings) { cfg.AutoPin = on })
}

// SetActive marks whether delivery to the chat currently works
func (s *Settings) SetActive(chatID int64, on bool) {
	s.mutate(chatID, func(cfg *ChatSettings) { cfg.Active = on })
}

// RecordQuiz stores the freshly sent quiz message and marks the chat active
func (s *Settings) RecordQuiz(chatID int64, messageID int) {
	s.mutate(chatID, func(cfg *ChatSettings) {
		cfg.LastQuizID = messageID
		cfg.Active = true
	})
}

// ChatIDs returns every chat that ever interacted with the bot
func (s *Settings) ChatIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		ids = append(ids, id)
	}
	return ids
}

func (s *Settings) mutate(chatID int64, fn func(*ChatSettings)) {
	s.mu.Lock()
	cfg, ok := s.chats[chatID]
	if !ok {
		cfg = defaultSettings()
		s.chats[chatID] = cfg
	}
	fn(cfg)
	s.mu.Unlock()
	s.save()
}

func (s *Settings) save() {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.chats, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		logrus.WithError(err).Error("settings marshal")
		return
	}
	if err := os.WriteFile(s.file, data, 0644); err != nil {
		abs, _ := filepath.Abs(s.file)
		logrus.WithError(err).WithField("path", abs).Error("settings write")
	}
}

func (s *Settings) load() {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.chats); err != nil {
		logrus.WithError(err).WithField("path", s.file).Error("settings read, starting empty")
		s.chats = make(map[int64]*ChatSettings)
		return
	}
	if s.chats == nil {
		s.chats = make(map[int64]*ChatSettings)
	}
}
