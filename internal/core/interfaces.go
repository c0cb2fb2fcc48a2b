package core

// SettingsInterface lists chat settings store methods.
type SettingsInterface interface {
	Ensure(chatID int64) ChatSettings
	SetLanguage(chatID int64, language string)
	SetAutoDelete(chatID int64, on bool)
	SetAutoPin(chatID int64, on bool)
	SetActive(chatID int64, on bool)
	RecordQuiz(chatID int64, messageID int)
	ChatIDs() []int64
}
