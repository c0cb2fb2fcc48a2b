package bot

import (
	"encoding/json"
	"math/rand"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxQuestionWords is the poll question ceiling: longer questions are
// excluded rather than truncated, since cutting a question could leave a
// nonsensical prompt paired with a correct answer.
const maxQuestionWords = 100

// maxOptionRunes is the telegram poll option limit. Options are truncated,
// not excluded.
const maxOptionRunes = 100

// Question holds one quiz entry from the question file
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// CorrectIndex maps the answer letter to a zero-based poll option index.
// Missing or unrecognized letters map to 0.
func (q Question) CorrectIndex() int {
	switch strings.ToUpper(strings.TrimSpace(q.Answer)) {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	}
	return 0
}

// PollOptions returns the options capped to the platform length limit
func (q Question) PollOptions() []string {
	opts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		if runes := []rune(opt); len(runes) > maxOptionRunes {
			opt = string(runes[:maxOptionRunes])
		}
		opts[i] = opt
	}
	return opts
}

func (q Question) wordCount() int {
	return len(strings.Fields(q.Question))
}

// QuestionBank holds the questions loaded at startup
type QuestionBank struct {
	questions []Question
}

// NewQuestionBank wraps an already validated question list
func NewQuestionBank(questions []Question) *QuestionBank {
	return &QuestionBank{questions: questions}
}

// LoadQuestions reads the question file, keeping only structurally valid
// entries. A missing or malformed file yields an empty bank, not an error.
func LoadQuestions(file string) *QuestionBank {
	data, err := os.ReadFile(file)
	if err != nil {
		logrus.WithError(err).WithField("path", file).Error("Failed to read question file")
		return &QuestionBank{}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logrus.WithError(err).WithField("path", file).Error("Failed to parse question file")
		return &QuestionBank{}
	}
	var questions []Question
	for i, entry := range raw {
		var q Question
		if err := json.Unmarshal(entry, &q); err != nil {
			logrus.WithError(err).WithField("index", i).Warn("Invalid question format skipped")
			continue
		}
		if q.Question == "" || len(q.Options) == 0 {
			logrus.WithField("index", i).Warn("Invalid question format skipped")
			continue
		}
		questions = append(questions, q)
	}
	logrus.WithField("count", len(questions)).Info("Questions loaded")
	return &QuestionBank{questions: questions}
}

// Len returns the number of loaded questions
func (qb *QuestionBank) Len() int { return len(qb.questions) }

// PickRandom uniformly selects a question short enough to fit a poll.
// Returns false if no such question exists.
func (qb *QuestionBank) PickRandom() (Question, bool) {
	var sendable []Question
	for _, q := range qb.questions {
		if q.wordCount() <= maxQuestionWords {
			sendable = append(sendable, q)
		}
	}
	if len(sendable) == 0 {
		return Question{}, false
	}
	return sendable[rand.Intn(len(sendable))], true
}
