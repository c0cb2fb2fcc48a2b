package bot

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ChessyBot/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tb "gopkg.in/telebot.v4"
)

func testBank() *QuestionBank {
	return NewQuestionBank([]Question{
		{Question: "Which piece can only move diagonally?", Options: []string{"Rook", "Bishop"}, Answer: "B"},
	})
}

func testStore(t *testing.T) SettingsInterface {
	t.Helper()
	return core.NewSettingsAt(filepath.Join(t.TempDir(), "settings.json"))
}

func TestTick_DeletesPreviousAndRecordsNew(t *testing.T) {
	api := newFakeAPI()
	store := testStore(t)
	store.RecordQuiz(10, 42)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.tick(10)

	require.Len(t, api.deleted, 1)
	id, chatID := api.deleted[0].MessageSig()
	assert.Equal(t, "42", id)
	assert.Equal(t, int64(10), chatID)

	cfg := store.Ensure(10)
	assert.Equal(t, 101, cfg.LastQuizID)
	assert.True(t, cfg.Active)

	require.Len(t, api.sent, 1)
	poll, ok := api.sent[0].what.(*tb.Poll)
	require.True(t, ok)
	assert.Equal(t, tb.PollQuiz, poll.Type)
	assert.Equal(t, 1, poll.CorrectOption)
	assert.False(t, poll.Anonymous)
}

func TestTick_NoAutoDeleteKeepsOldPoll(t *testing.T) {
	api := newFakeAPI()
	store := testStore(t)
	store.RecordQuiz(10, 42)
	store.SetAutoDelete(10, false)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.tick(10)

	assert.Empty(t, api.deleted)
	assert.Equal(t, 101, store.Ensure(10).LastQuizID)
}

func TestTick_SendFailureMarksInactive(t *testing.T) {
	api := newFakeAPI()
	api.sendErr = errors.New("telegram: Forbidden: bot was kicked (403)")
	store := testStore(t)
	store.RecordQuiz(10, 42)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.tick(10)

	cfg := store.Ensure(10)
	assert.False(t, cfg.Active)
	assert.Equal(t, 42, cfg.LastQuizID)
}

func TestTick_NoQuestionsLeavesSettingsUntouched(t *testing.T) {
	api := newFakeAPI()
	store := testStore(t)
	store.RecordQuiz(10, 42)

	s := NewScheduler(api, store, NewQuestionBank(nil), time.Hour)
	s.tick(10)

	assert.Empty(t, api.sent)
	assert.Empty(t, api.deleted)
	cfg := store.Ensure(10)
	assert.True(t, cfg.Active)
	assert.Equal(t, 42, cfg.LastQuizID)
}

func TestTick_PinRightsFailureDisablesAutoPin(t *testing.T) {
	api := newFakeAPI()
	api.pinErr = errors.New("telegram: Bad Request: not enough rights to manage pinned messages (400)")
	store := testStore(t)
	store.SetAutoPin(10, true)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.tick(10)

	assert.False(t, store.Ensure(10).AutoPin)
	// The quiz poll plus the auto-pin notice
	require.Len(t, api.sent, 2)
	notice, ok := api.sent[1].what.(string)
	require.True(t, ok)
	assert.Contains(t, notice, "Auto-Pin feature has been turned off")
}

func TestTick_OtherPinFailureKeepsAutoPin(t *testing.T) {
	api := newFakeAPI()
	api.pinErr = errors.New("telegram: Bad Request: message to pin not found (400)")
	store := testStore(t)
	store.SetAutoPin(10, true)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.tick(10)

	assert.True(t, store.Ensure(10).AutoPin)
	require.Len(t, api.sent, 1)
}

func TestTick_PinSuccess(t *testing.T) {
	api := newFakeAPI()
	store := testStore(t)
	store.SetAutoPin(10, true)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.tick(10)

	require.Len(t, api.pinned, 1)
	id, _ := api.pinned[0].MessageSig()
	assert.Equal(t, "101", id)
}

func TestSchedule_Idempotent(t *testing.T) {
	api := newFakeAPI()
	store := testStore(t)

	s := NewScheduler(api, store, testBank(), time.Hour)
	s.Schedule(10)

	s.mu.Lock()
	first := s.stops[10]
	s.mu.Unlock()

	s.Schedule(10)

	s.mu.Lock()
	second := s.stops[10]
	require.Len(t, s.stops, 1)
	s.mu.Unlock()

	assert.False(t, first == second, "re-schedule must install a fresh timer")
	select {
	case <-first:
		// first timer cancelled
	default:
		t.Fatal("previous timer still live after re-schedule")
	}

	// Both registrations fire their immediate tick
	require.Eventually(t, func() bool { return api.sendCount() >= 2 }, 2*time.Second, 10*time.Millisecond)

	s.Stop(10)
	s.mu.Lock()
	assert.Empty(t, s.stops)
	s.mu.Unlock()
}
