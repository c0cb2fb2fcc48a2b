package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (SettingsInterface, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	return NewSettingsAt(path), path
}

func TestEnsure_CreatesDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	cfg := store.Ensure(42)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.True(t, cfg.AutoDelete)
	assert.False(t, cfg.AutoPin)
	assert.Equal(t, 0, cfg.LastQuizID)
	assert.True(t, cfg.Active)

	require.Equal(t, []int64{42}, store.ChatIDs())

	// Second access returns the same single record
	store.Ensure(42)
	assert.Len(t, store.ChatIDs(), 1)
}

func TestMutations_PersistAcrossReload(t *testing.T) {
	store, path := newTestStore(t)

	store.SetLanguage(7, "Hindi")
	store.SetAutoDelete(7, false)
	store.SetAutoPin(7, true)
	store.RecordQuiz(7, 99)

	reloaded := NewSettingsAt(path)
	cfg := reloaded.Ensure(7)
	assert.Equal(t, "Hindi", cfg.Language)
	assert.False(t, cfg.AutoDelete)
	assert.True(t, cfg.AutoPin)
	assert.Equal(t, 99, cfg.LastQuizID)
	assert.True(t, cfg.Active)
}

func TestRecordQuiz_MarksActive(t *testing.T) {
	store, _ := newTestStore(t)
	store.SetActive(1, false)
	store.RecordQuiz(1, 55)

	cfg := store.Ensure(1)
	assert.True(t, cfg.Active)
	assert.Equal(t, 55, cfg.LastQuizID)
}

func TestLoad_AbsentFileStartsEmpty(t *testing.T) {
	store := NewSettingsAt(filepath.Join(t.TempDir(), "missing.json"))
	assert.Empty(t, store.ChatIDs())
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0644))

	store := NewSettingsAt(path)
	assert.Empty(t, store.ChatIDs())
}

func TestEnsure_SnapshotDoesNotAliasStore(t *testing.T) {
	store, _ := newTestStore(t)
	cfg := store.Ensure(3)
	cfg.Language = "Klingon"
	assert.Equal(t, DefaultLanguage, store.Ensure(3).Language)
}
