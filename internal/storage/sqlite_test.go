package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-interview-backend/internal/session"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	sess := session.NewSession("token-1")
	sess.Asked["q_1"] = true
	sess.Asked["q_2"] = true
	sess.QuestionOrder = []string{"q_1", "q_2"}
	sess.Answers["q_1"] = "развернутый ответ"
	sess.AnswerLog = []session.AnswerRecord{{QuestionID: "q_1", Answer: "развернутый ответ"}}
	sess.CurrentIndex = 2
	sess.Completed = true

	require.NoError(t, store.Save(sess))

	loaded, err := store.Load("token-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, sess.Token, loaded.Token)
	assert.Equal(t, sess.Answers, loaded.Answers)
	assert.Equal(t, sess.AnswerLog, loaded.AnswerLog)
	assert.Equal(t, sess.Asked, loaded.Asked)
	assert.Equal(t, sess.QuestionOrder, loaded.QuestionOrder)
	assert.Equal(t, sess.CurrentIndex, loaded.CurrentIndex)
	assert.True(t, loaded.Completed)
	assert.WithinDuration(t, sess.CreatedAt, loaded.CreatedAt, time.Second)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newSQLiteStore(t)

	sess := session.NewSession("token-1")
	require.NoError(t, store.Save(sess))

	sess.Answers["q_1"] = "первый ответ"
	sess.Completed = true
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load("token-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "первый ответ", loaded.Answers["q_1"])
	assert.True(t, loaded.Completed)

	// Повторное сохранение не плодит строки
	assert.Len(t, store.All(), 1)
}

func TestSQLiteStoreLoadMissing(t *testing.T) {
	store := newSQLiteStore(t)

	loaded, err := store.Load("no-such-token")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSQLiteStoreEmptySessionCollections(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Save(session.NewSession("fresh")))

	loaded, err := store.Load("fresh")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// Пустые коллекции восстанавливаются инициализированными
	assert.NotNil(t, loaded.Asked)
	assert.NotNil(t, loaded.Answers)
	assert.NotNil(t, loaded.AnswerLog)
	assert.NotNil(t, loaded.QuestionOrder)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Save(session.NewSession("token-1")))
	require.NoError(t, store.Delete("token-1"))

	loaded, err := store.Load("token-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSQLiteStoreAll(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Save(session.NewSession("a")))
	require.NoError(t, store.Save(session.NewSession("b")))

	all := store.All()
	assert.Len(t, all, 2)
}
