package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_AppendAndHistory(t *testing.T) {
	store := NewSessionStore(10)
	defer store.Close()

	id := store.NewSession()
	require.NotEmpty(t, id)

	store.Append(id, msg(RoleUser, "hello"))
	store.Append(id, msg(RoleAssistant, "hi there"))

	history := store.History(id)
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, RoleAssistant, history[1].Role)
}

func TestSessionStore_SlidingWindow(t *testing.T) {
	store := NewSessionStore(4)
	defer store.Close()

	id := store.NewSession()
	for _, content := range []string{"1", "2", "3", "4", "5", "6"} {
		store.Append(id, msg(RoleUser, content))
	}

	history := store.History(id)
	require.Len(t, history, 4)
	assert.Equal(t, "3", history[0].Content)
	assert.Equal(t, "6", history[3].Content)
}

func TestSessionStore_HistoryReturnsCopy(t *testing.T) {
	store := NewSessionStore(10)
	defer store.Close()

	id := store.NewSession()
	store.Append(id, msg(RoleUser, "original"))

	history := store.History(id)
	history[0].Content = "mutated"

	assert.Equal(t, "original", store.History(id)[0].Content)
}

func TestSessionStore_ClearAndCount(t *testing.T) {
	store := NewSessionStore(10)
	defer store.Close()

	a := store.NewSession()
	b := store.NewSession()
	store.Append(a, msg(RoleUser, "a"))
	store.Append(b, msg(RoleUser, "b"))
	assert.Equal(t, 2, store.SessionCount())

	store.Clear(a)
	assert.Equal(t, 1, store.SessionCount())
	assert.Nil(t, store.History(a))
}

func TestSessionStore_UnknownSession(t *testing.T) {
	store := NewSessionStore(10)
	defer store.Close()

	assert.Nil(t, store.History("no-such-session"))
}

func TestSessionStore_NewSessionIsImmediatelyReadable(t *testing.T) {
	store := NewSessionStore(10)
	defer store.Close()

	id := store.NewSession()
	assert.Equal(t, 1, store.SessionCount())

	history := store.History(id)
	require.NotNil(t, history)
	assert.Empty(t, history)
}
