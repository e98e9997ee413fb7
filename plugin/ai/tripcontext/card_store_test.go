package tripcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardStore_SessionIsolation(t *testing.T) {
	store := NewCardStore()
	defer store.Close()

	store.Upsert("session-a", DisplayedCard{PlaceID: "a1", Name: "Afuri Ramen"})
	store.Upsert("session-b", DisplayedCard{PlaceID: "b1", Name: "Blue Bottle"})

	a := store.Cards("session-a")
	require.Len(t, a, 1)
	assert.Equal(t, "a1", a[0].PlaceID)

	b := store.Cards("session-b")
	require.Len(t, b, 1)
	assert.Equal(t, "b1", b[0].PlaceID)

	assert.Equal(t, 1, store.Len("session-a"))
	assert.Equal(t, 1, store.Len("session-b"))
}

func TestCardStore_UnknownSession(t *testing.T) {
	store := NewCardStore()
	defer store.Close()

	assert.Nil(t, store.Cards("no-such-session"))
	assert.Equal(t, 0, store.Len("no-such-session"))
}

func TestCardStore_MergeWithinSession(t *testing.T) {
	store := NewCardStore()
	defer store.Close()

	store.Upsert("s", DisplayedCard{PlaceID: "p1", Name: "Afuri Ramen", Rating: 4.5})
	store.Upsert("s", DisplayedCard{PlaceID: "p1", Clicked: true})

	cards := store.Cards("s")
	require.Len(t, cards, 1)
	assert.Equal(t, "Afuri Ramen", cards[0].Name)
	assert.Equal(t, 4.5, cards[0].Rating)
	assert.True(t, cards[0].Clicked)
}

func TestCardStore_Clear(t *testing.T) {
	store := NewCardStore()
	defer store.Close()

	store.Upsert("s", DisplayedCard{PlaceID: "p1", Name: "Afuri Ramen"})
	store.Clear("s")

	assert.Nil(t, store.Cards("s"))
	assert.Equal(t, 0, store.Len("s"))
}

func TestCardStore_EmptySessionIDIgnored(t *testing.T) {
	store := NewCardStore()
	defer store.Close()

	store.Upsert("", DisplayedCard{PlaceID: "p1"})
	assert.Nil(t, store.Cards(""))
}
