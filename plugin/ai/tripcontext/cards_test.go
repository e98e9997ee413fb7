package tripcontext

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardTracker_UpsertMerge(t *testing.T) {
	tracker := NewCardTracker()

	tracker.Upsert(DisplayedCard{
		PlaceID:          "p1",
		Name:             "Ramen Ichi",
		FormattedAddress: "1-2-3 Ebisu",
		Rating:           4.4,
	})
	tracker.Upsert(DisplayedCard{
		PlaceID:          "p1",
		Rating:           4.6,
		UserRatingsTotal: 200,
		Clicked:          true,
	})

	require.Equal(t, 1, tracker.Len(), "same place_id must not duplicate")

	cards := tracker.Cards()
	got := cards[0]
	assert.Equal(t, "Ramen Ichi", got.Name, "absent fields preserved")
	assert.Equal(t, "1-2-3 Ebisu", got.FormattedAddress)
	assert.Equal(t, 4.6, got.Rating, "new fields overwrite")
	assert.Equal(t, 200, got.UserRatingsTotal)
	assert.True(t, got.Clicked)
}

func TestCardTracker_AccumulatesInOrder(t *testing.T) {
	tracker := NewCardTracker()
	for i := 0; i < 3; i++ {
		tracker.Upsert(DisplayedCard{PlaceID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Place %d", i)})
	}

	cards := tracker.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, "p0", cards[0].PlaceID)
	assert.Equal(t, "p2", cards[2].PlaceID)
	assert.False(t, cards[0].DisplayedAt.IsZero(), "first appearance stamps DisplayedAt")
}

func TestCardTracker_IgnoresEmptyPlaceID(t *testing.T) {
	tracker := NewCardTracker()
	tracker.Upsert(DisplayedCard{Name: "no id"})
	assert.Equal(t, 0, tracker.Len())
}

func TestSummarizeRecentCards(t *testing.T) {
	t.Run("Caps at five most recent", func(t *testing.T) {
		var cards []DisplayedCard
		for i := 0; i < 7; i++ {
			cards = append(cards, DisplayedCard{
				PlaceID:          fmt.Sprintf("p%d", i),
				Name:             fmt.Sprintf("Place %d", i),
				Rating:           4.0,
				UserRatingsTotal: i,
				DisplayedAt:      time.Now(),
			})
		}

		summaries := SummarizeRecentCards(cards)
		require.Len(t, summaries, 5)
		assert.Equal(t, "p2", summaries[0].PlaceID)
		assert.Equal(t, "p6", summaries[4].PlaceID)
	})

	t.Run("Rounds rating to one decimal", func(t *testing.T) {
		summaries := SummarizeRecentCards([]DisplayedCard{
			{PlaceID: "p1", Name: "A", Rating: 4.449, UserRatingsTotal: 10},
		})
		require.Len(t, summaries, 1)
		assert.Equal(t, 4.4, summaries[0].AverageRating)
		assert.Equal(t, 10, summaries[0].ReviewCount)
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Nil(t, SummarizeRecentCards(nil))
	})
}
