package tripcontext

import (
	"math"
	"sync"
	"time"
)

// DisplayedCard is a place summary already shown to the user. Cards are
// created when a place first appears in model output and merged in place
// when the same place_id reappears; they are never deleted within a session.
type DisplayedCard struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Rating           float64   `json:"rating,omitempty"`
	UserRatingsTotal int       `json:"user_ratings_total,omitempty"`
	PriceLevel       int       `json:"price_level,omitempty"`
	Types            []string  `json:"types,omitempty"`
	DistanceM        int       `json:"distance_m,omitempty"`
	Clicked          bool      `json:"clicked,omitempty"`
	DisplayedAt      time.Time `json:"displayed_at,omitempty"`
	Reviews          []string  `json:"reviews,omitempty"`
}

// CardSummary is the reduced card shape embedded in the context payload.
type CardSummary struct {
	Name          string  `json:"name"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	PlaceID       string  `json:"place_id"`
}

// maxCardsInPayload caps how many recent cards enter the context payload.
const maxCardsInPayload = 5

// CardTracker accumulates displayed cards per session, deduplicated by
// place_id with merge-on-reappear semantics. Thread-safe.
type CardTracker struct {
	mu    sync.Mutex
	cards []DisplayedCard
	index map[string]int
}

// NewCardTracker creates an empty tracker.
func NewCardTracker() *CardTracker {
	return &CardTracker{index: make(map[string]int)}
}

// Upsert records a card. A known place_id is merged in place: non-zero new
// fields overwrite, everything else is preserved. A new place_id appends.
func (t *CardTracker) Upsert(card DisplayedCard) {
	if card.PlaceID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[card.PlaceID]
	if !ok {
		if card.DisplayedAt.IsZero() {
			card.DisplayedAt = time.Now()
		}
		t.index[card.PlaceID] = len(t.cards)
		t.cards = append(t.cards, card)
		return
	}
	t.cards[i] = mergeCard(t.cards[i], card)
}

// Cards returns a copy of all tracked cards in first-seen order.
func (t *CardTracker) Cards() []DisplayedCard {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]DisplayedCard, len(t.cards))
	copy(out, t.cards)
	return out
}

// Len returns the number of distinct tracked places.
func (t *CardTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cards)
}

func mergeCard(existing, update DisplayedCard) DisplayedCard {
	if update.Name != "" {
		existing.Name = update.Name
	}
	if update.FormattedAddress != "" {
		existing.FormattedAddress = update.FormattedAddress
	}
	if update.Rating != 0 {
		existing.Rating = update.Rating
	}
	if update.UserRatingsTotal != 0 {
		existing.UserRatingsTotal = update.UserRatingsTotal
	}
	if update.PriceLevel != 0 {
		existing.PriceLevel = update.PriceLevel
	}
	if len(update.Types) > 0 {
		existing.Types = update.Types
	}
	if update.DistanceM != 0 {
		existing.DistanceM = update.DistanceM
	}
	if update.Clicked {
		existing.Clicked = true
	}
	if !update.DisplayedAt.IsZero() {
		existing.DisplayedAt = update.DisplayedAt
	}
	if len(update.Reviews) > 0 {
		existing.Reviews = update.Reviews
	}
	return existing
}

// SummarizeRecentCards reduces the most recent cards (at most five) to the
// payload shape, ratings rounded to one decimal.
func SummarizeRecentCards(cards []DisplayedCard) []CardSummary {
	if len(cards) == 0 {
		return nil
	}
	if len(cards) > maxCardsInPayload {
		cards = cards[len(cards)-maxCardsInPayload:]
	}

	out := make([]CardSummary, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardSummary{
			Name:          c.Name,
			AverageRating: math.Round(c.Rating*10) / 10,
			ReviewCount:   c.UserRatingsTotal,
			PlaceID:       c.PlaceID,
		})
	}
	return out
}
