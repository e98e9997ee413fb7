// Package tripcontext assembles the per-turn structured instruction and data
// block injected into the model's input: location, weather, quiz state,
// displayed cards, and the behavioral instructions tied to the current intent.
package tripcontext

import (
	"github.com/voyago/concierge/plugin/ai/router"
	"github.com/voyago/concierge/plugin/ai/traveltype"
)

// Location is a device or quiz-recorded position with its permission flag.
type Location struct {
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	PermissionGranted bool    `json:"permission_granted"`
}

// WeatherCondition mirrors the weather collaborator's condition shape.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherSnapshot is the already-fetched weather state. The core only reads
// this; fetching belongs to the weather collaborator.
type WeatherSnapshot struct {
	Temperature   float64          `json:"temperature"`
	FeelsLike     float64          `json:"feels_like"`
	Humidity      int              `json:"humidity"`
	Condition     WeatherCondition `json:"condition"`
	WindSpeed     float64          `json:"wind_speed"`
	Visibility    int              `json:"visibility"`
	Precipitation float64          `json:"precipitation,omitempty"`
	Clouds        int              `json:"clouds"`
}

// HomeDuration is the user's how-long-before-heading-home preference.
type HomeDuration string

const (
	DurationUnder15 HomeDuration = "under15"
	Duration15To30  HomeDuration = "15-30"
	Duration30To60  HomeDuration = "30-60"
	Duration60Plus  HomeDuration = "60+"
)

// QuizResult is the quiz state carried into context building.
type QuizResult struct {
	TravelTypeCode      string                 `json:"travel_type_code"`
	Location            *Location              `json:"location,omitempty"`
	WalkingToleranceMin int                    `json:"walking_tolerance_min,omitempty"` // 5, 10, or 15
	DietaryPreferences  []string               `json:"dietary_preferences,omitempty"`
	LanguageComfort     string                 `json:"language_comfort,omitempty"`
	PhotoAvoidSubjects  []string               `json:"photo_avoid_subjects,omitempty"`
	Origin              string                 `json:"origin,omitempty"`
	Answers             []traveltype.QuizAnswer `json:"answers,omitempty"`
}

// UserContext is the per-turn snapshot the builder consumes. Assembled by
// the request layer; nothing here is persisted by the core.
type UserContext struct {
	CurrentLocation *Location             `json:"current_location,omitempty"`
	Weather         *WeatherSnapshot      `json:"weather,omitempty"`
	HomeDuration    HomeDuration          `json:"home_duration,omitempty"`
	Quiz            *QuizResult           `json:"quiz,omitempty"`
	DisplayedCards  []DisplayedCard       `json:"displayed_cards,omitempty"`
	Intent          router.Classification `json:"intent"`
}

// EffectiveLocation resolves the location the model may act on: the current
// device location always wins over the stale quiz-time location when both
// are permitted. Returns nil and source "unavailable" when neither is.
func (uc *UserContext) EffectiveLocation() (*Location, string) {
	if uc.CurrentLocation != nil && uc.CurrentLocation.PermissionGranted {
		return uc.CurrentLocation, "current"
	}
	if uc.Quiz != nil && uc.Quiz.Location != nil && uc.Quiz.Location.PermissionGranted {
		return uc.Quiz.Location, "quiz"
	}
	return nil, "unavailable"
}
