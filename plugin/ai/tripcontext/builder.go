package tripcontext

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/voyago/concierge/plugin/ai/router"
	"github.com/voyago/concierge/plugin/ai/traveltype"
)

// DefaultSearchRadiusM applies when no duration or walking constraint is set.
const DefaultSearchRadiusM = 500

// fallbackUTCOffsetHours is used when no location is available for the
// longitude-derived time estimate.
const fallbackUTCOffsetHours = 9

// TimeConstraint is the resolved time/radius limit for place search.
type TimeConstraint struct {
	MaxMinutes int    `json:"max_minutes"`
	RadiusM    int    `json:"radius_m"`
	Source     string `json:"source"` // "home_duration" or "walking_tolerance"
}

// durationConstraints maps the home-duration buckets to hard limits.
var durationConstraints = map[HomeDuration]TimeConstraint{
	DurationUnder15: {MaxMinutes: 5, RadiusM: 400, Source: "home_duration"},
	Duration15To30:  {MaxMinutes: 10, RadiusM: 800, Source: "home_duration"},
	Duration30To60:  {MaxMinutes: 15, RadiusM: 1200, Source: "home_duration"},
	Duration60Plus:  {MaxMinutes: 30, RadiusM: 3000, Source: "home_duration"},
}

// walkingRadii maps quiz walking tolerance (minutes) to a search radius.
var walkingRadii = map[int]int{
	5:  400,
	10: 800,
	15: 1200,
}

// staticInstructions are always included verbatim, in this order.
var staticInstructions = []string{
	"Intent handling: inspiration -> propose a few varied options; specific -> search for exactly what was named; details -> answer from the already-displayed card, do not run a new search; clarify -> ask one short clarifying question.",
	"Displayed cards: when the user refers to a place already shown, reuse its card data instead of searching again. Run a fresh search only for new requests.",
	"Place search: always pass the user's lat/lng into any place search. Never search without coordinates.",
	fmt.Sprintf("Default search radius: %dm unless a stricter constraint is given below.", DefaultSearchRadiusM),
	"Reply length: keep answers under 120 words; at most 3 suggestions per reply.",
}

// genericInspirationQueries back up the persona queries when no valid travel
// type is present. Location availability selects the phrasing.
func genericInspirationQueries(locationAvailable bool) []string {
	if locationAvailable {
		return []string{
			"well rated casual restaurants nearby",
			"interesting cafes within walking distance",
			"popular spots close by right now",
			"local places worth a short walk",
		}
	}
	return []string{
		"well rated casual restaurants",
		"interesting cafes people recommend",
		"popular spots among locals",
		"places worth visiting in the area the user names",
	}
}

// LocalTime is the longitude-derived display time with its provenance.
// A fallback estimate is never presented as authoritative.
type LocalTime struct {
	Display        string `json:"display"`
	UTCOffsetHours int    `json:"utc_offset_hours"`
	Source         string `json:"source"` // "location" or "fallback"
}

// contextPayload is the well-typed intermediate for the CONTEXT_JSON block.
// All optional fields are nullable; serialization drops absent ones.
type contextPayload struct {
	Location            string              `json:"location"` // "current", "quiz", or "unavailable"
	Coordinates         *coordinatesPayload `json:"coordinates,omitempty"`
	TravelType          *travelTypePayload  `json:"travel_type,omitempty"`
	WalkingToleranceMin int                 `json:"walking_tolerance_min,omitempty"`
	HomeDurationFilter  *TimeConstraint     `json:"home_duration_filter,omitempty"`
	Intent              string              `json:"intent"`
	IntentReason        string              `json:"intent_reason,omitempty"`
	Origin              *originPayload      `json:"origin,omitempty"`
	DietaryConstraints  []string            `json:"dietary_constraints,omitempty"`
	LanguageConstraint  string              `json:"language_constraint,omitempty"`
	PhotoAvoid          []string            `json:"photo_avoid,omitempty"`
	InspirationQueries  []string            `json:"inspiration_queries,omitempty"`
	Weather             *WeatherSnapshot    `json:"weather,omitempty"`
	DisplayedCards      []CardSummary       `json:"displayed_cards,omitempty"`
	LocalTime           LocalTime           `json:"local_time"`
}

type coordinatesPayload struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Note string  `json:"note"`
}

type originPayload struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// Builder produces the serialized dynamic context block.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a context builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build renders the instruction list plus the CONTEXT_JSON payload for one
// turn. Pure given the user context and the clock.
func (b *Builder) Build(uc *UserContext) string {
	if uc == nil {
		uc = &UserContext{}
	}

	loc, locSource := uc.EffectiveLocation()
	constraint := b.resolveConstraint(uc)
	localTime := b.localTime(loc)

	instructions := make([]string, 0, len(staticInstructions)+6)
	instructions = append(instructions, staticInstructions...)
	instructions = append(instructions, b.constraintInstructions(uc, constraint)...)
	instructions = append(instructions, b.weatherInstruction(uc.Weather, loc)...)

	payload := b.buildPayload(uc, loc, locSource, constraint, localTime)
	encoded, err := json.Marshal(payload)
	if err != nil {
		// Only reachable with a broken payload type; keep the conversation
		// alive with the instructions alone.
		slog.Warn("failed to encode context payload", "error", err)
		return strings.Join(instructions, "\n")
	}

	var sb strings.Builder
	for _, ins := range instructions {
		sb.WriteString("- ")
		sb.WriteString(ins)
		sb.WriteString("\n")
	}
	sb.WriteString("\nCONTEXT_JSON:")
	sb.Write(encoded)
	return sb.String()
}

// resolveConstraint prefers the home-duration bucket over the quiz walking
// tolerance; nil means no constraint beyond the default radius.
func (b *Builder) resolveConstraint(uc *UserContext) *TimeConstraint {
	if uc.HomeDuration != "" {
		if c, ok := durationConstraints[uc.HomeDuration]; ok {
			return &c
		}
		slog.Warn("unknown home duration bucket ignored", "bucket", uc.HomeDuration)
	}
	if uc.Quiz != nil && uc.Quiz.WalkingToleranceMin > 0 {
		if radius, ok := walkingRadii[uc.Quiz.WalkingToleranceMin]; ok {
			return &TimeConstraint{
				MaxMinutes: uc.Quiz.WalkingToleranceMin,
				RadiusM:    radius,
				Source:     "walking_tolerance",
			}
		}
	}
	return nil
}

// constraintInstructions renders the mandatory natural-language constraints.
func (b *Builder) constraintInstructions(uc *UserContext, constraint *TimeConstraint) []string {
	var out []string

	if constraint != nil {
		out = append(out, fmt.Sprintf(
			"Time limit: the user has at most %d minutes. Only suggest places within %dm.",
			constraint.MaxMinutes, constraint.RadiusM))
	}

	if uc.Quiz == nil {
		return out
	}
	if len(uc.Quiz.DietaryPreferences) > 0 {
		out = append(out, fmt.Sprintf(
			"MUST ONLY show places compatible with these dietary needs: %s.",
			strings.Join(uc.Quiz.DietaryPreferences, ", ")))
	}
	if uc.Quiz.LanguageComfort != "" {
		out = append(out, fmt.Sprintf(
			"MUST ONLY show places with %s language support.", uc.Quiz.LanguageComfort))
	}
	if len(uc.Quiz.PhotoAvoidSubjects) > 0 {
		out = append(out, fmt.Sprintf(
			"MUST NOT suggest photo spots featuring: %s.",
			strings.Join(uc.Quiz.PhotoAvoidSubjects, ", ")))
	}
	return out
}

// weatherInstruction describes the weather snapshot, or explains that
// weather is unknowable when no location is available.
func (b *Builder) weatherInstruction(w *WeatherSnapshot, loc *Location) []string {
	if w != nil {
		return []string{fmt.Sprintf(
			"Weather: %s (%s), %.1f°C feeling like %.1f°C. Prefer %s activities and weight recommendations accordingly.",
			w.Condition.Main, w.Condition.Description, w.Temperature, w.FeelsLike,
			recommendActivityType(w))}
	}
	if loc == nil {
		return []string{
			"Location is unavailable: say so instead of inventing weather or nearby places, and ask for an area name.",
		}
	}
	return nil
}

// recommendActivityType derives the indoor/outdoor lean from the snapshot.
func recommendActivityType(w *WeatherSnapshot) string {
	main := strings.ToLower(w.Condition.Main)
	switch {
	case strings.Contains(main, "rain"), strings.Contains(main, "snow"),
		strings.Contains(main, "storm"), strings.Contains(main, "thunder"):
		return "indoor"
	case w.Temperature >= 33 || w.Temperature <= 2:
		return "indoor"
	case strings.Contains(main, "clear") && w.Temperature >= 12 && w.Temperature <= 28:
		return "outdoor"
	default:
		return "either indoor or outdoor"
	}
}

// localTime estimates the display time from longitude (15° per hour, clamped
// to [-12, 14]); without a location it falls back to UTC+9 and says so.
func (b *Builder) localTime(loc *Location) LocalTime {
	offset := fallbackUTCOffsetHours
	source := "fallback"
	if loc != nil {
		offset = int(math.Round(loc.Lng / 15))
		if offset < -12 {
			offset = -12
		}
		if offset > 14 {
			offset = 14
		}
		source = "location"
	}

	shifted := b.now().UTC().Add(time.Duration(offset) * time.Hour)
	return LocalTime{
		Display:        fmt.Sprintf("%s (UTC%+03d:00)", shifted.Format("2006-01-02 15:04"), offset),
		UTCOffsetHours: offset,
		Source:         source,
	}
}

func (b *Builder) buildPayload(uc *UserContext, loc *Location, locSource string, constraint *TimeConstraint, localTime LocalTime) *contextPayload {
	payload := &contextPayload{
		Location:       locSource,
		Intent:         string(uc.Intent.Label),
		IntentReason:   uc.Intent.Reason,
		LocalTime:      localTime,
		DisplayedCards: SummarizeRecentCards(uc.DisplayedCards),
	}
	if payload.Intent == "" {
		payload.Intent = string(router.IntentClarify)
	}

	if loc != nil {
		payload.Coordinates = &coordinatesPayload{
			Lat:  loc.Lat,
			Lng:  loc.Lng,
			Note: "pass these into every place search",
		}
	}

	if constraint != nil {
		if constraint.Source == "home_duration" {
			payload.HomeDurationFilter = constraint
		} else {
			payload.WalkingToleranceMin = constraint.MaxMinutes
		}
	}

	if uc.Quiz != nil {
		if info, ok := traveltype.GetTravelTypeInfo(uc.Quiz.TravelTypeCode); ok {
			payload.TravelType = &travelTypePayload{
				Code:  info.Code,
				Name:  info.Name,
				Emoji: info.Emoji,
			}
		}
		if uc.Quiz.Origin != "" {
			payload.Origin = &originPayload{
				Name: uc.Quiz.Origin,
				Note: "persona only: do not use for search and do not suggest destinations matching it",
			}
		}
		payload.DietaryConstraints = uc.Quiz.DietaryPreferences
		payload.LanguageConstraint = uc.Quiz.LanguageComfort
		payload.PhotoAvoid = uc.Quiz.PhotoAvoidSubjects
	}

	if uc.Intent.Label == router.IntentInspiration {
		payload.InspirationQueries = b.inspirationQueries(uc, loc != nil)
	}

	payload.Weather = uc.Weather
	return payload
}

type travelTypePayload struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// inspirationQueries prefers the persona's pre-authored variants.
func (b *Builder) inspirationQueries(uc *UserContext, locationAvailable bool) []string {
	if uc.Quiz != nil {
		if queries := traveltype.GetSearchQueryVariants(uc.Quiz.TravelTypeCode); queries != nil {
			return queries
		}
	}
	return genericInspirationQueries(locationAvailable)
}
