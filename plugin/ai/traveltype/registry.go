package traveltype

import (
	"fmt"
	"strings"
)

// DefaultTravelTypeCode is the substitute used when a derived code is not a
// registry member. Engines never hit this in correct operation; it exists so
// bad axis data degrades to a usable persona instead of blocking the chat.
const DefaultTravelTypeCode = "GRLP"

// TravelTypeInfo is the static metadata for one travel personality.
// Entries are built once at package load and never mutated.
type TravelTypeInfo struct {
	Code          string
	Name          string
	Emoji         string
	Description   string
	Keywords      []string
	SearchQueries []string

	systemPrompt string
}

// SystemPrompt returns the persona prompt generated for this type at load.
func (t *TravelTypeInfo) SystemPrompt() string {
	return t.systemPrompt
}

type typeSeed struct {
	code        string
	name        string
	emoji       string
	description string
	keywords    []string
	queries     []string
}

var typeSeeds = []typeSeed{
	{
		code: "GRLP", name: "The Itinerary Captain", emoji: "🧭",
		description: "Rallies the group around a well-researched plan built on proven favorites.",
		keywords:    []string{"group outings", "classic spots", "detailed plans", "reviews"},
		queries: []string{
			"highly rated restaurants for groups",
			"popular landmarks nearby",
			"classic local food spots",
			"well reviewed cafes for groups",
		},
	},
	{
		code: "GRLF", name: "The Neighborhood Regular", emoji: "🍻",
		description: "Social and easygoing, drawn back to reliable local haunts when the moment feels right.",
		keywords:    []string{"local haunts", "casual meetups", "trusted picks", "no rush"},
		queries: []string{
			"cozy izakaya nearby",
			"casual bars locals love",
			"relaxed restaurants for a group",
			"neighborhood cafes open now",
		},
	},
	{
		code: "GRHP", name: "The Crowd Pleaser", emoji: "🎉",
		description: "Plans gatherings everyone will love, picking familiar places by feel rather than ratings.",
		keywords:    []string{"group fun", "good vibes", "crowd favorites", "planned nights"},
		queries: []string{
			"fun restaurants for a celebration",
			"lively spots for groups tonight",
			"popular comfort food nearby",
			"places with a great atmosphere",
		},
	},
	{
		code: "GRHF", name: "The Spontaneous Host", emoji: "🎈",
		description: "Gathers friends on a whim and heads for a feel-good standby, no agenda needed.",
		keywords:    []string{"spontaneous plans", "friends", "comfort places", "walk-ins"},
		queries: []string{
			"walk-in friendly restaurants nearby",
			"casual group spots open late",
			"standing bars nearby",
			"easy going places for friends",
		},
	},
	{
		code: "GDLP", name: "The Expedition Planner", emoji: "🗺️",
		description: "Leads group discoveries with a researched schedule of new places worth the detour.",
		keywords:    []string{"group discovery", "hidden gems", "research", "itineraries"},
		queries: []string{
			"hidden gem restaurants worth visiting",
			"unique experiences for groups",
			"new openings with great reviews",
			"off the beaten path attractions",
		},
	},
	{
		code: "GDLF", name: "The Serendipity Chaser", emoji: "🎲",
		description: "A social explorer who follows well-reasoned whims into places nobody planned on.",
		keywords:    []string{"serendipity", "new places", "smart detours", "shared discovery"},
		queries: []string{
			"interesting new spots nearby",
			"unusual cafes worth a detour",
			"surprising local experiences",
			"quirky places friends would enjoy",
		},
	},
	{
		code: "GDHP", name: "The Adventure Ringleader", emoji: "🎪",
		description: "Books the group into new experiences chosen purely on gut excitement.",
		keywords:    []string{"adventure", "group energy", "instinct", "bookings"},
		queries: []string{
			"exciting activities for groups",
			"new experiences to book nearby",
			"adventurous dining experiences",
			"events happening this week",
		},
	},
	{
		code: "GDHF", name: "The Whirlwind Wanderer", emoji: "🌪️",
		description: "Pulls the crew toward whatever looks newest and most alive, right now.",
		keywords:    []string{"impulse", "novelty", "nightlife", "crowds"},
		queries: []string{
			"buzzing spots right now",
			"newest bars and cafes nearby",
			"spontaneous things to do tonight",
			"lively streets worth wandering",
		},
	},
	{
		code: "SRLP", name: "The Methodical Soloist", emoji: "📚",
		description: "Travels alone on a careful schedule of dependable, well-reviewed picks.",
		keywords:    []string{"solo travel", "reliability", "research", "quiet plans"},
		queries: []string{
			"quiet well rated cafes for one",
			"solo friendly restaurants nearby",
			"calm museums and galleries",
			"reliable lunch spots with counter seats",
		},
	},
	{
		code: "SRLF", name: "The Quiet Flaneur", emoji: "🚶",
		description: "Wanders familiar streets alone, unhurried, choosing stops with a clear head.",
		keywords:    []string{"walks", "familiar streets", "solitude", "slow pace"},
		queries: []string{
			"pleasant walking streets nearby",
			"quiet coffee shops for reading",
			"parks and gardens within walking distance",
			"calm bakeries open now",
		},
	},
	{
		code: "SRHP", name: "The Comfort Curator", emoji: "🫖",
		description: "Keeps a planned rotation of cozy classics that simply feel right.",
		keywords:    []string{"cozy", "comfort food", "rituals", "warm places"},
		queries: []string{
			"cozy tea houses nearby",
			"comforting home style restaurants",
			"warm quiet cafes for one",
			"classic kissaten nearby",
		},
	},
	{
		code: "SRHF", name: "The Mood Drifter", emoji: "🌙",
		description: "Drifts alone between familiar places, letting the evening's mood decide.",
		keywords:    []string{"mood", "solitude", "night walks", "familiar comfort"},
		queries: []string{
			"atmospheric places open late",
			"quiet bars for one",
			"mellow cafes with soft lighting",
			"late night comfort food nearby",
		},
	},
	{
		code: "SDLP", name: "The Solo Strategist", emoji: "🔭",
		description: "Hunts new ground alone with a spreadsheet's worth of preparation.",
		keywords:    []string{"solo discovery", "preparation", "optimization", "firsts"},
		queries: []string{
			"newly opened restaurants with strong reviews",
			"specialty coffee roasters nearby",
			"notable architecture worth seeing",
			"acclaimed spots still under the radar",
		},
	},
	{
		code: "SDLF", name: "The Independent Scout", emoji: "🧳",
		description: "Explores new territory alone, reasoning out each next stop on the fly.",
		keywords:    []string{"exploration", "independence", "curiosity", "improvised routes"},
		queries: []string{
			"interesting neighborhoods to explore",
			"local specialties worth trying",
			"small independent shops nearby",
			"unfamiliar streets worth a look",
		},
	},
	{
		code: "SDHP", name: "The Thrill Seeker", emoji: "🌋",
		description: "Books bold new experiences for one, chosen on pure instinct.",
		keywords:    []string{"thrills", "bold choices", "new experiences", "solo courage"},
		queries: []string{
			"unusual experiences to book solo",
			"intense local food challenges",
			"striking viewpoints nearby",
			"one of a kind activities today",
		},
	},
	{
		code: "SDHF", name: "The Free Spirit", emoji: "🦅",
		description: "Goes wherever the pull is strongest: alone, unplanned, and wide open to the new.",
		keywords:    []string{"freedom", "instinct", "wandering", "the unknown"},
		queries: []string{
			"wherever looks interesting nearby",
			"spontaneous discoveries within walking distance",
			"unplanned detours worth taking",
			"whatever is open and different right now",
		},
	},
}

// registry is the immutable 16-entry table, built once at package load.
var registry = buildRegistry(typeSeeds)

func buildRegistry(seeds []typeSeed) map[string]*TravelTypeInfo {
	m := make(map[string]*TravelTypeInfo, len(seeds))
	for _, s := range seeds {
		info := &TravelTypeInfo{
			Code:          s.code,
			Name:          s.name,
			Emoji:         s.emoji,
			Description:   s.description,
			Keywords:      s.keywords,
			SearchQueries: s.queries,
		}
		info.systemPrompt = generateSystemPrompt(info)
		m[s.code] = info
	}
	return m
}

// generateSystemPrompt renders the persona prompt from the type metadata.
// Same table in, same prompt out.
func generateSystemPrompt(info *TravelTypeInfo) string {
	top := info.Keywords
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf(`You are a travel concierge for a "%s" %s traveler.
%s
Lean your suggestions toward: %s.
Stay in this persona while honoring every explicit constraint provided in the conversation context.`,
		info.Name, info.Emoji, info.Description, strings.Join(top, ", "))
}

// GetTravelTypeInfo looks up the metadata for a travel type code.
func GetTravelTypeInfo(code string) (*TravelTypeInfo, bool) {
	info, ok := registry[code]
	return info, ok
}

// IsValidTravelTypeCode reports whether code exactly matches one of the 16
// registry keys. No partial or case-insensitive matching.
func IsValidTravelTypeCode(code string) bool {
	_, ok := registry[code]
	return ok
}

// GetSystemPromptForTravelType returns the persona prompt for a valid code,
// or the empty string for anything else.
func GetSystemPromptForTravelType(code string) string {
	info, ok := registry[code]
	if !ok {
		return ""
	}
	return info.systemPrompt
}

// GetSearchQueryVariants returns the pre-authored search queries for a valid
// code, or nil for anything else.
func GetSearchQueryVariants(code string) []string {
	info, ok := registry[code]
	if !ok {
		return nil
	}
	out := make([]string, len(info.SearchQueries))
	copy(out, info.SearchQueries)
	return out
}

// AllCodes returns the 16 registry codes in axis-letter order.
func AllCodes() []string {
	codes := make([]string, 0, len(typeSeeds))
	for _, s := range typeSeeds {
		codes = append(codes, s.code)
	}
	return codes
}
