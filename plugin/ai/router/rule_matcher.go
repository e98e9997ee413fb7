package router

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Message length bounds for the inspiration rule. Very short messages carry
// too little signal, long ones are usually specific requests.
const (
	inspirationMinLen = 3
	inspirationMaxLen = 50
)

// RuleMatcher is the deterministic, bit-reproducible classification path.
// Priority order, first match wins: details, inspiration, specific, clarify.
type RuleMatcher struct {
	referencePattern *regexp.Regexp
	detailPattern    *regexp.Regexp
	vaguePattern     *regexp.Regexp
	entityPattern    *regexp.Regexp
}

// NewRuleMatcher compiles the keyword patterns. English terms match on word
// boundaries; Japanese terms match as substrings.
func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{
		// Demonstrative / ordinal references to something already shown.
		referencePattern: regexp.MustCompile(
			`(?i)\b(that|this|it|first|second|last|top|bottom|former|latter)\b` +
				`|それ|これ|あれ|そこ|ここ|さっき|最初|最後|一番目|二番目`),
		// Detail keywords: facts about one place.
		detailPattern: regexp.MustCompile(
			`(?i)\b(hours?|open|close[sd]?|address|reviews?|price|cost|phone|menu|directions?)\b` +
				`|営業時間|何時|住所|場所|レビュー|口コミ|値段|価格|料金|電話|メニュー|行き方`),
		// Vague, exploratory phrasing.
		vaguePattern: regexp.MustCompile(
			`(?i)\b(ideas?|mood|suggest(ions?)?|recommend(ations?)?|something|anything|whatever|surprise)\b` +
				`|おすすめ|オススメ|何か|なにか|どこか|気分|アイデア|適当に`),
		// Concrete entities or explicit search verbs.
		entityPattern: regexp.MustCompile(
			`(?i)\b(find|search|look(ing)? for|show me|ramen|sushi|pizza|burger|curry|cafe|coffee|bakery|bar|pub|izakaya|restaurant|museum|gallery|park|shrine|temple|onsen|karaoke)\b` +
				`|探して|検索|ラーメン|寿司|すし|ピザ|カレー|カフェ|喫茶|パン屋|バー|居酒屋|レストラン|美術館|博物館|公園|神社|寺|温泉|カラオケ`),
	}
}

// Match classifies a single message. Never fails; unmatched input resolves
// to the clarify label.
func (m *RuleMatcher) Match(message string) Classification {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Classification{Label: IntentClarify, Reason: "empty message", Method: "rule"}
	}

	hasReference := m.referencePattern.MatchString(trimmed)
	hasQuestion := strings.ContainsAny(trimmed, "?？")

	if hasReference && (m.detailPattern.MatchString(trimmed) || hasQuestion) {
		return Classification{
			Label:  IntentDetails,
			Reason: "reference to a shown place with a detail request",
			Method: "rule",
		}
	}

	msgLen := utf8.RuneCountInString(trimmed)
	if !hasReference && m.vaguePattern.MatchString(trimmed) &&
		msgLen >= inspirationMinLen && msgLen <= inspirationMaxLen {
		return Classification{
			Label:  IntentInspiration,
			Reason: "short exploratory phrasing",
			Method: "rule",
		}
	}

	if m.entityPattern.MatchString(trimmed) {
		return Classification{
			Label:  IntentSpecific,
			Reason: "concrete entity or search verb",
			Method: "rule",
		}
	}

	return Classification{Label: IntentClarify, Reason: "no clear pattern", Method: "rule"}
}
