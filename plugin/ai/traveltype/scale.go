package traveltype

// ScaleAnswer is one response from the 7-point agree/disagree quiz variant.
// Each of the 8 fixed statements leans toward one pole of its axis; Score is
// the respondent's agreement with that statement in [-3, 3].
type ScaleAnswer struct {
	QuestionID    string `json:"question_id"`
	Axis          Axis   `json:"axis"`
	BiasDirection string `json:"bias_direction"` // the letter the positive pole maps to
	Score         int    `json:"score"`          // -3 (disagree) .. 3 (agree)
}

// ScaleStatement describes one statement of the scale quiz, for the quiz UI.
type ScaleStatement struct {
	ID            string `json:"id"`
	Axis          Axis   `json:"axis"`
	BiasDirection string `json:"bias_direction"`
	Text          string `json:"text"`
}

// ScaleStatements is the fixed 8-statement set: one polarity pair per axis.
var ScaleStatements = []ScaleStatement{
	{ID: "people_g", Axis: AxisPeople, BiasDirection: "G", Text: "Trips are better when I share them with other people."},
	{ID: "people_s", Axis: AxisPeople, BiasDirection: "S", Text: "I do my best exploring when I'm on my own."},
	{ID: "world_r", Axis: AxisWorld, BiasDirection: "R", Text: "I'd rather revisit a place I already love than gamble on a new one."},
	{ID: "world_d", Axis: AxisWorld, BiasDirection: "D", Text: "Finding somewhere I've never been is the whole point of going out."},
	{ID: "decision_l", Axis: AxisDecision, BiasDirection: "L", Text: "I check ratings and reviews before I commit to a place."},
	{ID: "decision_h", Axis: AxisDecision, BiasDirection: "H", Text: "If a place feels right, that's all the reason I need."},
	{ID: "time_p", Axis: AxisTime, BiasDirection: "P", Text: "I like to know where I'm going before I leave the house."},
	{ID: "time_f", Axis: AxisTime, BiasDirection: "F", Text: "The best outings are the ones I never planned."},
}

// CalculateTravelTypeFromScale reduces scale-quiz answers into a travel type
// code. Statements biased toward an axis's second pole have their scores
// negated so every statement lands on the same first-pole-positive scale;
// each axis then averages its answered statements and a positive average
// picks the first pole. A zero average resolves to the second pole; the
// scale mode deliberately has no extra tie-break pass.
func CalculateTravelTypeFromScale(answers []ScaleAnswer) string {
	type agg struct {
		sum   float64
		count int
	}
	byAxis := make(map[Axis]*agg, len(axisOrder))

	for _, a := range answers {
		pair := axisLetters[a.Axis]
		score := clampScore(a.Score)

		v := float64(score)
		if a.BiasDirection == string(pair.second) {
			v = -v
		}

		ag, ok := byAxis[a.Axis]
		if !ok {
			ag = &agg{}
			byAxis[a.Axis] = ag
		}
		ag.sum += v
		ag.count++
	}

	return composeCode(func(axis Axis, pair letterPair) byte {
		ag := byAxis[axis]
		if ag == nil || ag.count == 0 {
			return pair.second
		}
		if ag.sum/float64(ag.count) > 0 {
			return pair.first
		}
		return pair.second
	})
}

func clampScore(s int) int {
	if s < -3 {
		return -3
	}
	if s > 3 {
		return 3
	}
	return s
}
