package traveltype

import (
	"log/slog"
	"math"
	"sort"
)

// QuizAnswer is one forced-choice answer from the binary quiz.
type QuizAnswer struct {
	Axis          Axis   `json:"axis"`
	Value         string `json:"value"`          // one of the axis's two pole letters
	QuestionIndex int    `json:"question_index"` // position in the question sequence
}

// questionWeights gives each question's influence on its axis. Later,
// more situational questions carry more weight than the opening ones.
var questionWeights = map[int]float64{
	0:  1.0,
	1:  1.2,
	2:  0.9,
	3:  1.1,
	4:  1.0,
	5:  1.3,
	6:  0.9,
	7:  1.2,
	8:  1.1,
	9:  1.4,
	10: 1.5,
}

const defaultQuestionWeight = 1.0

// axisNormalization corrects for question-count imbalance between axes.
// World is asked in only 2 of the 11 questions, so it is up-weighted.
var axisNormalization = map[Axis]float64{
	AxisPeople:   1.0,
	AxisWorld:    1.5,
	AxisDecision: 1.0,
	AxisTime:     1.0,
}

// tieGapRatio is the normalized score gap at or below which an axis is
// considered near-tied and the tie-break policy runs.
const tieGapRatio = 0.15

// tieHalfSumThreshold is the minimum later-half signed-weight magnitude
// needed for the re-rank stage to decide a near-tied axis.
const tieHalfSumThreshold = 0.1

func questionWeight(index int) float64 {
	if w, ok := questionWeights[index]; ok {
		return w
	}
	return defaultQuestionWeight
}

// CalculateTravelTypeFromAnswers reduces a weighted binary answer sequence
// into a travel type code. Pure: identical input always yields the same code.
func CalculateTravelTypeFromAnswers(answers []QuizAnswer) string {
	byAxis := make(map[Axis][]QuizAnswer, len(axisOrder))
	for _, a := range answers {
		byAxis[a.Axis] = append(byAxis[a.Axis], a)
	}

	return composeCode(func(axis Axis, pair letterPair) byte {
		return resolveBinaryAxis(axis, pair, byAxis[axis])
	})
}

// AxisScore is the normalized [0,1] score pair for one axis, exposed so the
// quiz UI can render per-axis leanings alongside the final code.
type AxisScore struct {
	Axis        Axis    `json:"axis"`
	FirstShare  float64 `json:"first_share"`
	SecondShare float64 `json:"second_share"`
	Winner      string  `json:"winner"`
}

// ScoreAnswers returns the per-axis normalized scores in fixed axis order.
func ScoreAnswers(answers []QuizAnswer) []AxisScore {
	byAxis := make(map[Axis][]QuizAnswer, len(axisOrder))
	for _, a := range answers {
		byAxis[a.Axis] = append(byAxis[a.Axis], a)
	}

	scores := make([]AxisScore, 0, len(axisOrder))
	for _, axis := range axisOrder {
		pair := axisLetters[axis]
		first, second := bucketSums(axis, pair, byAxis[axis])
		total := first + second
		fs, ss := 0.5, 0.5
		if total > 0 {
			fs = first / total
			ss = second / total
		}
		scores = append(scores, AxisScore{
			Axis:        axis,
			FirstShare:  fs,
			SecondShare: ss,
			Winner:      string(resolveBinaryAxis(axis, pair, byAxis[axis])),
		})
	}
	return scores
}

// bucketSums accumulates the weighted, axis-normalized sums for each pole.
// Answers carrying a letter outside the axis's pair contribute to neither.
func bucketSums(axis Axis, pair letterPair, answers []QuizAnswer) (first, second float64) {
	norm := axisNormalization[axis]
	for _, a := range answers {
		w := questionWeight(a.QuestionIndex) * norm
		switch a.Value {
		case string(pair.first):
			first += w
		case string(pair.second):
			second += w
		}
	}
	return first, second
}

func resolveBinaryAxis(axis Axis, pair letterPair, answers []QuizAnswer) byte {
	first, second := bucketSums(axis, pair, answers)
	total := first + second

	if total > 0 && math.Abs(first-second) > tieGapRatio*total {
		if first > second {
			return pair.first
		}
		return pair.second
	}

	return breakTie(axis, pair, answers, first, second)
}

// breakTie resolves a near-tied axis deterministically:
//  1. Re-rank the axis's answers by descending question index and sum signed
//     weights over the later-asked half; a magnitude above the threshold wins.
//  2. Compare raw answer counts per pole.
//  3. Use the first-asked question's answer for the axis.
//  4. Compare raw bucket scores (first pole wins equality).
func breakTie(axis Axis, pair letterPair, answers []QuizAnswer, first, second float64) byte {
	norm := axisNormalization[axis]

	ranked := make([]QuizAnswer, len(answers))
	copy(ranked, answers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QuestionIndex > ranked[j].QuestionIndex
	})

	// Stage 1: later-asked half, signed weights. Later questions are treated
	// as more specific than the opening ones.
	half := (len(ranked) + 1) / 2
	var halfSum float64
	for _, a := range ranked[:half] {
		w := questionWeight(a.QuestionIndex) * norm
		switch a.Value {
		case string(pair.first):
			halfSum += w
		case string(pair.second):
			halfSum -= w
		}
	}
	if math.Abs(halfSum) > tieHalfSumThreshold {
		if halfSum > 0 {
			return pair.first
		}
		return pair.second
	}

	// Stage 2: raw answer counts.
	var firstCount, secondCount int
	for _, a := range answers {
		switch a.Value {
		case string(pair.first):
			firstCount++
		case string(pair.second):
			secondCount++
		}
	}
	if firstCount != secondCount {
		if firstCount > secondCount {
			return pair.first
		}
		return pair.second
	}

	// Stage 3: the first-asked question's answer decides.
	if len(ranked) > 0 {
		earliest := ranked[len(ranked)-1]
		switch earliest.Value {
		case string(pair.first):
			return pair.first
		case string(pair.second):
			return pair.second
		}
		// Value is not a legal letter for this axis; fall through.
		slog.Warn("tie-break reached answer with foreign letter",
			"axis", axis,
			"value", earliest.Value,
			"question_index", earliest.QuestionIndex)
	}

	// Stage 4: raw score comparison.
	if first >= second {
		return pair.first
	}
	return pair.second
}

// composeCode concatenates the resolved pole letters in fixed axis order and
// validates the result against the registry. An invalid code (only possible
// with out-of-range axis data) degrades to the default instead of failing.
func composeCode(resolve axisResolver) string {
	var letters [4]byte
	for i, axis := range axisOrder {
		letters[i] = resolve(axis, axisLetters[axis])
	}
	code := string(letters[:])
	if !IsValidTravelTypeCode(code) {
		slog.Warn("derived travel type is not a registry member, substituting default",
			"code", code,
			"default", DefaultTravelTypeCode)
		return DefaultTravelTypeCode
	}
	return code
}
