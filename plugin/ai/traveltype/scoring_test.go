package traveltype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTravelTypeFromAnswers_EndToEnd(t *testing.T) {
	answers := []QuizAnswer{
		{Axis: AxisPeople, Value: "G", QuestionIndex: 0},
		{Axis: AxisWorld, Value: "D", QuestionIndex: 1},
		{Axis: AxisDecision, Value: "L", QuestionIndex: 2},
		{Axis: AxisTime, Value: "F", QuestionIndex: 3},
	}

	code := CalculateTravelTypeFromAnswers(answers)
	assert.Equal(t, "GDLF", code)

	info, ok := GetTravelTypeInfo(code)
	require.True(t, ok)
	assert.Equal(t, "The Serendipity Chaser", info.Name)
}

func TestCalculateTravelTypeFromAnswers_Idempotent(t *testing.T) {
	answers := []QuizAnswer{
		{Axis: AxisPeople, Value: "S", QuestionIndex: 0},
		{Axis: AxisPeople, Value: "G", QuestionIndex: 4},
		{Axis: AxisWorld, Value: "R", QuestionIndex: 1},
		{Axis: AxisWorld, Value: "D", QuestionIndex: 7},
		{Axis: AxisDecision, Value: "H", QuestionIndex: 2},
		{Axis: AxisTime, Value: "P", QuestionIndex: 3},
		{Axis: AxisTime, Value: "F", QuestionIndex: 9},
	}

	first := CalculateTravelTypeFromAnswers(answers)
	second := CalculateTravelTypeFromAnswers(answers)
	assert.Equal(t, first, second)
	assert.True(t, IsValidTravelTypeCode(first))
}

func TestCalculateTravelTypeFromAnswers_AlwaysRegistryValid(t *testing.T) {
	// Clean one-sided answer sets for every pole combination must land on
	// that exact registry entry without touching the fallback.
	letters := map[Axis][2]string{
		AxisPeople:   {"G", "S"},
		AxisWorld:    {"R", "D"},
		AxisDecision: {"L", "H"},
		AxisTime:     {"P", "F"},
	}

	for pi := 0; pi < 2; pi++ {
		for wi := 0; wi < 2; wi++ {
			for di := 0; di < 2; di++ {
				for ti := 0; ti < 2; ti++ {
					answers := []QuizAnswer{
						{Axis: AxisPeople, Value: letters[AxisPeople][pi], QuestionIndex: 0},
						{Axis: AxisWorld, Value: letters[AxisWorld][wi], QuestionIndex: 1},
						{Axis: AxisDecision, Value: letters[AxisDecision][di], QuestionIndex: 2},
						{Axis: AxisTime, Value: letters[AxisTime][ti], QuestionIndex: 3},
					}
					want := letters[AxisPeople][pi] + letters[AxisWorld][wi] +
						letters[AxisDecision][di] + letters[AxisTime][ti]

					got := CalculateTravelTypeFromAnswers(answers)
					assert.Equal(t, want, got)
					assert.True(t, IsValidTravelTypeCode(got))
				}
			}
		}
	}
}

func TestTieBreak_LaterHalfDecides(t *testing.T) {
	// People sums: G=1.0 (q0), S=1.2 (q1). Gap 0.2 of total 2.2 is within
	// the 15% band, so the tie-break runs; the later-asked half is q1 alone
	// with signed weight -1.2, which clears the threshold and picks S.
	answers := []QuizAnswer{
		{Axis: AxisPeople, Value: "G", QuestionIndex: 0},
		{Axis: AxisPeople, Value: "S", QuestionIndex: 1},
		{Axis: AxisWorld, Value: "R", QuestionIndex: 2},
		{Axis: AxisDecision, Value: "L", QuestionIndex: 3},
		{Axis: AxisTime, Value: "P", QuestionIndex: 4},
	}

	first := CalculateTravelTypeFromAnswers(answers)
	second := CalculateTravelTypeFromAnswers(answers)
	assert.Equal(t, "SRLP", first)
	assert.Equal(t, first, second, "tie-break must be deterministic")
}

func TestTieBreak_FirstAskedAnswerDecides(t *testing.T) {
	// People: S at q0 (1.0), G at q1 (1.2), G at q3 (1.1), S at q8 (1.1).
	// Sums 2.3 vs 2.1 are near-tied; the later half (q8: -1.1, q3: +1.1)
	// cancels exactly, below the threshold; counts are 2-2; the first-asked
	// answer (q0: S) decides.
	answers := []QuizAnswer{
		{Axis: AxisPeople, Value: "S", QuestionIndex: 0},
		{Axis: AxisPeople, Value: "G", QuestionIndex: 1},
		{Axis: AxisPeople, Value: "G", QuestionIndex: 3},
		{Axis: AxisPeople, Value: "S", QuestionIndex: 8},
		{Axis: AxisWorld, Value: "D", QuestionIndex: 2},
		{Axis: AxisDecision, Value: "H", QuestionIndex: 5},
		{Axis: AxisTime, Value: "F", QuestionIndex: 6},
	}

	code := CalculateTravelTypeFromAnswers(answers)
	assert.Equal(t, "SDHF", code)
}

func TestTieBreak_ForeignLetterFallsBackToRawScores(t *testing.T) {
	// A People answer carrying a letter from another axis contributes to
	// neither bucket; with no other People answers every tie-break stage is
	// exhausted and the raw-score comparison picks the first pole.
	answers := []QuizAnswer{
		{Axis: AxisPeople, Value: "X", QuestionIndex: 0},
		{Axis: AxisWorld, Value: "D", QuestionIndex: 1},
		{Axis: AxisDecision, Value: "L", QuestionIndex: 2},
		{Axis: AxisTime, Value: "F", QuestionIndex: 3},
	}

	code := CalculateTravelTypeFromAnswers(answers)
	assert.Equal(t, "GDLF", code)
}

func TestCalculateTravelTypeFromAnswers_Empty(t *testing.T) {
	// No answers at all resolves every axis through the defensive raw-score
	// comparison to its first pole, which is the default code.
	assert.Equal(t, DefaultTravelTypeCode, CalculateTravelTypeFromAnswers(nil))
}

func TestQuestionWeightsInRange(t *testing.T) {
	require.Len(t, questionWeights, 11)
	for idx, w := range questionWeights {
		assert.GreaterOrEqual(t, w, 0.9, "question %d", idx)
		assert.LessOrEqual(t, w, 1.5, "question %d", idx)
	}
}

func TestScoreAnswers(t *testing.T) {
	t.Run("Normalized shares sum to one", func(t *testing.T) {
		answers := []QuizAnswer{
			{Axis: AxisPeople, Value: "G", QuestionIndex: 0},
			{Axis: AxisPeople, Value: "S", QuestionIndex: 5},
		}

		scores := ScoreAnswers(answers)
		require.Len(t, scores, 4)
		assert.Equal(t, AxisPeople, scores[0].Axis)
		assert.InDelta(t, 1.0, scores[0].FirstShare+scores[0].SecondShare, 1e-9)
	})

	t.Run("Unanswered axis splits evenly", func(t *testing.T) {
		scores := ScoreAnswers(nil)
		for _, s := range scores {
			assert.InDelta(t, 0.5, s.FirstShare, 1e-9)
			assert.InDelta(t, 0.5, s.SecondShare, 1e-9)
		}
	})
}

func TestCalculateTravelTypeFromScale(t *testing.T) {
	t.Run("Second-pole bias negates score", func(t *testing.T) {
		// Strong agreement with an S-leaning statement must pull the People
		// axis negative and resolve to S.
		answers := []ScaleAnswer{
			{QuestionID: "people_s", Axis: AxisPeople, BiasDirection: "S", Score: 3},
			{QuestionID: "world_d", Axis: AxisWorld, BiasDirection: "D", Score: -2},
			{QuestionID: "decision_l", Axis: AxisDecision, BiasDirection: "L", Score: 2},
			{QuestionID: "time_p", Axis: AxisTime, BiasDirection: "P", Score: 1},
		}

		code := CalculateTravelTypeFromScale(answers)
		// People: +3 biased S -> -3 -> S. World: -2 biased D -> +2 -> R.
		// Decision: +2 -> L. Time: +1 -> P.
		assert.Equal(t, "SRLP", code)
	})

	t.Run("Polarity pair averages", func(t *testing.T) {
		answers := []ScaleAnswer{
			{QuestionID: "people_g", Axis: AxisPeople, BiasDirection: "G", Score: 3},
			{QuestionID: "people_s", Axis: AxisPeople, BiasDirection: "S", Score: -1},
			{QuestionID: "world_r", Axis: AxisWorld, BiasDirection: "R", Score: -3},
			{QuestionID: "world_d", Axis: AxisWorld, BiasDirection: "D", Score: 3},
			{QuestionID: "decision_l", Axis: AxisDecision, BiasDirection: "L", Score: 0},
			{QuestionID: "decision_h", Axis: AxisDecision, BiasDirection: "H", Score: 2},
			{QuestionID: "time_p", Axis: AxisTime, BiasDirection: "P", Score: 2},
			{QuestionID: "time_f", Axis: AxisTime, BiasDirection: "F", Score: -2},
		}

		// People avg (3+1)/2 = 2 -> G. World avg (-3-3)/2 = -3... negated:
		// R-biased -3 -> -3, D-biased 3 -> -3, avg -3 -> D.
		// Decision avg (0-2)/2 = -1 -> H. Time avg (2+2)/2 = 2 -> P.
		assert.Equal(t, "GDHP", CalculateTravelTypeFromScale(answers))
	})

	t.Run("Zero average resolves to second pole", func(t *testing.T) {
		answers := []ScaleAnswer{
			{QuestionID: "people_g", Axis: AxisPeople, BiasDirection: "G", Score: 2},
			{QuestionID: "people_s", Axis: AxisPeople, BiasDirection: "S", Score: 2},
		}
		code := CalculateTravelTypeFromScale(answers)
		assert.Equal(t, byte('S'), code[0], "exact zero has no tie-break pass in scale mode")
	})

	t.Run("Idempotent", func(t *testing.T) {
		answers := []ScaleAnswer{
			{QuestionID: "people_g", Axis: AxisPeople, BiasDirection: "G", Score: 1},
			{QuestionID: "time_f", Axis: AxisTime, BiasDirection: "F", Score: 3},
		}
		assert.Equal(t, CalculateTravelTypeFromScale(answers), CalculateTravelTypeFromScale(answers))
	})

	t.Run("Out-of-range scores are clamped", func(t *testing.T) {
		answers := []ScaleAnswer{
			{QuestionID: "people_g", Axis: AxisPeople, BiasDirection: "G", Score: 99},
		}
		code := CalculateTravelTypeFromScale(answers)
		assert.Equal(t, byte('G'), code[0])
		assert.True(t, IsValidTravelTypeCode(code))
	})

	t.Run("No answers", func(t *testing.T) {
		// Every axis averages zero and resolves to its second pole.
		assert.Equal(t, "SDHF", CalculateTravelTypeFromScale(nil))
	})
}
