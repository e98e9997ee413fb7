package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyago/concierge/plugin/ai/traveltype"
	"github.com/voyago/concierge/server/internal/errors"
)

// TravelTypeResponse is the public shape of one personality type.
type TravelTypeResponse struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Emoji         string   `json:"emoji"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	SearchQueries []string `json:"search_queries"`
	SystemPrompt  string   `json:"system_prompt"`
}

func toTravelTypeResponse(info *traveltype.TravelTypeInfo) TravelTypeResponse {
	return TravelTypeResponse{
		Code:          info.Code,
		Name:          info.Name,
		Emoji:         info.Emoji,
		Description:   info.Description,
		Keywords:      info.Keywords,
		SearchQueries: info.SearchQueries,
		SystemPrompt:  info.SystemPrompt(),
	}
}

// ScoreQuizRequest carries the weighted binary quiz answers.
type ScoreQuizRequest struct {
	Answers []traveltype.QuizAnswer `json:"answers"`
}

// ScoreQuizResponse is the scoring outcome with per-axis detail.
type ScoreQuizResponse struct {
	TravelTypeCode string                 `json:"travel_type_code"`
	TravelType     TravelTypeResponse     `json:"travel_type"`
	AxisScores     []traveltype.AxisScore `json:"axis_scores"`
}

// ScoreQuiz reduces binary quiz answers into a travel type.
// POST /api/v1/quiz/score
func (s *APIV1Service) ScoreQuiz(c echo.Context) error {
	const op = "quiz_score"
	start := time.Now()
	s.Metrics.RecordRequest(op)

	var req ScoreQuizRequest
	if err := c.Bind(&req); err != nil {
		s.Metrics.RecordFailure(op)
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}

	code := traveltype.CalculateTravelTypeFromAnswers(req.Answers)
	info, _ := traveltype.GetTravelTypeInfo(code)

	s.Metrics.RecordDuration(op, time.Since(start))
	return c.JSON(http.StatusOK, ScoreQuizResponse{
		TravelTypeCode: code,
		TravelType:     toTravelTypeResponse(info),
		AxisScores:     traveltype.ScoreAnswers(req.Answers),
	})
}

// ScoreScaleQuizRequest carries the 7-point scale quiz answers.
type ScoreScaleQuizRequest struct {
	Answers []traveltype.ScaleAnswer `json:"answers"`
}

// ScoreScaleQuizResponse is the scale-mode scoring outcome.
type ScoreScaleQuizResponse struct {
	TravelTypeCode string             `json:"travel_type_code"`
	TravelType     TravelTypeResponse `json:"travel_type"`
}

// ScoreScaleQuiz reduces 7-point scale answers into a travel type.
// POST /api/v1/quiz/score-scale
func (s *APIV1Service) ScoreScaleQuiz(c echo.Context) error {
	const op = "quiz_score_scale"
	start := time.Now()
	s.Metrics.RecordRequest(op)

	var req ScoreScaleQuizRequest
	if err := c.Bind(&req); err != nil {
		s.Metrics.RecordFailure(op)
		return writeError(c, errors.InvalidArgument("malformed request body"))
	}

	code := traveltype.CalculateTravelTypeFromScale(req.Answers)
	info, _ := traveltype.GetTravelTypeInfo(code)

	s.Metrics.RecordDuration(op, time.Since(start))
	return c.JSON(http.StatusOK, ScoreScaleQuizResponse{
		TravelTypeCode: code,
		TravelType:     toTravelTypeResponse(info),
	})
}

// ListScaleStatements returns the fixed statement set for the scale quiz UI.
// GET /api/v1/quiz/statements
func (s *APIV1Service) ListScaleStatements(c echo.Context) error {
	return c.JSON(http.StatusOK, traveltype.ScaleStatements)
}

// ListTravelTypes returns all 16 personality types in axis-letter order.
// GET /api/v1/travel-types
func (s *APIV1Service) ListTravelTypes(c echo.Context) error {
	codes := traveltype.AllCodes()
	out := make([]TravelTypeResponse, 0, len(codes))
	for _, code := range codes {
		info, ok := traveltype.GetTravelTypeInfo(code)
		if !ok {
			continue
		}
		out = append(out, toTravelTypeResponse(info))
	}
	return c.JSON(http.StatusOK, out)
}

// GetTravelType returns one personality type by exact code.
// GET /api/v1/travel-types/:code
func (s *APIV1Service) GetTravelType(c echo.Context) error {
	code := c.Param("code")
	info, ok := traveltype.GetTravelTypeInfo(code)
	if !ok {
		return writeError(c, errors.TravelTypeNotFound(code))
	}
	return c.JSON(http.StatusOK, toTravelTypeResponse(info))
}
