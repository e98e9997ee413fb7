package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/concierge/internal/profile"
)

func newTestService(t *testing.T) (*APIV1Service, *echo.Echo) {
	t.Helper()
	p := &profile.Profile{Mode: "dev", Port: 0}
	p.FromEnv()
	p.AIIntentEnabled = false
	require.NoError(t, p.Validate())

	svc := NewAPIV1Service(p)
	t.Cleanup(svc.Close)

	e := echo.New()
	svc.RegisterRoutes(e)
	return svc, e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScoreQuizEndpoint(t *testing.T) {
	_, e := newTestService(t)

	body := `{"answers":[
		{"axis":"people","value":"G","question_index":0},
		{"axis":"world","value":"D","question_index":1},
		{"axis":"decision","value":"L","question_index":2},
		{"axis":"time","value":"F","question_index":3}
	]}`
	rec := doJSON(e, http.MethodPost, "/api/v1/quiz/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreQuizResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "GDLF", resp.TravelTypeCode)
	assert.Equal(t, "The Serendipity Chaser", resp.TravelType.Name)
	assert.Len(t, resp.AxisScores, 4)
}

func TestScoreQuizEmptyAnswersFallsBack(t *testing.T) {
	_, e := newTestService(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/quiz/score", `{"answers":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreQuizResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "GRLP", resp.TravelTypeCode)
}

func TestScoreScaleQuizEndpoint(t *testing.T) {
	_, e := newTestService(t)

	body := `{"answers":[
		{"question_id":"people_s","axis":"people","bias_direction":"S","score":3},
		{"question_id":"world_d","axis":"world","bias_direction":"D","score":2},
		{"question_id":"decision_h","axis":"decision","bias_direction":"H","score":1},
		{"question_id":"time_f","axis":"time","bias_direction":"F","score":3}
	]}`
	rec := doJSON(e, http.MethodPost, "/api/v1/quiz/score-scale", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreScaleQuizResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SDHF", resp.TravelTypeCode)
	assert.Equal(t, "The Free Spirit", resp.TravelType.Name)
}

func TestListScaleStatements(t *testing.T) {
	_, e := newTestService(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/quiz/statements", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var statements []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statements))
	assert.Len(t, statements, 8)
}

func TestListTravelTypes(t *testing.T) {
	_, e := newTestService(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/travel-types", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var types []TravelTypeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	require.Len(t, types, 16)
	for _, tt := range types {
		assert.Len(t, tt.Code, 4)
		assert.NotEmpty(t, tt.Name)
		assert.NotEmpty(t, tt.SystemPrompt)
		assert.Len(t, tt.SearchQueries, 4)
	}
}

func TestGetTravelType(t *testing.T) {
	_, e := newTestService(t)

	t.Run("known code", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/travel-types/GDLF", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TravelTypeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "GDLF", resp.Code)
		assert.Equal(t, "The Serendipity Chaser", resp.Name)
	})

	t.Run("unknown code returns 404", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/travel-types/XXXX", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "TRAVEL_TYPE_NOT_FOUND", resp.Code)
	})

	t.Run("lowercase code is rejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/v1/travel-types/gdlf", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
