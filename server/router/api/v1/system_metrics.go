package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MetricsOverviewResponse summarizes pipeline activity since startup.
type MetricsOverviewResponse struct {
	TotalRequests  int64                      `json:"total_requests"`
	FailedRequests int64                      `json:"failed_requests"`
	SuccessRate    float64                    `json:"success_rate"`
	CacheHits      int64                      `json:"cache_hits"`
	Operations     map[string]OperationDetail `json:"operations"`
}

// OperationDetail is the per-operation slice of the overview.
type OperationDetail struct {
	Executions   int64 `json:"executions"`
	Errors       int64 `json:"errors"`
	AvgLatencyMs int64 `json:"avg_latency_ms"`
}

// GetMetricsSnapshot returns the pipeline metrics overview.
// GET /api/v1/system/metrics
func (s *APIV1Service) GetMetricsSnapshot(c echo.Context) error {
	snap := s.Metrics.Snapshot()

	ops := make(map[string]OperationDetail, len(snap.Operations))
	for name, op := range snap.Operations {
		ops[name] = OperationDetail{
			Executions:   op.ExecutionCount,
			Errors:       op.ErrorCount,
			AvgLatencyMs: op.AverageDuration,
		}
	}

	return c.JSON(http.StatusOK, MetricsOverviewResponse{
		TotalRequests:  snap.RequestTotal,
		FailedRequests: snap.RequestFailed,
		SuccessRate:    snap.SuccessRate(),
		CacheHits:      snap.CacheHits,
		Operations:     ops,
	})
}
