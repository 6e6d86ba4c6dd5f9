package api

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"gobenford/adapters/export"
	"gobenford/domain/benford"
	"gobenford/domain/core"
	apperrors "gobenford/internal/errors"

	"github.com/gin-gonic/gin"
)

const defaultRunsLimit = 20

// AnalyzeRequest is the body of POST /api/v1/analyze. Null entries in
// Values are missing observations.
type AnalyzeRequest struct {
	Column string     `json:"column" binding:"required"`
	Values []*float64 `json:"values" binding:"required"`
	Min    *float64   `json:"min,omitempty"`
	Max    *float64   `json:"max,omitempty"`
}

// RunResponse is a run with its table and conformity verdict.
type RunResponse struct {
	*benford.Run
	Rows     []benford.Row `json:"rows"`
	Alpha    float64       `json:"alpha"`
	Conforms bool          `json:"conforms"`
}

func (s *Server) newRunResponse(run *benford.Run) RunResponse {
	return RunResponse{
		Run:      run,
		Rows:     run.Summary.Rows(),
		Alpha:    s.alpha,
		Conforms: run.Summary.Conforms(s.alpha),
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"history": s.service.HasHistory(),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.ObserveAnalysis("rejected", 0)
		s.respondError(c, apperrors.InvalidInput(fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	values := make([]float64, len(req.Values))
	for i, v := range req.Values {
		if v == nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = *v
	}

	filter := benford.RangeFilter{Min: req.Min, Max: req.Max}
	run, err := s.service.AnalyzeSample(c.Request.Context(), req.Column, values, filter)
	if err != nil {
		s.metrics.ObserveAnalysis("rejected", 0)
		s.respondError(c, err)
		return
	}

	outcome := "deviates"
	if run.Summary.Conforms(s.alpha) {
		outcome = "conforms"
	}
	s.metrics.ObserveAnalysis(outcome, run.Summary.Total())

	c.JSON(http.StatusCreated, s.newRunResponse(run))
}

func (s *Server) handleListRuns(c *gin.Context) {
	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(c, apperrors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = n
	}

	runs, err := s.service.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, s.newRunResponse(run))
	}
	c.JSON(http.StatusOK, gin.H{"runs": out, "count": len(out)})
}

func (s *Server) lookupRun(c *gin.Context) (*benford.Run, bool) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	run, err := s.service.GetRun(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return run, true
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.newRunResponse(run))
}

func (s *Server) handleExportRun(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, run.Summary); err != nil {
		s.respondError(c, apperrors.Wrap(err, "export run"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "benford-"+run.ID.String()+".csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) handleRunReport(c *gin.Context) {
	run, ok := s.lookupRun(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", export.HTML(run, s.alpha))
}
