// Package api exposes the batch scoring engine over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/pipeline"
)

// ScoreFormula is the published scoring formula, echoed in every response.
const ScoreFormula = "FORGE_SCORE = CS × XS where CS_required ≥ τ"

// Server handles HTTP requests.
type Server struct {
	analyzer *pipeline.Analyzer
	logger   *zap.Logger
}

// NewServer creates the API server.
func NewServer(analyzer *pipeline.Analyzer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{analyzer: analyzer, logger: logger}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

type skillPayload struct {
	Name       string   `json:"name"`
	Weight     float64  `json:"weight"`
	Importance *float64 `json:"importance"` // accepted alias for weight
	IsRequired bool     `json:"isRequired"`
	Category   string   `json:"category"`
}

type jobConfigPayload struct {
	RoleTitle     string        `json:"roleTitle"`
	Budget        *model.Budget `json:"budget"`
	GateThreshold *float64      `json:"gateThreshold"`
}

type analyzeRequest struct {
	Skills         []skillPayload         `json:"skills"`
	Candidates     []model.CandidateInput `json:"candidates"`
	Tau            *float64               `json:"tau"`
	ContextWeights *model.ContextWeights  `json:"contextWeights"`
	JobConfig      *jobConfigPayload      `json:"jobConfig"`
}

type analyzeMeta struct {
	CandidatesAnalyzed int     `json:"candidatesAnalyzed"`
	Tau                float64 `json:"tau"`
	Ranked             int     `json:"ranked"`
	Review             int     `json:"review"`
	Filtered           int     `json:"filtered"`
	Formula            string  `json:"formula"`
}

type analyzeResponse struct {
	Success    bool                      `json:"success"`
	Candidates []model.CandidateAnalysis `json:"candidates"`
	Errors     []pipeline.CandidateError `json:"errors,omitempty"`
	Meta       analyzeMeta               `json:"meta"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleAnalyze scores a candidate batch. Input validation failures return
// 400 with a descriptive message; an unexpected internal fault while
// scoring the whole request returns 500. Per-candidate failures surface in
// the errors list, never as a top-level failure.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Skills) == 0 {
		s.respondError(w, http.StatusBadRequest, "skills must not be empty")
		return
	}
	if len(req.Candidates) == 0 {
		s.respondError(w, http.StatusBadRequest, "candidates must not be empty")
		return
	}

	batch := pipeline.BatchRequest{
		Job:        buildJobConfig(req),
		Candidates: req.Candidates,
	}

	result, err := s.analyzer.Analyze(r.Context(), batch)
	if err != nil {
		if pipeline.IsValidationError(err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("batch analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	analyses := result.Analyses
	if analyses == nil {
		analyses = []model.CandidateAnalysis{}
	}

	s.respondJSON(w, http.StatusOK, analyzeResponse{
		Success:    true,
		Candidates: analyses,
		Errors:     result.Errors,
		Meta: analyzeMeta{
			CandidatesAnalyzed: len(analyses),
			Tau:                result.Tau,
			Ranked:             result.Ranked,
			Review:             result.Review,
			Filtered:           result.Filtered,
			Formula:            ScoreFormula,
		},
	})
}

// buildJobConfig merges the request fields into the engine's job config.
// A top-level tau wins over jobConfig.gateThreshold.
func buildJobConfig(req analyzeRequest) model.JobConfig {
	job := model.JobConfig{}

	for _, sp := range req.Skills {
		weight := sp.Weight
		if weight == 0 && sp.Importance != nil {
			weight = *sp.Importance
		}
		job.Skills = append(job.Skills, model.SkillRequirement{
			Name:     sp.Name,
			Weight:   weight,
			Required: sp.IsRequired,
			Category: sp.Category,
		})
	}

	if req.JobConfig != nil {
		job.RoleTitle = req.JobConfig.RoleTitle
		job.Budget = req.JobConfig.Budget
		if req.JobConfig.GateThreshold != nil {
			job.Tau = *req.JobConfig.GateThreshold
		}
	}
	if req.Tau != nil {
		job.Tau = *req.Tau
	}
	if req.ContextWeights != nil {
		job.ContextWeights = *req.ContextWeights
	}

	return job
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "forge",
		"endpoints": map[string]string{
			"POST /analyze": "Score and rank a candidate batch against a job configuration",
			"GET /health":   "Health check",
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Success: false, Error: message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
