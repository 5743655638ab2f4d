package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/rank"
	"github.com/talentforge/forge/internal/worker"
)

// DefaultMaxBatch is the maximum candidates accepted per request.
const DefaultMaxBatch = 300

// BatchRequest is one analysis request: a job configuration plus the
// candidate pool.
type BatchRequest struct {
	Job        model.JobConfig
	Candidates []model.CandidateInput
}

// CandidateError reports a candidate whose scoring failed entirely.
type CandidateError struct {
	Username string `json:"username"`
	Error    string `json:"error"`
}

// BatchResult is the ordered outcome of a batch analysis.
type BatchResult struct {
	Analyses []model.CandidateAnalysis
	Errors   []CandidateError
	Tau      float64
	Ranked   int
	Review   int
	Filtered int
}

// ValidationError marks caller input errors; the API layer maps it to a
// 400 response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a caller input error.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Analyzer scores whole batches with bounded concurrency.
type Analyzer struct {
	pipeline   *Pipeline
	workers    int
	maxBatch   int
	defaultTau float64
	logger     *zap.Logger
}

// NewAnalyzer creates a batch analyzer over the given pipeline.
// defaultTau is the gate threshold applied to requests that supply
// none; a request's own tau always wins.
func NewAnalyzer(p *Pipeline, workers, maxBatch int, defaultTau float64, logger *zap.Logger) *Analyzer {
	if workers <= 0 {
		workers = 8
	}
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}
	if defaultTau <= 0 {
		defaultTau = model.DefaultTau
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{pipeline: p, workers: workers, maxBatch: maxBatch, defaultTau: defaultTau, logger: logger}
}

// Analyze validates the request, scores every candidate concurrently and
// returns the ordered result set. A single candidate's failure never
// aborts the batch; it surfaces in the per-candidate error list instead.
func (a *Analyzer) Analyze(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.Candidates) == 0 {
		return nil, validationErrorf("candidates must not be empty")
	}
	if len(req.Candidates) > a.maxBatch {
		return nil, validationErrorf("batch size %d exceeds the maximum of %d candidates", len(req.Candidates), a.maxBatch)
	}
	if req.Job.Tau <= 0 {
		req.Job.Tau = a.defaultTau
	}
	req.Job.Normalize()
	if err := req.Job.Validate(); err != nil {
		return nil, validationErrorf("invalid job config: %v", err)
	}

	processor := worker.NewBatchProcessor(a.pipeline, a.workers)
	results := processor.Process(ctx, req.Candidates, &req.Job)

	out := &BatchResult{Tau: req.Job.Tau}
	for _, res := range results {
		if res.Error != nil {
			a.logger.Warn("candidate scoring failed",
				zap.String("candidate", res.Key),
				zap.Error(res.Error))
			out.Errors = append(out.Errors, CandidateError{Username: res.Key, Error: res.Error.Error()})
			continue
		}
		out.Analyses = append(out.Analyses, *res.Analysis)
	}

	rank.Sort(out.Analyses)
	sort.Slice(out.Errors, func(i, j int) bool {
		return out.Errors[i].Username < out.Errors[j].Username
	})

	for _, analysis := range out.Analyses {
		switch analysis.GateStatus {
		case model.GateRanked:
			out.Ranked++
		case model.GateReview:
			out.Review++
		default:
			out.Filtered++
		}
	}

	a.logger.Info("batch analyzed",
		zap.Int("candidates", len(req.Candidates)),
		zap.Int("ranked", out.Ranked),
		zap.Int("review", out.Review),
		zap.Int("filtered", out.Filtered),
		zap.Int("errors", len(out.Errors)),
		zap.Float64("tau", out.Tau))

	return out, nil
}
