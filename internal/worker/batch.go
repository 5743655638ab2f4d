package worker

import (
	"context"
	"fmt"

	"github.com/talentforge/forge/internal/model"
)

// Scorer scores one candidate against a job configuration.
type Scorer interface {
	ScoreCandidate(ctx context.Context, in model.CandidateInput, job *model.JobConfig) (*model.CandidateAnalysis, error)
}

// ScoreJob scores a single candidate.
type ScoreJob struct {
	Input  model.CandidateInput
	Job    *model.JobConfig
	Scorer Scorer
}

// Execute runs the job. A panic while scoring one candidate is converted
// into a per-candidate error so sibling candidates are unaffected.
func (j *ScoreJob) Execute(ctx context.Context) Result {
	res := &ScoreResult{Key: j.Input.Key()}

	defer func() {
		if r := recover(); r != nil {
			res.Analysis = nil
			res.Error = fmt.Errorf("internal scoring fault: %v", r)
		}
	}()

	analysis, err := j.Scorer.ScoreCandidate(ctx, j.Input, j.Job)
	res.Analysis = analysis
	res.Error = err
	return res
}

// ScoreResult is the per-candidate outcome of a scoring job.
type ScoreResult struct {
	Key      string
	Analysis *model.CandidateAnalysis
	Error    error
}

// GetError returns the scoring error, if any.
func (r *ScoreResult) GetError() error { return r.Error }

// BatchProcessor scores candidate batches concurrently.
type BatchProcessor struct {
	scorer      Scorer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(scorer Scorer, concurrency int) *BatchProcessor {
	return &BatchProcessor{scorer: scorer, concurrency: concurrency}
}

// Process scores all candidates concurrently and returns one result per
// candidate, in no particular order.
func (b *BatchProcessor) Process(ctx context.Context, candidates []model.CandidateInput, job *model.JobConfig) []*ScoreResult {
	if len(candidates) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool(ctx, b.concurrency, len(candidates))
	pool.Start()

	for _, in := range candidates {
		pool.Submit(&ScoreJob{Input: in, Job: job, Scorer: b.scorer})
	}

	results := pool.Wait()
	out := make([]*ScoreResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*ScoreResult))
	}
	return out
}
