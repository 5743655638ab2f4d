// Package pipeline orchestrates the scoring of candidates: resolve the
// input into the canonical profile, enrich it from external sources,
// normalize evidence, score capability and context, adjust for
// compensation fit and apply the gate. Each candidate's intermediate state
// is local to its own scoring call; no shared mutable state exists between
// candidates.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/talentforge/forge/internal/hosting"
	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/normalize"
	"github.com/talentforge/forge/internal/portfolio"
	"github.com/talentforge/forge/internal/rank"
	"github.com/talentforge/forge/internal/score"
)

// HostingFetcher returns the profile and repository list for a handle.
type HostingFetcher interface {
	Fetch(ctx context.Context, handle string) (*model.HostingProfile, []model.Repository, error)
}

// PortfolioExtractor returns structured data for a portfolio URL.
type PortfolioExtractor interface {
	Extract(ctx context.Context, url string) (*model.PortfolioData, error)
}

// Pipeline scores one candidate at a time. It is safe for concurrent use.
type Pipeline struct {
	hosting      HostingFetcher     // nil disables hosting enrichment
	portfolio    PortfolioExtractor // nil disables portfolio enrichment
	normalizer   *normalize.Normalizer
	capability   *score.CapabilityScorer
	logger       *zap.Logger
	fetchTimeout time.Duration
	now          func() time.Time
}

// Options configures the pipeline.
type Options struct {
	Hosting      HostingFetcher
	Portfolio    PortfolioExtractor
	Logger       *zap.Logger
	FetchTimeout time.Duration // external call budget per source
	Now          func() time.Time
}

// New creates a scoring pipeline.
func New(opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		hosting:      opts.Hosting,
		portfolio:    opts.Portfolio,
		normalizer:   normalize.New(),
		capability:   score.NewCapabilityScorer(),
		logger:       opts.Logger,
		fetchTimeout: opts.FetchTimeout,
		now:          opts.Now,
	}
}

// ScoreCandidate resolves, enriches and scores one candidate. External
// source failures degrade the profile instead of failing the candidate;
// the returned error is reserved for inputs that cannot be scored at all
// (an empty candidate).
func (p *Pipeline) ScoreCandidate(ctx context.Context, in model.CandidateInput, job *model.JobConfig) (*model.CandidateAnalysis, error) {
	if in.Key() == "" {
		return nil, errors.New("candidate has no id, handle or name")
	}

	profile := normalize.ResolveProfile(in)
	p.enrich(ctx, profile)

	return p.scoreProfile(profile, job), nil
}

// enrich attaches hosting and portfolio signals. A timed-out or failed
// fetch is abandoned and scoring proceeds degraded.
func (p *Pipeline) enrich(ctx context.Context, profile *model.CandidateProfile) {
	if p.hosting != nil && profile.Handle != "" && len(profile.Repos) == 0 {
		fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
		hostingProfile, repos, err := p.hosting.Fetch(fetchCtx, profile.Handle)
		cancel()
		switch {
		case err == nil:
			profile.Hosting = hostingProfile
			profile.Repos = repos
		case errors.Is(err, hosting.ErrNotFound):
			profile.Degraded = append(profile.Degraded, "hosting: profile not found")
		case errors.Is(err, hosting.ErrRateLimited):
			profile.Degraded = append(profile.Degraded, "hosting: rate limited")
		default:
			profile.Degraded = append(profile.Degraded, "hosting: unavailable")
		}
		if err != nil {
			p.logger.Warn("hosting fetch failed, scoring degraded",
				zap.String("candidate", profile.ID),
				zap.Error(err))
		}
	}

	if p.portfolio != nil && profile.PortfolioURL != "" {
		fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
		data, err := p.portfolio.Extract(fetchCtx, profile.PortfolioURL)
		cancel()
		if err != nil {
			if errors.Is(err, portfolio.ErrDisallowed) {
				profile.Degraded = append(profile.Degraded, "portfolio: fetch disallowed")
			} else {
				profile.Degraded = append(profile.Degraded, "portfolio: unavailable")
			}
			p.logger.Warn("portfolio extraction failed, scoring degraded",
				zap.String("candidate", profile.ID),
				zap.Error(err))
		} else {
			profile.Portfolio = data
		}
	}
}

// scoreProfile is the pure scoring function over a resolved profile.
func (p *Pipeline) scoreProfile(profile *model.CandidateProfile, job *model.JobConfig) *model.CandidateAnalysis {
	now := p.now()
	evidence := p.normalizer.Normalize(profile, job.Skills, now)
	capability := p.capability.Score(evidence, job.Skills)

	contextScorer := score.NewContextScorer(job.ContextWeights)
	breakdown, xs := contextScorer.Score(profile)

	fit := score.AssessCompFit(profile.Salary, job.Budget)
	xsAdjusted := score.AdjustContext(xs, fit)

	analysis := &model.CandidateAnalysis{
		CandidateID:        profile.ID,
		Name:               profile.Name,
		CapabilityScore:    capability.Display,
		CapabilityRequired: capability.Required,
		ContextScore:       xsAdjusted,
		LearningVelocity:   score.LearningVelocity(profile.Repos, now),
		Skills:             capability.Skills,
		Context:            breakdown,
		Evidence:           flattenEvidence(evidence, job.Skills),
		CompFit:            fit,
		Degraded:           profile.Degraded,
	}

	engine := rank.New(job.Tau)
	engine.Finalize(analysis)
	analysis.Explanation = rank.BuildExplanation(analysis)

	return analysis
}

// flattenEvidence lists all evidence in job skill order for the response.
func flattenEvidence(evidence normalize.EvidenceMap, skills []model.SkillRequirement) []model.EvidenceItem {
	var out []model.EvidenceItem
	for _, req := range skills {
		out = append(out, evidence[req.Name]...)
	}
	if out == nil {
		out = []model.EvidenceItem{}
	}
	return out
}
