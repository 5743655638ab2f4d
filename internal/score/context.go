package score

import (
	"strings"

	"github.com/talentforge/forge/internal/model"
)

// fallbackConfidence dampens the sub-scores when no hosting signals exist
// and context must be derived from free-text sources alone. Absence of
// evidence lowers confidence; it is not a negative signal.
const fallbackConfidence = 0.4

// ContextScorer derives the four behavioral sub-scores from the same
// sources the normalizer consumed.
type ContextScorer struct {
	weights model.ContextWeights
}

// NewContextScorer creates a context scorer with the given aggregation
// weights. Callers validate the weights sum to 100 beforehand.
func NewContextScorer(weights model.ContextWeights) *ContextScorer {
	return &ContextScorer{weights: weights}
}

// Score computes the breakdown (each dimension 0-100) and the aggregate
// XS in 0-1, before any compensation adjustment.
func (s *ContextScorer) Score(p *model.CandidateProfile) (model.ContextBreakdown, float64) {
	var b model.ContextBreakdown
	if p == nil {
		return b, 0
	}

	if p.HasHostingSignals() {
		b = hostingBreakdown(p)
	} else {
		b = fallbackBreakdown(p)
	}

	xs := (b.Teamwork*s.weights.Teamwork +
		b.Communication*s.weights.Communication +
		b.Adaptability*s.weights.Adaptability +
		b.Ownership*s.weights.Ownership) / 100 / 100

	return b, clamp01(xs)
}

func hostingBreakdown(p *model.CandidateProfile) model.ContextBreakdown {
	var (
		total       = len(p.Repos)
		contributed int // repos the candidate worked on but does not own
		described   int
		owned       int
		totalForks  int
		totalStars  int
		languages   = map[string]struct{}{}
		topics      = map[string]struct{}{}
	)

	for _, r := range p.Repos {
		if r.IsOwner && !r.IsFork {
			owned++
			totalForks += r.Forks
		}
		if !r.IsOwner {
			contributed++
		}
		if strings.TrimSpace(r.Description) != "" {
			described++
		}
		if r.Language != "" {
			languages[strings.ToLower(r.Language)] = struct{}{}
		}
		for _, t := range r.Topics {
			topics[strings.ToLower(t)] = struct{}{}
		}
		totalStars += r.Stars
	}

	teamwork := 100 * (0.6*ratio(contributed, 4) + 0.4*ratio(totalForks, 20))

	docShare := 0.0
	if total > 0 {
		docShare = float64(described) / float64(total)
	}
	testimonials := 0
	if p.Portfolio != nil {
		testimonials = p.Portfolio.Testimonials
	}
	communication := 100 * (0.7*docShare + 0.3*ratio(testimonials, 3))

	adaptability := 100 * (0.7*ratio(len(languages), 4) + 0.3*ratio(len(topics), 10))

	ownedShare := 0.0
	if total > 0 {
		ownedShare = float64(owned) / float64(total)
	}
	ownership := 100 * (0.6*ownedShare + 0.4*ratio(totalStars, 50))

	return model.ContextBreakdown{
		Teamwork:      clamp100(teamwork),
		Communication: clamp100(communication),
		Adaptability:  clamp100(adaptability),
		Ownership:     clamp100(ownership),
	}
}

// fallbackBreakdown covers candidates with no hosting signals at all.
// Whatever free-text and portfolio signals remain yield a neutral
// sub-score scaled down by fallbackConfidence.
func fallbackBreakdown(p *model.CandidateProfile) model.ContextBreakdown {
	hasText := len(p.Claims) > 0
	hasPortfolio := p.Portfolio != nil && len(p.Portfolio.Projects) > 0
	if !hasText && !hasPortfolio {
		return model.ContextBreakdown{}
	}

	neutral := 50 * fallbackConfidence

	communication := neutral
	if hasPortfolio {
		communication = clamp100(neutral + 100*fallbackConfidence*0.3*ratio(p.Portfolio.Testimonials, 3))
	}

	ownership := neutral
	if hasPortfolio {
		// Shipped portfolio projects are a weak ownership signal.
		ownership = clamp100(neutral + 100*fallbackConfidence*0.3*ratio(len(p.Portfolio.Projects), 4))
	}

	return model.ContextBreakdown{
		Teamwork:      neutral,
		Communication: communication,
		Adaptability:  neutral,
		Ownership:     ownership,
	}
}

// ratio clamps count/denominator to [0, 1].
func ratio(count, denominator int) float64 {
	if denominator <= 0 || count <= 0 {
		return 0
	}
	r := float64(count) / float64(denominator)
	if r > 1 {
		return 1
	}
	return r
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
