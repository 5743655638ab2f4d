package rank

import (
	"fmt"

	"github.com/talentforge/forge/internal/model"
)

// BuildExplanation renders the scored breakdowns into a deterministic
// human-readable verdict: one summary line plus strength/weakness bullets.
func BuildExplanation(a *model.CandidateAnalysis) model.Explanation {
	var strengths, weaknesses []string

	for _, s := range a.Skills {
		switch {
		case s.Score >= 70:
			strengths = append(strengths, fmt.Sprintf("%s backed by %s evidence (%.0f/100)", s.Name, s.BestTier, s.Score))
		case s.Required && s.BestTier == model.TierNone:
			weaknesses = append(weaknesses, fmt.Sprintf("no verifiable evidence for required skill %s", s.Name))
		case s.Required && s.Score < 40:
			weaknesses = append(weaknesses, fmt.Sprintf("weak support for required skill %s (%.0f/100, best tier %s)", s.Name, s.Score, s.BestTier))
		}
	}

	if a.Context.Ownership >= 70 {
		strengths = append(strengths, "strong ownership signals across repositories")
	}
	if a.Context.Adaptability >= 70 {
		strengths = append(strengths, "broad technology adoption")
	}
	if a.LearningVelocity > 0 {
		strengths = append(strengths, "rising activity trend")
	}

	switch a.CompFit.Status {
	case model.CompWayAbove:
		weaknesses = append(weaknesses, "salary expectation well above the configured budget")
	case model.CompSlightlyAbove:
		weaknesses = append(weaknesses, "salary expectation slightly above the configured budget")
	}
	if len(a.Degraded) > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("scored from partial signals (%d source(s) unavailable)", len(a.Degraded)))
	}

	return model.Explanation{
		Summary:    summaryLine(a),
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}
}

func summaryLine(a *model.CandidateAnalysis) string {
	switch a.GateStatus {
	case model.GateRanked:
		return fmt.Sprintf("Passed the capability gate (%.2f >= %.2f) with forge score %.3f.",
			a.CapabilityRequired, a.Tau, a.ForgeScore)
	case model.GateReview:
		return fmt.Sprintf("Below the capability gate (%.2f < %.2f) but carries verifiable evidence; flagged for human review.",
			a.CapabilityRequired, a.Tau)
	default:
		return fmt.Sprintf("No verifiable support for the required skills (%.2f < %.2f); filtered.",
			a.CapabilityRequired, a.Tau)
	}
}
