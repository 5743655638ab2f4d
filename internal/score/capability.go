// Package score converts normalized evidence and behavioral proxies into
// the capability and context scores, the compensation-fit adjustment, and
// the learning-velocity bonus.
package score

import (
	"sort"

	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/normalize"
)

// Tunable policy constants for per-skill scoring. The strength floor keeps
// tier order strictly dominant over source count: the lowest possible
// owned_artifact base (50) stays above the highest corroboration-boosted
// claims-only score (~31).
const (
	strengthFloor           = 0.5  // minimum effective strength inside the base term
	corroborationGapShare   = 0.10 // each extra independent source adds this share of the gap to 100
	corroborationMaxSources = 3    // sources counted, including the first
)

// CapabilityResult is the output of the capability scorer for one
// candidate.
type CapabilityResult struct {
	Skills   []model.SkillScore
	Display  float64 // CS over all skills, 0-1; shown to the user
	Required float64 // CS over required skills only, 0-1; the gate input
}

// CapabilityScorer converts per-skill evidence into per-skill scores and
// aggregate capability.
type CapabilityScorer struct{}

// NewCapabilityScorer creates a new capability scorer.
func NewCapabilityScorer() *CapabilityScorer {
	return &CapabilityScorer{}
}

// Score computes the per-skill breakdown and both aggregates. The display
// aggregate uses all skills; the gate aggregate is restricted to required
// skills so optional skills can never buy a candidate past the gate. A
// required skill with none-tier evidence contributes exactly 0 to the
// required aggregate.
func (s *CapabilityScorer) Score(evidence normalize.EvidenceMap, skills []model.SkillRequirement) CapabilityResult {
	result := CapabilityResult{Skills: make([]model.SkillScore, 0, len(skills))}

	var displaySum, displayWeight float64
	var requiredSum, requiredWeight float64

	for _, req := range skills {
		ss := s.scoreSkill(req, evidence[req.Name])
		result.Skills = append(result.Skills, ss)

		weight := req.Weight
		displaySum += ss.Score * weight
		displayWeight += weight
		if req.Required {
			requiredSum += ss.Score * weight
			requiredWeight += weight
		}
	}

	if displayWeight > 0 {
		result.Display = clamp01(displaySum / displayWeight / 100)
	}
	switch {
	case requiredWeight > 0:
		result.Required = clamp01(requiredSum / requiredWeight / 100)
	default:
		// No required skills configured: the gate falls back to the
		// display aggregate.
		result.Required = result.Display
	}

	return result
}

// scoreSkill computes the 0-100 score for one skill:
//
//  1. base = 100 * tierMultiplier * (floor + (1-floor) * rawStrength) from
//     the best-tier item;
//  2. each additional independent source beyond the first adds
//     corroborationGapShare of the remaining gap to 100, with at most
//     corroborationMaxSources sources counted;
//  3. clamp to [0, 100].
func (s *CapabilityScorer) scoreSkill(req model.SkillRequirement, items []model.EvidenceItem) model.SkillScore {
	ss := model.SkillScore{
		Name:     req.Name,
		Required: req.Required,
		Weight:   req.Weight,
		BestTier: model.TierNone,
	}

	best, ok := bestItem(items)
	if !ok || best.Tier == model.TierNone {
		return ss
	}
	ss.BestTier = best.Tier

	strength := clamp01(best.RawStrength)
	value := 100 * best.Tier.Multiplier() * (strengthFloor + (1-strengthFloor)*strength)

	sources := independentSources(items)
	ss.Sources = sources
	counted := sources
	if counted > corroborationMaxSources {
		counted = corroborationMaxSources
	}
	for i := 1; i < counted; i++ {
		value += corroborationGapShare * (100 - value)
	}

	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	ss.Score = value
	return ss
}

// bestItem returns the highest-tier item, preferring strength on ties.
func bestItem(items []model.EvidenceItem) (model.EvidenceItem, bool) {
	if len(items) == 0 {
		return model.EvidenceItem{}, false
	}
	sorted := make([]model.EvidenceItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Tier != sorted[j].Tier {
			return sorted[i].Tier > sorted[j].Tier
		}
		return sorted[i].RawStrength > sorted[j].RawStrength
	})
	return sorted[0], true
}

// independentSources counts distinct non-placeholder sources for a skill.
func independentSources(items []model.EvidenceItem) int {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Tier == model.TierNone {
			continue
		}
		seen[item.Source] = struct{}{}
	}
	return len(seen)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
