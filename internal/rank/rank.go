// Package rank applies the pass/fail gate and produces the final ordered
// result set. The engine is a pure function of (candidate analysis, gate
// threshold) and is deterministic for identical inputs.
package rank

import (
	"sort"

	"github.com/talentforge/forge/internal/model"
)

// Engine gates and orders candidate analyses. Tau is pool-level policy
// supplied by the caller, never engine state.
type Engine struct {
	tau float64
}

// New creates a rank engine with the given gate threshold.
func New(tau float64) *Engine {
	if tau <= 0 {
		tau = model.DefaultTau
	}
	return &Engine{tau: tau}
}

// Tau returns the gate threshold in use.
func (e *Engine) Tau() float64 { return e.tau }

// Decide assigns the terminal gate status. The gate check uses the
// required-skills capability only: at or above tau the candidate is
// ranked; positive but below tau with at least one item stronger than a
// bare claim earns a human review; everything else is filtered.
func (e *Engine) Decide(a *model.CandidateAnalysis) model.GateStatus {
	switch {
	case a.CapabilityRequired >= e.tau:
		return model.GateRanked
	case a.CapabilityRequired > 0 && hasVerifiableEvidence(a.Evidence):
		return model.GateReview
	default:
		return model.GateFiltered
	}
}

// Finalize computes the forge score, applies the gate and stamps the
// threshold onto the analysis.
func (e *Engine) Finalize(a *model.CandidateAnalysis) {
	a.ForgeScore = a.CapabilityScore*a.ContextScore + a.LearningVelocity
	a.Tau = e.tau
	a.GateStatus = e.Decide(a)
}

func hasVerifiableEvidence(items []model.EvidenceItem) bool {
	for _, item := range items {
		if item.Tier > model.TierClaimOnly {
			return true
		}
	}
	return false
}

// statusOrder places ranked before review before filtered.
var statusOrder = map[model.GateStatus]int{
	model.GateRanked:   0,
	model.GateReview:   1,
	model.GateFiltered: 2,
}

// Sort orders the batch: ranked first by descending forge score, then
// review by descending forge score, then filtered by descending capability
// score (a courtesy ordering for audit, never a winner). Ties break by
// candidate id so output order is reproducible across runs.
func Sort(analyses []model.CandidateAnalysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		a, b := analyses[i], analyses[j]
		if statusOrder[a.GateStatus] != statusOrder[b.GateStatus] {
			return statusOrder[a.GateStatus] < statusOrder[b.GateStatus]
		}
		if a.GateStatus == model.GateFiltered {
			if a.CapabilityScore != b.CapabilityScore {
				return a.CapabilityScore > b.CapabilityScore
			}
		} else if a.ForgeScore != b.ForgeScore {
			return a.ForgeScore > b.ForgeScore
		}
		return a.CandidateID < b.CandidateID
	})
}
