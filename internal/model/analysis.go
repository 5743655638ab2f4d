package model

// GateStatus is the terminal classification of a candidate after scoring.
type GateStatus string

const (
	GateRanked   GateStatus = "ranked"   // passed the gate, eligible for ranking
	GateReview   GateStatus = "review"   // below the gate but with verifiable signal, worth a human look
	GateFiltered GateStatus = "filtered" // no verifiable support for the required skills
)

// CompFitStatus describes how the declared salary expectation relates to
// the job budget band.
type CompFitStatus string

const (
	CompWithinBudget  CompFitStatus = "within_budget"
	CompSlightlyAbove CompFitStatus = "slightly_above" // up to 10% above budget max
	CompWayAbove      CompFitStatus = "way_above"      // more than 10% above budget max
	CompBelowBudget   CompFitStatus = "below_budget"
	CompUnknown       CompFitStatus = "unknown" // no expectation or no budget configured
)

// CompFit is the compensation-fit descriptor attached to every analysis.
// Adjustment is the absolute delta applied to the context score, always in
// [-0.08, 0]. Compensation fit is a signal, never a gate.
type CompFit struct {
	Status     CompFitStatus `json:"status"`
	Adjustment float64       `json:"adjustment"`
}

// SkillScore is the per-skill capability breakdown.
type SkillScore struct {
	Name     string    `json:"name"`
	Required bool      `json:"isRequired"`
	Weight   float64   `json:"weight"`
	Score    float64   `json:"score"` // 0-100
	BestTier ProofTier `json:"bestTier"`
	Sources  int       `json:"sources"` // independent sources counted for corroboration
}

// ContextBreakdown holds the four behavioral sub-scores, each 0-100.
type ContextBreakdown struct {
	Teamwork      float64 `json:"teamwork"`
	Communication float64 `json:"communication"`
	Adaptability  float64 `json:"adaptability"`
	Ownership     float64 `json:"ownership"`
}

// Explanation is the human-readable rendering of the verdict.
type Explanation struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// CandidateAnalysis is the engine's sole output type per candidate.
// Produced once per scoring call and read-only thereafter; the engine holds
// no long-lived state.
type CandidateAnalysis struct {
	CandidateID        string           `json:"candidateId"`
	Name               string           `json:"name,omitempty"`
	CapabilityScore    float64          `json:"capabilityScore"`    // display CS over all skills, 0-1
	CapabilityRequired float64          `json:"capabilityRequired"` // gate CS over required skills only, 0-1
	ContextScore       float64          `json:"contextScore"`       // XS after compensation adjustment, 0-1
	LearningVelocity   float64          `json:"learningVelocity"`   // bonus in [0, 0.1]
	ForgeScore         float64          `json:"forgeScore"`
	GateStatus         GateStatus       `json:"gateStatus"`
	Tau                float64          `json:"tau"`
	Skills             []SkillScore     `json:"perSkillBreakdown"`
	Context            ContextBreakdown `json:"contextBreakdown"`
	Evidence           []EvidenceItem   `json:"evidenceList"`
	Explanation        Explanation      `json:"explanation"`
	CompFit            CompFit          `json:"compFit"`
	Degraded           []string         `json:"degraded,omitempty"`
}
