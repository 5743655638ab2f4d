package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProofTier classifies how verifiable a piece of evidence is.
// Tiers form a fixed total order; a higher tier always carries a
// higher multiplier.
type ProofTier int

const (
	TierNone           ProofTier = 0 // No evidence found for the skill
	TierClaimOnly      ProofTier = 1 // Self-reported text, no external corroboration
	TierThirdParty     ProofTier = 2 // Corroborated by a source the candidate does not control
	TierLinkedArtifact ProofTier = 3 // Contribution to, or link to, a verifiable external work product
	TierOwnedArtifact  ProofTier = 4 // Candidate authored/owns a shipped, inspectable work product
)

// Multiplier returns the fixed scoring multiplier for the tier.
func (t ProofTier) Multiplier() float64 {
	switch t {
	case TierOwnedArtifact:
		return 1.0
	case TierLinkedArtifact:
		return 0.7
	case TierThirdParty:
		return 0.4
	case TierClaimOnly:
		return 0.15
	default:
		return 0.0
	}
}

func (t ProofTier) String() string {
	switch t {
	case TierOwnedArtifact:
		return "owned_artifact"
	case TierLinkedArtifact:
		return "linked_artifact"
	case TierThirdParty:
		return "third_party"
	case TierClaimOnly:
		return "claim_only"
	default:
		return "none"
	}
}

// ParseProofTier converts a tier label back into a ProofTier.
func ParseProofTier(s string) (ProofTier, error) {
	switch s {
	case "owned_artifact":
		return TierOwnedArtifact, nil
	case "linked_artifact":
		return TierLinkedArtifact, nil
	case "third_party":
		return TierThirdParty, nil
	case "claim_only":
		return TierClaimOnly, nil
	case "none":
		return TierNone, nil
	default:
		return TierNone, fmt.Errorf("unknown proof tier: %q", s)
	}
}

// MarshalJSON emits the tier label instead of the numeric rank.
func (t ProofTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the tier label.
func (t *ProofTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tier, err := ParseProofTier(s)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// EvidenceItem is a single piece of evidence for one skill.
// A skill with zero items is implicitly tier none.
type EvidenceItem struct {
	Skill       string     `json:"skill"`
	Tier        ProofTier  `json:"tier"`
	Source      string     `json:"source"`            // e.g. "github:alice/shop-ui", "portfolio:Checkout redesign", "resume"
	RawStrength float64    `json:"rawStrength"`       // 0-1 confidence reported by the source
	Recency     *time.Time `json:"recency,omitempty"` // last activity on the underlying artifact, when known
}
