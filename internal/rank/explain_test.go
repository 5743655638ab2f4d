package rank

import (
	"strings"
	"testing"

	"github.com/talentforge/forge/internal/model"
)

func TestBuildExplanation(t *testing.T) {
	a := &model.CandidateAnalysis{
		CandidateID:        "alice",
		CapabilityRequired: 0.72,
		Tau:                0.4,
		ForgeScore:         0.41,
		GateStatus:         model.GateRanked,
		Skills: []model.SkillScore{
			{Name: "React", Required: true, Score: 85, BestTier: model.TierOwnedArtifact},
			{Name: "GraphQL", Required: true, Score: 0, BestTier: model.TierNone},
		},
		Context:          model.ContextBreakdown{Ownership: 75},
		LearningVelocity: 0.03,
		CompFit:          model.CompFit{Status: model.CompSlightlyAbove, Adjustment: -0.02},
		Degraded:         []string{"portfolio: unavailable"},
	}

	ex := BuildExplanation(a)

	if !strings.Contains(ex.Summary, "Passed the capability gate") {
		t.Errorf("summary = %q", ex.Summary)
	}
	wantStrengths := []string{"React", "ownership", "rising activity"}
	for _, frag := range wantStrengths {
		if !containsFragment(ex.Strengths, frag) {
			t.Errorf("strengths %v missing %q", ex.Strengths, frag)
		}
	}
	wantWeaknesses := []string{"GraphQL", "slightly above", "partial signals"}
	for _, frag := range wantWeaknesses {
		if !containsFragment(ex.Weaknesses, frag) {
			t.Errorf("weaknesses %v missing %q", ex.Weaknesses, frag)
		}
	}
}

func TestSummaryLine_PerStatus(t *testing.T) {
	tests := []struct {
		status model.GateStatus
		frag   string
	}{
		{model.GateRanked, "Passed"},
		{model.GateReview, "human review"},
		{model.GateFiltered, "filtered"},
	}
	for _, tt := range tests {
		a := &model.CandidateAnalysis{GateStatus: tt.status, Tau: 0.4}
		if got := summaryLine(a); !strings.Contains(got, tt.frag) {
			t.Errorf("summary for %s = %q, want fragment %q", tt.status, got, tt.frag)
		}
	}
}

func containsFragment(lines []string, frag string) bool {
	for _, l := range lines {
		if strings.Contains(l, frag) {
			return true
		}
	}
	return false
}
