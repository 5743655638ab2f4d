package rank

import (
	"testing"

	"github.com/talentforge/forge/internal/model"
)

func TestDecide(t *testing.T) {
	e := New(0.4)

	verifiable := []model.EvidenceItem{
		{Skill: "React", Tier: model.TierLinkedArtifact, Source: "github:a/b"},
	}
	claimsOnly := []model.EvidenceItem{
		{Skill: "React", Tier: model.TierClaimOnly, Source: "resume"},
	}

	tests := []struct {
		name     string
		required float64
		evidence []model.EvidenceItem
		want     model.GateStatus
	}{
		{"at the gate", 0.4, claimsOnly, model.GateRanked},
		{"above the gate", 0.9, nil, model.GateRanked},
		{"below with verifiable signal", 0.2, verifiable, model.GateReview},
		{"below with claims only", 0.15, claimsOnly, model.GateFiltered},
		{"zero capability", 0, verifiable, model.GateFiltered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.CandidateAnalysis{CapabilityRequired: tt.required, Evidence: tt.evidence}
			if got := e.Decide(a); got != tt.want {
				t.Errorf("Decide(required=%g) = %q, want %q", tt.required, got, tt.want)
			}
		})
	}
}

func TestDecide_Monotone(t *testing.T) {
	// Raising the required capability never demotes a candidate.
	e := New(0.4)
	rankOf := map[model.GateStatus]int{model.GateFiltered: 0, model.GateReview: 1, model.GateRanked: 2}

	evidence := []model.EvidenceItem{
		{Skill: "React", Tier: model.TierLinkedArtifact, Source: "github:a/b"},
	}
	prev := -1
	for _, required := range []float64{0, 0.1, 0.2, 0.39, 0.4, 0.41, 0.8, 1} {
		a := &model.CandidateAnalysis{CapabilityRequired: required, Evidence: evidence}
		got := rankOf[e.Decide(a)]
		if got < prev {
			t.Fatalf("status demoted at required=%g", required)
		}
		prev = got
	}
}

func TestFinalize(t *testing.T) {
	e := New(0.4)
	a := &model.CandidateAnalysis{
		CapabilityScore:    0.8,
		CapabilityRequired: 0.75,
		ContextScore:       0.5,
		LearningVelocity:   0.05,
	}
	e.Finalize(a)

	if a.ForgeScore != 0.8*0.5+0.05 {
		t.Errorf("forge score = %g, want %g", a.ForgeScore, 0.8*0.5+0.05)
	}
	if a.GateStatus != model.GateRanked {
		t.Errorf("gate status = %q, want ranked", a.GateStatus)
	}
	if a.Tau != 0.4 {
		t.Errorf("tau = %g, want 0.4", a.Tau)
	}
}

func TestNew_DefaultTau(t *testing.T) {
	if e := New(0); e.Tau() != model.DefaultTau {
		t.Errorf("zero tau should fall back to %g, got %g", model.DefaultTau, e.Tau())
	}
	if e := New(0.7); e.Tau() != 0.7 {
		t.Errorf("tau = %g, want 0.7", e.Tau())
	}
}

func TestSort(t *testing.T) {
	analyses := []model.CandidateAnalysis{
		{CandidateID: "eve", GateStatus: model.GateFiltered, CapabilityScore: 0.3, ForgeScore: 0.9},
		{CandidateID: "bob", GateStatus: model.GateRanked, ForgeScore: 0.5},
		{CandidateID: "dan", GateStatus: model.GateReview, ForgeScore: 0.2},
		{CandidateID: "amy", GateStatus: model.GateRanked, ForgeScore: 0.7},
		{CandidateID: "fay", GateStatus: model.GateFiltered, CapabilityScore: 0.1},
	}
	Sort(analyses)

	want := []string{"amy", "bob", "dan", "eve", "fay"}
	for i, id := range want {
		if analyses[i].CandidateID != id {
			t.Fatalf("position %d = %q, want %q (full order %v)", i, analyses[i].CandidateID, id, ids(analyses))
		}
	}
}

func TestSort_TieBreaksByID(t *testing.T) {
	analyses := []model.CandidateAnalysis{
		{CandidateID: "zoe", GateStatus: model.GateRanked, ForgeScore: 0.5},
		{CandidateID: "abe", GateStatus: model.GateRanked, ForgeScore: 0.5},
		{CandidateID: "mia", GateStatus: model.GateRanked, ForgeScore: 0.5},
	}
	Sort(analyses)

	want := []string{"abe", "mia", "zoe"}
	for i, id := range want {
		if analyses[i].CandidateID != id {
			t.Fatalf("tie order = %v, want %v", ids(analyses), want)
		}
	}
}

func TestSort_FilteredOrderedByCapability(t *testing.T) {
	// Filtered candidates ignore the forge score; they order by raw
	// capability for audit purposes.
	analyses := []model.CandidateAnalysis{
		{CandidateID: "low", GateStatus: model.GateFiltered, CapabilityScore: 0.1, ForgeScore: 0.99},
		{CandidateID: "high", GateStatus: model.GateFiltered, CapabilityScore: 0.3, ForgeScore: 0.01},
	}
	Sort(analyses)

	if analyses[0].CandidateID != "high" {
		t.Errorf("filtered order = %v, want capability-descending", ids(analyses))
	}
}

func ids(analyses []model.CandidateAnalysis) []string {
	out := make([]string, len(analyses))
	for i, a := range analyses {
		out[i] = a.CandidateID
	}
	return out
}
