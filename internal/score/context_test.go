package score

import (
	"testing"

	"github.com/talentforge/forge/internal/model"
)

func TestContextScore_HostingSignals(t *testing.T) {
	s := NewContextScorer(model.DefaultContextWeights())
	profile := &model.CandidateProfile{
		Repos: []model.Repository{
			{FullName: "alice/shop", IsOwner: true, Description: "storefront", Language: "TypeScript", Topics: []string{"react"}, Stars: 30, Forks: 10},
			{FullName: "alice/tools", IsOwner: true, Description: "cli helpers", Language: "Go", Stars: 5, Forks: 2},
			{FullName: "org/platform", IsOwner: false, Description: "shared platform"},
			{FullName: "org/docs", IsOwner: false},
		},
		Portfolio: &model.PortfolioData{Testimonials: 2},
	}

	b, xs := s.Score(profile)

	// 2 contributed repos out of 4, 12 forks out of 20.
	wantTeamwork := 100 * (0.6*0.5 + 0.4*0.6)
	if !closeTo(b.Teamwork, wantTeamwork) {
		t.Errorf("teamwork = %g, want %g", b.Teamwork, wantTeamwork)
	}
	// 3 of 4 repos described, 2 of 3 testimonials.
	wantComm := 100 * (0.7*0.75 + 0.3*(2.0/3.0))
	if !closeTo(b.Communication, wantComm) {
		t.Errorf("communication = %g, want %g", b.Communication, wantComm)
	}
	// 2 languages of 4, 1 topic of 10.
	wantAdapt := 100 * (0.7*0.5 + 0.3*0.1)
	if !closeTo(b.Adaptability, wantAdapt) {
		t.Errorf("adaptability = %g, want %g", b.Adaptability, wantAdapt)
	}
	// 2 of 4 owned, 35 stars of 50.
	wantOwn := 100 * (0.6*0.5 + 0.4*0.7)
	if !closeTo(b.Ownership, wantOwn) {
		t.Errorf("ownership = %g, want %g", b.Ownership, wantOwn)
	}

	if xs <= 0 || xs > 1 {
		t.Errorf("xs = %g, want in (0, 1]", xs)
	}
}

func TestContextScore_FallbackWithoutHosting(t *testing.T) {
	s := NewContextScorer(model.DefaultContextWeights())

	textOnly := &model.CandidateProfile{
		Claims: []model.TextClaim{{Source: "resume", Text: "Led a frontend team using React."}},
	}
	b, xs := s.Score(textOnly)

	neutral := 50 * fallbackConfidence
	if b.Teamwork != neutral || b.Adaptability != neutral {
		t.Errorf("text-only sub-scores should sit at the dampened neutral %g, got %+v", neutral, b)
	}
	if xs <= 0 {
		t.Error("text-only candidate still earns a nonzero, low-confidence XS")
	}

	// Hosting signals always dominate the dampened fallback.
	hosted := &model.CandidateProfile{
		Repos: []model.Repository{
			{FullName: "a/x", IsOwner: true, Description: "x", Language: "Go", Stars: 40, Forks: 15},
			{FullName: "org/y", IsOwner: false, Description: "y", Language: "Python"},
		},
	}
	_, hostedXS := s.Score(hosted)
	if hostedXS <= xs {
		t.Errorf("hosted XS %g should exceed fallback XS %g", hostedXS, xs)
	}
}

func TestContextScore_Empty(t *testing.T) {
	s := NewContextScorer(model.DefaultContextWeights())

	b, xs := s.Score(&model.CandidateProfile{})
	if xs != 0 || b != (model.ContextBreakdown{}) {
		t.Errorf("no signals at all: breakdown=%+v xs=%g, want zeroes", b, xs)
	}

	if _, xs := s.Score(nil); xs != 0 {
		t.Errorf("nil profile: xs = %g, want 0", xs)
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
