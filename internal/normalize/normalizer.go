// Package normalize turns heterogeneous per-candidate signal sources into a
// uniform per-skill evidence map, each item tagged with a proof tier. It is
// the only place where the loose API candidate shape becomes the canonical
// CandidateProfile; every downstream component operates on the canonical
// type only.
package normalize

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/talentforge/forge/internal/model"
)

// EvidenceMap maps a skill name to its evidence, best tier first.
type EvidenceMap map[string][]model.EvidenceItem

// ResolveProfile converts a raw candidate input (bare handle or rich
// object) into the canonical profile skeleton. External enrichment
// (hosting fetch, portfolio extraction) happens in the pipeline; missing
// sub-objects simply yield a profile with fewer signals.
func ResolveProfile(in model.CandidateInput) *model.CandidateProfile {
	p := &model.CandidateProfile{
		ID:           in.Key(),
		Name:         in.Name,
		Handle:       in.Handle,
		PortfolioURL: in.PortfolioURL,
		Repos:        in.Repos,
		Salary:       in.Salary,
	}

	if text := strings.TrimSpace(in.ResumeText); text != "" {
		p.Claims = append(p.Claims, model.TextClaim{Source: "resume", Text: text})
	}
	if text := strings.TrimSpace(in.LinkedInText); text != "" {
		p.Claims = append(p.Claims, model.TextClaim{Source: "linkedin", Text: text})
	}

	return p
}

// Normalizer builds the per-skill evidence map for one candidate.
type Normalizer struct{}

// New creates a new normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize maps every job skill to its ordered evidence list. Required
// skills with no matching evidence from any source get an explicit
// none-tier placeholder so downstream scoring penalizes them visibly
// rather than by omission. Malformed or missing per-candidate sub-objects
// degrade to "no evidence for that source"; Normalize never fails the
// candidate. The caller supplies now so recency windows are evaluated
// against a fixed instant and identical inputs normalize identically.
func (n *Normalizer) Normalize(p *model.CandidateProfile, skills []model.SkillRequirement, now time.Time) EvidenceMap {
	out := make(EvidenceMap, len(skills))
	if p == nil {
		p = &model.CandidateProfile{}
	}

	for _, req := range skills {
		items := n.collectSkill(p, req.Name, now)
		items = dedupeBySource(items)
		sortEvidence(items)

		if len(items) == 0 && req.Required {
			items = []model.EvidenceItem{{
				Skill:  req.Name,
				Tier:   model.TierNone,
				Source: "none",
			}}
		}

		out[req.Name] = items
	}

	return out
}

func (n *Normalizer) collectSkill(p *model.CandidateProfile, skill string, now time.Time) []model.EvidenceItem {
	var items []model.EvidenceItem

	for _, repo := range p.Repos {
		if !repoMatchesSkill(repo, skill) {
			continue
		}
		tier := model.TierLinkedArtifact
		if repo.IsOwner {
			tier = model.TierOwnedArtifact
		}
		items = append(items, model.EvidenceItem{
			Skill:       skill,
			Tier:        tier,
			Source:      repoSource(repo),
			RawStrength: repoStrength(repo, now),
			Recency:     nonZeroTime(repo.PushedAt),
		})
	}

	if p.Portfolio != nil {
		for _, proj := range p.Portfolio.Projects {
			if !projectMatchesSkill(proj, skill) {
				continue
			}
			tier := model.TierClaimOnly
			if proj.LiveDemo || proj.CaseStudy {
				tier = model.TierLinkedArtifact
			}
			items = append(items, model.EvidenceItem{
				Skill:       skill,
				Tier:        tier,
				Source:      "portfolio:" + proj.Title,
				RawStrength: portfolioStrength(p.Portfolio),
			})
		}
	}

	for _, claim := range p.Claims {
		if !containsFold(claim.Text, skill) {
			continue
		}
		items = append(items, model.EvidenceItem{
			Skill:       skill,
			Tier:        model.TierClaimOnly,
			Source:      claim.Source,
			RawStrength: 1.0,
		})
	}

	return items
}

// repoStrength derives a 0-1 confidence from repository activity. Commit
// counts dominate when the source reports them; stars and recent pushes
// top it up. The recency window is measured against the supplied now, not
// the wall clock.
func repoStrength(r model.Repository, now time.Time) float64 {
	s := 0.4
	if r.Commits > 0 {
		s += min(0.35, float64(r.Commits)*0.0035)
	}
	if r.Stars > 0 {
		s += min(0.15, float64(r.Stars)*0.003)
	}
	if !r.PushedAt.IsZero() && now.Sub(r.PushedAt) < 365*24*time.Hour {
		s += 0.1
	}
	return min(1.0, s)
}

func portfolioStrength(p *model.PortfolioData) float64 {
	if p.Reliability <= 0 {
		return 0.5
	}
	return min(1.0, p.Reliability)
}

func repoSource(r model.Repository) string {
	if r.FullName != "" {
		return "github:" + r.FullName
	}
	return "github:" + r.Name
}

// repoMatchesSkill reports whether a repository plausibly exercises the
// skill: language match, topic match, or a mention in name/description.
// Very short skill names only match language and topics to avoid substring
// noise (e.g. "go" inside "django").
func repoMatchesSkill(r model.Repository, skill string) bool {
	if strings.EqualFold(r.Language, skill) {
		return true
	}
	for _, topic := range r.Topics {
		if strings.EqualFold(topic, skill) {
			return true
		}
	}
	if len(skill) <= 2 {
		return false
	}
	return containsFold(r.Name, skill) || containsFold(r.Description, skill)
}

func projectMatchesSkill(p model.PortfolioProject, skill string) bool {
	for _, s := range p.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	if len(skill) <= 2 {
		return false
	}
	return containsFold(p.Title, skill) || containsFold(p.Description, skill)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// dedupeBySource keeps one item per (skill, source) pair, preferring the
// higher tier, then the higher strength. Multiple items for the same skill
// from different sources are kept so the capability scorer can apply
// corroboration logic.
func dedupeBySource(items []model.EvidenceItem) []model.EvidenceItem {
	if len(items) <= 1 {
		return items
	}
	best := make(map[string]model.EvidenceItem, len(items))
	var order []string
	for _, item := range items {
		key := fmt.Sprintf("%s|%s", item.Skill, item.Source)
		prev, seen := best[key]
		if !seen {
			best[key] = item
			order = append(order, key)
			continue
		}
		if item.Tier > prev.Tier || (item.Tier == prev.Tier && item.RawStrength > prev.RawStrength) {
			best[key] = item
		}
	}
	out := make([]model.EvidenceItem, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// sortEvidence orders items best tier first, then by strength, then by
// source name so the order is stable across runs with identical input.
func sortEvidence(items []model.EvidenceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Tier != items[j].Tier {
			return items[i].Tier > items[j].Tier
		}
		if items[i].RawStrength != items[j].RawStrength {
			return items[i].RawStrength > items[j].RawStrength
		}
		return items[i].Source < items[j].Source
	})
}

func nonZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
