package skills

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/talentforge/forge/internal/model"
)

// knownSkills maps lowercase technology names to a category. The list is a
// pragmatic vocabulary, not an ontology; unknown technologies simply go
// unextracted by the heuristic path.
var knownSkills = map[string]string{
	"go":            "language",
	"golang":        "language",
	"python":        "language",
	"java":          "language",
	"javascript":    "language",
	"typescript":    "language",
	"rust":          "language",
	"ruby":          "language",
	"c++":           "language",
	"c#":            "language",
	"kotlin":        "language",
	"swift":         "language",
	"php":           "language",
	"scala":         "language",
	"sql":           "language",
	"react":         "frontend",
	"vue":           "frontend",
	"angular":       "frontend",
	"svelte":        "frontend",
	"next.js":       "frontend",
	"css":           "frontend",
	"html":          "frontend",
	"node.js":       "backend",
	"django":        "backend",
	"rails":         "backend",
	"spring":        "backend",
	"grpc":          "backend",
	"graphql":       "backend",
	"postgresql":    "data",
	"postgres":      "data",
	"mysql":         "data",
	"mongodb":       "data",
	"redis":         "data",
	"kafka":         "data",
	"elasticsearch": "data",
	"docker":        "infra",
	"kubernetes":    "infra",
	"terraform":     "infra",
	"aws":           "infra",
	"gcp":           "infra",
	"azure":         "infra",
	"ci/cd":         "infra",
	"linux":         "infra",
	"git":           "tooling",
}

// requiredMarkers flag sentences that introduce hard requirements;
// optionalMarkers flag nice-to-haves. A skill first seen in a required
// sentence stays required.
var (
	requiredMarkers = []string{"required", "must have", "must-have", "need", "essential", "requirement"}
	optionalMarkers = []string{"nice to have", "nice-to-have", "bonus", "plus", "preferred", "optional"}
)

var sentenceSplit = regexp.MustCompile(`[\n;:•·]|\. `)

// HeuristicExtractor extracts skills by vocabulary matching. It is fully
// deterministic and needs no external service.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates the heuristic extractor.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Name returns the extractor name.
func (e *HeuristicExtractor) Name() string { return "heuristic" }

// Extract scans the text sentence by sentence. Required skills get weight
// 70, optional skills 30; weights are relative importance, normalized by
// the scorer wherever a proportion is needed.
func (e *HeuristicExtractor) Extract(_ context.Context, jobText string) ([]model.SkillRequirement, error) {
	found := map[string]*model.SkillRequirement{}

	for _, sentence := range sentenceSplit.Split(jobText, -1) {
		lower := strings.ToLower(sentence)
		if strings.TrimSpace(lower) == "" {
			continue
		}

		required := containsAny(lower, requiredMarkers)
		optional := containsAny(lower, optionalMarkers)

		for skill, category := range knownSkills {
			if !mentions(lower, skill) {
				continue
			}
			name := canonicalName(skill)
			req, ok := found[name]
			if !ok {
				req = &model.SkillRequirement{
					Name:     name,
					Weight:   30,
					Category: category,
				}
				found[name] = req
			}
			if required && !optional {
				req.Required = true
				req.Weight = 70
			}
		}
	}

	out := make([]model.SkillRequirement, 0, len(found))
	for _, req := range found {
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Required != out[j].Required {
			return out[i].Required
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// mentions matches the skill as a whole token so "go" does not fire inside
// "django" or "good".
func mentions(lower, skill string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], skill)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(skill)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end >= len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// canonicalName folds aliases ("golang" -> "Go") and title-cases the rest.
func canonicalName(skill string) string {
	switch skill {
	case "go", "golang":
		return "Go"
	case "node.js":
		return "Node.js"
	case "next.js":
		return "Next.js"
	case "postgres", "postgresql":
		return "PostgreSQL"
	case "aws", "gcp", "sql", "css", "html", "php":
		return strings.ToUpper(skill)
	case "ci/cd":
		return "CI/CD"
	case "c++":
		return "C++"
	case "c#":
		return "C#"
	default:
		return strings.ToUpper(skill[:1]) + skill[1:]
	}
}
