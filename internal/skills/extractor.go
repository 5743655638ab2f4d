// Package skills turns free-text job descriptions into the skill
// requirement list the scoring engine consumes. A deterministic heuristic
// extractor is always available; an OpenAI-backed extractor can be
// selected by configuration.
package skills

import (
	"context"

	"github.com/talentforge/forge/internal/model"
)

// Extractor converts a job description into skill requirements.
type Extractor interface {
	// Name returns the extractor name.
	Name() string

	// Extract parses the job description text.
	Extract(ctx context.Context, jobText string) ([]model.SkillRequirement, error)
}
