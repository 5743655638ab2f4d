package skills

import (
	"fmt"
	"strings"

	"github.com/talentforge/forge/internal/model"
)

// NewExtractor creates a skill extractor from configuration. An empty
// provider selects the heuristic extractor.
func NewExtractor(cfg model.SkillsConfig) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "heuristic":
		return NewHeuristicExtractor(), nil
	case "openai":
		return NewOpenAIExtractor(cfg)
	default:
		return nil, fmt.Errorf("unknown skills provider: %s (supported: heuristic, openai)", cfg.Provider)
	}
}
