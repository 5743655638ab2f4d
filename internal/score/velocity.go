package score

import (
	"strings"
	"time"

	"github.com/talentforge/forge/internal/model"
)

// Learning-velocity policy constants. The bonus rewards a rising trend in
// skill/technology adoption; a flat or declining trend earns zero.
const (
	maxVelocityBonus = 0.1
	recentWindow     = 18 * 30 * 24 * time.Hour // ~18 months
)

// LearningVelocity derives the bonus from repository activity: the share
// of work pushed inside the recent window versus before it, topped up when
// the recent work introduces languages absent from the older work. The
// caller supplies now so identical inputs score identically.
func LearningVelocity(repos []model.Repository, now time.Time) float64 {
	var recent, older int
	olderLangs := map[string]struct{}{}
	newLangs := map[string]struct{}{}

	for _, r := range repos {
		if r.PushedAt.IsZero() {
			continue
		}
		lang := strings.ToLower(r.Language)
		if now.Sub(r.PushedAt) <= recentWindow {
			recent++
			if lang != "" {
				newLangs[lang] = struct{}{}
			}
		} else {
			older++
			if lang != "" {
				olderLangs[lang] = struct{}{}
			}
		}
	}

	total := recent + older
	if total == 0 || recent <= older {
		return 0
	}

	// Trend strength: how much of the dated activity is recent, beyond an
	// even split.
	trend := (float64(recent-older) / float64(total)) * maxVelocityBonus * 1.5

	adopted := 0
	for lang := range newLangs {
		if _, ok := olderLangs[lang]; !ok {
			adopted++
		}
	}
	if older > 0 && adopted > 0 {
		trend += 0.02
	}

	if trend > maxVelocityBonus {
		trend = maxVelocityBonus
	}
	if trend < 0 {
		trend = 0
	}
	return trend
}
