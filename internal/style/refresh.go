package style

import (
	"time"

	"slidepress/internal/models"
)

const (
	// refreshGrowth is the fraction of new posts that triggers a re-analysis.
	refreshGrowth = 0.2

	// refreshMaxAge is the longest a profile stays fresh regardless of
	// posting activity.
	refreshMaxAge = 7 * 24 * time.Hour
)

// ShouldRefresh decides whether the stored style analysis is stale: either
// the author has published over 20% more posts since the last run, or the
// last run is more than seven days old. A meta that never ran (zero posts
// analyzed) refreshes as soon as any posts exist.
func ShouldRefresh(meta models.StyleMeta, currentPostCount int, now time.Time) bool {
	if meta.PostsAnalyzedCount == 0 {
		if currentPostCount > 0 {
			return true
		}
	} else {
		grown := float64(currentPostCount-meta.PostsAnalyzedCount) / float64(meta.PostsAnalyzedCount)
		if grown > refreshGrowth {
			return true
		}
	}

	return now.Sub(meta.LastRefreshedAt) > refreshMaxAge
}
