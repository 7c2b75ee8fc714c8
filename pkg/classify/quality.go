package classify

import (
	"strings"

	"github.com/fbstats/fbrefscan/models"
)

// scoreQuality rates how well a table fits a category, for resolving
// position conflicts between fallback matches. 0 to 100.
func scoreQuality(t models.RawTable, category models.Category) float64 {
	cols := labelText(t)

	score := float64(countMarkers(cols, uniqueMarkers[category])) * 20

	switch category {
	case models.CategoryGCA:
		if strings.Contains(cols, "gca") || strings.Contains(cols, "sca") {
			score += 15
		}
	case models.CategoryPassTypes:
		if strings.Contains(cols, "pass types") {
			score += 15
		}
	case models.CategoryPossession:
		if strings.Contains(cols, "possession") {
			score += 15
		}
	}

	rows := float64(t.RowCount())
	sizeBonus := rows / 50 * 5
	if sizeBonus > 10 {
		sizeBonus = 10
	}
	score += sizeBonus

	if t.RowCount() < 15 {
		score -= 20
	}

	if score > 100 {
		score = 100
	}
	return score
}
