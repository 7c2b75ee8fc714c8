package classify

import (
	"sort"
	"strings"

	"github.com/fbstats/fbrefscan/models"
)

// FieldPlayer classifies every eligible table on a field player page.
// Each category is scored against all unclaimed candidates and takes the
// best one by (marker count, row count); categories claim tables in
// priority order, so a table maps to at most one category. Categories the
// primary signatures miss get a second chance through the unique-marker
// fallback with position-conflict resolution.
func FieldPlayer(tables []models.RawTable) map[models.Category]models.ClassifiedTable {
	claimed := make(map[int]models.Category)
	result := make(map[models.Category]models.ClassifiedTable)

	for _, category := range models.FieldPlayerCategories {
		best, ok := bestCandidate(tables, category, claimed)
		if !ok {
			continue
		}
		claimed[best.Table.Index] = category
		result[category] = best
	}

	var missing []models.Category
	for _, category := range models.FieldPlayerCategories {
		if _, ok := result[category]; !ok {
			missing = append(missing, category)
		}
	}
	if len(missing) > 0 {
		fallbackPass(tables, missing, claimed, result)
	}

	return result
}

// bestCandidate scores unclaimed eligible tables against one category's
// primary signature and returns the strongest match.
func bestCandidate(tables []models.RawTable, category models.Category, claimed map[int]models.Category) (models.ClassifiedTable, bool) {
	var (
		best  models.ClassifiedTable
		found bool
	)
	for _, t := range tables {
		if !eligible(t) {
			continue
		}
		if _, taken := claimed[t.Index]; taken {
			continue
		}
		cols := labelText(t)
		if !matchesSignature(category, cols) {
			continue
		}
		candidate := models.ClassifiedTable{
			Table:    t,
			Category: category,
			Matches:  countMarkers(cols, uniqueMarkers[category]),
		}
		if !found || better(candidate, best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

func better(a, b models.ClassifiedTable) bool {
	if a.Matches != b.Matches {
		return a.Matches > b.Matches
	}
	return a.Table.RowCount() > b.Table.RowCount()
}

// fallbackPass hunts for still-missing categories by unique markers
// alone. A fallback hit on an already claimed position triggers quality
// scoring; the loser is re-searched at unoccupied positions.
func fallbackPass(tables []models.RawTable, missing []models.Category, claimed map[int]models.Category, result map[models.Category]models.ClassifiedTable) {
	var rejected []models.Category

	for _, category := range missing {
		candidate, ok := findByMarkers(tables, category, nil)
		if !ok {
			continue
		}

		holder, conflict := claimed[candidate.Table.Index]
		if !conflict {
			claimed[candidate.Table.Index] = category
			result[category] = candidate
			continue
		}

		existing := result[holder]
		if scoreQuality(candidate.Table, category) > scoreQuality(existing.Table, holder) {
			delete(result, holder)
			claimed[candidate.Table.Index] = category
			result[category] = candidate
			rejected = append(rejected, holder)
		} else {
			rejected = append(rejected, category)
		}
	}

	// losers may still have a home at a free position
	for _, category := range rejected {
		if candidate, ok := findByMarkers(tables, category, claimed); ok {
			claimed[candidate.Table.Index] = category
			result[category] = candidate
		}
	}
}

// findByMarkers returns the best unique-marker candidate for a category.
// When exclude is non-nil, tables at claimed positions are skipped.
func findByMarkers(tables []models.RawTable, category models.Category, exclude map[int]models.Category) (models.ClassifiedTable, bool) {
	markers, ok := uniqueMarkers[category]
	if !ok {
		return models.ClassifiedTable{}, false
	}

	var (
		best  models.ClassifiedTable
		found bool
	)
	for _, t := range tables {
		if !eligible(t) {
			continue
		}
		if exclude != nil {
			if _, taken := exclude[t.Index]; taken {
				continue
			}
		}
		n := countMarkers(labelText(t), markers)
		if n < minMarkerMatches {
			continue
		}
		candidate := models.ClassifiedTable{Table: t, Category: category, Matches: n}
		if !found || better(candidate, best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

// Goalkeeper classifies tables on a goalkeeper page. Unlike the field
// player path, every category keeps all candidates with at least two
// pattern matches; the caller picks the strongest per category.
func Goalkeeper(tables []models.RawTable) map[models.Category][]models.ClassifiedTable {
	result := make(map[models.Category][]models.ClassifiedTable)

	for _, t := range tables {
		if !eligible(t) {
			continue
		}
		labels := underLabels(t)

		for category, keywords := range goalkeeperPatterns {
			matches := 0
			for _, keyword := range keywords {
				for _, label := range labels {
					if label != "" && strings.Contains(label, keyword) {
						matches++
						break
					}
				}
			}
			if matches >= minMarkerMatches {
				result[category] = append(result[category], models.ClassifiedTable{
					Table:    t,
					Category: category,
					Matches:  matches,
				})
			}
		}
	}

	for category := range result {
		candidates := result[category]
		sort.SliceStable(candidates, func(i, j int) bool { return better(candidates[i], candidates[j]) })
		result[category] = candidates
	}
	return result
}

// BestGoalkeeper reduces the candidate lists to one table per category.
func BestGoalkeeper(candidates map[models.Category][]models.ClassifiedTable) map[models.Category]models.ClassifiedTable {
	best := make(map[models.Category]models.ClassifiedTable, len(candidates))
	for category, list := range candidates {
		if len(list) > 0 {
			best[category] = list[0]
		}
	}
	return best
}
