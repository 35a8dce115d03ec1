// Package query implements the in-memory asset filter and sort pipeline.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/trackfolio/trackfolio-be/internal/models"
)

// FilterAndSort narrows and orders assets according to spec. Predicates are
// combined with AND; filtering happens before sorting. The input slice is
// never mutated and ties on the sort key keep their relative input order.
func FilterAndSort(assets []models.Asset, spec Spec) []models.Asset {
	filtered := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if matches(a, spec) {
			filtered = append(filtered, a)
		}
	}

	sortAssets(filtered, spec)
	return filtered
}

func matches(a models.Asset, spec Spec) bool {
	if spec.Search != "" {
		term := strings.ToLower(spec.Search)
		if !strings.Contains(strings.ToLower(a.Name), term) &&
			!strings.Contains(strings.ToLower(a.Description), term) {
			return false
		}
	}
	if spec.Type != "" && a.Type != spec.Type {
		return false
	}
	if spec.MinValue != nil && a.Value < *spec.MinValue {
		return false
	}
	if spec.MaxValue != nil && a.Value > *spec.MaxValue {
		return false
	}
	return true
}

func sortAssets(assets []models.Asset, spec Spec) {
	// Collators carry internal buffers, so one is built per call rather
	// than shared across requests.
	collator := collate.New(language.English)
	var cmp func(a, b models.Asset) int

	switch spec.SortBy {
	case SortByName:
		cmp = func(a, b models.Asset) int { return collator.CompareString(a.Name, b.Name) }
	case SortByType:
		cmp = func(a, b models.Asset) int { return collator.CompareString(string(a.Type), string(b.Type)) }
	case SortByValue:
		cmp = func(a, b models.Asset) int { return compareFloat(a.Value, b.Value) }
	case SortByCreatedAt:
		cmp = func(a, b models.Asset) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		// No explicit sort requested (or an unvalidated field slipped
		// through): newest update first.
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].UpdatedAt.After(assets[j].UpdatedAt)
		})
		return
	}

	order := 1
	if spec.SortDesc {
		order = -1
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return order*cmp(assets[i], assets[j]) < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
