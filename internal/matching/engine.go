// Package matching implements vendor eligibility filtering and score
// ranking over vendor profiles. It is pure computation with no storage
// or transport dependencies so it can be exercised directly in tests
// and reused by any caller that already holds candidate profiles.
package matching

import (
	"math"
	"sort"
	"time"

	"planora/pkg/model"
)

// Score weights. Rating dominates, completion rate and responsiveness
// split the remainder evenly.
const (
	ratingWeight         = 0.4
	completionWeight     = 0.3
	responsivenessWeight = 0.3
)

// IsEligible reports whether a vendor satisfies all match criteria:
// the requested category is one of the vendor's categories, the vendor
// has an explicitly available slot on the requested date, and at least
// one of the vendor's services is priced within the budget.
func IsEligible(profile *model.VendorProfile, criteria model.MatchCriteria) bool {
	return hasCategory(profile, criteria.Category) &&
		availableOn(profile, criteria.Date) &&
		withinBudget(profile, criteria.MaxBudget)
}

func hasCategory(profile *model.VendorProfile, category model.Category) bool {
	for _, c := range profile.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// availableOn requires an explicit slot with status available on the
// requested calendar date. Dates with no slot are not bookable.
func availableOn(profile *model.VendorProfile, date time.Time) bool {
	slot, ok := profile.Availability.SlotOn(date)
	return ok && slot.Status == model.SlotAvailable
}

func withinBudget(profile *model.VendorProfile, maxBudget float64) bool {
	for _, s := range profile.Services {
		if s.Price <= maxBudget {
			return true
		}
	}
	return false
}

// Score computes a vendor's composite match score from its performance
// metrics. Rating and completion rate enter the sum on their stored
// scales; response time contributes through 1/(t+1) so that faster
// responders score higher and a zero response time yields the full
// responsiveness weight. Malformed metrics (NaN, Inf, negative)
// contribute zero rather than poisoning the ranking.
func Score(performance model.Performance) float64 {
	rating := sanitizeMetric(performance.AverageRating)
	completion := sanitizeMetric(performance.CompletionRate)
	responseTime := sanitizeMetric(performance.ResponseTime)

	return rating*ratingWeight +
		completion*completionWeight +
		(1/(responseTime+1))*responsivenessWeight
}

func sanitizeMetric(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Rank filters candidates down to eligible vendors, scores each, and
// returns them ordered by score descending. The sort is stable:
// vendors with equal scores keep the order in which they were given.
func Rank(candidates []*model.VendorProfile, criteria model.MatchCriteria) []model.VendorMatch {
	matches := make([]model.VendorMatch, 0, len(candidates))
	for _, profile := range candidates {
		if profile == nil || !IsEligible(profile, criteria) {
			continue
		}
		matches = append(matches, model.VendorMatch{
			Profile: profile,
			Score:   Score(profile.Performance),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
