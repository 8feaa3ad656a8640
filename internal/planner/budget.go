package planner

import "wayfarer/internal/domain"

// SummarizeBudget aggregates estimated vs. actual spend against the user's
// total budget. Total actual sums only entered overrides: an activity with
// no override contributes 0, it does not fall back to its estimate. A
// zero-day itinerary is an explicit error, never a NaN/Inf summary.
func SummarizeBudget(it domain.GeneratedItinerary, overrides map[ActivityKey]*float64, userBudget float64) (domain.BudgetSummary, error) {
	days := len(it.Itinerary)
	if days == 0 {
		return domain.BudgetSummary{}, domain.ErrEmptyItinerary
	}

	var totalEstimated float64
	for _, day := range it.Itinerary {
		for _, act := range day.Activities {
			totalEstimated += ParseCost(act.EstimatedCost)
		}
	}

	var totalActual float64
	for _, v := range overrides {
		if v != nil {
			totalActual += *v
		}
	}

	remaining := userBudget - totalActual
	return domain.BudgetSummary{
		DurationDays:                days,
		TotalEstimated:              totalEstimated,
		TotalActual:                 totalActual,
		AverageDailyBudget:          userBudget / float64(days),
		RemainingBudget:             remaining,
		RemainingAverageDailyBudget: remaining / float64(days),
	}, nil
}
