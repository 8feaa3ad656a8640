package planner

import (
	"errors"
	"testing"

	"wayfarer/internal/domain"
)

func fiveDayItinerary() domain.GeneratedItinerary {
	days := make([]domain.DayPlan, 5)
	for i := range days {
		days[i] = domain.DayPlan{
			Day: i + 1,
			Activities: []domain.Activity{
				{Name: "Morning walk", EstimatedCost: "Free"},
				{Name: "Museum", EstimatedCost: "IDR 50.000"},
			},
		}
	}
	return domain.GeneratedItinerary{Itinerary: days}
}

func TestSummarizeBudget(t *testing.T) {
	it := fiveDayItinerary()
	overrides := map[ActivityKey]*float64{
		KeyFor(0, "Museum"): pfloat(200000),
		KeyFor(1, "Museum"): nil, // present but not entered: contributes 0, not the estimate
	}

	sum, err := SummarizeBudget(it, overrides, 1_000_000)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sum.DurationDays != 5 {
		t.Fatalf("days: %d", sum.DurationDays)
	}
	if sum.TotalEstimated != 250000 { // 5 days x (0 + 50000)
		t.Fatalf("totalEstimated: %v", sum.TotalEstimated)
	}
	if sum.TotalActual != 200000 {
		t.Fatalf("totalActual: %v", sum.TotalActual)
	}
	if sum.AverageDailyBudget != 200000 {
		t.Fatalf("averageDailyBudget: %v", sum.AverageDailyBudget)
	}
	if sum.RemainingBudget != 800000 {
		t.Fatalf("remainingBudget: %v", sum.RemainingBudget)
	}
	if sum.RemainingAverageDailyBudget != 160000 {
		t.Fatalf("remainingAverageDailyBudget: %v", sum.RemainingAverageDailyBudget)
	}
}

func TestSummarizeBudget_ZeroDays(t *testing.T) {
	_, err := SummarizeBudget(domain.GeneratedItinerary{}, nil, 1_000_000)
	if !errors.Is(err, domain.ErrEmptyItinerary) {
		t.Fatalf("expected ErrEmptyItinerary, got %v", err)
	}
}

// Total estimated must match a manual sweep over every activity: no double
// counting, no omission across days.
func TestSummarizeBudget_EstimateSweepAgrees(t *testing.T) {
	it := domain.GeneratedItinerary{Itinerary: []domain.DayPlan{
		{Day: 1, Activities: []domain.Activity{
			{Name: "a", EstimatedCost: "Rp 10.000"},
			{Name: "b", EstimatedCost: "IDR 2,500"},
		}},
		{Day: 2, Activities: []domain.Activity{
			{Name: "c", EstimatedCost: "Free"},
			{Name: "d", EstimatedCost: "7500"},
		}},
	}}

	var manual float64
	for _, day := range it.Itinerary {
		for _, act := range day.Activities {
			manual += ParseCost(act.EstimatedCost)
		}
	}

	sum, err := SummarizeBudget(it, nil, 100000)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if sum.TotalEstimated != manual {
		t.Fatalf("totalEstimated %v != manual sweep %v", sum.TotalEstimated, manual)
	}
}

func pfloat(f float64) *float64 { return &f }
