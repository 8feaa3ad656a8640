package domain

// TravelPreferences is what the user submits. It lives only long enough to
// build a prompt from it; the budget is kept for later summaries.
type TravelPreferences struct {
	Destination  string   `json:"destination"`
	DurationDays int      `json:"durationDays"`
	Budget       float64  `json:"budget"`
	Interests    string   `json:"interests"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// HasLocation reports whether both coordinates were supplied. A single
// coordinate is ignored entirely, with no partial location bias.
func (p TravelPreferences) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Activity is one itinerary entry as the model produced it. EstimatedCost is
// display text, not guaranteed numeric. ActualCost is user-entered.
type Activity struct {
	Name                      string   `json:"name"`
	Description               string   `json:"description,omitempty"`
	OpeningHours              string   `json:"openingHours,omitempty"`
	EstimatedCost             string   `json:"estimatedCost"`
	PriceCheckLinkPlaceholder string   `json:"priceCheckLinkPlaceholder"`
	ActualCost                *float64 `json:"actualCost,omitempty"`
}

// DayPlan is one day of the itinerary. Activity order is meaningful.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

// GeneratedItinerary is the validated payload of one generation round trip.
// Once validated it is treated as immutable; regeneration replaces it
// wholesale, never patches it in place.
type GeneratedItinerary struct {
	Itinerary []DayPlan `json:"itinerary"`
	Summary   string    `json:"summary,omitempty"`
}

// ItineraryResult pairs the itinerary with its grounding sources.
// SourceURLs is duplicate-free and preserves first-seen order.
type ItineraryResult struct {
	ItineraryData GeneratedItinerary `json:"itineraryData"`
	SourceURLs    []string           `json:"sourceUrls"`
}

// BudgetSummary is the read-only aggregation over the current itinerary and
// the user's cost overrides. Recomputed on every change, never stored.
type BudgetSummary struct {
	DurationDays                int     `json:"durationDays"`
	TotalEstimated              float64 `json:"totalEstimated"`
	TotalActual                 float64 `json:"totalActual"`
	AverageDailyBudget          float64 `json:"averageDailyBudget"`
	RemainingBudget             float64 `json:"remainingBudget"`
	RemainingAverageDailyBudget float64 `json:"remainingAverageDailyBudget"`
}
