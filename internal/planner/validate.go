package planner

import (
	"bytes"
	"encoding/json"

	"wayfarer/internal/domain"
)

// ParseItinerary strictly parses a JSON candidate and gates it structurally
// before anything downstream may touch it. All-or-nothing: no partially
// parsed itinerary ever escapes, and the offending fragment travels with the
// error for diagnostics.
func ParseItinerary(candidate string) (domain.GeneratedItinerary, error) {
	var envelope struct {
		Itinerary json.RawMessage `json:"itinerary"`
		Summary   string          `json:"summary"`
	}
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return domain.GeneratedItinerary{}, &domain.MalformedResponseError{
			Fragment: candidate, Reason: "reply is not valid JSON", Err: err,
		}
	}
	// a literal null captures as non-nil RawMessage; treat it as absent
	if envelope.Itinerary == nil || bytes.Equal(envelope.Itinerary, []byte("null")) {
		return domain.GeneratedItinerary{}, &domain.MalformedResponseError{
			Fragment: candidate, Reason: "missing itinerary field",
		}
	}

	var days []domain.DayPlan
	if err := json.Unmarshal(envelope.Itinerary, &days); err != nil {
		return domain.GeneratedItinerary{}, &domain.MalformedResponseError{
			Fragment: candidate, Reason: "itinerary is not an array of days", Err: err,
		}
	}
	for _, d := range days {
		if d.Activities == nil {
			return domain.GeneratedItinerary{}, &domain.MalformedResponseError{
				Fragment: candidate, Reason: "day without activities array",
			}
		}
		for _, a := range d.Activities {
			if a.Name == "" {
				return domain.GeneratedItinerary{}, &domain.MalformedResponseError{
					Fragment: candidate, Reason: "activity without a name",
				}
			}
		}
	}
	return domain.GeneratedItinerary{Itinerary: days, Summary: envelope.Summary}, nil
}
