package planner

import (
	"errors"
	"testing"

	"wayfarer/internal/domain"
)

func mustMalformed(t *testing.T, err error) *domain.MalformedResponseError {
	t.Helper()
	var malformed *domain.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	return malformed
}

func TestParseItinerary_OK(t *testing.T) {
	it, err := ParseItinerary(`{
		"itinerary": [
			{"day": 1, "date": "Mon, 1 Sep 2025", "activities": [
				{"name": "Borobudur", "estimatedCost": "IDR 455.000", "priceCheckLinkPlaceholder": "Borobudur ticket price"}
			]}
		],
		"summary": "one day"
	}`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(it.Itinerary) != 1 || it.Itinerary[0].Day != 1 || it.Summary != "one day" {
		t.Fatalf("unexpected itinerary: %+v", it)
	}
	if it.Itinerary[0].Activities[0].Name != "Borobudur" {
		t.Fatalf("unexpected activity: %+v", it.Itinerary[0].Activities[0])
	}
}

func TestParseItinerary_EmptyItineraryIsStructurallyValid(t *testing.T) {
	// Budget aggregation rejects it later; the structural gate does not.
	it, err := ParseItinerary(`{"itinerary":[]}`)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(it.Itinerary) != 0 {
		t.Fatalf("expected empty itinerary, got %+v", it)
	}
}

func TestParseItinerary_MissingItineraryField(t *testing.T) {
	_, err := ParseItinerary(`{"summary":"no plan"}`)
	m := mustMalformed(t, err)
	if m.Fragment != `{"summary":"no plan"}` {
		t.Fatalf("fragment: %q", m.Fragment)
	}
}

func TestParseItinerary_NullItineraryField(t *testing.T) {
	// JSON null is captured as a non-nil RawMessage; it must fail like absence,
	// not decode to a zero-day itinerary.
	_, err := ParseItinerary(`{"itinerary": null}`)
	m := mustMalformed(t, err)
	if m.Fragment != `{"itinerary": null}` {
		t.Fatalf("fragment: %q", m.Fragment)
	}
}

func TestParseItinerary_WrongShape(t *testing.T) {
	for _, candidate := range []string{
		`{"itinerary": "not an array"}`,
		`{"itinerary": [{"day": 1, "date": "x"}]}`,            // no activities array
		`{"itinerary": [{"day": 1, "activities": [{}]}]}`,     // activity without name
		`{"itinerary": [{"day": "one", "activities": []}]}`,   // day not a number
		`[]`,
	} {
		if _, err := ParseItinerary(candidate); err == nil {
			t.Errorf("expected error for %s", candidate)
		} else {
			mustMalformed(t, err)
		}
	}
}
