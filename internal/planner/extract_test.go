package planner

import (
	"errors"
	"testing"

	"wayfarer/internal/domain"
)

func TestExtractPayload_Fenced(t *testing.T) {
	raw := "Here is your plan:\n```json\n{\"itinerary\":[]}\n```\nEnjoy!"
	candidate, fenced := ExtractPayload(raw)
	if !fenced {
		t.Fatalf("expected fenced path")
	}
	if candidate != `{"itinerary":[]}` {
		t.Fatalf("unexpected candidate: %q", candidate)
	}
}

func TestExtractPayload_FallbackWholeText(t *testing.T) {
	candidate, fenced := ExtractPayload("  {\"itinerary\":[]}  ")
	if fenced {
		t.Fatalf("expected fallback path")
	}
	if candidate != `{"itinerary":[]}` {
		t.Fatalf("unexpected candidate: %q", candidate)
	}
	if _, err := ParseItinerary(candidate); err != nil {
		t.Fatalf("fallback candidate should still parse: %v", err)
	}
}

func TestExtractPayload_FirstFenceWins(t *testing.T) {
	raw := "```json\n{\"itinerary\":[]}\n```\nignore this\n```json\n{\"other\":1}\n```"
	candidate, fenced := ExtractPayload(raw)
	if !fenced || candidate != `{"itinerary":[]}` {
		t.Fatalf("expected first fence, got fenced=%v candidate=%q", fenced, candidate)
	}
}

func TestParseItinerary_MalformedCarriesFragment(t *testing.T) {
	candidate, fenced := ExtractPayload("```json\n{bad json\n```")
	if !fenced {
		t.Fatalf("expected fenced path")
	}
	_, err := ParseItinerary(candidate)
	var malformed *domain.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.Fragment != "{bad json" {
		t.Fatalf("expected fragment %q, got %q", "{bad json", malformed.Fragment)
	}
}
