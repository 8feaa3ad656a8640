package planner

import (
	"strings"
	"testing"
	"time"

	"wayfarer/internal/domain"
)

var promptNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func basePrefs() domain.TravelPreferences {
	return domain.TravelPreferences{
		Destination:  "Yogyakarta",
		DurationDays: 3,
		Budget:       1500000,
		Interests:    "temples, street food",
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a, _ := BuildPrompt(basePrefs(), promptNow)
	b, _ := BuildPrompt(basePrefs(), promptNow)
	if a != b {
		t.Fatalf("prompt not deterministic")
	}
}

func TestBuildPrompt_Content(t *testing.T) {
	text, tools := BuildPrompt(basePrefs(), promptNow)

	for _, want := range []string{
		"3-day itinerary for Yogyakarta",
		"temples, street food",
		"Day 1 is Monday, 1 September 2025",
		"```json",
		`"priceCheckLinkPlaceholder"`,
		`"estimatedCost"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !tools.WebSearch {
		t.Fatalf("web search must always be requested")
	}
	if tools.LocationBias != nil {
		t.Fatalf("no coordinates supplied, expected no location bias")
	}
}

func TestBuildPrompt_LocationBiasNeedsBothCoordinates(t *testing.T) {
	lat, lng := -7.797, 110.370

	p := basePrefs()
	p.Latitude = &lat
	text, tools := BuildPrompt(p, promptNow)
	if tools.LocationBias != nil {
		t.Fatalf("single coordinate must be ignored entirely")
	}
	if strings.Contains(text, "latitude") {
		t.Fatalf("single coordinate must not reach the instruction text")
	}

	p.Longitude = &lng
	text, tools = BuildPrompt(p, promptNow)
	if tools.LocationBias == nil || tools.LocationBias.Lat != lat || tools.LocationBias.Lng != lng {
		t.Fatalf("expected location bias %v/%v, got %+v", lat, lng, tools.LocationBias)
	}
	if !strings.Contains(text, "latitude -7.79700") {
		t.Fatalf("expected location clause in instruction text:\n%s", text)
	}
}
