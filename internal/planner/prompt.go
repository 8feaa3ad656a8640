package planner

import (
	"fmt"
	"strings"
	"time"

	"wayfarer/internal/domain"
)

// The reply contract sent with every generation call. The whole reply must be
// one JSON object inside a ```json fence; prose around the fence is tolerated
// by the extractor but never required.
const replyContract = `Your entire reply MUST be a single JSON object inside a ` + "```json" + ` fenced block, with exactly this schema:
{
  "itinerary": [
    {
      "day": 1,
      "date": "display date",
      "activities": [
        {
          "name": "activity name",
          "description": "short description (optional)",
          "openingHours": "display opening hours (optional)",
          "estimatedCost": "display cost, e.g. \"IDR 50,000\" or \"Free\"",
          "priceCheckLinkPlaceholder": "short phrase to search for current prices"
        }
      ]
    }
  ],
  "summary": "optional trip summary"
}
Do not add any keys beyond this schema.`

// BuildPrompt turns preferences into the instruction text and tool
// configuration for one generation call. Pure: the anchor date is passed in
// so day 1 is pinned to the caller's current date.
func BuildPrompt(prefs domain.TravelPreferences, now time.Time) (string, domain.ToolSpec) {
	var sb strings.Builder
	sb.WriteString("You are an expert travel planner.\n")
	fmt.Fprintf(&sb, "Create a %d-day itinerary for %s.\n", prefs.DurationDays, prefs.Destination)
	fmt.Fprintf(&sb, "Total budget for the whole trip: %.0f (in the destination's local display convention).\n", prefs.Budget)
	if interests := strings.TrimSpace(prefs.Interests); interests != "" {
		fmt.Fprintf(&sb, "Traveler interests: %s.\n", interests)
	}
	fmt.Fprintf(&sb, "Day 1 is %s; date every day sequentially from there.\n", now.Format("Monday, 2 January 2006"))
	sb.WriteString("Use web search to ground every recommendation in current information: real opening hours, real admission prices.\n")

	tools := domain.ToolSpec{WebSearch: true}
	if prefs.HasLocation() {
		tools.LocationBias = &domain.LatLng{Lat: *prefs.Latitude, Lng: *prefs.Longitude}
		fmt.Fprintf(&sb, "The traveler is currently near latitude %.5f, longitude %.5f; prefer places that are practical to reach from there.\n",
			tools.LocationBias.Lat, tools.LocationBias.Lng)
	}

	sb.WriteString("\n")
	sb.WriteString(replyContract)
	return sb.String(), tools
}
