package planner

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"wayfarer/internal/adapters/observability"
)

// First ```json fence anywhere in the reply, non-greedy so trailing prose
// after the closing fence is ignored.
var jsonFenceRE = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractPayload pulls the JSON candidate out of a possibly prose-wrapped
// reply. When no fence is found the whole trimmed text is used instead; that
// path is materially less reliable, so it is logged and counted separately.
func ExtractPayload(raw string) (candidate string, fenced bool) {
	if m := jsonFenceRE.FindStringSubmatch(raw); m != nil {
		observability.ObserveExtraction("fenced")
		return strings.TrimSpace(m[1]), true
	}
	observability.ObserveExtraction("fallback")
	log.Warn().Int("len", len(raw)).Msg("no json fence in reply, using whole text")
	return strings.TrimSpace(raw), false
}
