package planner

import "wayfarer/internal/domain"

// CollectSourceURLs flattens grounding chunks into an ordered, duplicate-free
// list of supporting URIs. A chunk contributes its web URI when present,
// otherwise its maps URI, otherwise nothing; absence at any level yields an
// empty result, never an error.
func CollectSourceURLs(chunks []domain.GroundingChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		uri := ""
		switch {
		case c.Web != nil && c.Web.URI != "":
			uri = c.Web.URI
		case c.Maps != nil && c.Maps.URI != "":
			uri = c.Maps.URI
		default:
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		out = append(out, uri)
	}
	return out
}
