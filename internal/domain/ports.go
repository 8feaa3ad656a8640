package domain

import "context"

// ToolSpec describes the tool configuration for one generation call.
// Web search is always on; location bias only when both coordinates were
// supplied with the preferences.
type ToolSpec struct {
	WebSearch    bool
	LocationBias *LatLng
}

type LatLng struct{ Lat, Lng float64 }

// GroundingSource is one supporting reference carried by a grounding chunk.
type GroundingSource struct {
	URI   string
	Title string
}

// GroundingChunk is the tagged decoding of one upstream grounding chunk.
// A chunk may carry a web source, a maps source, both, or neither; shapes we
// do not recognize decode to neither and are dropped downstream.
type GroundingChunk struct {
	Web  *GroundingSource
	Maps *GroundingSource
}

// GenerationResult is the raw outcome of one generation round trip: the
// response text plus whatever grounding chunks the backend attached.
type GenerationResult struct {
	Text   string
	Chunks []GroundingChunk
}

// Generator is the generation backend contract.
type Generator interface {
	Generate(ctx context.Context, instruction string, tools ToolSpec) (GenerationResult, error)
}

// Cache stores JSON-serializable values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
