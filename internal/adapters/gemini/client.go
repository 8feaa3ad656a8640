// internal/adapters/gemini/client.go
package gemini

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"wayfarer/internal/adapters/observability"
	"wayfarer/internal/domain"
)

// Fixed generation parameters. Not itinerary-dependent.
const (
	temperature float32 = 0.7
	topP        float32 = 0.95
	topK        float32 = 40
)

const maxAttempts = 4

type Client struct {
	gc      *genai.Client
	model   string
	timeout time.Duration
	rl      *rate.Limiter
}

// New builds the generation client. The credential is injected once here and
// never re-read; an empty key fails immediately with ErrNoCredential, before
// any call could be attempted.
func New(ctx context.Context, apiKey, model string, rps int, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, domain.ErrNoCredential
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if rps <= 0 {
		rps = 2
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return &Client{
		gc:      gc,
		model:   model,
		timeout: timeout,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func buildConfig(tools domain.ToolSpec) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
		TopP:        genai.Ptr(topP),
		TopK:        genai.Ptr(topK),
	}
	if tools.WebSearch {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if tools.LocationBias != nil {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(tools.LocationBias.Lat),
					Longitude: genai.Ptr(tools.LocationBias.Lng),
				},
			},
		}
	}
	return cfg
}

// Generate performs one grounded generation round trip with client-side rate
// limiting, a per-attempt timeout, and bounded retry with backoff on
// transient failures. Auth and other permanent failures are never retried.
func (c *Client) Generate(ctx context.Context, instruction string, tools domain.ToolSpec) (domain.GenerationResult, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.GenerationResult{}, err
	}

	cfg := buildConfig(tools)
	contents := genai.Text(instruction)
	start := time.Now()

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.gc.Models.GenerateContent(attemptCtx, c.model, contents, cfg)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return domain.GenerationResult{}, ctx.Err()
			}
			lastErr = Classify(err)
			if !errors.Is(lastErr, domain.ErrUpstreamBusy) {
				observability.ObserveGeneration(c.model, outcome(lastErr), time.Since(start))
				return domain.GenerationResult{}, lastErr
			}
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return domain.GenerationResult{}, ctx.Err()
			}
			observability.ObserveGeneration(c.model, outcome(lastErr), time.Since(start))
			return domain.GenerationResult{}, lastErr
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			observability.ObserveGeneration(c.model, "empty", time.Since(start))
			return domain.GenerationResult{}, domain.ErrUpstreamEmpty
		}
		observability.ObserveGeneration(c.model, "ok", time.Since(start))
		return domain.GenerationResult{Text: text, Chunks: ConvertChunks(resp)}, nil
	}

	return domain.GenerationResult{}, lastErr
}

// Classify maps an SDK error onto the domain taxonomy. 401/403 are permanent
// auth failures; 429 and 5xx are transient; network-level failures with no
// status are treated as transient too.
func Classify(err error) error {
	var ae genai.APIError
	if errors.As(err, &ae) {
		switch {
		case ae.Code == 401 || ae.Code == 403:
			return fmt.Errorf("%w: %s", domain.ErrUpstreamAuth, ae.Message)
		case ae.Code == 429 || ae.Code >= 500:
			return fmt.Errorf("%w: status %d", domain.ErrUpstreamBusy, ae.Code)
		default:
			return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, ae.Code, ae.Message)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamBusy, err)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUpstreamAuth):
		return "auth"
	case errors.Is(err, domain.ErrUpstreamBusy):
		return "busy"
	case errors.Is(err, domain.ErrUpstreamEmpty):
		return "empty"
	default:
		return "error"
	}
}

// ConvertChunks decodes grounding metadata defensively: any level may be
// absent, and chunks carrying neither a web nor a maps URI are dropped.
func ConvertChunks(resp *genai.GenerateContentResponse) []domain.GroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}
	out := make([]domain.GroundingChunk, 0, len(gm.GroundingChunks))
	for _, ch := range gm.GroundingChunks {
		if ch == nil {
			continue
		}
		var dc domain.GroundingChunk
		if ch.Web != nil && ch.Web.URI != "" {
			dc.Web = &domain.GroundingSource{URI: ch.Web.URI, Title: ch.Web.Title}
		}
		if ch.Maps != nil && ch.Maps.URI != "" {
			dc.Maps = &domain.GroundingSource{URI: ch.Maps.URI, Title: ch.Maps.Title}
		}
		if dc.Web == nil && dc.Maps == nil {
			continue
		}
		out = append(out, dc)
	}
	return out
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (500ms, 1s, 2s...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 500 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
