package planner

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"wayfarer/internal/domain"
)

// ErrInvalidPreferences wraps a preference validation failure.
var ErrInvalidPreferences = errors.New("invalid preferences")

// Service runs the generation pipeline and holds the one current itinerary.
// Single-request by design: at most one generation round trip is outstanding;
// a second concurrent request is refused rather than queued. Installing a new
// itinerary is a whole-object swap, so readers never see a torn state.
type Service struct {
	gen      domain.Generator
	cache    domain.Cache
	cacheTTL time.Duration
	slot     *semaphore.Weighted
	now      func() time.Time

	mu         sync.RWMutex
	current    *domain.ItineraryResult
	userBudget float64

	costs *ActualCostStore
}

func NewService(gen domain.Generator, cache domain.Cache, cacheTTL time.Duration) *Service {
	return &Service{
		gen:      gen,
		cache:    cache,
		cacheTTL: cacheTTL,
		slot:     semaphore.NewWeighted(1),
		now:      time.Now,
		costs:    NewActualCostStore(),
	}
}

func validatePreferences(p domain.TravelPreferences) error {
	switch {
	case p.Destination == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidPreferences)
	case p.DurationDays <= 0:
		return fmt.Errorf("%w: durationDays must be positive", ErrInvalidPreferences)
	case p.Budget <= 0:
		return fmt.Errorf("%w: budget must be positive", ErrInvalidPreferences)
	case (p.Latitude == nil) != (p.Longitude == nil):
		return fmt.Errorf("%w: latitude and longitude must be supplied together", ErrInvalidPreferences)
	}
	return nil
}

func cacheKey(p domain.TravelPreferences) string {
	sig := fmt.Sprintf("%s|%d|%.2f|%s", p.Destination, p.DurationDays, p.Budget, p.Interests)
	if p.HasLocation() {
		sig += fmt.Sprintf("|%.5f,%.5f", *p.Latitude, *p.Longitude)
	}
	sum := sha1.Sum([]byte(sig))
	return "itinerary:" + hex.EncodeToString(sum[:])
}

// Generate runs the whole pipeline for one preference submission and installs
// the result as the current itinerary. An identical recent submission is
// served from cache without an upstream round trip; the cost store is merged
// (not reset) either way.
func (s *Service) Generate(ctx context.Context, prefs domain.TravelPreferences) (domain.ItineraryResult, error) {
	if err := validatePreferences(prefs); err != nil {
		return domain.ItineraryResult{}, err
	}

	key := cacheKey(prefs)
	var cached domain.ItineraryResult
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		s.install(cached, prefs.Budget)
		return cached, nil
	}

	if !s.slot.TryAcquire(1) {
		return domain.ItineraryResult{}, domain.ErrGenerationInFlight
	}
	defer s.slot.Release(1)

	instruction, tools := BuildPrompt(prefs, s.now())
	gen, err := s.gen.Generate(ctx, instruction, tools)
	if err != nil {
		return domain.ItineraryResult{}, err
	}

	candidate, fenced := ExtractPayload(gen.Text)
	itinerary, err := ParseItinerary(candidate)
	if err != nil {
		return domain.ItineraryResult{}, err
	}
	if !fenced {
		log.Info().Str("destination", prefs.Destination).Msg("itinerary parsed via fallback extraction path")
	}

	result := domain.ItineraryResult{
		ItineraryData: itinerary,
		SourceURLs:    CollectSourceURLs(gen.Chunks),
	}
	_ = s.cache.Set(ctx, key, result, int(s.cacheTTL.Seconds()))
	s.install(result, prefs.Budget)

	log.Info().
		Str("destination", prefs.Destination).
		Int("days", len(itinerary.Itinerary)).
		Int("sources", len(result.SourceURLs)).
		Msg("itinerary generated")
	return result, nil
}

// install swaps in the new result whole and reseeds cost overrides against it.
func (s *Service) install(res domain.ItineraryResult, budget float64) {
	s.mu.Lock()
	s.current = &res
	s.userBudget = budget
	s.mu.Unlock()
	s.costs.Reseed(res.ItineraryData)
}

// Current returns the installed itinerary, if any.
func (s *Service) Current() (domain.ItineraryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.ItineraryResult{}, domain.ErrNoItinerary
	}
	return *s.current, nil
}

// SetActualCost records a user-entered amount for one activity; nil clears it.
// Independent of any in-flight generation.
func (s *Service) SetActualCost(key ActivityKey, amount *float64) error {
	s.mu.RLock()
	installed := s.current != nil
	s.mu.RUnlock()
	if !installed {
		return domain.ErrNoItinerary
	}
	return s.costs.Set(key, amount)
}

// Budget computes the summary for the current itinerary. A zero budget falls
// back to the budget from the preferences that produced the itinerary.
func (s *Service) Budget(userBudget float64) (domain.BudgetSummary, error) {
	s.mu.RLock()
	cur := s.current
	if userBudget <= 0 {
		userBudget = s.userBudget
	}
	s.mu.RUnlock()
	if cur == nil {
		return domain.BudgetSummary{}, domain.ErrNoItinerary
	}
	return SummarizeBudget(cur.ItineraryData, s.costs.Snapshot(), userBudget)
}
