// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"wayfarer/internal/domain"
	"wayfarer/internal/planner"
)

type Handlers struct{ P *planner.Service }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/itineraries", h.generate)
	s.mux.Get("/v1/itinerary", h.getItinerary)
	s.mux.Get("/v1/itinerary/budget", h.getBudget)
	s.mux.Put("/v1/itinerary/activities/{key}/actual-cost", h.putActualCost)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writePipelineError maps the domain error taxonomy onto HTTP statuses.
func writePipelineError(w http.ResponseWriter, err error) {
	var malformed *domain.MalformedResponseError
	switch {
	case errors.Is(err, planner.ErrInvalidPreferences):
		writeProblem(w, http.StatusBadRequest, "Invalid Preferences", err.Error())
	case errors.Is(err, domain.ErrGenerationInFlight):
		writeProblem(w, http.StatusConflict, "Generation In Flight", "another itinerary is being generated; try again shortly")
	case errors.Is(err, domain.ErrNoCredential):
		writeProblem(w, http.StatusServiceUnavailable, "Not Configured", "generation credential is not configured")
	case errors.Is(err, domain.ErrUpstreamAuth):
		writeProblem(w, http.StatusBadGateway, "Upstream Auth", "the generation backend rejected our credential; check the configured API key")
	case errors.Is(err, domain.ErrUpstreamBusy):
		writeProblem(w, http.StatusServiceUnavailable, "Upstream Busy", "the generation backend is temporarily unavailable; retry later")
	case errors.Is(err, domain.ErrUpstreamEmpty):
		writeProblem(w, http.StatusBadGateway, "Empty Response", "the generation backend returned no usable text")
	case errors.As(err, &malformed):
		writeProblem(w, http.StatusUnprocessableEntity, "Malformed Itinerary", malformed.Reason)
	case errors.Is(err, domain.ErrUpstream):
		writeProblem(w, http.StatusBadGateway, "Upstream Failure", "the generation backend failed")
	case errors.Is(err, domain.ErrNoItinerary):
		writeProblem(w, http.StatusNotFound, "Not Found", "no itinerary generated yet")
	case errors.Is(err, domain.ErrEmptyItinerary):
		writeProblem(w, http.StatusUnprocessableEntity, "Empty Itinerary", "the current itinerary has no days to aggregate over")
	case errors.Is(err, domain.ErrUnknownActivity):
		writeProblem(w, http.StatusNotFound, "Unknown Activity", "no activity with that key in the current itinerary")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) {
	var prefs domain.TravelPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a travel-preferences JSON object")
		return
	}
	res, err := h.P.Generate(r.Context(), prefs)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("failed to write generate body")
	}
}

func (h *Handlers) getItinerary(w http.ResponseWriter, r *http.Request) {
	res, err := h.P.Current()
	if err != nil {
		writePipelineError(w, err)
		return
	}

	etag, body := calcETagAndBody(res)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write itinerary body")
	}
}

func (h *Handlers) getBudget(w http.ResponseWriter, r *http.Request) {
	var budget float64
	if bs := r.URL.Query().Get("budget"); bs != "" {
		b, err := strconv.ParseFloat(bs, 64)
		if err != nil || b <= 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid Budget", "budget must be a positive number")
			return
		}
		budget = b
	}
	sum, err := h.P.Budget(budget)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sum); err != nil {
		log.Error().Err(err).Msg("failed to write budget body")
	}
}

func (h *Handlers) putActualCost(w http.ResponseWriter, r *http.Request) {
	key := planner.ActivityKey(chi.URLParam(r, "key"))
	var body struct {
		ActualCost *float64 `json:"actualCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", `body must be {"actualCost": number|null}`)
		return
	}
	if err := h.P.SetActualCost(key, body.ActualCost); err != nil {
		writePipelineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
