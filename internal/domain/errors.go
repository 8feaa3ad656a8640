package domain

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Every stage fails fast and whole: a caller gets
// exactly one of these, never a partial itinerary.
var (
	// ErrNoCredential means no API key was configured. Raised at construction
	// time, before any network attempt.
	ErrNoCredential = errors.New("generation credential not configured")

	// ErrUpstreamAuth means the backend rejected the credential or it lacks
	// permission. Permanent; retrying will not help.
	ErrUpstreamAuth = errors.New("upstream rejected credential")

	// ErrUpstreamEmpty means the call succeeded but yielded no usable text.
	ErrUpstreamEmpty = errors.New("upstream returned no usable text")

	// ErrUpstreamBusy means a transient upstream failure survived the bounded
	// retry policy. Retryable by the caller, unlike ErrUpstreamAuth/ErrUpstream.
	ErrUpstreamBusy = errors.New("upstream busy after retries")

	// ErrUpstream covers any other transport or service failure.
	ErrUpstream = errors.New("upstream failure")

	// ErrEmptyItinerary is the aggregation error for a zero-duration itinerary;
	// budget math must report it instead of dividing by zero.
	ErrEmptyItinerary = errors.New("itinerary has no days")

	// ErrGenerationInFlight means another generation round trip is already
	// outstanding; the pipeline is single-request by design.
	ErrGenerationInFlight = errors.New("generation already in flight")

	// ErrNoItinerary means no itinerary has been generated yet.
	ErrNoItinerary = errors.New("no itinerary generated")

	// ErrUnknownActivity means a cost override referenced a key that is not
	// part of the current itinerary.
	ErrUnknownActivity = errors.New("unknown activity key")
)

// MalformedResponseError reports a reply that could not be parsed or failed
// the structural gate. Fragment carries the offending candidate text for
// diagnostics.
type MalformedResponseError struct {
	Fragment string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
