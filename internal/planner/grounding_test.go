package planner

import (
	"reflect"
	"testing"

	"wayfarer/internal/domain"
)

func web(uri string) domain.GroundingChunk {
	return domain.GroundingChunk{Web: &domain.GroundingSource{URI: uri}}
}

func maps(uri string) domain.GroundingChunk {
	return domain.GroundingChunk{Maps: &domain.GroundingSource{URI: uri}}
}

func TestCollectSourceURLs_DedupFirstSeenOrder(t *testing.T) {
	got := CollectSourceURLs([]domain.GroundingChunk{web("a"), maps("b"), web("a")})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCollectSourceURLs_WebWinsWhenChunkCarriesBoth(t *testing.T) {
	both := domain.GroundingChunk{
		Web:  &domain.GroundingSource{URI: "w"},
		Maps: &domain.GroundingSource{URI: "m"},
	}
	got := CollectSourceURLs([]domain.GroundingChunk{both})
	if !reflect.DeepEqual(got, []string{"w"}) {
		t.Fatalf("got %v", got)
	}
}

func TestCollectSourceURLs_AbsenceYieldsEmpty(t *testing.T) {
	if got := CollectSourceURLs(nil); len(got) != 0 {
		t.Fatalf("nil chunks: got %v", got)
	}
	// chunks with no recognized source are dropped, not errors
	got := CollectSourceURLs([]domain.GroundingChunk{{}, {Web: &domain.GroundingSource{}}})
	if len(got) != 0 {
		t.Fatalf("empty chunks: got %v", got)
	}
}
