package state

import (
	"testing"

	"github.com/atomicstack/gridmenu/internal/catalog"
)

func TestListingStore(t *testing.T) {
	s := NewListingStore()
	input := []catalog.Listing{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	s.SetListings(input)
	input[0].ID = "changed"
	if got := s.Listings(); got[0].ID != "a" {
		t.Fatalf("expected store to copy input, got %q", got[0].ID)
	}
	if _, ok := s.Listing("b"); !ok {
		t.Fatalf("expected listing b")
	}
	v := s.Version()
	if !s.Remove("b") {
		t.Fatalf("expected remove to succeed")
	}
	if s.Remove("b") {
		t.Fatalf("expected second remove to fail")
	}
	if s.Version() != v+1 {
		t.Fatalf("expected version bump on remove")
	}
	got := s.Listings()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected listings %#v", got)
	}
}
