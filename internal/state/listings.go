package state

import "github.com/atomicstack/gridmenu/internal/catalog"

// ListingStore holds the auction listings menus page through.
type ListingStore interface {
	Listings() []catalog.Listing
	SetListings([]catalog.Listing)
	Listing(id string) (catalog.Listing, bool)
	Remove(id string) bool
	Version() int
}

type listingStore struct {
	entries []catalog.Listing
	version int
}

func NewListingStore() ListingStore {
	return &listingStore{}
}

func (s *listingStore) Listings() []catalog.Listing {
	return cloneItems(s.entries)
}

func (s *listingStore) SetListings(entries []catalog.Listing) {
	s.entries = cloneItems(entries)
	s.version++
}

func (s *listingStore) Listing(id string) (catalog.Listing, bool) {
	for _, l := range s.entries {
		if l.ID == id {
			return l, true
		}
	}
	return catalog.Listing{}, false
}

func (s *listingStore) Remove(id string) bool {
	for i, l := range s.entries {
		if l.ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			s.version++
			return true
		}
	}
	return false
}

// Version increases on every change.
func (s *listingStore) Version() int {
	return s.version
}
