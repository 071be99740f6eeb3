// Package catalog loads the demo auction listings shown by the menus.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidListing reports a listing that cannot be shown.
var ErrInvalidListing = errors.New("invalid listing")

// Listing is one item offered in the auction house.
type Listing struct {
	ID      string    `yaml:"id" json:"id"`
	Seller  string    `yaml:"seller" json:"seller"`
	Item    string    `yaml:"item" json:"item"`
	Icon    string    `yaml:"icon" json:"icon"`
	Price   int64     `yaml:"price" json:"price"`
	Amount  int       `yaml:"amount" json:"amount"`
	Expires time.Time `yaml:"expires" json:"expires"`
}

type document struct {
	Listings []Listing `yaml:"listings"`
}

// Load reads and validates a catalogue file.
func Load(path string) ([]Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	listings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return listings, nil
}

// Parse decodes a catalogue document. Listings keep file order.
func Parse(data []byte) ([]Listing, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(doc.Listings))
	out := make([]Listing, 0, len(doc.Listings))
	for i, l := range doc.Listings {
		l.ID = strings.TrimSpace(l.ID)
		if l.ID == "" {
			return nil, fmt.Errorf("listing %d: %w: missing id", i, ErrInvalidListing)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("listing %q: %w: duplicate id", l.ID, ErrInvalidListing)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("listing %q: %w: negative price", l.ID, ErrInvalidListing)
		}
		if l.Amount <= 0 {
			l.Amount = 1
		}
		if l.Icon == "" {
			l.Icon = l.Item
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out, nil
}

// Marshal encodes listings in the catalogue file format.
func Marshal(listings []Listing) ([]byte, error) {
	return yaml.Marshal(document{Listings: listings})
}

// Remaining returns how long the listing stays up, never negative. A zero
// expiry never runs out.
func (l Listing) Remaining(now time.Time) time.Duration {
	if l.Expires.IsZero() {
		return -1
	}
	if d := l.Expires.Sub(now); d > 0 {
		return d
	}
	return 0
}
