package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
listings:
  - id: a1
    seller: alice
    item: Diamond Sword
    icon: diamond_sword
    price: 1500
    expires: 2026-01-01T12:00:00Z
  - id: b2
    seller: bob
    item: stone
    price: 3
    amount: 64
`

func TestParseKeepsOrderAndDefaults(t *testing.T) {
	listings, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(listings) != 2 || listings[0].ID != "a1" || listings[1].ID != "b2" {
		t.Fatalf("unexpected listings %#v", listings)
	}
	if listings[0].Amount != 1 {
		t.Fatalf("expected default amount 1, got %d", listings[0].Amount)
	}
	if listings[1].Icon != "stone" {
		t.Fatalf("expected icon to default to item, got %q", listings[1].Icon)
	}
	want := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if !listings[0].Expires.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, listings[0].Expires)
	}
}

func TestParseRejectsInvalidListings(t *testing.T) {
	cases := map[string]string{
		"missing id": "listings:\n  - item: x\n",
		"duplicate":  "listings:\n  - id: a\n  - id: a\n",
		"negative":   "listings:\n  - id: a\n    price: -1\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidListing) {
			t.Fatalf("%s: expected ErrInvalidListing, got %v", name, err)
		}
	}
	if _, err := Parse([]byte("listings: [")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadRoundTripsThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data, err := Marshal([]Listing{{ID: "x", Item: "apple", Amount: 2, Price: 10}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	listings, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(listings) != 1 || listings[0].Item != "apple" || listings[0].Amount != 2 {
		t.Fatalf("unexpected listings %#v", listings)
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := Listing{Expires: now.Add(90 * time.Second)}
	if got := l.Remaining(now); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	if got := l.Remaining(now.Add(time.Hour)); got != 0 {
		t.Fatalf("expected expired listing to report 0, got %v", got)
	}
	if got := (Listing{}).Remaining(now); got >= 0 {
		t.Fatalf("expected listing without expiry to report negative, got %v", got)
	}
}
