package screens

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/gridmenu/internal/catalog"
)

// filterListings keeps the listings whose item or seller fuzzily matches
// query, in their original order. A query without fuzzy matches falls back
// to a plain substring test.
func filterListings(listings []catalog.Listing, query string) []catalog.Listing {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return listings
	}
	labels := make([]string, len(listings))
	for i, l := range listings {
		labels[i] = l.Item + " " + l.Seller
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]catalog.Listing, 0, len(matches))
		for idx, l := range listings {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, l)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]catalog.Listing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.ID), lower) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
