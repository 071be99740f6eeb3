package screens

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/gridmenu/internal/catalog"
	"github.com/atomicstack/gridmenu/internal/format/table"
	"github.com/atomicstack/gridmenu/internal/grid"
)

var (
	fillerCell  = grid.Cell{Icon: "pane", Name: " "}
	closeCell   = grid.Cell{Icon: "barrier", Name: "Close"}
	backCell    = grid.Cell{Icon: "arrow", Name: "Back", Lore: []string{"Return to the auction house"}}
	emptyCell   = grid.Cell{Icon: "cobweb", Name: "Nothing here", Lore: []string{"No listings match"}}
	soldCell    = grid.Cell{Icon: "barrier", Name: "Sold", Lore: []string{"This listing is gone"}}
	confirmCell = grid.Cell{Icon: "lime_wool", Name: "Confirm", Glow: true}
	cancelCell  = grid.Cell{Icon: "red_wool", Name: "Cancel"}
)

func listingCell(l catalog.Listing, now time.Time) grid.Cell {
	return grid.Cell{
		Icon:   l.Icon,
		Name:   l.Item,
		Amount: l.Amount,
		Lore: table.Pairs(
			[2]string{"Seller:", l.Seller},
			[2]string{"Price:", humanize.Comma(l.Price)},
			[2]string{"Ends in:", countdown(l, now)},
		),
	}
}

func countdown(l catalog.Listing, now time.Time) string {
	left := l.Remaining(now)
	switch {
	case left < 0:
		return "never"
	case left == 0:
		return "expired"
	}
	return left.Truncate(time.Second).String()
}

func pageCell(icon, name string, page, pages int) grid.Cell {
	return grid.Cell{
		Icon: icon,
		Name: name,
		Lore: []string{fmt.Sprintf("Page %d of %d", page+1, pages)},
	}
}

func summaryCell(count int, query string) grid.Cell {
	lore := []string{humanize.Comma(int64(count)) + " " + plural(count, "listing", "listings")}
	if query != "" {
		lore = append(lore, fmt.Sprintf("Filter: %q", query))
	}
	return grid.Cell{Icon: "gold_ingot", Name: "Auction House", Lore: lore, Glow: query != ""}
}

func promptCell(prompt string) grid.Cell {
	return grid.Cell{Icon: "paper", Name: prompt}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
