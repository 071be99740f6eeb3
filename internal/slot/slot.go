package slot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Columns is the fixed width of every grid.
const Columns = 9

// ErrInvalidExpression reports a token that is neither "*", an integer, nor
// an "A-B" range.
var ErrInvalidExpression = errors.New("invalid slot expression")

// Set is an unordered collection of cell indices.
type Set map[int]struct{}

// Has reports whether the slot is a member of the set.
func (s Set) Has(slot int) bool {
	_, ok := s[slot]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for slot := range s {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}

// Parse expands a comma separated slot expression for a grid of the given
// height. Range tokens never yield the first or the last slot of the grid;
// bare integers and "*" do.
func Parse(expr string, rows int) (Set, error) {
	size := rows * Columns
	set := make(Set)
	for _, raw := range strings.Split(expr, ",") {
		token := strings.TrimSpace(raw)
		if token == "*" {
			for i := 0; i < size; i++ {
				set[i] = struct{}{}
			}
			continue
		}
		if n, err := strconv.Atoi(token); err == nil {
			set[n] = struct{}{}
			continue
		}
		from, to, err := parseRange(token)
		if err != nil {
			return nil, err
		}
		for i := from; i <= to; i++ {
			if i == 0 || i == size-1 {
				continue
			}
			set[i] = struct{}{}
		}
	}
	return set, nil
}

// MustParse is Parse for package level literals.
func MustParse(expr string, rows int) Set {
	set, err := Parse(expr, rows)
	if err != nil {
		panic(err)
	}
	return set
}

func parseRange(token string) (int, int, error) {
	left, right, ok := strings.Cut(token, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpression, token)
	}
	from, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpression, token)
	}
	to, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExpression, token)
	}
	if from > to {
		return 0, 0, fmt.Errorf("%w: %q (start after end)", ErrInvalidExpression, token)
	}
	return from, to, nil
}
