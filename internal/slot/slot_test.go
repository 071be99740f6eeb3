package slot

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseStarCoversWholeGrid(t *testing.T) {
	for rows := 1; rows <= 6; rows++ {
		set, err := Parse("*", rows)
		if err != nil {
			t.Fatalf("rows=%d: unexpected error: %v", rows, err)
		}
		if len(set) != rows*Columns {
			t.Fatalf("rows=%d: expected %d slots, got %d", rows, rows*Columns, len(set))
		}
		sorted := set.Sorted()
		for i, slot := range sorted {
			if slot != i {
				t.Fatalf("rows=%d: expected slot %d at %d, got %d", rows, i, i, slot)
			}
		}
	}
}

func TestParseRangeExcludesGridBoundaries(t *testing.T) {
	set, err := Parse("0-8", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7}
	if got := set.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	single, err := Parse("0", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := single.Sorted(); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("expected bare 0 to be kept, got %v", got)
	}

	last, err := Parse("8", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !last.Has(8) {
		t.Fatalf("expected bare last slot to be kept")
	}
}

func TestParseMixedTokens(t *testing.T) {
	set, err := Parse(" 10-16 , 4,22-23", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{4, 10, 11, 12, 13, 14, 15, 16, 22, 23}
	if got := set.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	exprs := []string{"*", "0", "1-7", "0-53,45", "9-17,27-35"}
	for _, expr := range exprs {
		first, err := Parse(expr, 6)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", expr, err)
		}
		second, err := Parse(expr, 6)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", expr, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%q: parse results differ: %v vs %v", expr, first.Sorted(), second.Sorted())
		}
	}
}

func TestParseRejectsMalformedTokens(t *testing.T) {
	for _, expr := range []string{"", "a", "1-", "-", "3-1", "1-b", "1,,2", "**"} {
		if _, err := Parse(expr, 3); !errors.Is(err, ErrInvalidExpression) {
			t.Fatalf("%q: expected ErrInvalidExpression, got %v", expr, err)
		}
	}
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustParse("nope", 1)
}
