package state

import "testing"

func TestMoveCursorHome(t *testing.T) {
	c := NewCursor(3)
	c.Slot = 20
	if !c.MoveCursorHome() {
		t.Fatalf("expected move when not at home")
	}
	if c.Slot != 0 {
		t.Fatalf("expected cursor 0, got %d", c.Slot)
	}
	if c.MoveCursorHome() {
		t.Fatalf("expected no movement when already home")
	}
}

func TestMoveCursorEnd(t *testing.T) {
	c := NewCursor(2)
	if !c.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if c.Slot != 17 {
		t.Fatalf("expected cursor 17, got %d", c.Slot)
	}

	empty := NewCursor(0)
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty grid")
	}
	if empty.Slot != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Slot)
	}
}

func TestMoveStopsAtEdges(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		dRow, dCol int
		want       int
		moved      bool
	}{
		{"right", 0, 0, 1, 1, true},
		{"down", 4, 1, 0, 13, true},
		{"left edge", 9, 0, -1, 9, false},
		{"right edge", 8, 0, 1, 8, false},
		{"top edge", 3, -1, 0, 3, false},
		{"bottom edge", 22, 1, 0, 22, false},
		{"diagonal clamp", 10, 5, 5, 26, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{Slot: tt.start, Rows: 3}
			moved := c.Move(tt.dRow, tt.dCol)
			if moved != tt.moved || c.Slot != tt.want {
				t.Fatalf("Move(%d,%d) from %d = %d (moved %v), want %d (moved %v)",
					tt.dRow, tt.dCol, tt.start, c.Slot, moved, tt.want, tt.moved)
			}
		})
	}
}

func TestResizeClampsCursor(t *testing.T) {
	c := Cursor{Slot: 50, Rows: 6}
	if !c.Resize(1) {
		t.Fatalf("expected resize to move the cursor")
	}
	if c.Slot != 8 {
		t.Fatalf("expected cursor 8, got %d", c.Slot)
	}
	if c.Resize(6) {
		t.Fatalf("expected growing to keep the cursor")
	}
	if c.Row() != 0 || c.Col() != 8 {
		t.Fatalf("unexpected row/col %d/%d", c.Row(), c.Col())
	}
}
