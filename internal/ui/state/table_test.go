package state

import (
	"math/rand"
	"testing"
)

func newTestTable(n int) *Table {
	t := NewTable()
	t.SetLength(n)
	return t
}

func TestSetLengthSelectsFirstRow(t *testing.T) {
	tbl := NewTable()
	if _, ok := tbl.Selected(); ok {
		t.Fatalf("expected no selection on empty table")
	}
	tbl.SetLength(3)
	if idx, ok := tbl.Selected(); !ok || idx != 0 {
		t.Fatalf("expected selection 0, got %d (ok=%v)", idx, ok)
	}
}

func TestSetLengthClampsSelection(t *testing.T) {
	tbl := newTestTable(5)
	tbl.Select(4)
	tbl.SetLength(2)
	if idx, _ := tbl.Selected(); idx != 1 {
		t.Fatalf("expected selection clamped to 1, got %d", idx)
	}
	tbl.SetLength(0)
	if _, ok := tbl.Selected(); ok {
		t.Fatalf("expected no selection after emptying")
	}
	if tbl.Cursor != -1 {
		t.Fatalf("expected cursor -1, got %d", tbl.Cursor)
	}
}

func TestNextPrevDoNotWrap(t *testing.T) {
	tbl := newTestTable(2)
	if tbl.Prev() {
		t.Fatalf("expected no movement above first row")
	}
	if !tbl.Next() {
		t.Fatalf("expected movement to second row")
	}
	if tbl.Next() {
		t.Fatalf("expected no movement past last row")
	}
	if idx, _ := tbl.Selected(); idx != 1 {
		t.Fatalf("expected selection 1, got %d", idx)
	}
}

func TestMoveCursorHomeEnd(t *testing.T) {
	tbl := newTestTable(3)
	if !tbl.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if tbl.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", tbl.Cursor)
	}
	if !tbl.MoveCursorHome() {
		t.Fatalf("expected movement home")
	}
	empty := newTestTable(0)
	if empty.MoveCursorHome() || empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty table")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	tbl := newTestTable(5)
	if !tbl.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if tbl.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", tbl.Cursor)
	}
	tbl.MoveCursorPageDown(2)
	if tbl.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !tbl.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if tbl.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", tbl.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	tbl := newTestTable(5)
	tbl.Select(4)
	tbl.EnsureCursorVisible(2)
	if tbl.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", tbl.ViewportOffset)
	}

	tbl.ViewportOffset = 4
	tbl.EnsureCursorVisible(0)
	if tbl.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", tbl.ViewportOffset)
	}

	tbl.ViewportOffset = 4
	tbl.Select(1)
	tbl.EnsureCursorVisible(3)
	if tbl.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", tbl.ViewportOffset)
	}
	start, end := tbl.Window(3)
	if start != 1 || end != 4 {
		t.Fatalf("expected window [1,4), got [%d,%d)", start, end)
	}
}

func TestSelectionStaysInRangeForRandomMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(6)
		tbl := newTestTable(n)
		for step := 0; step < 50; step++ {
			switch rng.Intn(7) {
			case 0:
				tbl.Next()
			case 1:
				tbl.Prev()
			case 2:
				tbl.MoveCursorPageDown(rng.Intn(4))
			case 3:
				tbl.MoveCursorPageUp(rng.Intn(4))
			case 4:
				tbl.MoveCursorEnd()
			case 5:
				tbl.MoveCursorHome()
			case 6:
				n = rng.Intn(6)
				tbl.SetLength(n)
			}
			idx, ok := tbl.Selected()
			if ok != (n > 0) {
				t.Fatalf("trial %d step %d: selection presence %v with %d rows", trial, step, ok, n)
			}
			if ok && (idx < 0 || idx >= n) {
				t.Fatalf("trial %d step %d: selection %d out of range [0,%d)", trial, step, idx, n)
			}
		}
	}
}
