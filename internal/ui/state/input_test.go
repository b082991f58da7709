package state

import (
	"reflect"
	"testing"

	"github.com/gomission/gomission/internal/action"
)

func TestInsertAndDeleteText(t *testing.T) {
	in := NewInput("")
	if !in.Insert("ab") {
		t.Fatal("expected insert to succeed")
	}
	if in.Value() != "ab" || in.CursorPos() != 2 {
		t.Fatalf("unexpected state %q/%d", in.Value(), in.CursorPos())
	}

	in.MoveRuneBackward()
	in.Insert("z")
	if in.Value() != "azb" {
		t.Fatalf("expected insert into middle, got %q", in.Value())
	}
	if in.CursorPos() != 2 {
		t.Fatalf("expected cursor 2 after insert, got %d", in.CursorPos())
	}

	if !in.DeleteRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if in.Value() != "ab" || in.CursorPos() != 1 {
		t.Fatalf("unexpected state after backspace %q/%d", in.Value(), in.CursorPos())
	}
	if !in.DeleteRuneForward() {
		t.Fatal("expected forward deletion to succeed")
	}
	if in.Value() != "a" {
		t.Fatalf("expected %q, got %q", "a", in.Value())
	}
	if in.DeleteRuneForward() {
		t.Fatal("expected no forward deletion at end")
	}
}

func TestDeleteWordBackward(t *testing.T) {
	in := NewInput("ubuntu server  iso")
	if !in.DeleteWordBackward() {
		t.Fatal("expected word deletion")
	}
	if in.Value() != "ubuntu server  " {
		t.Fatalf("unexpected value %q", in.Value())
	}
	in.DeleteWordBackward()
	if in.Value() != "ubuntu " {
		t.Fatalf("expected trailing space and word removed, got %q", in.Value())
	}
	in.MoveStart()
	if in.DeleteWordBackward() {
		t.Fatal("expected no deletion at start")
	}
}

func TestCaretMovement(t *testing.T) {
	in := NewInput("one two three")
	in.MoveStart()
	positions := []int{}
	for in.MoveWordForward() {
		positions = append(positions, in.CursorPos())
	}
	if !reflect.DeepEqual(positions, []int{4, 8, 13}) {
		t.Fatalf("unexpected word stops %v", positions)
	}
	positions = positions[:0]
	for in.MoveWordBackward() {
		positions = append(positions, in.CursorPos())
	}
	if !reflect.DeepEqual(positions, []int{8, 4, 0}) {
		t.Fatalf("unexpected backward word stops %v", positions)
	}
	if in.MoveRuneBackward() {
		t.Fatal("expected no movement before start")
	}
	in.MoveEnd()
	if in.MoveRuneForward() {
		t.Fatal("expected no movement past end")
	}
}

func TestApplyRoutesRequests(t *testing.T) {
	in := NewInput("")
	steps := []action.InputRequest{
		{Kind: action.InsertText, Text: "héllo"},
		{Kind: action.CaretStart},
		{Kind: action.DeleteNextChar},
		{Kind: action.CaretEnd},
		{Kind: action.DeletePrevChar},
	}
	for _, req := range steps {
		in.Apply(req)
	}
	if in.Value() != "éll" {
		t.Fatalf("expected %q, got %q", "éll", in.Value())
	}
	in.Reset()
	if in.Value() != "" || in.CursorPos() != 0 {
		t.Fatalf("expected reset buffer")
	}
}
