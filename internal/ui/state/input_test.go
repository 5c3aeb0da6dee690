package state

import "testing"

func TestInsertAndDeleteInputText(t *testing.T) {
	var in Input

	if !in.Insert("ab") {
		t.Fatal("expected insert to succeed")
	}
	if in.Text != "ab" || in.Cursor != 2 {
		t.Fatalf("unexpected input state %q/%d", in.Text, in.Cursor)
	}

	in.Cursor = 1
	if !in.Insert("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if in.Text != "azb" || in.Cursor != 2 {
		t.Fatalf("expected insert into middle, got %q/%d", in.Text, in.Cursor)
	}

	if !in.DeleteBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if in.Text != "ab" || in.Cursor != 1 {
		t.Fatalf("unexpected state after delete %q/%d", in.Text, in.Cursor)
	}

	in.SetEnd("abc def")
	if !in.DeleteWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if in.Text != "abc " {
		t.Fatalf("expected trailing word removed, got %q", in.Text)
	}

	in.Set("abc", 0)
	if in.DeleteBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if in.Insert("") {
		t.Fatal("expected empty insert to be ignored")
	}
}

func TestInputCursorNavigation(t *testing.T) {
	var in Input
	in.SetEnd("one two")

	if !in.MoveWordBackward() || in.Cursor != 4 {
		t.Fatalf("expected cursor at start of second word, got %d", in.Cursor)
	}
	if !in.MoveBackward() || in.Cursor != 3 {
		t.Fatalf("expected cursor 3, got %d", in.Cursor)
	}
	if !in.MoveWordForward() || in.Cursor != 4 {
		t.Fatalf("expected cursor 4 after word forward, got %d", in.Cursor)
	}
	if !in.MoveStart() || in.MoveStart() {
		t.Fatalf("expected exactly one move to start")
	}
	if !in.MoveForward() || in.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", in.Cursor)
	}
	if !in.MoveEnd() || in.Cursor != 7 {
		t.Fatalf("expected cursor at end, got %d", in.Cursor)
	}
	if in.MoveForward() {
		t.Fatalf("expected no movement past end")
	}
}

func TestInputIsRuneAware(t *testing.T) {
	var in Input
	in.SetEnd("日本")
	if in.Cursor != 2 {
		t.Fatalf("expected rune cursor 2, got %d", in.Cursor)
	}
	in.DeleteBackward()
	if in.Text != "日" {
		t.Fatalf("expected one rune removed, got %q", in.Text)
	}
}

func TestInputClear(t *testing.T) {
	var in Input
	if in.Clear() {
		t.Fatalf("expected clear of empty input to report no change")
	}
	in.SetEnd("abc")
	if !in.Clear() || in.Text != "" || in.Cursor != 0 {
		t.Fatalf("expected cleared input, got %q/%d", in.Text, in.Cursor)
	}
}
