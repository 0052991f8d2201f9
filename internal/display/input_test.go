package display

import (
	"fmt"
	"testing"
)

func TestAddInput_AppendsAndAdvancesCursor(t *testing.T) {
	s := newState(24)
	s.AddInput("ec")
	s.AddInput("ho ✓")

	if s.CurrentInput() != "echo ✓" {
		t.Fatalf("unexpected input %q", s.CurrentInput())
	}
	if s.Cursor() != 6 {
		t.Fatalf("cursor should count code points, got %d", s.Cursor())
	}
}

func TestHandleBackspace_RemovesWholeCodePoint(t *testing.T) {
	s := newState(24)
	s.AddInput("héllo→")

	s.HandleBackspace()
	if s.CurrentInput() != "héllo" {
		t.Fatalf("got %q", s.CurrentInput())
	}
	for i := 0; i < 4; i++ {
		s.HandleBackspace()
	}
	if s.CurrentInput() != "h" || s.Cursor() != 1 {
		t.Fatalf("got %q cursor %d", s.CurrentInput(), s.Cursor())
	}
	s.HandleBackspace()
	s.HandleBackspace()
	if s.CurrentInput() != "" || s.Cursor() != 0 {
		t.Fatalf("backspace on empty input should be a no-op, got %q cursor %d", s.CurrentInput(), s.Cursor())
	}
}

func TestCommitInput_EchoesAndRecordsHistory(t *testing.T) {
	s := newState(24)
	s.AddInput("ls -la")
	s.StartSelection(0, 0)

	got := s.CommitInput()

	if got != "ls -la" {
		t.Fatalf("CommitInput returned %q", got)
	}
	if s.CurrentInput() != "" || s.Cursor() != 0 {
		t.Fatalf("input not reset: %q cursor %d", s.CurrentInput(), s.Cursor())
	}
	if h := s.History(); len(h) != 1 || h[0] != "ls -la" {
		t.Fatalf("unexpected history %q", h)
	}
	if sb := s.Scrollback(); len(sb) != 1 || sb[0] != "$ ls -la" {
		t.Fatalf("unexpected echo %q", sb)
	}
	if s.HasSelection() {
		t.Fatalf("commit should clear selection")
	}
	if !s.Navigation().Live() {
		t.Fatalf("commit should return to live navigation")
	}
}

func TestCommitInput_EmptyDoesNotGrowHistory(t *testing.T) {
	s := newState(24)
	s.AddInput("pwd")
	s.CommitInput()

	s.CommitInput()

	if n := len(s.History()); n != 1 {
		t.Fatalf("expected history length 1, got %d", n)
	}
	if s.Cursor() != 0 {
		t.Fatalf("cursor should be reset")
	}
}

func TestCommitInput_EvictsOldestHistory(t *testing.T) {
	s := newState(24)
	for i := 0; i < MaxCommandHistory+5; i++ {
		s.AddInput(fmt.Sprintf("cmd%d", i))
		s.CommitInput()
	}

	h := s.History()
	if len(h) != MaxCommandHistory {
		t.Fatalf("expected %d entries, got %d", MaxCommandHistory, len(h))
	}
	if h[0] != "cmd5" {
		t.Fatalf("expected oldest entry cmd5, got %q", h[0])
	}
	if h[len(h)-1] != fmt.Sprintf("cmd%d", MaxCommandHistory+4) {
		t.Fatalf("unexpected newest entry %q", h[len(h)-1])
	}
}

func commitAll(s *State, cmds ...string) {
	for _, c := range cmds {
		s.AddInput(c)
		s.CommitInput()
	}
}

func TestHandleKeyUp_TraversesNewestToOldest(t *testing.T) {
	s := newState(24)
	commitAll(s, "first", "second", "third")

	want := []string{"third", "second", "first", "first"}
	for i, w := range want {
		s.HandleKeyUp()
		if s.CurrentInput() != w {
			t.Fatalf("step %d: got %q want %q", i, s.CurrentInput(), w)
		}
		if s.Cursor() != len([]rune(w)) {
			t.Fatalf("step %d: cursor %d not at end", i, s.Cursor())
		}
	}
	if idx, ok := s.Navigation().Index(); !ok || idx != 0 {
		t.Fatalf("expected Browsing(0), got %d %v", idx, ok)
	}

	// Editing the loaded entry must not touch history.
	s.AddInput("X")
	if h := s.History(); h[0] != "first" {
		t.Fatalf("stored entry mutated: %q", h[0])
	}
	if !s.Navigation().Live() {
		t.Fatalf("edit should leave browsing")
	}
}

func TestHandleKeyUp_EmptyHistoryIsNoop(t *testing.T) {
	s := newState(24)
	s.AddInput("draft")
	s.HandleKeyUp()

	if s.CurrentInput() != "draft" || !s.Navigation().Live() {
		t.Fatalf("unexpected state %q live=%v", s.CurrentInput(), s.Navigation().Live())
	}
}

func TestHandleKeyUp_ReplacesDraft(t *testing.T) {
	s := newState(24)
	commitAll(s, "make")
	s.AddInput("unfinished")

	s.HandleKeyUp()
	if s.CurrentInput() != "make" {
		t.Fatalf("draft should be replaced, got %q", s.CurrentInput())
	}
}

func TestHandleKeyDown_PastNewestReturnsToLive(t *testing.T) {
	s := newState(24)
	commitAll(s, "a", "b")

	s.HandleKeyUp()
	s.HandleKeyUp()
	s.HandleKeyDown()
	if s.CurrentInput() != "b" {
		t.Fatalf("expected b, got %q", s.CurrentInput())
	}
	s.HandleKeyDown()
	if s.CurrentInput() != "" || s.Cursor() != 0 {
		t.Fatalf("expected cleared input, got %q", s.CurrentInput())
	}
	if !s.Navigation().Live() {
		t.Fatalf("expected live navigation")
	}
}

func TestHandleKeyDown_LiveIsNoop(t *testing.T) {
	s := newState(24)
	commitAll(s, "a")
	s.AddInput("typing")

	s.HandleKeyDown()
	if s.CurrentInput() != "typing" {
		t.Fatalf("KeyDown while live changed input to %q", s.CurrentInput())
	}
}

func TestBackspace_LeavesBrowsing(t *testing.T) {
	s := newState(24)
	commitAll(s, "abc")
	s.HandleKeyUp()

	s.HandleBackspace()
	if s.CurrentInput() != "ab" {
		t.Fatalf("got %q", s.CurrentInput())
	}
	if !s.Navigation().Live() {
		t.Fatalf("backspace should leave browsing")
	}
	if h := s.History(); h[0] != "abc" {
		t.Fatalf("history mutated: %q", h[0])
	}
}

func TestRing_PushEvictsOldest(t *testing.T) {
	r := newRing[int](3)
	for i := 1; i <= 3; i++ {
		if r.Push(i) {
			t.Fatalf("unexpected eviction at %d", i)
		}
	}
	if !r.Push(4) {
		t.Fatalf("expected eviction when full")
	}
	if got := r.Slice(0, r.Len()); len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Fatalf("unexpected contents %v", got)
	}
	r.Clear()
	if r.Len() != 0 || r.Cap() != 3 {
		t.Fatalf("clear failed: len=%d cap=%d", r.Len(), r.Cap())
	}
}
