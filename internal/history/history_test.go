package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// recorder tracks dispatcher invocations so tests can assert ordering.
type recorder struct {
	calls []string
	fail  bool
}

func (r *recorder) apply(_ context.Context, payload string, dir Direction) error {
	r.calls = append(r.calls, fmt.Sprintf("%s:%s", dir, payload))
	if r.fail {
		return errors.New("apply failed")
	}
	return nil
}

func TestStackBounds(t *testing.T) {
	t.Run("evicts oldest beyond limit", func(t *testing.T) {
		rec := &recorder{}
		s := New(3, rec.apply)

		for i := 0; i < 5; i++ {
			s.Add(fmt.Sprintf("cmd-%d", i), fmt.Sprintf("p-%d", i))
		}

		hist := s.History()
		if len(hist) != 3 {
			t.Fatalf("history length = %d, want 3", len(hist))
		}
		for i, want := range []string{"cmd-2", "cmd-3", "cmd-4"} {
			if hist[i].Name != want {
				t.Errorf("history[%d].Name = %q, want %q", i, hist[i].Name, want)
			}
		}
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		rec := &recorder{}
		s := New(0, rec.apply)

		for i := 0; i < DefaultLimit+5; i++ {
			s.Add("cmd", "p")
		}
		if got := len(s.History()); got != DefaultLimit {
			t.Errorf("history length = %d, want %d", got, DefaultLimit)
		}
	})
}

func TestStackUndoRedo(t *testing.T) {
	ctx := context.Background()

	t.Run("undo and redo are no-ops when empty", func(t *testing.T) {
		rec := &recorder{}
		s := New(10, rec.apply)

		if _, ok := s.Undo(ctx); ok {
			t.Error("Undo on empty stack reported ok")
		}
		if _, ok := s.Redo(ctx); ok {
			t.Error("Redo on empty stack reported ok")
		}
		if len(rec.calls) != 0 {
			t.Errorf("dispatcher invoked %d times, want 0", len(rec.calls))
		}
	})

	t.Run("undo pops newest first, redo replays oldest first", func(t *testing.T) {
		rec := &recorder{}
		s := New(10, rec.apply)
		s.Add("first", "a")
		s.Add("second", "b")

		if name, ok := s.Undo(ctx); !ok || name != "second" {
			t.Fatalf("Undo = (%q, %v), want (second, true)", name, ok)
		}
		if name, ok := s.Undo(ctx); !ok || name != "first" {
			t.Fatalf("Undo = (%q, %v), want (first, true)", name, ok)
		}
		if name, ok := s.Redo(ctx); !ok || name != "first" {
			t.Fatalf("Redo = (%q, %v), want (first, true)", name, ok)
		}
		if name, ok := s.Redo(ctx); !ok || name != "second" {
			t.Fatalf("Redo = (%q, %v), want (second, true)", name, ok)
		}

		want := []string{"undo:b", "undo:a", "redo:a", "redo:b"}
		if len(rec.calls) != len(want) {
			t.Fatalf("dispatcher calls = %v, want %v", rec.calls, want)
		}
		for i := range want {
			if rec.calls[i] != want[i] {
				t.Errorf("call %d = %q, want %q", i, rec.calls[i], want[i])
			}
		}
	})

	t.Run("add clears the redo branch", func(t *testing.T) {
		rec := &recorder{}
		s := New(10, rec.apply)
		s.Add("first", "a")
		s.Add("second", "b")
		s.Undo(ctx)

		if !s.CanRedo() {
			t.Fatal("expected CanRedo after undo")
		}
		s.Add("third", "c")
		if s.CanRedo() {
			t.Error("expected redo branch cleared after new command")
		}
	})

	t.Run("command ids and timestamps are assigned", func(t *testing.T) {
		rec := &recorder{}
		s := New(10, rec.apply)
		s.Add("cmd", "a")

		cmd := s.History()[0]
		if cmd.ID == "" {
			t.Error("expected command ID to be generated")
		}
		if cmd.Timestamp.IsZero() {
			t.Error("expected command timestamp to be set")
		}
	})
}

func TestStackErrorContainment(t *testing.T) {
	ctx := context.Background()

	// A failing dispatcher must not corrupt the stack: the command still
	// moves between past and future. Best-effort semantics, by contract.
	rec := &recorder{fail: true}
	s := New(10, rec.apply)
	s.Add("cmd", "a")

	if _, ok := s.Undo(ctx); !ok {
		t.Fatal("Undo reported nothing to undo")
	}
	if s.CanUndo() {
		t.Error("command still on past sequence after failed undo")
	}
	if !s.CanRedo() {
		t.Fatal("command did not move to future sequence after failed undo")
	}

	if _, ok := s.Redo(ctx); !ok {
		t.Fatal("Redo reported nothing to redo")
	}
	if !s.CanUndo() {
		t.Error("command did not move back to past sequence after failed redo")
	}
	if s.CanRedo() {
		t.Error("command still on future sequence after failed redo")
	}
}
