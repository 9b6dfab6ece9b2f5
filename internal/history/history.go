// Package history implements a bounded, linear undo/redo stack.
//
// The stack is generic over an opaque command payload: it never inspects
// payload content, it only moves commands between the past and future
// sequences and hands payloads to the apply dispatcher supplied at
// construction. Keeping payloads as plain data rather than closures makes the
// whole history serializable and keeps all state mutation in one place, the
// owner's dispatcher.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the number of commands retained when no explicit limit is
// configured. Once exceeded, the oldest command is evicted and becomes
// permanently unrecoverable.
const DefaultLimit = 20

// Direction tells the apply dispatcher which way to replay a command.
type Direction int

const (
	// Backward reverts the command's effect (undo).
	Backward Direction = iota

	// Forward reapplies the command's effect (redo).
	Forward
)

func (d Direction) String() string {
	if d == Backward {
		return "undo"
	}
	return "redo"
}

// Command is one reversible unit of work. It is immutable once created;
// only its position in the stack changes.
type Command[T any] struct {
	// ID is the unique identifier for the command (UUID format).
	ID string

	// Name is a human-readable label used for history display.
	Name string

	// Timestamp records when the command was added.
	Timestamp time.Time

	// Payload carries everything the dispatcher needs to replay the command
	// in either direction.
	Payload T
}

// Stack maintains a bounded, linear history of reversible commands.
//
// Two ordered sequences back it: past holds applied commands oldest-first,
// future holds undone commands soonest-first. Adding a command always clears
// future: a new action invalidates any previously undone branch.
//
// Stack is not safe for concurrent use. All operations are expected to run on
// a single goroutine in response to discrete user actions.
type Stack[T any] struct {
	limit  int
	apply  func(ctx context.Context, payload T, dir Direction) error
	past   []Command[T]
	future []Command[T]
}

// New creates a stack retaining at most limit commands. The apply function is
// invoked on every Undo/Redo; Add never invokes it, since the owner applies
// the forward action itself before recording the command.
// A non-positive limit falls back to DefaultLimit.
func New[T any](limit int, apply func(ctx context.Context, payload T, dir Direction) error) *Stack[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack[T]{limit: limit, apply: apply}
}

// Add records an already-applied command. If the past sequence exceeds the
// limit the oldest command is evicted. The future sequence is cleared
// unconditionally.
func (s *Stack[T]) Add(name string, payload T) {
	cmd := Command[T]{
		ID:        uuid.New().String(),
		Name:      name,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	s.past = append(s.past, cmd)
	if len(s.past) > s.limit {
		s.past = s.past[len(s.past)-s.limit:]
	}
	s.future = s.future[:0]
}

// Undo reverts the most recent command. It reports the command name and
// whether anything was undone.
//
// A dispatcher error is logged and the command still moves to the future
// sequence: the stack cannot know whether the effect partially applied, so it
// favors consistent bookkeeping over transactional rollback. This is a known
// limitation, kept deliberately.
func (s *Stack[T]) Undo(ctx context.Context) (string, bool) {
	if len(s.past) == 0 {
		return "", false
	}

	cmd := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]

	slog.Debug("undoing command", "name", cmd.Name, "id", cmd.ID)
	if err := s.apply(ctx, cmd.Payload, Backward); err != nil {
		slog.Error("undo failed", "name", cmd.Name, "id", cmd.ID, "error", err)
	}

	s.future = append([]Command[T]{cmd}, s.future...)
	return cmd.Name, true
}

// Redo reapplies the most recently undone command. It reports the command
// name and whether anything was redone. Dispatcher errors get the same
// containment as in Undo.
func (s *Stack[T]) Redo(ctx context.Context) (string, bool) {
	if len(s.future) == 0 {
		return "", false
	}

	cmd := s.future[0]
	s.future = s.future[1:]

	slog.Debug("redoing command", "name", cmd.Name, "id", cmd.ID)
	if err := s.apply(ctx, cmd.Payload, Forward); err != nil {
		slog.Error("redo failed", "name", cmd.Name, "id", cmd.ID, "error", err)
	}

	s.past = append(s.past, cmd)
	return cmd.Name, true
}

// CanUndo reports whether any applied command remains.
func (s *Stack[T]) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether any undone command remains.
func (s *Stack[T]) CanRedo() bool { return len(s.future) > 0 }

// History returns a copy of the applied commands, oldest first.
func (s *Stack[T]) History() []Command[T] {
	out := make([]Command[T], len(s.past))
	copy(out, s.past)
	return out
}
