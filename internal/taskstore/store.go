package taskstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/nodebucket/nodebucket/internal/employee"
)

// Store holds the signed-in employee's todo and done lists and keeps them
// in step with the server. After every successful call the local lists are
// replaced by what the server returned.
type Store struct {
	api        API
	employeeID string

	mu   sync.Mutex
	todo []employee.Task
	done []employee.Task
}

func New(api API, employeeID string) *Store {
	return &Store{api: api, employeeID: employeeID, todo: []employee.Task{}, done: []employee.Task{}}
}

func (s *Store) EmployeeID() string { return s.employeeID }

// Todo returns a copy of the local todo list.
func (s *Store) Todo() []employee.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]employee.Task{}, s.todo...)
}

// Done returns a copy of the local done list.
func (s *Store) Done() []employee.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]employee.Task{}, s.done...)
}

func (s *Store) set(todo, done []employee.Task) {
	s.todo = append([]employee.Task{}, todo...)
	s.done = append([]employee.Task{}, done...)
}

// Load fetches both lists from the server.
func (s *Store) Load(ctx context.Context) error {
	lists, err := s.api.GetTasks(ctx, s.employeeID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.set(lists.Todo, lists.Done)
	s.mu.Unlock()
	return nil
}

// Add creates a task; the server appends it to todo.
func (s *Store) Add(ctx context.Context, text string) error {
	e, err := s.api.AddTask(ctx, s.employeeID, text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.set(e.Todo, e.Done)
	s.mu.Unlock()
	return nil
}

// Delete removes a task from whichever list holds it.
func (s *Store) Delete(ctx context.Context, taskID string) error {
	e, err := s.api.DeleteTask(ctx, s.employeeID, taskID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.set(e.Todo, e.Done)
	s.mu.Unlock()
	return nil
}

// Drop applies a drag-and-drop locally, then sends both full lists to the
// server. The server does no diffing, so the local order is authoritative
// at the moment of the call. If the call fails the previous lists are
// restored.
func (s *Store) Drop(ctx context.Context, ev DropEvent) error {
	s.mu.Lock()
	prevTodo, prevDone := s.todo, s.done
	todo := append([]employee.Task{}, s.todo...)
	done := append([]employee.Task{}, s.done...)

	switch {
	case ev.From == ev.To && ev.From == Todo:
		MoveItem(todo, ev.FromIndex, ev.ToIndex)
	case ev.From == ev.To && ev.From == Done:
		MoveItem(done, ev.FromIndex, ev.ToIndex)
	case ev.From == Todo && ev.To == Done:
		todo, done = TransferItem(todo, done, ev.FromIndex, ev.ToIndex)
	case ev.From == Done && ev.To == Todo:
		done, todo = TransferItem(done, todo, ev.FromIndex, ev.ToIndex)
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown drop %q -> %q", ev.From, ev.To)
	}
	s.todo, s.done = todo, done
	s.mu.Unlock()

	e, err := s.api.ReplaceTaskLists(ctx, s.employeeID, todo, done)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.todo, s.done = prevTodo, prevDone
		return err
	}
	s.set(e.Todo, e.Done)
	return nil
}
