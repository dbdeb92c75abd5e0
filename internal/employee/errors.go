package employee

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Kind classifies an Error for the HTTP layer.
type Kind int

const (
	KindServer Kind = iota
	KindNotFound
	KindValidation
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	}
	return "server"
}

// Error is the typed outcome returned by the employee service.
// For KindNotFound, Resource is "employee" or "task" and the ids identify
// what failed to resolve.
type Error struct {
	Kind     Kind
	Resource string
	ID       string
	TaskID   string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		if e.Resource == "task" {
			return fmt.Sprintf("task %q not found for employee %q", e.TaskID, e.ID)
		}
		return fmt.Sprintf("employee %q not found", e.ID)
	case KindValidation:
		return "validation: " + e.Msg
	case KindStore:
		if e.Err != nil {
			return "store: " + e.Err.Error()
		}
		return "store error"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// EmployeeNotFound reports a missing employee document.
func EmployeeNotFound(id string) *Error {
	return &Error{Kind: KindNotFound, Resource: "employee", ID: id, Err: ErrEmployeeNotFound}
}

// TaskNotFound reports a task id absent from both lists of an employee.
func TaskNotFound(id, taskID string) *Error {
	return &Error{Kind: KindNotFound, Resource: "task", ID: id, TaskID: taskID, Err: ErrTaskNotFound}
}

// Invalid reports malformed input.
func Invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...), Err: ErrInvalidInput}
}

// StoreFailure wraps an error raised by the document store.
func StoreFailure(err error) *Error {
	return &Error{Kind: KindStore, Err: err}
}

// KindOf returns the Kind of err, or KindServer for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}
