package repository

import (
	"context"
	"errors"

	"github.com/nodebucket/nodebucket/internal/employee"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("employee already exists")
)

// Repository persists employee documents. Task lists are only ever written
// as a whole; there is no per-task update.
type Repository interface {
	Create(ctx context.Context, e *employee.Employee) error
	Get(ctx context.Context, employeeID string) (*employee.Employee, error)
	List(ctx context.Context) ([]*employee.Employee, error)
	UpdateProfile(ctx context.Context, employeeID string, firstName, lastName *string) (*employee.Employee, error)
	SaveTasks(ctx context.Context, employeeID string, todo, done []employee.Task) (*employee.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	Ping(ctx context.Context) error
}
