package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/nodebucket/nodebucket/internal/employee"
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the server without MongoDB. The mutex only guards the map; callers still
// get last-writer-wins semantics across a read-modify-write.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*employee.Employee
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*employee.Employee)}
}

func (m *MemoryRepo) Create(ctx context.Context, e *employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[e.EmployeeID]; ok {
		return ErrDuplicate
	}
	m.store[e.EmployeeID] = e.Clone()
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, employeeID string) (*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.store[employeeID]; ok {
		return e.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context) ([]*employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*employee.Employee, 0, len(m.store))
	for _, e := range m.store {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (m *MemoryRepo) UpdateProfile(ctx context.Context, employeeID string, firstName, lastName *string) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	if firstName != nil {
		e.FirstName = *firstName
	}
	if lastName != nil {
		e.LastName = *lastName
	}
	return e.Clone(), nil
}

func (m *MemoryRepo) SaveTasks(ctx context.Context, employeeID string, todo, done []employee.Task) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[employeeID]
	if !ok {
		return nil, ErrNotFound
	}
	e.Todo = append([]employee.Task{}, todo...)
	e.Done = append([]employee.Task{}, done...)
	return e.Clone(), nil
}

func (m *MemoryRepo) Delete(ctx context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[employeeID]; !ok {
		return ErrNotFound
	}
	delete(m.store, employeeID)
	return nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }
