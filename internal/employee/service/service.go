package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/internal/employee/repository"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"github.com/nodebucket/nodebucket/pkg/metrics"
)

// DefaultMaxTextLength bounds task text when no option overrides it.
const DefaultMaxTextLength = 255

var (
	employeeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	numericIDPattern  = regexp.MustCompile(`^[0-9]{1,64}$`)
)

// Service defines the employee and task-list operations used by the
// handler layer. Every failure is an *employee.Error.
type Service interface {
	FindEmployee(ctx context.Context, employeeID string) (*employee.Employee, error)
	ListEmployees(ctx context.Context) ([]*employee.Employee, error)
	CreateEmployee(ctx context.Context, e *employee.Employee) (*employee.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, firstName, lastName *string) (*employee.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error

	GetTasks(ctx context.Context, employeeID string) (*employee.TaskLists, error)
	AddTask(ctx context.Context, employeeID, text string) (*employee.Employee, error)
	ReplaceTaskLists(ctx context.Context, employeeID string, todo, done []employee.Task) (*employee.Employee, error)
	DeleteTask(ctx context.Context, employeeID, taskID string) (*employee.Employee, error)

	ValidateEmployeeID(employeeID string) error
	Ping(ctx context.Context) error
}

// Archiver keeps a copy of an employee document before it is deleted.
type Archiver interface {
	ArchiveEmployee(ctx context.Context, e *employee.Employee) error
}

type Option func(*taskService)

// WithMaxTextLength sets the maximum task text length in runes.
func WithMaxTextLength(n int) Option {
	return func(s *taskService) {
		if n > 0 {
			s.maxTextLength = n
		}
	}
}

// WithNumericIDs restricts employee ids to digits only.
func WithNumericIDs(numeric bool) Option {
	return func(s *taskService) { s.numericIDs = numeric }
}

func WithArchiver(a Archiver) Option {
	return func(s *taskService) { s.archiver = a }
}

// WithIDGenerator replaces the task id generator (uuid v4 by default).
func WithIDGenerator(gen func() string) Option {
	return func(s *taskService) { s.newID = gen }
}

// New returns a Service backed by repo.
func New(repo repository.Repository, opts ...Option) Service {
	s := &taskService{
		repo:          repo,
		maxTextLength: DefaultMaxTextLength,
		newID:         uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(opts ...Option) Service {
	return New(repository.NewMemoryRepo(), opts...)
}

type taskService struct {
	repo          repository.Repository
	archiver      Archiver
	maxTextLength int
	numericIDs    bool
	newID         func() string
}

func (s *taskService) ValidateEmployeeID(employeeID string) error {
	if employeeID == "" {
		return employee.Invalid("employeeId is required")
	}
	if s.numericIDs {
		if !numericIDPattern.MatchString(employeeID) {
			return employee.Invalid("employeeId %q must be numeric", employeeID)
		}
		return nil
	}
	if !employeeIDPattern.MatchString(employeeID) {
		return employee.Invalid("employeeId %q is malformed", employeeID)
	}
	return nil
}

func (s *taskService) FindEmployee(ctx context.Context, employeeID string) (e *employee.Employee, err error) {
	defer observe("find_employee", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	return s.load(ctx, employeeID)
}

func (s *taskService) ListEmployees(ctx context.Context) (list []*employee.Employee, err error) {
	defer observe("list_employees", &err)
	list, err = s.repo.List(ctx)
	if err != nil {
		return nil, s.storeErr("list employees", err)
	}
	return list, nil
}

func (s *taskService) CreateEmployee(ctx context.Context, e *employee.Employee) (out *employee.Employee, err error) {
	defer observe("create_employee", &err)
	if e == nil {
		return nil, employee.Invalid("employee is required")
	}
	if err = s.ValidateEmployeeID(e.EmployeeID); err != nil {
		return nil, err
	}
	// a new employee always starts with empty lists
	rec := &employee.Employee{
		EmployeeID: e.EmployeeID,
		FirstName:  strings.TrimSpace(e.FirstName),
		LastName:   strings.TrimSpace(e.LastName),
		Todo:       []employee.Task{},
		Done:       []employee.Task{},
	}
	if err = s.repo.Create(ctx, rec); err != nil {
		return nil, s.storeErr("create employee", err)
	}
	logger.Infof("employee %s created", rec.EmployeeID)
	return rec, nil
}

func (s *taskService) UpdateEmployee(ctx context.Context, employeeID string, firstName, lastName *string) (out *employee.Employee, err error) {
	defer observe("update_employee", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	out, err = s.repo.UpdateProfile(ctx, employeeID, trimPtr(firstName), trimPtr(lastName))
	if err != nil {
		return nil, s.mapRepoErr(employeeID, "update employee", err)
	}
	return out, nil
}

func (s *taskService) DeleteEmployee(ctx context.Context, employeeID string) (err error) {
	defer observe("delete_employee", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return err
	}
	e, err := s.load(ctx, employeeID)
	if err != nil {
		return err
	}
	if s.archiver != nil {
		if aerr := s.archiver.ArchiveEmployee(ctx, e); aerr != nil {
			return s.storeErr("archive employee", aerr)
		}
	}
	if derr := s.repo.Delete(ctx, employeeID); derr != nil {
		return s.mapRepoErr(employeeID, "delete employee", derr)
	}
	logger.Infof("employee %s deleted", employeeID)
	return nil
}

func (s *taskService) GetTasks(ctx context.Context, employeeID string) (lists *employee.TaskLists, err error) {
	defer observe("get_tasks", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	e, err := s.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return e.Lists(), nil
}

func (s *taskService) AddTask(ctx context.Context, employeeID, text string) (out *employee.Employee, err error) {
	defer observe("add_task", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	// stored as entered; whitespace only counts as empty
	if strings.TrimSpace(text) == "" {
		return nil, employee.Invalid("task text is required")
	}
	if n := utf8.RuneCountInString(text); n > s.maxTextLength {
		return nil, employee.Invalid("task text is %d characters, maximum is %d", n, s.maxTextLength)
	}

	e, err := s.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	e.Todo = append(e.Todo, employee.Task{ID: s.newID(), Text: text})
	return s.save(ctx, e, "add task")
}

// ReplaceTaskLists overwrites both lists with exactly what the client sent.
// Concurrent writers are not reconciled: the last save wins.
func (s *taskService) ReplaceTaskLists(ctx context.Context, employeeID string, todo, done []employee.Task) (out *employee.Employee, err error) {
	defer observe("replace_tasks", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	e, err := s.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	e.Todo = append([]employee.Task{}, todo...)
	e.Done = append([]employee.Task{}, done...)
	return s.save(ctx, e, "replace tasks")
}

func (s *taskService) DeleteTask(ctx context.Context, employeeID, taskID string) (out *employee.Employee, err error) {
	defer observe("delete_task", &err)
	if err = s.ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(taskID) == "" {
		return nil, employee.Invalid("taskId is required")
	}
	e, err := s.load(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !e.RemoveTask(taskID) {
		return nil, employee.TaskNotFound(employeeID, taskID)
	}
	return s.save(ctx, e, "delete task")
}

func (s *taskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *taskService) load(ctx context.Context, employeeID string) (*employee.Employee, error) {
	e, err := s.repo.Get(ctx, employeeID)
	if err != nil {
		return nil, s.mapRepoErr(employeeID, "load employee", err)
	}
	return e, nil
}

func (s *taskService) save(ctx context.Context, e *employee.Employee, op string) (*employee.Employee, error) {
	out, err := s.repo.SaveTasks(ctx, e.EmployeeID, e.Todo, e.Done)
	if err != nil {
		return nil, s.mapRepoErr(e.EmployeeID, op, err)
	}
	return out, nil
}

func (s *taskService) mapRepoErr(employeeID, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return employee.EmployeeNotFound(employeeID)
	}
	return s.storeErr(op, err)
}

func (s *taskService) storeErr(op string, err error) error {
	logger.Errorf("%s: %v", op, err)
	return employee.StoreFailure(err)
}

func observe(op string, err *error) {
	outcome := "ok"
	if *err != nil {
		outcome = employee.KindOf(*err).String()
	}
	metrics.TaskOperations.WithLabelValues(op, outcome).Inc()
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
