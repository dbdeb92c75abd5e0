// Package seed loads employees from a YAML file into the task service.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Entry is one employee in a seed file. Tasks listed under todo and done
// get fresh ids when applied.
type Entry struct {
	EmployeeID string   `yaml:"employeeId"`
	FirstName  string   `yaml:"firstName"`
	LastName   string   `yaml:"lastName"`
	Todo       []string `yaml:"todo"`
	Done       []string `yaml:"done"`
}

type file struct {
	Employees []Entry `yaml:"employees"`
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

// Load parses a seed document.
func Load(r io.Reader) ([]Entry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	seen := make(map[string]bool, len(f.Employees))
	for i, e := range f.Employees {
		if e.EmployeeID == "" {
			return nil, fmt.Errorf("entry %d: employeeId is required", i)
		}
		if seen[e.EmployeeID] {
			return nil, fmt.Errorf("entry %d: duplicate employeeId %q", i, e.EmployeeID)
		}
		seen[e.EmployeeID] = true
	}
	return f.Employees, nil
}

// Apply creates every entry that does not exist yet. Existing employees are
// left untouched.
func Apply(ctx context.Context, svc service.Service, entries []Entry) (Result, error) {
	var res Result
	for _, en := range entries {
		_, err := svc.FindEmployee(ctx, en.EmployeeID)
		if err == nil {
			logger.Debugf("seed: employee %s exists, skipping", en.EmployeeID)
			res.Skipped++
			continue
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return res, err
		}
		if _, err := svc.CreateEmployee(ctx, &employee.Employee{
			EmployeeID: en.EmployeeID,
			FirstName:  en.FirstName,
			LastName:   en.LastName,
		}); err != nil {
			return res, fmt.Errorf("create %s: %w", en.EmployeeID, err)
		}
		if err := addTasks(ctx, svc, en); err != nil {
			// drop the partial employee so the next run starts it over
			if derr := svc.DeleteEmployee(ctx, en.EmployeeID); derr != nil {
				logger.Errorf("seed: could not remove partial employee %s: %v", en.EmployeeID, derr)
			}
			return res, err
		}
		res.Created++
	}
	return res, nil
}

func addTasks(ctx context.Context, svc service.Service, en Entry) error {
	for _, text := range en.Todo {
		if _, err := svc.AddTask(ctx, en.EmployeeID, text); err != nil {
			return fmt.Errorf("add task to %s: %w", en.EmployeeID, err)
		}
	}
	if len(en.Done) > 0 {
		return markDone(ctx, svc, en)
	}
	return nil
}

// markDone adds the done texts through todo so they get ids, then moves them
// across in one replace.
func markDone(ctx context.Context, svc service.Service, en Entry) error {
	var last *employee.Employee
	for _, text := range en.Done {
		e, err := svc.AddTask(ctx, en.EmployeeID, text)
		if err != nil {
			return fmt.Errorf("add task to %s: %w", en.EmployeeID, err)
		}
		last = e
	}
	split := len(last.Todo) - len(en.Done)
	todo := append([]employee.Task{}, last.Todo[:split]...)
	done := append([]employee.Task{}, last.Todo[split:]...)
	if _, err := svc.ReplaceTaskLists(ctx, en.EmployeeID, todo, done); err != nil {
		return fmt.Errorf("replace lists of %s: %w", en.EmployeeID, err)
	}
	return nil
}
