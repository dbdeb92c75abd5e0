package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
employees:
  - employeeId: "1007"
    firstName: Grace
    lastName: Hopper
    todo: [write report, review PR]
    done: [file expenses]
  - employeeId: "1008"
    firstName: Alan
`

func TestLoad(t *testing.T) {
	entries, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1007", entries[0].EmployeeID)
	assert.Equal(t, []string{"write report", "review PR"}, entries[0].Todo)
	assert.Equal(t, []string{"file expenses"}, entries[0].Done)
}

func TestLoad_Empty(t *testing.T) {
	entries, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing id":    "employees:\n  - firstName: x\n",
		"duplicate id":  "employees:\n  - employeeId: a\n  - employeeId: a\n",
		"unknown field": "employees:\n  - employeeId: a\n    email: a@b\n",
		"bad yaml":      "employees: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	svc := service.NewMemoryService()
	_, err := svc.CreateEmployee(ctx, &employee.Employee{EmployeeID: "1008", FirstName: "Existing"})
	require.NoError(t, err)

	entries, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	res, err := Apply(ctx, svc, entries)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Skipped: 1}, res)

	lists, err := svc.GetTasks(ctx, "1007")
	require.NoError(t, err)
	require.Len(t, lists.Todo, 2)
	assert.Equal(t, "write report", lists.Todo[0].Text)
	assert.Equal(t, "review PR", lists.Todo[1].Text)
	require.Len(t, lists.Done, 1)
	assert.Equal(t, "file expenses", lists.Done[0].Text)
	assert.NotEmpty(t, lists.Done[0].ID)

	e, err := svc.FindEmployee(ctx, "1008")
	require.NoError(t, err)
	assert.Equal(t, "Existing", e.FirstName)

	res, err = Apply(ctx, svc, entries)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, res)
}

type flakyService struct {
	service.Service
	failOn string
}

func (f flakyService) AddTask(ctx context.Context, employeeID, text string) (*employee.Employee, error) {
	if text == f.failOn {
		return nil, errors.New("connection reset")
	}
	return f.Service.AddTask(ctx, employeeID, text)
}

func TestApply_FailedTasksRemoveEmployee(t *testing.T) {
	ctx := context.Background()
	svc := flakyService{Service: service.NewMemoryService(), failOn: "review PR"}

	entries, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	_, err = Apply(ctx, svc, entries)
	require.Error(t, err)
	_, err = svc.FindEmployee(ctx, "1007")
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	svc.failOn = ""
	res, err := Apply(ctx, svc, entries)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2}, res)
	lists, err := svc.GetTasks(ctx, "1007")
	require.NoError(t, err)
	assert.Len(t, lists.Todo, 2)
	assert.Len(t, lists.Done, 1)
}
