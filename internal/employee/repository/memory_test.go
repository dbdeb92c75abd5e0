package repository

import (
	"context"
	"testing"

	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &employee.Employee{EmployeeID: "1007", FirstName: "Ada"}))
	require.ErrorIs(t, r.Create(ctx, &employee.Employee{EmployeeID: "1007"}), ErrDuplicate)

	got, err := r.Get(ctx, "1007")
	require.NoError(t, err)
	require.Equal(t, "Ada", got.FirstName)
	require.NotNil(t, got.Todo)
	require.NotNil(t, got.Done)

	last := "Lovelace"
	upd, err := r.UpdateProfile(ctx, "1007", nil, &last)
	require.NoError(t, err)
	require.Equal(t, "Ada", upd.FirstName)
	require.Equal(t, "Lovelace", upd.LastName)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.Delete(ctx, "1007"))
	_, err = r.Get(ctx, "1007")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "1007"), ErrNotFound)
}

func TestMemoryRepoSaveTasksOverwrites(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &employee.Employee{EmployeeID: "e1"}))

	todo := []employee.Task{{ID: "b", Text: "B"}}
	done := []employee.Task{{ID: "a", Text: "A"}}
	saved, err := r.SaveTasks(ctx, "e1", todo, done)
	require.NoError(t, err)
	require.Equal(t, todo, saved.Todo)
	require.Equal(t, done, saved.Done)

	// the caller's slices are not retained
	todo[0].Text = "mutated"
	got, err := r.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, "B", got.Todo[0].Text)

	_, err = r.SaveTasks(ctx, "nobody", nil, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoGetReturnsCopy(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &employee.Employee{EmployeeID: "e1", Todo: []employee.Task{{ID: "a", Text: "A"}}}))

	got, err := r.Get(ctx, "e1")
	require.NoError(t, err)
	got.Todo = append(got.Todo, employee.Task{ID: "x"})

	again, err := r.Get(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, again.Todo, 1)
}
