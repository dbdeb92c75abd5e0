package employee

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	require.Equal(t, KindNotFound, KindOf(EmployeeNotFound("e1")))
	require.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", TaskNotFound("e1", "t1"))))
	require.Equal(t, KindValidation, KindOf(Invalid("text is empty")))
	require.Equal(t, KindStore, KindOf(StoreFailure(errors.New("connection refused"))))
	require.Equal(t, KindServer, KindOf(errors.New("boom")))
}

func TestNotFoundIsDistinguishable(t *testing.T) {
	emp := EmployeeNotFound("e1")
	task := TaskNotFound("e1", "t1")

	require.ErrorIs(t, emp, ErrEmployeeNotFound)
	require.NotErrorIs(t, emp, ErrTaskNotFound)
	require.ErrorIs(t, task, ErrTaskNotFound)
	require.NotErrorIs(t, task, ErrEmployeeNotFound)
	require.Contains(t, task.Error(), "t1")
	require.Contains(t, emp.Error(), "e1")
}

func TestStoreFailureUnwraps(t *testing.T) {
	cause := errors.New("socket closed")
	err := StoreFailure(cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "store: socket closed", err.Error())
}

func TestEmployeeRemoveTask(t *testing.T) {
	e := &Employee{
		EmployeeID: "e1",
		Todo:       []Task{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		Done:       []Task{{ID: "c", Text: "C"}},
	}
	require.True(t, e.RemoveTask("c"))
	require.Empty(t, e.Done)
	require.True(t, e.RemoveTask("a"))
	require.Equal(t, []Task{{ID: "b", Text: "B"}}, e.Todo)
	require.False(t, e.RemoveTask("missing"))
}

func TestEmployeeCloneIsIndependent(t *testing.T) {
	e := &Employee{EmployeeID: "e1", Todo: []Task{{ID: "a", Text: "A"}}}
	c := e.Clone()
	c.Todo[0].Text = "changed"
	require.Equal(t, "A", e.Todo[0].Text)
	require.NotNil(t, c.Done)
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Ada Lovelace", (&Employee{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	require.Equal(t, "Ada", (&Employee{FirstName: "Ada"}).FullName())
	require.Equal(t, "Lovelace", (&Employee{LastName: "Lovelace"}).FullName())
}
