package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/internal/employee/repository"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	HTTPCode  int             `json:"httpCode"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func setup(t *testing.T) (*gin.Engine, service.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := service.NewMemoryService()
	_, err := svc.CreateEmployee(context.Background(), &employee.Employee{EmployeeID: "E1", FirstName: "Ada"})
	require.NoError(t, err)
	RegisterEmployeeRoutes(g, svc)
	return g, svc
}

func do(t *testing.T, g *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.Equal(t, w.Code, env.HTTPCode)
	require.NotEmpty(t, env.Timestamp)
	return w, env
}

func decodeEmployee(t *testing.T, env envelope) employee.Employee {
	t.Helper()
	var e employee.Employee
	require.NoError(t, json.Unmarshal(env.Data, &e))
	return e
}

func TestTaskEndpoints_Scenario(t *testing.T) {
	g, _ := setup(t)

	w, env := do(t, g, http.MethodPost, "/api/employees/E1/tasks", `{"text":"A"}`)
	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEmployee(t, env)
	require.Len(t, e.Todo, 1)
	a := e.Todo[0]

	_, env = do(t, g, http.MethodPost, "/api/employees/E1/tasks", `{"text":"B"}`)
	e = decodeEmployee(t, env)
	require.Len(t, e.Todo, 2)
	b := e.Todo[1]
	require.Equal(t, "B", b.Text)

	body, err := json.Marshal(gin.H{"todo": []employee.Task{b}, "done": []employee.Task{a}})
	require.NoError(t, err)
	w, env = do(t, g, http.MethodPut, "/api/employees/E1/tasks", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	e = decodeEmployee(t, env)
	require.Equal(t, []employee.Task{b}, e.Todo)
	require.Equal(t, []employee.Task{a}, e.Done)

	w, env = do(t, g, http.MethodDelete, "/api/employees/E1/tasks/"+a.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	e = decodeEmployee(t, env)
	require.Equal(t, []employee.Task{b}, e.Todo)
	require.Empty(t, e.Done)

	w, env = do(t, g, http.MethodGet, "/api/employees/E1/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var lists employee.TaskLists
	require.NoError(t, json.Unmarshal(env.Data, &lists))
	require.Equal(t, "E1", lists.EmployeeID)
	require.Equal(t, []employee.Task{b}, lists.Todo)
	require.Empty(t, lists.Done)
}

func TestTaskEndpoints_NotFoundIsDistinguishable(t *testing.T) {
	g, _ := setup(t)

	w, env := do(t, g, http.MethodDelete, "/api/employees/E1/tasks/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "task_not_found", data["error"])
	require.Equal(t, "nope", data["taskId"])

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/employees/does-not-exist", ""},
		{http.MethodGet, "/api/employees/does-not-exist/tasks", ""},
		{http.MethodPost, "/api/employees/does-not-exist/tasks", `{"text":"x"}`},
		{http.MethodPut, "/api/employees/does-not-exist/tasks", `{"todo":[],"done":[]}`},
		{http.MethodDelete, "/api/employees/does-not-exist/tasks/t1", ""},
	} {
		w, env := do(t, g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusNotFound, w.Code, tc.method+" "+tc.path)
		var data map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, "employee_not_found", data["error"])
		require.Equal(t, "does-not-exist", data["employeeId"])
	}
}

func TestTaskEndpoints_Validation(t *testing.T) {
	g, _ := setup(t)

	cases := []struct{ method, path, body string }{
		{http.MethodPost, "/api/employees/E1/tasks", `{"text":""}`},
		{http.MethodPost, "/api/employees/E1/tasks", `{}`},
		{http.MethodPost, "/api/employees/E1/tasks", `{"text":"` + strings.Repeat("x", service.DefaultMaxTextLength+1) + `"}`},
		{http.MethodPut, "/api/employees/E1/tasks", `{"todo":[]}`},
		{http.MethodPut, "/api/employees/E1/tasks", `{"done":null}`},
		{http.MethodPut, "/api/employees/E1/tasks", `{"todo":[],"done":"x"}`},
		{http.MethodPut, "/api/employees/E1/tasks", `not json`},
		{http.MethodGet, "/api/employees/bad%20id/tasks", ""},
		{http.MethodPost, "/api/employees", `{"firstName":"no id"}`},
	}
	for _, tc := range cases {
		w, _ := do(t, g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.method+" "+tc.path+" "+tc.body)
	}
}

func TestReplaceTasks_NullListIsEmpty(t *testing.T) {
	g, _ := setup(t)
	do(t, g, http.MethodPost, "/api/employees/E1/tasks", `{"text":"A"}`)

	w, env := do(t, g, http.MethodPut, "/api/employees/E1/tasks", `{"todo":null,"done":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEmployee(t, env)
	require.NotNil(t, e.Todo)
	require.Empty(t, e.Todo)
	require.Empty(t, e.Done)

	w, env = do(t, g, http.MethodPut, "/api/employees/E1/tasks", `{"todo":[{"id":"t1","text":"x"}],"done":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	e = decodeEmployee(t, env)
	require.Equal(t, []employee.Task{{ID: "t1", Text: "x"}}, e.Todo)
	require.Empty(t, e.Done)
}

func TestEmployeeEndpoints_CRUD(t *testing.T) {
	g, _ := setup(t)

	w, env := do(t, g, http.MethodPost, "/api/employees", `{"employeeId":"1007","firstName":"Grace","lastName":"Hopper"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "1007", decodeEmployee(t, env).EmployeeID)

	w, env = do(t, g, http.MethodGet, "/api/employees/1007", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Hopper", decodeEmployee(t, env).LastName)

	w, env = do(t, g, http.MethodPatch, "/api/employees/1007", `{"firstName":"Amazing Grace"}`)
	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEmployee(t, env)
	require.Equal(t, "Amazing Grace", e.FirstName)
	require.Equal(t, "Hopper", e.LastName)

	w, env = do(t, g, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []employee.Employee
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)

	w, _ = do(t, g, http.MethodDelete, "/api/employees/1007", "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, g, http.MethodGet, "/api/employees/1007", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

type brokenRepo struct{ repository.Repository }

func (brokenRepo) Get(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, errors.New("no reachable servers")
}

func TestStoreErrorMapsTo501(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterEmployeeRoutes(g, service.New(brokenRepo{}))

	w, env := do(t, g, http.MethodGet, "/api/employees/E1/tasks", "")
	require.Equal(t, http.StatusNotImplemented, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "store_error", data["error"])
	require.Contains(t, data["details"], "no reachable servers")
}

func TestUntypedErrorMapsTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/boom", func(c *gin.Context) { writeError(c, errors.New("boom")) })

	w, env := do(t, g, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal server error", env.Message)
}
