package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"github.com/nodebucket/nodebucket/pkg/response"
)

type createEmployeeRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

type updateEmployeeRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type createTaskRequest struct {
	Text string `json:"text" binding:"required"`
}

// taskList tells an absent list apart from an explicit null, which is
// read as an empty list.
type taskList struct {
	Tasks []employee.Task
	set   bool
}

func (l *taskList) UnmarshalJSON(b []byte) error {
	l.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		l.Tasks = []employee.Task{}
		return nil
	}
	return json.Unmarshal(b, &l.Tasks)
}

type replaceTasksRequest struct {
	Todo taskList `json:"todo"`
	Done taskList `json:"done"`
}

// RegisterEmployeeRoutes mounts the employee and task endpoints under
// /api/employees.
func RegisterEmployeeRoutes(r gin.IRouter, svc service.Service) {
	g := r.Group("/api/employees")

	g.GET("", func(c *gin.Context) {
		list, err := svc.ListEmployees(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		var req createEmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, employee.Invalid("%s", err.Error()))
			return
		}
		e, err := svc.CreateEmployee(c.Request.Context(), &employee.Employee{
			EmployeeID: req.EmployeeID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusCreated, e)
	})

	g.GET("/:employeeId", func(c *gin.Context) {
		e, err := svc.FindEmployee(c.Request.Context(), c.Param("employeeId"))
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, e)
	})

	g.PATCH("/:employeeId", func(c *gin.Context) {
		var req updateEmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, employee.Invalid("%s", err.Error()))
			return
		}
		e, err := svc.UpdateEmployee(c.Request.Context(), c.Param("employeeId"), req.FirstName, req.LastName)
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, e)
	})

	g.DELETE("/:employeeId", func(c *gin.Context) {
		id := c.Param("employeeId")
		if err := svc.DeleteEmployee(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"employeeId": id})
	})

	g.GET("/:employeeId/tasks", func(c *gin.Context) {
		lists, err := svc.GetTasks(c.Request.Context(), c.Param("employeeId"))
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, lists)
	})

	g.POST("/:employeeId/tasks", func(c *gin.Context) {
		id := c.Param("employeeId")
		if err := svc.ValidateEmployeeID(id); err != nil {
			writeError(c, err)
			return
		}
		var req createTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, employee.Invalid("%s", err.Error()))
			return
		}
		e, err := svc.AddTask(c.Request.Context(), id, req.Text)
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, e)
	})

	g.PUT("/:employeeId/tasks", func(c *gin.Context) {
		id := c.Param("employeeId")
		if err := svc.ValidateEmployeeID(id); err != nil {
			writeError(c, err)
			return
		}
		var req replaceTasksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, employee.Invalid("%s", err.Error()))
			return
		}
		if !req.Todo.set || !req.Done.set {
			writeError(c, employee.Invalid("todo and done are required"))
			return
		}
		e, err := svc.ReplaceTaskLists(c.Request.Context(), id, req.Todo.Tasks, req.Done.Tasks)
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, e)
	})

	g.DELETE("/:employeeId/tasks/:taskId", func(c *gin.Context) {
		e, err := svc.DeleteTask(c.Request.Context(), c.Param("employeeId"), c.Param("taskId"))
		if err != nil {
			writeError(c, err)
			return
		}
		response.JSON(c, http.StatusOK, e)
	})
}

// writeError maps a service error onto the envelope and status code.
func writeError(c *gin.Context, err error) {
	var e *employee.Error
	if !errors.As(err, &e) {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		response.JSON(c, http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	switch e.Kind {
	case employee.KindValidation:
		response.JSON(c, http.StatusBadRequest, gin.H{"error": "validation_error", "details": e.Msg})
	case employee.KindNotFound:
		if e.Resource == "task" {
			response.JSON(c, http.StatusNotFound, gin.H{"error": "task_not_found", "employeeId": e.ID, "taskId": e.TaskID})
			return
		}
		response.JSON(c, http.StatusNotFound, gin.H{"error": "employee_not_found", "employeeId": e.ID})
	case employee.KindStore:
		response.JSON(c, http.StatusNotImplemented, gin.H{"error": "store_error", "details": e.Error()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		response.JSON(c, http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
