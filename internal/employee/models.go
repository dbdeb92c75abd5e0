package employee

// Task is a single item embedded in an employee's todo or done list.
// The id is generated when the task is created and never changes.
type Task struct {
	ID   string `json:"id" bson:"_id"`
	Text string `json:"text" bson:"text"`
}

// Employee is the persisted employee record. Both task lists are stored
// inline, in order, inside the employee document.
type Employee struct {
	EmployeeID string `json:"employeeId" bson:"empId"`
	FirstName  string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Todo       []Task `json:"todo" bson:"todo"`
	Done       []Task `json:"done" bson:"done"`
}

// TaskLists is the task projection of an Employee.
type TaskLists struct {
	EmployeeID string `json:"employeeId"`
	Todo       []Task `json:"todo"`
	Done       []Task `json:"done"`
}

// Lists returns the task projection of e.
func (e *Employee) Lists() *TaskLists {
	return &TaskLists{EmployeeID: e.EmployeeID, Todo: e.Todo, Done: e.Done}
}

// FullName joins first and last name, skipping empty parts.
func (e *Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Clone returns a deep copy so callers can mutate lists without touching
// shared state.
func (e *Employee) Clone() *Employee {
	c := *e
	c.Todo = append([]Task(nil), e.Todo...)
	c.Done = append([]Task(nil), e.Done...)
	if c.Todo == nil {
		c.Todo = []Task{}
	}
	if c.Done == nil {
		c.Done = []Task{}
	}
	return &c
}

// RemoveTask removes the first task with the given id, searching todo
// before done. It reports whether a task was removed.
func (e *Employee) RemoveTask(taskID string) bool {
	if i := indexOf(e.Todo, taskID); i >= 0 {
		e.Todo = append(e.Todo[:i], e.Todo[i+1:]...)
		return true
	}
	if i := indexOf(e.Done, taskID); i >= 0 {
		e.Done = append(e.Done[:i], e.Done[i+1:]...)
		return true
	}
	return false
}

func indexOf(list []Task, id string) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}
