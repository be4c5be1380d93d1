package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/taskboard-api/internal/repository"
)

var testDueDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type taskResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CategoryID  uint64    `json:"categoryId"`
	Category    struct {
		ID    uint64 `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"category"`
}

func taskTitles(tasks []taskResponse) []string {
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return titles
}

// TestCreateTask_Success tests creation with defaults and the joined category
func (suite *HandlerTestSuite) TestCreateTask_Success() {
	suite.createCategory("Work", "blue")

	w := suite.request(http.MethodPost, "/api/tasks", validTaskBody(1))

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.JSONEq(suite.T(), `{
		"id": 1,
		"title": "Write report",
		"description": null,
		"dueDate": "2024-01-01T00:00:00Z",
		"completed": false,
		"categoryId": 1,
		"category": {"id": 1, "name": "Work", "color": "blue"}
	}`, w.Body.String())
}

// TestCreateTask_WithDescription tests optional fields
func (suite *HandlerTestSuite) TestCreateTask_WithDescription() {
	suite.createCategory("Work", "blue")
	body := validTaskBody(1)
	body["description"] = "quarterly numbers"
	body["completed"] = true

	w := suite.request(http.MethodPost, "/api/tasks", body)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var task taskResponse
	suite.decode(w, &task)
	suite.Require().NotNil(task.Description)
	assert.Equal(suite.T(), "quarterly numbers", *task.Description)
	assert.True(suite.T(), task.Completed)
}

// TestCreateTask_MissingFields tests that every required field is reported by JSON name
func (suite *HandlerTestSuite) TestCreateTask_MissingFields() {
	w := suite.request(http.MethodPost, "/api/tasks", map[string]string{"description": "x"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response struct {
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	suite.decode(w, &response)
	fields := make([]string, len(response.Details))
	for i, d := range response.Details {
		fields[i] = d.Field
	}
	assert.Equal(suite.T(), []string{"title", "dueDate", "categoryId"}, fields)
	assert.Contains(suite.T(), response.Message, "dueDate is required")
}

// TestCreateTask_InvalidDueDate tests a due date that is not a timestamp
func (suite *HandlerTestSuite) TestCreateTask_InvalidDueDate() {
	suite.createCategory("Work", "blue")
	body := validTaskBody(1)
	body["dueDate"] = "tomorrow"

	w := suite.request(http.MethodPost, "/api/tasks", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"dueDate"`)
}

// TestCreateTask_WrongType tests a category ID sent as a string
func (suite *HandlerTestSuite) TestCreateTask_WrongType() {
	suite.createCategory("Work", "blue")
	body := validTaskBody(1)
	body["categoryId"] = "1"

	w := suite.request(http.MethodPost, "/api/tasks", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"categoryId"`)
}

// TestCreateTask_UnknownCategory tests that an unresolvable category is a fault and stores nothing
func (suite *HandlerTestSuite) TestCreateTask_UnknownCategory() {
	w := suite.request(http.MethodPost, "/api/tasks", validTaskBody(99))

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Error creating task")
	assert.Contains(suite.T(), w.Body.String(), "invalid category ID")

	tasks, err := suite.store.ListTasks(context.Background(), repository.TaskFilter{})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), tasks)
}

// TestListTasks_Empty tests that no tasks list as an empty array
func (suite *HandlerTestSuite) TestListTasks_Empty() {
	w := suite.request(http.MethodGet, "/api/tasks", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `[]`, w.Body.String())
}

// TestListTasks_Filters tests category, search and completed filters
func (suite *HandlerTestSuite) TestListTasks_Filters() {
	work := suite.createCategory("Work", "blue")
	home := suite.createCategory("Home", "green")
	suite.createTask("Buy milk", home.ID, false)
	suite.createTask("Write REPORT", work.ID, true)
	suite.createTask("Review report", home.ID, false)

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filter", "", []string{"Buy milk", "Write REPORT", "Review report"}},
		{"by category", "?categoryId=2", []string{"Buy milk", "Review report"}},
		{"search ignores case", "?search=report", []string{"Write REPORT", "Review report"}},
		{"category wins over search", "?categoryId=1&search=milk", []string{"Write REPORT"}},
		{"completed", "?completed=true", []string{"Write REPORT"}},
		{"not completed", "?completed=false", []string{"Buy milk", "Review report"}},
		{"non-true completed is false", "?completed=yes", []string{"Buy milk", "Review report"}},
		{"search with completed", "?search=report&completed=false", []string{"Review report"}},
		{"empty filters ignored", "?categoryId=&search=", []string{"Buy milk", "Write REPORT", "Review report"}},
		{"unknown category", "?categoryId=9", []string{}},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			w := suite.request(http.MethodGet, "/api/tasks"+tc.query, nil)
			suite.Require().Equal(http.StatusOK, w.Code)

			var tasks []taskResponse
			suite.decode(w, &tasks)
			assert.Equal(suite.T(), tc.want, taskTitles(tasks))
		})
	}
}

// TestListTasks_InvalidCategoryID tests a non-numeric categoryId filter
func (suite *HandlerTestSuite) TestListTasks_InvalidCategoryID() {
	w := suite.request(http.MethodGet, "/api/tasks?categoryId=abc", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid category ID")
}

// TestGetTask_Success tests fetching a task with its category
func (suite *HandlerTestSuite) TestGetTask_Success() {
	category := suite.createCategory("Work", "blue")
	suite.createTask("Write report", category.ID, false)

	w := suite.request(http.MethodGet, "/api/tasks/1", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task taskResponse
	suite.decode(w, &task)
	assert.Equal(suite.T(), uint64(1), task.ID)
	assert.Equal(suite.T(), "Work", task.Category.Name)
	assert.True(suite.T(), testDueDate.Equal(task.DueDate))
}

// TestGetTask_NotFound tests fetching a missing task
func (suite *HandlerTestSuite) TestGetTask_NotFound() {
	w := suite.request(http.MethodGet, "/api/tasks/3", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Task not found")
}

// TestGetTask_InvalidID tests a non-numeric ID
func (suite *HandlerTestSuite) TestGetTask_InvalidID() {
	w := suite.request(http.MethodGet, "/api/tasks/1.5", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid task ID")
}

// TestUpdateTask_Partial tests that only provided fields change
func (suite *HandlerTestSuite) TestUpdateTask_Partial() {
	suite.createCategory("Work", "blue")
	home := suite.createCategory("Home", "green")
	suite.createTask("Write report", 1, false)

	w := suite.request(http.MethodPut, "/api/tasks/1", map[string]interface{}{
		"completed":  true,
		"categoryId": home.ID,
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task taskResponse
	suite.decode(w, &task)
	assert.Equal(suite.T(), "Write report", task.Title)
	assert.True(suite.T(), task.Completed)
	assert.Equal(suite.T(), home.ID, task.CategoryID)
	assert.Equal(suite.T(), "Home", task.Category.Name)
}

// TestUpdateTask_NullKeepsValue tests that null fields are treated as omitted
func (suite *HandlerTestSuite) TestUpdateTask_NullKeepsValue() {
	suite.createCategory("Work", "blue")
	suite.createTask("Write report", 1, false)

	w := suite.request(http.MethodPut, "/api/tasks/1", `{"title": null, "dueDate": "2025-06-01T12:00:00Z"}`)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task taskResponse
	suite.decode(w, &task)
	assert.Equal(suite.T(), "Write report", task.Title)
	assert.Equal(suite.T(), 2025, task.DueDate.Year())
}

// TestUpdateTask_UnknownCategory tests that the task is left untouched
func (suite *HandlerTestSuite) TestUpdateTask_UnknownCategory() {
	suite.createCategory("Work", "blue")
	suite.createTask("Write report", 1, false)

	w := suite.request(http.MethodPut, "/api/tasks/1", map[string]interface{}{"title": "New", "categoryId": 50})

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)

	task, err := suite.store.GetTask(context.Background(), 1)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Write report", task.Title)
	assert.Equal(suite.T(), uint64(1), task.CategoryID)
}

// TestUpdateTask_NotFound tests updating a missing task
func (suite *HandlerTestSuite) TestUpdateTask_NotFound() {
	w := suite.request(http.MethodPut, "/api/tasks/8", map[string]interface{}{"title": "x"})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteTask_Success tests deleting a task
func (suite *HandlerTestSuite) TestDeleteTask_Success() {
	suite.createCategory("Work", "blue")
	suite.createTask("Write report", 1, false)

	w := suite.request(http.MethodDelete, "/api/tasks/1", nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks/1", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteTask_NotFound tests deleting a missing task
func (suite *HandlerTestSuite) TestDeleteTask_NotFound() {
	w := suite.request(http.MethodDelete, "/api/tasks/1", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}
