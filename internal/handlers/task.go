package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/services"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks joined with their categories.
// Supports categoryId, search and completed query filters; categoryId wins over search.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	categoryID, err := utils.ParseOptionalIDQuery(c, "categoryId")
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		CategoryID: categoryID,
		Search:     c.Query("search"),
		Completed:  utils.OptionalBoolQuery(c, "completed"),
	})
	if err != nil {
		respondServiceError(c, err, "Error fetching tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Error fetching task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"dueDate" binding:"required"`
		Completed   *bool      `json:"completed"`
		CategoryID  *uint64    `json:"categoryId" binding:"required"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     *req.DueDate,
		CategoryID:  *req.CategoryID,
	}
	if req.Completed != nil {
		input.Completed = *req.Completed
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Error creating task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates only the provided fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string    `json:"title" binding:"omitempty,min=1"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"dueDate"`
		Completed   *bool      `json:"completed"`
		CategoryID  *uint64    `json:"categoryId"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err, "Error updating task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Error deleting task")
		return
	}

	c.Status(http.StatusNoContent)
}
