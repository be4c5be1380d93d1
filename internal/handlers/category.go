package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/services"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns every category with its current task count
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryWithCountDTOs(categories))
}

// GetCategory returns a category by ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Error fetching category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color" binding:"required"`
	}

	var req CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), services.CreateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondServiceError(c, err, "Error creating category")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// UpdateCategory merges the provided fields into a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	type UpdateCategoryRequest struct {
		Name  *string `json:"name" binding:"omitempty,min=1"`
		Color *string `json:"color" binding:"omitempty,min=1"`
	}

	var req UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, models.CategoryUpdate{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondServiceError(c, err, "Error updating category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory deletes a category that no task references
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Error deleting category")
		return
	}

	c.Status(http.StatusNoContent)
}
