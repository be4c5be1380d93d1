package dto

import "github.com/yukikurage/taskboard-api/internal/models"

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryWithCountDTO is a list entry carrying the live task count
type CategoryWithCountDTO struct {
	CategoryDTO
	Count int64 `json:"count"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
	}
}

// ToCategoryWithCountDTOs converts counted categories for the list endpoint
func ToCategoryWithCountDTOs(categories []models.CategoryWithCount) []CategoryWithCountDTO {
	items := make([]CategoryWithCountDTO, len(categories))
	for i, category := range categories {
		items[i] = CategoryWithCountDTO{
			CategoryDTO: ToCategoryDTO(category.Category),
			Count:       category.Count,
		}
	}
	return items
}
