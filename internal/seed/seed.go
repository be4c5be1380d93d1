package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// File is the layout of a seed file:
//
//	categories:
//	  - name: Work
//	    color: blue
type File struct {
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// DefaultCategories are created at startup when no seed file is configured
func DefaultCategories() []services.CreateCategoryInput {
	return []services.CreateCategoryInput{
		{Name: "Work", Color: models.ColorBlue},
		{Name: "Personal", Color: models.ColorGreen},
		{Name: "Health", Color: models.ColorPurple},
		{Name: "Shopping", Color: models.ColorYellow},
	}
}

// Load reads categories from a YAML seed file
func Load(path string) ([]services.CreateCategoryInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file File
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	categories := make([]services.CreateCategoryInput, 0, len(file.Categories))
	for i, category := range file.Categories {
		if category.Name == "" || category.Color == "" {
			return nil, fmt.Errorf("seed file %s: category %d needs a name and a color", path, i+1)
		}
		categories = append(categories, services.CreateCategoryInput{
			Name:  category.Name,
			Color: category.Color,
		})
	}
	return categories, nil
}

// Categories returns the seed file's categories, or the defaults when path is empty
func Categories(path string) ([]services.CreateCategoryInput, error) {
	if path == "" {
		return DefaultCategories(), nil
	}
	return Load(path)
}

// Apply creates the categories in order, so IDs follow the seed order
func Apply(ctx context.Context, categoryService *services.CategoryService, categories []services.CreateCategoryInput) error {
	for _, category := range categories {
		if _, err := categoryService.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
	}
	return nil
}
