package database

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ByCategory restricts tasks to one category
func ByCategory(categoryID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID)
	}
}

// ByCompleted restricts tasks to the given completion state
func ByCompleted(completed bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("completed = ?", completed)
	}
}

// SearchText matches tasks whose title or description contains query,
// ignoring case. LOWER is the Unicode fold registered in Open, so it
// agrees with strings.ToLower. A NULL description never matches.
func SearchText(query string) func(db *gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
}
