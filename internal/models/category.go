package models

// Color tokens offered by the client's category picker. The store accepts
// any string; these are used for seeding and documentation.
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorPurple = "purple"
	ColorYellow = "yellow"
	ColorRed    = "red"
	ColorPink   = "pink"
	ColorIndigo = "indigo"
	ColorCyan   = "cyan"
	ColorOrange = "orange"
	ColorGray   = "gray"
)

// CategoryColors lists the known color tokens in picker order.
var CategoryColors = []string{
	ColorBlue, ColorGreen, ColorPurple, ColorYellow, ColorRed,
	ColorPink, ColorIndigo, ColorCyan, ColorOrange, ColorGray,
}

type Category struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Color string `gorm:"type:varchar(20);not null" json:"color"`
}

// CategoryUpdate carries the fields of a partial category update.
// Nil fields keep their stored value.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// Apply merges the provided fields into c.
func (u CategoryUpdate) Apply(c *Category) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
}

// CategoryWithCount is a category together with the number of tasks
// referencing it at read time.
type CategoryWithCount struct {
	Category
	Count int64 `json:"count"`
}
