package valueobjects

import "fmt"

type Category string

const (
	CategoryPothole        Category = "POTHOLE"
	CategoryStreetLighting Category = "STREET_LIGHTING"
	CategorySidewalk       Category = "SIDEWALK"
	CategoryDrainage       Category = "DRAINAGE"
	CategoryOther          Category = "OTHER"
)

var validCategories = map[Category]bool{
	CategoryPothole:        true,
	CategoryStreetLighting: true,
	CategorySidewalk:       true,
	CategoryDrainage:       true,
	CategoryOther:          true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
