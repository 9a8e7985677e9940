package gradebook

import (
	"fmt"
	"strings"
)

// Assignment is an immutable record of points earned on a piece of graded
// work within one category.
type Assignment struct {
	Name           string   `json:"name"`
	PointsEarned   float64  `json:"points_earned"`
	PointsPossible float64  `json:"points_possible"`
	Category       Category `json:"category"`
}

// NewAssignment validates and constructs an assignment. The name is trimmed.
func NewAssignment(name string, pointsEarned, pointsPossible float64, category Category) (Assignment, error) {
	if strings.TrimSpace(name) == "" {
		return Assignment{}, ErrEmptyAssignmentName
	}
	if pointsPossible <= 0 {
		return Assignment{}, ErrInvalidPointsPossible
	}
	if pointsEarned < 0 || pointsEarned > pointsPossible {
		return Assignment{}, ErrInvalidPointsEarned
	}
	if !category.Valid() {
		return Assignment{}, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	return Assignment{
		Name:           strings.TrimSpace(name),
		PointsEarned:   pointsEarned,
		PointsPossible: pointsPossible,
		Category:       category,
	}, nil
}

// Percentage returns the score scaled to 0-100.
func (a Assignment) Percentage() float64 {
	return a.PointsEarned / a.PointsPossible * 100
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s: %.1f/%.1f (%s, %.1f%%)",
		a.Name, a.PointsEarned, a.PointsPossible, a.Category, a.Percentage())
}
