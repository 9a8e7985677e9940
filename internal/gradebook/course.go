package gradebook

import (
	"fmt"
	"math"
	"strings"
)

// weightTolerance allows for floating-point drift when validating that
// category weights sum to 100.
const weightTolerance = 0.01

// Course owns its grading weights and assignment list. Weights are fixed at
// creation and never change. Course is not safe for concurrent use on its
// own; the Registry serializes all access under its lock.
type Course struct {
	name        string
	creditHours int
	weights     map[Category]float64
	assignments []Assignment
}

// NewCourse creates a course with the default 20/20/25/35 weight split.
func NewCourse(name string, creditHours int) (*Course, error) {
	return NewCourseWithWeights(name, creditHours, DefaultWeights())
}

// NewCourseWithWeights creates a course with a custom weight distribution.
// The weights must cover only valid categories and total 100 within
// tolerance.
func NewCourseWithWeights(name string, creditHours int, weights map[Category]float64) (*Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyCourseName
	}
	if creditHours <= 0 {
		return nil, ErrInvalidCreditHours
	}
	if len(weights) == 0 {
		return nil, ErrEmptyWeights
	}

	total := 0.0
	copied := make(map[Category]float64, len(weights))
	for category, weight := range weights {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
		}
		copied[category] = weight
		total += weight
	}
	if math.Abs(total-100) > weightTolerance {
		return nil, fmt.Errorf("%w, got: %.2f", ErrInvalidWeightTotal, total)
	}

	return &Course{
		name:        strings.TrimSpace(name),
		creditHours: creditHours,
		weights:     copied,
	}, nil
}

// AddAssignment appends an assignment to the course.
func (c *Course) AddAssignment(a Assignment) {
	c.assignments = append(c.assignments, a)
}

// AssignmentsIn returns the assignments belonging to one category.
func (c *Course) AssignmentsIn(category Category) []Assignment {
	var out []Assignment
	for _, a := range c.assignments {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// CategoryAverage returns the pooled percentage for a category: total points
// earned over total points possible, scaled to 0-100. A category with no
// assignments averages 0.
func (c *Course) CategoryAverage(category Category) float64 {
	var earned, possible float64
	for _, a := range c.assignments {
		if a.Category == category {
			earned += a.PointsEarned
			possible += a.PointsPossible
		}
	}
	if possible == 0 {
		return 0
	}
	return earned / possible * 100
}

// FinalGrade combines the category averages using only the categories that
// have at least one assignment, normalized by the weight actually used. A
// course graded so far only on homework and quizzes is judged on their
// relative weights, not penalized for the untouched 60%.
func (c *Course) FinalGrade() float64 {
	var weightedSum, totalWeight float64
	for _, category := range categoryOrder {
		weight, ok := c.weights[category]
		if !ok || len(c.AssignmentsIn(category)) == 0 {
			continue
		}
		weightedSum += c.CategoryAverage(category) * (weight / 100)
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight * 100
}

// LetterGrade returns the course's final letter grade.
func (c *Course) LetterGrade() string {
	return LetterGrade(c.FinalGrade())
}

// GPAPoints returns the 4.0-scale points for the course's final grade.
func (c *Course) GPAPoints() float64 {
	points, _ := GPAPointsFor(c.LetterGrade())
	return points
}

// Name returns the course name.
func (c *Course) Name() string { return c.name }

// CreditHours returns the course's credit hours.
func (c *Course) CreditHours() int { return c.creditHours }

// Weights returns a copy of the category weight distribution.
func (c *Course) Weights() map[Category]float64 {
	out := make(map[Category]float64, len(c.weights))
	for category, weight := range c.weights {
		out[category] = weight
	}
	return out
}

// Assignments returns a copy of the assignment list in insertion order.
func (c *Course) Assignments() []Assignment {
	out := make([]Assignment, len(c.assignments))
	copy(out, c.assignments)
	return out
}

// AssignmentCount returns the number of assignments recorded.
func (c *Course) AssignmentCount() int { return len(c.assignments) }

// Report renders a detailed per-course breakdown.
func (c *Course) Report() string {
	var b strings.Builder
	b.WriteString("=== COURSE REPORT ===\n")
	fmt.Fprintf(&b, "Course: %s\n", c.name)
	fmt.Fprintf(&b, "Credit Hours: %d\n", c.creditHours)
	fmt.Fprintf(&b, "Final Grade: %.1f%% (%s)\n", c.FinalGrade(), c.LetterGrade())
	fmt.Fprintf(&b, "GPA Points: %.1f\n", c.GPAPoints())

	b.WriteString("\nCategory Breakdown:\n")
	for _, category := range categoryOrder {
		fmt.Fprintf(&b, "  %s (%.1f%%): %.1f%% [%d assignments]\n",
			category, c.weights[category], c.CategoryAverage(category), len(c.AssignmentsIn(category)))
	}

	b.WriteString("\nAssignments:\n")
	for _, a := range c.assignments {
		fmt.Fprintf(&b, "  %s\n", a)
	}

	return b.String()
}

// LetterGrade maps a percentage to a letter grade: A >= 90, B >= 80,
// C >= 70, D >= 60, F otherwise.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// GPAPointsFor maps a letter grade to the 4.0 scale.
func GPAPointsFor(letterGrade string) (float64, error) {
	switch strings.ToUpper(letterGrade) {
	case "A":
		return 4.0, nil
	case "B":
		return 3.0, nil
	case "C":
		return 2.0, nil
	case "D":
		return 1.0, nil
	case "F":
		return 0.0, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidLetterGrade, letterGrade)
	}
}
