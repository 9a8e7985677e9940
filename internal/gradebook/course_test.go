package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAssignment(t *testing.T, name string, earned, possible float64, category Category) Assignment {
	t.Helper()
	a, err := NewAssignment(name, earned, possible, category)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	tests := []struct {
		name       string
		assignName string
		earned     float64
		possible   float64
		category   Category
		wantErr    error
	}{
		{name: "valid", assignName: "HW1", earned: 85, possible: 100, category: CategoryHomework},
		{name: "empty name", assignName: "  ", earned: 85, possible: 100, category: CategoryHomework, wantErr: ErrEmptyAssignmentName},
		{name: "zero points possible", assignName: "HW1", earned: 0, possible: 0, category: CategoryHomework, wantErr: ErrInvalidPointsPossible},
		{name: "negative earned", assignName: "HW1", earned: -1, possible: 100, category: CategoryHomework, wantErr: ErrInvalidPointsEarned},
		{name: "earned above possible", assignName: "HW1", earned: 101, possible: 100, category: CategoryHomework, wantErr: ErrInvalidPointsEarned},
		{name: "unknown category", assignName: "HW1", earned: 85, possible: 100, category: "LABS", wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAssignment(tt.assignName, tt.earned, tt.possible, tt.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, 85.0, a.Percentage(), 0.001)
		})
	}
}

func TestNewCourse(t *testing.T) {
	t.Run("default weights", func(t *testing.T) {
		c, err := NewCourse("Calculus I", 4)

		require.NoError(t, err)
		assert.Equal(t, "Calculus I", c.Name())
		assert.Equal(t, 4, c.CreditHours())
		assert.InDelta(t, 20.0, c.Weights()[CategoryHomework], 0.001)
		assert.InDelta(t, 35.0, c.Weights()[CategoryFinalExam], 0.001)
	})

	tests := []struct {
		name        string
		courseName  string
		creditHours int
		weights     map[Category]float64
		wantErr     error
	}{
		{name: "empty course name", courseName: " ", creditHours: 3, weights: DefaultWeights(), wantErr: ErrEmptyCourseName},
		{name: "zero credit hours", courseName: "Physics", creditHours: 0, weights: DefaultWeights(), wantErr: ErrInvalidCreditHours},
		{name: "nil weights", courseName: "Physics", creditHours: 3, weights: nil, wantErr: ErrEmptyWeights},
		{
			name:        "weights not totalling 100",
			courseName:  "Physics",
			creditHours: 3,
			weights:     map[Category]float64{CategoryHomework: 50, CategoryQuizzes: 40},
			wantErr:     ErrInvalidWeightTotal,
		},
		{
			name:        "unknown category in weights",
			courseName:  "Physics",
			creditHours: 3,
			weights:     map[Category]float64{"LABS": 100},
			wantErr:     ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCourseWithWeights(tt.courseName, tt.creditHours, tt.weights)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("weights within tolerance are accepted", func(t *testing.T) {
		_, err := NewCourseWithWeights("Physics", 3, map[Category]float64{
			CategoryHomework:  33.33,
			CategoryQuizzes:   33.33,
			CategoryFinalExam: 33.335,
		})
		require.NoError(t, err)
	})
}

func TestCourse_CategoryAverage(t *testing.T) {
	c, err := NewCourse("Calculus I", 4)
	require.NoError(t, err)

	t.Run("empty category averages zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, c.CategoryAverage(CategoryHomework), 0.001)
	})

	t.Run("points are pooled, not averaged per assignment", func(t *testing.T) {
		c.AddAssignment(mustAssignment(t, "HW1", 10, 10, CategoryHomework))
		c.AddAssignment(mustAssignment(t, "HW2", 80, 100, CategoryHomework))

		// (10+80)/(10+100) = 81.8%, not the per-assignment mean of 90%
		assert.InDelta(t, 81.818, c.CategoryAverage(CategoryHomework), 0.001)
	})
}

func TestCourse_FinalGrade(t *testing.T) {
	t.Run("no assignments means zero", func(t *testing.T) {
		c, err := NewCourse("Calculus I", 4)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, c.FinalGrade(), 0.001)
	})

	t.Run("empty categories are excluded, not zero-scored", func(t *testing.T) {
		c, err := NewCourse("Calculus I", 4)
		require.NoError(t, err)
		c.AddAssignment(mustAssignment(t, "HW1", 80, 100, CategoryHomework))
		c.AddAssignment(mustAssignment(t, "Quiz1", 90, 100, CategoryQuizzes))

		// Homework and quizzes carry equal weight, so the final grade is
		// their plain mean, not scaled down by the unused 60%
		assert.InDelta(t, 85.0, c.FinalGrade(), 0.001)
	})

	t.Run("all categories with default weights", func(t *testing.T) {
		c, err := NewCourse("Calculus I", 4)
		require.NoError(t, err)
		c.AddAssignment(mustAssignment(t, "HW1", 85, 100, CategoryHomework))
		c.AddAssignment(mustAssignment(t, "Quiz1", 90, 100, CategoryQuizzes))
		c.AddAssignment(mustAssignment(t, "Midterm", 82, 100, CategoryMidterm))
		c.AddAssignment(mustAssignment(t, "Final", 87, 100, CategoryFinalExam))

		// 85*0.20 + 90*0.20 + 82*0.25 + 87*0.35
		assert.InDelta(t, 85.95, c.FinalGrade(), 0.001)
		assert.Equal(t, "B", c.LetterGrade())
		assert.InDelta(t, 3.0, c.GPAPoints(), 0.001)
	})
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{percentage: 95, want: "A"},
		{percentage: 90, want: "A"},
		{percentage: 89.99, want: "B"},
		{percentage: 80, want: "B"},
		{percentage: 75, want: "C"},
		{percentage: 60, want: "D"},
		{percentage: 59.99, want: "F"},
		{percentage: 0, want: "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.percentage), "LetterGrade(%v)", tt.percentage)
	}
}

func TestGPAPointsFor(t *testing.T) {
	tests := []struct {
		letter string
		want   float64
	}{
		{letter: "A", want: 4.0},
		{letter: "b", want: 3.0},
		{letter: "C", want: 2.0},
		{letter: "D", want: 1.0},
		{letter: "F", want: 0.0},
	}

	for _, tt := range tests {
		got, err := GPAPointsFor(tt.letter)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 0.001)
	}

	_, err := GPAPointsFor("E")
	assert.ErrorIs(t, err, ErrInvalidLetterGrade)
}

func TestCourse_Report(t *testing.T) {
	c, err := NewCourse("Calculus I", 4)
	require.NoError(t, err)
	c.AddAssignment(mustAssignment(t, "HW1", 85, 100, CategoryHomework))

	report := c.Report()

	assert.Contains(t, report, "=== COURSE REPORT ===")
	assert.Contains(t, report, "Course: Calculus I")
	assert.Contains(t, report, "Credit Hours: 4")
	assert.Contains(t, report, "HOMEWORK (20.0%)")
	assert.Contains(t, report, "HW1")
}
