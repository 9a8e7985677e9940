package gradebook

// Category represents a grading category
type Category string

const (
	CategoryHomework  Category = "HOMEWORK"
	CategoryQuizzes   Category = "QUIZZES"
	CategoryMidterm   Category = "MIDTERM"
	CategoryFinalExam Category = "FINAL_EXAM"
)

// categoryOrder fixes the iteration order for deterministic reports.
var categoryOrder = []Category{
	CategoryHomework,
	CategoryQuizzes,
	CategoryMidterm,
	CategoryFinalExam,
}

var defaultWeights = map[Category]float64{
	CategoryHomework:  20,
	CategoryQuizzes:   20,
	CategoryMidterm:   25,
	CategoryFinalExam: 35,
}

// Categories returns every grading category in report order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is one of the defined grading categories.
func (c Category) Valid() bool {
	_, ok := defaultWeights[c]
	return ok
}

// DefaultWeight returns the category's share of the standard 100% split.
func (c Category) DefaultWeight() float64 {
	return defaultWeights[c]
}

// DefaultWeights returns the standard weight distribution (20/20/25/35).
func DefaultWeights() map[Category]float64 {
	out := make(map[Category]float64, len(defaultWeights))
	for c, w := range defaultWeights {
		out[c] = w
	}
	return out
}
