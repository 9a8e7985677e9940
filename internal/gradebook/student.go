package gradebook

import (
	"fmt"
	"strings"
)

// Student owns its enrolled courses and computes the credit-hour-weighted
// GPA. Not safe for concurrent use on its own; the Registry serializes all
// access under its lock.
type Student struct {
	id      string
	name    string
	courses []*Course
}

// newStudent validates and constructs a student. ID and name are trimmed.
func newStudent(id, name string) (*Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyStudentID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyStudentName
	}
	return &Student{
		id:   strings.TrimSpace(id),
		name: strings.TrimSpace(name),
	}, nil
}

// Enroll adds a course to the student's enrollment. Course names are unique
// per student, compared case-insensitively.
func (s *Student) Enroll(course *Course) error {
	if s.EnrolledIn(course.Name()) {
		return fmt.Errorf("%w: %s", ErrAlreadyEnrolled, course.Name())
	}
	s.courses = append(s.courses, course)
	return nil
}

// Course looks up an enrolled course by name, case-insensitively.
func (s *Student) Course(name string) (*Course, bool) {
	for _, c := range s.courses {
		if strings.EqualFold(c.Name(), name) {
			return c, true
		}
	}
	return nil, false
}

// EnrolledIn reports whether the student is enrolled in the named course.
func (s *Student) EnrolledIn(name string) bool {
	_, ok := s.Course(name)
	return ok
}

// AddAssignment records an assignment in the named course.
func (s *Student) AddAssignment(courseName string, a Assignment) error {
	course, ok := s.Course(courseName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotEnrolled, courseName)
	}
	course.AddAssignment(a)
	return nil
}

// CategoryAverage returns the category average for the named course.
func (s *Student) CategoryAverage(courseName string, category Category) (float64, error) {
	course, ok := s.Course(courseName)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotEnrolled, courseName)
	}
	return course.CategoryAverage(category), nil
}

// CourseGrade is a course's final grade as percentage and letter.
type CourseGrade struct {
	Percentage float64 `json:"percentage"`
	Letter     string  `json:"letter"`
}

func (g CourseGrade) String() string {
	return fmt.Sprintf("%.1f%% (%s)", g.Percentage, g.Letter)
}

// CourseGrade returns the final grade for the named course.
func (s *Student) CourseGrade(courseName string) (CourseGrade, error) {
	course, ok := s.Course(courseName)
	if !ok {
		return CourseGrade{}, fmt.Errorf("%w: %s", ErrNotEnrolled, courseName)
	}
	return CourseGrade{
		Percentage: course.FinalGrade(),
		Letter:     course.LetterGrade(),
	}, nil
}

// GPA returns the cumulative GPA: per-course GPA points weighted by credit
// hours. A student with no courses has a GPA of 0.
func (s *Student) GPA() float64 {
	var qualityPoints float64
	var creditHours int
	for _, c := range s.courses {
		qualityPoints += c.GPAPoints() * float64(c.CreditHours())
		creditHours += c.CreditHours()
	}
	if creditHours == 0 {
		return 0
	}
	return qualityPoints / float64(creditHours)
}

// TotalCreditHours returns the sum of credit hours across enrolled courses.
func (s *Student) TotalCreditHours() int {
	total := 0
	for _, c := range s.courses {
		total += c.CreditHours()
	}
	return total
}

// AcademicStanding maps the cumulative GPA to a standing band.
func (s *Student) AcademicStanding() string {
	gpa := s.GPA()
	switch {
	case gpa >= 3.5:
		return "Dean's List"
	case gpa >= 3.0:
		return "Good Standing"
	case gpa >= 2.0:
		return "Satisfactory"
	case gpa >= 1.0:
		return "Academic Warning"
	default:
		return "Academic Probation"
	}
}

// ID returns the student identifier.
func (s *Student) ID() string { return s.id }

// Name returns the student's name.
func (s *Student) Name() string { return s.name }

// Courses returns the enrolled courses in enrollment order.
func (s *Student) Courses() []*Course {
	out := make([]*Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// CourseCount returns the number of enrolled courses.
func (s *Student) CourseCount() int { return len(s.courses) }

// Transcript renders the student's full academic record.
func (s *Student) Transcript() string {
	var b strings.Builder
	b.WriteString("=== STUDENT TRANSCRIPT ===\n")
	fmt.Fprintf(&b, "Student ID: %s\n", s.id)
	fmt.Fprintf(&b, "Name: %s\n", s.name)
	fmt.Fprintf(&b, "Cumulative GPA: %.2f\n", s.GPA())
	fmt.Fprintf(&b, "Total Credit Hours: %d\n", s.TotalCreditHours())

	b.WriteString("\nCourses Completed:\n")
	if len(s.courses) == 0 {
		b.WriteString("  No courses enrolled\n")
	} else {
		for _, c := range s.courses {
			fmt.Fprintf(&b, "  %-20s %2d credits  %5.1f%%  %s  %.1f GPA\n",
				c.Name(), c.CreditHours(), c.FinalGrade(), c.LetterGrade(), c.GPAPoints())
		}
	}

	fmt.Fprintf(&b, "\nAcademic Standing: %s\n", s.AcademicStanding())
	return b.String()
}
