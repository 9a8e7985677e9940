package gradebook

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry owns the student map and routes all gradebook operations. The
// mutex serializes every read-modify-write sequence so concurrent callers
// cannot corrupt enrollment or grade state.
type Registry struct {
	mu       sync.Mutex
	students map[string]*Student
}

// NewRegistry creates an empty gradebook registry.
func NewRegistry() *Registry {
	return &Registry{students: make(map[string]*Student)}
}

// StudentInfo is a point-in-time snapshot of a student. The registry hands
// out snapshots instead of internal pointers so callers cannot mutate state
// outside the lock.
type StudentInfo struct {
	ID               string  `json:"student_id"`
	Name             string  `json:"name"`
	CourseCount      int     `json:"course_count"`
	TotalCreditHours int     `json:"total_credit_hours"`
	GPA              float64 `json:"gpa"`
	Standing         string  `json:"academic_standing"`
}

// AddStudent registers a new student under a unique ID.
func (r *Registry) AddStudent(id, name string) error {
	student, err := newStudent(id, name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[student.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrStudentExists, student.ID())
	}
	r.students[student.ID()] = student
	return nil
}

// RemoveStudent deletes a student and their enrollment.
func (r *Registry) RemoveStudent(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, id)
	}
	delete(r.students, id)
	return nil
}

// HasStudent reports whether a student is registered.
func (r *Registry) HasStudent(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.students[id]
	return ok
}

// StudentCount returns the number of registered students.
func (r *Registry) StudentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.students)
}

// Enroll enrolls a student in a new course with the default weight split.
func (r *Registry) Enroll(id, courseName string, creditHours int) error {
	return r.EnrollWithWeights(id, courseName, creditHours, DefaultWeights())
}

// EnrollWithWeights enrolls a student in a new course with a custom weight
// distribution.
func (r *Registry) EnrollWithWeights(id, courseName string, creditHours int, weights map[Category]float64) error {
	course, err := NewCourseWithWeights(courseName, creditHours, weights)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return err
	}
	return student.Enroll(course)
}

// AddAssignment records an assignment in one of the student's courses.
func (r *Registry) AddAssignment(id, courseName string, a Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return err
	}
	return student.AddAssignment(courseName, a)
}

// CategoryAverage returns the category average for a student's course.
func (r *Registry) CategoryAverage(id, courseName string, category Category) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return 0, err
	}
	return student.CategoryAverage(courseName, category)
}

// CourseGrade returns the final grade for a student's course.
func (r *Registry) CourseGrade(id, courseName string) (CourseGrade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return CourseGrade{}, err
	}
	return student.CourseGrade(courseName)
}

// GPA returns a student's cumulative GPA.
func (r *Registry) GPA(id string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return 0, err
	}
	return student.GPA(), nil
}

// Transcript renders a student's transcript.
func (r *Registry) Transcript(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return "", err
	}
	return student.Transcript(), nil
}

// CourseReport renders the detailed report for a student's course.
func (r *Registry) CourseReport(id, courseName string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return "", err
	}
	course, ok := student.Course(courseName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotEnrolled, courseName)
	}
	return course.Report(), nil
}

// StudentInfo returns a snapshot of a single student.
func (r *Registry) StudentInfo(id string) (StudentInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, err := r.student(id)
	if err != nil {
		return StudentInfo{}, err
	}
	return snapshotStudent(student), nil
}

// Students returns snapshots of all students ordered by ID.
func (r *Registry) Students() []StudentInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]StudentInfo, 0, len(r.students))
	for _, student := range r.students {
		out = append(out, snapshotStudent(student))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StudentsInCourse returns snapshots of the students enrolled in the named
// course, ordered by ID.
func (r *Registry) StudentsInCourse(courseName string) []StudentInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []StudentInfo
	for _, student := range r.students {
		if student.EnrolledIn(courseName) {
			out = append(out, snapshotStudent(student))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ClassRoster renders the roster for a course: every enrolled student with
// their course grade and cumulative GPA.
func (r *Registry) ClassRoster(courseName string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var enrolled []*Student
	for _, student := range r.students {
		if student.EnrolledIn(courseName) {
			enrolled = append(enrolled, student)
		}
	}
	sort.Slice(enrolled, func(i, j int) bool { return enrolled[i].ID() < enrolled[j].ID() })

	var b strings.Builder
	b.WriteString("=== CLASS ROSTER ===\n")
	fmt.Fprintf(&b, "Course: %s\n", courseName)
	fmt.Fprintf(&b, "Enrolled Students: %d\n\n", len(enrolled))

	if len(enrolled) == 0 {
		b.WriteString("No students enrolled\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-12s %-20s %8s %5s\n", "Student ID", "Name", "Grade", "GPA")
	b.WriteString(strings.Repeat("-", 50))
	b.WriteByte('\n')
	for _, student := range enrolled {
		grade, err := student.CourseGrade(courseName)
		if err != nil {
			fmt.Fprintf(&b, "%-12s %-20s %8s %5.2f\n", student.ID(), student.Name(), "N/A", student.GPA())
			continue
		}
		fmt.Fprintf(&b, "%-12s %-20s %7.1f%% %5.2f\n", student.ID(), student.Name(), grade.Percentage, student.GPA())
	}

	return b.String()
}

// SummaryReport renders an overview of every student's GPA and standing.
func (r *Registry) SummaryReport() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString("=== GRADEBOOK SUMMARY ===\n")
	fmt.Fprintf(&b, "Total Students: %d\n", len(r.students))

	if len(r.students) == 0 {
		b.WriteString("No students in gradebook\n")
		return b.String()
	}

	ids := make([]string, 0, len(r.students))
	for id := range r.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var totalGPA float64
	b.WriteByte('\n')
	for _, id := range ids {
		student := r.students[id]
		totalGPA += student.GPA()
		fmt.Fprintf(&b, "%-12s %-20s %2d courses  %.2f GPA  %s\n",
			student.ID(), student.Name(), student.CourseCount(), student.GPA(), student.AcademicStanding())
	}
	fmt.Fprintf(&b, "\nAverage GPA: %.2f\n", totalGPA/float64(len(r.students)))

	return b.String()
}

// student looks up a student by ID. Callers must hold the lock.
func (r *Registry) student(id string) (*Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, id)
	}
	return student, nil
}

func snapshotStudent(s *Student) StudentInfo {
	return StudentInfo{
		ID:               s.ID(),
		Name:             s.Name(),
		CourseCount:      s.CourseCount(),
		TotalCreditHours: s.TotalCreditHours(),
		GPA:              s.GPA(),
		Standing:         s.AcademicStanding(),
	}
}
