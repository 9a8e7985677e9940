package gradebook

import "errors"

var (
	// Student errors
	ErrStudentNotFound  = errors.New("student not found")
	ErrStudentExists    = errors.New("student already exists")
	ErrEmptyStudentID   = errors.New("student id cannot be empty")
	ErrEmptyStudentName = errors.New("student name cannot be empty")

	// Course errors
	ErrEmptyCourseName    = errors.New("course name cannot be empty")
	ErrInvalidCreditHours = errors.New("credit hours must be positive")
	ErrEmptyWeights       = errors.New("category weights cannot be empty")
	ErrInvalidWeightTotal = errors.New("category weights must total 100%")
	ErrNotEnrolled        = errors.New("student is not enrolled in course")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in course")

	// Assignment errors
	ErrEmptyAssignmentName   = errors.New("assignment name cannot be empty")
	ErrInvalidPointsPossible = errors.New("points possible must be positive")
	ErrInvalidPointsEarned   = errors.New("points earned must be between 0 and points possible")
	ErrInvalidCategory       = errors.New("invalid grading category")
	ErrInvalidLetterGrade    = errors.New("invalid letter grade")
)
