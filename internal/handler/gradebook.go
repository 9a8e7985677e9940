package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/oyvindh/bankbook/internal/gradebook"
)

// GradebookHandler handles HTTP requests for the academic gradebook
type GradebookHandler struct {
	registry *gradebook.Registry
	log      *logrus.Logger
}

// NewGradebookHandler creates a new GradebookHandler
func NewGradebookHandler(registry *gradebook.Registry, log *logrus.Logger) *GradebookHandler {
	return &GradebookHandler{registry: registry, log: log}
}

// RegisterRoutes sets up the gradebook routes on the given router
func (h *GradebookHandler) RegisterRoutes(r chi.Router) {
	r.Route("/students", func(r chi.Router) {
		r.Post("/", h.AddStudent)
		r.Get("/", h.ListStudents)
		r.Get("/{id}", h.GetStudent)
		r.Delete("/{id}", h.RemoveStudent)
		r.Get("/{id}/gpa", h.GetGPA)
		r.Get("/{id}/transcript", h.GetTranscript)
		r.Post("/{id}/courses", h.Enroll)
		r.Route("/{id}/courses/{course}", func(r chi.Router) {
			r.Post("/assignments", h.AddAssignment)
			r.Get("/grade", h.GetCourseGrade)
			r.Get("/average", h.GetCategoryAverage)
			r.Get("/report", h.GetCourseReport)
		})
	})
	r.Get("/courses/{course}/roster", h.GetRoster)
	r.Get("/gradebook/summary", h.GetSummary)
}

// AddStudentRequest is the payload for registering a student
type AddStudentRequest struct {
	ID   string `json:"student_id"`
	Name string `json:"name"`
}

// EnrollRequest is the payload for enrolling a student in a course.
// Weights are optional; when absent the default 20/20/25/35 split applies.
type EnrollRequest struct {
	CourseName  string                         `json:"course_name"`
	CreditHours int                            `json:"credit_hours"`
	Weights     map[gradebook.Category]float64 `json:"weights,omitempty"`
}

// AddAssignmentRequest is the payload for recording an assignment
type AddAssignmentRequest struct {
	Name           string             `json:"name"`
	PointsEarned   float64            `json:"points_earned"`
	PointsPossible float64            `json:"points_possible"`
	Category       gradebook.Category `json:"category"`
}

// AddStudent handles POST /students
func (h *GradebookHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req AddStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.registry.AddStudent(req.ID, req.Name); err != nil {
		if errors.Is(err, gradebook.ErrStudentExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.WithField("student_id", req.ID).Info("Student registered")

	info, err := h.registry.StudentInfo(req.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load student")
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// ListStudents handles GET /students
func (h *GradebookHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Students())
}

// GetStudent handles GET /students/{id}
func (h *GradebookHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	info, err := h.registry.StudentInfo(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// RemoveStudent handles DELETE /students/{id}
func (h *GradebookHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.registry.RemoveStudent(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.log.WithField("student_id", id).Info("Student removed")
	w.WriteHeader(http.StatusNoContent)
}

// GetGPA handles GET /students/{id}/gpa
func (h *GradebookHandler) GetGPA(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gpa, err := h.registry.GPA(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"student_id": id,
		"gpa":        gpa,
	})
}

// GetTranscript handles GET /students/{id}/transcript
func (h *GradebookHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.registry.Transcript(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeText(w, http.StatusOK, transcript)
}

// Enroll handles POST /students/{id}/courses
func (h *GradebookHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var err error
	if req.Weights == nil {
		err = h.registry.Enroll(id, req.CourseName, req.CreditHours)
	} else {
		err = h.registry.EnrollWithWeights(id, req.CourseName, req.CreditHours, req.Weights)
	}
	if err != nil {
		switch {
		case errors.Is(err, gradebook.ErrStudentNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, gradebook.ErrAlreadyEnrolled):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.log.WithFields(logrus.Fields{
		"student_id": id,
		"course":     req.CourseName,
	}).Info("Student enrolled")
	w.WriteHeader(http.StatusCreated)
}

// AddAssignment handles POST /students/{id}/courses/{course}/assignments
func (h *GradebookHandler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	course := chi.URLParam(r, "course")

	var req AddAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assignment, err := gradebook.NewAssignment(req.Name, req.PointsEarned, req.PointsPossible, req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.registry.AddAssignment(id, course, assignment); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, assignment)
}

// GetCourseGrade handles GET /students/{id}/courses/{course}/grade
func (h *GradebookHandler) GetCourseGrade(w http.ResponseWriter, r *http.Request) {
	grade, err := h.registry.CourseGrade(chi.URLParam(r, "id"), chi.URLParam(r, "course"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, grade)
}

// GetCategoryAverage handles GET /students/{id}/courses/{course}/average
// Required query parameter: category (e.g., HOMEWORK).
func (h *GradebookHandler) GetCategoryAverage(w http.ResponseWriter, r *http.Request) {
	category := gradebook.Category(r.URL.Query().Get("category"))
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid or missing category")
		return
	}

	average, err := h.registry.CategoryAverage(chi.URLParam(r, "id"), chi.URLParam(r, "course"), category)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"average":  average,
	})
}

// GetCourseReport handles GET /students/{id}/courses/{course}/report
func (h *GradebookHandler) GetCourseReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.registry.CourseReport(chi.URLParam(r, "id"), chi.URLParam(r, "course"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeText(w, http.StatusOK, report)
}

// GetRoster handles GET /courses/{course}/roster
func (h *GradebookHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.registry.ClassRoster(chi.URLParam(r, "course")))
}

// GetSummary handles GET /gradebook/summary
func (h *GradebookHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.registry.SummaryReport())
}
