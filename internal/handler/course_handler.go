package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"coursehub/internal/auth"
	"coursehub/internal/errors"
	"coursehub/internal/model"
	"coursehub/internal/service"
)

// CourseHandler handles course endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourseRequest represents a course creation request.
type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=5,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

// CreateCourseResponse carries the id of the created course.
type CreateCourseResponse struct {
	CourseID string `json:"courseId" validate:"required,uuid"`
}

// ListCoursesRequest holds the listing query parameters.
type ListCoursesRequest struct {
	Search  string `query:"search" validate:"max=255"`
	Page    int    `query:"page" validate:"min=1"`
	Limit   int    `query:"limit" validate:"min=1,max=100"`
	OrderBy string `query:"orderBy" validate:"oneof=id title"`
}

// CourseSummary is one course in a listing.
type CourseSummary struct {
	ID          string `json:"id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required"`
	Enrollments int64  `json:"enrollments" validate:"gte=0"`
}

// ListCoursesResponse represents a page of courses.
type ListCoursesResponse struct {
	Total   int64           `json:"total" validate:"gte=0"`
	Courses []CourseSummary `json:"courses" validate:"required,dive"`
}

// CourseIDRequest holds the course id path parameter.
type CourseIDRequest struct {
	ID string `param:"id" validate:"required,uuid_rfc4122"`
}

// CourseDetail is the full representation of a course.
type CourseDetail struct {
	ID          string    `json:"id" validate:"required,uuid"`
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt" validate:"required"`
	Enrollments int64     `json:"enrollments" validate:"gte=0"`
}

// GetCourseResponse wraps a single course.
type GetCourseResponse struct {
	Course CourseDetail `json:"course"`
}

// EnrollResponse carries the id of the created enrollment.
type EnrollResponse struct {
	EnrollmentID string `json:"enrollmentId" validate:"required,uuid"`
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body CreateCourseRequest true "Course data"
// @Success 201 {object} CreateCourseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req CreateCourseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.CreateCourse(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		return fail(err)
	}

	return respond(c, http.StatusCreated, CreateCourseResponse{CourseID: course.ID.String()})
}

// ListCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Param search query string false "Substring of the title"
// @Param page query int false "Page number" minimum(1) default(1)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(20)
// @Param orderBy query string false "Sort column" Enums(id, title) default(title)
// @Success 200 {object} ListCoursesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c echo.Context) error {
	req := ListCoursesRequest{
		Page:    1,
		Limit:   service.DefaultPageSize,
		OrderBy: string(model.CourseOrderTitle),
	}
	// Missing parameters keep their defaults, explicit ones are range checked.
	err := echo.QueryParamsBinder(c).
		String("search", &req.Search).
		Int("page", &req.Page).
		Int("limit", &req.Limit).
		String("orderBy", &req.OrderBy).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request",
			Code:  errors.CodeInvalidRequest,
		}).SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	query := service.ListCoursesQuery{
		Search:  req.Search,
		Page:    req.Page,
		Limit:   req.Limit,
		OrderBy: model.CourseOrder(req.OrderBy),
	}

	courses, total, err := h.courseService.ListCourses(c.Request().Context(), query)
	if err != nil {
		return fail(err)
	}

	resp := ListCoursesResponse{
		Total:   total,
		Courses: make([]CourseSummary, 0, len(courses)),
	}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, CourseSummary{
			ID:          course.ID.String(),
			Title:       course.Title,
			Enrollments: course.Enrollments,
		})
	}
	return respond(c, http.StatusOK, resp)
}

// GetCourse godoc
// @Summary Get a course by id
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" format(uuid)
// @Success 200 {object} GetCourseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 "Course not found"
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c echo.Context) error {
	var req CourseIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.GetCourse(c.Request().Context(), uuid.MustParse(req.ID))
	if err != nil {
		if stderrors.Is(err, errors.ErrCourseNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return fail(err)
	}

	return respond(c, http.StatusOK, GetCourseResponse{Course: CourseDetail{
		ID:          course.ID.String(),
		Title:       course.Title,
		Description: course.Description,
		CreatedAt:   course.CreatedAt,
		Enrollments: course.Enrollments,
	}})
}

// Enroll godoc
// @Summary Enroll the authenticated student in a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID" format(uuid)
// @Success 201 {object} EnrollResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 "Course not found"
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id}/enrollments [post]
func (h *CourseHandler) Enroll(c echo.Context) error {
	var req CourseIDRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	enrollment, err := h.courseService.Enroll(c.Request().Context(), uuid.MustParse(req.ID), userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrCourseNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return fail(err)
	}

	return respond(c, http.StatusCreated, EnrollResponse{EnrollmentID: enrollment.ID.String()})
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return uuid.Nil, unauthorized()
	}
	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, unauthorized()
	}
	return id, nil
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "missing or invalid token",
		Code:  errors.CodeUnauthorized,
	})
}
