package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coursehub/internal/cache"
	apperrors "coursehub/internal/errors"
	"coursehub/internal/model"
	"coursehub/internal/repository"
)

const (
	courseCacheTTL = 5 * time.Minute

	// DefaultPageSize is used when a listing does not ask for a limit.
	DefaultPageSize = 20
	// MaxPageSize caps the number of courses in one page.
	MaxPageSize = 100
)

// CourseService handles course operations.
type CourseService interface {
	CreateCourse(ctx context.Context, title string, description *string) (*model.Course, error)
	ListCourses(ctx context.Context, query ListCoursesQuery) ([]model.CourseWithEnrollments, int64, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.CourseWithEnrollments, error)
	Enroll(ctx context.Context, courseID, userID uuid.UUID) (*model.Enrollment, error)
}

// ListCoursesQuery is a page-based course listing request.
type ListCoursesQuery struct {
	Search  string
	Page    int
	Limit   int
	OrderBy model.CourseOrder
}

// Filter converts the page-based query into an offset filter.
func (q ListCoursesQuery) Filter() model.CourseFilter {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	order := q.OrderBy
	if order == "" {
		order = model.CourseOrderTitle
	}
	return model.CourseFilter{
		Search:  q.Search,
		OrderBy: order,
		Offset:  (page - 1) * limit,
		Limit:   limit,
	}
}

type courseService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	cache       *cache.Client
}

// NewCourseService creates a new course service.
func NewCourseService(courses repository.CourseRepository, enrollments repository.EnrollmentRepository, cache *cache.Client) CourseService {
	return &courseService{
		courses:     courses,
		enrollments: enrollments,
		cache:       cache,
	}
}

func (s *courseService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("course:%s", id.String())
}

// CreateCourse inserts a course with a freshly generated id.
func (s *courseService) CreateCourse(ctx context.Context, title string, description *string) (*model.Course, error) {
	course := &model.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// ListCourses returns one page of matching courses and the total match count.
func (s *courseService) ListCourses(ctx context.Context, query ListCoursesQuery) ([]model.CourseWithEnrollments, int64, error) {
	courses, total, err := s.courses.List(ctx, query.Filter())
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	return courses, total, nil
}

// GetCourse retrieves a course and its enrollment count, with caching.
func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.CourseWithEnrollments, error) {
	var cached model.CourseWithEnrollments
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	count, err := s.enrollments.CountByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count enrollments: %w", err)
	}

	result := &model.CourseWithEnrollments{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		CreatedAt:   course.CreatedAt,
		Enrollments: count,
	}
	s.cache.SetJSON(ctx, s.cacheKey(id), result, courseCacheTTL)
	return result, nil
}

// Enroll registers userID in the course and invalidates the cached course.
func (s *courseService) Enroll(ctx context.Context, courseID, userID uuid.UUID) (*model.Enrollment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	exists, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		// A concurrent request may win the race past Exists.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(courseID))
	return enrollment, nil
}
