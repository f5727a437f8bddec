package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"coursehub/internal/model"
)

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	List(ctx context.Context, filter model.CourseFilter) ([]model.CourseWithEnrollments, int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create inserts a new course. The id is generated by the model hook.
func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// FindByID finds a course by ID.
func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns one page of courses matching the filter with their enrollment
// counts, plus the number of matching courses irrespective of pagination.
func (r *courseRepository) List(ctx context.Context, filter model.CourseFilter) ([]model.CourseWithEnrollments, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).
		Scopes(titleContains(filter.Search)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	courses := make([]model.CourseWithEnrollments, 0, filter.Limit)
	if total == 0 {
		return courses, 0, nil
	}

	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Select("courses.id, courses.title, courses.description, COUNT(enrollments.id) AS enrollments").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Scopes(titleContains(filter.Search)).
		Group("courses.id, courses.title, courses.description").
		Order(orderColumn(filter.OrderBy)).
		Order("courses.id").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Scan(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func titleContains(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("courses.title LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(search)+"%")
	}
}

// likeEscaper makes LIKE match search literally. '!' is the escape character
// because a backslash literal is spelled differently in MySQL and SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func orderColumn(order model.CourseOrder) string {
	if order == model.CourseOrderID {
		return "courses.id"
	}
	return "courses.title"
}
