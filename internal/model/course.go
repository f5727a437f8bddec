package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is the primary managed entity. Courses are created once and never updated.
type Course struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`

	// Relations
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CourseWithEnrollments is the read model returned by course queries.
// Enrollments is derived from the enrollments table and never stored.
type CourseWithEnrollments struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Enrollments int64     `json:"enrollments"`
}

// CourseOrder is a sortable column for course listings.
type CourseOrder string

const (
	CourseOrderID    CourseOrder = "id"
	CourseOrderTitle CourseOrder = "title"
)

// CourseFilter narrows and paginates a course listing.
type CourseFilter struct {
	Search  string
	OrderBy CourseOrder
	Offset  int
	Limit   int
}
