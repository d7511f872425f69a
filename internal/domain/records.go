package domain

import (
	"context"
	"time"
)

// Owned lists the CV record types that belong to a single user.
type Owned interface {
	Skill | Education | Experience | Project
}

type Skill struct {
	Base
	UserID string     `gorm:"size:36;not null;index" json:"user_id"`
	Name   string     `gorm:"size:191;not null" json:"name"`
	Level  SkillLevel `gorm:"size:20;not null" json:"level"`
}

type Education struct {
	Base
	UserID       string     `gorm:"size:36;not null;index" json:"user_id"`
	Institution  string     `gorm:"size:191;not null" json:"institution"`
	Degree       string     `gorm:"size:191;not null" json:"degree"`
	FieldOfStudy string     `gorm:"size:191;not null" json:"field_of_study"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
}

// TableName keeps the table plural; gorm's inflection leaves "education" as is.
func (Education) TableName() string {
	return "educations"
}

type Experience struct {
	Base
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	JobTitle    string     `gorm:"size:191;not null" json:"job_title"`
	Company     string     `gorm:"size:191;not null" json:"company"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `gorm:"type:text;not null" json:"description"`
}

type Project struct {
	Base
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	Title       string     `gorm:"size:191;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	URL         string     `gorm:"size:255" json:"url,omitempty"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// RecordRepository stores one kind of CV record. Writes are scoped to the
// owner and return ErrNotFound when the record is missing or belongs to
// someone else.
type RecordRepository[T Owned] interface {
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	Create(ctx context.Context, rec *T) error
	// UpdateOwned overwrites the editable fields and reloads rec.
	UpdateOwned(ctx context.Context, id, ownerID string, rec *T) error
	DeleteOwned(ctx context.Context, id, ownerID string) error
}

type RecordUsecase[In any, T Owned] interface {
	List(ctx context.Context, caller Caller) ([]T, error)
	Add(ctx context.Context, caller Caller, in In) (*T, error)
	Update(ctx context.Context, caller Caller, id string, in In) (*T, error)
	Delete(ctx context.Context, caller Caller, id string) error
}
