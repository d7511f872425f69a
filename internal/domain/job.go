package domain

import (
	"context"
	"strings"
)

type JobPosting struct {
	Base
	Title           string          `gorm:"size:191;not null" json:"title"`
	Company         string          `gorm:"size:191;not null" json:"company"`
	Location        string          `gorm:"size:191;not null" json:"location"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Salary          *float64        `json:"salary"`
	JobType         JobType         `gorm:"size:20;not null;index" json:"job_type"`
	ExperienceLevel ExperienceLevel `gorm:"size:20;not null;index" json:"experience_level"`
	Requirements    StringList      `json:"requirements"`
	UserID          string          `gorm:"size:36;not null;index" json:"user_id"`

	User         *User         `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Applications []Application `json:"applications,omitempty"`
}

// JobFilter is the listing query. Empty slices and an empty Search impose no
// constraint.
type JobFilter struct {
	Search           string
	JobTypes         []JobType
	ExperienceLevels []ExperienceLevel
	Page             int
	Limit            int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func (f JobFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Normalized clamps paging: page < 1 becomes 1, limit < 1 becomes
// DefaultPageSize and limit is capped at MaxPageSize.
func (f JobFilter) Normalized() JobFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// ParseJobTypes reads a comma separated list, skipping unknown values.
func ParseJobTypes(raw string) []JobType {
	var out []JobType
	for _, part := range strings.Split(raw, ",") {
		if t := JobType(strings.ToUpper(strings.TrimSpace(part))); t.Valid() {
			out = append(out, t)
		}
	}
	return out
}

// ParseExperienceLevels reads a comma separated list, skipping unknown values.
func ParseExperienceLevels(raw string) []ExperienceLevel {
	var out []ExperienceLevel
	for _, part := range strings.Split(raw, ",") {
		if l := ExperienceLevel(strings.ToUpper(strings.TrimSpace(part))); l.Valid() {
			out = append(out, l)
		}
	}
	return out
}

// JobDetail is the job page: the posting, its poster and, for signed-in
// callers, their own application.
type JobDetail struct {
	Job         *JobPosting  `json:"job"`
	Poster      Poster       `json:"poster"`
	Application *Application `json:"application,omitempty"`
	IsOwner     bool         `json:"is_owner"`
	HasApplied  bool         `json:"has_applied"`
}

type JobRepository interface {
	Create(ctx context.Context, job *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	GetWithPoster(ctx context.Context, id string) (*JobPosting, error)
	Search(ctx context.Context, filter JobFilter) ([]JobPosting, error)
	// ListByOwnerWithApplications returns the owner's postings newest first
	// with applications and applicant identity preloaded.
	ListByOwnerWithApplications(ctx context.Context, ownerID string) ([]JobPosting, error)
	// DeleteOwnedCascade removes the posting's applications and then the
	// posting in one transaction. ErrNotFound when ownerID does not own it.
	DeleteOwnedCascade(ctx context.Context, id, ownerID string) error
}

type JobUsecase interface {
	Search(ctx context.Context, filter JobFilter) ([]JobPosting, error)
	Detail(ctx context.Context, caller Caller, id string) (*JobDetail, error)
	CreatePosting(ctx context.Context, caller Caller, in JobPostingInput) (*JobPosting, error)
	DeletePosting(ctx context.Context, caller Caller, id string) error
	EmployerDashboard(ctx context.Context, caller Caller) ([]JobPosting, error)
}
