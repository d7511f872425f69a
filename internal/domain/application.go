package domain

import (
	"context"
)

// Application is a job seeker's submission against one posting. At most one
// row exists per (JobPostingID, UserID).
type Application struct {
	Base
	JobPostingID string            `gorm:"size:36;not null;uniqueIndex:idx_application_job_user" json:"job_posting_id"`
	UserID       string            `gorm:"size:36;not null;uniqueIndex:idx_application_job_user;index" json:"user_id"`
	CoverLetter  string            `gorm:"type:text;not null" json:"cover_letter"`
	Status       ApplicationStatus `gorm:"size:20;not null;default:PENDING" json:"status"`

	JobPosting *JobPosting `gorm:"constraint:OnDelete:CASCADE" json:"job_posting,omitempty"`
	User       *User       `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// StatusChange is the result of an employer decision. Rejected applications
// leave the employer's active list, so Application is nil for them.
type StatusChange struct {
	Status      ApplicationStatus `json:"status"`
	Message     string            `json:"message"`
	Application *Application      `json:"application,omitempty"`
}

type ApplicationRepository interface {
	// Create fails with ErrDuplicate when the pair already applied.
	Create(ctx context.Context, app *Application) error
	FindByJobAndUser(ctx context.Context, jobID, userID string) (*Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	// GetForOwner loads an application whose posting belongs to ownerID.
	GetForOwner(ctx context.Context, id, ownerID string) (*Application, error)
	// GetDetailForOwner is GetForOwner with the posting and applicant CV.
	GetDetailForOwner(ctx context.Context, id, ownerID string) (*Application, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, caller Caller, jobID string, in ApplyInput) (*Application, error)
	UpdateStatus(ctx context.Context, caller Caller, applicationID string, in StatusInput) (*StatusChange, error)
	Detail(ctx context.Context, caller Caller, applicationID string) (*Application, error)
}
