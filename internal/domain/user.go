package domain

import (
	"context"
)

type User struct {
	Base
	ExternalID string   `gorm:"uniqueIndex;size:191;not null" json:"-"` // identity provider subject
	Name       string   `gorm:"size:191" json:"name"`
	Email      string   `gorm:"size:191;index" json:"email"`
	Role       UserRole `gorm:"size:20;not null;default:JOB_SEEKER" json:"role"`
	Profile    *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`

	Experiences []Experience `json:"experiences,omitempty"`
	Education   []Education  `json:"education,omitempty"`
	Skills      []Skill      `json:"skills,omitempty"`
	Projects    []Project    `json:"projects,omitempty"`
}

func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

// Profile holds the contact block of a user's CV.
type Profile struct {
	Base
	UserID   string `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	Bio      string `gorm:"type:text" json:"bio"`
	Location string `gorm:"size:191" json:"location"`
	Phone    string `gorm:"size:32" json:"phone,omitempty"`
	Website  string `gorm:"size:255" json:"website,omitempty"`
}

// Poster is the public view of the user who owns a job posting.
type Poster struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateIdentity(ctx context.Context, id, name, email string) error
	UpdateRole(ctx context.Context, id string, role UserRole) error
	// SaveProfile updates the user's name and inserts or updates the profile row.
	SaveProfile(ctx context.Context, userID, name string, profile *Profile) error
	GetWithProfile(ctx context.Context, id string) (*User, error)
	// GetCV loads the profile and every CV section in display order.
	GetCV(ctx context.Context, id string) (*User, error)
}

type AuthUsecase interface {
	// SyncUser creates the domain user on first sign-in and refreshes the
	// identity fields afterwards.
	SyncUser(ctx context.Context, caller Caller) (*User, error)
	CurrentUser(ctx context.Context, caller Caller) (*User, error)
	ChangeRole(ctx context.Context, caller Caller, in RoleInput) (*User, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, caller Caller) (*User, error)
	UpdateProfile(ctx context.Context, caller Caller, in ProfileInput) (*User, error)
	GetCV(ctx context.Context, caller Caller) (*User, error)
}
