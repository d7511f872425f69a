package usecase_test

import (
	"context"

	"jobmatch-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return m.user(m.Called(ctx, externalID))
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}
func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdateIdentity(ctx context.Context, id, name, email string) error {
	return m.Called(ctx, id, name, email).Error(0)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *MockUserRepo) SaveProfile(ctx context.Context, userID, name string, profile *domain.Profile) error {
	return m.Called(ctx, userID, name, profile).Error(0)
}
func (m *MockUserRepo) GetWithProfile(ctx context.Context, id string) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}
func (m *MockUserRepo) GetCV(ctx context.Context, id string) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) job(args mock.Arguments) (*domain.JobPosting, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	return m.job(m.Called(ctx, id))
}
func (m *MockJobRepo) GetWithPoster(ctx context.Context, id string) (*domain.JobPosting, error) {
	return m.job(m.Called(ctx, id))
}
func (m *MockJobRepo) Search(ctx context.Context, filter domain.JobFilter) ([]domain.JobPosting, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobPosting), args.Error(1)
}
func (m *MockJobRepo) ListByOwnerWithApplications(ctx context.Context, ownerID string) ([]domain.JobPosting, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobPosting), args.Error(1)
}
func (m *MockJobRepo) DeleteOwnedCascade(ctx context.Context, id, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) app(args mock.Arguments) (*domain.Application, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) FindByJobAndUser(ctx context.Context, jobID, userID string) (*domain.Application, error) {
	return m.app(m.Called(ctx, jobID, userID))
}
func (m *MockApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetForOwner(ctx context.Context, id, ownerID string) (*domain.Application, error) {
	return m.app(m.Called(ctx, id, ownerID))
}
func (m *MockApplicationRepo) GetDetailForOwner(ctx context.Context, id, ownerID string) (*domain.Application, error) {
	return m.app(m.Called(ctx, id, ownerID))
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

var (
	employer = &domain.User{Base: domain.Base{ID: "emp-1"}, ExternalID: "idp|emp", Name: "Employer", Role: domain.RoleEmployer}
	seeker   = &domain.User{Base: domain.Base{ID: "seek-1"}, ExternalID: "idp|seek", Name: "Seeker", Role: domain.RoleJobSeeker}

	employerCaller = domain.Caller{IdentityID: "idp|emp"}
	seekerCaller   = domain.Caller{IdentityID: "idp|seek"}
)
