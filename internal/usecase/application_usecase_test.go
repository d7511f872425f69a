package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/internal/usecase"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	users *MockUserRepo
	jobs  *MockJobRepo
	apps  *MockApplicationRepo
	uc    domain.ApplicationUsecase
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		users: new(MockUserRepo),
		jobs:  new(MockJobRepo),
		apps:  new(MockApplicationRepo),
	}
	f.uc = usecase.NewApplicationUsecase(f.apps, f.jobs, f.users, nil, validation.New())
	return f
}

var letter = strings.Repeat("m", 50)

func TestApply(t *testing.T) {
	ctx := context.Background()
	job := &domain.JobPosting{Base: domain.Base{ID: "job-1"}, UserID: employer.ID}

	t.Run("Anonymous caller is unauthenticated", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.uc.Apply(ctx, domain.Caller{}, "job-1", domain.ApplyInput{CoverLetter: letter})
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})

	t.Run("Unsynced caller is reported", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, seekerCaller, "job-1", domain.ApplyInput{CoverLetter: letter})
		assert.True(t, apperror.Is(err, apperror.KindUserNotFound))
	})

	t.Run("Missing posting is not found", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.jobs.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, seekerCaller, "nope", domain.ApplyInput{CoverLetter: letter})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("Applying to your own posting is forbidden before anything else", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.jobs.On("GetByID", ctx, "job-1").Return(job, nil)

		// the cover letter is invalid too, self application wins
		_, err := f.uc.Apply(ctx, employerCaller, "job-1", domain.ApplyInput{CoverLetter: "short"})
		assert.True(t, apperror.Is(err, apperror.KindSelfApplicationForbidden))
		f.apps.AssertNotCalled(t, "FindByJobAndUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate is reported before validation", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.jobs.On("GetByID", ctx, "job-1").Return(job, nil)
		f.apps.On("FindByJobAndUser", ctx, "job-1", seeker.ID).Return(&domain.Application{}, nil)

		_, err := f.uc.Apply(ctx, seekerCaller, "job-1", domain.ApplyInput{CoverLetter: "short"})
		assert.True(t, apperror.Is(err, apperror.KindDuplicateApplication))
		f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Cover letter of 49 characters is rejected", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.jobs.On("GetByID", ctx, "job-1").Return(job, nil)
		f.apps.On("FindByJobAndUser", ctx, "job-1", seeker.ID).Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, seekerCaller, "job-1", domain.ApplyInput{CoverLetter: strings.Repeat("m", 49)})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "cover_letter", appErr.Fields[0].Field)
	})

	t.Run("Cover letter of 50 characters creates a pending application", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.jobs.On("GetByID", ctx, "job-1").Return(job, nil)
		f.apps.On("FindByJobAndUser", ctx, "job-1", seeker.ID).Return(nil, domain.ErrNotFound)
		f.apps.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.JobPostingID == "job-1" && a.UserID == seeker.ID && a.Status == domain.StatusPending
		})).Return(nil)

		app, err := f.uc.Apply(ctx, seekerCaller, "job-1", domain.ApplyInput{CoverLetter: letter})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, app.Status)
		assert.Equal(t, letter, app.CoverLetter)
		f.apps.AssertExpectations(t)
	})

	t.Run("Lost insert race maps to duplicate", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.jobs.On("GetByID", ctx, "job-1").Return(job, nil)
		f.apps.On("FindByJobAndUser", ctx, "job-1", seeker.ID).Return(nil, domain.ErrNotFound)
		f.apps.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		_, err := f.uc.Apply(ctx, seekerCaller, "job-1", domain.ApplyInput{CoverLetter: letter})
		assert.True(t, apperror.Is(err, apperror.KindDuplicateApplication))
	})

	t.Run("Storage failure is hidden behind a persistence error", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.jobs.On("GetByID", ctx, "job-1").Return(nil, errors.New("connection reset"))

		_, err := f.uc.Apply(ctx, seekerCaller, "job-1", domain.ApplyInput{CoverLetter: letter})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindPersistence, appErr.Kind)
		assert.NotContains(t, appErr.Message, "connection reset")
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	pending := func() *domain.Application {
		return &domain.Application{Base: domain.Base{ID: "app-1"}, JobPostingID: "job-1", Status: domain.StatusPending}
	}

	t.Run("Job seekers are forbidden", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)

		_, err := f.uc.UpdateStatus(ctx, seekerCaller, "app-1", domain.StatusInput{Status: "ACCEPTED"})
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("Only ACCEPTED and REJECTED are settable", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)

		_, err := f.uc.UpdateStatus(ctx, employerCaller, "app-1", domain.StatusInput{Status: "OFFERED"})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		f.apps.AssertNotCalled(t, "GetForOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Another employer's application is not found", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.apps.On("GetForOwner", ctx, "app-1", employer.ID).Return(nil, domain.ErrNotFound)

		_, err := f.uc.UpdateStatus(ctx, employerCaller, "app-1", domain.StatusInput{Status: "ACCEPTED"})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Accepting returns the application", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.apps.On("GetForOwner", ctx, "app-1", employer.ID).Return(pending(), nil)
		f.apps.On("UpdateStatus", ctx, "app-1", domain.StatusAccepted).Return(nil)

		change, err := f.uc.UpdateStatus(ctx, employerCaller, "app-1", domain.StatusInput{Status: "ACCEPTED"})
		require.NoError(t, err)
		assert.Equal(t, usecase.MsgApplicationAccepted, change.Message)
		require.NotNil(t, change.Application)
		assert.Equal(t, domain.StatusAccepted, change.Application.Status)
	})

	t.Run("Rejecting returns only the message", func(t *testing.T) {
		f := newApplicationFixture()
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.apps.On("GetForOwner", ctx, "app-1", employer.ID).Return(pending(), nil)
		f.apps.On("UpdateStatus", ctx, "app-1", domain.StatusRejected).Return(nil)

		change, err := f.uc.UpdateStatus(ctx, employerCaller, "app-1", domain.StatusInput{Status: "REJECTED"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, change.Status)
		assert.Equal(t, usecase.MsgApplicationRejected, change.Message)
		assert.Nil(t, change.Application)
	})
}

func TestApplicationDetail(t *testing.T) {
	ctx := context.Background()
	f := newApplicationFixture()
	f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
	f.apps.On("GetDetailForOwner", ctx, "app-1", employer.ID).Return(&domain.Application{
		Base: domain.Base{ID: "app-1"},
		User: &domain.User{Name: "Seeker", Skills: []domain.Skill{{Name: "Go"}}},
	}, nil)
	f.apps.On("GetDetailForOwner", ctx, "app-2", employer.ID).Return(nil, domain.ErrNotFound)

	app, err := f.uc.Detail(ctx, employerCaller, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "Go", app.User.Skills[0].Name)

	_, err = f.uc.Detail(ctx, employerCaller, "app-2")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
