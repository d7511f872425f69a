package usecase_test

import (
	"context"
	"testing"
	"time"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/internal/usecase"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/cache"
	"jobmatch-backend/pkg/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type jobFixture struct {
	users *MockUserRepo
	jobs  *MockJobRepo
	apps  *MockApplicationRepo
	uc    domain.JobUsecase
}

func newJobFixture(c *cache.Cache) *jobFixture {
	f := &jobFixture{
		users: new(MockUserRepo),
		jobs:  new(MockJobRepo),
		apps:  new(MockApplicationRepo),
	}
	f.uc = usecase.NewJobUsecase(f.jobs, f.apps, f.users, c, nil, validation.New())
	return f
}

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute), mr
}

func postingInput() domain.JobPostingInput {
	return domain.JobPostingInput{
		Title:           "Go Developer",
		Company:         "Acme",
		Location:        "Iași",
		Description:     "Services, queues and Postgres.",
		Salary:          "8000",
		JobType:         "FULL_TIME",
		ExperienceLevel: "SENIOR",
		Requirements:    "Go\n\nKubernetes\n",
	}
}

func TestSearchNormalizesFilter(t *testing.T) {
	ctx := context.Background()
	f := newJobFixture(nil)
	want := domain.JobFilter{Search: "go", Page: 1, Limit: domain.DefaultPageSize}
	f.jobs.On("Search", ctx, want).Return(nil, nil)

	jobs, err := f.uc.Search(ctx, domain.JobFilter{Search: " go "})
	require.NoError(t, err)
	assert.NotNil(t, jobs, "an empty result is an empty list")
	assert.Empty(t, jobs)
	f.jobs.AssertExpectations(t)
}

func TestSearchIsCachedUntilAPostingChanges(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	f := newJobFixture(c)
	filter := domain.JobFilter{Page: 1, Limit: 10}

	f.jobs.On("Search", ctx, filter).Return([]domain.JobPosting{{Title: "Go Developer"}}, nil)
	f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
	f.jobs.On("Create", ctx, mock.Anything).Return(nil)

	for i := 0; i < 2; i++ {
		jobs, err := f.uc.Search(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, "Go Developer", jobs[0].Title)
	}
	f.jobs.AssertNumberOfCalls(t, "Search", 1)

	_, err := f.uc.CreatePosting(ctx, employerCaller, postingInput())
	require.NoError(t, err)

	_, err = f.uc.Search(ctx, filter)
	require.NoError(t, err)
	f.jobs.AssertNumberOfCalls(t, "Search", 2)
}

func TestJobDetail(t *testing.T) {
	ctx := context.Background()
	posting := func() *domain.JobPosting {
		return &domain.JobPosting{
			Base:   domain.Base{ID: "job-1"},
			Title:  "Go Developer",
			UserID: employer.ID,
			User:   &domain.User{Base: domain.Base{ID: employer.ID}, Name: "Employer", Email: "hr@acme.ro"},
		}
	}

	t.Run("Anonymous viewer sees the poster", func(t *testing.T) {
		f := newJobFixture(nil)
		f.jobs.On("GetWithPoster", ctx, "job-1").Return(posting(), nil)

		d, err := f.uc.Detail(ctx, domain.Caller{}, "job-1")
		require.NoError(t, err)
		assert.Equal(t, domain.Poster{ID: employer.ID, Name: "Employer", Email: "hr@acme.ro"}, d.Poster)
		assert.Nil(t, d.Job.User)
		assert.False(t, d.IsOwner)
		assert.False(t, d.HasApplied)
	})

	t.Run("Owner is flagged", func(t *testing.T) {
		f := newJobFixture(nil)
		f.jobs.On("GetWithPoster", ctx, "job-1").Return(posting(), nil)
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.apps.On("FindByJobAndUser", ctx, "job-1", employer.ID).Return(nil, domain.ErrNotFound)

		d, err := f.uc.Detail(ctx, employerCaller, "job-1")
		require.NoError(t, err)
		assert.True(t, d.IsOwner)
		assert.False(t, d.HasApplied)
	})

	t.Run("Applicant sees their application", func(t *testing.T) {
		f := newJobFixture(nil)
		f.jobs.On("GetWithPoster", ctx, "job-1").Return(posting(), nil)
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)
		f.apps.On("FindByJobAndUser", ctx, "job-1", seeker.ID).Return(&domain.Application{Status: domain.StatusPending}, nil)

		d, err := f.uc.Detail(ctx, seekerCaller, "job-1")
		require.NoError(t, err)
		assert.True(t, d.HasApplied)
		assert.Equal(t, domain.StatusPending, d.Application.Status)
	})

	t.Run("Unsynced viewer gets the anonymous view", func(t *testing.T) {
		f := newJobFixture(nil)
		f.jobs.On("GetWithPoster", ctx, "job-1").Return(posting(), nil)
		f.users.On("GetByExternalID", ctx, "idp|new").Return(nil, domain.ErrNotFound)

		d, err := f.uc.Detail(ctx, domain.Caller{IdentityID: "idp|new"}, "job-1")
		require.NoError(t, err)
		assert.False(t, d.IsOwner)
	})

	t.Run("Unknown posting is not found", func(t *testing.T) {
		f := newJobFixture(nil)
		f.jobs.On("GetWithPoster", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := f.uc.Detail(ctx, domain.Caller{}, "nope")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestCreatePosting(t *testing.T) {
	ctx := context.Background()

	t.Run("Job seekers cannot post", func(t *testing.T) {
		f := newJobFixture(nil)
		f.users.On("GetByExternalID", ctx, "idp|seek").Return(seeker, nil)

		_, err := f.uc.CreatePosting(ctx, seekerCaller, postingInput())
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
		f.jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid input is rejected", func(t *testing.T) {
		f := newJobFixture(nil)
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		in := postingInput()
		in.Requirements = ""

		_, err := f.uc.CreatePosting(ctx, employerCaller, in)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("Posting is stored with parsed fields", func(t *testing.T) {
		f := newJobFixture(nil)
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.jobs.On("Create", ctx, mock.Anything).Return(nil)

		job, err := f.uc.CreatePosting(ctx, employerCaller, postingInput())
		require.NoError(t, err)
		assert.Equal(t, employer.ID, job.UserID)
		assert.Equal(t, domain.StringList{"Go", "Kubernetes"}, job.Requirements)
		require.NotNil(t, job.Salary)
		assert.Equal(t, 8000.0, *job.Salary)
		assert.Equal(t, domain.JobTypeFullTime, job.JobType)
	})
}

func TestDeletePosting(t *testing.T) {
	ctx := context.Background()

	t.Run("Non owner sees not found", func(t *testing.T) {
		f := newJobFixture(nil)
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.jobs.On("DeleteOwnedCascade", ctx, "job-9", employer.ID).Return(domain.ErrNotFound)

		err := f.uc.DeletePosting(ctx, employerCaller, "job-9")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("Owner delete drops the cached detail", func(t *testing.T) {
		c, mr := newTestCache(t)
		f := newJobFixture(c)
		f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
		f.jobs.On("DeleteOwnedCascade", ctx, "job-1", employer.ID).Return(nil)
		require.NoError(t, c.SetJSON(ctx, cache.JobDetailKey("job-1"), domain.JobPosting{}, 0))

		require.NoError(t, f.uc.DeletePosting(ctx, employerCaller, "job-1"))
		assert.False(t, mr.Exists(cache.JobDetailKey("job-1")))
	})
}

func TestEmployerDashboardHidesRejected(t *testing.T) {
	ctx := context.Background()
	f := newJobFixture(nil)
	f.users.On("GetByExternalID", ctx, "idp|emp").Return(employer, nil)
	f.jobs.On("ListByOwnerWithApplications", ctx, employer.ID).Return([]domain.JobPosting{{
		Base: domain.Base{ID: "job-1"},
		Applications: []domain.Application{
			{Base: domain.Base{ID: "a1"}, Status: domain.StatusPending},
			{Base: domain.Base{ID: "a2"}, Status: domain.StatusRejected},
			{Base: domain.Base{ID: "a3"}, Status: domain.StatusAccepted},
		},
	}}, nil)

	jobs, err := f.uc.EmployerDashboard(ctx, employerCaller)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	ids := []string{}
	for _, a := range jobs[0].Applications {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a3"}, ids)
}
