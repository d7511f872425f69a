package usecase

import (
	"context"
	"errors"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/cache"
	"jobmatch-backend/pkg/security"
	"jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	appRepo  domain.ApplicationRepository
	userRepo domain.UserRepository
	cache    *cache.Cache
	audit    *security.SecurityLogger
	validate *validator.Validate
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	userRepo domain.UserRepository,
	c *cache.Cache,
	audit *security.SecurityLogger,
	validate *validator.Validate,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		cache:    c,
		audit:    audit,
		validate: validate,
	}
}

func (u *jobUsecase) Search(ctx context.Context, filter domain.JobFilter) ([]domain.JobPosting, error) {
	filter = filter.Normalized()

	jobs := []domain.JobPosting{}
	err := u.cache.Aside(ctx, u.cache.JobListKey(ctx, filter), &jobs, func() error {
		found, err := u.jobRepo.Search(ctx, filter)
		if err != nil {
			return err
		}
		if found != nil {
			jobs = found
		}
		return nil
	})
	if err != nil {
		return nil, persistence(ctx, "search jobs", err)
	}
	return jobs, nil
}

func (u *jobUsecase) Detail(ctx context.Context, caller domain.Caller, id string) (*domain.JobDetail, error) {
	var job domain.JobPosting
	err := u.cache.Aside(ctx, cache.JobDetailKey(id), &job, func() error {
		found, err := u.jobRepo.GetWithPoster(ctx, id)
		if err != nil {
			return err
		}
		job = *found
		return nil
	})
	if err != nil {
		return nil, notFoundOr(ctx, "job detail", msgJobNotFound, err)
	}

	detail := &domain.JobDetail{Job: &job}
	if job.User != nil {
		detail.Poster = domain.Poster{ID: job.User.ID, Name: job.User.Name, Email: job.User.Email}
		job.User = nil
	}

	if !caller.Authenticated() {
		return detail, nil
	}
	viewer, err := u.userRepo.GetByExternalID(ctx, caller.IdentityID)
	if errors.Is(err, domain.ErrNotFound) {
		// signed in upstream but never synced; render the anonymous view
		return detail, nil
	}
	if err != nil {
		return nil, persistence(ctx, "resolve viewer", err)
	}

	detail.IsOwner = job.UserID == viewer.ID
	app, err := u.appRepo.FindByJobAndUser(ctx, job.ID, viewer.ID)
	switch {
	case err == nil:
		detail.Application = app
		detail.HasApplied = true
	case !errors.Is(err, domain.ErrNotFound):
		return nil, persistence(ctx, "viewer application", err)
	}
	return detail, nil
}

// requireEmployer resolves the caller and rejects anyone not in the EMPLOYER role.
func requireEmployer(ctx context.Context, users domain.UserRepository, audit *security.SecurityLogger, caller domain.Caller, action string) (*domain.User, error) {
	user, err := resolveUser(ctx, users, caller)
	if err != nil {
		return nil, err
	}
	if !user.IsEmployer() {
		audit.LogAccessDenied(ctx, user.ID, action, "")
		return nil, apperror.Forbidden(msgEmployerOnly)
	}
	return user, nil
}

func (u *jobUsecase) CreatePosting(ctx context.Context, caller domain.Caller, in domain.JobPostingInput) (*domain.JobPosting, error) {
	user, err := requireEmployer(ctx, u.userRepo, u.audit, caller, "create_job")
	if err != nil {
		return nil, err
	}
	if verr := validation.Check(u.validate, in); verr != nil {
		return nil, verr
	}

	salary, err := in.SalaryValue()
	if err != nil {
		return nil, apperror.Validation(msgInvalidSalary, []apperror.FieldError{{
			Field: "salary", Rule: "non_negative_number", Message: msgInvalidSalary,
		}})
	}

	job := &domain.JobPosting{
		Title:           in.Title,
		Company:         in.Company,
		Location:        in.Location,
		Description:     in.Description,
		Salary:          salary,
		JobType:         domain.JobType(in.JobType),
		ExperienceLevel: domain.ExperienceLevel(in.ExperienceLevel),
		Requirements:    in.RequirementList(),
		UserID:          user.ID,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, persistence(ctx, "create job", err)
	}

	u.cache.InvalidateJobLists(ctx)
	return job, nil
}

func (u *jobUsecase) DeletePosting(ctx context.Context, caller domain.Caller, id string) error {
	user, err := requireEmployer(ctx, u.userRepo, u.audit, caller, "delete_job")
	if err != nil {
		return err
	}

	if err := u.jobRepo.DeleteOwnedCascade(ctx, id, user.ID); err != nil {
		return notFoundOr(ctx, "delete job", msgJobNotFound, err)
	}

	u.cache.InvalidateJobLists(ctx)
	u.cache.InvalidateJob(ctx, id)
	u.audit.LogChange(ctx, security.EventJobDeleted, user.ID, map[string]interface{}{"job_id": id})
	return nil
}

// EmployerDashboard lists the employer's postings with their active
// applications. Rejected applications stay persisted but are not shown.
func (u *jobUsecase) EmployerDashboard(ctx context.Context, caller domain.Caller) ([]domain.JobPosting, error) {
	user, err := requireEmployer(ctx, u.userRepo, u.audit, caller, "employer_dashboard")
	if err != nil {
		return nil, err
	}

	jobs, err := u.jobRepo.ListByOwnerWithApplications(ctx, user.ID)
	if err != nil {
		return nil, persistence(ctx, "employer dashboard", err)
	}

	for i := range jobs {
		active := make([]domain.Application, 0, len(jobs[i].Applications))
		for _, app := range jobs[i].Applications {
			if app.Status != domain.StatusRejected {
				active = append(active, app)
			}
		}
		jobs[i].Applications = active
	}
	return jobs, nil
}
