package usecase

import (
	"context"
	"errors"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/security"
	"jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	audit           *security.SecurityLogger
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	audit *security.SecurityLogger,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		audit:           audit,
		validate:        validate,
	}
}

// Apply submits the caller's application. The checks run in a fixed order:
// caller, posting, self application, duplicate, cover letter.
func (uc *applicationUsecase) Apply(ctx context.Context, caller domain.Caller, jobID string, in domain.ApplyInput) (*domain.Application, error) {
	user, err := resolveUser(ctx, uc.userRepo, caller)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(ctx, "load job", msgJobNotFound, err)
	}

	if job.UserID == user.ID {
		return nil, apperror.SelfApplicationForbidden(msgSelfApplication)
	}

	_, err = uc.applicationRepo.FindByJobAndUser(ctx, job.ID, user.ID)
	switch {
	case err == nil:
		return nil, apperror.DuplicateApplication(msgDuplicate)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, persistence(ctx, "check application", err)
	}

	if verr := validation.Check(uc.validate, in); verr != nil {
		return nil, verr
	}

	app := &domain.Application{
		JobPostingID: job.ID,
		UserID:       user.ID,
		CoverLetter:  in.CoverLetter,
		Status:       domain.StatusPending,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// lost a race against a concurrent submission
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.DuplicateApplication(msgDuplicate)
		}
		return nil, persistence(ctx, "create application", err)
	}
	return app, nil
}

// UpdateStatus lets the posting owner accept or reject an application.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, caller domain.Caller, applicationID string, in domain.StatusInput) (*domain.StatusChange, error) {
	user, err := requireEmployer(ctx, uc.userRepo, uc.audit, caller, "update_application_status")
	if err != nil {
		return nil, err
	}
	if verr := validation.Check(uc.validate, in); verr != nil {
		return nil, verr
	}

	app, err := uc.applicationRepo.GetForOwner(ctx, applicationID, user.ID)
	if err != nil {
		return nil, notFoundOr(ctx, "load application", msgApplicationMissing, err)
	}

	status := domain.ApplicationStatus(in.Status)
	if err := uc.applicationRepo.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, notFoundOr(ctx, "update status", msgApplicationMissing, err)
	}
	app.Status = status

	uc.audit.LogChange(ctx, security.EventApplicationDecided, user.ID, map[string]interface{}{
		"application_id": app.ID,
		"status":         status,
	})

	if status == domain.StatusRejected {
		return &domain.StatusChange{Status: status, Message: MsgApplicationRejected}, nil
	}
	return &domain.StatusChange{Status: status, Message: MsgApplicationAccepted, Application: app}, nil
}

// Detail is the employer's view of one applicant, CV included.
func (uc *applicationUsecase) Detail(ctx context.Context, caller domain.Caller, applicationID string) (*domain.Application, error) {
	user, err := requireEmployer(ctx, uc.userRepo, uc.audit, caller, "application_detail")
	if err != nil {
		return nil, err
	}

	app, err := uc.applicationRepo.GetDetailForOwner(ctx, applicationID, user.ID)
	if err != nil {
		return nil, notFoundOr(ctx, "application detail", msgApplicationMissing, err)
	}
	return app, nil
}
