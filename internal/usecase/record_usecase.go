package usecase

import (
	"context"
	"time"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/cache"
	"jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// buildFunc turns validated input into a record owned by ownerID.
type buildFunc[In any, T domain.Owned] func(in In, ownerID string) (*T, error)

// recordUsecase is the CRUD flow shared by skills, education, experience
// and projects: resolve caller, validate, write scoped to the owner, drop
// the cached CV.
type recordUsecase[In any, T domain.Owned] struct {
	repo     domain.RecordRepository[T]
	userRepo domain.UserRepository
	cache    *cache.Cache
	validate *validator.Validate
	build    buildFunc[In, T]
}

func newRecordUsecase[In any, T domain.Owned](
	repo domain.RecordRepository[T],
	userRepo domain.UserRepository,
	c *cache.Cache,
	validate *validator.Validate,
	build buildFunc[In, T],
) domain.RecordUsecase[In, T] {
	return &recordUsecase[In, T]{repo: repo, userRepo: userRepo, cache: c, validate: validate, build: build}
}

func (u *recordUsecase[In, T]) List(ctx context.Context, caller domain.Caller) ([]T, error) {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return nil, err
	}
	recs, err := u.repo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, persistence(ctx, "list records", err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

func (u *recordUsecase[In, T]) prepare(ctx context.Context, caller domain.Caller, in In) (*domain.User, *T, error) {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return nil, nil, err
	}
	if verr := validation.Check(u.validate, in); verr != nil {
		return nil, nil, verr
	}
	rec, err := u.build(in, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, rec, nil
}

func (u *recordUsecase[In, T]) Add(ctx context.Context, caller domain.Caller, in In) (*T, error) {
	user, rec, err := u.prepare(ctx, caller, in)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		return nil, persistence(ctx, "create record", err)
	}
	u.cache.InvalidateCV(ctx, user.ID)
	return rec, nil
}

func (u *recordUsecase[In, T]) Update(ctx context.Context, caller domain.Caller, id string, in In) (*T, error) {
	user, rec, err := u.prepare(ctx, caller, in)
	if err != nil {
		return nil, err
	}
	if err := u.repo.UpdateOwned(ctx, id, user.ID, rec); err != nil {
		return nil, notFoundOr(ctx, "update record", msgRecordNotFound, err)
	}
	u.cache.InvalidateCV(ctx, user.ID)
	return rec, nil
}

func (u *recordUsecase[In, T]) Delete(ctx context.Context, caller domain.Caller, id string) error {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return err
	}
	if err := u.repo.DeleteOwned(ctx, id, user.ID); err != nil {
		return notFoundOr(ctx, "delete record", msgRecordNotFound, err)
	}
	u.cache.InvalidateCV(ctx, user.ID)
	return nil
}

func NewSkillUsecase(repo domain.RecordRepository[domain.Skill], userRepo domain.UserRepository, c *cache.Cache, validate *validator.Validate) domain.RecordUsecase[domain.SkillInput, domain.Skill] {
	return newRecordUsecase[domain.SkillInput, domain.Skill](repo, userRepo, c, validate, func(in domain.SkillInput, ownerID string) (*domain.Skill, error) {
		return &domain.Skill{UserID: ownerID, Name: in.Name, Level: domain.SkillLevel(in.Level)}, nil
	})
}

func NewEducationUsecase(repo domain.RecordRepository[domain.Education], userRepo domain.UserRepository, c *cache.Cache, validate *validator.Validate) domain.RecordUsecase[domain.EducationInput, domain.Education] {
	return newRecordUsecase[domain.EducationInput, domain.Education](repo, userRepo, c, validate, func(in domain.EducationInput, ownerID string) (*domain.Education, error) {
		start, end, err := parseRange(in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		return &domain.Education{
			UserID:       ownerID,
			Institution:  in.Institution,
			Degree:       in.Degree,
			FieldOfStudy: in.FieldOfStudy,
			StartDate:    start,
			EndDate:      end,
			Description:  in.Description,
		}, nil
	})
}

func NewExperienceUsecase(repo domain.RecordRepository[domain.Experience], userRepo domain.UserRepository, c *cache.Cache, validate *validator.Validate) domain.RecordUsecase[domain.ExperienceInput, domain.Experience] {
	return newRecordUsecase[domain.ExperienceInput, domain.Experience](repo, userRepo, c, validate, func(in domain.ExperienceInput, ownerID string) (*domain.Experience, error) {
		start, end, err := parseRange(in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		return &domain.Experience{
			UserID:      ownerID,
			JobTitle:    in.JobTitle,
			Company:     in.Company,
			StartDate:   start,
			EndDate:     end,
			Description: in.Description,
		}, nil
	})
}

func NewProjectUsecase(repo domain.RecordRepository[domain.Project], userRepo domain.UserRepository, c *cache.Cache, validate *validator.Validate) domain.RecordUsecase[domain.ProjectInput, domain.Project] {
	return newRecordUsecase[domain.ProjectInput, domain.Project](repo, userRepo, c, validate, func(in domain.ProjectInput, ownerID string) (*domain.Project, error) {
		start, end, err := parseRange(in.StartDate, in.EndDate)
		if err != nil {
			return nil, err
		}
		return &domain.Project{
			UserID:      ownerID,
			Title:       in.Title,
			Description: in.Description,
			URL:         in.URL,
			StartDate:   start,
			EndDate:     end,
		}, nil
	})
}

// parseRange reads dates that already passed the iso_date rule.
func parseRange(startRaw, endRaw string) (start time.Time, end *time.Time, err error) {
	start, err = domain.ParseDate(startRaw)
	if err == nil {
		end, err = domain.ParseOptionalDate(endRaw)
	}
	if err != nil {
		return time.Time{}, nil, apperror.Validation(msgInvalidDate, []apperror.FieldError{{Rule: "iso_date", Message: msgInvalidDate}})
	}
	return start, end, nil
}
