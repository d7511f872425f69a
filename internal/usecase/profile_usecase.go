package usecase

import (
	"context"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/cache"
	"jobmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	userRepo domain.UserRepository
	cache    *cache.Cache
	validate *validator.Validate
}

func NewProfileUsecase(userRepo domain.UserRepository, c *cache.Cache, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{userRepo: userRepo, cache: c, validate: validate}
}

func (u *profileUsecase) GetProfile(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return nil, err
	}
	full, err := u.userRepo.GetWithProfile(ctx, user.ID)
	if err != nil {
		return nil, persistence(ctx, "load profile", err)
	}
	return full, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, caller domain.Caller, in domain.ProfileInput) (*domain.User, error) {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return nil, err
	}
	if verr := validation.Check(u.validate, in); verr != nil {
		return nil, verr
	}

	profile := &domain.Profile{
		Bio:      in.Bio,
		Location: in.Location,
		Phone:    in.Phone,
		Website:  in.Website,
	}
	if err := u.userRepo.SaveProfile(ctx, user.ID, in.Name, profile); err != nil {
		return nil, persistence(ctx, "save profile", err)
	}
	u.cache.InvalidateCV(ctx, user.ID)

	full, err := u.userRepo.GetWithProfile(ctx, user.ID)
	if err != nil {
		return nil, persistence(ctx, "reload profile", err)
	}
	return full, nil
}

// GetCV returns the caller with profile and every CV section loaded.
func (u *profileUsecase) GetCV(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return nil, err
	}

	var cv domain.User
	err = u.cache.Aside(ctx, cache.CVKey(user.ID), &cv, func() error {
		found, err := u.userRepo.GetCV(ctx, user.ID)
		if err != nil {
			return err
		}
		cv = *found
		return nil
	})
	if err != nil {
		return nil, persistence(ctx, "load cv", err)
	}
	return &cv, nil
}
