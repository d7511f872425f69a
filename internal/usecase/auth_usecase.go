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

type authUsecase struct {
	userRepo domain.UserRepository
	audit    *security.SecurityLogger
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, audit *security.SecurityLogger, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		audit:    audit,
		validate: validate,
	}
}

func (u *authUsecase) SyncUser(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	if !caller.Authenticated() {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}

	existing, err := u.userRepo.GetByExternalID(ctx, caller.IdentityID)
	switch {
	case err == nil:
		if caller.Name == "" {
			caller.Name = existing.Name
		}
		if caller.Email == "" {
			caller.Email = existing.Email
		}
		if caller.Name == existing.Name && caller.Email == existing.Email {
			return existing, nil
		}
		if err := u.userRepo.UpdateIdentity(ctx, existing.ID, caller.Name, caller.Email); err != nil {
			return nil, persistence(ctx, "update identity", err)
		}
		existing.Name, existing.Email = caller.Name, caller.Email
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, persistence(ctx, "lookup user", err)
	}

	user := &domain.User{
		ExternalID: caller.IdentityID,
		Name:       caller.Name,
		Email:      caller.Email,
		Role:       domain.RoleJobSeeker,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// a concurrent first sign-in already created the row
		if errors.Is(err, domain.ErrDuplicate) {
			if again, gerr := u.userRepo.GetByExternalID(ctx, caller.IdentityID); gerr == nil {
				return again, nil
			}
		}
		return nil, persistence(ctx, "create user", err)
	}
	u.audit.LogChange(ctx, security.EventUserSynced, user.ID, nil)
	return user, nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	return resolveUser(ctx, u.userRepo, caller)
}

func (u *authUsecase) ChangeRole(ctx context.Context, caller domain.Caller, in domain.RoleInput) (*domain.User, error) {
	user, err := resolveUser(ctx, u.userRepo, caller)
	if err != nil {
		return nil, err
	}
	if verr := validation.Check(u.validate, in); verr != nil {
		return nil, verr
	}

	role := domain.UserRole(in.Role)
	if user.Role == role {
		return user, nil
	}
	if err := u.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
		return nil, persistence(ctx, "update role", err)
	}
	u.audit.LogChange(ctx, security.EventRoleChanged, user.ID, map[string]interface{}{
		"from": user.Role,
		"to":   role,
	})
	user.Role = role
	return user, nil
}
