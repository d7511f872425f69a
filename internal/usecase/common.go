package usecase

import (
	"context"
	"errors"

	"jobmatch-backend/internal/domain"
	"jobmatch-backend/pkg/apperror"
	"jobmatch-backend/pkg/logger"
)

// User facing messages.
const (
	msgUnauthenticated    = "Trebuie să fii autentificat pentru a continua"
	msgUserNotFound       = "Utilizatorul nu a fost găsit"
	msgEmployerOnly       = "Doar angajatorii pot efectua această acțiune"
	msgJobNotFound        = "Jobul nu a fost găsit"
	msgApplicationMissing = "Aplicația nu a fost găsită"
	msgRecordNotFound     = "Înregistrarea nu a fost găsită"
	msgSelfApplication    = "Nu poți aplica la propriul job"
	msgDuplicate          = "Ai aplicat deja la acest job"
	msgPersistence        = "A apărut o eroare. Te rugăm să încerci din nou."
	msgInvalidSalary      = "Salariul trebuie să fie un număr"
	msgInvalidDate        = "Dată invalidă"

	MsgJobDeleted          = "Jobul a fost șters cu succes"
	MsgApplicationAccepted = "Aplicația a fost acceptată."
	MsgApplicationRejected = "Aplicația a fost respinsă și eliminată din listă."
)

// resolveUser maps the caller's external identity onto the domain user.
func resolveUser(ctx context.Context, users domain.UserRepository, caller domain.Caller) (*domain.User, error) {
	if !caller.Authenticated() {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}
	user, err := users.GetByExternalID(ctx, caller.IdentityID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.UserNotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, persistence(ctx, "resolve user", err)
	}
	return user, nil
}

// persistence logs the cause and hides it behind the generic message.
func persistence(ctx context.Context, op string, err error) error {
	logger.Log.ErrorContext(ctx, "persistence failure", "op", op, "error", err)
	return apperror.Persistence(msgPersistence, err)
}

// notFoundOr maps domain.ErrNotFound to a NotFound error with msg and any
// other failure to a persistence error.
func notFoundOr(ctx context.Context, op, msg string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return persistence(ctx, op, err)
}
