package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserName  CtxKey = "Name"
)

// Caller is the identity the external provider resolved for the current
// request. IdentityID is empty for anonymous callers.
type Caller struct {
	IdentityID string
	Email      string
	Name       string
}

func (c Caller) Authenticated() bool {
	return c.IdentityID != ""
}
