package auth

import (
	"github.com/whiteakyloff/metis-back-v2/internal/domain/user"
)

// UserView is the account shape returned to clients.
type UserView struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	EmailVerified bool   `json:"emailVerified"`
	AuthMethod    string `json:"authMethod"`
}

// NewUserView builds a UserView from a domain user.
func NewUserView(u *user.User) UserView {
	return UserView{
		ID:            u.ID().String(),
		Email:         u.Email(),
		Username:      u.Username(),
		EmailVerified: u.EmailVerified(),
		AuthMethod:    string(u.AuthMethod()),
	}
}

// AuthPayload is the outcome of a successful register or login.
type AuthPayload struct {
	Token   string   `json:"token"`
	Message string   `json:"message,omitempty"`
	User    UserView `json:"user"`
}

// RecoveryPayload is the outcome of a successful password recovery.
type RecoveryPayload struct {
	Message string `json:"message"`
}
