package user

import (
	"context"

	"github.com/codemaster/cli/core"
)

// Profile is the identity resolved from the access token. It is derived
// state: always re-fetched from the backend, never persisted, and replaced
// wholesale on every refresh.
type Profile struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsTeacher bool   `json:"is_teacher"`
	IsActive  bool   `json:"is_active"`
}

// Credentials is the login form input.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	if err := core.Validate.Struct(c); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// NewAccount contains information needed to register a new account.
type NewAccount struct {
	Email           string `json:"email" validate:"required,email"`
	FullName        string `json:"full_name"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	IsTeacher       bool   `json:"is_teacher"`
}

func (na *NewAccount) Validate() error {
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.FullName = core.CleanString(na.FullName)
	if err := core.Validate.Struct(na); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// IdentityProvider is the identity endpoint surface the session store
// drives. storage/rest implements it over the backend API.
type IdentityProvider interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates a new account.
	Register(ctx context.Context, na NewAccount) (Profile, error)
	// Me resolves the profile behind the current token.
	Me(ctx context.Context) (Profile, error)
}
