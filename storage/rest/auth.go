package rest

import (
	"context"
	"net/url"

	"github.com/codemaster/cli/core/user"
)

// IdentityRepository implements user.IdentityProvider over the backend
// /auth endpoints.
type IdentityRepository struct {
	c *Client
}

var _ user.IdentityProvider = (*IdentityRepository)(nil)

func NewIdentityRepository(c *Client) *IdentityRepository {
	return &IdentityRepository{c: c}
}

func (repo *IdentityRepository) Login(ctx context.Context, email, password string) (string, error) {
	form := make(url.Values)
	form.Set("username", email) // OAuth2 password form: username carries the email
	form.Set("password", password)

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := repo.c.postForm(ctx, "/auth/login", form, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", user.ErrMalformedResponse
	}
	return out.AccessToken, nil
}

func (repo *IdentityRepository) Register(ctx context.Context, na user.NewAccount) (user.Profile, error) {
	payload := struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FullName  string `json:"full_name,omitempty"`
		IsTeacher bool   `json:"is_teacher"`
	}{na.Email, na.Password, na.FullName, na.IsTeacher}

	var profile user.Profile
	if err := repo.c.postJSON(ctx, "/auth/register", payload, &profile); err != nil {
		return user.Profile{}, err
	}
	return profile, nil
}

func (repo *IdentityRepository) Me(ctx context.Context) (user.Profile, error) {
	var profile user.Profile
	if err := repo.c.get(ctx, "/auth/me", nil, &profile); err != nil {
		return user.Profile{}, err
	}
	return profile, nil
}
