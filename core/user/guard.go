package user

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrTeacherOnly   = errors.New("a teacher account is required")
)

// RequireUser gates a page on session presence: it resolves the profile
// (refreshing it when needed) and fails with ErrLoginRequired otherwise.
func (s *Store) RequireUser(ctx context.Context) (Profile, error) {
	return s.EnsureProfile(ctx)
}

// RequireTeacher gates the authoring console on the is_teacher flag.
func (s *Store) RequireTeacher(ctx context.Context) (Profile, error) {
	p, err := s.EnsureProfile(ctx)
	if err != nil {
		return Profile{}, err
	}
	if !p.IsTeacher {
		return Profile{}, ErrTeacherOnly
	}
	return p, nil
}
