package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireUser(t *testing.T) {
	ctx := context.Background()

	t.Run("logged out", func(t *testing.T) {
		store, _ := newTestStore(newFakeIDP())
		_, err := store.RequireUser(ctx)
		assert.Equal(t, ErrLoginRequired, err)
	})

	t.Run("logged in", func(t *testing.T) {
		idp := newFakeIDP()
		store, _ := newTestStore(idp)
		require.NoError(t, store.Login(ctx, "jane@example.com", "secret"))

		profile, err := store.RequireUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, idp.me, profile)
	})
}

func TestRequireTeacher(t *testing.T) {
	ctx := context.Background()

	t.Run("student", func(t *testing.T) {
		idp := newFakeIDP()
		store, _ := newTestStore(idp)
		require.NoError(t, store.Login(ctx, "jane@example.com", "secret"))

		_, err := store.RequireTeacher(ctx)
		assert.Equal(t, ErrTeacherOnly, err)
	})

	t.Run("teacher", func(t *testing.T) {
		idp := newFakeIDP()
		idp.me.IsTeacher = true
		store, _ := newTestStore(idp)
		require.NoError(t, store.Login(ctx, "teach@example.com", "secret"))

		profile, err := store.RequireTeacher(ctx)
		require.NoError(t, err)
		assert.True(t, profile.IsTeacher)
	})
}
