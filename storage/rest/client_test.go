package rest_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster/cli/core"
	"github.com/codemaster/cli/core/progress"
	"github.com/codemaster/cli/core/user"
	"github.com/codemaster/cli/services/tokenstore"
	"github.com/codemaster/cli/storage/rest"
	testutil "github.com/codemaster/cli/tests"
)

func newTestClient(t *testing.T, opts ...rest.Option) (*testutil.Backend, *rest.Client, *tokenstore.MemoryStore) {
	t.Helper()
	backend := testutil.NewBackend()
	srv := backend.Start()
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore()
	return backend, rest.NewClient(srv.URL, tokens, opts...), tokens
}

func loginAs(t *testing.T, backend *testutil.Backend, tokens *tokenstore.MemoryStore, usr *testutil.User) {
	t.Helper()
	require.NoError(t, tokens.Write(backend.TokenFor(t, usr)))
}

func TestIdentityRepository(t *testing.T) {
	ctx := context.Background()
	backend, client, tokens := newTestClient(t)
	backend.AddUser(t, "jane@example.com", "Passw0rd!", "Jane Doe", false)
	repo := rest.NewIdentityRepository(client)

	t.Run("login and me", func(t *testing.T) {
		tok, err := repo.Login(ctx, "jane@example.com", "Passw0rd!")
		require.NoError(t, err)
		require.NotEmpty(t, tok)
		require.NoError(t, tokens.Write(tok))

		profile, err := repo.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", profile.Email)
		assert.Equal(t, "Jane Doe", profile.FullName)
		assert.False(t, profile.IsTeacher)
		assert.True(t, profile.IsActive)
	})

	t.Run("rejected login does not touch the stored token", func(t *testing.T) {
		require.NoError(t, tokens.Write("kept"))

		_, err := repo.Login(ctx, "jane@example.com", "wrong")
		require.Error(t, err)
		assert.True(t, core.IsAuthorizationLost(err))
		assert.Equal(t, "Incorrect email or password", err.Error())

		tok, _ := tokens.Read()
		assert.Equal(t, "kept", tok)
	})

	t.Run("register", func(t *testing.T) {
		profile, err := repo.Register(ctx, user.NewAccount{
			Email: "john@example.com", FullName: "John Doe", Password: "Passw0rd!", IsTeacher: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "john@example.com", profile.Email)
		assert.True(t, profile.IsTeacher)
	})

	t.Run("duplicate register", func(t *testing.T) {
		_, err := repo.Register(ctx, user.NewAccount{
			Email: "jane@example.com", Password: "Passw0rd!",
		})
		require.Error(t, err)
		verr, ok := err.(*core.ValidationError)
		require.True(t, ok, "want ValidationError, got %T", err)
		assert.Equal(t, "Email already registered", verr.Error())
	})
}

func TestClientErrorMapping(t *testing.T) {
	ctx := context.Background()
	backend, client, tokens := newTestClient(t)
	student := backend.AddUser(t, "jane@example.com", "Passw0rd!", "Jane Doe", false)
	course := backend.AddCourse(student, "Go", "")
	lesson := backend.AddLesson(course, "Basics", "...")
	manual := backend.AddTask(lesson, "Essay", "Write something")

	catalogRepo := rest.NewCatalogRepository(client)
	progressRepo := rest.NewProgressRepository(client)
	teacherRepo := rest.NewTeacherRepository(client)

	t.Run("missing token", func(t *testing.T) {
		_, err := catalogRepo.QueryCourses(ctx)
		require.Error(t, err)
		assert.True(t, core.IsAuthorizationLost(err))
		assert.Equal(t, "Not authenticated", err.Error())
	})

	t.Run("invalid token is dropped from the store", func(t *testing.T) {
		require.NoError(t, tokens.Write("garbage"))

		_, err := catalogRepo.QueryCourses(ctx)
		require.Error(t, err)
		assert.True(t, core.IsAuthorizationLost(err))

		tok, _ := tokens.Read()
		assert.Empty(t, tok)
	})

	t.Run("forbidden keeps the token", func(t *testing.T) {
		loginAs(t, backend, tokens, student)

		_, err := teacherRepo.QueryCourses(ctx)
		require.Error(t, err)
		assert.True(t, core.IsAuthorizationLost(err))
		assert.Equal(t, "Teacher access required", err.Error())

		tok, _ := tokens.Read()
		assert.NotEmpty(t, tok)
	})

	t.Run("not found", func(t *testing.T) {
		loginAs(t, backend, tokens, student)

		_, err := catalogRepo.GetLesson(ctx, 99999)
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.Contains(t, err.Error(), "Lesson not found")
	})

	t.Run("bad request detail is surfaced verbatim", func(t *testing.T) {
		loginAs(t, backend, tokens, student)

		_, err := progressRepo.SubmitAnswer(ctx, manual.ID, 1)
		require.Error(t, err)
		verr, ok := err.(*core.ValidationError)
		require.True(t, ok, "want ValidationError, got %T", err)
		assert.Equal(t, "Task does not support auto-checking", verr.Error())
	})
}

func TestClientTimeout(t *testing.T) {
	ctx := context.Background()
	backend, client, tokens := newTestClient(t, rest.WithTimeouts(30*time.Millisecond, 30*time.Millisecond))
	student := backend.AddUser(t, "jane@example.com", "Passw0rd!", "Jane Doe", false)
	loginAs(t, backend, tokens, student)
	backend.SetDelay(150 * time.Millisecond)

	_, err := rest.NewCatalogRepository(client).QueryCourses(ctx)
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
	assert.False(t, core.IsAuthorizationLost(err))

	// a slow server never costs the credential
	tok, _ := tokens.Read()
	assert.NotEmpty(t, tok)
}

func TestClientUnreachableServer(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(nil)
	srv.Close() // nothing listens here anymore

	tokens := tokenstore.NewMemoryStore()
	client := rest.NewClient(srv.URL, tokens)

	_, err := rest.NewCatalogRepository(client).QueryCourses(ctx)
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
}

func TestProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, client, tokens := newTestClient(t)
	teacher := backend.AddUser(t, "teach@example.com", "Passw0rd!", "Mx Teach", true)
	student := backend.AddUser(t, "jane@example.com", "Passw0rd!", "Jane Doe", false)

	course := backend.AddCourse(teacher, "Go", "An introduction")
	lesson := backend.AddLesson(course, "Basics", "...")
	task := backend.AddTask(lesson, "Pick one", "",
		testutil.Option{Text: "wrong"},
		testutil.Option{Text: "right", IsCorrect: true},
	)
	loginAs(t, backend, tokens, student)

	catalogRepo := rest.NewCatalogRepository(client)
	progressRepo := rest.NewProgressRepository(client)

	require.NoError(t, progressRepo.Enroll(ctx, course.ID))

	res, err := progressRepo.SubmitAnswer(ctx, task.ID, task.Options[1].ID)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, progress.MsgCorrect, res.Message)

	require.NoError(t, progressRepo.CompleteLesson(ctx, lesson.ID))

	// the listing reflects the server-computed aggregates
	courses, err := progressRepo.QueryMyCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	cp := courses[0]
	assert.Equal(t, course.ID, cp.CourseID)
	assert.Equal(t, 1, cp.LessonsCompleted)
	assert.Equal(t, 1, cp.TotalLessons)
	assert.Equal(t, 1, cp.TasksCompleted)
	assert.Equal(t, 1, cp.TotalTasks)
	assert.Equal(t, float64(100), cp.ScoreAvg)

	// a re-fetched task carries the submission, ready for reconciliation
	tasks, err := catalogRepo.QueryLessonTasks(ctx, lesson.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].SelectedOptionID)
	assert.Equal(t, task.Options[1].ID, *tasks[0].SelectedOptionID)
	assert.True(t, tasks[0].IsCompleted)

	states := progress.Reconcile(tasks)
	st := states[task.ID]
	assert.True(t, st.Submitted)
	require.NotNil(t, st.Result)
	assert.True(t, st.Result.IsCorrect)
}
