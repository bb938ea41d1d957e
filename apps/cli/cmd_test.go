package main

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster/cli/core/catalog"
	"github.com/codemaster/cli/core/progress"
	"github.com/codemaster/cli/core/teacher"
	"github.com/codemaster/cli/core/user"
	"github.com/codemaster/cli/services/tokenstore"
	"github.com/codemaster/cli/storage/rest"
	testutil "github.com/codemaster/cli/tests"
)

func newTestCLI(t *testing.T) (*commandLine, *testutil.Backend, *bytes.Buffer) {
	t.Helper()
	backend := testutil.NewBackend()
	srv := backend.Start()
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore()
	client := rest.NewClient(srv.URL, tokens)
	out := &bytes.Buffer{}
	cli := &commandLine{
		session:  user.NewStore(rest.NewIdentityRepository(client), tokens, nil),
		catalog:  catalog.NewService(rest.NewCatalogRepository(client)),
		progRepo: rest.NewProgressRepository(client),
		teacher:  teacher.NewService(rest.NewTeacherRepository(client)),
		out:      out,
	}
	cli.progress = progress.NewService(cli.progRepo)
	return cli, backend, out
}

func promptPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func TestCLIStudentFlow(t *testing.T) {
	cli, backend, out := newTestCLI(t)
	promptPassword(t, "Passw0rd!")

	owner := backend.AddUser(t, "teach@example.com", "Passw0rd!", "Mx Teach", true)
	backend.AddUser(t, "jane@example.com", "Passw0rd!", "Jane Doe", false)
	course := backend.AddCourse(owner, "Go", "An introduction")
	lesson := backend.AddLesson(course, "Basics", "Variables and types.")
	task := backend.AddTask(lesson, "Pick one", "Which keyword declares a variable?",
		testutil.Option{Text: "let"},
		testutil.Option{Text: "var", IsCorrect: true},
	)

	run := func(args ...string) string {
		t.Helper()
		out.Reset()
		require.NoError(t, cli.run(append([]string{"codemaster"}, args...)))
		return out.String()
	}

	assert.Contains(t, run("login", "-email", "jane@example.com"), "Logged in as jane@example.com")
	assert.Contains(t, run("whoami"), "jane@example.com (Jane Doe, student)")
	assert.Contains(t, run("courses"), "Go")

	got := run("enroll", "-course", strconv.Itoa(course.ID))
	assert.Contains(t, got, "Enrolled.")
	assert.Contains(t, got, "lessons 0/1 (0%)")

	got = run("lesson", "-id", strconv.Itoa(lesson.ID))
	assert.Contains(t, got, "Basics")
	assert.Contains(t, got, "Pick one")
	assert.Contains(t, got, "var")

	got = run("submit", "-task", strconv.Itoa(task.ID), "-option", strconv.Itoa(task.Options[1].ID))
	assert.Contains(t, got, progress.MsgCorrect)

	// resubmission replays the restored result, it does not fail
	got = run("submit", "-task", strconv.Itoa(task.ID), "-option", strconv.Itoa(task.Options[0].ID))
	assert.Contains(t, got, progress.MsgCorrect)

	got = run("lesson", "-id", strconv.Itoa(lesson.ID))
	assert.Contains(t, got, progress.MsgCorrect)

	got = run("complete-lesson", "-id", strconv.Itoa(lesson.ID))
	assert.Contains(t, got, "Lesson marked as completed.")
	assert.Contains(t, got, "[x]")

	got = run("my-courses")
	assert.Contains(t, got, "lessons 1/1 (100%)")
	assert.Contains(t, got, "tasks 1/1 (100%)")

	// students are kept out of the authoring console
	out.Reset()
	err := cli.run([]string{"codemaster", "teacher", "courses"})
	assert.Equal(t, user.ErrTeacherOnly, err)

	run("logout")
	err = cli.run([]string{"codemaster", "whoami"})
	assert.Equal(t, user.ErrLoginRequired, err)
}

func TestCLITeacherFlow(t *testing.T) {
	cli, backend, out := newTestCLI(t)
	promptPassword(t, "Passw0rd!")
	backend.AddUser(t, "teach@example.com", "Passw0rd!", "Mx Teach", true)

	run := func(args ...string) string {
		t.Helper()
		out.Reset()
		require.NoError(t, cli.run(append([]string{"codemaster"}, args...)))
		return out.String()
	}

	run("login", "-email", "teach@example.com")
	assert.Contains(t, run("whoami"), "teacher")

	got := run("teacher", "create-course", "-title", "Go", "-description", "An introduction")
	assert.Contains(t, got, "Created course")

	assert.Contains(t, run("teacher", "courses"), "Go")
	assert.Contains(t, run("teacher", "students"), "No students enrolled yet.")
}

func TestCLIUsage(t *testing.T) {
	cli, _, out := newTestCLI(t)

	err := cli.run([]string{"codemaster"})
	assert.Equal(t, errHelp, err)
	assert.Contains(t, out.String(), "Usage:")

	out.Reset()
	err = cli.run([]string{"codemaster", "no-such-command"})
	assert.Equal(t, errHelp, err)
}

func TestDisplayError(t *testing.T) {
	assert.Contains(t, displayError(user.ErrLoginRequired), "not logged in")
	assert.Contains(t, displayError(user.ErrTeacherOnly), "teacher account")
}
