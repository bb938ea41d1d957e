package teacher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster/cli/core"
	"github.com/codemaster/cli/core/catalog"
)

type stubTeacherRepo struct {
	createCourseCalls int
	createLessonCalls int
	createTaskCalls   int
}

func (r *stubTeacherRepo) QueryCourses(context.Context) ([]catalog.Course, error) { return nil, nil }
func (r *stubTeacherRepo) GetCourse(context.Context, int) (catalog.Course, error) {
	return catalog.Course{}, nil
}
func (r *stubTeacherRepo) CreateCourse(_ context.Context, nc NewCourse) (catalog.Course, error) {
	r.createCourseCalls++
	return catalog.Course{ID: 1, Title: nc.Title, Description: nc.Description}, nil
}
func (r *stubTeacherRepo) QueryCourseLessons(context.Context, int) ([]catalog.Lesson, error) {
	return nil, nil
}
func (r *stubTeacherRepo) CreateLesson(_ context.Context, courseID int, nl NewLesson) (catalog.Lesson, error) {
	r.createLessonCalls++
	return catalog.Lesson{ID: 1, CourseID: courseID, Title: nl.Title}, nil
}
func (r *stubTeacherRepo) QueryLessonTasks(context.Context, int) ([]catalog.Task, error) {
	return nil, nil
}
func (r *stubTeacherRepo) CreateTask(_ context.Context, lessonID int, nt NewTask) (catalog.Task, error) {
	r.createTaskCalls++
	return catalog.Task{ID: 1, LessonID: lessonID, Title: nt.Title, HasAutocheck: nt.HasAutocheck}, nil
}
func (r *stubTeacherRepo) QueryStudentsProgress(context.Context) ([]StudentProgress, error) {
	return nil, nil
}

func TestServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &stubTeacherRepo{}
	svc := NewService(repo)

	t.Run("blank titles never reach the backend", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, NewCourse{Title: "   "})
		requireValidationErr(t, err)

		_, err = svc.CreateLesson(ctx, 1, NewLesson{})
		requireValidationErr(t, err)

		_, err = svc.CreateTask(ctx, 1, NewTask{Body: "text but no title"})
		requireValidationErr(t, err)

		assert.Zero(t, repo.createCourseCalls)
		assert.Zero(t, repo.createLessonCalls)
		assert.Zero(t, repo.createTaskCalls)
	})

	t.Run("titles are trimmed before submission", func(t *testing.T) {
		course, err := svc.CreateCourse(ctx, NewCourse{Title: "  Go  ", Description: " intro "})
		require.NoError(t, err)
		assert.Equal(t, "Go", course.Title)
		assert.Equal(t, "intro", course.Description)
		assert.Equal(t, 1, repo.createCourseCalls)
	})
}

func requireValidationErr(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	_, ok := err.(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %T", err)
}
