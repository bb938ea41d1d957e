package progress

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemaster/cli/core/catalog"
)

type stubProgressRepo struct {
	submitCalls int
	res         Result
	err         error
}

func (r *stubProgressRepo) SubmitAnswer(context.Context, int, int) (Result, error) {
	r.submitCalls++
	if r.err != nil {
		return Result{}, r.err
	}
	return r.res, nil
}

func (r *stubProgressRepo) Enroll(context.Context, int) error         { return nil }
func (r *stubProgressRepo) CompleteLesson(context.Context, int) error { return nil }
func (r *stubProgressRepo) QueryMyCourses(context.Context) ([]CourseProgress, error) {
	return nil, nil
}

func lessonTasks() []catalog.Task {
	return []catalog.Task{
		{ID: 1, LessonID: 100, HasAutocheck: true, Options: autocheckOptions()},
		{ID: 2, LessonID: 100, HasAutocheck: true, Options: autocheckOptions()},
		{ID: 3, LessonID: 100}, // manual task
	}
}

func TestTrackerSubmit(t *testing.T) {
	ctx := context.Background()
	repo := &stubProgressRepo{res: Result{IsCorrect: true, Message: MsgCorrect}}
	tracker := NewTracker(repo, 100, lessonTasks())

	res, err := tracker.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, MsgCorrect, res.Message)
	assert.Equal(t, 1, repo.submitCalls)

	st, ok := tracker.State(1)
	require.True(t, ok)
	assert.Equal(t, TaskState{SelectedOptionID: 2, Submitted: true, Result: &res}, st)

	// the sibling tasks are untouched
	st, _ = tracker.State(2)
	assert.Equal(t, TaskState{}, st)
}

func TestTrackerSubmitIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &stubProgressRepo{res: Result{IsCorrect: false, Message: MsgIncorrect}}
	tracker := NewTracker(repo, 100, lessonTasks())

	first, err := tracker.Submit(ctx, 1, 1)
	require.NoError(t, err)

	// the second call replays the recorded result without hitting the
	// network, whatever option is passed
	second, err := tracker.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.submitCalls)
}

func TestTrackerSubmitRestoredTask(t *testing.T) {
	ctx := context.Background()
	repo := &stubProgressRepo{}
	tasks := lessonTasks()
	tasks[0].SelectedOptionID = intPtr(2)
	tasks[0].IsCompleted = true
	tracker := NewTracker(repo, 100, tasks)

	res, err := tracker.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, Result{IsCorrect: true, Message: MsgCorrect}, res)
	assert.Zero(t, repo.submitCalls)
}

func TestTrackerSubmitPreconditions(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		taskID   int
		optionID int
		wantErr  error
	}{
		{"unknown task", 42, 1, ErrUnknownTask},
		{"manual task", 3, 1, ErrNoAutocheck},
		{"unknown option", 1, 99, ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubProgressRepo{}
			tracker := NewTracker(repo, 100, lessonTasks())

			_, err := tracker.Submit(ctx, tt.taskID, tt.optionID)
			assert.Equal(t, tt.wantErr, err)
			assert.Zero(t, repo.submitCalls)
		})
	}
}

func TestTrackerSubmitFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := &stubProgressRepo{err: errors.New("boom")}
	tracker := NewTracker(repo, 100, lessonTasks())

	_, err := tracker.Submit(ctx, 1, 2)
	require.Error(t, err)

	st, _ := tracker.State(1)
	assert.False(t, st.Submitted)
	assert.Nil(t, st.Result)

	// a retry goes back to the network
	repo.err = nil
	repo.res = Result{IsCorrect: true, Message: MsgCorrect}
	_, err = tracker.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.submitCalls)
}

func TestTrackerSelect(t *testing.T) {
	ctx := context.Background()
	repo := &stubProgressRepo{res: Result{IsCorrect: true, Message: MsgCorrect}}
	tracker := NewTracker(repo, 100, lessonTasks())

	require.NoError(t, tracker.Select(1, 1))
	st, _ := tracker.State(1)
	assert.Equal(t, 1, st.SelectedOptionID)

	// re-selection before submit is fine
	require.NoError(t, tracker.Select(1, 2))

	assert.Equal(t, ErrUnknownTask, tracker.Select(42, 1))
	assert.Equal(t, ErrUnknownOption, tracker.Select(1, 99))

	_, err := tracker.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, ErrAlreadySubmitted, tracker.Select(1, 1))
}
