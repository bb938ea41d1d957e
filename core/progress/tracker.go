package progress

import (
	"context"

	"github.com/pkg/errors"

	"github.com/codemaster/cli/core/catalog"
)

var (
	// caller/UI errors: never retried
	ErrUnknownTask      = errors.New("task does not belong to this lesson")
	ErrNoAutocheck      = errors.New("this task does not support auto-checking")
	ErrUnknownOption    = errors.New("option does not belong to this task")
	ErrAlreadySubmitted = errors.New("an answer was already submitted for this task")
)

// Tracker owns the per-task answer state for one open lesson. A lesson
// switch discards the whole tracker and builds a new one from the freshly
// fetched task list, so the state is always fully rebuilt, never partially
// stale.
//
// The tracker is owned by a single page for its lifetime and is not safe
// for concurrent use.
type Tracker struct {
	repo     Repository
	lessonID int
	tasks    map[int]catalog.Task
	states   map[int]TaskState
}

func NewTracker(repo Repository, lessonID int, tasks []catalog.Task) *Tracker {
	byID := make(map[int]catalog.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}
	return &Tracker{
		repo:     repo,
		lessonID: lessonID,
		tasks:    byID,
		states:   Reconcile(tasks),
	}
}

func (t *Tracker) LessonID() int { return t.lessonID }

// State returns the current state of the given task.
func (t *Tracker) State(taskID int) (TaskState, bool) {
	st, ok := t.states[taskID]
	return st, ok
}

// Select records the student's current answer choice without submitting it.
func (t *Tracker) Select(taskID, optionID int) error {
	task, ok := t.tasks[taskID]
	if !ok {
		return ErrUnknownTask
	}
	if _, ok := task.Option(optionID); !ok {
		return ErrUnknownOption
	}
	st := t.states[taskID]
	if st.Submitted {
		return ErrAlreadySubmitted
	}
	st.SelectedOptionID = optionID
	t.states[taskID] = st
	return nil
}

// Submit checks the chosen option with the backend and records the result.
//
// Preconditions (caller errors): the task must support autocheck and the
// option must belong to it. Once a task is submitted, further calls within
// the same lesson-load cycle are a local no-op returning the previously
// recorded result, with no second network call. Only this task's state is
// touched; lesson completion is a separate, server-owned aggregate.
func (t *Tracker) Submit(ctx context.Context, taskID, optionID int) (Result, error) {
	task, ok := t.tasks[taskID]
	if !ok {
		return Result{}, ErrUnknownTask
	}
	if !task.HasAutocheck {
		return Result{}, ErrNoAutocheck
	}
	if _, ok := task.Option(optionID); !ok {
		return Result{}, ErrUnknownOption
	}

	st := t.states[taskID]
	if st.Submitted {
		if st.Result != nil {
			return *st.Result, nil
		}
		// completed on the server but no derivable result (inconsistent
		// data): still refuse to re-submit
		return Result{}, ErrAlreadySubmitted
	}

	res, err := t.repo.SubmitAnswer(ctx, taskID, optionID)
	if err != nil {
		return Result{}, err
	}

	st.SelectedOptionID = optionID
	st.Submitted = true
	r := res
	st.Result = &r
	t.states[taskID] = st
	return res, nil
}
