package progress

import "github.com/codemaster/cli/core/catalog"

// Fixed result messages, mirroring what the backend returns on a live
// submission.
const (
	MsgCorrect   = "Correct! The task is marked as completed."
	MsgIncorrect = "Incorrect answer. Try again."
)

// Reconcile rebuilds local task state from a lesson's freshly fetched task
// list so the UI matches the server-reported submission history.
//
// For each task: a present selected_option_id seeds the selection; a
// completed task is marked submitted and its result is derived from the
// matching option's correctness. When the matching option cannot be found
// (data inconsistency) the result is left absent rather than guessed.
// Tasks without autocheck never get a result. The function is pure and
// idempotent.
func Reconcile(tasks []catalog.Task) map[int]TaskState {
	states := make(map[int]TaskState, len(tasks))
	for _, task := range tasks {
		var st TaskState
		if task.SelectedOptionID != nil {
			st.SelectedOptionID = *task.SelectedOptionID
		}
		if task.IsCompleted {
			st.Submitted = true
			if task.HasAutocheck && task.SelectedOptionID != nil {
				if opt, ok := task.Option(*task.SelectedOptionID); ok {
					msg := MsgIncorrect
					if opt.IsCorrect {
						msg = MsgCorrect
					}
					st.Result = &Result{IsCorrect: opt.IsCorrect, Message: msg}
				}
			}
		}
		states[task.ID] = st
	}
	return states
}
