package catalog

// Course as listed on the browsing pages.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Lesson of a course. IsCompleted reflects the current student's progress
// as reported by the backend.
type Lesson struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"course_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"is_completed"`
}

// Option is one answer choice of an auto-checked task.
//
// IsCorrect is only trusted in authoring context or for a task the student
// has already completed; it is never read, let alone displayed, for an
// unsubmitted task.
type Option struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Task of a lesson. Options is only present when HasAutocheck is true.
// SelectedOptionID and IsCompleted carry the student's prior submission, if
// any, and feed progress reconciliation.
type Task struct {
	ID               int      `json:"id"`
	LessonID         int      `json:"lesson_id"`
	Title            string   `json:"title"`
	Body             string   `json:"body"`
	HasAutocheck     bool     `json:"has_autocheck"`
	Options          []Option `json:"options,omitempty"`
	SelectedOptionID *int     `json:"selected_option_id,omitempty"`
	IsCompleted      bool     `json:"is_completed,omitempty"`
}

// Option returns the task's option with the given id.
func (t Task) Option(id int) (Option, bool) {
	for _, opt := range t.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}
