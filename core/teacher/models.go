package teacher

import "github.com/codemaster/cli/core"

// StudentProgress is one row of the teacher's students-progress report,
// aggregated server-side over the teacher's own courses.
type StudentProgress struct {
	UserID           int     `json:"user_id"`
	Email            string  `json:"email"`
	FullName         string  `json:"full_name"`
	CoursesCount     int     `json:"courses_count"`
	LessonsCompleted int     `json:"lessons_completed"`
	TasksCompleted   int     `json:"tasks_completed"`
	ScoreAvg         float64 `json:"score_avg"`
}

// NewCourse contains information needed to create a course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	if err := core.Validate.Struct(nc); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// NewLesson contains information needed to create a lesson under a course.
type NewLesson struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

func (nl *NewLesson) Validate() error {
	nl.Title = core.CleanString(nl.Title)
	if err := core.Validate.Struct(nl); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// NewTask contains information needed to create a task under a lesson.
type NewTask struct {
	Title        string `json:"title" validate:"required"`
	Body         string `json:"body"`
	HasAutocheck bool   `json:"has_autocheck"`
}

func (nt *NewTask) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	if err := core.Validate.Struct(nt); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}
