package progress

import "math"

// CourseProgress is the read-only projection of a student's standing in one
// course, computed server-side. Aggregates are never patched locally; the
// listing is re-fetched after every mutation.
type CourseProgress struct {
	CourseID         int     `json:"course_id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	LessonsCompleted int     `json:"lessons_completed"`
	TotalLessons     int     `json:"total_lessons"`
	TasksCompleted   int     `json:"tasks_completed"`
	TotalTasks       int     `json:"total_tasks"`
	ScoreAvg         float64 `json:"score_avg"`
}

func (p CourseProgress) LessonPercent() int {
	return Percent(p.LessonsCompleted, p.TotalLessons)
}

func (p CourseProgress) TaskPercent() int {
	return Percent(p.TasksCompleted, p.TotalTasks)
}

// Percent computes min(100, round(completed/total*100)); 0 when total is 0.
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Result is the outcome of checking a submitted answer.
type Result struct {
	IsCorrect bool   `json:"is_correct"`
	Message   string `json:"message"`
}

// TaskState is the client-side, derived state of one task within the
// currently open lesson. It is rebuilt from scratch on every lesson load
// and never partially stale.
type TaskState struct {
	SelectedOptionID int
	Submitted        bool
	Result           *Result
}
