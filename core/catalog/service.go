package catalog

import "context"

type (
	// Repository is the read surface of the course catalog. storage/rest
	// implements it over the backend API.
	Repository interface {
		QueryCourses(ctx context.Context) ([]Course, error)
		QueryCourseLessons(ctx context.Context, courseID int) ([]Lesson, error)
		GetLesson(ctx context.Context, id int) (Lesson, error)
		QueryLessonTasks(ctx context.Context, lessonID int) ([]Task, error)
		GetTask(ctx context.Context, id int) (Task, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Courses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx)
}

func (svc *Service) CourseLessons(ctx context.Context, courseID int) ([]Lesson, error) {
	return svc.repo.QueryCourseLessons(ctx, courseID)
}

func (svc *Service) Lesson(ctx context.Context, id int) (Lesson, error) {
	return svc.repo.GetLesson(ctx, id)
}

func (svc *Service) LessonTasks(ctx context.Context, lessonID int) ([]Task, error) {
	return svc.repo.QueryLessonTasks(ctx, lessonID)
}

func (svc *Service) Task(ctx context.Context, id int) (Task, error) {
	return svc.repo.GetTask(ctx, id)
}
