package teacher

import (
	"context"

	"github.com/codemaster/cli/core/catalog"
)

type (
	// Repository is the authoring surface of the /teacher namespace.
	Repository interface {
		QueryCourses(ctx context.Context) ([]catalog.Course, error)
		GetCourse(ctx context.Context, id int) (catalog.Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) (catalog.Course, error)
		QueryCourseLessons(ctx context.Context, courseID int) ([]catalog.Lesson, error)
		CreateLesson(ctx context.Context, courseID int, nl NewLesson) (catalog.Lesson, error)
		QueryLessonTasks(ctx context.Context, lessonID int) ([]catalog.Task, error)
		CreateTask(ctx context.Context, lessonID int, nt NewTask) (catalog.Task, error)
		QueryStudentsProgress(ctx context.Context) ([]StudentProgress, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Courses(ctx context.Context) ([]catalog.Course, error) {
	return svc.repo.QueryCourses(ctx)
}

func (svc *Service) Course(ctx context.Context, id int) (catalog.Course, error) {
	return svc.repo.GetCourse(ctx, id)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (catalog.Course, error) {
	if err := nc.Validate(); err != nil {
		return catalog.Course{}, err
	}
	return svc.repo.CreateCourse(ctx, nc)
}

func (svc *Service) CourseLessons(ctx context.Context, courseID int) ([]catalog.Lesson, error) {
	return svc.repo.QueryCourseLessons(ctx, courseID)
}

func (svc *Service) CreateLesson(ctx context.Context, courseID int, nl NewLesson) (catalog.Lesson, error) {
	if err := nl.Validate(); err != nil {
		return catalog.Lesson{}, err
	}
	return svc.repo.CreateLesson(ctx, courseID, nl)
}

func (svc *Service) LessonTasks(ctx context.Context, lessonID int) ([]catalog.Task, error) {
	return svc.repo.QueryLessonTasks(ctx, lessonID)
}

func (svc *Service) CreateTask(ctx context.Context, lessonID int, nt NewTask) (catalog.Task, error) {
	if err := nt.Validate(); err != nil {
		return catalog.Task{}, err
	}
	return svc.repo.CreateTask(ctx, lessonID, nt)
}

func (svc *Service) StudentsProgress(ctx context.Context) ([]StudentProgress, error) {
	return svc.repo.QueryStudentsProgress(ctx)
}
