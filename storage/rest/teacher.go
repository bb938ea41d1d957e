package rest

import (
	"context"
	"fmt"

	"github.com/codemaster/cli/core/catalog"
	"github.com/codemaster/cli/core/teacher"
)

// TeacherRepository implements teacher.Repository over the /teacher
// authoring namespace.
type TeacherRepository struct {
	c *Client
}

var _ teacher.Repository = (*TeacherRepository)(nil)

func NewTeacherRepository(c *Client) *TeacherRepository {
	return &TeacherRepository{c: c}
}

func (repo *TeacherRepository) QueryCourses(ctx context.Context) ([]catalog.Course, error) {
	var courses []catalog.Course
	if err := repo.c.get(ctx, "/teacher/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (repo *TeacherRepository) GetCourse(ctx context.Context, id int) (catalog.Course, error) {
	var course catalog.Course
	if err := repo.c.get(ctx, fmt.Sprintf("/teacher/courses/%d", id), nil, &course); err != nil {
		return catalog.Course{}, err
	}
	return course, nil
}

func (repo *TeacherRepository) CreateCourse(ctx context.Context, nc teacher.NewCourse) (catalog.Course, error) {
	var course catalog.Course
	if err := repo.c.postJSON(ctx, "/teacher/courses", nc, &course); err != nil {
		return catalog.Course{}, err
	}
	return course, nil
}

func (repo *TeacherRepository) QueryCourseLessons(ctx context.Context, courseID int) ([]catalog.Lesson, error) {
	var lessons []catalog.Lesson
	if err := repo.c.get(ctx, fmt.Sprintf("/teacher/courses/%d/lessons", courseID), nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (repo *TeacherRepository) CreateLesson(ctx context.Context, courseID int, nl teacher.NewLesson) (catalog.Lesson, error) {
	var lesson catalog.Lesson
	if err := repo.c.postJSON(ctx, fmt.Sprintf("/teacher/courses/%d/lessons", courseID), nl, &lesson); err != nil {
		return catalog.Lesson{}, err
	}
	return lesson, nil
}

func (repo *TeacherRepository) QueryLessonTasks(ctx context.Context, lessonID int) ([]catalog.Task, error) {
	var tasks []catalog.Task
	if err := repo.c.get(ctx, fmt.Sprintf("/teacher/lessons/%d/tasks", lessonID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TeacherRepository) CreateTask(ctx context.Context, lessonID int, nt teacher.NewTask) (catalog.Task, error) {
	var task catalog.Task
	if err := repo.c.postJSON(ctx, fmt.Sprintf("/teacher/lessons/%d/tasks", lessonID), nt, &task); err != nil {
		return catalog.Task{}, err
	}
	return task, nil
}

func (repo *TeacherRepository) QueryStudentsProgress(ctx context.Context) ([]teacher.StudentProgress, error) {
	var rows []teacher.StudentProgress
	if err := repo.c.get(ctx, "/teacher/students-progress", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
