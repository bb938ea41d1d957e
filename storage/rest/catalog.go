package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/codemaster/cli/core/catalog"
)

// CatalogRepository implements catalog.Repository over the browsing
// endpoints.
type CatalogRepository struct {
	c *Client
}

var _ catalog.Repository = (*CatalogRepository)(nil)

func NewCatalogRepository(c *Client) *CatalogRepository {
	return &CatalogRepository{c: c}
}

func (repo *CatalogRepository) QueryCourses(ctx context.Context) ([]catalog.Course, error) {
	var courses []catalog.Course
	if err := repo.c.get(ctx, "/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (repo *CatalogRepository) QueryCourseLessons(ctx context.Context, courseID int) ([]catalog.Lesson, error) {
	query := make(url.Values)
	query.Set("course_id", strconv.Itoa(courseID))

	var lessons []catalog.Lesson
	if err := repo.c.get(ctx, "/lessons", query, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (repo *CatalogRepository) GetLesson(ctx context.Context, id int) (catalog.Lesson, error) {
	var lesson catalog.Lesson
	if err := repo.c.get(ctx, fmt.Sprintf("/lessons/%d", id), nil, &lesson); err != nil {
		return catalog.Lesson{}, err
	}
	return lesson, nil
}

func (repo *CatalogRepository) QueryLessonTasks(ctx context.Context, lessonID int) ([]catalog.Task, error) {
	query := make(url.Values)
	query.Set("lesson_id", strconv.Itoa(lessonID))

	var tasks []catalog.Task
	if err := repo.c.get(ctx, "/tasks", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *CatalogRepository) GetTask(ctx context.Context, id int) (catalog.Task, error) {
	var task catalog.Task
	if err := repo.c.get(ctx, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return catalog.Task{}, err
	}
	return task, nil
}
