package rest

import (
	"context"
	"fmt"

	"github.com/codemaster/cli/core/progress"
)

// ProgressRepository implements progress.Repository over the submission and
// enrollment endpoints.
type ProgressRepository struct {
	c *Client
}

var _ progress.Repository = (*ProgressRepository)(nil)

func NewProgressRepository(c *Client) *ProgressRepository {
	return &ProgressRepository{c: c}
}

func (repo *ProgressRepository) SubmitAnswer(ctx context.Context, taskID, optionID int) (progress.Result, error) {
	payload := struct {
		OptionID int `json:"option_id"`
	}{optionID}

	var res progress.Result
	if err := repo.c.postJSON(ctx, fmt.Sprintf("/tasks/%d/submit-answer", taskID), payload, &res); err != nil {
		return progress.Result{}, err
	}
	return res, nil
}

func (repo *ProgressRepository) Enroll(ctx context.Context, courseID int) error {
	return repo.c.postJSON(ctx, fmt.Sprintf("/progress/courses/%d/enroll", courseID), nil, nil)
}

func (repo *ProgressRepository) CompleteLesson(ctx context.Context, lessonID int) error {
	return repo.c.postJSON(ctx, fmt.Sprintf("/progress/lessons/%d/complete", lessonID), nil, nil)
}

func (repo *ProgressRepository) QueryMyCourses(ctx context.Context) ([]progress.CourseProgress, error) {
	var courses []progress.CourseProgress
	if err := repo.c.get(ctx, "/progress/my-courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
