package progress

import "context"

type (
	// Repository is the progress surface of the backend API.
	Repository interface {
		SubmitAnswer(ctx context.Context, taskID, optionID int) (Result, error)
		Enroll(ctx context.Context, courseID int) error
		CompleteLesson(ctx context.Context, lessonID int) error
		QueryMyCourses(ctx context.Context) ([]CourseProgress, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Enroll is a one-shot POST; the caller re-fetches its listing on success
// to stay consistent with server-computed aggregates. Failures carry the
// backend message verbatim; there is no retry.
func (svc *Service) Enroll(ctx context.Context, courseID int) error {
	return svc.repo.Enroll(ctx, courseID)
}

// CompleteLesson marks a lesson done; same contract as Enroll.
func (svc *Service) CompleteLesson(ctx context.Context, lessonID int) error {
	return svc.repo.CompleteLesson(ctx, lessonID)
}

func (svc *Service) MyCourses(ctx context.Context) ([]CourseProgress, error) {
	return svc.repo.QueryMyCourses(ctx)
}
