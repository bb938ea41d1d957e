package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/codemaster/cli/core"
	"github.com/codemaster/cli/core/catalog"
	"github.com/codemaster/cli/core/progress"
	"github.com/codemaster/cli/core/user"
)

func (cli *commandLine) login(ctx context.Context, email, password string) error {
	if err := cli.session.Login(ctx, email, password); err != nil {
		return err
	}
	// login resolved once the token was stored; resolve the profile now so
	// the greeting can show it
	profile, err := cli.session.EnsureProfile(ctx)
	if err != nil {
		fmt.Fprintln(cli.out, "Logged in; profile not resolved yet (will retry on next command).")
		return nil
	}
	fmt.Fprintf(cli.out, "Logged in as %s\n", profile.Email)
	return nil
}

func (cli *commandLine) register(ctx context.Context, email, name string, isTeacher bool) error {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	fmt.Fprint(cli.out, "Confirm password:")
	pwd2, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}

	profile, err := cli.session.Register(ctx, user.NewAccount{
		Email:           email,
		FullName:        name,
		Password:        string(pwd),
		PasswordConfirm: string(pwd2),
		IsTeacher:       isTeacher,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Registered %s. You can now log in.\n", profile.Email)
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	profile, err := cli.session.RequireUser(ctx)
	if err != nil {
		return err
	}
	role := "student"
	if profile.IsTeacher {
		role = "teacher"
	}
	fmt.Fprintf(cli.out, "%s (%s, %s)\n", profile.Email, profile.FullName, role)
	return nil
}

func (cli *commandLine) listCourses(ctx context.Context) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	courses, err := cli.catalog.Courses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(cli.out, "No courses yet.")
		return nil
	}
	for _, course := range courses {
		fmt.Fprintf(cli.out, "%4d  %s  %s\n", course.ID, course.Title, course.Description)
	}
	return nil
}

func (cli *commandLine) enroll(ctx context.Context, courseID int) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	if err := cli.progress.Enroll(ctx, courseID); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Enrolled.")
	// re-fetch the authoritative listing rather than patching locally
	return cli.myCourses(ctx)
}

func (cli *commandLine) myCourses(ctx context.Context) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	courses, err := cli.progress.MyCourses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(cli.out, "You are not enrolled in any course yet.")
		return nil
	}
	for _, cp := range courses {
		fmt.Fprintf(cli.out, "%4d  %-30s  lessons %d/%d (%d%%)  tasks %d/%d (%d%%)  avg %.1f\n",
			cp.CourseID, cp.Title,
			cp.LessonsCompleted, cp.TotalLessons, cp.LessonPercent(),
			cp.TasksCompleted, cp.TotalTasks, cp.TaskPercent(),
			cp.ScoreAvg,
		)
	}
	return nil
}

func (cli *commandLine) listLessons(ctx context.Context, courseID int) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	lessons, err := cli.catalog.CourseLessons(ctx, courseID)
	if err != nil {
		return err
	}
	cli.printLessons(lessons)
	return nil
}

func (cli *commandLine) printLessons(lessons []catalog.Lesson) {
	if len(lessons) == 0 {
		fmt.Fprintln(cli.out, "No lessons yet.")
		return
	}
	for _, lesson := range lessons {
		mark := " "
		if lesson.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(cli.out, "[%s] %4d  %s\n", mark, lesson.ID, lesson.Title)
	}
}

// openLesson is the lesson page: it fetches the task list and rebuilds the
// local task state from the server-reported history.
func (cli *commandLine) openLesson(ctx context.Context, lessonID int) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	lesson, err := cli.catalog.Lesson(ctx, lessonID)
	if err != nil {
		return err
	}
	tasks, err := cli.catalog.LessonTasks(ctx, lessonID)
	if err != nil {
		return err
	}
	tracker := progress.NewTracker(cli.progRepo, lessonID, tasks)

	fmt.Fprintf(cli.out, "%s\n\n%s\n\n", lesson.Title, lesson.Content)
	if len(tasks) == 0 {
		fmt.Fprintln(cli.out, "No tasks in this lesson.")
		return nil
	}
	for _, task := range tasks {
		cli.printTask(task, tracker)
	}
	return nil
}

func (cli *commandLine) printTask(task catalog.Task, tracker *progress.Tracker) {
	fmt.Fprintf(cli.out, "Task %d: %s\n", task.ID, task.Title)
	if task.Body != "" {
		fmt.Fprintf(cli.out, "  %s\n", task.Body)
	}
	st, _ := tracker.State(task.ID)
	for _, opt := range task.Options {
		mark := " "
		if opt.ID == st.SelectedOptionID {
			mark = "*"
		}
		// correctness is never shown for unsubmitted tasks
		fmt.Fprintf(cli.out, "  (%s) %d: %s\n", mark, opt.ID, opt.Text)
	}
	if st.Submitted && st.Result != nil {
		fmt.Fprintf(cli.out, "  => %s\n", st.Result.Message)
	}
	fmt.Fprintln(cli.out)
}

// submit opens the task's lesson (one lesson-load cycle) and submits
// through its tracker, so the local idempotent guard applies.
func (cli *commandLine) submit(ctx context.Context, taskID, optionID int) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	task, err := cli.catalog.Task(ctx, taskID)
	if err != nil {
		return err
	}
	tasks, err := cli.catalog.LessonTasks(ctx, task.LessonID)
	if err != nil {
		return err
	}
	tracker := progress.NewTracker(cli.progRepo, task.LessonID, tasks)

	res, err := tracker.Submit(ctx, taskID, optionID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, res.Message)
	return nil
}

func (cli *commandLine) completeLesson(ctx context.Context, lessonID int) error {
	if _, err := cli.session.RequireUser(ctx); err != nil {
		return err
	}
	lesson, err := cli.catalog.Lesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if err := cli.progress.CompleteLesson(ctx, lessonID); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Lesson marked as completed.")
	// re-fetch so completion flags come from the server
	return cli.listLessons(ctx, lesson.CourseID)
}

func (cli *commandLine) teacherCourses(ctx context.Context) error {
	courses, err := cli.teacher.Courses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(cli.out, "You have no courses yet.")
		return nil
	}
	for _, course := range courses {
		fmt.Fprintf(cli.out, "%4d  %s  %s\n", course.ID, course.Title, course.Description)
	}
	return nil
}

func (cli *commandLine) printAuthoredTasks(tasks []catalog.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(cli.out, "No tasks yet.")
		return
	}
	for _, task := range tasks {
		check := "manual"
		if task.HasAutocheck {
			check = "autocheck"
		}
		fmt.Fprintf(cli.out, "%4d  %-30s  %s\n", task.ID, task.Title, check)
	}
}

func (cli *commandLine) studentsProgress(ctx context.Context) error {
	rows, err := cli.teacher.StudentsProgress(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(cli.out, "No students enrolled yet.")
		return nil
	}
	for _, row := range rows {
		fmt.Fprintf(cli.out, "%4d  %-30s  courses %d  lessons %d  tasks %d  avg %.1f\n",
			row.UserID, row.Email, row.CoursesCount, row.LessonsCompleted, row.TasksCompleted, row.ScoreAvg)
	}
	return nil
}

// displayError turns any failure into the inline message a page would
// show; nothing is fatal beyond the current command.
func displayError(err error) string {
	switch {
	case err == user.ErrLoginRequired:
		return "You are not logged in. Run `login -email EMAIL` first."
	case err == user.ErrTeacherOnly:
		return "This command requires a teacher account."
	case core.IsNotFound(err):
		return fmt.Sprintf("Not found: %v", err)
	case core.IsAuthorizationLost(err):
		return "Your session has expired. Please log in again."
	case core.IsTransient(err):
		return fmt.Sprintf("The server is not reachable right now, try again: %v", err)
	}
	if verr, ok := err.(*core.ValidationError); ok && len(verr.Fields) > 0 {
		msg := "Invalid input:"
		for _, fld := range verr.Fields {
			msg += fmt.Sprintf("\n  %s: %s", fld.Field, fld.Error)
		}
		return msg
	}
	return err.Error()
}
