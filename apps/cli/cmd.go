package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/codemaster/cli/core/catalog"
	"github.com/codemaster/cli/core/progress"
	"github.com/codemaster/cli/core/teacher"
	"github.com/codemaster/cli/core/user"
	"github.com/codemaster/cli/storage/rest"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	session  *user.Store
	catalog  *catalog.Service
	progress *progress.Service
	progRepo *rest.ProgressRepository
	teacher  *teacher.Service
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                     - log in; the password is prompted")
	fmt.Fprintln(cli.out, "  logout                                 - log out and forget the token")
	fmt.Fprintln(cli.out, "  register -email EMAIL -name NAME [-teacher]")
	fmt.Fprintln(cli.out, "  whoami                                 - show the current profile")
	fmt.Fprintln(cli.out, "  courses                                - list all courses")
	fmt.Fprintln(cli.out, "  enroll -course ID                      - enroll in a course")
	fmt.Fprintln(cli.out, "  my-courses                             - list enrolled courses with progress")
	fmt.Fprintln(cli.out, "  lessons -course ID                     - list a course's lessons")
	fmt.Fprintln(cli.out, "  lesson -id ID                          - open a lesson and its tasks")
	fmt.Fprintln(cli.out, "  submit -task ID -option ID             - submit an answer")
	fmt.Fprintln(cli.out, "  complete-lesson -id ID                 - mark a lesson as completed")
	fmt.Fprintln(cli.out, "  teacher courses|students|create-course|lessons|create-lesson|tasks|create-task")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "login":
		cmd := flag.NewFlagSet("login", flag.ExitOnError)
		email := cmd.String("email", "", "The account email. The password will be prompted next.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" {
			cmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		return cli.login(ctx, *email, string(pwd))

	case "logout":
		cli.session.Logout()
		fmt.Fprintln(cli.out, "Logged out.")
		return nil

	case "register":
		cmd := flag.NewFlagSet("register", flag.ExitOnError)
		email := cmd.String("email", "", "The account email.")
		name := cmd.String("name", "", "The full name.")
		isTeacher := cmd.Bool("teacher", false, "Register a teacher account.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.register(ctx, *email, *name, *isTeacher)

	case "whoami":
		return cli.whoami(ctx)

	case "courses":
		return cli.listCourses(ctx)

	case "enroll":
		cmd := flag.NewFlagSet("enroll", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The course id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.enroll(ctx, *courseID)

	case "my-courses":
		return cli.myCourses(ctx)

	case "lessons":
		cmd := flag.NewFlagSet("lessons", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The course id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.listLessons(ctx, *courseID)

	case "lesson":
		cmd := flag.NewFlagSet("lesson", flag.ExitOnError)
		id := cmd.Int("id", 0, "The lesson id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.openLesson(ctx, *id)

	case "submit":
		cmd := flag.NewFlagSet("submit", flag.ExitOnError)
		taskID := cmd.Int("task", 0, "The task id.")
		optionID := cmd.Int("option", 0, "The chosen option id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *taskID == 0 || *optionID == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.submit(ctx, *taskID, *optionID)

	case "complete-lesson":
		cmd := flag.NewFlagSet("complete-lesson", flag.ExitOnError)
		id := cmd.Int("id", 0, "The lesson id.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *id == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.completeLesson(ctx, *id)

	case "teacher":
		return cli.runTeacher(ctx, args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) runTeacher(ctx context.Context, args []string) error {
	// the authoring console is gated on the is_teacher flag
	if _, err := cli.session.RequireTeacher(ctx); err != nil {
		return err
	}
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	switch args[0] {
	case "courses":
		return cli.teacherCourses(ctx)

	case "students":
		return cli.studentsProgress(ctx)

	case "create-course":
		cmd := flag.NewFlagSet("create-course", flag.ExitOnError)
		title := cmd.String("title", "", "The course title.")
		desc := cmd.String("description", "", "The course description.")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		course, err := cli.teacher.CreateCourse(ctx, teacher.NewCourse{Title: *title, Description: *desc})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created course %d: %s\n", course.ID, course.Title)
		return nil

	case "lessons":
		cmd := flag.NewFlagSet("lessons", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The course id.")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *courseID == 0 {
			cmd.Usage()
			return errHelp
		}
		lessons, err := cli.teacher.CourseLessons(ctx, *courseID)
		if err != nil {
			return err
		}
		cli.printLessons(lessons)
		return nil

	case "create-lesson":
		cmd := flag.NewFlagSet("create-lesson", flag.ExitOnError)
		courseID := cmd.Int("course", 0, "The course id.")
		title := cmd.String("title", "", "The lesson title.")
		content := cmd.String("content", "", "The lesson content.")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *courseID == 0 {
			cmd.Usage()
			return errHelp
		}
		lesson, err := cli.teacher.CreateLesson(ctx, *courseID, teacher.NewLesson{Title: *title, Content: *content})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created lesson %d: %s\n", lesson.ID, lesson.Title)
		return nil

	case "tasks":
		cmd := flag.NewFlagSet("tasks", flag.ExitOnError)
		lessonID := cmd.Int("lesson", 0, "The lesson id.")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *lessonID == 0 {
			cmd.Usage()
			return errHelp
		}
		tasks, err := cli.teacher.LessonTasks(ctx, *lessonID)
		if err != nil {
			return err
		}
		cli.printAuthoredTasks(tasks)
		return nil

	case "create-task":
		cmd := flag.NewFlagSet("create-task", flag.ExitOnError)
		lessonID := cmd.Int("lesson", 0, "The lesson id.")
		title := cmd.String("title", "", "The task title.")
		body := cmd.String("body", "", "The task body.")
		autocheck := cmd.Bool("autocheck", false, "Enable auto-checking.")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		if *lessonID == 0 {
			cmd.Usage()
			return errHelp
		}
		task, err := cli.teacher.CreateTask(ctx, *lessonID, teacher.NewTask{Title: *title, Body: *body, HasAutocheck: *autocheck})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Created task %d: %s\n", task.ID, task.Title)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
