package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

// Backend is an in-process double of the CodeMaster REST API, close enough
// for exercising the client: form-encoded login, HS256 bearer tokens,
// FastAPI-style {"detail": "..."} error bodies and server-computed progress
// aggregates.
type Backend struct {
	app       *echo.Echo
	secretKey []byte

	mu     sync.Mutex
	nextID int
	delay  time.Duration

	users   []*User
	courses []*Course
	lessons []*Lesson
	tasks   []*Task

	enrolled    map[int]map[int]bool // user -> course
	lessonsDone map[int]map[int]bool // user -> lesson
	answers     map[int]map[int]int  // user -> task -> chosen option
}

type User struct {
	ID           int
	Email        string
	FullName     string
	IsTeacher    bool
	PasswordHash []byte
}

type Course struct {
	ID          int
	OwnerID     int
	Title       string
	Description string
}

type Lesson struct {
	ID       int
	CourseID int
	Title    string
	Content  string
}

type Option struct {
	ID        int
	Text      string
	IsCorrect bool
}

type Task struct {
	ID           int
	LessonID     int
	Title        string
	Body         string
	HasAutocheck bool
	Options      []Option
}

func NewBackend() *Backend {
	b := &Backend{
		secretKey:   []byte("secret"),
		enrolled:    make(map[int]map[int]bool),
		lessonsDone: make(map[int]map[int]bool),
		answers:     make(map[int]map[int]int),
	}
	b.app = echo.New()
	b.app.Logger.SetLevel(log.OFF)
	b.app.HideBanner = true
	b.app.HTTPErrorHandler = detailErrorHandler
	b.register()
	return b
}

// Start runs the backend on an httptest server. The caller owns the
// returned server's lifetime.
func (b *Backend) Start() *httptest.Server {
	return httptest.NewServer(b.app)
}

// SetDelay adds artificial latency to every request, for timeout tests.
func (b *Backend) SetDelay(d time.Duration) {
	b.mu.Lock()
	b.delay = d
	b.mu.Unlock()
}

// detailErrorHandler renders errors the way FastAPI does.
func detailErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	detail := http.StatusText(code)
	if herr, ok := err.(*echo.HTTPError); ok {
		code = herr.Code
		detail = fmt.Sprintf("%v", herr.Message)
	}
	if !c.Response().Committed {
		_ = c.JSON(code, echo.Map{"detail": detail})
	}
}

// Fixtures

func (b *Backend) AddUser(t *testing.T, email, password, fullName string, isTeacher bool) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("AddUser() failed: %v", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	usr := &User{ID: b.nextID, Email: email, FullName: fullName, IsTeacher: isTeacher, PasswordHash: hash}
	b.users = append(b.users, usr)
	return usr
}

func (b *Backend) AddCourse(owner *User, title, description string) *Course {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	course := &Course{ID: b.nextID, OwnerID: owner.ID, Title: title, Description: description}
	b.courses = append(b.courses, course)
	return course
}

func (b *Backend) AddLesson(course *Course, title, content string) *Lesson {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	lesson := &Lesson{ID: b.nextID, CourseID: course.ID, Title: title, Content: content}
	b.lessons = append(b.lessons, lesson)
	return lesson
}

// AddTask creates a task; option IDs are assigned here. A task with no
// options has autocheck disabled.
func (b *Backend) AddTask(lesson *Lesson, title, body string, options ...Option) *Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	task := &Task{ID: b.nextID, LessonID: lesson.ID, Title: title, Body: body, HasAutocheck: len(options) > 0}
	for _, opt := range options {
		b.nextID++
		opt.ID = b.nextID
		task.Options = append(task.Options, opt)
	}
	b.tasks = append(b.tasks, task)
	return task
}

// Enroll pre-enrolls a student, bypassing the API.
func (b *Backend) Enroll(usr *User, course *Course) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enroll(usr.ID, course.ID)
}

// CompleteTask records a prior submission, bypassing the API.
func (b *Backend) CompleteTask(usr *User, task *Task, optionID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.answers[usr.ID] == nil {
		b.answers[usr.ID] = make(map[int]int)
	}
	b.answers[usr.ID][task.ID] = optionID
}

// CompleteLesson records a prior lesson completion, bypassing the API.
func (b *Backend) CompleteLesson(usr *User, lesson *Lesson) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lessonsDone[usr.ID] == nil {
		b.lessonsDone[usr.ID] = make(map[int]bool)
	}
	b.lessonsDone[usr.ID][lesson.ID] = true
}

func (b *Backend) enroll(userID, courseID int) {
	if b.enrolled[userID] == nil {
		b.enrolled[userID] = make(map[int]bool)
	}
	b.enrolled[userID][courseID] = true
}

// TokenFor mints a valid bearer token for usr.
func (b *Backend) TokenFor(t *testing.T, usr *User) string {
	t.Helper()
	return b.mintToken(t, usr, time.Now().Add(time.Hour))
}

// ExpiredTokenFor mints a token whose exp already passed.
func (b *Backend) ExpiredTokenFor(t *testing.T, usr *User) string {
	t.Helper()
	return b.mintToken(t, usr, time.Now().Add(-time.Hour))
}

func (b *Backend) mintToken(t *testing.T, usr *User, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":        strconv.Itoa(usr.ID),
		"is_teacher": usr.IsTeacher,
		"exp":        exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secretKey)
	if err != nil {
		t.Fatalf("mintToken() failed: %v", err)
	}
	return tok
}

// Routes

func (b *Backend) register() {
	b.app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			b.mu.Lock()
			delay := b.delay
			b.mu.Unlock()
			if delay > 0 {
				time.Sleep(delay)
			}
			return next(c)
		}
	})

	b.app.POST("/auth/login", b.login)
	b.app.POST("/auth/register", b.registerUser)
	b.app.GET("/auth/me", b.me)

	b.app.GET("/courses", b.listCourses)
	b.app.GET("/lessons", b.listLessons)
	b.app.GET("/lessons/:id", b.getLesson)
	b.app.GET("/tasks", b.listTasks)
	b.app.GET("/tasks/:id", b.getTask)
	b.app.POST("/tasks/:id/submit-answer", b.submitAnswer)

	b.app.POST("/progress/courses/:id/enroll", b.enrollCourse)
	b.app.POST("/progress/lessons/:id/complete", b.completeLesson)
	b.app.GET("/progress/my-courses", b.myCourses)

	b.app.GET("/teacher/courses", b.teacherCourses)
	b.app.POST("/teacher/courses", b.teacherCreateCourse)
	b.app.GET("/teacher/courses/:id", b.teacherGetCourse)
	b.app.GET("/teacher/courses/:id/lessons", b.teacherLessons)
	b.app.POST("/teacher/courses/:id/lessons", b.teacherCreateLesson)
	b.app.GET("/teacher/lessons/:id/tasks", b.teacherTasks)
	b.app.POST("/teacher/lessons/:id/tasks", b.teacherCreateTask)
	b.app.GET("/teacher/students-progress", b.studentsProgress)
}

func (b *Backend) currentUser(c echo.Context) (*User, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	tok, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return b.secretKey, nil
	})
	if err != nil || !tok.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, usr := range b.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
}

func (b *Backend) currentTeacher(c echo.Context) (*User, error) {
	usr, err := b.currentUser(c)
	if err != nil {
		return nil, err
	}
	if !usr.IsTeacher {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Teacher access required")
	}
	return usr, nil
}

// Auth handlers

func (b *Backend) login(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")

	b.mu.Lock()
	var usr *User
	for _, u := range b.users {
		if u.Email == email {
			usr = u
			break
		}
	}
	b.mu.Unlock()

	if usr == nil || bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        strconv.Itoa(usr.ID),
		"is_teacher": usr.IsTeacher,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString(b.secretKey)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": tok, "token_type": "bearer"})
}

func (b *Backend) registerUser(c echo.Context) error {
	var payload struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FullName  string `json:"full_name"`
		IsTeacher bool   `json:"is_teacher"`
	}
	if err := c.Bind(&payload); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Email == payload.Email {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	b.nextID++
	usr := &User{ID: b.nextID, Email: payload.Email, FullName: payload.FullName, IsTeacher: payload.IsTeacher, PasswordHash: hash}
	b.users = append(b.users, usr)
	return c.JSON(http.StatusCreated, userOut(usr))
}

func (b *Backend) me(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userOut(usr))
}

func userOut(usr *User) echo.Map {
	return echo.Map{
		"id":         usr.ID,
		"email":      usr.Email,
		"full_name":  usr.FullName,
		"is_teacher": usr.IsTeacher,
		"is_active":  true,
	}
}

// Catalog handlers

func (b *Backend) listCourses(c echo.Context) error {
	if _, err := b.currentUser(c); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0, len(b.courses))
	for _, course := range b.courses {
		out = append(out, courseOut(course))
	}
	return c.JSON(http.StatusOK, out)
}

func courseOut(course *Course) echo.Map {
	return echo.Map{"id": course.ID, "title": course.Title, "description": course.Description}
}

func (b *Backend) listLessons(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	courseID, _ := strconv.Atoi(c.QueryParam("course_id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, lesson := range b.lessons {
		if courseID != 0 && lesson.CourseID != courseID {
			continue
		}
		out = append(out, b.lessonOut(lesson, usr))
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) lessonOut(lesson *Lesson, usr *User) echo.Map {
	return echo.Map{
		"id":           lesson.ID,
		"course_id":    lesson.CourseID,
		"title":        lesson.Title,
		"content":      lesson.Content,
		"is_completed": b.lessonsDone[usr.ID][lesson.ID],
	}
}

func (b *Backend) getLesson(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Param("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, lesson := range b.lessons {
		if lesson.ID == id {
			return c.JSON(http.StatusOK, b.lessonOut(lesson, usr))
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Lesson not found")
}

func (b *Backend) listTasks(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	lessonID, _ := strconv.Atoi(c.QueryParam("lesson_id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, task := range b.tasks {
		if lessonID != 0 && task.LessonID != lessonID {
			continue
		}
		out = append(out, b.taskOut(task, usr))
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) taskOut(task *Task, usr *User) echo.Map {
	out := echo.Map{
		"id":            task.ID,
		"lesson_id":     task.LessonID,
		"title":         task.Title,
		"body":          task.Body,
		"has_autocheck": task.HasAutocheck,
	}
	if task.HasAutocheck {
		opts := make([]echo.Map, 0, len(task.Options))
		for _, opt := range task.Options {
			opts = append(opts, echo.Map{"id": opt.ID, "text": opt.Text, "is_correct": opt.IsCorrect})
		}
		out["options"] = opts
	}
	if optID, ok := b.answers[usr.ID][task.ID]; ok {
		out["selected_option_id"] = optID
		out["is_completed"] = true
	}
	return out
}

func (b *Backend) getTask(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Param("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, task := range b.tasks {
		if task.ID == id {
			return c.JSON(http.StatusOK, b.taskOut(task, usr))
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Task not found")
}

func (b *Backend) submitAnswer(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Param("id"))
	var payload struct {
		OptionID int `json:"option_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var task *Task
	for _, t := range b.tasks {
		if t.ID == id {
			task = t
			break
		}
	}
	if task == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	if !task.HasAutocheck {
		return echo.NewHTTPError(http.StatusBadRequest, "Task does not support auto-checking")
	}
	var chosen *Option
	for i := range task.Options {
		if task.Options[i].ID == payload.OptionID {
			chosen = &task.Options[i]
			break
		}
	}
	if chosen == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown option")
	}

	if b.answers[usr.ID] == nil {
		b.answers[usr.ID] = make(map[int]int)
	}
	b.answers[usr.ID][task.ID] = chosen.ID

	msg := "Incorrect answer. Try again."
	if chosen.IsCorrect {
		msg = "Correct! The task is marked as completed."
	}
	return c.JSON(http.StatusOK, echo.Map{"is_correct": chosen.IsCorrect, "message": msg})
}

// Progress handlers

func (b *Backend) enrollCourse(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Param("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, course := range b.courses {
		if course.ID == id {
			b.enroll(usr.ID, course.ID)
			return c.JSON(http.StatusOK, echo.Map{"detail": "enrolled"})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Course not found")
}

func (b *Backend) completeLesson(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Param("id"))

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, lesson := range b.lessons {
		if lesson.ID == id {
			if b.lessonsDone[usr.ID] == nil {
				b.lessonsDone[usr.ID] = make(map[int]bool)
			}
			b.lessonsDone[usr.ID][lesson.ID] = true
			return c.JSON(http.StatusOK, echo.Map{"detail": "completed"})
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Lesson not found")
}

func (b *Backend) myCourses(c echo.Context) error {
	usr, err := b.currentUser(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, course := range b.courses {
		if !b.enrolled[usr.ID][course.ID] {
			continue
		}
		out = append(out, b.progressOut(usr, course))
	}
	return c.JSON(http.StatusOK, out)
}

// progressOut computes the server-side aggregates for one user+course.
func (b *Backend) progressOut(usr *User, course *Course) echo.Map {
	var totalLessons, lessonsDone, totalTasks, tasksDone int
	var scoreSum, scoreCount float64
	for _, lesson := range b.lessons {
		if lesson.CourseID != course.ID {
			continue
		}
		totalLessons++
		if b.lessonsDone[usr.ID][lesson.ID] {
			lessonsDone++
		}
		for _, task := range b.tasks {
			if task.LessonID != lesson.ID {
				continue
			}
			totalTasks++
			if optID, ok := b.answers[usr.ID][task.ID]; ok {
				tasksDone++
				scoreCount++
				for _, opt := range task.Options {
					if opt.ID == optID && opt.IsCorrect {
						scoreSum += 100
					}
				}
			}
		}
	}
	var scoreAvg float64
	if scoreCount > 0 {
		scoreAvg = scoreSum / scoreCount
	}
	return echo.Map{
		"course_id":         course.ID,
		"title":             course.Title,
		"description":       course.Description,
		"lessons_completed": lessonsDone,
		"total_lessons":     totalLessons,
		"tasks_completed":   tasksDone,
		"total_tasks":       totalTasks,
		"score_avg":         scoreAvg,
	}
}

// Teacher handlers

func (b *Backend) teacherCourses(c echo.Context) error {
	usr, err := b.currentTeacher(c)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, course := range b.courses {
		if course.OwnerID == usr.ID {
			out = append(out, courseOut(course))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) teacherGetCourse(c echo.Context) error {
	usr, err := b.currentTeacher(c)
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, course := range b.courses {
		if course.ID == id && course.OwnerID == usr.ID {
			return c.JSON(http.StatusOK, courseOut(course))
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Course not found")
}

func (b *Backend) teacherCreateCourse(c echo.Context) error {
	usr, err := b.currentTeacher(c)
	if err != nil {
		return err
	}
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if payload.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	course := &Course{ID: b.nextID, OwnerID: usr.ID, Title: payload.Title, Description: payload.Description}
	b.courses = append(b.courses, course)
	return c.JSON(http.StatusCreated, courseOut(course))
}

func (b *Backend) teacherLessons(c echo.Context) error {
	usr, err := b.currentTeacher(c)
	if err != nil {
		return err
	}
	courseID, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, lesson := range b.lessons {
		if lesson.CourseID == courseID {
			out = append(out, b.lessonOut(lesson, usr))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) teacherCreateLesson(c echo.Context) error {
	if _, err := b.currentTeacher(c); err != nil {
		return err
	}
	courseID, _ := strconv.Atoi(c.Param("id"))
	var payload struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&payload); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var course *Course
	for _, cc := range b.courses {
		if cc.ID == courseID {
			course = cc
			break
		}
	}
	if course == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}
	b.nextID++
	lesson := &Lesson{ID: b.nextID, CourseID: course.ID, Title: payload.Title, Content: payload.Content}
	b.lessons = append(b.lessons, lesson)
	return c.JSON(http.StatusCreated, echo.Map{
		"id": lesson.ID, "course_id": lesson.CourseID, "title": lesson.Title, "content": lesson.Content,
	})
}

func (b *Backend) teacherTasks(c echo.Context) error {
	usr, err := b.currentTeacher(c)
	if err != nil {
		return err
	}
	lessonID, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, task := range b.tasks {
		if task.LessonID == lessonID {
			out = append(out, b.taskOut(task, usr))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *Backend) teacherCreateTask(c echo.Context) error {
	if _, err := b.currentTeacher(c); err != nil {
		return err
	}
	lessonID, _ := strconv.Atoi(c.Param("id"))
	var payload struct {
		Title        string `json:"title"`
		Body         string `json:"body"`
		HasAutocheck bool   `json:"has_autocheck"`
	}
	if err := c.Bind(&payload); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var lesson *Lesson
	for _, l := range b.lessons {
		if l.ID == lessonID {
			lesson = l
			break
		}
	}
	if lesson == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Lesson not found")
	}
	b.nextID++
	task := &Task{ID: b.nextID, LessonID: lesson.ID, Title: payload.Title, Body: payload.Body, HasAutocheck: payload.HasAutocheck}
	b.tasks = append(b.tasks, task)
	return c.JSON(http.StatusCreated, echo.Map{
		"id": task.ID, "lesson_id": task.LessonID, "title": task.Title,
		"body": task.Body, "has_autocheck": task.HasAutocheck,
	})
}

func (b *Backend) studentsProgress(c echo.Context) error {
	teacher, err := b.currentTeacher(c)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]echo.Map, 0)
	for _, usr := range b.users {
		if usr.IsTeacher {
			continue
		}
		var coursesCount, lessonsDone, tasksDone int
		var scoreSum, scoreCount float64
		for _, course := range b.courses {
			if course.OwnerID != teacher.ID || !b.enrolled[usr.ID][course.ID] {
				continue
			}
			coursesCount++
			row := b.progressOut(usr, course)
			lessonsDone += row["lessons_completed"].(int)
			tasksDone += row["tasks_completed"].(int)
			if avg := row["score_avg"].(float64); avg > 0 {
				scoreSum += avg
				scoreCount++
			}
		}
		if coursesCount == 0 {
			continue
		}
		var scoreAvg float64
		if scoreCount > 0 {
			scoreAvg = scoreSum / scoreCount
		}
		out = append(out, echo.Map{
			"user_id":           usr.ID,
			"email":             usr.Email,
			"full_name":         usr.FullName,
			"courses_count":     coursesCount,
			"lessons_completed": lessonsDone,
			"tasks_completed":   tasksDone,
			"score_avg":         scoreAvg,
		})
	}
	return c.JSON(http.StatusOK, out)
}
