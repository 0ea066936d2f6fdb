package lms

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
)

var (
	// errors
	ErrNotFound        = errors.New("not found")
	ErrInvalidPosition = errors.New("invalid position")
)

type (
	// Repository holds the three ordered collections. Positions are 1-based, in insertion order.
	Repository interface {
		AddTeacher(t Teacher) (int, error)
		AddCourse(c Course) (int, error)
		AddStudent(s Student) (int, error)
		QueryTeachers() ([]Teacher, error)
		QueryCourses() ([]Course, error)
		QueryStudents() ([]Student, error)
		GetTeacherByID(id string) (Teacher, error)
		GetCourseByID(id string) (Course, error)
		GetStudentByID(id string) (Student, error)
		GetTeacherAt(pos int) (Teacher, error)
		GetCourseAt(pos int) (Course, error)
		GetStudentAt(pos int) (Student, error)
		AppendCourseStudent(courseID, studentID string) error
		// MergeStudentGrades overwrites existing grades for the same course IDs.
		MergeStudentGrades(studentID string, grades map[string]int) error
		// ReplaceAll drops every collection and installs the given ones.
		ReplaceAll(teachers []Teacher, courses []Course, students []Student) error
	}

	StateStore interface {
		SaveState(path string, st State) error
		LoadState(path string) (State, error)
		SaveGradesReport(path string, report GradesReport) error
	}

	Service struct {
		repo   Repository
		store  StateStore
		logger core.Logger
	}
)

func NewService(repo Repository, store StateStore, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &Service{repo: repo, store: store, logger: logger}
}

func newID() string {
	return uuid.New().String()
}

// AddTeacher creates a Teacher and returns it with its position.
func (svc *Service) AddTeacher(name, subject string) (Teacher, int, error) {
	t := Teacher{
		ID:      newID(),
		Name:    core.CleanString(name),
		Subject: core.CleanString(subject),
	}
	pos, err := svc.repo.AddTeacher(t)
	if err != nil {
		return Teacher{}, 0, errors.Wrap(err, "adding teacher")
	}
	svc.logger.Debug(fmt.Sprintf("teacher %q added at %d", t.Name, pos))
	return t, pos, nil
}

// AddCourse creates a Course taught by `teacher` and returns it with its position.
// The teacher is not looked up: callers pass one they got from the registry.
func (svc *Service) AddCourse(name string, teacher Teacher) (Course, int, error) {
	c := Course{
		ID:         newID(),
		Name:       core.CleanString(name),
		Teacher:    teacher,
		StudentIDs: []string{},
	}
	pos, err := svc.repo.AddCourse(c)
	if err != nil {
		return Course{}, 0, errors.Wrap(err, "adding course")
	}
	svc.logger.Debug(fmt.Sprintf("course %q added at %d", c.Name, pos))
	return c, pos, nil
}

// AddStudent creates a Student without grades and returns it with its position.
func (svc *Service) AddStudent(name string) (Student, int, error) {
	s := Student{
		ID:     newID(),
		Name:   core.CleanString(name),
		Grades: make(map[string]int),
	}
	pos, err := svc.repo.AddStudent(s)
	if err != nil {
		return Student{}, 0, errors.Wrap(err, "adding student")
	}
	svc.logger.Debug(fmt.Sprintf("student %q added at %d", s.Name, pos))
	return s, pos, nil
}

// EnrollStudentInCourse appends the student to the course. Enrolling twice lists the student twice.
func (svc *Service) EnrollStudentInCourse(studentID, courseID string) error {
	if err := svc.repo.AppendCourseStudent(courseID, studentID); err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	svc.logger.Debug(fmt.Sprintf("student %s enrolled in course %s", studentID, courseID))
	return nil
}

// AddGradesForStudent merges {courseID: grade} into the student's grades.
func (svc *Service) AddGradesForStudent(studentID string, grades map[string]int) error {
	if err := svc.repo.MergeStudentGrades(studentID, grades); err != nil {
		return errors.Wrap(err, "adding grades")
	}
	svc.logger.Debug(fmt.Sprintf("%d grade(s) added for student %s", len(grades), studentID))
	return nil
}

func (svc *Service) Teachers() ([]Teacher, error) { return svc.repo.QueryTeachers() }
func (svc *Service) Courses() ([]Course, error)   { return svc.repo.QueryCourses() }
func (svc *Service) Students() ([]Student, error) { return svc.repo.QueryStudents() }

func (svc *Service) Teacher(id string) (Teacher, error) { return svc.repo.GetTeacherByID(id) }
func (svc *Service) Course(id string) (Course, error)   { return svc.repo.GetCourseByID(id) }
func (svc *Service) Student(id string) (Student, error) { return svc.repo.GetStudentByID(id) }

// TeacherAt returns the teacher at the 1-based position `pos`.
func (svc *Service) TeacherAt(pos int) (Teacher, error) { return svc.repo.GetTeacherAt(pos) }

// CourseAt returns the course at the 1-based position `pos`.
func (svc *Service) CourseAt(pos int) (Course, error) { return svc.repo.GetCourseAt(pos) }

// StudentAt returns the student at the 1-based position `pos`.
func (svc *Service) StudentAt(pos int) (Student, error) { return svc.repo.GetStudentAt(pos) }

// SaveToFile writes the state file at `path`, overwriting it.
func (svc *Service) SaveToFile(path string) error {
	st, err := svc.snapshot()
	if err != nil {
		return err
	}
	if err := svc.store.SaveState(path, st); err != nil {
		svc.logger.Error(fmt.Sprintf("saving state to %s: %v", path, err), err)
		return err
	}
	svc.logger.Info(fmt.Sprintf("state saved to %s", path))
	return nil
}

// LoadFromFile replaces the whole registry with the content of the state file at `path`.
// Nothing is replaced if the file cannot be read or decoded.
func (svc *Service) LoadFromFile(path string) (LoadReport, error) {
	st, err := svc.store.LoadState(path)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("loading state from %s: %v", path, err), err)
		return LoadReport{}, err
	}

	teachers, courses, students, report := restore(st)
	if err := svc.repo.ReplaceAll(teachers, courses, students); err != nil {
		return LoadReport{}, errors.Wrap(err, "replacing registry")
	}
	svc.logger.Info(fmt.Sprintf("state loaded from %s", path), report.fields())
	return report, nil
}

// SaveGradesToFile writes the grades report at `path`, overwriting it.
func (svc *Service) SaveGradesToFile(path string) error {
	report, err := svc.gradesReport()
	if err != nil {
		return err
	}
	if err := svc.store.SaveGradesReport(path, report); err != nil {
		svc.logger.Error(fmt.Sprintf("saving grades to %s: %v", path, err), err)
		return err
	}
	svc.logger.Info(fmt.Sprintf("grades saved to %s", path))
	return nil
}
