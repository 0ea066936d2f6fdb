package inmemdb

import (
	"github.com/trezcool/lms/core/lms"
)

type lmsRepository struct {
	db *lmsTables
}

var _ lms.Repository = (*lmsRepository)(nil) // interface compliance check

func NewLMSRepository(db *DB) lms.Repository {
	return &lmsRepository{db: db.lms}
}

func (repo *lmsRepository) AddTeacher(t lms.Teacher) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.teachers = append(repo.db.teachers, &t)
	return len(repo.db.teachers), nil
}

func (repo *lmsRepository) AddCourse(c lms.Course) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c = copyCourse(c)
	repo.db.courses = append(repo.db.courses, &c)
	return len(repo.db.courses), nil
}

func (repo *lmsRepository) AddStudent(s lms.Student) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s = copyStudent(s)
	repo.db.students = append(repo.db.students, &s)
	return len(repo.db.students), nil
}

func (repo *lmsRepository) QueryTeachers() ([]lms.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]lms.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		teachers = append(teachers, *t)
	}
	return teachers, nil
}

func (repo *lmsRepository) QueryCourses() ([]lms.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]lms.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, copyCourse(*c))
	}
	return courses, nil
}

func (repo *lmsRepository) QueryStudents() ([]lms.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]lms.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, copyStudent(*s))
	}
	return students, nil
}

func (repo *lmsRepository) GetTeacherByID(id string) (lms.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.db.teachers {
		if t.ID == id {
			return *t, nil
		}
	}
	return lms.Teacher{}, lms.ErrNotFound
}

func (repo *lmsRepository) GetCourseByID(id string) (lms.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c := repo.course(id); c != nil {
		return copyCourse(*c), nil
	}
	return lms.Course{}, lms.ErrNotFound
}

func (repo *lmsRepository) GetStudentByID(id string) (lms.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s := repo.student(id); s != nil {
		return copyStudent(*s), nil
	}
	return lms.Student{}, lms.ErrNotFound
}

func (repo *lmsRepository) GetTeacherAt(pos int) (lms.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if !inRange(pos, len(repo.db.teachers)) {
		return lms.Teacher{}, lms.ErrInvalidPosition
	}
	return *repo.db.teachers[pos-1], nil
}

func (repo *lmsRepository) GetCourseAt(pos int) (lms.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if !inRange(pos, len(repo.db.courses)) {
		return lms.Course{}, lms.ErrInvalidPosition
	}
	return copyCourse(*repo.db.courses[pos-1]), nil
}

func (repo *lmsRepository) GetStudentAt(pos int) (lms.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if !inRange(pos, len(repo.db.students)) {
		return lms.Student{}, lms.ErrInvalidPosition
	}
	return copyStudent(*repo.db.students[pos-1]), nil
}

func (repo *lmsRepository) AppendCourseStudent(courseID, studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	c := repo.course(courseID)
	if c == nil || repo.student(studentID) == nil {
		return lms.ErrNotFound
	}
	c.StudentIDs = append(c.StudentIDs, studentID)
	return nil
}

func (repo *lmsRepository) MergeStudentGrades(studentID string, grades map[string]int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	s := repo.student(studentID)
	if s == nil {
		return lms.ErrNotFound
	}
	if s.Grades == nil {
		s.Grades = make(map[string]int, len(grades))
	}
	for courseID, grade := range grades {
		s.Grades[courseID] = grade
	}
	return nil
}

func (repo *lmsRepository) ReplaceAll(teachers []lms.Teacher, courses []lms.Course, students []lms.Student) error {
	newTeachers := make([]*lms.Teacher, 0, len(teachers))
	for _, t := range teachers {
		t := t
		newTeachers = append(newTeachers, &t)
	}
	newCourses := make([]*lms.Course, 0, len(courses))
	for _, c := range courses {
		c = copyCourse(c)
		newCourses = append(newCourses, &c)
	}
	newStudents := make([]*lms.Student, 0, len(students))
	for _, s := range students {
		s = copyStudent(s)
		newStudents = append(newStudents, &s)
	}

	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.teachers = newTeachers
	repo.db.courses = newCourses
	repo.db.students = newStudents
	return nil
}

// course must be called with the lock held.
func (repo *lmsRepository) course(id string) *lms.Course {
	for _, c := range repo.db.courses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// student must be called with the lock held.
func (repo *lmsRepository) student(id string) *lms.Student {
	for _, s := range repo.db.students {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func inRange(pos, n int) bool {
	return pos >= 1 && pos <= n
}

func copyCourse(c lms.Course) lms.Course {
	ids := make([]string, len(c.StudentIDs))
	copy(ids, c.StudentIDs)
	c.StudentIDs = ids
	return c
}

func copyStudent(s lms.Student) lms.Student {
	grades := make(map[string]int, len(s.Grades))
	for k, v := range s.Grades {
		grades[k] = v
	}
	s.Grades = grades
	return s
}
