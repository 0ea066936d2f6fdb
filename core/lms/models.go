package lms

import "fmt"

type Teacher struct {
	ID      string
	Name    string
	Subject string
}

func (t Teacher) String() string {
	return fmt.Sprintf("Teacher %s (subject: %s)", t.Name, t.Subject)
}

// TeacherRecord is the structured representation of a Teacher.
type TeacherRecord struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

func (t Teacher) Record() TeacherRecord {
	return TeacherRecord{Name: t.Name, Subject: t.Subject}
}

// Course is bound to its Teacher at creation; teachers are never edited, so the value is kept as is.
type Course struct {
	ID         string
	Name       string
	Teacher    Teacher
	StudentIDs []string // enrollment order, duplicates allowed
}

func (c Course) String() string {
	return fmt.Sprintf("Course: %s, teacher: %s", c.Name, c.Teacher.Name)
}

// CourseRecord is the structured representation of a Course.
// It is lossy: the teacher is flattened to its name and grades are not part of it.
type CourseRecord struct {
	Name         string   `json:"name"`
	TeacherName  string   `json:"teacher_name"`
	StudentNames []string `json:"student_names"`
}

type Student struct {
	ID     string
	Name   string
	Grades map[string]int // {courseID: grade}
}

func (s Student) String() string {
	return fmt.Sprintf("Student: %s", s.Name)
}

// YearGrade is the average of all grades, 0 if there are none.
func (s Student) YearGrade() float64 {
	if len(s.Grades) == 0 {
		return 0
	}
	var sum int
	for _, g := range s.Grades {
		sum += g
	}
	return float64(sum) / float64(len(s.Grades))
}

// StudentRecord is the structured representation of a Student. Grades are never part of it.
type StudentRecord struct {
	Name string `json:"name"`
}

func (s Student) Record() StudentRecord {
	return StudentRecord{Name: s.Name}
}
