package lms

import "fmt"

// State is the content of a state file.
type State struct {
	Teachers []TeacherRecord `json:"teachers"`
	Courses  []CourseRecord  `json:"courses"`
	Students []StudentRecord `json:"students"`
}

// StudentGrades is one student's entry in a GradesReport.
type StudentGrades struct {
	Grades       map[string]int `json:"grades"` // {courseName: grade}
	AverageGrade float64        `json:"average_grade"`
}

// GradesReport maps student names to their grades. Students with the same name collapse to one entry.
type GradesReport map[string]StudentGrades

// LoadReport tells what a state file could not bring back.
type LoadReport struct {
	Teachers int
	Courses  int
	Students int

	// DroppedEnrollments counts the student names listed in courses;
	// courses are always restored without students.
	DroppedEnrollments int
	// DetachedTeachers counts courses restored with a new teacher that only carries a name.
	DetachedTeachers int
}

func (r LoadReport) Lossy() bool {
	return r.DroppedEnrollments > 0 || r.DetachedTeachers > 0
}

func (r LoadReport) fields() map[string]interface{} {
	return map[string]interface{}{
		"teachers":            r.Teachers,
		"courses":             r.Courses,
		"students":            r.Students,
		"dropped_enrollments": r.DroppedEnrollments,
		"detached_teachers":   r.DetachedTeachers,
	}
}

func (svc *Service) snapshot() (State, error) {
	teachers, err := svc.repo.QueryTeachers()
	if err != nil {
		return State{}, err
	}
	courses, err := svc.repo.QueryCourses()
	if err != nil {
		return State{}, err
	}
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return State{}, err
	}

	names := make(map[string]string, len(students)) // {studentID: name}
	st := State{
		Teachers: make([]TeacherRecord, 0, len(teachers)),
		Courses:  make([]CourseRecord, 0, len(courses)),
		Students: make([]StudentRecord, 0, len(students)),
	}
	for _, t := range teachers {
		st.Teachers = append(st.Teachers, t.Record())
	}
	for _, s := range students {
		names[s.ID] = s.Name
		st.Students = append(st.Students, s.Record())
	}
	for _, c := range courses {
		rec := CourseRecord{
			Name:         c.Name,
			TeacherName:  c.Teacher.Name,
			StudentNames: make([]string, 0, len(c.StudentIDs)),
		}
		for _, id := range c.StudentIDs {
			rec.StudentNames = append(rec.StudentNames, names[id])
		}
		st.Courses = append(st.Courses, rec)
	}
	return st, nil
}

// restore rebuilds the collections from a state file content.
// Courses get a new teacher without subject and no students; students get no grades.
func restore(st State) ([]Teacher, []Course, []Student, LoadReport) {
	report := LoadReport{
		Teachers: len(st.Teachers),
		Courses:  len(st.Courses),
		Students: len(st.Students),
	}

	teachers := make([]Teacher, 0, len(st.Teachers))
	for _, rec := range st.Teachers {
		teachers = append(teachers, Teacher{ID: newID(), Name: rec.Name, Subject: rec.Subject})
	}

	courses := make([]Course, 0, len(st.Courses))
	for _, rec := range st.Courses {
		courses = append(courses, Course{
			ID:         newID(),
			Name:       rec.Name,
			Teacher:    Teacher{ID: newID(), Name: rec.TeacherName},
			StudentIDs: []string{},
		})
		report.DroppedEnrollments += len(rec.StudentNames)
		report.DetachedTeachers++
	}

	students := make([]Student, 0, len(st.Students))
	for _, rec := range st.Students {
		students = append(students, Student{ID: newID(), Name: rec.Name, Grades: make(map[string]int)})
	}
	return teachers, courses, students, report
}

func (svc *Service) gradesReport() (GradesReport, error) {
	courses, err := svc.repo.QueryCourses()
	if err != nil {
		return nil, err
	}
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return nil, err
	}

	courseNames := make(map[string]string, len(courses)) // {courseID: name}
	for _, c := range courses {
		courseNames[c.ID] = c.Name
	}

	report := make(GradesReport, len(students))
	for _, s := range students {
		grades := make(map[string]int, len(s.Grades))
		for courseID, grade := range s.Grades {
			name, ok := courseNames[courseID]
			if !ok {
				svc.logger.Warn(fmt.Sprintf("grade of %q for unknown course %s skipped", s.Name, courseID))
				continue
			}
			grades[name] = grade
		}
		report[s.Name] = StudentGrades{Grades: grades, AverageGrade: s.YearGrade()}
	}
	return report, nil
}
