package lms_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/lms"
	"github.com/trezcool/lms/tests"
)

func TestService_AddTeacher(t *testing.T) {
	svc, _ := testutil.NewService(t)

	ann, pos, err := svc.AddTeacher("  Ann ", "Math")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "Ann", ann.Name)
	assert.Equal(t, "Math", ann.Subject)
	assert.NotEmpty(t, ann.ID)

	// duplicates are allowed
	ann2, pos, err := svc.AddTeacher("Ann", "Math")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
	assert.NotEqual(t, ann.ID, ann2.ID)

	got, err := svc.Teacher(ann2.ID)
	require.NoError(t, err)
	assert.Equal(t, ann2, got)
}

func TestProperty_AddTeacherReportsPosition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc, _ := testutil.NewService(t)
		n := rapid.IntRange(1, 40).Draw(rt, "n")

		for i := 1; i <= n; i++ {
			name := rapid.String().Draw(rt, "name")
			_, pos, err := svc.AddTeacher(name, "")
			if err != nil {
				rt.Fatalf("AddTeacher() error = %v", err)
			}
			if pos != i {
				rt.Fatalf("AddTeacher() position = %d, want %d", pos, i)
			}
		}

		teachers, err := svc.Teachers()
		if err != nil {
			rt.Fatalf("Teachers() error = %v", err)
		}
		if len(teachers) != n {
			rt.Fatalf("len(Teachers()) = %d, want %d", len(teachers), n)
		}
	})
}

func TestService_AddCourseAndStudent(t *testing.T) {
	svc, _ := testutil.NewService(t)
	ann := testutil.AddTeacher(t, svc, "Ann", "Math")

	algebra, pos, err := svc.AddCourse("Algebra", ann)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, ann, algebra.Teacher)
	assert.Empty(t, algebra.StudentIDs)

	bob, pos, err := svc.AddStudent("Bob")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Empty(t, bob.Grades)
	assert.Zero(t, bob.YearGrade())
}

func TestService_EnrollStudentInCourse(t *testing.T) {
	svc, _ := testutil.NewService(t)
	_, algebra, bob := testutil.SeedAnnAlgebraBob(t, svc)

	// enrolling again is not deduplicated
	require.NoError(t, svc.EnrollStudentInCourse(bob.ID, algebra.ID))

	course, err := svc.Course(algebra.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID, bob.ID}, course.StudentIDs)

	var out bytes.Buffer
	require.NoError(t, svc.DisplayInformation(&out))
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("  - Bob\n")))

	err = svc.EnrollStudentInCourse("nope", algebra.ID)
	assert.Equal(t, lms.ErrNotFound, errors.Cause(err))
}

func TestService_AddGradesForStudent(t *testing.T) {
	svc, _ := testutil.NewService(t)
	ann, algebra, bob := testutil.SeedAnnAlgebraBob(t, svc)
	physics := testutil.AddCourse(t, svc, "Physics", ann)

	require.NoError(t, svc.AddGradesForStudent(bob.ID, map[string]int{algebra.ID: 60, physics.ID: 100}))
	// last write wins
	require.NoError(t, svc.AddGradesForStudent(bob.ID, map[string]int{algebra.ID: 80}))

	got, err := svc.Student(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{algebra.ID: 80, physics.ID: 100}, got.Grades)
	assert.Equal(t, 90.0, got.YearGrade())

	err = svc.AddGradesForStudent("nope", map[string]int{algebra.ID: 1})
	assert.Equal(t, lms.ErrNotFound, errors.Cause(err))
}

func TestService_positions(t *testing.T) {
	svc, _ := testutil.NewService(t)
	ann, algebra, bob := testutil.SeedAnnAlgebraBob(t, svc)

	tests := []struct {
		name    string
		get     func(pos int) (interface{}, error)
		pos     int
		want    interface{}
		wantErr error
	}{
		{name: "teacher 0", get: func(p int) (interface{}, error) { return svc.TeacherAt(p) }, pos: 0, wantErr: lms.ErrInvalidPosition},
		{name: "teacher 1", get: func(p int) (interface{}, error) { return svc.TeacherAt(p) }, pos: 1, want: ann},
		{name: "teacher 2", get: func(p int) (interface{}, error) { return svc.TeacherAt(p) }, pos: 2, wantErr: lms.ErrInvalidPosition},
		{name: "course -1", get: func(p int) (interface{}, error) { return svc.CourseAt(p) }, pos: -1, wantErr: lms.ErrInvalidPosition},
		{name: "course 1", get: func(p int) (interface{}, error) { return svc.CourseAt(p) }, pos: 1},
		{name: "course 2", get: func(p int) (interface{}, error) { return svc.CourseAt(p) }, pos: 2, wantErr: lms.ErrInvalidPosition},
		{name: "student 1", get: func(p int) (interface{}, error) { return svc.StudentAt(p) }, pos: 1},
		{name: "student 2", get: func(p int) (interface{}, error) { return svc.StudentAt(p) }, pos: 2, wantErr: lms.ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get(tt.pos)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	course, err := svc.CourseAt(1)
	require.NoError(t, err)
	assert.Equal(t, algebra.ID, course.ID)
	assert.Equal(t, []string{bob.ID}, course.StudentIDs)

	student, err := svc.StudentAt(1)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, student.ID)
}

func TestService_DisplayInformation(t *testing.T) {
	svc, _ := testutil.NewService(t)
	ann, algebra, bob := testutil.SeedAnnAlgebraBob(t, svc)
	physics := testutil.AddCourse(t, svc, "Physics", ann)
	testutil.AddStudent(t, svc, "Eve")
	require.NoError(t, svc.AddGradesForStudent(bob.ID, map[string]int{physics.ID: 100, algebra.ID: 80}))

	var out bytes.Buffer
	require.NoError(t, svc.DisplayInformation(&out))

	want := `Teachers:
1. Teacher Ann (subject: Math)

Courses:
1. Course: Algebra, teacher: Ann
Enrolled students:
  - Bob
2. Course: Physics, teacher: Ann
Enrolled students:

Students:
1. Student: Bob
  - Algebra: 80
  - Physics: 100
2. Student: Eve
`
	assert.Equal(t, want, out.String())
}

func TestService_DisplayInformation_empty(t *testing.T) {
	svc, _ := testutil.NewService(t)

	var out bytes.Buffer
	require.NoError(t, svc.DisplayInformation(&out))
	assert.Equal(t, "Teachers:\n\nCourses:\n\nStudents:\n", out.String())
}

func TestService_SaveAndLoadFile(t *testing.T) {
	svc, _ := testutil.NewService(t)
	_, algebra, bob := testutil.SeedAnnAlgebraBob(t, svc)
	require.NoError(t, svc.AddGradesForStudent(bob.ID, map[string]int{algebra.ID: 80}))

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, svc.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"teachers": [{"name": "Ann", "subject": "Math"}],
		"courses": [{"name": "Algebra", "teacher_name": "Ann", "student_names": ["Bob"]}],
		"students": [{"name": "Bob"}]
	}`, string(data))

	// reload into a fresh registry
	fresh, _ := testutil.NewService(t)
	testutil.AddStudent(t, fresh, "Stale")

	report, err := fresh.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, lms.LoadReport{Teachers: 1, Courses: 1, Students: 1, DroppedEnrollments: 1, DetachedTeachers: 1}, report)
	assert.True(t, report.Lossy())

	teachers, err := fresh.Teachers()
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Ann", teachers[0].Name)
	assert.Equal(t, "Math", teachers[0].Subject)

	courses, err := fresh.Courses()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algebra", courses[0].Name)
	assert.Equal(t, "Ann", courses[0].Teacher.Name)
	assert.Equal(t, "", courses[0].Teacher.Subject) // subject lost
	assert.NotEqual(t, teachers[0].ID, courses[0].Teacher.ID)
	assert.Empty(t, courses[0].StudentIDs) // enrollment lost

	students, err := fresh.Students()
	require.NoError(t, err)
	require.Len(t, students, 1) // "Stale" is gone
	assert.Equal(t, "Bob", students[0].Name)
	assert.Empty(t, students[0].Grades) // grades were never saved
}

func TestService_SaveToFile_empty(t *testing.T) {
	svc, _ := testutil.NewService(t)
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, svc.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"teachers": [], "courses": [], "students": []}`, string(data))

	report, err := svc.LoadFromFile(path)
	require.NoError(t, err)
	assert.False(t, report.Lossy())
}

func TestService_LoadFromFile_errors(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	tests := []struct {
		name           string
		path           string
		wantValidation bool
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.json")},
		{name: "not json", path: writeFile("broken.json", "{not json")},
		{name: "missing key", path: writeFile("partial.json", `{"teachers": [], "courses": []}`), wantValidation: true},
		{name: "course without teacher", path: writeFile("course.json", `{"teachers": [], "courses": [{"name": "Algebra"}], "students": []}`), wantValidation: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := testutil.NewService(t)
			testutil.SeedAnnAlgebraBob(t, svc)

			_, err := svc.LoadFromFile(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.wantValidation, core.IsValidationError(err))

			// state is left untouched
			students, err := svc.Students()
			require.NoError(t, err)
			require.Len(t, students, 1)
			assert.Equal(t, "Bob", students[0].Name)
		})
	}
}

func TestService_SaveGradesToFile(t *testing.T) {
	svc, _ := testutil.NewService(t)
	ann, algebra, bob := testutil.SeedAnnAlgebraBob(t, svc)
	physics := testutil.AddCourse(t, svc, "Physics", ann)
	testutil.AddStudent(t, svc, "Eve")
	require.NoError(t, svc.AddGradesForStudent(bob.ID, map[string]int{algebra.ID: 80, physics.ID: 100}))

	path := filepath.Join(t.TempDir(), "grades.json")
	require.NoError(t, svc.SaveGradesToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Bob": {"grades": {"Algebra": 80, "Physics": 100}, "average_grade": 90.0},
		"Eve": {"grades": {}, "average_grade": 0}
	}`, string(data))

	var report lms.GradesReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 90.0, report["Bob"].AverageGrade)
}
