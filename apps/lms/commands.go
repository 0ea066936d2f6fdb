package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/lms"
	"github.com/trezcool/lms/services/files"
)

const gradesSentinel = "q"

func addTeacher(sh *shell) error {
	name, err := sh.ask("Teacher name: ")
	if err != nil {
		return err
	}
	subject, err := sh.ask("Subject: ")
	if err != nil {
		return err
	}
	teacher, pos, err := sh.Svc.AddTeacher(name, subject)
	if err != nil {
		return err
	}
	sh.printf("Teacher %s added. Teacher number: %d\n", teacher.Name, pos)
	return nil
}

func addCourse(sh *shell) error {
	name, err := sh.ask("Course name: ")
	if err != nil {
		return err
	}
	num, err := sh.askNumber("Teacher number: ")
	if err != nil {
		return err
	}

	teacher, err := sh.Svc.TeacherAt(num)
	if err != nil {
		if errors.Cause(err) == lms.ErrInvalidPosition {
			sh.println("Invalid teacher number.")
			return nil
		}
		return err
	}
	course, pos, err := sh.Svc.AddCourse(name, teacher)
	if err != nil {
		return err
	}
	sh.printf("Course %s added. Course number: %d\n", course.Name, pos)
	return nil
}

func addStudent(sh *shell) error {
	name, err := sh.ask("Student name: ")
	if err != nil {
		return err
	}
	student, pos, err := sh.Svc.AddStudent(name)
	if err != nil {
		return err
	}
	sh.printf("Student %s added. Student number: %d\n", student.Name, pos)
	return nil
}

// selectStudentAndCourse reads a student number then a course number. ok is false if either is invalid.
func selectStudentAndCourse(sh *shell, studentPrompt string) (student lms.Student, course lms.Course, ok bool, err error) {
	studentNum, err := sh.askNumber(studentPrompt)
	if err != nil {
		return
	}
	courseNum, err := sh.askNumber("Course number: ")
	if err != nil {
		return
	}

	if student, err = sh.Svc.StudentAt(studentNum); err == nil {
		course, err = sh.Svc.CourseAt(courseNum)
	}
	if err != nil {
		if errors.Cause(err) == lms.ErrInvalidPosition {
			sh.println("Invalid student or course number.")
			err = nil
		}
		return
	}
	return student, course, true, nil
}

func enrollStudent(sh *shell) error {
	student, course, ok, err := selectStudentAndCourse(sh, "Student number to enroll: ")
	if err != nil || !ok {
		return err
	}
	if err = sh.Svc.EnrollStudentInCourse(student.ID, course.ID); err != nil {
		return err
	}
	sh.printf("%s was enrolled in course %s\n", student.Name, course.Name)
	return nil
}

// addGrades collects grades for one course until the sentinel is entered, then submits them at once.
// A grade that is not an integer abandons the whole entry.
func addGrades(sh *shell) error {
	student, course, ok, err := selectStudentAndCourse(sh, "Student number for grades: ")
	if err != nil || !ok {
		return err
	}

	grades := make(map[string]int) // {courseID: grade}
	for {
		answer, err := sh.ask(fmt.Sprintf("Grade (or '%s' to finish): ", gradesSentinel))
		if err != nil {
			return err
		}
		answer = core.CleanString(answer, true /* lower */)
		if answer == gradesSentinel {
			break
		}
		grade, err := strconv.Atoi(answer)
		if err != nil {
			sh.printf("Invalid grade %q, no grades were added.\n", answer)
			return nil
		}
		grades[course.ID] = grade
	}

	if err = sh.Svc.AddGradesForStudent(student.ID, grades); err != nil {
		return err
	}
	sh.printf("Grades %s were added for %s\n", formatGrades(grades, map[string]string{course.ID: course.Name}), student.Name)
	return nil
}

// formatGrades renders {courseID: grade} as {name: grade, ...} sorted by course name.
func formatGrades(grades map[string]int, courseNames map[string]string) string {
	parts := make([]string, 0, len(grades))
	for id, grade := range grades {
		parts = append(parts, fmt.Sprintf("%s: %d", courseNames[id], grade))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

func saveGrades(sh *shell) error {
	name, err := sh.askFileName("File name for grades: ", sh.Conf.GradesFile)
	if err != nil {
		return err
	}
	if err = sh.Svc.SaveGradesToFile(sh.Files.Path(name)); err != nil {
		return err
	}
	sh.printf("Grades saved to file %s\n", name)
	return nil
}

func showInformation(sh *shell) error {
	return sh.Svc.DisplayInformation(sh.out)
}

func saveState(sh *shell) error {
	name, err := sh.askFileName("File name: ", sh.Conf.StateFile)
	if err != nil {
		return err
	}
	if err = sh.Svc.SaveToFile(sh.Files.Path(name)); err != nil {
		return err
	}
	sh.printf("File %s saved.\n", name)
	return nil
}

func loadState(sh *shell) error {
	name, err := chooseFile(sh, sh.Conf.StateFile)
	if err != nil {
		return err
	}
	if !sh.Files.Exists(name) {
		sh.printf("File %s does not exist.\n", name)
		suggest(sh, name)
		return nil
	}

	report, err := sh.Svc.LoadFromFile(sh.Files.Path(name))
	if err != nil {
		if core.IsValidationError(err) {
			sh.printf("File %s is not a valid state file: %v\n", name, errors.Cause(err))
			return nil
		}
		return err
	}
	sh.printf("File %s loaded.\n", name)
	if report.Lossy() {
		sh.printf(
			"Not restored: %d enrollment(s), the subjects of %d course teacher(s). Grades are not stored in this file.\n",
			report.DroppedEnrollments, report.DetachedTeachers,
		)
	}
	return nil
}

func listFiles(sh *shell) error {
	names, err := sh.Files.ListJSON()
	if err != nil {
		return err
	}
	sh.println("Available files:")
	for _, name := range names {
		sh.println(name)
	}
	return nil
}

// chooseFile lists the available files then reads a file name.
func chooseFile(sh *shell, def string) (string, error) {
	if err := listFiles(sh); err != nil {
		return "", err
	}
	return sh.askFileName("File name: ", def)
}

func deleteFile(sh *shell) error {
	name, err := chooseFile(sh, "")
	if err != nil {
		return err
	}
	if name == "" {
		sh.println("No file name given.")
		return nil
	}

	switch err = sh.Files.Delete(name); errors.Cause(err) {
	case nil:
		sh.printf("File %s deleted.\n", name)
	case files.ErrFileNotFound:
		sh.printf("File %s not found.\n", name)
		suggest(sh, name)
	default:
		if !core.IsArgumentError(err) {
			sh.Logger.Error(fmt.Sprintf("deleting %s: %v", name, err), err)
		}
		sh.printf("Error: %v\n", err)
	}
	return nil
}

func suggest(sh *shell, name string) {
	if s := sh.Files.Suggest(name); s != "" && s != name {
		sh.printf("Did you mean %s?\n", s)
	}
}
