package lms

import (
	"fmt"
	"io"
	"strings"
)

// DisplayInformation writes all teachers, then all courses with their enrolled students,
// then all students with their grades.
func (svc *Service) DisplayInformation(w io.Writer) error {
	teachers, err := svc.repo.QueryTeachers()
	if err != nil {
		return err
	}
	courses, err := svc.repo.QueryCourses()
	if err != nil {
		return err
	}
	students, err := svc.repo.QueryStudents()
	if err != nil {
		return err
	}

	names := make(map[string]string, len(students)) // {studentID: name}
	for _, s := range students {
		names[s.ID] = s.Name
	}

	body := new(strings.Builder)

	_, _ = fmt.Fprintln(body, "Teachers:")
	for i, t := range teachers {
		_, _ = fmt.Fprintf(body, "%d. %s\n", i+1, t)
	}

	_, _ = fmt.Fprintln(body, "\nCourses:")
	for i, c := range courses {
		_, _ = fmt.Fprintf(body, "%d. %s\n", i+1, c)
		_, _ = fmt.Fprintln(body, "Enrolled students:")
		for _, id := range c.StudentIDs {
			_, _ = fmt.Fprintf(body, "  - %s\n", names[id])
		}
	}

	_, _ = fmt.Fprintln(body, "\nStudents:")
	for i, s := range students {
		_, _ = fmt.Fprintf(body, "%d. %s\n", i+1, s)
		// course order keeps the listing stable
		for _, c := range courses {
			if grade, ok := s.Grades[c.ID]; ok {
				_, _ = fmt.Fprintf(body, "  - %s: %d\n", c.Name, grade)
			}
		}
	}

	_, err = io.WriteString(w, body.String())
	return err
}
