// Package jsonfile stores the registry state and the grades report as JSON documents.
package jsonfile

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/lms"
)

const filePerm = 0o644

type store struct{}

var _ lms.StateStore = (*store)(nil) // interface compliance check

func NewStore() lms.StateStore {
	return &store{}
}

// stateDoc mirrors lms.State with pointers, so that missing keys can be told apart from empty values.
type (
	stateDoc struct {
		Teachers *[]teacherDoc `json:"teachers" validate:"required,dive"`
		Courses  *[]courseDoc  `json:"courses" validate:"required,dive"`
		Students *[]studentDoc `json:"students" validate:"required,dive"`
	}

	teacherDoc struct {
		Name    *string `json:"name" validate:"required"`
		Subject *string `json:"subject" validate:"required"`
	}

	courseDoc struct {
		Name         *string  `json:"name" validate:"required"`
		TeacherName  *string  `json:"teacher_name" validate:"required"`
		StudentNames []string `json:"student_names"`
	}

	studentDoc struct {
		Name *string `json:"name" validate:"required"`
	}
)

func (doc stateDoc) unmarshal() lms.State {
	st := lms.State{
		Teachers: make([]lms.TeacherRecord, 0, len(*doc.Teachers)),
		Courses:  make([]lms.CourseRecord, 0, len(*doc.Courses)),
		Students: make([]lms.StudentRecord, 0, len(*doc.Students)),
	}
	for _, t := range *doc.Teachers {
		st.Teachers = append(st.Teachers, lms.TeacherRecord{Name: *t.Name, Subject: *t.Subject})
	}
	for _, c := range *doc.Courses {
		names := c.StudentNames
		if names == nil {
			names = []string{}
		}
		st.Courses = append(st.Courses, lms.CourseRecord{Name: *c.Name, TeacherName: *c.TeacherName, StudentNames: names})
	}
	for _, s := range *doc.Students {
		st.Students = append(st.Students, lms.StudentRecord{Name: *s.Name})
	}
	return st
}

func (s store) SaveState(path string, st lms.State) error {
	// empty collections are written as [], never null
	if st.Teachers == nil {
		st.Teachers = []lms.TeacherRecord{}
	}
	if st.Courses == nil {
		st.Courses = []lms.CourseRecord{}
	}
	if st.Students == nil {
		st.Students = []lms.StudentRecord{}
	}
	for i := range st.Courses {
		if st.Courses[i].StudentNames == nil {
			st.Courses[i].StudentNames = []string{}
		}
	}
	return writeJSON(path, st)
}

func (s store) LoadState(path string) (lms.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lms.State{}, errors.Wrapf(err, "reading %s", path)
	}

	var doc stateDoc
	if err = json.Unmarshal(data, &doc); err != nil {
		return lms.State{}, errors.Wrapf(err, "decoding %s", path)
	}
	validate, translator := core.NewValidator()
	if err = validate.Struct(doc); err != nil {
		return lms.State{}, errors.Wrapf(core.NewValidationErrorFrom(err, translator), "validating %s", path)
	}
	return doc.unmarshal(), nil
}

func (s store) SaveGradesReport(path string, report lms.GradesReport) error {
	if report == nil {
		report = lms.GradesReport{}
	}
	return writeJSON(path, report)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	if err = os.WriteFile(path, data, filePerm); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
