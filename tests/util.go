package testutil

import (
	"io"
	"testing"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/lms"
	logsvc "github.com/trezcool/lms/services/logger"
	inmemdb "github.com/trezcool/lms/storage/inmem"
	"github.com/trezcool/lms/storage/jsonfile"
)

// NewLogger returns a silent logger that never reports to Rollbar.
func NewLogger() core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewStdLogger("TEST", io.Discard, false), &core.Config{Env: "TEST"})
	logger.Enable(false)
	return logger
}

// NewService returns a registry backed by a fresh in-memory DB and the JSON file store.
func NewService(t *testing.T) (*lms.Service, lms.Repository) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	repo := inmemdb.NewLMSRepository(db)
	return lms.NewService(repo, jsonfile.NewStore(), NewLogger()), repo
}

func AddTeacher(t *testing.T, svc *lms.Service, name, subject string) lms.Teacher {
	teacher, _, err := svc.AddTeacher(name, subject)
	if err != nil {
		t.Fatalf("AddTeacher() failed: %v", err)
	}
	return teacher
}

func AddCourse(t *testing.T, svc *lms.Service, name string, teacher lms.Teacher) lms.Course {
	course, _, err := svc.AddCourse(name, teacher)
	if err != nil {
		t.Fatalf("AddCourse() failed: %v", err)
	}
	return course
}

func AddStudent(t *testing.T, svc *lms.Service, name string, enrollIn ...lms.Course) lms.Student {
	student, _, err := svc.AddStudent(name)
	if err != nil {
		t.Fatalf("AddStudent() failed: %v", err)
	}
	for _, c := range enrollIn {
		if err = svc.EnrollStudentInCourse(student.ID, c.ID); err != nil {
			t.Fatalf("EnrollStudentInCourse() failed: %v", err)
		}
	}
	return student
}

// SeedAnnAlgebraBob adds teacher Ann (Math), her course Algebra and student Bob enrolled in it.
func SeedAnnAlgebraBob(t *testing.T, svc *lms.Service) (lms.Teacher, lms.Course, lms.Student) {
	ann := AddTeacher(t, svc, "Ann", "Math")
	algebra := AddCourse(t, svc, "Algebra", ann)
	bob := AddStudent(t, svc, "Bob", algebra)
	return ann, algebra, bob
}
