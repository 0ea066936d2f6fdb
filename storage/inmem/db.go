package inmemdb

import (
	"sync"

	"github.com/trezcool/lms/core/lms"
)

type (
	DB struct {
		lms *lmsTables
	}

	// lmsTables are append-only slices; a slice index is the entity position minus one.
	lmsTables struct {
		sync.RWMutex
		teachers []*lms.Teacher
		courses  []*lms.Course
		students []*lms.Student
	}
)

func Open() (*DB, error) {
	db := &DB{
		lms: &lmsTables{},
	}
	return db, nil
}
