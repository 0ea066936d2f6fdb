// Package files lists, checks and deletes the JSON documents of the data directory.
package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/lms/core"
)

const jsonExt = ".json"

var (
	// errors
	ErrFileNotFound = errors.New("file not found")

	minSuggestionRatio = .6
)

type Manager struct {
	dir string
}

func NewManager(dir string) *Manager {
	if dir == "" {
		dir = "."
	}
	return &Manager{dir: dir}
}

// Path resolves `name` inside the data directory. Absolute paths are kept as is.
func (m *Manager) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.dir, name)
}

// ListJSON returns the names of the regular files ending in .json, sorted.
func (m *Manager) ListJSON() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", m.dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), jsonExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (m *Manager) Exists(name string) bool {
	fi, err := os.Stat(m.Path(name))
	return err == nil && !fi.IsDir()
}

// Delete removes the named file. A missing file yields ErrFileNotFound.
func (m *Manager) Delete(name string) error {
	path := m.Path(name)
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return core.NewArgumentError(name + " is a directory")
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return errors.Wrapf(err, "deleting %s", name)
	}
	return nil
}

// Suggest returns the existing .json file whose name is the closest to `name`,
// or "" if none is similar enough.
func (m *Manager) Suggest(name string) string {
	names, err := m.ListJSON()
	if err != nil || name == "" {
		return ""
	}

	var (
		best      string
		bestRatio float64
	)
	for _, candidate := range names {
		ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(candidate, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = candidate, ratio
		}
	}
	if bestRatio < minSuggestionRatio {
		return ""
	}
	return best
}
