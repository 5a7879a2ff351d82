package testutil

import (
	"testing"

	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/storage/catalog"
)

// Catalog returns a fresh copy of the embedded program catalog.
func Catalog(t *testing.T) *curriculum.Catalog {
	t.Helper()
	return catalog.MustDefault()
}

// Service returns a curriculum.Service over the embedded catalog and the default rules.
func Service(t *testing.T) *curriculum.Service {
	t.Helper()
	return curriculum.NewService(Catalog(t), curriculum.DefaultRules(), nil)
}

// Names lists the course names of a semester, in order.
func Names(sem course.Semester) []string {
	names := make([]string, 0, len(sem.Courses))
	for _, c := range sem.Courses {
		names = append(names, c.Name)
	}
	return names
}

// Semester returns the 0-based semester of the given year in p, failing the test when missing.
func Semester(t *testing.T, p curriculum.Program, year, sem int) course.Semester {
	t.Helper()
	yr, ok := p.Year(year)
	if !ok || sem < 0 || sem >= len(yr.Semesters) {
		t.Fatalf("Semester(%d, %d) not found", year, sem)
	}
	return yr.Semesters[sem]
}

// Apply applies the changes in order and fails the test when one is ignored.
func Apply(t *testing.T, svc *curriculum.Service, st curriculum.State, year int, changes ...curriculum.Change) (curriculum.State, curriculum.Program) {
	t.Helper()
	prog := svc.Layout(st)
	for _, ch := range changes {
		var ok bool
		if st, prog, ok = svc.Apply(st, year, ch); !ok {
			t.Fatalf("Apply(%d, %s) ignored", year, ch)
		}
	}
	return st, prog
}

// Grade sets a grade and fails the test when it is ignored.
func Grade(t *testing.T, svc *curriculum.Service, st curriculum.State, year, sem, idx int, g course.Grade) (curriculum.State, curriculum.Program) {
	t.Helper()
	st, prog, ok := svc.SetGrade(st, year, sem, idx, g)
	if !ok {
		t.Fatalf("SetGrade(%d, %d, %d, %s) ignored", year, sem, idx, g)
	}
	return st, prog
}
