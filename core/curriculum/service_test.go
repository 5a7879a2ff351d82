package curriculum_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core/course"
	. "github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/tests"
)

func TestService_internshipReplacesExchange(t *testing.T) {
	svc := testutil.Service(t)
	st, prog := testutil.Apply(t, svc, NewState(), 3, SetExchange{Half: Fall})

	for _, sem := range []int{0, 1} {
		assert.Equal(t, 2, testutil.Semester(t, prog, 3, sem).Count(course.RoleExchange))
	}
	assert.Equal(t, Spring, st.Options[3].Thesis)
	st, _ = testutil.Grade(t, svc, st, 3, 0, 1, course.PassFail)
	require.Len(t, st.Grades, 1)

	st, prog = testutil.Apply(t, svc, st, 3, SetInternship{On: true})
	for _, sem := range []int{0, 1} {
		assert.Equal(t, []string{InternshipName}, testutil.Names(testutil.Semester(t, prog, 3, sem)))
	}
	for _, sem := range []int{2, 3} {
		assert.Empty(t, testutil.Semester(t, prog, 3, sem).Courses)
	}
	assert.Equal(t, Options{Internship: true}, st.Options[3])
	assert.Empty(t, st.Grades, "grades of removed exchange courses must be dropped")
}

func TestService_electiveClearsSecondSpecialization(t *testing.T) {
	svc := testutil.Service(t)
	st, prog := testutil.Apply(t, svc, NewState(), 2,
		SetSpecialization{Specialization: Finance},
		SetSecondSpecialization{Specialization: Marketing},
	)

	assert.Equal(t, []string{"Investment Management", "Applied Marketing Theory"}, testutil.Names(testutil.Semester(t, prog, 2, 2)))
	assert.Equal(t, []string{"Corporate Finance and Value Creation", "Marketing in Practice"}, testutil.Names(testutil.Semester(t, prog, 2, 3)))
	for _, sem := range []int{2, 3} {
		assert.False(t, testutil.Semester(t, prog, 2, sem).Has(course.RoleElective))
		assert.True(t, testutil.Semester(t, prog, 2, sem).IsFull(svc.Rules().SemesterCreditCap))
	}

	st, prog = testutil.Apply(t, svc, st, 2, SetElective{Semester: 2, Slot: 0, Type: ElectiveGraded})
	assert.Equal(t, NoSpecialization, st.Options[2].SecondSpecialization)
	assert.Equal(t, []string{"Elective (Graded)", "Investment Management"}, testutil.Names(testutil.Semester(t, prog, 2, 2)))
	assert.Equal(t, []string{"Corporate Finance and Value Creation"}, testutil.Names(testutil.Semester(t, prog, 2, 3)))

	// the freed semester 4 slot can take an elective
	_, prog = testutil.Apply(t, svc, st, 2, SetElective{Semester: 3, Slot: 0, Type: ElectivePassFail})
	assert.Equal(t, []string{"Elective (Pass/Fail)", "Corporate Finance and Value Creation"}, testutil.Names(testutil.Semester(t, prog, 2, 3)))
}

func TestService_gradesSurviveUnrelatedChanges(t *testing.T) {
	svc := testutil.Service(t)

	tests := []struct {
		name    string
		year    int
		setup   []Change
		graded  [2]int // semester, index
		changes []Change
	}{
		{
			name:    "semester 4 elective type",
			year:    3,
			setup:   []Change{SetElective{Semester: 2, Slot: 0, Type: ElectiveGraded}, SetElective{Semester: 3, Slot: 0, Type: ElectiveGraded}},
			graded:  [2]int{2, 0},
			changes: []Change{SetElective{Semester: 3, Slot: 0, Type: ElectivePassFail}, SetElective{Semester: 3, Slot: 1, Type: ElectiveGraded}},
		},
		{
			name:    "semester 4 elective next to a specialization",
			year:    2,
			setup:   []Change{SetSpecialization{Specialization: Finance}},
			graded:  [2]int{2, 0},
			changes: []Change{SetElective{Semester: 3, Slot: 0, Type: ElectiveGraded}},
		},
		{
			name:    "thesis and spring elective",
			year:    3,
			setup:   []Change{SetElective{Semester: 2, Slot: 1, Type: ElectiveGraded}},
			graded:  [2]int{2, 0},
			changes: []Change{SetThesis{Half: Fall}, SetElective{Semester: 3, Slot: 0, Type: ElectiveGraded}, SetThesis{Half: NoHalf}},
		},
		{
			name:    "fixed course across option changes",
			year:    2,
			graded:  [2]int{0, 1},
			changes: []Change{SetSpecialization{Specialization: Marketing}, SetSecondSpecialization{Specialization: Economics}},
		},
		{
			name:    "elective type switch keeps the slot grade",
			year:    3,
			setup:   []Change{SetElective{Semester: 1, Slot: 0, Type: ElectiveGraded}},
			graded:  [2]int{1, 0},
			changes: []Change{SetElective{Semester: 1, Slot: 0, Type: ElectivePassFail}, SetElective{Semester: 1, Slot: 0, Type: ElectiveGraded}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := testutil.Apply(t, svc, NewState(), tt.year, tt.setup...)
			st, prog := testutil.Grade(t, svc, st, tt.year, tt.graded[0], tt.graded[1], course.VeryGood)
			want := testutil.Semester(t, prog, tt.year, tt.graded[0]).Courses[tt.graded[1]]
			require.Equal(t, course.VeryGood, want.Grade)

			st, prog = testutil.Apply(t, svc, st, tt.year, tt.changes...)
			got := testutil.Semester(t, prog, tt.year, tt.graded[0]).Courses[tt.graded[1]]
			assert.Equal(t, want.Key, got.Key)
			assert.Equal(t, course.VeryGood, got.Grade)
			assert.Equal(t, course.VeryGood, st.Grades[want.Key])
		})
	}
}

func TestService_changedTrackLosesItsGrade(t *testing.T) {
	svc := testutil.Service(t)
	st, _ := testutil.Apply(t, svc, NewState(), 2, SetSpecialization{Specialization: Finance})
	st, _ = testutil.Grade(t, svc, st, 2, 2, 0, course.Excellent)

	st, prog := testutil.Apply(t, svc, st, 2, SetSpecialization{Specialization: Economics})
	sem := testutil.Semester(t, prog, 2, 2)
	require.Len(t, sem.Courses, 1)
	assert.Equal(t, "Using Data to Solve Economic and Social Problems", sem.Courses[0].Name)
	assert.Equal(t, course.NotFinished, sem.Courses[0].Grade)
	assert.Empty(t, st.Grades)
}

func TestService_thesisLinkage(t *testing.T) {
	svc := testutil.Service(t)
	st, _ := testutil.Apply(t, svc, NewState(), 3, SetThesis{Half: Fall})

	for _, sem := range []int{0, 1} {
		st, prog := testutil.Grade(t, svc, st, 3, sem, 0, course.Good)
		for _, other := range []int{0, 1} {
			c := testutil.Semester(t, prog, 3, other).Courses[0]
			assert.Equal(t, ThesisName, c.Name)
			assert.Equal(t, course.Good, c.Grade, "graded semester %d, checked semester %d", sem+1, other+1)
		}
		assert.Len(t, st.Grades, 2)

		// a fresh layout agrees with the returned one
		relaid := svc.Layout(st)
		assert.Equal(t, prog, relaid)
	}

	graded, _ := testutil.Grade(t, svc, st, 3, 1, 0, course.Excellent)
	cleared, prog := testutil.Grade(t, svc, graded, 3, 0, 0, course.NotFinished)
	assert.Empty(t, cleared.Grades)
	assert.Equal(t, course.NotFinished, testutil.Semester(t, prog, 3, 1).Courses[0].Grade)
}

func TestService_SetGrade_ignored(t *testing.T) {
	svc := testutil.Service(t)
	st := NewState()

	tests := []struct {
		name                string
		year, semester, idx int
		grade               course.Grade
	}{
		{name: "unknown year", year: 7, semester: 0, idx: 0, grade: course.Pass},
		{name: "semester out of range", year: 1, semester: 4, idx: 0, grade: course.Pass},
		{name: "negative semester", year: 1, semester: -1, idx: 0, grade: course.Pass},
		{name: "index out of range", year: 1, semester: 0, idx: 3, grade: course.Pass},
		{name: "empty semester", year: 3, semester: 0, idx: 0, grade: course.Pass},
		{name: "unknown grade", year: 1, semester: 0, idx: 0, grade: course.Grade("A+")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, prog, ok := svc.SetGrade(st, tt.year, tt.semester, tt.idx, tt.grade)
			assert.False(t, ok)
			assert.Equal(t, st, got)
			assert.Equal(t, svc.Layout(st), prog)
		})
	}
}

func TestService_Apply_fixedYear(t *testing.T) {
	svc := testutil.Service(t)
	st := NewState()

	got, prog, ok := svc.Apply(st, 1, SetInternship{On: true})
	assert.False(t, ok)
	assert.Equal(t, st, got)
	assert.Empty(t, got.Options)
	assert.Equal(t, svc.Layout(st), prog)

	_, _, ok = svc.Apply(st, 4, SetInternship{On: true})
	assert.False(t, ok)
}

func TestService_Apply_optionNotOffered(t *testing.T) {
	svc := testutil.Service(t)

	tests := []struct {
		name   string
		year   int
		change Change
	}{
		{name: "exchange in year 2", year: 2, change: SetExchange{Half: Fall}},
		{name: "internship in year 2", year: 2, change: SetInternship{On: true}},
		{name: "thesis in year 2", year: 2, change: SetThesis{Half: Spring}},
		{name: "specialization in year 3", year: 3, change: SetSpecialization{Specialization: Finance}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			got, prog, ok := svc.Apply(st, tt.year, tt.change)
			assert.False(t, ok)
			assert.Equal(t, st, got)
			assert.Equal(t, svc.Layout(st), prog)
		})
	}
}

func TestService_unplaceableElectiveKeepsSecondSpecialization(t *testing.T) {
	svc := testutil.Service(t)
	st, _ := testutil.Apply(t, svc, NewState(), 2,
		SetSpecialization{Specialization: Finance},
		SetSecondSpecialization{Specialization: Marketing},
	)

	// semester 1 of year 2 is full with catalog courses
	got, prog, ok := svc.Apply(st, 2, SetElective{Semester: 0, Slot: 0, Type: ElectiveGraded})
	assert.False(t, ok)
	assert.Equal(t, st, got)
	assert.Equal(t, Marketing, got.Options[2].SecondSpecialization)
	assert.Equal(t, []string{"Investment Management", "Applied Marketing Theory"}, testutil.Names(testutil.Semester(t, prog, 2, 2)))
}

// allChanges lists every change a session can make to the options of one year.
func allChanges(rules Rules) []Change {
	changes := []Change{SetInternship{On: true}, SetInternship{On: false}}
	for _, h := range []Half{NoHalf, Fall, Spring} {
		changes = append(changes, SetExchange{Half: h}, SetThesis{Half: h})
	}
	for sem := 0; sem < SemestersPerYear; sem++ {
		for slot := 0; slot < rules.ElectiveSlots; slot++ {
			for _, typ := range []ElectiveType{NoElective, ElectiveGraded, ElectivePassFail} {
				changes = append(changes, SetElective{Semester: sem, Slot: slot, Type: typ})
			}
		}
	}
	for _, spec := range append([]Specialization{NoSpecialization}, Specializations...) {
		changes = append(changes, SetSpecialization{Specialization: spec}, SetSecondSpecialization{Specialization: spec})
	}
	return changes
}

// TestService_creditCap walks the flexible years through every pair of changes, then through a
// seeded random sequence, and checks no semester goes over the cap and every chosen elective
// and track is laid out.
func TestService_creditCap(t *testing.T) {
	svc := testutil.Service(t)
	limit := svc.Rules().SemesterCreditCap
	changes := allChanges(svc.Rules())

	check := func(t *testing.T, st State, prog Program, year int, trail []Change) {
		t.Helper()
		for _, yr := range prog.Years {
			for i, sem := range yr.Semesters {
				if sem.CreditLoad() > limit {
					t.Fatalf("year %d semester %d: load %.1f over %.1f after %v", yr.Number, i+1, sem.CreditLoad(), limit, trail)
				}
			}
		}

		yr, _ := prog.Year(year)
		opts := st.Options[year]
		for _, slot := range opts.ElectiveSlots() {
			if !hasElective(yr, slot) {
				t.Fatalf("year %d: elective %d:%d not laid out after %v", year, slot.Semester+1, slot.Slot+1, trail)
			}
		}
		for _, sem := range svc.Catalog().SpecializationSemesters() {
			if got, want := yr.Semesters[sem].Count(course.RoleSpecialization), len(opts.Tracks()); got != want {
				t.Fatalf("year %d semester %d: %d track courses, want %d after %v", year, sem+1, got, want, trail)
			}
		}
	}

	for _, year := range []int{2, 3} {
		t.Run(fmt.Sprintf("year %d pairs", year), func(t *testing.T) {
			for _, first := range changes {
				st, prog, _ := svc.Apply(NewState(), year, first)
				check(t, st, prog, year, []Change{first})
				for _, second := range changes {
					next, prog, _ := svc.Apply(st, year, second)
					check(t, next, prog, year, []Change{first, second})
				}
			}
		})

		t.Run(fmt.Sprintf("year %d random walk", year), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(year)))
			st := NewState()
			var trail []Change
			for i := 0; i < 5000; i++ {
				if i%12 == 0 {
					st, trail = NewState(), nil
				}
				ch := changes[rnd.Intn(len(changes))]
				var prog Program
				var ok bool
				if st, prog, ok = svc.Apply(st, year, ch); ok {
					trail = append(trail, ch)
				}
				check(t, st, prog, year, trail)
			}
		})
	}
}

func hasElective(yr Year, slot ElectiveSlot) bool {
	for _, c := range yr.Semesters[slot.Semester].Courses {
		if c.Key.Role == course.RoleElective && c.Key.Occurrence == slot.Slot {
			return true
		}
	}
	return false
}

func TestService_Apply_doesNotMutateState(t *testing.T) {
	svc := testutil.Service(t)
	st, _ := testutil.Apply(t, svc, NewState(), 3, SetElective{Semester: 0, Slot: 0, Type: ElectiveGraded})
	st, _ = testutil.Grade(t, svc, st, 3, 0, 0, course.Pass)
	before := st.Clone()

	next, _ := testutil.Apply(t, svc, st, 3, SetInternship{On: true})
	assert.Equal(t, before, st)
	assert.NotEqual(t, st.Options[3], next.Options[3])
	assert.Equal(t, st.ID, next.ID)

	_, _ = testutil.Grade(t, svc, st, 1, 0, 0, course.Excellent)
	assert.Equal(t, before, st)
}

func TestService_Report(t *testing.T) {
	svc := testutil.Service(t)
	st := NewState()

	rep := svc.Report(svc.Layout(st))
	require.Len(t, rep.Years, 3)
	assert.Zero(t, rep.Cumulative)
	assert.Zero(t, rep.Earned)

	st, _ = testutil.Grade(t, svc, st, 1, 0, 0, course.Pass)      // 3 credits
	st, _ = testutil.Grade(t, svc, st, 1, 0, 1, course.Excellent) // 6 credits
	st, _ = testutil.Grade(t, svc, st, 2, 0, 0, course.Good)      // 6 credits
	st, _ = testutil.Apply(t, svc, st, 3, SetInternship{On: true})
	st, prog := testutil.Grade(t, svc, st, 3, 0, 0, course.PassFail)

	rep = svc.Report(prog)
	require.Len(t, rep.Years, 3)

	y1 := rep.Years[0]
	assert.Equal(t, 1, y1.Number)
	assert.Equal(t, []float64{4.33, 0, 0, 0}, y1.Semesters)
	assert.Equal(t, 4.33, y1.GPA)
	assert.Equal(t, 4.33, y1.Cumulative)
	assert.Equal(t, 9.0, y1.Credits)
	assert.Equal(t, 9.0, y1.Earned)

	y2 := rep.Years[1]
	assert.Equal(t, 3.5, y2.GPA)
	assert.Equal(t, 4.0, y2.Cumulative)
	assert.Equal(t, 6.0, y2.Earned)

	y3 := rep.Years[2]
	assert.Zero(t, y3.GPA, "pass/fail courses never count")
	assert.Equal(t, 4.0, y3.Cumulative)
	assert.Zero(t, y3.Credits)
	assert.Equal(t, 7.5, y3.Earned)

	assert.Equal(t, 4.0, rep.Cumulative)
	assert.Equal(t, 22.5, rep.Earned)
}

func TestState_JSON(t *testing.T) {
	svc := testutil.Service(t)
	st, _ := testutil.Apply(t, svc, NewState(), 3,
		SetExchange{Half: Spring},
		SetElective{Semester: 0, Slot: 1, Type: ElectivePassFail},
	)
	st, _ = testutil.Grade(t, svc, st, 3, 0, 0, course.VeryGood)
	st, _ = testutil.Grade(t, svc, st, 1, 2, 1, course.Pass)

	b, err := json.Marshal(st)
	require.NoError(t, err)

	var got State
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, st, got)
	assert.Equal(t, svc.Layout(st), svc.Layout(got))
}
