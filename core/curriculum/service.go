package curriculum

import (
	"github.com/google/uuid"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/gpa"
)

// State is everything a session has entered: the options of each flexible year and the grades.
type State struct {
	ID      uuid.UUID       `json:"id"`
	Options map[int]Options `json:"options"`
	Grades  course.Grades   `json:"grades"`
}

func NewState() State {
	return State{
		ID:      uuid.New(),
		Options: make(map[int]Options),
		Grades:  make(course.Grades),
	}
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	clone := State{
		ID:      st.ID,
		Options: make(map[int]Options, len(st.Options)),
		Grades:  st.Grades.Clone(),
	}
	for yr, opts := range st.Options {
		clone.Options[yr] = opts.Clone()
	}
	return clone
}

// Year is the derived layout of one program year.
type Year struct {
	Number    int               `json:"number"`
	Flexible  bool              `json:"flexible"`
	Semesters []course.Semester `json:"semesters"`
}

func (y Year) Courses() []*course.Course { return course.Flatten(y.Semesters...) }

// Program is the derived layout of every year.
type Program struct {
	Years []Year `json:"years"`
}

func (p Program) Year(n int) (Year, bool) {
	for _, yr := range p.Years {
		if yr.Number == n {
			return yr, true
		}
	}
	return Year{}, false
}

func (p Program) Courses() []*course.Course {
	var courses []*course.Course
	for _, yr := range p.Years {
		courses = append(courses, yr.Courses()...)
	}
	return courses
}

// Grades returns the grades entered in p, keyed by slot. Ungraded slots are left out.
func (p Program) Grades() course.Grades {
	grades := make(course.Grades)
	for _, c := range p.Courses() {
		if c.Grade != course.NotFinished && c.Grade != course.Unset {
			grades[c.Key] = c.Grade
		}
	}
	return grades
}

type YearReport struct {
	Number    int       `json:"number"`
	Semesters []float64 `json:"semesters"`
	GPA       float64   `json:"gpa"`
	// Cumulative is the GPA of this year and every year before it.
	Cumulative float64 `json:"cumulative"`
	Credits    float64 `json:"credits"`
	Earned     float64 `json:"earned"`
}

type Report struct {
	Years      []YearReport `json:"years"`
	Cumulative float64      `json:"cumulative"`
	Earned     float64      `json:"earned"`
}

type Service struct {
	catalog *Catalog
	rules   Rules
	log     core.Logger
}

func NewService(cat *Catalog, rules Rules, log core.Logger) *Service {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Service{catalog: cat, rules: rules, log: log}
}

func (svc *Service) Catalog() *Catalog { return svc.catalog }
func (svc *Service) Rules() Rules      { return svc.rules }

// Layout derives every year of the program from st.
func (svc *Service) Layout(st State) Program {
	prog := Program{Years: make([]Year, 0, len(svc.catalog.Years))}
	for _, yc := range svc.catalog.Years {
		prog.Years = append(prog.Years, Year{
			Number:    yc.Number,
			Flexible:  yc.Flexible,
			Semesters: Derive(svc.catalog, svc.rules, yc.Number, st.Options[yc.Number], st.Grades),
		})
	}
	return prog
}

// Apply applies ch to the options of year and re-derives the program.
// Grades of slots that no longer exist are dropped. It returns st unchanged (and false)
// when the year is not flexible or the change is a no-op.
func (svc *Service) Apply(st State, year int, ch Change) (State, Program, bool) {
	yc := svc.catalog.Year(year)
	if yc == nil || !yc.Flexible {
		svc.log.Debug("change ignored: year is not flexible", map[string]interface{}{"year": year, "change": ch.String()}, st.ID)
		return st, svc.Layout(st), false
	}

	opts, ok := ch.Apply(st.Options[year], Env{Catalog: svc.catalog, Rules: svc.rules, Year: year})
	if !ok {
		svc.log.Debug("change ignored", map[string]interface{}{"year": year, "change": ch.String()}, st.ID)
		return st, svc.Layout(st), false
	}

	next := st.Clone()
	next.Options[year] = opts
	prog := svc.Layout(next)
	next.Grades = prog.Grades()
	svc.log.Info("options changed", map[string]interface{}{"year": year, "change": ch.String()}, st.ID)
	return next, prog, true
}

// SetGrade grades the course at the given 0-based semester and course index of year.
// Grading a thesis slot grades every thesis slot of the year.
func (svc *Service) SetGrade(st State, year, semester, index int, grade course.Grade) (State, Program, bool) {
	prog := svc.Layout(st)
	yr, ok := prog.Year(year)
	if !ok || semester < 0 || semester >= len(yr.Semesters) ||
		index < 0 || index >= len(yr.Semesters[semester].Courses) || !grade.IsValid() {
		svc.log.Debug("grade ignored", map[string]interface{}{"year": year, "semester": semester, "index": index}, st.ID)
		return st, prog, false
	}

	target := yr.Semesters[semester].Courses[index]
	next := st.Clone()
	for _, c := range yr.Courses() {
		if c.Key == target.Key || (target.Key.Role == course.RoleThesis && c.Key.Role == course.RoleThesis) {
			c.Grade = grade
			if grade == course.Unset || grade == course.NotFinished {
				delete(next.Grades, c.Key)
			} else {
				next.Grades[c.Key] = grade
			}
		}
	}
	svc.log.Debug("grade set", map[string]interface{}{"course": target.Key.String(), "grade": string(grade)}, st.ID)
	return next, prog, true
}

// Report aggregates the GPA of every semester and year of p.
func (svc *Service) Report(p Program) Report {
	var (
		rep  Report
		upTo []*course.Course
	)
	for _, yr := range p.Years {
		courses := yr.Courses()
		upTo = append(upTo, courses...)

		yrep := YearReport{
			Number:     yr.Number,
			Semesters:  make([]float64, len(yr.Semesters)),
			GPA:        gpa.Calculate(courses...),
			Cumulative: gpa.Calculate(upTo...),
			Credits:    gpa.Credits(courses...),
			Earned:     gpa.Earned(courses...),
		}
		for i, sem := range yr.Semesters {
			yrep.Semesters[i] = gpa.Calculate(course.Flatten(sem)...)
		}
		rep.Years = append(rep.Years, yrep)
	}
	rep.Cumulative = gpa.Calculate(upTo...)
	rep.Earned = gpa.Earned(upTo...)
	return rep
}
