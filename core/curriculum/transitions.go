package curriculum

import (
	"fmt"

	"github.com/trezcool/gradebook/core/course"
)

// Env is what a Change may consult besides the options it applies to.
// Year is the program year the options belong to.
type Env struct {
	Catalog *Catalog
	Rules   Rules
	Year    int
}

func (e Env) allows(k OptionKind) bool { return e.Catalog.Year(e.Year).Allows(k) }

// placed reports whether deriving opts puts an elective in the given slot.
func (e Env) placed(opts Options, slot ElectiveSlot) bool {
	for _, c := range course.Flatten(Derive(e.Catalog, e.Rules, e.Year, opts, nil)...) {
		if c.Key.Role == course.RoleElective && c.Key.Semester == slot.Semester && c.Key.Occurrence == slot.Slot {
			return true
		}
	}
	return false
}

// pruneElectives drops the electives of opts that no longer fit once the other options are placed.
func (e Env) pruneElectives(opts Options) {
	for _, slot := range opts.ElectiveSlots() {
		if !e.placed(opts, slot) {
			delete(opts.Electives, slot)
		}
	}
}

// Change is one enrollment option value change.
// Apply returns the new options and whether the change was applied;
// conflicting or redundant changes are no-ops and leave opts untouched.
type Change interface {
	Apply(opts Options, env Env) (Options, bool)
	fmt.Stringer
}

var (
	_ Change = SetExchange{}
	_ Change = SetInternship{}
	_ Change = SetThesis{}
	_ Change = SetElective{}
	_ Change = SetSpecialization{}
	_ Change = SetSecondSpecialization{}
)

// SetExchange picks the exchange half-year. Going on exchange moves the thesis to the other half;
// cancelling the exchange removes the thesis too. Ignored while an internship is selected.
type SetExchange struct{ Half Half }

func (c SetExchange) Apply(opts Options, env Env) (Options, bool) {
	if !env.allows(OptionExchange) || !c.Half.IsValid() || opts.Internship || opts.Exchange == c.Half {
		return opts, false
	}
	opts = opts.Clone()
	opts.Exchange = c.Half
	if env.allows(OptionThesis) {
		opts.Thesis = c.Half.Opposite()
	}
	opts.clearElectives(c.Half.Semesters()...)
	env.pruneElectives(opts)
	return opts, true
}

func (c SetExchange) String() string { return "exchange=" + c.Half.String() }

// SetInternship toggles the internship. Selecting it clears every other option of the year.
type SetInternship struct{ On bool }

func (c SetInternship) Apply(opts Options, env Env) (Options, bool) {
	if !env.allows(OptionInternship) || opts.Internship == c.On {
		return opts, false
	}
	if c.On {
		return Options{Internship: true}, true
	}
	opts = opts.Clone()
	opts.Internship = false
	return opts, true
}

func (c SetInternship) String() string { return fmt.Sprintf("internship=%t", c.On) }

// SetThesis picks the thesis half-year. It is derived from the exchange while one is selected.
// Electives that no longer fit next to the thesis are dropped.
type SetThesis struct{ Half Half }

func (c SetThesis) Apply(opts Options, env Env) (Options, bool) {
	if !env.allows(OptionThesis) || !c.Half.IsValid() || opts.Internship ||
		opts.Exchange != NoHalf || opts.Thesis == c.Half {
		return opts, false
	}
	opts = opts.Clone()
	opts.Thesis = c.Half
	env.pruneElectives(opts)
	return opts, true
}

func (c SetThesis) String() string { return "thesis=" + c.Half.String() }

// SetElective selects (or removes, with NoElective) the elective of one slot.
// Selecting an elective drops the second specialization; slots taken by the primary
// specialization, and slots of a semester with no credit room left, cannot hold an elective.
type SetElective struct {
	Semester int
	Slot     int
	Type     ElectiveType
}

func (c SetElective) Apply(opts Options, env Env) (Options, bool) {
	if !env.allows(OptionElective) || !c.Type.IsValid() || c.Semester < 0 || c.Semester >= SemestersPerYear ||
		c.Slot < 0 || c.Slot >= env.Rules.ElectiveSlots || opts.Internship {
		return opts, false
	}
	slot := ElectiveSlot{Semester: c.Semester, Slot: c.Slot}

	if c.Type == NoElective {
		if _, ok := opts.Electives[slot]; !ok {
			return opts, false
		}
		opts = opts.Clone()
		delete(opts.Electives, slot)
		return opts, true
	}

	if HalfOf(c.Semester) == opts.Exchange || opts.Electives[slot] == c.Type {
		return opts, false
	}
	if opts.Specialization.IsKnown() && hasSpecializationCourse(env.Catalog, opts.Specialization, c.Semester) &&
		c.Slot >= env.Rules.ElectiveSlots-1 {
		return opts, false
	}

	next := opts.Clone()
	if next.Electives == nil {
		next.Electives = make(map[ElectiveSlot]ElectiveType)
	}
	next.Electives[slot] = c.Type
	next.SecondSpecialization = NoSpecialization
	if !env.placed(next, slot) {
		return opts, false
	}
	return next, true
}

func (c SetElective) String() string {
	return fmt.Sprintf("elective[%d:%d]=%s", c.Semester+1, c.Slot+1, c.Type)
}

// SetSpecialization picks the primary track; any change clears the second track and all electives.
type SetSpecialization struct{ Specialization Specialization }

func (c SetSpecialization) Apply(opts Options, env Env) (Options, bool) {
	if !env.allows(OptionSpecialization) || !c.Specialization.IsValid() || opts.Internship ||
		opts.Specialization == c.Specialization {
		return opts, false
	}
	opts = opts.Clone()
	opts.Specialization = c.Specialization
	opts.SecondSpecialization = NoSpecialization
	opts.Electives = nil
	return opts, true
}

func (c SetSpecialization) String() string { return "specialization=" + c.Specialization.String() }

// SetSecondSpecialization picks the second track. It needs a different primary track and
// takes the elective capacity of the specialization semesters, clearing their electives.
type SetSecondSpecialization struct{ Specialization Specialization }

func (c SetSecondSpecialization) Apply(opts Options, env Env) (Options, bool) {
	if !env.allows(OptionSpecialization) || !c.Specialization.IsValid() || opts.Internship ||
		opts.SecondSpecialization == c.Specialization {
		return opts, false
	}
	if c.Specialization != NoSpecialization &&
		(!opts.Specialization.IsKnown() || c.Specialization == opts.Specialization) {
		return opts, false
	}
	opts = opts.Clone()
	opts.SecondSpecialization = c.Specialization
	if c.Specialization != NoSpecialization {
		opts.clearElectives(env.Catalog.SpecializationSemesters()...)
	}
	return opts, true
}

func (c SetSecondSpecialization) String() string {
	return "second_specialization=" + c.Specialization.String()
}

func hasSpecializationCourse(cat *Catalog, spec Specialization, sem int) bool {
	_, ok := cat.SpecializationCourse(spec, sem+1)
	return ok
}
