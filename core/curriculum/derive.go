package curriculum

import (
	"github.com/trezcool/gradebook/core/course"
)

// Course names of the option-derived slots.
const (
	ExchangeName   = "Exchange"
	InternshipName = "Internship"
	ThesisName     = "Thesis"
	ElectiveName   = "Elective"
)

// Derive lays out the semesters of the given year from the catalog and the year's options.
//
// Fixed catalog courses come first. For a flexible year the options the catalog offers for it then
// apply in priority order: internship (excludes everything else), exchange per half-year, thesis in
// a half not on exchange, electives and finally specialization courses, each only where the
// semester is not claimed and the credit cap still has room. Options the year does not offer are
// ignored. Grades are carried over from prior by slot key; slots without a
// prior grade are NotFinished.
//
// Derive never fails: unknown years yield empty semesters and invalid options are ignored.
func Derive(cat *Catalog, rules Rules, year int, opts Options, prior course.Grades) []course.Semester {
	d := deriver{
		year:      year,
		rules:     rules,
		semesters: make([]course.Semester, SemestersPerYear),
	}

	yc := cat.Year(year)
	if yc == nil {
		return d.semesters
	}
	for sem, entries := range yc.Semesters {
		if sem >= SemestersPerYear {
			break
		}
		for i, e := range entries {
			d.add(sem, course.RoleCatalog, e.Name, e.Name, e.Credits, false, i)
		}
	}

	if yc.Flexible {
		d.flexible(cat, yc, opts)
	}
	d.applyGrades(prior)
	return d.semesters
}

type deriver struct {
	year      int
	rules     Rules
	semesters []course.Semester
	claimed   [SemestersPerYear]bool
}

func (d *deriver) flexible(cat *Catalog, yc *YearCatalog, opts Options) {
	if opts.Internship && yc.Allows(OptionInternship) {
		if sems := d.rules.InternshipHalf.Semesters(); d.fits(sems, d.rules.InternshipCredits) {
			for _, sem := range sems {
				d.add(sem, course.RoleInternship, InternshipName, InternshipName, d.rules.InternshipCredits, true, 0)
			}
		}
		return
	}

	exchange := d.rules.ExchangeCredits * float64(d.rules.ExchangeCoursesPerSemester)
	if sems := opts.Exchange.Semesters(); yc.Allows(OptionExchange) && len(sems) > 0 && d.fits(sems, exchange) {
		for _, sem := range sems {
			for i := 0; i < d.rules.ExchangeCoursesPerSemester; i++ {
				d.add(sem, course.RoleExchange, ExchangeName, ExchangeName, d.rules.ExchangeCredits, true, i)
			}
			d.claimed[sem] = true
		}
	}

	if sems := opts.Thesis.Semesters(); yc.Allows(OptionThesis) && len(sems) > 0 && d.fits(sems, d.rules.ThesisCredits) {
		for _, sem := range sems {
			d.add(sem, course.RoleThesis, ThesisName, ThesisName, d.rules.ThesisCredits, false, 0)
		}
	}

	if !yc.Allows(OptionElective) {
		opts.Electives = nil
	}
	for _, slot := range opts.ElectiveSlots() {
		typ := opts.Electives[slot]
		if !typ.IsValid() || !d.open(slot.Semester, d.rules.ElectiveCredits) || slot.Slot < 0 || slot.Slot >= d.rules.ElectiveSlots {
			continue
		}
		name := ElectiveName + " (" + string(typ) + ")"
		d.add(slot.Semester, course.RoleElective, name, ElectiveName, d.rules.ElectiveCredits, typ == ElectivePassFail, slot.Slot)
	}

	if !yc.Allows(OptionSpecialization) {
		return
	}
	tracks := opts.Tracks()
	for sem := 0; sem < SemestersPerYear; sem++ {
		for _, spec := range tracks {
			entry, ok := cat.SpecializationCourse(spec, sem+1)
			if !ok || !d.open(sem, entry.Credits) {
				continue
			}
			d.add(sem, course.RoleSpecialization, entry.Name, entry.Name, entry.Credits, false, 0)
		}
	}
}

func (d *deriver) add(sem int, role course.Role, name, keyName string, credits float64, passFail bool, occ int) {
	d.semesters[sem].Courses = append(d.semesters[sem].Courses, course.Course{
		Key: course.Key{
			Year:       d.year,
			Semester:   sem,
			Role:       role,
			Name:       keyName,
			Occurrence: occ,
		},
		Name:       name,
		Credits:    credits,
		Grade:      course.NotFinished,
		IsPassFail: passFail,
	})
}

// open reports whether sem is not claimed and can take `credits` more without exceeding the cap.
func (d *deriver) open(sem int, credits float64) bool {
	if sem < 0 || sem >= SemestersPerYear || d.claimed[sem] {
		return false
	}
	return d.semesters[sem].CreditLoad()+credits <= d.rules.SemesterCreditCap
}

// fits reports whether every semester of sems is open for `credits` more.
func (d *deriver) fits(sems []int, credits float64) bool {
	for _, sem := range sems {
		if !d.open(sem, credits) {
			return false
		}
	}
	return true
}

// applyGrades carries prior grades over. Thesis slots share a single grade:
// the first graded thesis slot, in semester order, wins.
func (d *deriver) applyGrades(prior course.Grades) {
	thesis := course.Unset
	for _, c := range course.Flatten(d.semesters...) {
		if c.Key.Role != course.RoleThesis {
			continue
		}
		if g, ok := prior[c.Key]; ok && g != course.Unset && g.IsValid() {
			thesis = g
			break
		}
	}

	for _, c := range course.Flatten(d.semesters...) {
		if c.Key.Role == course.RoleThesis {
			if thesis != course.Unset {
				c.Grade = thesis
			}
			continue
		}
		if g, ok := prior[c.Key]; ok && g != course.Unset && g.IsValid() {
			c.Grade = g
		}
	}
}
