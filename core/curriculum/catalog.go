package curriculum

import (
	"fmt"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
)

// OptionKind names one kind of enrollment option a flexible year may offer.
type OptionKind string

const (
	OptionExchange       OptionKind = "exchange"
	OptionInternship     OptionKind = "internship"
	OptionThesis         OptionKind = "thesis"
	OptionElective       OptionKind = "elective"
	OptionSpecialization OptionKind = "specialization"
)

var OptionKinds = []OptionKind{OptionExchange, OptionInternship, OptionThesis, OptionElective, OptionSpecialization}

func (k OptionKind) IsKnown() bool {
	for _, known := range OptionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// YearCatalog lists the fixed courses of one program year.
// Semesters of a flexible year are completed at runtime from the enrollment options it offers.
type YearCatalog struct {
	Number    int              `json:"number" yaml:"number" validate:"min=1"`
	Flexible  bool             `json:"flexible" yaml:"flexible"`
	Options   []OptionKind     `json:"options,omitempty" yaml:"options"`
	Semesters [][]course.Entry `json:"semesters" yaml:"semesters" validate:"len=4,dive,dive"`
}

// Allows reports whether y is flexible and offers options of kind k.
func (y *YearCatalog) Allows(k OptionKind) bool {
	if y == nil || !y.Flexible {
		return false
	}
	for _, opt := range y.Options {
		if opt == k {
			return true
		}
	}
	return false
}

// Catalog is the static course table of the program.
type Catalog struct {
	Program   string        `json:"program" yaml:"program" validate:"required"`
	Years     []YearCatalog `json:"years" yaml:"years" validate:"required,dive"`
	// Specializations maps a track to its course per 1-based semester number.
	Specializations map[Specialization]map[int]course.Entry `json:"specializations" yaml:"specializations" validate:"dive,dive"`
}

// Year returns the catalog of year n, or nil if the program has no such year.
func (c *Catalog) Year(n int) *YearCatalog {
	if c == nil {
		return nil
	}
	for i := range c.Years {
		if c.Years[i].Number == n {
			return &c.Years[i]
		}
	}
	return nil
}

// SpecializationCourse returns the course of track spec in the 1-based semester number.
func (c *Catalog) SpecializationCourse(spec Specialization, semester int) (course.Entry, bool) {
	if c == nil {
		return course.Entry{}, false
	}
	entry, ok := c.Specializations[spec][semester]
	return entry, ok
}

// SpecializationSemesters returns the 0-based semester indexes in which at least one track has a course.
func (c *Catalog) SpecializationSemesters() []int {
	var sems []int
	for sem := 0; sem < SemestersPerYear; sem++ {
		for _, spec := range Specializations {
			if _, ok := c.SpecializationCourse(spec, sem+1); ok {
				sems = append(sems, sem)
				break
			}
		}
	}
	return sems
}

// Validate checks the catalog is complete and consistent.
func (c *Catalog) Validate() error {
	if err := core.ValidateStruct(c); err != nil {
		return err
	}

	var flds []core.FieldError
	for i, yr := range c.Years {
		if yr.Number != i+1 {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("years[%d].number", i),
				Error: fmt.Sprintf("years must be numbered from 1 in order; got %d", yr.Number),
			})
		}
		field := fmt.Sprintf("years[%d].options", i)
		switch {
		case yr.Flexible && len(yr.Options) == 0:
			flds = append(flds, core.FieldError{Field: field, Error: "a flexible year must offer at least one option"})
		case !yr.Flexible && len(yr.Options) > 0:
			flds = append(flds, core.FieldError{Field: field, Error: "only a flexible year can offer options"})
		}
		for _, opt := range yr.Options {
			if !opt.IsKnown() {
				flds = append(flds, core.FieldError{Field: field, Error: fmt.Sprintf("unknown option %q", opt)})
			}
		}
	}
	for spec, sems := range c.Specializations {
		if !spec.IsKnown() {
			flds = append(flds, core.FieldError{
				Field: "specializations",
				Error: fmt.Sprintf("unknown specialization %q", spec),
			})
			continue
		}
		for sem := range sems {
			if sem < 1 || sem > SemestersPerYear {
				flds = append(flds, core.FieldError{
					Field: fmt.Sprintf("specializations[%s]", spec),
					Error: fmt.Sprintf("semester %d out of range", sem),
				})
			}
		}
	}
	for _, spec := range Specializations {
		if len(c.Specializations[spec]) == 0 {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("specializations[%s]", spec),
				Error: "no courses for this specialization",
			})
		}
	}

	if len(flds) > 0 {
		return core.NewValidationError(core.ErrValidation, flds...)
	}
	return nil
}
