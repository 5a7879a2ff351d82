package curriculum

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/gradebook/core"
)

// SemestersPerYear is the number of semesters every program year has.
const SemestersPerYear = 4

// Half is a half-year: fall covers semesters 1-2, spring semesters 3-4.
type Half string

const (
	NoHalf Half = ""
	Fall   Half = "fall"
	Spring Half = "spring"
)

// Semesters returns the 0-based semester indexes of h.
func (h Half) Semesters() []int {
	switch h {
	case Fall:
		return []int{0, 1}
	case Spring:
		return []int{2, 3}
	}
	return nil
}

func (h Half) Opposite() Half {
	switch h {
	case Fall:
		return Spring
	case Spring:
		return Fall
	}
	return NoHalf
}

func (h Half) IsValid() bool { return h == NoHalf || h == Fall || h == Spring }

func (h Half) String() string {
	if h == NoHalf {
		return "none"
	}
	return string(h)
}

// HalfOf returns the half-year semester index sem belongs to.
func HalfOf(sem int) Half {
	switch sem {
	case 0, 1:
		return Fall
	case 2, 3:
		return Spring
	}
	return NoHalf
}

type ElectiveType string

const (
	NoElective       ElectiveType = ""
	ElectiveGraded   ElectiveType = "Graded"
	ElectivePassFail ElectiveType = "Pass/Fail"
)

func (t ElectiveType) IsValid() bool {
	return t == NoElective || t == ElectiveGraded || t == ElectivePassFail
}

func (t ElectiveType) String() string {
	if t == NoElective {
		return "none"
	}
	return string(t)
}

type Specialization string

const (
	NoSpecialization Specialization = ""
	Economics        Specialization = "Economics"
	Finance          Specialization = "Finance"
	Accounting       Specialization = "Accounting & Financial Management"
	Marketing        Specialization = "Marketing"
	Management       Specialization = "Management"
)

// Specializations lists the tracks in display order.
var Specializations = []Specialization{Economics, Finance, Accounting, Marketing, Management}

func (s Specialization) IsKnown() bool {
	for _, known := range Specializations {
		if s == known {
			return true
		}
	}
	return false
}

func (s Specialization) IsValid() bool { return s == NoSpecialization || s.IsKnown() }

func (s Specialization) String() string {
	if s == NoSpecialization {
		return "none"
	}
	return string(s)
}

// ElectiveSlot addresses one elective choice: 0-based semester and slot index.
type ElectiveSlot struct {
	Semester int
	Slot     int
}

func (s ElectiveSlot) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(s.Semester) + ":" + strconv.Itoa(s.Slot)), nil
}

func (s *ElectiveSlot) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), ":", 2)
	if len(parts) != 2 {
		return errors.Errorf("invalid elective slot %q", text)
	}
	sem, err1 := strconv.Atoi(parts[0])
	slot, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return errors.Errorf("invalid elective slot %q", text)
	}
	*s = ElectiveSlot{Semester: sem, Slot: slot}
	return nil
}

// Options are the enrollment choices of one flexible year.
type Options struct {
	Exchange             Half                          `json:"exchange"`
	Internship           bool                          `json:"internship"`
	Thesis               Half                          `json:"thesis"`
	Electives            map[ElectiveSlot]ElectiveType `json:"electives,omitempty"`
	Specialization       Specialization                `json:"specialization,omitempty"`
	SecondSpecialization Specialization                `json:"second_specialization,omitempty"`
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	clone := o
	clone.Electives = nil
	if len(o.Electives) > 0 {
		clone.Electives = make(map[ElectiveSlot]ElectiveType, len(o.Electives))
		for k, v := range o.Electives {
			clone.Electives[k] = v
		}
	}
	return clone
}

// ElectiveSlots returns the selected elective slots sorted by semester then slot.
func (o Options) ElectiveSlots() []ElectiveSlot {
	slots := make([]ElectiveSlot, 0, len(o.Electives))
	for slot, typ := range o.Electives {
		if typ != NoElective {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Semester != slots[j].Semester {
			return slots[i].Semester < slots[j].Semester
		}
		return slots[i].Slot < slots[j].Slot
	})
	return slots
}

// Tracks returns the chosen specializations, primary first.
// A second specialization without a primary, or equal to it, is ignored.
func (o Options) Tracks() []Specialization {
	if !o.Specialization.IsKnown() {
		return nil
	}
	tracks := []Specialization{o.Specialization}
	if o.SecondSpecialization.IsKnown() && o.SecondSpecialization != o.Specialization {
		tracks = append(tracks, o.SecondSpecialization)
	}
	return tracks
}

func (o Options) clearElectives(semesters ...int) {
	for slot := range o.Electives {
		for _, sem := range semesters {
			if slot.Semester == sem {
				delete(o.Electives, slot)
			}
		}
	}
}

var (
	ErrUnknownHalf           = errors.New("expected one of none, fall or spring")
	ErrUnknownElectiveType   = errors.New("expected one of graded, passfail or none")
	ErrUnknownSpecialization = errors.New("unknown specialization")

	// specializations are fuzzy-matched above this similarity ratio
	specMinRatio = .7
)

func ParseHalf(s string) (Half, error) {
	switch core.CleanString(s, true /* lower */) {
	case "", "none", "no", "off":
		return NoHalf, nil
	case "fall", "autumn":
		return Fall, nil
	case "spring":
		return Spring, nil
	}
	return NoHalf, errors.Wrapf(ErrUnknownHalf, "%q", s)
}

func ParseElectiveType(s string) (ElectiveType, error) {
	switch core.CleanString(s, true /* lower */) {
	case "", "none", "remove":
		return NoElective, nil
	case "graded", "g":
		return ElectiveGraded, nil
	case "pass/fail", "passfail", "pf":
		return ElectivePassFail, nil
	}
	return NoElective, errors.Wrapf(ErrUnknownElectiveType, "%q", s)
}

// ParseSpecialization matches s against the track names: exact (case-insensitive), first word,
// then the closest name by similarity ratio.
func ParseSpecialization(s string) (Specialization, error) {
	in := strings.Join(strings.Fields(core.CleanString(s, true /* lower */)), " ")
	if in == "" || in == "none" {
		return NoSpecialization, nil
	}
	for _, spec := range Specializations {
		name := strings.ToLower(string(spec))
		if in == name || in == strings.Fields(name)[0] {
			return spec, nil
		}
	}

	var (
		best      Specialization
		bestRatio float64
	)
	for _, spec := range Specializations {
		name := strings.ToLower(string(spec))
		ratio := difflib.NewMatcher(strings.Split(in, ""), strings.Split(name, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = spec, ratio
		}
	}
	if bestRatio >= specMinRatio {
		return best, nil
	}
	return NoSpecialization, errors.Wrap(ErrUnknownSpecialization, fmt.Sprintf("%q", s))
}
