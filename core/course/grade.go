package course

import (
	"strings"

	"github.com/trezcool/gradebook/core"
)

// Grade is the outcome recorded for a course slot.
type Grade string

const (
	Unset       Grade = ""
	NotFinished Grade = "Not finished"
	Pass        Grade = "Pass"
	Good        Grade = "Good"
	VeryGood    Grade = "Very good"
	Excellent   Grade = "Excellent"
	PassFail    Grade = "Pass/Fail"
)

var (
	// Selectable lists the grades a course can be given, in display order.
	Selectable = []Grade{NotFinished, Pass, Good, VeryGood, Excellent, PassFail}

	gradePoints = map[Grade]float64{
		Pass:      3.0,
		Good:      3.5,
		VeryGood:  4.0,
		Excellent: 5.0,
	}

	gradeAliases = map[string]Grade{
		"not finished": NotFinished,
		"notfinished":  NotFinished,
		"nf":           NotFinished,
		"pass":         Pass,
		"good":         Good,
		"very good":    VeryGood,
		"verygood":     VeryGood,
		"vg":           VeryGood,
		"excellent":    Excellent,
		"pass/fail":    PassFail,
		"passfail":     PassFail,
		"pf":           PassFail,
		"":             Unset,
		"unset":        Unset,
	}
)

// Points returns the grade points of g and whether g counts towards the GPA.
func (g Grade) Points() (float64, bool) {
	p, ok := gradePoints[g]
	return p, ok
}

// Counts reports whether g contributes to the weighted GPA.
func (g Grade) Counts() bool {
	_, ok := gradePoints[g]
	return ok
}

// IsValid reports whether g is one of the known grades (Unset included).
func (g Grade) IsValid() bool {
	if g == Unset {
		return true
	}
	for _, known := range Selectable {
		if g == known {
			return true
		}
	}
	return false
}

func (g Grade) String() string {
	if g == Unset {
		return "-"
	}
	return string(g)
}

// ParseGrade reads a grade label, case-insensitively. Unknown labels are reported with ok=false.
func ParseGrade(s string) (Grade, bool) {
	s = strings.Join(strings.Fields(core.CleanString(s, true /* lower */)), " ")
	g, ok := gradeAliases[s]
	return g, ok
}
