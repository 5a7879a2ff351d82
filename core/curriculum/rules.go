package curriculum

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/gradebook/core"
)

// Rules are the program constants the derivation works with.
type Rules struct {
	SemesterCreditCap          float64 `json:"semester_credit_cap" validate:"ects"`
	ExchangeCredits            float64 `json:"exchange_credits" validate:"ects"`
	ExchangeCoursesPerSemester int     `json:"exchange_courses_per_semester" validate:"min=1"`
	InternshipCredits          float64 `json:"internship_credits" validate:"ects"`
	InternshipHalf             Half    `json:"internship_half" validate:"half"`
	ThesisCredits              float64 `json:"thesis_credits" validate:"ects"`
	ElectiveCredits            float64 `json:"elective_credits" validate:"ects"`
	ElectiveSlots              int     `json:"elective_slots" validate:"min=0,max=8"`
}

// DefaultRules returns the rules of the SSE BSc program.
func DefaultRules() Rules {
	return Rules{
		SemesterCreditCap:          15,
		ExchangeCredits:            7.5,
		ExchangeCoursesPerSemester: 2,
		InternshipCredits:          7.5,
		InternshipHalf:             Fall,
		ThesisCredits:              7.5,
		ElectiveCredits:            7.5,
		ElectiveSlots:              2,
	}
}

// RulesFromConfig reads the `rules.*` keys of conf.
func RulesFromConfig(conf *viper.Viper) (Rules, error) {
	rules := Rules{
		SemesterCreditCap:          conf.GetFloat64("rules.semesterCreditCap"),
		ExchangeCredits:            conf.GetFloat64("rules.exchangeCredits"),
		ExchangeCoursesPerSemester: conf.GetInt("rules.exchangeCoursesPerSemester"),
		InternshipCredits:          conf.GetFloat64("rules.internshipCredits"),
		InternshipHalf:             Half(core.CleanString(conf.GetString("rules.internshipHalf"), true /* lower */)),
		ThesisCredits:              conf.GetFloat64("rules.thesisCredits"),
		ElectiveCredits:            conf.GetFloat64("rules.electiveCredits"),
		ElectiveSlots:              conf.GetInt("rules.electiveSlots"),
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, errors.Wrap(err, "curriculum rules")
	}
	return rules, nil
}

func (r Rules) Validate() error {
	return core.ValidateStruct(r)
}
