// Package gpa computes credit-weighted grade point averages.
package gpa

import (
	"math"
	"strconv"

	"github.com/trezcool/gradebook/core/course"
)

// Precision is the number of decimal places every GPA is rounded to.
const Precision = 2

// Calculate returns the credit-weighted GPA of courses, rounded to Precision.
// nil courses, pass/fail courses and courses without a counting grade are skipped;
// 0 is returned when nothing counts.
func Calculate(courses ...*course.Course) float64 {
	var points, credits float64
	for _, c := range courses {
		if c == nil || c.IsPassFail || c.Credits <= 0 {
			continue
		}
		p, ok := c.Grade.Points()
		if !ok {
			continue
		}
		points += c.Credits * p
		credits += c.Credits
	}
	if credits == 0 {
		return 0
	}
	return Round(points / credits)
}

// Credits returns the credits that count towards the GPA.
func Credits(courses ...*course.Course) float64 {
	var credits float64
	for _, c := range courses {
		if c == nil || c.IsPassFail || c.Credits <= 0 || !c.Grade.Counts() {
			continue
		}
		credits += c.Credits
	}
	return credits
}

// Earned returns the credits of finished courses: counted grades, plus pass/fail courses marked Pass/Fail or passed.
func Earned(courses ...*course.Course) float64 {
	var credits float64
	for _, c := range courses {
		if c == nil || c.Credits <= 0 {
			continue
		}
		if c.Grade.Counts() || c.Grade == course.PassFail {
			credits += c.Credits
		}
	}
	return credits
}

// Round rounds v half away from zero to Precision decimal places.
func Round(v float64) float64 {
	pow := math.Pow(10, Precision)
	return math.Round(v*pow) / pow
}

// Format renders v with exactly Precision decimal places.
func Format(v float64) string {
	return strconv.FormatFloat(Round(v), 'f', Precision, 64)
}
