package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/gpa"
)

func (cli *commandLine) calc(r renderer, args []string) error {
	courses := make([]*course.Course, 0, len(args))
	for _, arg := range args {
		c, err := parseCourse(arg)
		if err != nil {
			return err
		}
		courses = append(courses, c)
	}

	fmt.Fprintf(cli.out, "GPA: %s\n", gpa.Format(gpa.Calculate(courses...)))
	fmt.Fprintf(cli.out, "Counted: %s ECTS\n", r.credits(gpa.Credits(courses...)))
	fmt.Fprintf(cli.out, "Earned: %s ECTS\n", r.credits(gpa.Earned(courses...)))
	return nil
}

// parseCourse reads CREDITS:GRADE. A trailing "!" marks a pass/fail course.
func parseCourse(arg string) (*course.Course, error) {
	s := core.CleanString(arg)
	passFail := strings.HasSuffix(s, "!")
	s = strings.TrimSuffix(s, "!")

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, errors.Errorf("%q: expected CREDITS:GRADE", arg)
	}
	credits, err := strconv.ParseFloat(core.CleanString(parts[0]), 64)
	if err != nil {
		return nil, errors.Errorf("%q: credits must be a number", arg)
	}
	grade, ok := course.ParseGrade(parts[1])
	if !ok || grade == course.Unset {
		return nil, errors.Errorf("%q: unknown grade %q", arg, parts[1])
	}
	if err := core.ValidateStruct(course.Entry{Name: s, Credits: credits}); err != nil {
		return nil, errors.Wrapf(err, "%q", arg)
	}
	return &course.Course{Name: s, Credits: credits, Grade: grade, IsPassFail: passFail}, nil
}
