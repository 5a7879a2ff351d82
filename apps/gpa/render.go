package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/message"

	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/gpa"
)

type renderer struct {
	p *message.Printer
}

func newRenderer(p *message.Printer) renderer {
	return renderer{p: p}
}

func (r renderer) credits(v float64) string {
	return r.p.Sprintf("%.1f", v)
}

// year prints the layout of yr with its GPAs. Semesters whose load differs from load are flagged.
func (r renderer) year(w io.Writer, yr curriculum.Year, rep curriculum.YearReport, load float64) {
	if yr.Flexible {
		fmt.Fprintf(w, "Year %d (flexible)\n", yr.Number)
	} else {
		fmt.Fprintf(w, "Year %d\n", yr.Number)
	}
	for i, sem := range yr.Semesters {
		var semGPA float64
		if i < len(rep.Semesters) {
			semGPA = rep.Semesters[i]
		}
		fmt.Fprintf(w, "  Semester %d: %s/%s ECTS, GPA %s", i+1, r.credits(sem.CreditLoad()), r.credits(load), gpa.Format(semGPA))
		switch {
		case sem.CreditLoad() > load:
			fmt.Fprint(w, " (over capacity)")
		case !sem.IsFull(load):
			fmt.Fprint(w, " (incomplete)")
		}
		fmt.Fprintln(w)

		for j, c := range sem.Courses {
			fmt.Fprintf(w, "    %d. %s, %s ECTS: %s", j+1, c.Name, r.credits(c.Credits), c.Grade)
			if c.IsPassFail {
				fmt.Fprint(w, " (pass/fail)")
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "  GPA %s, cumulative %s, earned %s ECTS\n", gpa.Format(rep.GPA), gpa.Format(rep.Cumulative), r.credits(rep.Earned))
}

func (r renderer) report(w io.Writer, rep curriculum.Report) {
	for _, yr := range rep.Years {
		fmt.Fprintf(w, "Year %d: GPA %s, cumulative %s, earned %s ECTS\n", yr.Number, gpa.Format(yr.GPA), gpa.Format(yr.Cumulative), r.credits(yr.Earned))
	}
	fmt.Fprintf(w, "Cumulative GPA: %s\n", gpa.Format(rep.Cumulative))
	fmt.Fprintf(w, "Earned: %s ECTS\n", r.credits(rep.Earned))
}

func (r renderer) catalog(w io.Writer, cat *curriculum.Catalog) {
	fmt.Fprintln(w, cat.Program)
	for _, yr := range cat.Years {
		if yr.Flexible {
			fmt.Fprintf(w, "Year %d (flexible)\n", yr.Number)
			opts := make([]string, 0, len(yr.Options))
			for _, opt := range yr.Options {
				opts = append(opts, string(opt))
			}
			fmt.Fprintf(w, "  Options: %s\n", strings.Join(opts, ", "))
		} else {
			fmt.Fprintf(w, "Year %d\n", yr.Number)
		}
		for i, entries := range yr.Semesters {
			fmt.Fprintf(w, "  Semester %d\n", i+1)
			switch {
			case len(entries) > 0:
			case yr.Flexible:
				fmt.Fprintln(w, "    (enrollment options)")
			default:
				fmt.Fprintln(w, "    (none)")
			}
			for _, e := range entries {
				fmt.Fprintf(w, "    %s, %s ECTS\n", e.Name, r.credits(e.Credits))
			}
		}
	}

	fmt.Fprintln(w, "Specializations")
	for _, spec := range curriculum.Specializations {
		fmt.Fprintf(w, "  %s\n", spec)
		sems := make([]int, 0, len(cat.Specializations[spec]))
		for sem := range cat.Specializations[spec] {
			sems = append(sems, sem)
		}
		sort.Ints(sems)
		for _, sem := range sems {
			e := cat.Specializations[spec][sem]
			fmt.Fprintf(w, "    Semester %d: %s, %s ECTS\n", sem, e.Name, r.credits(e.Credits))
		}
	}
}
