package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/course"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/gpa"
)

var errUnknownCommand = errors.New("unknown command (type help)")

// sessionCommands lists the REPL commands with their arguments, in help order.
var sessionCommands = []struct{ name, usage string }{
	{"exchange", "exchange YEAR none|fall|spring"},
	{"internship", "internship YEAR on|off"},
	{"thesis", "thesis YEAR none|fall|spring"},
	{"elective", "elective YEAR SEMESTER SLOT graded|passfail|none"},
	{"spec", "spec YEAR TRACK|none"},
	{"spec2", "spec2 YEAR TRACK|none"},
	{"grade", "grade YEAR SEMESTER COURSE GRADE"},
	{"show", "show [YEAR]"},
	{"gpa", "gpa"},
	{"state", "state"},
	{"help", "help"},
	{"quit", "quit"},
}

func usage(cmd string) error {
	for _, c := range sessionCommands {
		if c.name == cmd {
			return errors.Errorf("usage: %s", c.usage)
		}
	}
	return errUnknownCommand
}

type session struct {
	svc  *curriculum.Service
	r    renderer
	out  io.Writer
	st   curriculum.State
	prog curriculum.Program
}

func newSession(svc *curriculum.Service, r renderer, out io.Writer) *session {
	st := curriculum.NewState()
	return &session{svc: svc, r: r, out: out, st: st, prog: svc.Layout(st)}
}

// session reads commands line by line until quit or the end of the input.
func (cli *commandLine) session(svc *curriculum.Service, r renderer) error {
	s := newSession(svc, r, cli.out)
	prompt := cli.interactive()
	if prompt {
		fmt.Fprintf(cli.out, "%s (type help for the commands)\n", svc.Catalog().Program)
	}

	sc := bufio.NewScanner(cli.in)
	for {
		if prompt {
			fmt.Fprint(cli.out, "> ")
		}
		if !sc.Scan() {
			break
		}
		quit, err := s.exec(sc.Text())
		if err != nil {
			fmt.Fprintf(cli.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return errors.Wrap(sc.Err(), "reading commands")
}

func (s *session) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, "Commands:")
		for _, c := range sessionCommands {
			fmt.Fprintf(s.out, "  %s\n", c.usage)
		}
	case "show":
		return false, s.show(args)
	case "gpa":
		s.r.report(s.out, s.svc.Report(s.prog))
	case "state":
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return false, errors.Wrap(enc.Encode(s.st), "encoding state")
	case "grade":
		return false, s.grade(args)
	default:
		year, ch, err := parseChange(cmd, args)
		if err != nil {
			return false, err
		}
		st, prog, ok := s.svc.Apply(s.st, year, ch)
		if !ok {
			fmt.Fprintf(s.out, "ignored: %s in year %d\n", ch, year)
			return false, nil
		}
		s.st, s.prog = st, prog
		s.printYear(year)
	}
	return false, nil
}

func (s *session) show(args []string) error {
	if len(args) == 0 {
		for _, yr := range s.prog.Years {
			s.printYear(yr.Number)
		}
		return nil
	}
	year, err := parseNumber(args[0], "year")
	if err != nil {
		return err
	}
	if _, ok := s.prog.Year(year); !ok {
		return errors.Errorf("no year %d", year)
	}
	s.printYear(year)
	return nil
}

func (s *session) grade(args []string) error {
	if len(args) < 4 {
		return usage("grade")
	}
	var nums [3]int
	for i, name := range []string{"year", "semester", "course"} {
		n, err := parseNumber(args[i], name)
		if err != nil {
			return err
		}
		nums[i] = n
	}
	label := strings.Join(args[3:], " ")
	grade, ok := course.ParseGrade(label)
	if !ok {
		return errors.Errorf("unknown grade %q", label)
	}

	st, prog, ok := s.svc.SetGrade(s.st, nums[0], nums[1]-1, nums[2]-1, grade)
	if !ok {
		return errors.Errorf("no course %d in semester %d of year %d", nums[2], nums[1], nums[0])
	}
	s.st, s.prog = st, prog

	yr, _ := prog.Year(nums[0])
	c := yr.Semesters[nums[1]-1].Courses[nums[2]-1]
	rep := s.yearReport(nums[0])
	fmt.Fprintf(s.out, "%s: %s (year GPA %s)\n", c.Name, c.Grade, gpa.Format(rep.GPA))
	return nil
}

func (s *session) printYear(year int) {
	yr, ok := s.prog.Year(year)
	if !ok {
		return
	}
	s.r.year(s.out, yr, s.yearReport(year), s.svc.Rules().SemesterCreditCap)
}

func (s *session) yearReport(year int) curriculum.YearReport {
	for _, yr := range s.svc.Report(s.prog).Years {
		if yr.Number == year {
			return yr
		}
	}
	return curriculum.YearReport{}
}

// parseChange reads an option command: `CMD YEAR ARGS...`.
func parseChange(cmd string, args []string) (int, curriculum.Change, error) {
	var nargs int
	switch cmd {
	case "exchange", "internship", "thesis", "spec", "spec2":
		nargs = 2
	case "elective":
		nargs = 4
	default:
		return 0, nil, errors.Wrapf(errUnknownCommand, "%q", cmd)
	}
	if len(args) < nargs {
		return 0, nil, usage(cmd)
	}
	year, err := parseNumber(args[0], "year")
	if err != nil {
		return 0, nil, err
	}
	rest := strings.Join(args[1:], " ")

	switch cmd {
	case "exchange":
		h, err := curriculum.ParseHalf(rest)
		return year, curriculum.SetExchange{Half: h}, err
	case "thesis":
		h, err := curriculum.ParseHalf(rest)
		return year, curriculum.SetThesis{Half: h}, err
	case "internship":
		on, err := parseOnOff(rest)
		return year, curriculum.SetInternship{On: on}, err
	case "spec":
		spec, err := curriculum.ParseSpecialization(rest)
		return year, curriculum.SetSpecialization{Specialization: spec}, err
	case "spec2":
		spec, err := curriculum.ParseSpecialization(rest)
		return year, curriculum.SetSecondSpecialization{Specialization: spec}, err
	}

	// elective
	sem, err := parseNumber(args[1], "semester")
	if err != nil {
		return 0, nil, err
	}
	slot, err := parseNumber(args[2], "slot")
	if err != nil {
		return 0, nil, err
	}
	typ, err := curriculum.ParseElectiveType(strings.Join(args[3:], " "))
	return year, curriculum.SetElective{Semester: sem - 1, Slot: slot - 1, Type: typ}, err
}

func parseNumber(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.Errorf("%s must be a positive number, got %q", name, s)
	}
	return n, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	on, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Errorf("expected on or off, got %q", s)
	}
	return on, nil
}
