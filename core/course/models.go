package course

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Role is the reason a course sits in a semester.
type Role string

const (
	RoleCatalog        Role = "catalog"
	RoleExchange       Role = "exchange"
	RoleInternship     Role = "internship"
	RoleThesis         Role = "thesis"
	RoleElective       Role = "elective"
	RoleSpecialization Role = "specialization"
)

var errInvalidKey = errors.New("invalid course slot key")

// Key identifies a course slot independently of where it is rendered.
// Occurrence disambiguates repeated slots of the same role and name within a semester
// (the two Exchange courses, or the elective slot index).
type Key struct {
	Year       int
	Semester   int // 0-based
	Role       Role
	Name       string
	Occurrence int
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d:%s:%d:%s", k.Year, k.Semester, k.Role, k.Occurrence, k.Name)
}

// MarshalText lets Key be used as a JSON object key.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), ":", 5)
	if len(parts) != 5 {
		return errors.Wrapf(errInvalidKey, "%q", text)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return errors.Wrapf(errInvalidKey, "%q: year", text)
	}
	sem, err := strconv.Atoi(parts[1])
	if err != nil {
		return errors.Wrapf(errInvalidKey, "%q: semester", text)
	}
	occ, err := strconv.Atoi(parts[3])
	if err != nil {
		return errors.Wrapf(errInvalidKey, "%q: occurrence", text)
	}
	*k = Key{Year: year, Semester: sem, Role: Role(parts[2]), Occurrence: occ, Name: parts[4]}
	return nil
}

// Entry is a catalog row.
type Entry struct {
	Name    string  `json:"name" yaml:"name" validate:"required"`
	Credits float64 `json:"credits" yaml:"credits" validate:"ects"`
}

type Course struct {
	Key        Key     `json:"-"`
	Name       string  `json:"name"`
	Credits    float64 `json:"credits"`
	Grade      Grade   `json:"grade"`
	IsPassFail bool    `json:"is_pass_fail,omitempty"`
}

// Role is a shortcut for c.Key.Role.
func (c *Course) Role() Role { return c.Key.Role }

type Semester struct {
	Courses []Course `json:"courses"`
}

// CreditLoad sums the credits of every course in the semester, pass/fail included.
func (s Semester) CreditLoad() float64 {
	var total float64
	for _, c := range s.Courses {
		total += c.Credits
	}
	return total
}

// IsFull reports whether the semester carries exactly `load` credits.
func (s Semester) IsFull(load float64) bool {
	return s.CreditLoad() == load
}

// Has reports whether the semester holds at least one course with the given role.
func (s Semester) Has(role Role) bool {
	return s.Count(role) > 0
}

// Count returns the number of courses with the given role.
func (s Semester) Count(role Role) int {
	var n int
	for _, c := range s.Courses {
		if c.Key.Role == role {
			n++
		}
	}
	return n
}

// Grades maps course slots to their recorded grade.
type Grades map[Key]Grade

// Clone returns a copy of g that is safe to mutate.
func (g Grades) Clone() Grades {
	clone := make(Grades, len(g))
	for k, v := range g {
		clone[k] = v
	}
	return clone
}

// Flatten returns pointers to every course of the given semesters, in order.
func Flatten(semesters ...Semester) []*Course {
	var n int
	for _, s := range semesters {
		n += len(s.Courses)
	}
	courses := make([]*Course, 0, n)
	for i := range semesters {
		for j := range semesters[i].Courses {
			courses = append(courses, &semesters[i].Courses[j])
		}
	}
	return courses
}
