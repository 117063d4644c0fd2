package content

import (
	"strconv"
	"strings"
)

// AgeBand is a coarse grade band used to pick age-appropriate content.
type AgeBand string

const (
	BandK2   AgeBand = "k2"
	BandG35  AgeBand = "g35"
	BandG68  AgeBand = "g68"
	BandG912 AgeBand = "g912"
)

// AllAgeBands returns the bands from youngest to oldest.
func AllAgeBands() []AgeBand {
	return []AgeBand{BandK2, BandG35, BandG68, BandG912}
}

// Valid reports whether b is one of the known bands.
func (b AgeBand) Valid() bool {
	switch b {
	case BandK2, BandG35, BandG68, BandG912:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the band.
func (b AgeBand) DisplayName() string {
	switch b {
	case BandK2:
		return "Grades K-2"
	case BandG35:
		return "Grades 3-5"
	case BandG68:
		return "Grades 6-8"
	case BandG912:
		return "Grades 9-12"
	default:
		return string(b)
	}
}

// ParseGrade converts a grade label ("K", "KG", "PK", "3", "03", "Grade 7")
// into a number, with kindergarten and pre-K as 0.
func ParseGrade(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "GRADE")
	s = strings.TrimSpace(s)
	switch s {
	case "K", "KG", "PK", "TK":
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// AgeBandForGrade maps a single grade number onto the band table.
// Grades above 12 fall into the oldest band.
func AgeBandForGrade(grade int) AgeBand {
	switch {
	case grade <= 2:
		return BandK2
	case grade <= 5:
		return BandG35
	case grade <= 8:
		return BandG68
	default:
		return BandG912
	}
}

// AgeBandForGrades takes the youngest parseable grade of a course and maps
// it through the band table. A course with no parseable grade lands in the
// oldest band.
func AgeBandForGrades(grades []string) AgeBand {
	youngest, found := 0, false
	for _, g := range grades {
		n, ok := ParseGrade(g)
		if !ok {
			continue
		}
		if !found || n < youngest {
			youngest, found = n, true
		}
	}
	if !found {
		return BandG912
	}
	return AgeBandForGrade(youngest)
}
