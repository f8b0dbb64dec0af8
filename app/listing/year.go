package listing

import (
	"regexp"
	"strconv"
)

var parenYearRe = regexp.MustCompile(`\((\d{4})\)`)

const (
	minReleaseYear = 1900
	maxReleaseYear = 2025
)

// ExtractYear pulls a plausible release year out of a title. Titles often
// carry two parenthesized years (original and local release); the
// rightmost one wins. Returns nil when no in-range year is present.
func ExtractYear(title string) *int {
	matches := parenYearRe.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		return nil
	}

	year, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil || year < minReleaseYear || year > maxReleaseYear {
		return nil
	}

	return &year
}
