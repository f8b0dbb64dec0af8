package listing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Three-letter Russian month tokens used in the listing's absolute dates.
var monthsRu = map[string]time.Month{
	"Янв": time.January,
	"Фев": time.February,
	"Мар": time.March,
	"Апр": time.April,
	"Май": time.May,
	"Июн": time.June,
	"Июл": time.July,
	"Авг": time.August,
	"Сен": time.September,
	"Окт": time.October,
	"Ноя": time.November,
	"Дек": time.December,
}

var (
	timeOfDayRe    = regexp.MustCompile(`(\d{2}):(\d{2})`)
	absoluteDateRe = regexp.MustCompile(`(\d{2})\s+([А-Яа-я]{3})\s+(\d{2})`)
)

// ParseListingDate converts a raw listing date token into an absolute
// timestamp. Recognized shapes: "Сегодня HH:MM", "Вчера HH:MM" and
// "DD Mon YY" with a Russian three-letter month. An unrecognized month
// token falls back to January (kept from the site's historical behavior),
// and an entirely unrecognized token falls back to now, so callers must
// tolerate a lossy result.
func ParseListingDate(token string, now time.Time) time.Time {
	if strings.Contains(token, "Сегодня") || strings.Contains(token, "Вчера") {
		if m := timeOfDayRe.FindStringSubmatch(token); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			if strings.Contains(token, "Вчера") {
				return t.Add(-24 * time.Hour)
			}
			return t
		}
	}

	if m := absoluteDateRe.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		yy, _ := strconv.Atoi(m[3])
		month, ok := monthsRu[m[2]]
		if !ok {
			month = time.January
		}
		return time.Date(2000+yy, month, day, 0, 0, 0, 0, now.Location())
	}

	// Last resort before giving up: the token may be a plain date in some
	// other notation.
	if t, err := dateparse.ParseIn(token, now.Location()); err == nil {
		return t
	}

	return now
}
