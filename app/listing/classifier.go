package listing

import "strings"

// Checked before movieKeywords: a season marker wins even when the title
// also carries a resolution tag.
var seriesKeywords = []string{
	"s01", "s02", "s03", "s04", "s05", "s06", "s07", "s08", "s09", "s10",
	"season", "сезон", "серии", "series", "episodes",
}

var movieKeywords = []string{
	"bdrip", "webrip", "hdrip", "dvdrip", "1080p", "720p", "2160p", "bluray", "hdtv",
}

// Categorize maps a release title to a listing category by lowercase
// keyword containment. The second return is false when no keyword set
// matched; such rows are never stored.
func Categorize(title string) (string, bool) {
	lower := strings.ToLower(title)

	for _, kw := range seriesKeywords {
		if strings.Contains(lower, kw) {
			return CategorySeries, true
		}
	}

	for _, kw := range movieKeywords {
		if strings.Contains(lower, kw) {
			return CategoryMovie, true
		}
	}

	return "", false
}
