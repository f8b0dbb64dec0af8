package listing

import (
	"testing"
	"time"
)

func TestParseListingDateToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 45, 33, 0, time.UTC)

	got := ParseListingDate("Сегодня 23:10", now)

	want := time.Date(2024, 3, 15, 23, 10, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseListingDateYesterdayIsExactly24hBeforeToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)

	today := ParseListingDate("Сегодня 23:10", now)
	yesterday := ParseListingDate("Вчера 23:10", now)

	if diff := today.Sub(yesterday); diff != 24*time.Hour {
		t.Errorf("Expected exactly 24h between today and yesterday, got %v", diff)
	}
	if yesterday.Hour() != 23 || yesterday.Minute() != 10 {
		t.Errorf("Expected 23:10, got %02d:%02d", yesterday.Hour(), yesterday.Minute())
	}
}

func TestParseListingDateAbsolute(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ParseListingDate("05 Мар 24", now)

	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseListingDateUnknownMonthDefaultsToJanuary(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ParseListingDate("05 Щщщ 23", now)

	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected January fallback %v, got %v", want, got)
	}
}

func TestParseListingDateUnrecognizedFallsBackToNow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ParseListingDate("абракадабра", now)

	if !got.Equal(now) {
		t.Errorf("Expected fallback to now %v, got %v", now, got)
	}
}

func TestParseListingDatePlainDateFallback(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ParseListingDate("2024-03-05", now)

	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseListingDateAllMonths(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := map[string]time.Month{
		"Янв": time.January, "Фев": time.February, "Мар": time.March,
		"Апр": time.April, "Май": time.May, "Июн": time.June,
		"Июл": time.July, "Авг": time.August, "Сен": time.September,
		"Окт": time.October, "Ноя": time.November, "Дек": time.December,
	}

	for token, month := range cases {
		got := ParseListingDate("10 "+token+" 22", now)
		if got.Month() != month || got.Year() != 2022 || got.Day() != 10 {
			t.Errorf("Token %q: expected 2022-%02d-10, got %v", token, month, got)
		}
	}
}
