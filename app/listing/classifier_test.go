package listing

import (
	"testing"
)

func TestCategorizeMovie(t *testing.T) {
	titles := []string{
		"Интерстеллар / Interstellar (2014) BDRip 1080p",
		"Дюна (2021) WEBRip",
		"Оппенгеймер / Oppenheimer (2023) 2160p BluRay",
	}

	for _, title := range titles {
		category, ok := Categorize(title)
		if !ok {
			t.Errorf("Expected %q to classify, got no match", title)
			continue
		}
		if category != CategoryMovie {
			t.Errorf("Expected %q for %q, got %q", CategoryMovie, title, category)
		}
	}
}

func TestCategorizeSeries(t *testing.T) {
	titles := []string{
		"Тьма / Dark (2017) S01 WEBRip",
		"Во все тяжкие / Breaking Bad [5 сезон] HDTV",
		"Chernobyl (2019) Season 1",
	}

	for _, title := range titles {
		category, ok := Categorize(title)
		if !ok {
			t.Errorf("Expected %q to classify, got no match", title)
			continue
		}
		if category != CategorySeries {
			t.Errorf("Expected %q for %q, got %q", CategorySeries, title, category)
		}
	}
}

func TestCategorizeSeriesWinsOverMovie(t *testing.T) {
	// A season marker together with a resolution tag always classifies as
	// a series.
	category, ok := Categorize("Тьма / Dark (2017) S02 BDRip 1080p")
	if !ok {
		t.Fatal("Expected a classification")
	}
	if category != CategorySeries {
		t.Errorf("Expected %q, got %q", CategorySeries, category)
	}
}

func TestCategorizeNoMatch(t *testing.T) {
	if category, ok := Categorize("Сборник классической музыки FLAC"); ok {
		t.Errorf("Expected no classification, got %q", category)
	}
	if category, ok := Categorize(""); ok {
		t.Errorf("Expected no classification for empty title, got %q", category)
	}
}
