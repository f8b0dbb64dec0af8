package kinopoisk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func newTestClient(server *httptest.Server) *Client {
	client := NewClient("test-key")
	client.baseURL = server.URL
	client.httpc = server.Client()
	return client
}

func TestLookupWithoutAPIKey(t *testing.T) {
	client := NewClient("")

	if enr := client.Lookup(context.Background(), "Интерстеллар (2014)", intPtr(2014)); enr != nil {
		t.Error("Expected nil enrichment without an API key")
	}
}

func TestLookupWithoutYearHintSkipsSearch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := newTestClient(server)

	if enr := client.Lookup(context.Background(), "Интерстеллар BDRip", nil); enr != nil {
		t.Error("Expected nil enrichment without a year hint")
	}
	if requests != 0 {
		t.Errorf("Expected no requests without a year hint, got %d", requests)
	}
}

func TestLookupMatchesByYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("Missing API key header on %s", r.URL.Path)
		}

		switch {
		case strings.HasPrefix(r.URL.Path, "/v1.4/movie/search"):
			if query := r.URL.Query().Get("query"); query != "Интерстеллар" {
				t.Errorf("Expected cleaned query 'Интерстеллар', got %q", query)
			}
			w.Write([]byte(`{"docs": [
				{"id": 1, "name": "Остальное", "year": 2005},
				{"id": 258687, "name": "Интерстеллар", "year": 2014},
				{"id": 3, "name": "Ещё один", "year": 2014}
			]}`))
		case r.URL.Path == "/v1.4/movie/258687":
			w.Write([]byte(`{
				"id": 258687,
				"name": "Интерстеллар",
				"year": 2014,
				"description": "Космическая одиссея",
				"rating": {"kp": 8.6},
				"genres": [{"name": "фантастика"}, {"name": "драма"}, {"name": "приключения"}, {"name": "лишний"}],
				"persons": [
					{"name": "Мэттью МакКонахи", "enName": "Matthew McConaughey", "enProfession": "actor"},
					{"name": "Кристофер Нолан", "enName": "Christopher Nolan", "enProfession": "director"}
				],
				"poster": {"url": "https://poster.example/258687.jpg"}
			}`))
		default:
			t.Errorf("Unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server)

	enr := client.Lookup(context.Background(), "Интерстеллар / Interstellar (2014) BDRip 1080p", intPtr(2014))
	if enr == nil {
		t.Fatal("Expected an enrichment result")
	}

	if enr.KinopoiskID != 258687 {
		t.Errorf("Expected kinopoisk id 258687, got %d", enr.KinopoiskID)
	}
	if enr.Rating == nil || *enr.Rating != 8.6 {
		t.Errorf("Expected rating 8.6, got %v", enr.Rating)
	}
	if enr.Genre != "фантастика, драма, приключения" {
		t.Errorf("Expected first 3 genres joined, got %q", enr.Genre)
	}
	if enr.Director != "Кристофер Нолан" {
		t.Errorf("Expected director 'Кристофер Нолан', got %q", enr.Director)
	}
	if enr.KinopoiskURL != "https://www.kinopoisk.ru/film/258687/" {
		t.Errorf("Unexpected kinopoisk URL: %s", enr.KinopoiskURL)
	}
	if enr.PosterURL != "https://poster.example/258687.jpg" {
		t.Errorf("Unexpected poster URL: %s", enr.PosterURL)
	}
	if enr.ReleaseYear == nil || *enr.ReleaseYear != 2014 {
		t.Errorf("Expected corrected year 2014, got %v", enr.ReleaseYear)
	}
}

func TestLookupYearWithinOneAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1.4/movie/search") {
			w.Write([]byte(`{"docs": [{"id": 7, "name": "Фильм", "year": 2015}]}`))
			return
		}
		w.Write([]byte(`{"id": 7, "name": "Фильм", "year": 2015, "rating": {"kp": 7.0}}`))
	}))
	defer server.Close()

	client := newTestClient(server)

	if enr := client.Lookup(context.Background(), "Фильм (2014) BDRip", intPtr(2014)); enr == nil {
		t.Error("Expected a match for a candidate one year off")
	}
}

func TestLookupYearTooFarRejected(t *testing.T) {
	detailRequests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1.4/movie/search") {
			w.Write([]byte(`{"docs": [{"id": 7, "name": "Фильм", "year": 2010}]}`))
			return
		}
		detailRequests++
	}))
	defer server.Close()

	client := newTestClient(server)

	if enr := client.Lookup(context.Background(), "Фильм (2014) BDRip", intPtr(2014)); enr != nil {
		t.Error("Expected no match for a candidate two years off")
	}
	if detailRequests != 0 {
		t.Errorf("Expected no detail request for a rejected candidate, got %d", detailRequests)
	}
}

func TestLookupServerErrorIsAMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)

	if enr := client.Lookup(context.Background(), "Фильм (2014)", intPtr(2014)); enr != nil {
		t.Error("Expected nil enrichment on server error")
	}
}

func TestLookupMalformedPayloadIsAMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := newTestClient(server)

	if enr := client.Lookup(context.Background(), "Фильм (2014)", intPtr(2014)); enr != nil {
		t.Error("Expected nil enrichment on malformed payload")
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Интерстеллар / Interstellar (2014) BDRip 1080p", "Интерстеллар"},
		{"Дюна [IMAX] (2021) WEBRip", "Дюна"},
		{"Простой фильм", "Простой фильм"},
		{"(2014) / Something", ""},
	}

	for _, c := range cases {
		if got := CleanTitle(c.in); got != c.want {
			t.Errorf("CleanTitle(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestTruncateDescription(t *testing.T) {
	long := strings.Repeat("ы", maxDescriptionLen+100)

	got := truncate(long, maxDescriptionLen)

	if runeLen := len([]rune(got)); runeLen != maxDescriptionLen {
		t.Errorf("Expected %d runes, got %d", maxDescriptionLen, runeLen)
	}

	short := "короткое описание"
	if truncate(short, maxDescriptionLen) != short {
		t.Error("Expected short description to pass through unchanged")
	}
}
