package listing

// Category values are stored exactly as the tracker labels them.
const (
	CategoryMovie  = "Фильмы"
	CategorySeries = "Сериалы"
	CategoryOther  = "Другое"
)

// Row is one listing entry reconstructed from the markup of a single
// qualifying table row. Seeds and Peers keep their zero default when the
// counts cell is missing or non-numeric.
type Row struct {
	ID         string // Site-assigned identifier from the detail link path
	Title      string
	Size       string
	Seeds      int
	Peers      int
	TorrentURL string
	DateToken  string // Raw date text from the first cell, e.g. "Сегодня 10:15"
}
