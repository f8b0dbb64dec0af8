package listing

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const detailPathPrefix = "/torrent/"

// Listing rows alternate between two style classes; anything else in the
// table (headers, ads, spacers) is skipped.
var rowClasses = map[string]bool{
	"gai": true,
	"tum": true,
}

// Parser reconstructs listing rows from the tracker's browse page markup.
//
// The markup has no row-scoped grouping usable by a tree query: which
// semantic field a text node belongs to is determined entirely by the
// position of its cell within the row. The parser therefore runs a flat
// tokenizer scan and threads per-row state through it:
//
//	cell 1: publish date text
//	cell 2: title anchor (href carries the external id)
//	cell 3: size text
//	cell 4: seed/peer spans, discriminated by style class
type Parser struct {
	baseURL string
}

func NewParser(baseURL string) *Parser {
	return &Parser{baseURL: strings.TrimRight(baseURL, "/")}
}

// Run scans the document and returns one Row per qualifying table row
// that carried a title. All per-row state resets on the row's close tag
// regardless of whether the row was emitted.
func (p *Parser) Run(data []byte) []Row {
	z := html.NewTokenizer(bytes.NewReader(data))

	var (
		rows        []Row
		current     Row
		inRow       bool
		cellIndex   int
		inDateCell  bool
		inTitleLink bool
		seedsNext   bool
		peersNext   bool
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			// End of document (or unrecoverable markup): emit what we have.
			return rows

		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "tr":
				if rowClasses[attrValue(t, "class")] {
					inRow = true
					current = Row{}
					cellIndex = 0
				}
			case "td":
				if inRow {
					cellIndex++
					if cellIndex == 1 {
						inDateCell = true
					}
				}
			case "a":
				if inRow && cellIndex == 2 {
					href := attrValue(t, "href")
					if strings.HasPrefix(href, detailPathPrefix) {
						inTitleLink = true
						current.ID = idFromHref(href)
						current.TorrentURL = p.baseURL + href
					}
				}
			case "span":
				if inRow && cellIndex == 4 {
					class := attrValue(t, "class")
					if strings.Contains(class, "green") {
						seedsNext = true
					} else if strings.Contains(class, "red") {
						peersNext = true
					}
				}
			}

		case html.TextToken:
			text := strings.TrimSpace(string(z.Text()))
			if text == "" {
				continue
			}
			if inDateCell {
				current.DateToken = text
				inDateCell = false
				continue
			}
			if inTitleLink {
				current.Title = text
				inTitleLink = false
				continue
			}
			if inRow {
				switch cellIndex {
				case 3:
					current.Size = text
				case 4:
					if seedsNext {
						if n, err := strconv.Atoi(text); err == nil {
							current.Seeds = n
						}
						seedsNext = false
					} else if peersNext {
						if n, err := strconv.Atoi(text); err == nil {
							current.Peers = n
						}
						peersNext = false
					}
				}
			}

		case html.EndTagToken:
			t := z.Token()
			if t.Data == "tr" && inRow {
				if current.Title != "" {
					rows = append(rows, current)
				}
				inRow = false
				cellIndex = 0
				inDateCell = false
				inTitleLink = false
				seedsNext = false
				peersNext = false
				current = Row{}
			}
		}
	}
}

func attrValue(t html.Token, name string) string {
	for _, a := range t.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// idFromHref extracts the external id from a detail link like
// "/torrent/971234/some-title".
func idFromHref(href string) string {
	parts := strings.Split(href, "/")
	if len(parts) > 2 {
		return parts[2]
	}
	return ""
}
