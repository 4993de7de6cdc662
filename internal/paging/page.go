package paging

import (
	"fmt"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
)

const (
	// DefaultPageSize is the number of results shown per page
	DefaultPageSize = 10
	// LabelLimit caps the display name shown on a result button, in runes
	LabelLimit = 40
)

// Item is one selectable result on a page
type Item struct {
	Number int
	Label  string
	Data   string
	File   *files.File
}

// Page is a rendered slice of a result set
type Page struct {
	Number     int
	TotalPages int
	Total      int
	Items      []Item

	// Prev and Next hold navigation payloads, empty when the direction is absent
	Prev string
	Next string

	// NavDropped is set when a navigation payload could not be encoded
	NavDropped bool
}

// TotalPages returns ceil(total/size)
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Render slices results for the given page and builds its buttons.
// A page past the end is treated as the page right after the last one: it
// renders no items and only a link back to the last page.
func Render(query string, page, size int, results []*files.File) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(results)
	totalPages := TotalPages(total, size)
	page = max(1, min(page, max(totalPages, 1)+1))

	p := Page{
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}

	start := min((page-1)*size, total)
	end := min(start+size, total)
	for i, f := range results[start:end] {
		data, err := EncodeSelection(f.ID)
		if err != nil {
			continue
		}
		n := start + i + 1
		p.Items = append(p.Items, Item{
			Number: n,
			Label:  fmt.Sprintf("%d. %s", n, Truncate(f.DisplayName(), LabelLimit)),
			Data:   data,
			File:   f,
		})
	}

	if page > 1 {
		p.Prev = p.encodeNav(query, page-1)
	}
	if page < p.TotalPages {
		p.Next = p.encodeNav(query, page+1)
	}

	return p
}

func (p *Page) encodeNav(query string, page int) string {
	data, err := Token{Query: query, Page: page}.Encode()
	if err != nil {
		p.NavDropped = true
		return ""
	}
	return data
}

// Truncate returns at most limit runes of s
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
