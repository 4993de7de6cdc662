// Package paging encodes result navigation into callback payloads and slices
// search results into pages.
//
// Payloads are plain text of the form tag|field|field. The query component is
// percent-escaped for '%' and '|' so any query survives the round trip.
package paging

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// PageTag prefixes navigation payloads
	PageTag = "filespage"
	// SelectTag prefixes result selection payloads
	SelectTag = "sendfile"
	// Separator joins payload fields
	Separator = "|"
	// MaxPayloadLen is the largest payload the transport accepts, in bytes
	MaxPayloadLen = 64
	// MaxPage bounds the page number accepted from a payload
	MaxPage = 100000
)

var (
	// ErrMalformedToken is returned when a payload is missing fields or has invalid values
	ErrMalformedToken = errors.New("malformed callback payload")
	// ErrTokenTooLong is returned when an encoded payload does not fit MaxPayloadLen
	ErrTokenTooLong = errors.New("callback payload too long")
)

var (
	escaper   = strings.NewReplacer("%", "%25", Separator, "%7C")
	unescaper = strings.NewReplacer("%25", "%", "%7C", Separator)
)

// Token is the navigation state carried by a page button
type Token struct {
	Query string
	Page  int
}

// Encode serializes the token into a callback payload
func (t Token) Encode() (string, error) {
	if t.Query == "" || t.Page < 1 || t.Page > MaxPage {
		return "", ErrMalformedToken
	}

	data := PageTag + Separator + escaper.Replace(t.Query) + Separator + strconv.Itoa(t.Page)
	if len(data) > MaxPayloadLen {
		return "", fmt.Errorf("%w: %d bytes", ErrTokenTooLong, len(data))
	}
	return data, nil
}

// Decode parses a navigation payload
func Decode(data string) (Token, error) {
	parts := strings.Split(data, Separator)
	if len(parts) != 3 || parts[0] != PageTag {
		return Token{}, ErrMalformedToken
	}

	page, err := strconv.Atoi(parts[2])
	if err != nil || page < 1 || page > MaxPage {
		return Token{}, ErrMalformedToken
	}

	query := unescaper.Replace(parts[1])
	if query == "" {
		return Token{}, ErrMalformedToken
	}

	return Token{Query: query, Page: page}, nil
}

// EncodeSelection serializes a result selection payload for the record id
func EncodeSelection(id string) (string, error) {
	if id == "" || strings.Contains(id, Separator) {
		return "", ErrMalformedToken
	}

	data := SelectTag + Separator + id
	if len(data) > MaxPayloadLen {
		return "", ErrTokenTooLong
	}
	return data, nil
}

// DecodeSelection parses a result selection payload and returns the record id
func DecodeSelection(data string) (string, error) {
	tag, id, ok := strings.Cut(data, Separator)
	if !ok || tag != SelectTag || id == "" || strings.Contains(id, Separator) {
		return "", ErrMalformedToken
	}
	return id, nil
}

// IsPage reports whether data looks like a navigation payload
func IsPage(data string) bool {
	return strings.HasPrefix(data, PageTag+Separator)
}

// IsSelection reports whether data looks like a result selection payload
func IsSelection(data string) bool {
	return strings.HasPrefix(data, SelectTag+Separator)
}
