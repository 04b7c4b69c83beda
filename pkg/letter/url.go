package letter

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPage is the viewer page share links point at.
const DefaultPage = "view.html"

// FromQuery decodes a letter from share-link query parameters. ok is false
// when the query carries neither a subject nor content.
func FromQuery(values url.Values) (l Letter, ok bool) {
	for _, name := range Fields {
		l.Set(name, values.Get(name))
	}
	return l, !l.IsEmpty()
}

// Query encodes the non-empty fields of l.
func (l Letter) Query() url.Values {
	values := url.Values{}
	for _, name := range Fields {
		if v := l.Get(name); v != "" {
			values.Set(name, v)
		}
	}
	return values
}

// ToURL builds a share link for l. The page is resolved next to the last
// path segment of base, so a base of https://host/app/edit.html yields
// https://host/app/view.html?... An empty page uses DefaultPage.
func ToURL(base string, l Letter, page string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if page == "" {
		page = DefaultPage
	}

	dir := baseURL.Path
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}

	target := *baseURL
	target.Path = dir + strings.TrimPrefix(page, "/")
	target.RawPath = ""
	target.RawQuery = l.Query().Encode()
	target.Fragment = ""
	return target.String(), nil
}
