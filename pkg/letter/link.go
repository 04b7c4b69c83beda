package letter

import (
	"regexp"
	"strings"
)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeLink forces an http(s) scheme onto a user-entered link, adding
// https:// when none is present. Empty input stays empty.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if !schemePattern.MatchString(link) {
		return "https://" + link
	}
	return link
}
