// Package probe reads the viewing device, display and clock signals that feed
// the environment variables of a macro expansion.
//
// The package never touches global state: every signal comes from a Probe, so
// classification and bucketing can be tested with fixed inputs.
package probe

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ColorScheme is the viewer's preferred color scheme.
type ColorScheme int

const (
	SchemeUnknown ColorScheme = iota
	SchemeLight
	SchemeDark
)

func (c ColorScheme) String() string {
	switch c {
	case SchemeLight:
		return "light"
	case SchemeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// ParseColorScheme accepts "dark" or "light" in any case.
func ParseColorScheme(s string) ColorScheme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return SchemeDark
	case "light":
		return SchemeLight
	default:
		return SchemeUnknown
	}
}

// Probe supplies the ambient signals of the viewing runtime.
type Probe interface {
	// UserAgent returns the raw user agent string.
	UserAgent() string
	// Screen returns the screen width and height in pixels.
	Screen() (width, height int)
	// ColorScheme returns the preferred color scheme.
	ColorScheme() ColorScheme
	// Now returns the current wall-clock time.
	Now() time.Time
}

// Static is a Probe with fixed values. A zero Time reports the real clock.
type Static struct {
	UA     string
	Width  int
	Height int
	Scheme ColorScheme
	Time   time.Time
}

func (s Static) UserAgent() string        { return s.UA }
func (s Static) Screen() (int, int)       { return s.Width, s.Height }
func (s Static) ColorScheme() ColorScheme { return s.Scheme }

func (s Static) Now() time.Time {
	if s.Time.IsZero() {
		return time.Now()
	}
	return s.Time
}

// FromRequest builds a probe from an incoming HTTP request. Screen size is
// taken from the sw/sh query parameters, falling back to the viewport client
// hints; the color scheme comes from the Sec-CH-Prefers-Color-Scheme hint.
func FromRequest(r *http.Request) Static {
	q := r.URL.Query()
	return Static{
		UA:     r.UserAgent(),
		Width:  firstInt(q.Get("sw"), r.Header.Get("Sec-CH-Viewport-Width")),
		Height: firstInt(q.Get("sh"), r.Header.Get("Sec-CH-Viewport-Height")),
		Scheme: ParseColorScheme(strings.Trim(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), `"`)),
	}
}

func firstInt(values ...string) int {
	for _, v := range values {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}
