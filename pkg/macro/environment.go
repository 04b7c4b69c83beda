package macro

import (
	"strings"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

// Environment keys, in the order they are derived.
const (
	KeyDevice     = "Device"
	KeyOS         = "OS"
	KeyBrowser    = "Browser"
	KeyScreenW    = "ScreenW"
	KeyScreenH    = "ScreenH"
	KeyResolution = "Resolution"
	KeyDarkMode   = "DarkMode"
	KeyYear       = "year"
	KeyMonth      = "month"
	KeyDay        = "day"
	KeyWeekday    = "weekday"
	KeyTime       = "time"
	KeyAmPm       = "ampm"
)

// EnvKeys lists every key of an environment variable set.
var EnvKeys = []string{
	KeyDevice, KeyOS, KeyBrowser,
	KeyScreenW, KeyScreenH, KeyResolution, KeyDarkMode,
	KeyYear, KeyMonth, KeyDay, KeyWeekday, KeyTime, KeyAmPm,
}

// Vars is an environment variable set: the device, display and time signals
// of one expansion. Values are strings, ints or, in a logic view, bools.
type Vars map[string]interface{}

// NewVars snapshots the probe once.
func NewVars(p probe.Probe, loc *probe.Locale) Vars {
	device := probe.GetDeviceInfo(p.UserAgent())
	w, h := p.Screen()
	display := probe.GetDisplayInfo(w, h, p.ColorScheme())
	clock := probe.GetTimeInfo(p.Now(), loc)

	return Vars{
		KeyDevice:     device.Device,
		KeyOS:         device.OS,
		KeyBrowser:    device.Browser,
		KeyScreenW:    display.ScreenW,
		KeyScreenH:    display.ScreenH,
		KeyResolution: display.Resolution,
		KeyDarkMode:   display.DarkMode,
		KeyYear:       clock.Year,
		KeyMonth:      clock.Month,
		KeyDay:        clock.Day,
		KeyWeekday:    clock.Weekday,
		KeyTime:       clock.Time,
		KeyAmPm:       clock.AmPm,
	}
}

// String returns the stringified value of key, or "" when it is absent.
func (v Vars) String(key string) string {
	return FormatValue(v[key])
}

// Alias is a derived boolean exposed to the shorthand conditional.
type Alias struct {
	Name string
	Eval func(Vars) bool
}

// DefaultAliases are Mob and Des.
var DefaultAliases = []Alias{
	{Name: "Mob", Eval: func(v Vars) bool { return v[KeyDevice] == probe.DeviceMobile }},
	{Name: "Des", Eval: func(v Vars) bool { return v[KeyDevice] == probe.DeviceDesktop }},
}

// Extend returns a copy of v with each alias evaluated against v.
func (v Vars) Extend(aliases []Alias) Vars {
	view := make(Vars, len(v)+len(aliases))
	for k, val := range v {
		view[k] = val
	}
	for _, a := range aliases {
		view[a.Name] = a.Eval(v)
	}
	return view
}

// canonicalEnvKey matches a token body against EnvKeys ignoring case.
func canonicalEnvKey(body string) (string, bool) {
	for _, key := range EnvKeys {
		if strings.EqualFold(key, body) {
			return key, true
		}
	}
	return "", false
}
