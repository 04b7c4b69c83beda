package probe

import (
	"time"

	"golang.org/x/text/language"
)

// Locale holds the localized names used by the time and coin variables.
type Locale struct {
	Tag       language.Tag
	Weekdays  [7]string // indexed by time.Weekday, Sunday first
	AM        string
	PM        string
	CoinHeads string
	CoinTails string
	clock     func(t time.Time, meridiem string) string
}

// Clock formats t the way the locale writes a wall-clock time. Locales built
// outside this package use a 24-hour clock.
func (l *Locale) Clock(t time.Time) string {
	if l.clock == nil {
		return t.Format("15:04:05")
	}
	return l.clock(t, l.Meridiem(t))
}

// Meridiem returns the localized AM/PM marker for t.
func (l *Locale) Meridiem(t time.Time) string {
	if t.Hour() >= 12 {
		return l.PM
	}
	return l.AM
}

var (
	Korean = &Locale{
		Tag:       language.Korean,
		Weekdays:  [7]string{"일", "월", "화", "수", "목", "금", "토"},
		AM:        "오전",
		PM:        "오후",
		CoinHeads: "앞면",
		CoinTails: "뒷면",
		clock: func(t time.Time, m string) string {
			return m + " " + t.Format("3:04:05")
		},
	}

	English = &Locale{
		Tag:       language.English,
		Weekdays:  [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		AM:        "AM",
		PM:        "PM",
		CoinHeads: "Heads",
		CoinTails: "Tails",
		clock: func(t time.Time, m string) string {
			return t.Format("3:04:05") + " " + m
		},
	}

	Japanese = &Locale{
		Tag:       language.Japanese,
		Weekdays:  [7]string{"日", "月", "火", "水", "木", "金", "土"},
		AM:        "午前",
		PM:        "午後",
		CoinHeads: "表",
		CoinTails: "裏",
		clock: func(t time.Time, _ string) string {
			return t.Format("15:04:05")
		},
	}

	// The first entry is the fallback when nothing matches.
	locales       = []*Locale{Korean, English, Japanese}
	localeMatcher = language.NewMatcher([]language.Tag{language.Korean, language.English, language.Japanese})
)

// LookupLocale returns the supported locale closest to the given BCP 47 tags
// or Accept-Language values. Unknown or empty input yields Korean.
func LookupLocale(tags ...string) *Locale {
	_, index := language.MatchStrings(localeMatcher, tags...)
	if index < 0 || index >= len(locales) {
		return locales[0]
	}
	return locales[index]
}

// TimeInfo is the calendar and clock view of one instant.
type TimeInfo struct {
	Year    int
	Month   int
	Day     int
	Weekday string
	Time    string
	AmPm    string
}

// GetTimeInfo renders now through the locale's tables. A nil locale uses Korean.
func GetTimeInfo(now time.Time, loc *Locale) TimeInfo {
	if loc == nil {
		loc = Korean
	}
	return TimeInfo{
		Year:    now.Year(),
		Month:   int(now.Month()),
		Day:     now.Day(),
		Weekday: loc.Weekdays[now.Weekday()],
		Time:    loc.Clock(now),
		AmPm:    loc.Meridiem(now),
	}
}
