package probe

import (
	"testing"
	"time"
)

func TestGetTimeInfo(t *testing.T) {
	afternoon := time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC) // a Sunday
	morning := time.Date(2026, time.October, 20, 9, 30, 0, 0, time.UTC)   // a Tuesday

	tests := []struct {
		name string
		now  time.Time
		loc  *Locale
		want TimeInfo
	}{
		{"korean afternoon", afternoon, Korean, TimeInfo{2026, 10, 18, "일", "오후 3:04:05", "오후"}},
		{"korean morning", morning, Korean, TimeInfo{2026, 10, 20, "화", "오전 9:30:00", "오전"}},
		{"english afternoon", afternoon, English, TimeInfo{2026, 10, 18, "Sunday", "3:04:05 PM", "PM"}},
		{"japanese morning", morning, Japanese, TimeInfo{2026, 10, 20, "火", "09:30:00", "午前"}},
		{"nil locale is korean", morning, nil, TimeInfo{2026, 10, 20, "화", "오전 9:30:00", "오전"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTimeInfo(tt.now, tt.loc); got != tt.want {
				t.Errorf("GetTimeInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMeridiemBoundary(t *testing.T) {
	noon := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	beforeNoon := noon.Add(-time.Second)

	if got := English.Meridiem(noon); got != "PM" {
		t.Errorf("Meridiem(12:00) = %q, want PM", got)
	}
	if got := English.Meridiem(beforeNoon); got != "AM" {
		t.Errorf("Meridiem(11:59:59) = %q, want AM", got)
	}
}

func TestClockWithoutFormatter(t *testing.T) {
	loc := &Locale{AM: "am", PM: "pm"}
	at := time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)

	if got := loc.Clock(at); got != "15:04:05" {
		t.Errorf("Clock() = %q, want 15:04:05", got)
	}
	if got := GetTimeInfo(at, loc).AmPm; got != "pm" {
		t.Errorf("AmPm = %q, want pm", got)
	}
}

func TestLookupLocale(t *testing.T) {
	tests := []struct {
		input []string
		want  *Locale
	}{
		{[]string{"ko-KR"}, Korean},
		{[]string{"en-US"}, English},
		{[]string{"en-GB,en;q=0.8"}, English},
		{[]string{"ja"}, Japanese},
		{[]string{""}, Korean},
		{nil, Korean},
	}

	for _, tt := range tests {
		if got := LookupLocale(tt.input...); got != tt.want {
			t.Errorf("LookupLocale(%v) = %v, want %v", tt.input, got.Tag, tt.want.Tag)
		}
	}
}
