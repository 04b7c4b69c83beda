package probe

import "regexp"

const (
	DeviceMobile  = "Mobile"
	DeviceDesktop = "Desktop"
)

// DeviceInfo is the classification of a user agent.
type DeviceInfo struct {
	Device  string
	OS      string
	Browser string
}

type uaRule struct {
	pattern *regexp.Regexp
	exclude *regexp.Regexp
	value   string
}

var (
	mobilePattern = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

	// Checked in order; iOS must precede macOS because iPad agents also say "Mac".
	osRules = []uaRule{
		{pattern: regexp.MustCompile(`(?i)iPhone|iPad|iPod`), value: "IOS"},
		{pattern: regexp.MustCompile(`(?i)Android`), value: "ANDROID"},
		{pattern: regexp.MustCompile(`(?i)Win`), value: "WINDOWS"},
		{pattern: regexp.MustCompile(`(?i)Mac`), value: "MACOS"},
		{pattern: regexp.MustCompile(`(?i)Linux`), value: "LINUX"},
		{pattern: regexp.MustCompile(`(?i)CrOS`), value: "CHROMEOS"},
	}

	// Chromium agents also carry "Safari", and Edge also carries "Chrome".
	browserRules = []uaRule{
		{pattern: regexp.MustCompile(`Edg`), value: "Edge"},
		{pattern: regexp.MustCompile(`Chrome`), exclude: regexp.MustCompile(`Edg`), value: "Chrome"},
		{pattern: regexp.MustCompile(`Safari`), exclude: regexp.MustCompile(`Chrome`), value: "Safari"},
		{pattern: regexp.MustCompile(`Firefox`), value: "FireFox"},
		{pattern: regexp.MustCompile(`Whale`), value: "Whale"},
	}
)

// GetDeviceInfo classifies the device class, operating system and browser of a
// user agent string.
func GetDeviceInfo(ua string) DeviceInfo {
	info := DeviceInfo{
		Device:  DeviceDesktop,
		OS:      firstMatch(osRules, ua, "OTHER"),
		Browser: firstMatch(browserRules, ua, "Other"),
	}
	if mobilePattern.MatchString(ua) {
		info.Device = DeviceMobile
	}
	return info
}

func firstMatch(rules []uaRule, ua, fallback string) string {
	for _, rule := range rules {
		if !rule.pattern.MatchString(ua) {
			continue
		}
		if rule.exclude != nil && rule.exclude.MatchString(ua) {
			continue
		}
		return rule.value
	}
	return fallback
}
