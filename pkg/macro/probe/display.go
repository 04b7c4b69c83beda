package probe

import "fmt"

// DisplayInfo describes the viewer's screen.
type DisplayInfo struct {
	ScreenW    int
	ScreenH    int
	Resolution string
	DarkMode   string
}

var resolutionBuckets = []struct {
	minWidth int
	label    string
}{
	{3840, "4K"},
	{2560, "QHD"},
	{1920, "FHD"},
	{1280, "HD"},
}

// GetDisplayInfo buckets the screen width and reports orientation and dark mode.
func GetDisplayInfo(width, height int, scheme ColorScheme) DisplayInfo {
	orientation := "Portrait"
	if width >= height {
		orientation = "Landscape"
	}

	bucket := "SD"
	for _, b := range resolutionBuckets {
		if width >= b.minWidth {
			bucket = b.label
			break
		}
	}

	dark := "Light"
	if scheme == SchemeDark {
		dark = "Dark"
	}

	return DisplayInfo{
		ScreenW:    width,
		ScreenH:    height,
		Resolution: fmt.Sprintf("%s %s", bucket, orientation),
		DarkMode:   dark,
	}
}
