package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// Every color is a lipgloss.AdaptiveColor so the same styles work on both the
// light and dark palette; the active palette is selected by flipping
// lipgloss's dark-background flag. The persisted theme key pre-selects the
// palette before the first frame so there is no flash of the wrong theme.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted     = ac("240", "243")
	colorSurfaceFg = ac("235", "252")
	colorControlBg = ac("252", "236")

	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")

	colorAccent = ac("27", "39") // blue
	colorError  = ac("160", "203")
	colorOK     = ac("28", "41")

	colorModalHeaderBg = ac("252", "237")
)

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference honors NO_COLOR and otherwise follows the
// terminal's capabilities. termenv.EnvColorProfile also respects CLICOLOR,
// which can accidentally disable colors inside a TUI, so we only use the
// capability probe plus the COLORTERM hint.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyTheme forces the palette for a persisted theme value. An empty value
// (no prior toggle) keeps lipgloss's own background detection.
func applyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

func darkThemeActive() bool {
	return lipgloss.HasDarkBackground()
}

// themeName is the value the toggle persists.
func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
