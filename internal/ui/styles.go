// ABOUTME: Defines color palette, color schemes, symbols, and NO_COLOR initialization
// ABOUTME: Centralizes all UI styling constants for consistent appearance
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mod list palette
var (
	ColorEmerald      = lipgloss.Color("#4BE173")
	ColorOrange       = lipgloss.Color("#ED9234")
	ColorBlue         = lipgloss.Color("#1E90FF")
	ColorBrightBlue   = lipgloss.Color("#7DCFE2")
	ColorMidnightBlue = lipgloss.Color("#4D4F58")
	ColorPink         = lipgloss.Color("#DF678C")
	ColorPurple       = lipgloss.Color("#843DE8")
	ColorMustard      = lipgloss.Color("#FEE455")
)

// Semantic color definitions
var (
	ColorSuccess   = ColorEmerald
	ColorError     = lipgloss.Color("#ef4444") // Red
	ColorWarning   = ColorOrange
	ColorInfo      = ColorBlue
	ColorMuted     = lipgloss.Color("#6b7280") // Gray
	ColorAccent    = ColorPurple
	ColorHighlight = ColorMustard
	ColorLink      = ColorBrightBlue
	ColorName      = ColorPink
)

// Symbol definitions
var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)

// Color schemes accepted by ApplyColorScheme
const (
	SchemeDefault = "default"
	SchemeMono    = "mono"
	SchemeVivid   = "vivid"
)

func init() {
	initColorProfile()
}

func initColorProfile() {
	// Respect NO_COLOR standard (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ApplyColorScheme switches the output color profile. "default" follows the
// terminal, "mono" disables color and "vivid" forces true color even when
// output is piped. NO_COLOR always wins.
func ApplyColorScheme(scheme string) error {
	switch scheme {
	case SchemeDefault, "":
		lipgloss.SetColorProfile(termenv.ColorProfile())
	case SchemeMono:
		lipgloss.SetColorProfile(termenv.Ascii)
	case SchemeVivid:
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		return fmt.Errorf("unknown color scheme %q", scheme)
	}
	initColorProfile()
	return nil
}
