// ABOUTME: Package documentation for the ui package
// ABOUTME: Describes the purpose and usage patterns for terminal styling

// Package ui provides consistent terminal styling and output formatting
// for modscmd commands using lipgloss.
//
// Usage:
//   - Use Print* functions for standalone messages: ui.PrintSuccess("Done!")
//   - Use inline helpers for composing output: fmt.Println(ui.Name(name), ui.Muted(id))
//   - Call ApplyColorScheme once with the configured color_scheme
//   - Respects NO_COLOR environment variable for accessibility
package ui
