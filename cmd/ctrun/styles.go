// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple - used for titles and table headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and table borders.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for removed containers and reclaimed space.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorVerbose is light gray - used for verbose output.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// VerboseStyle is for verbose output and supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)
