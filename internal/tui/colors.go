package tui

// Color constants for the conbi TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (field labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Indigo theme)
	ColorAccentMain   = "#4F46E5" // Logo, accent elements, active borders
	ColorAccentBright = "#818CF8" // Highlights, focused field labels

	// State Colors
	ColorError   = "#EF4444" // Validation errors, failures
	ColorSuccess = "#10B981" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings

	// Status badge colors
	ColorStatusPending    = "#F59E0B" // amber
	ColorStatusInProgress = "#3B82F6" // blue
	ColorStatusCompleted  = "#10B981" // green

	// Priority badge colors
	ColorPriorityLow    = "#10B981" // green
	ColorPriorityMedium = "#F59E0B" // amber
	ColorPriorityHigh   = "#EF4444" // red
)

// CategoryPalette is the fixed set of colors assigned to new categories by
// uniform-random choice.
var CategoryPalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899",
}
