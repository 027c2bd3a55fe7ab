package outwriter

import (
	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/internal/termsize"
)

// GetMaxTableLabelWidth calculates the maximum width for point labels in table output
// based on terminal width.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		// Conservative default for narrow terminals and CI
		termWidth = termsize.Width(80)
	}
	return labelWidthFor(termWidth)
}

func labelWidthFor(termWidth int) int {
	// Rank, ID, Category, X, Y, Size and Radius columns with borders and padding
	const baseWidth = 75

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
