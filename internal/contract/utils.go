package contract

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/motionchart/schema"
)

// Color variables for console output.
var (
	PlayingColor = color.New(color.FgGreen, color.Bold) // PlayingColor marks an advancing timeline.
	PausedColor  = color.New(color.FgYellow)            // PausedColor marks a stopped but positioned timeline.
	IdleColor    = color.New(color.FgCyan)              // IdleColor marks a timeline that has not started.
	ErrorColor   = color.New(color.FgRed, color.Bold)   // ErrorColor marks load failures and malformed counts.
)

// categoryColors cycles through distinct terminal colours, in the same order
// as the chart palette so table rows match the rendered bubbles.
var categoryColors = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgHiYellow),
	color.New(color.FgGreen),
	color.New(color.FgRed),
	color.New(color.FgMagenta),
	color.New(color.FgYellow),
	color.New(color.FgHiMagenta),
	color.New(color.FgWhite),
	color.New(color.FgHiGreen),
	color.New(color.FgCyan),
}

// GetPlaybackLabel returns a colored playback state for console output (table).
func GetPlaybackLabel(state schema.PlaybackState) string {
	text := string(state)
	switch state {
	case schema.Playing:
		return PlayingColor.Sprint(text)
	case schema.Paused:
		return PausedColor.Sprint(text)
	default:
		return IdleColor.Sprint(text)
	}
}

// GetCategoryLabel returns a category name colored by its position in the
// dataset's sorted category list.
func GetCategoryLabel(category string, categories []string) string {
	for i, c := range categories {
		if c == category {
			return categoryColors[i%len(categoryColors)].Sprint(category)
		}
	}
	return category
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseFloatList parses a comma separated list of numbers such as "1e6,1e7".
// Blank entries are skipped.
func ParseFloatList(s string) ([]float64, error) {
	var out []float64
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}
