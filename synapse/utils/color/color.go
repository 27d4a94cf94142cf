// synapse/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	infoColor   = color.New(color.FgGreen)
	mutedColor  = color.New(color.FgHiBlack)
	errorColor  = color.New(color.FgRed, color.Bold)
	nameColor   = color.New(color.Bold)
	priceColor  = color.New(color.FgHiYellow)
	linkColor   = color.New(color.FgBlue, color.Underline)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorMuted(s string) string {
	return mutedColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorName(s string) string {
	return nameColor.Sprint(s)
}

func ColorPrice(s string) string {
	return priceColor.Sprint(s)
}

func ColorLink(s string) string {
	return linkColor.Sprint(s)
}

// Disable turns coloring off, e.g. when output is not a terminal.
func Disable() {
	color.NoColor = true
}
