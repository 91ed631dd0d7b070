// Package detector decides how the CLI renders its output.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects styled or plain rendering.
type OutputMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto OutputMode = iota
	// ModeStyled renders colors and icons.
	ModeStyled
	// ModePlain renders bare text.
	ModePlain
)

// DetectEnvironment returns ModePlain when stdout is not a terminal or CI is set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeStyled
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ResolveMode applies the --output flag on top of auto-detection.
// Accepted values are "auto", "styled", "plain" and empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "styled":
		return ModeStyled
	case "plain":
		return ModePlain
	default:
		return autoDetected
	}
}
