package main

import (
	"os"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset       = "\033[0m"
	colorBrightRed   = "\033[91m"
	colorBrightGreen = "\033[92m"
	colorCyan        = "\033[36m"
	colorYellow      = "\033[33m"
)

var colorsEnabled = colorSupported()

// colorSupported checks if the terminal supports colors.
func colorSupported() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := strings.ToLower(os.Getenv("TERM"))
	for _, colorTerm := range []string{"xterm", "screen", "tmux", "color", "ansi"} {
		if strings.Contains(term, colorTerm) {
			return true
		}
	}

	return false
}

func colorize(color, text string) string {
	if !colorsEnabled {
		return text
	}

	return color + text + colorReset
}

// Success formats text for successful operations.
func Success(text string) string { return colorize(colorBrightGreen, text) }

// Failure formats text for failed operations.
func Failure(text string) string { return colorize(colorBrightRed, text) }

// Info formats informational text.
func Info(text string) string { return colorize(colorCyan, text) }

// Warning formats warnings.
func Warning(text string) string { return colorize(colorYellow, text) }
