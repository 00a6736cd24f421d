package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ColorTheme represents a set of colors for the CLI
type ColorTheme struct {
	Name        string
	Success     string
	Error       string
	Warning     string
	Info        string
	Header      string
	Highlight   string
	Normal      string
	Description string
}

// Available themes
var (
	// Default theme
	DefaultTheme = ColorTheme{
		Name:        "default",
		Success:     colorGreen,
		Error:       colorRed,
		Warning:     colorYellow,
		Info:        colorBlue,
		Header:      colorCyan + colorBold,
		Highlight:   colorPurple,
		Normal:      colorWhite,
		Description: "Default theme",
	}

	// Dark theme
	DarkTheme = ColorTheme{
		Name:        "dark",
		Success:     colorGreen,
		Error:       colorRed,
		Warning:     colorYellow,
		Info:        colorPurple,
		Header:      colorWhite + colorBold,
		Highlight:   colorBlue,
		Normal:      colorWhite,
		Description: "Dark mode theme",
	}

	// Gruvbox theme
	GruvboxTheme = ColorTheme{
		Name:        "gruvbox",
		Success:     "\033[38;5;142m",             // Gruvbox yellow/green
		Error:       "\033[38;5;167m",             // Gruvbox red
		Warning:     "\033[38;5;214m",             // Gruvbox orange
		Info:        "\033[38;5;109m",             // Gruvbox blue
		Header:      "\033[38;5;208m" + colorBold, // Gruvbox orange bold
		Highlight:   "\033[38;5;175m",             // Gruvbox purple
		Normal:      "\033[38;5;223m",             // Gruvbox light foreground
		Description: "Warm, earthy color scheme (gruvbox)",
	}
)

// List of all available themes
var AvailableThemes = []ColorTheme{
	DefaultTheme,
	DarkTheme,
	GruvboxTheme,
}

// Current active theme, starts with default
var CurrentTheme = DefaultTheme

// Terminal colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorBold   = "\033[1m"
)

// SetTheme sets the current theme by name
func SetTheme(themeName string) bool {
	for _, theme := range AvailableThemes {
		if theme.Name == themeName {
			CurrentTheme = theme
			return true
		}
	}
	return false
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(CurrentTheme.Success + "✓ " + message + colorReset)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(CurrentTheme.Error + "✗ " + message + colorReset)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(CurrentTheme.Warning + "! " + message + colorReset)
}

// PrintInfo prints an informational message
func PrintInfo(message string) {
	fmt.Println(CurrentTheme.Info + "ℹ " + message + colorReset)
}

// PrintHeader prints a section header
func PrintHeader(message string) {
	fmt.Println("\n" + CurrentTheme.Header + message + colorReset)
	fmt.Println(strings.Repeat("─", len([]rune(message))))
}

// stdin is the shared line reader for all interactive prompts.
var stdin = bufio.NewReader(os.Stdin)

// Prompt prints a label and reads one trimmed line from stdin.
func Prompt(label string) string {
	fmt.Print(CurrentTheme.Highlight + label + colorReset)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(line)
}

// Confirm asks a yes/no question until it gets a valid answer.
func Confirm(label string) bool {
	for {
		switch strings.ToLower(Prompt(label + " Y/N ")) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		PrintWarning("Enter a valid choice.")
	}
}
