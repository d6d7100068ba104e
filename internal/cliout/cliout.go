// Package cliout centralizes styled terminal output for the subschema CLI.
//
// Commands report through these helpers instead of styling inline so every
// subcommand renders results the same way.
package cliout

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose toggles Verbose output; wired to the --verbose flag.
func SetVerbose(v bool) { verboseMode = v }

// OK prints a green success line.
func OK(format string, args ...any) {
	fmt.Println(okStyle.Render(fmt.Sprintf(format, args...)))
}

// Fail prints a red failure line.
func Fail(format string, args ...any) {
	fmt.Println(failStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints a cyan status line.
func Info(format string, args ...any) {
	fmt.Println(infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Detail prints an indented gray line; report records render one per call.
func Detail(format string, args ...any) {
	fmt.Println(detailStyle.Render("  " + fmt.Sprintf(format, args...)))
}

// Verbose prints a gray line only when verbose mode is on.
func Verbose(format string, args ...any) {
	if !verboseMode {
		return
	}
	fmt.Println(detailStyle.Render(fmt.Sprintf(format, args...)))
}
