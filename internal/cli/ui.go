package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/xui/pkg/tree"
)

// Palette. Numbers are ANSI 256 colors.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
	// StyleValue renders paths, ids and other values.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)
	// StyleNumber renders counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
)

// statusIcons maps each status line kind to its glyph and color.
var statusIcons = map[status]struct {
	glyph string
	style lipgloss.Style
}{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo: {"›", lipgloss.NewStyle().Foreground(colorLabel)},
}

type status int

const (
	statusOK status = iota
	statusFail
	statusWarn
	statusInfo
)

func printStatus(s status, format string, args ...any) {
	icon := statusIcons[s]
	msg := fmt.Sprintf(format, args...)
	if s == statusWarn {
		msg = StyleWarning.Render(msg)
	}
	fmt.Println(icon.style.Render(icon.glyph) + " " + msg)
}

func printSuccess(format string, args ...any) { printStatus(statusOK, format, args...) }
func printError(format string, args ...any)   { printStatus(statusFail, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarn, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the node count, pass generation and whether the result
// came from the cache, on one dim line.
func printStats(nodes int, generation uint64, cached bool) {
	parts := []string{StyleDim.Render(strconv.Itoa(nodes) + " nodes")}
	if generation > 0 {
		parts = append(parts, StyleDim.Render("generation "+strconv.FormatUint(generation, 10)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorLabel).Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printIDs prints hit-test results, deepest node first.
func printIDs(ids []tree.ID) {
	if len(ids) == 0 {
		printInfo("No nodes at that position")
		return
	}
	for depth, id := range ids {
		fmt.Println("  " + StyleNumber.Render(strconv.Itoa(depth)) + " " + StyleValue.Render(string(id)))
	}
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
