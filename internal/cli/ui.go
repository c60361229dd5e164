package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/graph"
	"github.com/matzehuels/graphmapper/pkg/session"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleMinted = lipgloss.NewStyle().Foreground(colorGreen)
	styleReused = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCentral = "★"
	iconMinted  = "new"
	iconReused  = "reused"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Session Output
// =============================================================================

// resolutionTag renders whether a resolution minted or reused an entity.
func resolutionTag(r catalog.Resolution) string {
	if r.Minted {
		return styleMinted.Render(iconMinted)
	}
	return styleReused.Render(fmt.Sprintf("%s %d%%", iconReused, r.Score))
}

// printResolution prints one resolved entity.
func printResolution(typed string, r catalog.Resolution) {
	name := StyleValue.Render(r.Entity.Name)
	if r.Entity.Central {
		name += " " + StyleHighlight.Render(iconCentral)
	}
	line := fmt.Sprintf("%s %s %s", StyleDim.Render(r.Entity.TypeID+":"), name, resolutionTag(r))
	if !r.Minted && !strings.EqualFold(strings.TrimSpace(typed), r.Entity.Name) {
		line += StyleDim.Render(fmt.Sprintf(" (typed %q)", typed))
	}
	printSuccess("%s", line)
}

// printImport prints the result of a CSV load.
func printImport(path string, out session.Outcome) {
	if out.Import == nil {
		return
	}
	rep := out.Import
	msg := fmt.Sprintf("Loaded %s: %d rows, %d entities, %d edges",
		path, rep.Applied, rep.Minted, rep.Edges)
	if n := len(rep.Errors); n > 0 {
		printWarning("%s, %d skipped", msg, n)
		return
	}
	printSuccess("%s", msg)
}

// printSummary prints session counts on a single line.
func printSummary(sum session.Summary, stats *sessionStats) {
	parts := []string{
		fmt.Sprintf("%d types", sum.Types),
		fmt.Sprintf("%d entities", sum.Entities),
		fmt.Sprintf("%d edges", sum.Edges),
	}
	if stats != nil && stats.skipped > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d rows skipped", stats.skipped)))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// =============================================================================
// Tables
// =============================================================================

// entityTable lays out the entities of the given types with their degree.
func entityTable(s *graph.Store, types []catalog.VertexType) *table.Table {
	var rows [][]string
	for _, vt := range types {
		for _, e := range s.ListEntities(vt.ID) {
			central := ""
			if e.Central {
				central = iconCentral
			}
			rows = append(rows, []string{vt.Name, e.Name, central, strconv.Itoa(s.Degree(e.ID))})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Entity", "Central", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			case 2:
				return StyleHighlight
			case 3:
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return StyleValue
		})
}
