package commands

import (
	"fmt"
	"strconv"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/signals"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintHeader prints a boxed section title
func PrintHeader(title string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintSeparator()
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	for i := 0; i < totalWidth; i++ {
		fmt.Print("─")
	}
	fmt.Println()
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("  %-*s : %s\n", keyWidth, key, value)
}

// riskIcon maps a risk level to a traffic light
func riskIcon(level contracts.RiskLevel) string {
	switch level {
	case contracts.RiskLow:
		return "🟢"
	case contracts.RiskModerate:
		return "🟡"
	default:
		return "🔴"
	}
}

// bandIcon maps a sub-signal band to a marker
func bandIcon(b signals.Band) string {
	switch b {
	case signals.BandGood:
		return "✓"
	case signals.BandWarn:
		return "!"
	default:
		return "✗"
	}
}

// PrintReport prints a scan report as a header plus a signal table
func PrintReport(r *contracts.ScanReport) {
	title := r.Mint
	if r.Token != nil {
		title = fmt.Sprintf("%s (%s)", r.Token.Name, r.Token.Symbol)
	}
	PrintHeader("Rug Scan: " + title)

	PrintKeyValue("Mint", r.Mint, 10)
	if r.Token != nil {
		PrintKeyValue("Market Cap", r.Token.MarketCapText, 10)
		PrintKeyValue("Liquidity", r.Token.LiquidityStatus, 10)
	}
	PrintKeyValue("Score", fmt.Sprintf("%d/100 %s %s", r.TotalScore, riskIcon(r.RiskLevel), r.RiskLevel), 10)
	PrintKeyValue("Damping", strconv.FormatFloat(r.DegradationFactor, 'f', 2, 64), 10)
	PrintSeparator()

	widths := []int{22, 5, 7, 6, 4}
	PrintTableHeader([]string{"Signal", "Raw", "Weight", "Score", ""}, widths)
	for _, s := range r.Signals {
		PrintTableRow([]string{
			s.Label,
			strconv.Itoa(s.RawScore),
			strconv.FormatFloat(s.Weight, 'f', 2, 64),
			strconv.Itoa(s.Score),
			bandIcon(signals.BandOf(s.Score)),
		}, widths)
	}

	PrintSeparator()
	fmt.Printf("  %s\n", r.Explanation)
	if !r.SnapshotAvailable {
		PrintWarning("Market data unavailable, scored on fallback values")
	}
	if r.Clamped {
		PrintWarning("Score capped after a 24h price collapse")
	}
	PrintDoubleSeparator()
}
