package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightCyan
	errorColorFG = pterm.FgRed
	warnColorFG  = pterm.FgYellow
)

// displayCompileMessage prints one diagnostic banner, following the same
// two-line shape as `src/logging/display.go`'s CompileMessage.display: a
// colored kind/file banner, then the message, then (if a position is known)
// the source line with carets. The core has no file contents to show here
// (parsing is out of scope, §1) so only the banner and message render; a
// host embedding the core can widen CompileMessage with source text and
// call displayCodeSelection-style rendering itself.
func displayCompileMessage(cm *CompileMessage) {
	label := "Error"
	style := errorStyleBG
	msgColor := errorColorFG
	if !cm.IsError {
		label = "Warning"
		style = warnStyleBG
		msgColor = warnColorFG
	}

	fmt.Print("\n-- ")
	style.Print(label)
	fmt.Print(" ")
	infoColorFG.Print(cm.File)
	if cm.Position != nil {
		fmt.Printf(":%d:%d", cm.Position.StartLn, cm.Position.StartCol)
	}
	fmt.Println()

	msgColor.Println(cm.text())
}

// displayICE renders an internal-error banner. These always print
// regardless of log level: an ICE means the driver violated a contract, and
// silencing that would hide a compiler bug.
func displayICE(message string) {
	fmt.Print("\n-- ")
	errorStyleBG.Print("Internal Error")
	fmt.Println()
	errorColorFG.Println(message)
	infoColorFG.Println("this indicates a bug in the resolver driver, not in the source program")
}

// phaseSpinner tracks the currently running phase spinner for the demo
// driver's phase reporting (building the fixture, resolving the
// hierarchy), mirroring `src/logging/display.go`'s displayBeginPhase.
var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartedAt time.Time
)

// BeginPhase starts a named phase spinner.
func BeginPhase(phase string) {
	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoColorFG))
	phaseSpinner.Start(phase + "...")
	phaseStartedAt = time.Now()
}

// EndPhase stops the current phase spinner, reporting success or failure.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	elapsed := time.Since(phaseStartedAt)
	if success {
		phaseSpinner.Success(fmt.Sprintf("%s (%.3fs)", currentPhase, elapsed.Seconds()))
	} else {
		phaseSpinner.Fail(currentPhase)
	}
	phaseSpinner = nil
}

// Summarize prints the closing message for a resolution run, mirroring
// `src/logging/display.go`'s displayCompilationFinished.
func Summarize(errorCount, warningCount int) {
	fmt.Print("\n")
	if errorCount == 0 {
		pterm.FgLightGreen.Print("resolution complete ")
	} else {
		errorColorFG.Print("resolution finished with errors ")
	}

	parts := []string{pluralize(errorCount, "error"), pluralize(warningCount, "warning")}
	fmt.Println("(" + strings.Join(parts, ", ") + ")")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
