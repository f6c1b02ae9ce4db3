package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/slopguard/slopguard/internal/scoring"
	"github.com/slopguard/slopguard/internal/service"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter renders a human-readable terminal report.
type TableFormatter struct{}

var verdictStyles = map[scoring.Verdict]lipgloss.Style{
	scoring.VerdictPass:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Padding(0, 1),
	scoring.VerdictWarn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(0, 1),
	scoring.VerdictFlag:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")).Padding(0, 1),
	scoring.VerdictBlock: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Padding(0, 1),
}

// hyperlink wraps text in an OSC 8 terminal hyperlink.
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns
// accounting for wide characters and ANSI escape sequences.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth truncates a plain string to fit within maxWidth
// display columns.
func truncateToWidth(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth-3, "") + "..."
}

// padRight pads a string with spaces to the target visible width.
func padRight(s string, targetWidth int) string {
	width := displayWidth(s)
	if width >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-width)
}

// Format renders the evaluation as a verdict banner followed by a check
// table sorted by weighted contribution.
func (f *TableFormatter) Format(eval *service.Evaluation, w io.Writer) error {
	r := eval.Result
	pr := eval.Snapshot.PR

	banner := fmt.Sprintf("%s  score %d/100", strings.ToUpper(r.Verdict.Display()), r.FinalScore)
	if style, ok := verdictStyles[r.Verdict]; ok {
		banner = style.Render(banner)
	}
	fmt.Fprintln(w, banner)

	if pr.Title != "" {
		heading := hyperlink(fmt.Sprintf("PR #%d", pr.Number), pr.HTMLURL)
		fmt.Fprintf(w, "%s: %s (by %s, +%d/-%d)\n", heading, pr.Title, pr.Author, pr.Additions, pr.Deletions)
	}
	fmt.Fprintln(w)

	if eval.Bypassed {
		fmt.Fprintln(w, r.Summary)
		return nil
	}

	const (
		colCheck  = 22
		colScore  = 5
		colWeight = 6
		colReason = 60
	)

	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		padRight("Check", colCheck),
		padRight("Score", colScore),
		padRight("Weight", colWeight),
		"Reason")
	fmt.Fprintln(w, strings.Repeat("-", colCheck+colScore+colWeight+colReason+6))

	for _, wc := range r.WeightedChecks {
		scoreStr := fmt.Sprintf("%d", wc.Score)
		switch {
		case wc.Score >= 70:
			scoreStr = color.RedString(scoreStr)
		case wc.Score >= 40:
			scoreStr = color.YellowString(scoreStr)
		case wc.Score > 0:
			scoreStr = color.CyanString(scoreStr)
		}

		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			padRight(truncateToWidth(wc.Name.Display(), colCheck), colCheck),
			padRight(scoreStr, colScore),
			padRight(fmt.Sprintf("%d", wc.Weight), colWeight),
			truncateToWidth(wc.Reason, colReason))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Summary)
	return nil
}
