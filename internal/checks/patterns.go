package checks

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/slopguard/slopguard/internal/model"
)

const (
	shortTitleLen = 15
	minBodyLen    = 20
)

// CheckGenericDescription scores title/body pairs that say nothing about
// the change, or that read like templated generated prose.
func CheckGenericDescription(pr model.PullRequest) Result {
	title := strings.ToLower(strings.TrimSpace(pr.Title))
	body := strings.TrimSpace(pr.Body)

	genericTitle := matchesAny(genericTitlePatterns, title)
	templatedBody := matchesAny(templatedBodyPatterns, body)
	shortTitle := len(title) < shortTitleLen
	noBody := len(body) < minBodyLen

	var score int
	var reason string
	switch {
	case genericTitle && noBody:
		score, reason = 85, fmt.Sprintf("Generic title %q with no meaningful description", pr.Title)
	case genericTitle && templatedBody:
		score, reason = 70, fmt.Sprintf("Generic title %q with templated description", pr.Title)
	case genericTitle:
		score, reason = 50, fmt.Sprintf("Generic title %q", pr.Title)
	case shortTitle && noBody:
		score, reason = 35, "Very short title and no meaningful description"
	case templatedBody:
		score, reason = 20, "Description uses templated phrasing"
	default:
		return Result{Name: GenericDescription, Score: 0, Reason: "Title and description look specific"}
	}

	return Result{Name: GenericDescription, Score: score, Reason: reason}
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// CheckOversizedDiff scores large diffs that arrive with little or no
// explanation. Bigger changes demand proportionally more description.
func CheckOversizedDiff(pr model.PullRequest) Result {
	totalChanges := pr.Additions + pr.Deletions
	if totalChanges <= 100 {
		return Result{Name: OversizedDiff, Score: 0, Reason: fmt.Sprintf("Diff size is modest (%d changed lines)", totalChanges)}
	}

	descLen := len(strings.TrimSpace(pr.Body))
	expectedMinDesc := float64(totalChanges) * 0.1
	if expectedMinDesc > 200 {
		expectedMinDesc = 200
	}

	var score int
	switch {
	case totalChanges > 2000 && descLen < 50:
		score = 95
	case totalChanges > 1000 && descLen < 50:
		score = 80
	case totalChanges > 500 && descLen < 50:
		score = 65
	case totalChanges > 500 && float64(descLen) < expectedMinDesc:
		score = 40
	case totalChanges > 300 && descLen < 30:
		score = 30
	default:
		return Result{Name: OversizedDiff, Score: 0, Reason: fmt.Sprintf("Description length fits a %d-line diff", totalChanges)}
	}

	return Result{
		Name:  OversizedDiff,
		Score: score,
		Reason: fmt.Sprintf("%d changed lines described in %d characters",
			totalChanges, descLen),
	}
}

// CheckUnrelatedChanges scores how widely the diff scatters across
// top-level directories. Legitimate wide changes usually carry tests,
// config, or docs alongside.
func CheckUnrelatedChanges(files []model.ChangedFile) Result {
	if len(files) <= 1 {
		return Result{Name: UnrelatedChanges, Score: 0, Reason: "Single-file change"}
	}

	topDirs := make(map[string]bool)
	subGroups := make(map[string]bool) // finer grouping, diagnostics only
	likelyRelated := false

	for _, f := range files {
		parts := strings.Split(f.Filename, "/")
		if len(parts) == 1 {
			topDirs["."] = true
			subGroups["."] = true
		} else {
			topDirs[parts[0]] = true
			subGroups[parts[0]+"/"+parts[1]] = true
		}

		lower := strings.ToLower(f.Filename)
		if containsAny(lower, testFileMarkers) || containsAny(lower, configFileMarkers) || containsAny(lower, docFileMarkers) {
			likelyRelated = true
		}
	}

	dirCount := len(topDirs)
	var score int
	switch {
	case dirCount <= 3:
		return Result{Name: UnrelatedChanges, Score: 0, Reason: fmt.Sprintf("Changes grouped in %d top-level areas", dirCount)}
	case dirCount <= 5 && likelyRelated:
		score = 10
	case dirCount <= 5:
		score = 35
	case dirCount <= 8:
		score = 60
	default:
		score = 85
	}

	return Result{
		Name:  UnrelatedChanges,
		Score: score,
		Reason: fmt.Sprintf("Changes span %d top-level directories (%s)",
			dirCount, sampleDirs(topDirs)),
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func sampleDirs(dirs map[string]bool) string {
	names := make([]string, 0, len(dirs))
	for d := range dirs {
		names = append(names, d)
	}
	sort.Strings(names)
	if len(names) > 5 {
		names = append(names[:5], "...")
	}
	return strings.Join(names, ", ")
}

// CheckFormattingOnly detects diffs that are almost entirely whitespace,
// quote-style, or trailing-punctuation churn while the title claims
// substantive work.
func CheckFormattingOnly(pr model.PullRequest, files []model.ChangedFile) Result {
	formatting, substantive := 0, 0

	for _, f := range files {
		if f.Patch == "" {
			continue
		}
		lines := strings.Split(f.Patch, "\n")
		for i := 0; i < len(lines); i++ {
			line := lines[i]
			if isDiffHeader(line) {
				continue
			}

			switch {
			case strings.HasPrefix(line, "-"):
				// Removed line immediately followed by an added line is a
				// modification pair; classify the pair as a unit.
				if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+") && !strings.HasPrefix(lines[i+1], "+++") {
					if isFormattingPair(line[1:], lines[i+1][1:]) {
						formatting += 2
					} else {
						substantive += 2
					}
					i++
					continue
				}
				if isTrivialLine(line[1:]) {
					formatting++
				} else {
					substantive++
				}
			case strings.HasPrefix(line, "+"):
				if isTrivialLine(line[1:]) {
					formatting++
				} else {
					substantive++
				}
			}
		}
	}

	total := formatting + substantive
	if total < 5 {
		return Result{Name: FormattingOnly, Score: 0, Reason: "Too few changed lines to classify"}
	}

	rate := float64(formatting) / float64(total)
	claims := substantiveTitleKeywords.MatchString(pr.Title)

	var score int
	switch {
	case rate < 0.5:
		return Result{Name: FormattingOnly, Score: 0, Reason: fmt.Sprintf("Mostly substantive changes (%.0f%% formatting)", rate*100)}
	case rate < 0.8:
		score = pick(claims, 30, 10)
	case rate < 0.95:
		score = pick(claims, 65, 25)
	default:
		score = pick(claims, 90, 35)
	}

	reason := fmt.Sprintf("%.0f%% of changed lines are formatting-only", rate*100)
	if claims {
		reason += fmt.Sprintf(" while title %q claims substantive work", pr.Title)
	}
	return Result{Name: FormattingOnly, Score: score, Reason: reason}
}

// isFormattingPair reports whether a removed/added line pair differs only
// in whitespace, quote style, or trailing punctuation.
func isFormattingPair(removed, added string) bool {
	if strings.TrimSpace(removed) == strings.TrimSpace(added) {
		return true
	}
	if stripWhitespace(removed) == stripWhitespace(added) {
		return true
	}
	if normalizeQuotes(removed) == normalizeQuotes(added) {
		return true
	}
	return strings.TrimRight(strings.TrimSpace(removed), ";,") ==
		strings.TrimRight(strings.TrimSpace(added), ";,")
}

// isTrivialLine reports whether a single-sided add/remove carries no
// content beyond whitespace or braces.
func isTrivialLine(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return true
	}
	return strings.Trim(trimmed, "{}();,") == ""
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

var quoteReplacer = strings.NewReplacer("'", `"`, "`", `"`)

func normalizeQuotes(s string) string {
	return quoteReplacer.Replace(strings.TrimSpace(s))
}

func pick(cond bool, ifTrue, ifFalse int) int {
	if cond {
		return ifTrue
	}
	return ifFalse
}
