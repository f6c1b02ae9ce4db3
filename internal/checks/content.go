package checks

import (
	"fmt"
	"strings"

	"github.com/slopguard/slopguard/internal/model"
)

const maxReasonFindings = 3

// CheckPlaceholder scans added lines for stub content: empty bodies,
// dangling TODOs, bare pass statements, throwaway identifiers, and
// not-implemented throws.
func CheckPlaceholder(files []model.ChangedFile) Result {
	totalAdded := 0
	issues := 0
	var findings []string

	for _, f := range files {
		lines := addedLines(f.Patch)
		totalAdded += len(lines)

		fileIssues := 0
		identifierHits := 0
		for _, line := range lines {
			if strings.TrimSpace(line) == "pass" {
				fileIssues++
				continue
			}
			for _, pat := range placeholderLinePatterns {
				if pat.MatchString(line) {
					fileIssues++
					break
				}
			}
			identifierHits += len(placeholderIdentifiers.FindAllString(line, -1))
		}

		if identifierHits > 2 {
			fileIssues++
			findings = append(findings, fmt.Sprintf("%s: %d placeholder identifiers", f.Filename, identifierHits))
		}
		if fileIssues > identifierIssueCount(identifierHits) {
			findings = append(findings, fmt.Sprintf("%s: stub or TODO-only lines", f.Filename))
		}
		issues += fileIssues
	}

	if totalAdded == 0 {
		return Result{Name: Placeholder, Score: 0, Reason: "No code changes to analyze"}
	}
	if issues == 0 {
		return Result{Name: Placeholder, Score: 0, Reason: "No placeholder patterns in added code"}
	}

	rate := float64(issues) / float64(totalAdded)
	var score int
	switch {
	case rate < 0.02:
		score = 15
	case rate < 0.05:
		score = 40
	case rate < 0.10:
		score = 70
	default:
		score = 95
	}

	return Result{
		Name:  Placeholder,
		Score: score,
		Reason: fmt.Sprintf("%d placeholder issues in %d added lines (%s)",
			issues, totalAdded, joinFindings(findings)),
	}
}

func identifierIssueCount(hits int) int {
	if hits > 2 {
		return 1
	}
	return 0
}

func joinFindings(findings []string) string {
	if len(findings) == 0 {
		return "see diff"
	}
	if len(findings) > maxReasonFindings {
		findings = findings[:maxReasonFindings]
	}
	return strings.Join(findings, "; ")
}

// CheckHallucinatedImport flags imports of packages that are neither
// platform built-ins nor declared project dependencies. Relative paths
// are not candidates.
func CheckHallucinatedImport(files []model.ChangedFile, projectDeps map[string]bool) Result {
	totalImports := 0
	var suspicious []string

	for _, f := range files {
		for _, line := range addedLines(f.Patch) {
			spec, ok := extractImport(line)
			if !ok {
				continue
			}
			totalImports++

			base := basePackage(spec)
			if base == "" || builtinModules[base] || projectDeps[base] {
				continue
			}
			suspicious = append(suspicious, base)
		}
	}

	if totalImports == 0 {
		return Result{Name: HallucinatedImport, Score: 0, Reason: "No import statements in added code"}
	}
	if len(suspicious) == 0 {
		return Result{Name: HallucinatedImport, Score: 0, Reason: fmt.Sprintf("All %d imports resolve to known dependencies", totalImports)}
	}

	rate := float64(len(suspicious)) / float64(totalImports)
	var score int
	switch {
	case len(suspicious) == 1 && rate < 0.2:
		score = 25
	case rate < 0.3:
		score = 55
	default:
		score = 90
	}

	return Result{
		Name:  HallucinatedImport,
		Score: score,
		Reason: fmt.Sprintf("%d of %d imports not in declared dependencies: %s",
			len(suspicious), totalImports, joinFindings(suspicious)),
	}
}

// extractImport returns the module specifier referenced by an added line,
// if any. Relative and absolute path specifiers are not candidates.
func extractImport(line string) (string, bool) {
	for _, pat := range importPatterns {
		m := pat.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		spec := m[1]
		if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
			return "", false
		}
		return spec, true
	}
	return "", false
}

// basePackage reduces a specifier to its base package name: scoped
// packages keep their scope ("@scope/name"), sub-paths and dotted module
// paths are cut at the first separator.
func basePackage(spec string) string {
	if strings.HasPrefix(spec, "@") {
		parts := strings.SplitN(spec, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return spec
	}
	if i := strings.IndexAny(spec, "/."); i >= 0 {
		return spec[:i]
	}
	return spec
}

// CheckDocstringInflation measures the ratio of commentary to code among
// added lines. Generated changes often pad trivial code with prose.
func CheckDocstringInflation(files []model.ChangedFile) Result {
	comments, total := 0, 0

	for _, f := range files {
		for _, line := range addedLines(f.Patch) {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			total++
			if isCommentLine(trimmed) {
				comments++
			}
		}
	}

	if total < 10 {
		return Result{Name: DocstringInflation, Score: 0, Reason: "Too few added lines to assess"}
	}

	ratio := float64(comments) / float64(total)
	var score int
	switch {
	case ratio <= 0.30:
		score = 0
	case ratio <= 0.45:
		score = 15
	case ratio <= 0.60:
		score = 45
	case ratio <= 0.75:
		score = 75
	default:
		score = 95
	}

	if score == 0 {
		return Result{Name: DocstringInflation, Score: 0, Reason: fmt.Sprintf("Comment ratio %.0f%% is within normal range", ratio*100)}
	}
	return Result{
		Name:   DocstringInflation,
		Score:  score,
		Reason: fmt.Sprintf("%.0f%% of added lines are comments (%d of %d)", ratio*100, comments, total),
	}
}

func isCommentLine(trimmed string) bool {
	for _, prefix := range commentLinePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// block is a run of consecutive non-blank added lines.
type block struct {
	file  string
	lines []string
}

const (
	copyPasteMinBlockLines    = 4
	copyPasteMinLengthRatio   = 0.7
	copyPasteMinNormalizedLen = 50
)

// CheckCopyPaste finds contiguous added blocks that are duplicated,
// possibly across files, after comment stripping and whitespace
// normalization.
func CheckCopyPaste(files []model.ChangedFile) Result {
	var blocks []block
	for _, f := range files {
		blocks = append(blocks, addedBlocks(f)...)
	}

	duplicates := 0
	duplicatedLines := 0
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			shorter, longer := len(blocks[i].lines), len(blocks[j].lines)
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			if float64(shorter) < copyPasteMinLengthRatio*float64(longer) {
				continue
			}

			normA := normalizeBlock(blocks[i].lines)
			normB := normalizeBlock(blocks[j].lines)
			if normA == normB && len(normA) > copyPasteMinNormalizedLen {
				duplicates++
				duplicatedLines += shorter
			}
		}
	}

	if duplicates == 0 {
		return Result{Name: CopyPaste, Score: 0, Reason: "No duplicated blocks in added code"}
	}

	var score int
	switch {
	case duplicates >= 4:
		score = 85
	case duplicates >= 2 || duplicatedLines >= 15:
		score = 50
	default:
		score = 20
	}

	return Result{
		Name:  CopyPaste,
		Score: score,
		Reason: fmt.Sprintf("%d duplicated blocks (~%d lines) in added code",
			duplicates, duplicatedLines),
	}
}

// addedBlocks groups a file's added lines into contiguous non-blank runs
// of at least copyPasteMinBlockLines lines.
func addedBlocks(f model.ChangedFile) []block {
	var blocks []block
	var current []string

	flush := func() {
		if len(current) >= copyPasteMinBlockLines {
			blocks = append(blocks, block{file: f.Filename, lines: current})
		}
		current = nil
	}

	for _, line := range addedLines(f.Patch) {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// normalizeBlock strips comments and collapses whitespace so that
// cosmetic differences do not hide duplication.
func normalizeBlock(lines []string) string {
	var parts []string
	for _, line := range lines {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		if i := strings.Index(line, "/*"); i >= 0 {
			if j := strings.Index(line[i:], "*/"); j >= 0 {
				line = line[:i] + line[i+j+2:]
			} else {
				line = line[:i]
			}
		}
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}
