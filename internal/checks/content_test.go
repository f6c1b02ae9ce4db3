package checks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/slopguard/slopguard/internal/model"
)

// patchOf builds a minimal unified diff that adds the given lines.
func patchOf(added ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", len(added))
	for _, line := range added {
		b.WriteString("+" + line + "\n")
	}
	return b.String()
}

func TestCheckPlaceholderNoChanges(t *testing.T) {
	got := CheckPlaceholder(nil)
	if got.Score != 0 || got.Reason != "No code changes to analyze" {
		t.Errorf("expected score 0 with no-changes reason, got %d %q", got.Score, got.Reason)
	}
}

func TestCheckPlaceholderCleanCode(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/pool.js",
		Patch: patchOf(
			"function acquire(pool) {",
			"  const conn = pool.idle.pop()",
			"  if (conn) return conn",
			"  return createConnection(pool.options)",
			"}",
		),
	}}
	got := CheckPlaceholder(files)
	if got.Score != 0 {
		t.Errorf("expected score 0 for clean code, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckPlaceholderStubHeavy(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/handlers.py",
		Patch: patchOf(
			"def create_user(request):",
			"    raise NotImplementedError",
			"def delete_user(request):",
			"    raise NotImplementedError",
			"def update_user(request):",
			"    pass",
			"def list_users(request):",
			"    pass",
		),
	}}
	// 4 issues in 8 lines, rate 0.5
	got := CheckPlaceholder(files)
	if got.Score != 95 {
		t.Errorf("expected score 95 for stub-heavy diff, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckPlaceholderLowRate(t *testing.T) {
	lines := make([]string, 0, 101)
	for i := 0; i < 100; i++ {
		lines = append(lines, "    count += increment(step)")
	}
	lines = append(lines, "    // TODO")
	files := []model.ChangedFile{{Filename: "src/calc.js", Patch: patchOf(lines...)}}

	// 1 issue in 101 lines, rate just under 0.02
	got := CheckPlaceholder(files)
	if got.Score != 15 {
		t.Errorf("expected score 15 for low rate, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckPlaceholderIdentifiers(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/demo.js",
		Patch: patchOf(
			"const foo = getValue()",
			"const bar = transform(foo)",
			"const baz = persist(bar)",
			"return baz",
		),
	}}
	got := CheckPlaceholder(files)
	if got.Score == 0 {
		t.Errorf("expected throwaway identifiers to score, got 0 (%s)", got.Reason)
	}
	if !strings.Contains(got.Reason, "placeholder identifiers") {
		t.Errorf("expected identifier finding in reason, got %q", got.Reason)
	}
}

func TestCheckHallucinatedImportNoImports(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/util.js",
		Patch:    patchOf("const total = items.length"),
	}}
	got := CheckHallucinatedImport(files, nil)
	if got.Score != 0 {
		t.Errorf("expected score 0 with no imports, got %d", got.Score)
	}
}

func TestCheckHallucinatedImportAllKnown(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/app.js",
		Patch: patchOf(
			"import express from 'express'",
			"const fs = require('fs')",
			"import { get } from 'lodash/object'",
			"import './styles.css'",
		),
	}}
	deps := map[string]bool{"express": true, "lodash": true}
	got := CheckHallucinatedImport(files, deps)
	if got.Score != 0 {
		t.Errorf("expected score 0 when all imports resolve, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckHallucinatedImportSingleSuspicious(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/app.js",
		Patch: patchOf(
			"import express from 'express'",
			"import helmet from 'helmet'",
			"import cors from 'cors'",
			"import morgan from 'morgan'",
			"import compression from 'compression'",
			"import superutils from 'superutils-pro'",
		),
	}}
	deps := map[string]bool{
		"express": true, "helmet": true, "cors": true,
		"morgan": true, "compression": true,
	}
	// 1 of 6 suspicious, rate under 0.2
	got := CheckHallucinatedImport(files, deps)
	if got.Score != 25 {
		t.Errorf("expected score 25, got %d (%s)", got.Score, got.Reason)
	}
	if !strings.Contains(got.Reason, "superutils-pro") {
		t.Errorf("expected suspicious package named in reason, got %q", got.Reason)
	}
}

func TestCheckHallucinatedImportMostlySuspicious(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/main.py",
		Patch: patchOf(
			"import autoflow",
			"from magicorm import Model",
			"import json",
		),
	}}
	// 2 of 3 suspicious
	got := CheckHallucinatedImport(files, map[string]bool{})
	if got.Score != 90 {
		t.Errorf("expected score 90, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckHallucinatedImportScopedPackage(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/api.ts",
		Patch:    patchOf("import { Octokit } from '@octokit/rest'"),
	}}
	got := CheckHallucinatedImport(files, map[string]bool{"@octokit/rest": true})
	if got.Score != 0 {
		t.Errorf("expected scoped package to resolve, got %d (%s)", got.Score, got.Reason)
	}
}

func TestExtractImport(t *testing.T) {
	tests := []struct {
		line     string
		wantSpec string
		wantOK   bool
	}{
		{"import express from 'express'", "express", true},
		{`const x = require("lodash")`, "lodash", true},
		{"import './local.css'", "", false},
		{"import '/abs/path'", "", false},
		{"import os", "os", true},
		{"from collections import defaultdict", "collections", true},
		{"return value + 1", "", false},
	}

	for _, tt := range tests {
		spec, ok := extractImport(tt.line)
		if ok != tt.wantOK || spec != tt.wantSpec {
			t.Errorf("extractImport(%q) = %q, %v; want %q, %v", tt.line, spec, ok, tt.wantSpec, tt.wantOK)
		}
	}
}

func TestBasePackage(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"express", "express"},
		{"lodash/object", "lodash"},
		{"@scope/pkg", "@scope/pkg"},
		{"@scope/pkg/sub", "@scope/pkg"},
		{"os.path", "os"},
	}

	for _, tt := range tests {
		if got := basePackage(tt.spec); got != tt.want {
			t.Errorf("basePackage(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestCheckDocstringInflationTooFewLines(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/a.js",
		Patch:    patchOf("const a = 1", "const b = 2"),
	}}
	got := CheckDocstringInflation(files)
	if got.Score != 0 || !strings.Contains(got.Reason, "Too few") {
		t.Errorf("expected too-few-lines result, got %d %q", got.Score, got.Reason)
	}
}

func TestCheckDocstringInflation(t *testing.T) {
	code := "value = process(input)"
	comment := "// explains what the next line does"

	tests := []struct {
		name      string
		comments  int
		codeLines int
		wantScore int
	}{
		{"normal ratio", 3, 9, 0},     // 25%
		{"mildly padded", 5, 7, 15},   // ~42%
		{"heavily padded", 6, 6, 45},  // 50%
		{"mostly comments", 8, 4, 75}, // ~67%
		{"nearly all comments", 11, 1, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []string
			for i := 0; i < tt.comments; i++ {
				lines = append(lines, comment)
			}
			for i := 0; i < tt.codeLines; i++ {
				lines = append(lines, code)
			}
			files := []model.ChangedFile{{Filename: "src/a.js", Patch: patchOf(lines...)}}
			got := CheckDocstringInflation(files)
			if got.Score != tt.wantScore {
				t.Errorf("expected score %d, got %d (%s)", tt.wantScore, got.Score, got.Reason)
			}
		})
	}
}

func TestCheckCopyPasteNoDuplication(t *testing.T) {
	files := []model.ChangedFile{{
		Filename: "src/a.js",
		Patch: patchOf(
			"function first(list) {",
			"  return list.filter(isActive)",
			"  .map(toSummary)",
			"}",
		),
	}}
	got := CheckCopyPaste(files)
	if got.Score != 0 {
		t.Errorf("expected score 0 without duplication, got %d (%s)", got.Score, got.Reason)
	}
}

var duplicatedBlock = []string{
	"function validateRequest(request, schema) {",
	"  const errors = collectSchemaErrors(request.body, schema)",
	"  if (errors.length > 0) throw new ValidationError(errors)",
	"  return normalizePayload(request.body, schema)",
	"}",
}

func TestCheckCopyPasteSingleDuplicate(t *testing.T) {
	files := []model.ChangedFile{
		{Filename: "src/users.js", Patch: patchOf(duplicatedBlock...)},
		{Filename: "src/orders.js", Patch: patchOf(duplicatedBlock...)},
	}
	got := CheckCopyPaste(files)
	if got.Score != 20 {
		t.Errorf("expected score 20 for one duplicated block, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckCopyPasteManyDuplicates(t *testing.T) {
	files := []model.ChangedFile{
		{Filename: "src/a.js", Patch: patchOf(duplicatedBlock...)},
		{Filename: "src/b.js", Patch: patchOf(duplicatedBlock...)},
		{Filename: "src/c.js", Patch: patchOf(duplicatedBlock...)},
		{Filename: "src/d.js", Patch: patchOf(duplicatedBlock...)},
	}
	// four identical blocks form six duplicate pairs
	got := CheckCopyPaste(files)
	if got.Score != 85 {
		t.Errorf("expected score 85, got %d (%s)", got.Score, got.Reason)
	}
}

func TestCheckCopyPasteIgnoresCommentDifferences(t *testing.T) {
	withComment := append([]string{}, duplicatedBlock...)
	withComment[1] = withComment[1] + " // reused from users"

	files := []model.ChangedFile{
		{Filename: "src/a.js", Patch: patchOf(duplicatedBlock...)},
		{Filename: "src/b.js", Patch: patchOf(withComment...)},
	}
	got := CheckCopyPaste(files)
	if got.Score == 0 {
		t.Error("comment-only differences should not hide duplication")
	}
}

func TestAddedBlocksSplitsOnBlankLines(t *testing.T) {
	f := model.ChangedFile{
		Filename: "src/a.js",
		Patch: patchOf(
			"one()", "two()", "three()", "four()",
			"",
			"five()", "six()",
		),
	}
	blocks := addedBlocks(f)
	// the second run is under the minimum block size
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].lines) != 4 {
		t.Errorf("expected 4 lines in block, got %d", len(blocks[0].lines))
	}
}
