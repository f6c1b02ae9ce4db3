package checks

import "regexp"

// The pattern lists below are data tables, kept apart from the check
// logic so they can be extended and unit-tested on their own.

// genericTitlePatterns match titles that say nothing about the change.
// Matched against the lowercased, trimmed title.
var genericTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^fix(ed|es)?( bugs?)?$`),
	regexp.MustCompile(`^bug ?fix(es)?$`),
	regexp.MustCompile(`^update(s|d)?( code)?$`),
	regexp.MustCompile(`^update (readme|docs)(\.md)?$`),
	regexp.MustCompile(`^refactor(ing)?$`),
	regexp.MustCompile(`^clean ?up$`),
	regexp.MustCompile(`^code clean ?up$`),
	regexp.MustCompile(`^minor (changes?|fix(es)?|updates?)$`),
	regexp.MustCompile(`^small (changes?|fix(es)?)$`),
	regexp.MustCompile(`^improve(ments?)?$`),
	regexp.MustCompile(`^improve code( quality)?$`),
	regexp.MustCompile(`^enhancements?$`),
	regexp.MustCompile(`^optimizations?$`),
	regexp.MustCompile(`^optimize code$`),
	regexp.MustCompile(`^changes$`),
	regexp.MustCompile(`^patch$`),
	regexp.MustCompile(`^misc(ellaneous)?( changes)?$`),
	regexp.MustCompile(`^typo( fix(es)?)?$`),
	regexp.MustCompile(`^fix typos?$`),
	regexp.MustCompile(`^wip$`),
}

// templatedBodyPatterns match boilerplate phrasing typical of generated
// PR descriptions.
var templatedBodyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)this (pr|pull request) (introduces|enhances|aims to)`),
	regexp.MustCompile(`(?i)in this (pr|pull request),? (i|we) have`),
	regexp.MustCompile(`(?i)comprehensive (improvements|changes|updates|refactoring)`),
	regexp.MustCompile(`(?i)(improves?|enhances?) the overall`),
	regexp.MustCompile(`(?i)(enhanced|improved) (readability|maintainability|code quality)`),
	regexp.MustCompile(`(?i)following best practices`),
	regexp.MustCompile(`(?i)robust and (scalable|maintainable|efficient)`),
	regexp.MustCompile(`(?i)seamless(ly)? integrat`),
	regexp.MustCompile(`(?i)as an ai`),
}

// placeholderIdentifiers matches throwaway identifier names on word
// boundaries, case-insensitively.
var placeholderIdentifiers = regexp.MustCompile(
	`(?i)\b(foo|bar|baz|temp\d*|test\d+|xxx|yyy|zzz|placeholder|dummy|sample|example\d*)\b`)

// placeholderLinePatterns each flag a single added line as stub content.
var placeholderLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\s*\}`),                           // empty braces
	regexp.MustCompile(`\{\s*(//[^}]*|/\*[^}]*\*/)\s*\}`),   // braces holding only a comment
	regexp.MustCompile(`(?i)//\s*todo\s*$`),                 // trailing TODO with nothing after
	regexp.MustCompile(`(?i)throw new Error\(['"](not implemented|todo)`),
	regexp.MustCompile(`(?i)raise NotImplementedError`),
	regexp.MustCompile(`(?i)panic\(\s*"(not implemented|todo)`),
	regexp.MustCompile(`\b(todo!|unimplemented!)\(\)`),
}

// importPatterns extract the module specifier from added import lines.
// The first submatch is always the specifier.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bfrom\s+['"]([^'"]+)['"]`),          // import x from '...'
	regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`), // require('...')
	regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`),       // side-effect import '...'
	regexp.MustCompile(`^\s*import\s+([A-Za-z_][\w.]*)`),      // import x / import x.y
	regexp.MustCompile(`^\s*from\s+([A-Za-z_][\w.]*)\s+import\b`),
}

// builtinModules are platform and standard-library names that never need
// a manifest entry. Covers the Node.js runtime and the common Python
// standard library.
var builtinModules = map[string]bool{
	// Node.js
	"assert": true, "buffer": true, "child_process": true, "cluster": true,
	"crypto": true, "dns": true, "events": true, "fs": true, "http": true,
	"https": true, "net": true, "os": true, "path": true, "process": true,
	"querystring": true, "readline": true, "stream": true, "tls": true,
	"url": true, "util": true, "zlib": true, "worker_threads": true,
	"node": true,
	// Python
	"abc": true, "argparse": true, "asyncio": true, "collections": true,
	"contextlib": true, "copy": true, "dataclasses": true, "datetime": true,
	"enum": true, "functools": true, "hashlib": true, "io": true,
	"itertools": true, "json": true, "logging": true, "math": true,
	"pathlib": true, "random": true, "re": true, "shutil": true,
	"string": true, "subprocess": true, "sys": true, "tempfile": true,
	"threading": true, "time": true, "typing": true, "unittest": true,
	"urllib": true, "uuid": true, "warnings": true,
}

// commentLinePrefixes classify an added line as commentary. The bare "*"
// covers doc-comment continuation lines.
var commentLinePrefixes = []string{"//", "#", "--", ";", "/*", "*/", "*"}

// substantiveTitleKeywords flags titles that claim real work, used by the
// formatting-only check to distinguish mislabeled cosmetic diffs.
var substantiveTitleKeywords = regexp.MustCompile(
	`(?i)\b(fix|feat|add|implement|resolve|bug|issue|feature|enhance|refactor|optimize)\b`)

// testFileMarkers, configFileMarkers, and docFileMarkers indicate files
// that legitimately accompany changes across many directories.
var (
	testFileMarkers   = []string{"test", "spec", "__tests__"}
	configFileMarkers = []string{"config", "package.json", ".yml", ".yaml", ".toml"}
	docFileMarkers    = []string{"readme", "doc", ".md"}
)
