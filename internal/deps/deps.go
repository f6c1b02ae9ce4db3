// Package deps extracts declared package names from project manifests.
// All parsers are tolerant: malformed input yields an empty set rather
// than an error, since a broken manifest in the base branch should never
// abort an evaluation.
package deps

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParsePackageJSON returns the union of keys from the dependencies,
// devDependencies, and peerDependencies groups of a package.json file.
func ParsePackageJSON(content string) map[string]bool {
	out := make(map[string]bool)

	var manifest struct {
		Dependencies     map[string]json.RawMessage `json:"dependencies"`
		DevDependencies  map[string]json.RawMessage `json:"devDependencies"`
		PeerDependencies map[string]json.RawMessage `json:"peerDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return out
	}

	for _, group := range []map[string]json.RawMessage{
		manifest.Dependencies,
		manifest.DevDependencies,
		manifest.PeerDependencies,
	} {
		for name := range group {
			out[name] = true
		}
	}

	return out
}

// ParseRequirementsTxt returns one lowercased package name per
// non-comment, non-option line of a pip requirements file. Version
// specifiers, environment markers, and extras are stripped at the first
// version-operator or bracket character.
func ParseRequirementsTxt(content string) map[string]bool {
	out := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		if cut := strings.IndexAny(line, "=<>!~;[ "); cut >= 0 {
			line = line[:cut]
		}

		name := strings.ToLower(strings.TrimSpace(line))
		if name != "" {
			out[name] = true
		}
	}

	return out
}

var cargoDepLine = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*=`)

// ParseCargoToml returns crate names declared in the [dependencies] and
// [dev-dependencies] tables of a Cargo.toml file, including dotted
// sub-tables such as [dependencies.serde].
func ParseCargoToml(content string) map[string]bool {
	out := make(map[string]bool)
	section := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			// [dependencies.serde] declares serde itself.
			if name, ok := depSubTable(section); ok {
				out[name] = true
			}
			continue
		}

		// Keys inside sub-tables like [dependencies.serde] describe that
		// one crate, not further dependencies.
		if !isDepSection(section) {
			continue
		}

		if m := cargoDepLine.FindStringSubmatch(line); m != nil {
			out[m[1]] = true
		}
	}

	return out
}

func isDepSection(section string) bool {
	return section == "dependencies" || section == "dev-dependencies"
}

func depSubTable(section string) (string, bool) {
	for _, prefix := range []string{"dependencies.", "dev-dependencies."} {
		if rest, ok := strings.CutPrefix(section, prefix); ok && rest != "" && !strings.Contains(rest, ".") {
			return rest, true
		}
	}
	return "", false
}
