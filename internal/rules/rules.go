// Package rules holds the default filter tables and compiles the override
// rule list that governs file discovery.
package rules

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// errorCompileOverridesFormat reports a malformed override pattern.
const errorCompileOverridesFormat = "compiling override patterns: %w"

// defaultIgnoredDirectories lists directory patterns excluded from discovery by default.
var defaultIgnoredDirectories = [...]string{
	".git/", ".github/", ".vscode/", ".idea/", "venv/", ".env/", "node_modules/",
	".next/", "out/", "__pycache__/", "target/", "pkg/", "build/", "dist/", "coverage/",
}

// defaultIgnoredFiles lists file names excluded from discovery by default.
var defaultIgnoredFiles = [...]string{
	"pnpm-lock.yaml", "package-lock.json", "yarn.lock", "Cargo.lock",
	".tsbuildinfo", ".DS_Store", "components.json", "biome.json", "next-env.d.ts",
	".gitignore", ".prettierrc.json", "LICENSE", ".nvmrc", ".npmrc",
	".eslintrc.json", ".prettierignore", "vercel.json",
}

// defaultExcludedExtensions lists lowercase extensions whose content is never inlined.
var defaultExcludedExtensions = [...]string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".svg",
	".woff", ".woff2", ".ttf", ".eot", ".otf",
	".zip", ".gz", ".tar", ".rar", ".7z", ".pack",
	".wasm", ".dll", ".exe", ".so", ".a", ".lib", ".bin", ".o", ".pdf",
}

// DefaultIgnoredDirectories returns a fresh copy of the built-in ignored directory patterns.
func DefaultIgnoredDirectories() []string {
	directories := make([]string, len(defaultIgnoredDirectories))
	copy(directories, defaultIgnoredDirectories[:])
	return directories
}

// DefaultIgnoredFiles returns a fresh copy of the built-in ignored file names.
func DefaultIgnoredFiles() []string {
	files := make([]string, len(defaultIgnoredFiles))
	copy(files, defaultIgnoredFiles[:])
	return files
}

// DefaultExcludedExtensions returns a fresh lookup set of the built-in
// content-excluded extensions, keyed by lowercase extension including the
// leading dot.
func DefaultExcludedExtensions() map[string]struct{} {
	extensions := make(map[string]struct{}, len(defaultExcludedExtensions))
	for _, extension := range defaultExcludedExtensions {
		extensions[extension] = struct{}{}
	}
	return extensions
}

// OverrideSet is the compiled override rule list together with the discovery mode.
type OverrideSet struct {
	matcher     *pathrules.Matcher
	includeMode bool
}

// CompileOverrides builds the ordered override list from the user include
// patterns, the built-in ignored directories and files, the user exclude
// patterns, and the output file name, then compiles it into a matcher.
//
// The matcher applies last-match-wins arbitration, so include rules are
// declared first and every exclude rule after them: an exclude pattern
// (built-in, user-supplied, or the output file name) always takes precedence
// over an include pattern when both match. A malformed pattern fails
// compilation and no partial rule set is returned.
func CompileOverrides(outputFileName string, excludePatterns []string, includePatterns []string) (*OverrideSet, error) {
	var overrideRules []pathrules.Rule
	for _, includePattern := range includePatterns {
		overrideRules = append(overrideRules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: includePattern})
	}
	for _, directoryPattern := range defaultIgnoredDirectories {
		overrideRules = append(overrideRules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: directoryPattern})
	}
	for _, fileName := range defaultIgnoredFiles {
		overrideRules = append(overrideRules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: fileName})
	}
	for _, excludePattern := range excludePatterns {
		overrideRules = append(overrideRules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: excludePattern})
	}
	if outputFileName != "" {
		overrideRules = append(overrideRules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: outputFileName})
	}

	matcher, compileError := pathrules.NewMatcher(overrideRules, pathrules.MatcherOptions{
		DefaultAction: pathrules.ActionInclude,
	})
	if compileError != nil {
		return nil, fmt.Errorf(errorCompileOverridesFormat, compileError)
	}

	return &OverrideSet{
		matcher:     matcher,
		includeMode: len(includePatterns) > 0,
	}, nil
}

// Decide evaluates one slash-separated relative path against the override list.
func (overrideSet *OverrideSet) Decide(relativePath string, isDirectory bool) pathrules.MatchResult {
	return overrideSet.matcher.Decide(relativePath, isDirectory)
}

// IncludeMode reports whether discovery is restricted to paths matching at
// least one user include pattern.
func (overrideSet *OverrideSet) IncludeMode() bool {
	return overrideSet.includeMode
}
