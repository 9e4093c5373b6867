package walk_test

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/temirov/ingest/internal/rules"
	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/walk"
)

// outputFileName is the digest destination used across tests.
const outputFileName = "digest.txt"

// writeFixtureFile creates one file with parent directories inside the fixture root.
func writeFixtureFile(testingInstance *testing.T, rootDirectory string, relativePath string, content string) {
	testingInstance.Helper()
	absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
	if directoryError := os.MkdirAll(filepath.Dir(absolutePath), 0o755); directoryError != nil {
		testingInstance.Fatalf("creating fixture directory for %s: %v", relativePath, directoryError)
	}
	if writeError := os.WriteFile(absolutePath, []byte(content), 0o644); writeError != nil {
		testingInstance.Fatalf("writing fixture file %s: %v", relativePath, writeError)
	}
}

// walkFixture runs a walker over the fixture root and returns sorted relative paths.
func walkFixture(testingInstance *testing.T, rootDirectory string, options walk.Options) []string {
	testingInstance.Helper()
	walker, walkerError := walk.NewWalker(rootDirectory, options)
	if walkerError != nil {
		testingInstance.Fatalf("creating walker: %v", walkerError)
	}
	discoveredEntries, walkError := walker.Walk(rootDirectory)
	if walkError != nil {
		testingInstance.Fatalf("walking fixture: %v", walkError)
	}
	relativePaths := make([]string, 0, len(discoveredEntries))
	for _, fileEntry := range discoveredEntries {
		relativePaths = append(relativePaths, fileEntry.RelativePath)
	}
	sort.Strings(relativePaths)
	return relativePaths
}

// compileOverrides builds an override set for tests.
func compileOverrides(testingInstance *testing.T, excludePatterns []string, includePatterns []string) *rules.OverrideSet {
	testingInstance.Helper()
	overrideSet, compileError := rules.CompileOverrides(outputFileName, excludePatterns, includePatterns)
	if compileError != nil {
		testingInstance.Fatalf("compiling overrides: %v", compileError)
	}
	return overrideSet
}

// assertEqualPaths compares discovered paths against the expectation.
func assertEqualPaths(testingInstance *testing.T, expected []string, actual []string) {
	testingInstance.Helper()
	if len(actual) != len(expected) {
		testingInstance.Fatalf("expected paths %v, got %v", expected, actual)
	}
	for position, expectedPath := range expected {
		if actual[position] != expectedPath {
			testingInstance.Fatalf("expected paths %v, got %v", expected, actual)
		}
	}
}

// TestWalkAppliesDefaultExclusions verifies that built-in ignored directories,
// built-in ignored files, the output file, and hidden entries never surface.
func TestWalkAppliesDefaultExclusions(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, "main.go", "package main")
	writeFixtureFile(testingInstance, rootDirectory, "node_modules/lib/index.js", "module.exports = {}")
	writeFixtureFile(testingInstance, rootDirectory, "yarn.lock", "lockfile")
	writeFixtureFile(testingInstance, rootDirectory, ".hidden", "secret")
	writeFixtureFile(testingInstance, rootDirectory, ".config/settings.json", "{}")
	writeFixtureFile(testingInstance, rootDirectory, outputFileName, "previous digest")

	discoveredPaths := walkFixture(testingInstance, rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, nil),
		UseGitignore: true,
	})

	assertEqualPaths(testingInstance, []string{"main.go"}, discoveredPaths)
}

// TestWalkHonorsGitignore verifies that .gitignore files along the directory
// chain exclude matching entries, including negated re-inclusion.
func TestWalkHonorsGitignore(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, ".gitignore", "*.log\n!keep.log\ngenerated/\n")
	writeFixtureFile(testingInstance, rootDirectory, "app.go", "package app")
	writeFixtureFile(testingInstance, rootDirectory, "debug.log", "noise")
	writeFixtureFile(testingInstance, rootDirectory, "keep.log", "kept")
	writeFixtureFile(testingInstance, rootDirectory, "generated/out.go", "package out")

	discoveredPaths := walkFixture(testingInstance, rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, nil),
		UseGitignore: true,
	})

	assertEqualPaths(testingInstance, []string{"app.go", "keep.log"}, discoveredPaths)
}

// TestWalkDisabledGitignore verifies that gitignore semantics can be switched off.
func TestWalkDisabledGitignore(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, ".gitignore", "*.log\n")
	writeFixtureFile(testingInstance, rootDirectory, "debug.log", "noise")

	discoveredPaths := walkFixture(testingInstance, rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, nil),
		UseGitignore: false,
	})

	assertEqualPaths(testingInstance, []string{"debug.log"}, discoveredPaths)
}

// TestWalkIncludeMode verifies that include patterns restrict discovery to
// matching files while still descending into unmatched directories.
func TestWalkIncludeMode(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, "a.rs", "fn main() {}")
	writeFixtureFile(testingInstance, rootDirectory, "b.txt", "notes")
	writeFixtureFile(testingInstance, rootDirectory, "src/deep/lib.rs", "pub fn lib() {}")
	writeFixtureFile(testingInstance, rootDirectory, "src/deep/readme.md", "# readme")

	discoveredPaths := walkFixture(testingInstance, rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, []string{"*.rs"}),
		UseGitignore: true,
	})

	assertEqualPaths(testingInstance, []string{"a.rs", "src/deep/lib.rs"}, discoveredPaths)
}

// TestWalkUserExcludePrunesDirectory verifies that an explicit exclude pattern
// prunes a whole directory subtree.
func TestWalkUserExcludePrunesDirectory(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, "kept/file.go", "package kept")
	writeFixtureFile(testingInstance, rootDirectory, "vendor/dep/file.go", "package dep")

	discoveredPaths := walkFixture(testingInstance, rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, []string{"vendor/"}, nil),
		UseGitignore: true,
	})

	assertEqualPaths(testingInstance, []string{"kept/file.go"}, discoveredPaths)
}

// TestWalkOverrideBeatsGitignore verifies that an explicit include override is
// the final arbiter over .gitignore exclusions.
func TestWalkOverrideBeatsGitignore(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, ".gitignore", "*.gen.go\n")
	writeFixtureFile(testingInstance, rootDirectory, "api.gen.go", "package api")
	writeFixtureFile(testingInstance, rootDirectory, "api.go", "package api")

	discoveredPaths := walkFixture(testingInstance, rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, []string{"*.gen.go", "*.go"}),
		UseGitignore: true,
	})

	assertEqualPaths(testingInstance, []string{"api.gen.go", "api.go"}, discoveredPaths)
}

// TestWalkAbortsOnUnreadableDirectory verifies the fail-fast policy: an
// unreadable directory aborts the whole walk and no partial result is returned.
func TestWalkAbortsOnUnreadableDirectory(testingInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testingInstance.Skip("permission bits are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		testingInstance.Skip("permission bits are not enforced for root")
	}

	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, "visible.go", "package visible")
	writeFixtureFile(testingInstance, rootDirectory, "locked/inner.go", "package inner")

	lockedDirectory := filepath.Join(rootDirectory, "locked")
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingInstance.Fatalf("revoking directory permissions: %v", chmodError)
	}
	testingInstance.Cleanup(func() {
		_ = os.Chmod(lockedDirectory, 0o755)
	})

	walker, walkerError := walk.NewWalker(rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, nil),
		UseGitignore: true,
	})
	if walkerError != nil {
		testingInstance.Fatalf("creating walker: %v", walkerError)
	}

	discoveredEntries, walkError := walker.Walk(rootDirectory)
	if walkError == nil {
		testingInstance.Fatal("expected a traversal error for an unreadable directory")
	}
	if len(discoveredEntries) != 0 {
		testingInstance.Errorf("expected no partial result, got %v", discoveredEntries)
	}
}

// TestWalkReportsSizes verifies that discovered entries carry the file size.
func TestWalkReportsSizes(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeFixtureFile(testingInstance, rootDirectory, "notes.txt", "0123456789")

	walker, walkerError := walk.NewWalker(rootDirectory, walk.Options{
		Overrides:    compileOverrides(testingInstance, nil, nil),
		UseGitignore: true,
	})
	if walkerError != nil {
		testingInstance.Fatalf("creating walker: %v", walkerError)
	}
	discoveredEntries, walkError := walker.Walk(rootDirectory)
	if walkError != nil {
		testingInstance.Fatalf("walking fixture: %v", walkError)
	}
	expectedEntry := types.FileEntry{RelativePath: "notes.txt", SizeBytes: 10}
	if len(discoveredEntries) != 1 || discoveredEntries[0] != expectedEntry {
		testingInstance.Fatalf("expected %v, got %v", expectedEntry, discoveredEntries)
	}
}
