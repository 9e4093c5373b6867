// Package walk implements the traversal engine that enumerates candidate
// files beneath the root directory.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/pathrules"

	"github.com/temirov/ingest/internal/rules"
	"github.com/temirov/ingest/internal/types"
)

const (
	// gitIgnoreFileName is the per-directory ignore file honored during traversal.
	gitIgnoreFileName = ".gitignore"
	// hiddenNamePrefix marks entries skipped by the hidden-file convention.
	hiddenNamePrefix = "."

	// errorGitignoreProviderFormat reports a failure to prepare .gitignore evaluation.
	errorGitignoreProviderFormat = "preparing .gitignore rules for %s: %w"
	// errorReadDirectoryFormat reports a failure to read a directory during traversal.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorEntryInformationFormat reports a failure to stat a traversed entry.
	errorEntryInformationFormat = "reading file information for %s: %w"
	// errorIgnoreDecisionFormat reports a failure to evaluate ignore rules for a path.
	errorIgnoreDecisionFormat = "applying ignore rules to %s: %w"
)

// Options configures a Walker.
type Options struct {
	// Overrides is the compiled override rule set; it is the final arbiter
	// for every traversed path.
	Overrides *rules.OverrideSet
	// UseGitignore layers .gitignore files found along the directory chain
	// underneath the overrides.
	UseGitignore bool
}

// Walker enumerates regular files beneath a root directory, applying the
// hidden-entry convention, .gitignore semantics, and the override rule set in
// increasing order of precedence.
type Walker struct {
	overrides *rules.OverrideSet
	gitignore *pathrules.Provider
}

// NewWalker constructs a Walker rooted at rootDirectoryPath.
func NewWalker(rootDirectoryPath string, options Options) (*Walker, error) {
	walker := &Walker{overrides: options.Overrides}
	if options.UseGitignore {
		gitignoreProvider, providerError := pathrules.NewProvider(rootDirectoryPath, pathrules.ProviderOptions{
			RulesFileName: gitIgnoreFileName,
		})
		if providerError != nil {
			return nil, fmt.Errorf(errorGitignoreProviderFormat, rootDirectoryPath, providerError)
		}
		walker.gitignore = gitignoreProvider
	}
	return walker, nil
}

// Walk enumerates every regular file reachable from rootDirectoryPath that
// survives filtering. The returned entries are unordered. Any error while
// reading a directory or an entry aborts the walk; a partial result is never
// returned.
func (walker *Walker) Walk(rootDirectoryPath string) ([]types.FileEntry, error) {
	var discoveredEntries []types.FileEntry
	if walkError := walker.walkDirectory(rootDirectoryPath, "", &discoveredEntries); walkError != nil {
		return nil, walkError
	}
	return discoveredEntries, nil
}

// walkDirectory recursively collects surviving regular files from one directory.
func (walker *Walker) walkDirectory(directoryPath string, relativeDirectory string, discoveredEntries *[]types.FileEntry) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		relativePath := entryName
		if relativeDirectory != "" {
			relativePath = relativeDirectory + "/" + entryName
		}

		isDirectory := directoryEntry.IsDir()
		if !isDirectory && !directoryEntry.Type().IsRegular() {
			continue
		}

		entryIncluded, decisionError := walker.decide(relativePath, entryName, isDirectory)
		if decisionError != nil {
			return decisionError
		}
		if !entryIncluded {
			continue
		}

		if isDirectory {
			childDirectoryPath := filepath.Join(directoryPath, entryName)
			if walkError := walker.walkDirectory(childDirectoryPath, relativePath, discoveredEntries); walkError != nil {
				return walkError
			}
			continue
		}

		entryInformation, informationError := directoryEntry.Info()
		if informationError != nil {
			return fmt.Errorf(errorEntryInformationFormat, relativePath, informationError)
		}
		*discoveredEntries = append(*discoveredEntries, types.FileEntry{
			RelativePath: relativePath,
			SizeBytes:    entryInformation.Size(),
		})
	}
	return nil
}

// decide reports whether the entry at relativePath survives filtering.
//
// Precedence, lowest to highest: hidden-entry convention, .gitignore rules,
// the override list. An explicit override match always decides. Without one,
// the .gitignore decision holds, and otherwise directories are entered while
// files fall back to the discovery mode (excluded when include patterns
// restrict discovery).
func (walker *Walker) decide(relativePath string, entryName string, isDirectory bool) (bool, error) {
	overrideDecision := walker.overrides.Decide(relativePath, isDirectory)

	if strings.HasPrefix(entryName, hiddenNamePrefix) {
		return overrideDecision.Matched && overrideDecision.Included, nil
	}

	if overrideDecision.Matched {
		return overrideDecision.Included, nil
	}

	if walker.gitignore != nil {
		gitignoreDecision, gitignoreError := walker.gitignore.Decide(relativePath, isDirectory)
		if gitignoreError != nil {
			return false, fmt.Errorf(errorIgnoreDecisionFormat, relativePath, gitignoreError)
		}
		if gitignoreDecision.Matched {
			return gitignoreDecision.Included, nil
		}
	}

	if isDirectory {
		return true, nil
	}
	return !walker.overrides.IncludeMode(), nil
}
