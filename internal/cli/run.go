package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/digest"
	"github.com/temirov/ingest/internal/rules"
	"github.com/temirov/ingest/internal/tokenizer"
	"github.com/temirov/ingest/internal/walk"
)

const (
	// kibibyte converts the --max-size flag value to bytes.
	kibibyte = 1024

	// errorResolveRootFormat reports a root path that cannot be found or accessed.
	errorResolveRootFormat = "finding or accessing path %s: %w"
	// errorRootNotDirectoryFormat reports a root path that is not a directory.
	errorRootNotDirectoryFormat = "provided path %s is not a directory"
	// errorNegativeMaxSizeFormat reports a negative content-size cutoff.
	errorNegativeMaxSizeFormat = "invalid --max-size value %d: must not be negative"
	// errorTraversalFormat reports a fatal traversal failure.
	errorTraversalFormat = "discovering files under %s: %w"

	// discoveringFilesMessage announces the traversal phase.
	discoveringFilesMessage = "Discovering files..."
	// discoveredCountsFormat summarizes the classification outcome.
	discoveredCountsFormat = "Found %d files for tree, %d files for content."
	// noFilesMessage announces an empty result; no output file is produced.
	noFilesMessage = "No files to include based on current criteria."
	// generatingTreeMessage announces the tree rendering phase.
	generatingTreeMessage = "Generating directory tree..."
	// readingFilesFormat announces the content rendering phase.
	readingFilesFormat = "Reading and concatenating %d files..."
	// writingOutputFormat announces the write phase.
	writingOutputFormat = "Writing output to %s..."
	// completionFormat announces the digest destination and size.
	completionFormat = "All done. Digest saved to %s (%d bytes)."
	// estimatedTokensFormat reports the estimated token count of the digest.
	estimatedTokensFormat = "Estimated tokens: %d (%s)"
	// clipboardCopiedMessage confirms the digest was copied to the clipboard.
	clipboardCopiedMessage = "Digest copied to clipboard."
	// warningTokenizerFormat reports a non-fatal tokenizer failure.
	warningTokenizerFormat = "failed to estimate tokens: %v"
	// warningClipboardFormat reports a non-fatal clipboard failure.
	warningClipboardFormat = "failed to copy digest to clipboard: %v"
)

// runIngest executes the digest pipeline once: resolve the root, compile the
// filter rules, traverse, classify, render, and write. Configuration and
// traversal errors are fatal; per-file content failures degrade inside the
// content renderer.
func runIngest(options ingestOptions, logger *zap.Logger) error {
	if options.maxSizeKiB < 0 {
		return fmt.Errorf(errorNegativeMaxSizeFormat, options.maxSizeKiB)
	}

	rootDirectoryPath, rootError := resolveRootDirectory(options.rootPath)
	if rootError != nil {
		return rootError
	}

	overrideSet, overridesError := rules.CompileOverrides(options.outputFileName, options.excludePatterns, options.includePatterns)
	if overridesError != nil {
		return overridesError
	}

	walker, walkerError := walk.NewWalker(rootDirectoryPath, walk.Options{
		Overrides:    overrideSet,
		UseGitignore: !options.disableGitignore,
	})
	if walkerError != nil {
		return walkerError
	}

	logger.Info(discoveringFilesMessage)
	discoveredEntries, traversalError := walker.Walk(rootDirectoryPath)
	if traversalError != nil {
		return fmt.Errorf(errorTraversalFormat, rootDirectoryPath, traversalError)
	}

	classification := digest.Classify(discoveredEntries, options.maxSizeKiB*kibibyte, rules.DefaultExcludedExtensions(), logger)
	logger.Sugar().Infof(discoveredCountsFormat, len(classification.TreePaths), len(classification.ContentPaths))

	if len(classification.TreePaths) == 0 {
		logger.Info(noFilesMessage)
		return nil
	}

	logger.Info(generatingTreeMessage)
	treeSection := digest.RenderTree(filepath.Base(rootDirectoryPath), classification.TreePaths)

	logger.Sugar().Infof(readingFilesFormat, len(classification.ContentPaths))
	contentSection := digest.RenderContent(rootDirectoryPath, classification.ContentPaths)

	document := digest.ComposeDocument(treeSection, contentSection)

	logger.Sugar().Infof(writingOutputFormat, options.outputFileName)
	if writeError := digest.WriteDigest(options.outputFileName, document); writeError != nil {
		return writeError
	}

	if options.countTokens {
		reportEstimatedTokens(document, options.tokenizerModel, logger)
	}
	if options.copyToClipboard {
		copyDigestToClipboard(document, logger)
	}

	logger.Sugar().Infof(completionFormat, options.outputFileName, len(document))
	return nil
}

// resolveRootDirectory canonicalizes the requested root path and verifies it
// is a directory.
func resolveRootDirectory(rootPath string) (string, error) {
	absoluteRootPath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootPath, absoluteError)
	}
	canonicalRootPath, resolveError := filepath.EvalSymlinks(absoluteRootPath)
	if resolveError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootPath, resolveError)
	}
	rootInformation, statError := os.Stat(canonicalRootPath)
	if statError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootPath, statError)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, canonicalRootPath)
	}
	return canonicalRootPath, nil
}

// reportEstimatedTokens logs the estimated token count of the digest text.
// Tokenizer failures are warnings, never fatal.
func reportEstimatedTokens(document string, tokenizerModel string, logger *zap.Logger) {
	tokenCounter, counterError := tokenizer.NewCounter(tokenizerModel)
	if counterError != nil {
		logger.Sugar().Warnf(warningTokenizerFormat, counterError)
		return
	}
	tokenCount, countError := tokenCounter.CountString(document)
	if countError != nil {
		logger.Sugar().Warnf(warningTokenizerFormat, countError)
		return
	}
	logger.Sugar().Infof(estimatedTokensFormat, tokenCount, tokenCounter.Name())
}

// copyDigestToClipboard copies the digest text to the system clipboard.
// Clipboard failures are warnings, never fatal.
func copyDigestToClipboard(document string, logger *zap.Logger) {
	if copyError := clipboard.WriteAll(document); copyError != nil {
		logger.Sugar().Warnf(warningClipboardFormat, copyError)
		return
	}
	logger.Info(clipboardCopiedMessage)
}
