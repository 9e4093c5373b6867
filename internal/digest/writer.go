package digest

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

const (
	// treeSectionLabel heads the tree listing in the digest document.
	treeSectionLabel = "Directory structure:"
	// contentSectionLabel heads the content listing in the digest document.
	contentSectionLabel = "Files Content:"

	// errorLockOutputFormat reports a failure to lock the output destination.
	errorLockOutputFormat = "locking output file %s: %w"
	// errorCreateOutputFormat reports a failure to create the output destination.
	errorCreateOutputFormat = "creating output file %s: %w"
	// errorWriteOutputFormat reports a failure to write the output destination.
	errorWriteOutputFormat = "writing output file %s: %w"
)

// ComposeDocument assembles the final digest text from the rendered tree and
// content sections: header label, tree listing, blank separator, content
// label, then the concatenated content blocks.
func ComposeDocument(treeSection string, contentSection string) string {
	return treeSectionLabel + "\n" + treeSection + "\n\n\n" + contentSectionLabel + "\n\n" + contentSection
}

// WriteDigest creates (overwriting) the output destination and writes the
// composed document under an exclusive file lock, so concurrent invocations
// targeting the same destination cannot interleave. Any failure to lock,
// create, or write the destination is returned as a fatal error.
func WriteDigest(outputPath string, document string) error {
	outputLock := flock.New(outputPath)
	if lockError := outputLock.Lock(); lockError != nil {
		return fmt.Errorf(errorLockOutputFormat, outputPath, lockError)
	}
	defer func() {
		_ = outputLock.Unlock()
	}()

	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}
	_, writeError := outputFile.WriteString(document)
	closeError := outputFile.Close()
	if writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	if closeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, closeError)
	}
	return nil
}
