// Package digest classifies discovered files and renders the digest document.
package digest

import (
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/types"
)

const (
	// kibibyte converts the content-size cutoff to the KiB vocabulary of the notices.
	kibibyte = 1024

	// noticeExcludedExtensionFormat reports a file whose content is skipped by extension.
	noticeExcludedExtensionFormat = "Skipping content for excluded extension: %s"
	// noticeLargeFileFormat reports a file whose content is skipped by size.
	noticeLargeFileFormat = "Skipping content for large file: %s (>%dKiB)"
)

// Classify splits discovered entries into the tree-listing and content-listing
// path sets. Every entry is tree-listed; an entry is content-listed unless its
// lowercase extension is in excludedExtensions or its size strictly exceeds
// maxSizeBytes. Skip notices are emitted through the logger. Both returned
// slices are sorted lexically.
func Classify(discoveredEntries []types.FileEntry, maxSizeBytes int64, excludedExtensions map[string]struct{}, logger *zap.Logger) types.Classification {
	var classification types.Classification
	for _, fileEntry := range discoveredEntries {
		classification.TreePaths = append(classification.TreePaths, fileEntry.RelativePath)

		fileExtension := lowercaseExtension(fileEntry.RelativePath)
		if _, extensionExcluded := excludedExtensions[fileExtension]; extensionExcluded {
			logger.Sugar().Infof(noticeExcludedExtensionFormat, fileEntry.RelativePath)
			continue
		}
		if fileEntry.SizeBytes > maxSizeBytes {
			logger.Sugar().Infof(noticeLargeFileFormat, fileEntry.RelativePath, maxSizeBytes/kibibyte)
			continue
		}
		classification.ContentPaths = append(classification.ContentPaths, fileEntry.RelativePath)
	}
	sort.Strings(classification.TreePaths)
	sort.Strings(classification.ContentPaths)
	return classification
}

// lowercaseExtension returns the lowercased extension of the path's base name,
// including the leading dot. Dotfiles such as ".env" and names without a dot
// have no extension and return the empty string.
func lowercaseExtension(relativePath string) string {
	baseName := path.Base(relativePath)
	extension := path.Ext(baseName)
	if extension == "" || extension == baseName {
		return ""
	}
	return strings.ToLower(extension)
}
