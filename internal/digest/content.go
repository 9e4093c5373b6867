package digest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ingest/internal/utils"
)

const (
	// separatorWidth is the width of the banner separator lines.
	separatorWidth = 60
	// fileHeaderFormat names the file between the banner separators.
	fileHeaderFormat = "FILE: %s\n"
	// readFailurePlaceholderFormat replaces content that could not be read.
	readFailurePlaceholderFormat = "[Could not read file: %v]"
	// binaryContentPlaceholder replaces content that could not be decoded as text.
	binaryContentPlaceholder = "[Could not decode file as text: binary content]"
	// blockTrailer separates consecutive file blocks.
	blockTrailer = "\n\n\n"
)

// RenderContent concatenates the content blocks for the given relative paths,
// in the order provided. Each block carries a banner header naming the file
// followed by its trimmed text. A file that cannot be read or decoded as text
// degrades to a placeholder block; it never fails the rendering.
func RenderContent(rootDirectoryPath string, relativePaths []string) string {
	separatorLine := strings.Repeat("=", separatorWidth)
	var builder strings.Builder
	for _, relativePath := range relativePaths {
		builder.WriteString(separatorLine)
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf(fileHeaderFormat, relativePath))
		builder.WriteString(separatorLine)
		builder.WriteString("\n")

		absolutePath := filepath.Join(rootDirectoryPath, filepath.FromSlash(relativePath))
		builder.WriteString(renderFileBlock(absolutePath))
		builder.WriteString(blockTrailer)
	}
	return builder.String()
}

// renderFileBlock returns the trimmed text of one file, or a placeholder when
// the file cannot be read or does not decode as text.
func renderFileBlock(absolutePath string) string {
	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return fmt.Sprintf(readFailurePlaceholderFormat, readError)
	}
	if utils.IsBinary(fileBytes) {
		return binaryContentPlaceholder
	}
	return strings.TrimSpace(string(fileBytes))
}
