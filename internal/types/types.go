// Package types defines the data structures shared across the digest pipeline.
package types

// FileEntry describes one regular file discovered during traversal.
type FileEntry struct {
	// RelativePath is the slash-separated path relative to the canonical root.
	RelativePath string
	// SizeBytes is the file size reported by the directory entry.
	SizeBytes int64
}

// Classification separates discovered paths into the tree-listing and
// content-listing sets. ContentPaths is always a subset of TreePaths and both
// slices are sorted lexically by their relative-path string.
type Classification struct {
	TreePaths    []string
	ContentPaths []string
}
