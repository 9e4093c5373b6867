package digest

import (
	"sort"
	"strings"
)

const (
	// middleConnector prefixes every sibling except the last at a level.
	middleConnector = "├── "
	// lastConnector prefixes the last sibling at a level.
	lastConnector = "└── "
	// middleContinuation extends the prefix beneath a non-last sibling.
	middleContinuation = "│   "
	// lastContinuation extends the prefix beneath the last sibling.
	lastContinuation = "    "
	// directorySuffix marks the root entry as a directory.
	directorySuffix = "/"
)

// treeNode represents one path segment in the rendered hierarchy.
type treeNode struct {
	children map[string]*treeNode
}

// newTreeNode constructs an empty tree node.
func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

// buildTree folds slash-separated relative paths into a nested node structure
// keyed by path segment.
func buildTree(relativePaths []string) *treeNode {
	rootNode := newTreeNode()
	for _, relativePath := range relativePaths {
		currentNode := rootNode
		for _, pathSegment := range strings.Split(relativePath, "/") {
			childNode, childExists := currentNode.children[pathSegment]
			if !childExists {
				childNode = newTreeNode()
				currentNode.children[pathSegment] = childNode
			}
			currentNode = childNode
		}
	}
	return rootNode
}

// renderTreeNode appends the rendered subtree of node to builder. It is a pure
// function of the node and the accumulated prefix; children are visited in
// lexical segment order.
func renderTreeNode(node *treeNode, prefix string, builder *strings.Builder) {
	segmentNames := make([]string, 0, len(node.children))
	for segmentName := range node.children {
		segmentNames = append(segmentNames, segmentName)
	}
	sort.Strings(segmentNames)

	for segmentIndex, segmentName := range segmentNames {
		isLastSibling := segmentIndex == len(segmentNames)-1
		connector := middleConnector
		continuation := middleContinuation
		if isLastSibling {
			connector = lastConnector
			continuation = lastContinuation
		}
		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(segmentName)
		builder.WriteString("\n")

		childNode := node.children[segmentName]
		if len(childNode.children) > 0 {
			renderTreeNode(childNode, prefix+continuation, builder)
		}
	}
}

// RenderTree renders the relative paths as a box-drawing tree rooted at a
// single top-level entry named rootName. Identical path sets render
// identically regardless of input order.
func RenderTree(rootName string, relativePaths []string) string {
	var builder strings.Builder
	builder.WriteString(lastConnector)
	builder.WriteString(rootName)
	builder.WriteString(directorySuffix)
	builder.WriteString("\n")
	renderTreeNode(buildTree(relativePaths), lastContinuation, &builder)
	return builder.String()
}
