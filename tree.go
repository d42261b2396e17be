// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package pak

import (
	"strings"
)

// Node is one file or directory in the tree built from an archive listing.
// Directory nodes have a nil Entry.
type Node struct {
	Name     string
	Entry    *Entry
	Children []*Node
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n.Entry == nil
}

// BuildTree arranges entries into a directory tree by splitting names on
// "/". Children keep the order in which they first appear in entries.
func BuildTree(entries []Entry) *Node {
	root := &Node{}

	for i := range entries {
		entry := entries[i]
		current := root

		parts := strings.Split(entry.Name, "/")
		for _, dir := range parts[:len(parts)-1] {
			current = current.childDir(dir)
		}

		if file := parts[len(parts)-1]; file != "" {
			current.Children = append(current.Children, &Node{Name: file, Entry: &entry})
		}
	}

	return root
}

// childDir returns the directory child called name, creating it if needed.
func (n *Node) childDir(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name && c.IsDir() {
			return c
		}
	}
	child := &Node{Name: name}
	n.Children = append(n.Children, child)
	return child
}

// Find returns the node at the slash-separated path below n.
func (n *Node) Find(path string) (*Node, bool) {
	current := n
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		var next *Node
		for _, c := range current.Children {
			if c.Name == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Walk calls fn for n and every node below it, depth first, with each
// node's depth relative to n. Returning false from fn skips that node's
// children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Filter returns the files below n whose full entry name contains query,
// ignoring case, in depth-first order. When kinds are given only files of
// those kinds are returned. An empty query matches every file.
func (n *Node) Filter(query string, kinds ...Kind) []*Node {
	var results []*Node

	// Explicit stack; deep archives should not grow the goroutine stack
	stack := []*Node{n}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.Entry != nil {
			if ContainsFold(current.Entry.Name, query) && kindAllowed(KindOf(current.Name), kinds) {
				results = append(results, current)
			}
			continue
		}

		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}

	return results
}

// MatchesFilter reports whether the node's own name or entry name contains
// query. A viewer uses it to decide which rows to show.
func (n *Node) MatchesFilter(query string) bool {
	if query == "" || ContainsFold(n.Name, query) {
		return true
	}
	return n.Entry != nil && ContainsFold(n.Entry.Name, query)
}

// AnyChildMatches reports whether a direct child of n matches query.
func (n *Node) AnyChildMatches(query string) bool {
	if query == "" {
		return true
	}
	for _, c := range n.Children {
		if c.MatchesFilter(query) {
			return true
		}
	}
	return false
}

// Entries returns the entries of the file nodes in nodes.
func Entries(nodes []*Node) []Entry {
	entries := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		if n.Entry != nil {
			entries = append(entries, *n.Entry)
		}
	}
	return entries
}

// ContainsFold reports whether s contains substr, ignoring case. An empty
// substr is contained in every string.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func kindAllowed(k Kind, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
