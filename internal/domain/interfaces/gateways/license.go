package gateways

// VisitFunc is called for every license file found by a TreeWalker
type VisitFunc func(path, name string) error

// TreeWalker enumerates license files below a directory
type TreeWalker interface {
	// Walk visits every matching file below dir, depth-first, in the order
	// the filesystem lists entries. A listing failure stops the walk.
	Walk(dir string, visit VisitFunc) error
}

// AccessChecker validates that a scan root can be read
type AccessChecker interface {
	// CheckRoot fails when root is missing, unreadable or, for a
	// directory, not searchable
	CheckRoot(root string) error
}
