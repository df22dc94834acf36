// Package label defines the label entity that can be attached to todos.
package label

// Resource names the entity in typed domain errors.
const Resource = "label"

// Label is a named tag. Names are unique across all labels.
type Label struct {
	ID   int64
	Name string
}

// Create is the input for a new label.
type Create struct {
	Name string
}
