// Package todo defines the todo entity and the inputs used to create and
// modify it.
package todo

import "github.com/jsamuelsen11/todo-service/internal/domain/label"

// Resource names the entity in typed domain errors.
const Resource = "todo"

// Todo is a single task. Labels keep the order in which they were attached.
type Todo struct {
	ID        int64
	Text      string
	Completed bool
	Labels    []label.Label
}

// Create is the input for a new todo. Completed always starts false.
type Create struct {
	Text string
}

// Update is a partial modification. A nil field leaves the stored value
// unchanged. A nil Labels slice leaves the labels alone; a non-nil empty
// slice clears them.
type Update struct {
	Text      *string
	Completed *bool
	Labels    []int64
}

// HasLabels reports whether the update replaces the label set.
func (u *Update) HasLabels() bool {
	return u.Labels != nil
}

// LabelIDs returns the requested label ids with duplicates removed, keeping
// the first occurrence of each.
func (u *Update) LabelIDs() []int64 {
	if u.Labels == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(u.Labels))
	ids := make([]int64, 0, len(u.Labels))
	for _, id := range u.Labels {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
