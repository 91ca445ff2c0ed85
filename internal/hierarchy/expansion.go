package hierarchy

import (
	"sort"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Expansion is an immutable set of expanded project and sprint ids.
// Every update returns a new value; the receiver is left untouched, so a
// snapshot can be held across data refreshes. Ids that no longer exist in
// the data are kept and simply never consulted.
type Expansion struct {
	ids map[string]struct{}
}

// NewExpansion returns a set with the given ids expanded.
func NewExpansion(ids ...string) Expansion {
	e := Expansion{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			e.ids[id] = struct{}{}
		}
	}
	return e
}

// IsExpanded reports whether id is in the set.
func (e Expansion) IsExpanded(id string) bool {
	_, ok := e.ids[id]
	return ok
}

// Toggle adds id if absent and removes it if present.
func (e Expansion) Toggle(id string) Expansion {
	if e.IsExpanded(id) {
		return e.Collapse(id)
	}
	return e.Expand(id)
}

// Expand returns a set that also contains ids.
func (e Expansion) Expand(ids ...string) Expansion {
	out := e.copy(len(ids))
	for _, id := range ids {
		if id != "" {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Collapse returns a set without ids.
func (e Expansion) Collapse(ids ...string) Expansion {
	out := e.copy(0)
	for _, id := range ids {
		delete(out.ids, id)
	}
	return out
}

// Len returns the number of expanded ids, stale ones included.
func (e Expansion) Len() int { return len(e.ids) }

// IDs returns the expanded ids in sorted order.
func (e Expansion) IDs() []string {
	out := make([]string, 0, len(e.ids))
	for id := range e.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ExpandAll returns a set containing every project and sprint id of h, plus
// the backlog group when h has backlog tasks.
func ExpandAll(h domain.Hierarchy) Expansion {
	var ids []string
	if len(h.BacklogTasks) > 0 {
		ids = append(ids, BacklogGroupID)
	}
	for i := range h.Projects {
		p := &h.Projects[i]
		ids = append(ids, p.ID)
		for j := range p.Sprints {
			ids = append(ids, p.Sprints[j].ID)
		}
	}
	return NewExpansion(ids...)
}

func (e Expansion) copy(extra int) Expansion {
	out := Expansion{ids: make(map[string]struct{}, len(e.ids)+extra)}
	for id := range e.ids {
		out.ids[id] = struct{}{}
	}
	return out
}
