/*
Package hierarchy resolves manager->subordinate reporting structures.

PURPOSE:
  Computes the full transitive set of staff reporting, directly or
  indirectly, to a manager, from a flat adjacency table. Used to build
  org-visibility views (team schedules, approval routing); independent of
  the scheduling engine.

ADJACENCY REPRESENTATION:
  The backing table keys a unique Manager_ID to a comma-separated list of
  staff IDs interpreted as a set (order irrelevant). The raw encoding is
  parsed once at the storage boundary into an IDSet; the resolver never
  sees comma strings.

TRAVERSAL:
  Breadth-first from the manager's direct reports. The visited set is
  keyed by manager-as-explored, which makes cycles in the adjacency data
  terminate. The original root manager is excluded from the result even
  when cyclically reachable. A manager with no adjacency entry resolves to
  an empty set - a leaf/IC employee is a normal case, not a failure.

ID CANONICALIZATION:
  The backing store mixes numeric and string representations, so IDs are
  compared in a canonical trimmed-string form (see CanonicalID).
*/
package hierarchy

import (
	"context"
	"sort"
	"strings"
)

// =============================================================================
// ID SET
// =============================================================================

// IDSet is a set of canonical staff IDs.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool {
	_, ok := s[CanonicalID(id)]
	return ok
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Sorted returns the members as a sorted slice, for stable output.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CanonicalID normalizes an ID for comparison. The backing store mixes
// numeric and string forms; trimming the textual form is sufficient to
// unify them.
func CanonicalID(raw string) string {
	return strings.TrimSpace(raw)
}

// ParseSubordinates parses the raw comma-separated subordinate list for a
// manager into a set. Empty elements are dropped; a self-reference to the
// manager is excluded by invariant.
func ParseSubordinates(managerID, raw string) IDSet {
	manager := CanonicalID(managerID)
	set := make(IDSet)
	for _, part := range strings.Split(raw, ",") {
		id := CanonicalID(part)
		if id == "" || id == manager {
			continue
		}
		set.Add(id)
	}
	return set
}

// =============================================================================
// ADJACENCY + RESOLUTION
// =============================================================================

// Adjacency maps a manager ID to the set of their direct subordinates.
type Adjacency map[string]IDSet

// Source supplies the full adjacency table, parsed once on read.
type Source interface {
	Adjacency(ctx context.Context) (Adjacency, error)
}

// SubordinatesOf computes the transitive closure of subordinates for a
// manager, breadth-first. The root manager is excluded from the result even
// if cyclically reachable; a missing adjacency entry yields an empty set.
func SubordinatesOf(managerID string, adj Adjacency) IDSet {
	root := CanonicalID(managerID)
	result := make(IDSet)
	visited := IDSet{root: {}}

	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for sub := range adj[current] {
			if sub == root {
				continue // self-reference elimination
			}
			if _, seen := result[sub]; !seen {
				result.Add(sub)
			}
			if _, explored := visited[sub]; !explored {
				visited.Add(sub)
				queue = append(queue, sub)
			}
		}
	}
	return result
}
